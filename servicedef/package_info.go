// Package servicedef contains the request and response types exchanged with the echo service,
// along with the paths and property names of its API.
package servicedef
