// Package echotests contains the echo service contract tests themselves and their supporting API.
//
// Test harness infrastructure that is not specific to the echo domain, such as the test context
// and the HTTP client for the service, is in the lower-level framework package.
package echotests
