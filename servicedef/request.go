package servicedef

import (
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Paths served by the echo service.
const (
	PathGet     = "/get"
	PathPost    = "/post"
	PathPut     = "/put"
	PathDelete  = "/delete"
	PathHeaders = "/headers"
)

// Property names in an echo service response.
const (
	KeyData    = "data"
	KeyArgs    = "args"
	KeyForm    = "form"
	KeyHeaders = "headers"
	KeyJSON    = "json"
	KeyURL     = "url"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Request describes one HTTP request to send to the echo service. Path is relative to the
// service's base URL.
//
// JSON is sent as the request body unless it is null; an empty object is a valid body. JSON
// and Form are mutually exclusive.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	JSON    ldvalue.Value
	Form    map[string]string
}

// HasJSONBody returns true if the request carries a JSON body.
func (r Request) HasJSONBody() bool {
	return !r.JSON.IsNull()
}

// Response is what the echo service sent back. Body is null if the response was not JSON.
type Response struct {
	Status  int
	Headers http.Header
	Body    ldvalue.Value
	RawBody []byte
}
