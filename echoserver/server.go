// Package echoserver is an HTTP service that reports each request back to the caller, following
// the conventions of https://postman-echo.com. It lets the contract tests run without network
// access.
//
// The response to GET /get, POST /post, PUT /put, and DELETE /delete is a JSON object with these
// properties:
//
//	args     query parameters
//	headers  request headers, with lower-cased names
//	url      the full request URL
//	data     (except for GET) the parsed JSON body, or the raw body for other content types
//	json     (except for GET) the parsed JSON body, or null
//	form     (except for GET) URL-encoded form fields
//	files    (except for GET) always empty
//
// GET /headers returns only the headers property. Any other path gets a 404 status, and a method
// other than the one a path is for gets a 405 status.
package echoserver

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/launchdarkly/echo-contract-tests/servicedef"
)

const maxBodySize = 1 << 20

// Handler returns an http.Handler that implements the echo service.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(servicedef.PathGet, echoHandler(http.MethodGet, false))
	mux.Handle(servicedef.PathPost, echoHandler(http.MethodPost, true))
	mux.Handle(servicedef.PathPut, echoHandler(http.MethodPut, true))
	mux.Handle(servicedef.PathDelete, echoHandler(http.MethodDelete, true))
	mux.Handle(servicedef.PathHeaders, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{servicedef.KeyHeaders: echoHeaders(r)})
	}))
	return mux
}

func echoHandler(method string, withBody bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		resp := map[string]interface{}{
			servicedef.KeyArgs:    echoValues(r.URL.Query()),
			servicedef.KeyHeaders: echoHeaders(r),
			servicedef.KeyURL:     requestURL(r),
		}
		if withBody {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data, jsonBody, form := interpretBody(r.Header.Get("Content-Type"), body)
			resp[servicedef.KeyData] = data
			resp[servicedef.KeyJSON] = jsonBody
			resp[servicedef.KeyForm] = form
			resp["files"] = map[string]interface{}{}
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

// interpretBody returns the values for the data, json, and form properties.
func interpretBody(contentType string, body []byte) (interface{}, interface{}, map[string]interface{}) {
	form := map[string]interface{}{}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch {
	case mediaType == servicedef.ContentTypeForm:
		values, err := url.ParseQuery(string(body))
		if err == nil {
			form = echoValues(values)
		}
		return "", nil, form
	case mediaType == servicedef.ContentTypeJSON || strings.HasSuffix(mediaType, "+json"):
		if len(body) == 0 {
			return map[string]interface{}{}, nil, form
		}
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			return string(body), nil, form
		}
		return parsed, parsed, form
	default:
		return string(body), nil, form
	}
}

// A parameter that appears once is a string; one that is repeated is an array of strings.
func echoValues(values url.Values) map[string]interface{} {
	ret := make(map[string]interface{}, len(values))
	for name, vs := range values {
		if len(vs) == 1 {
			ret[name] = vs[0]
		} else {
			ret[name] = vs
		}
	}
	return ret
}

func echoHeaders(r *http.Request) map[string]interface{} {
	ret := make(map[string]interface{}, len(r.Header)+1)
	for name, vs := range r.Header {
		ret[strings.ToLower(name)] = strings.Join(vs, ", ")
	}
	ret["host"] = r.Host
	return ret
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
