package echoserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func decodeJSON(resp *http.Response, into *ldvalue.Value) error {
	return json.NewDecoder(resp.Body).Decode(into)
}

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}
