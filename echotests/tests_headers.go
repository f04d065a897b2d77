package echotests

import (
	"net/http"

	"github.com/launchdarkly/echo-contract-tests/servicedef"
)

func DoHeaderTests(t *T) {
	headers := func(t *T) map[string]string {
		return map[string]string{
			"X-Custom-Header": t.Fake().Word(),
			"X-Request-Id":    t.Fake().UUID(),
		}
	}

	t.Run("headers endpoint", func(t *T) {
		h := headers(t)
		t.Scenario(
			servicedef.Request{Method: http.MethodGet, Path: servicedef.PathHeaders, Headers: h},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyHeaders, stringsValue(lowerCaseKeys(h)))},
		)
	})

	t.Run("headers with GET", func(t *T) {
		h := headers(t)
		t.Scenario(
			servicedef.Request{Method: http.MethodGet, Path: servicedef.PathGet, Headers: h},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyHeaders, stringsValue(lowerCaseKeys(h)))},
		)
	})
}

func DoFormTests(t *T) {
	t.Run("url-encoded form", func(t *T) {
		form := map[string]string{
			"name":    t.Fake().Name(),
			"comment": t.Fake().Sentence(),
		}
		t.Scenario(
			servicedef.Request{Method: http.MethodPost, Path: servicedef.PathPost, Form: form},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyForm, stringsValue(form))},
		)
	})
}

func DoNotFoundTests(t *T) {
	t.Run("undefined path", func(t *T) {
		t.Scenario(
			servicedef.Request{Method: http.MethodGet, Path: "/invalid-endpoint-" + t.Fake().Word()},
			Expect{Status: http.StatusNotFound},
		)
	})
}
