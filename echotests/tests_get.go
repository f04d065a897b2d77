package echotests

import (
	"net/http"

	"github.com/launchdarkly/echo-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoGETTests(t *T) {
	get := func(t *T, query map[string]string) {
		t.Scenario(
			servicedef.Request{Method: http.MethodGet, Path: servicedef.PathGet, Query: query},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyArgs, stringsValue(query))},
		)
	}

	t.Run("query params", func(t *T) {
		get(t, map[string]string{
			"search": t.Fake().Word(),
			"page":   "1",
		})
	})

	t.Run("different query params", func(t *T) {
		get(t, map[string]string{
			"category": "books",
			"limit":    "10",
		})
	})

	t.Run("query params needing escapes", func(t *T) {
		get(t, map[string]string{
			"q":     t.Fake().Sentence(),
			"email": t.Fake().Email(),
			"expr":  "a+b=c&d",
		})
	})

	t.Run("no query params", func(t *T) {
		resp := t.Scenario(
			servicedef.Request{Method: http.MethodGet, Path: servicedef.PathGet},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyArgs, ldvalue.ObjectBuild().Build())},
		)
		assert.Equal(t, 0, resp.Body.GetByKey(servicedef.KeyArgs).Count(), "args should be an empty object")
	})
}
