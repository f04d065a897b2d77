package echotests

import (
	"net/http"

	"github.com/launchdarkly/echo-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoPUTTests(t *T) {
	t.Run("update resource", func(t *T) {
		update := ldvalue.ObjectBuild().
			Set("title", ldvalue.String(t.Fake().Words(3))).
			Set("completed", ldvalue.Bool(t.Fake().Bool())).
			Build()
		t.Scenario(
			servicedef.Request{Method: http.MethodPut, Path: servicedef.PathPut, JSON: update},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyData, update)},
		)
	})
}

func DoDELETETests(t *T) {
	t.Run("delete resource", func(t *T) {
		body := ldvalue.ObjectBuild().
			Set("id", ldvalue.String(t.Fake().UUID())).
			Set("reason", ldvalue.String(t.Fake().Sentence())).
			Build()
		t.Scenario(
			servicedef.Request{Method: http.MethodDelete, Path: servicedef.PathDelete, JSON: body},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyData, body)},
		)
	})
}
