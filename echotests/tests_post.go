package echotests

import (
	"net/http"

	"github.com/launchdarkly/echo-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoPOSTTests(t *T) {
	post := func(t *T, payload ldvalue.Value) {
		t.Scenario(
			servicedef.Request{Method: http.MethodPost, Path: servicedef.PathPost, JSON: payload},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyData, payload)},
		)
	}

	t.Run("echo user data", func(t *T) {
		post(t, ldvalue.ObjectBuild().
			Set("user", ldvalue.String(t.Fake().Username())).
			Set("email", ldvalue.String(t.Fake().Email())).
			Build())
	})

	t.Run("echo message data", func(t *T) {
		post(t, ldvalue.ObjectBuild().
			Set("message", ldvalue.String(t.Fake().Sentence())).
			Set("id", ldvalue.String(t.Fake().UUID())).
			Build())
	})

	t.Run("echo fixed message", func(t *T) {
		post(t, ldvalue.ObjectBuild().
			Set("message", ldvalue.String("Lorem ipsum")).
			Set("id", ldvalue.String("3fa85f64-5717-4562-b3fc-2c963f66afa6")).
			Build())
	})

	t.Run("echo nested data", func(t *T) {
		post(t, ldvalue.ObjectBuild().
			Set("order", ldvalue.ObjectBuild().
				Set("id", ldvalue.String(t.Fake().UUID())).
				Set("quantity", ldvalue.Int(t.Fake().Int(1, 100))).
				Set("gift", ldvalue.Bool(t.Fake().Bool())).
				Build()).
			Set("tags", ldvalue.ArrayOf(ldvalue.String(t.Fake().Word()), ldvalue.String(t.Fake().Word()))).
			Build())
	})

	t.Run("empty body", func(t *T) {
		empty := ldvalue.ObjectBuild().Build()
		resp := t.Scenario(
			servicedef.Request{Method: http.MethodPost, Path: servicedef.PathPost, JSON: empty},
			Expect{Status: http.StatusOK, Body: echoedAs(servicedef.KeyData, empty)},
		)
		// {} matches any object, so check that nothing else was reported
		assert.Equal(t, 0, resp.Body.GetByKey(servicedef.KeyData).Count(), "data should be an empty object")
	})
}
