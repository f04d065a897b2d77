package echotests

import (
	"context"
	"net/http"

	"github.com/launchdarkly/echo-contract-tests/fakedata"
	"github.com/launchdarkly/echo-contract-tests/framework"
	"github.com/launchdarkly/echo-contract-tests/servicedef"
	"github.com/launchdarkly/echo-contract-tests/shape"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// T represents a test or subtest in our echo service test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// Every T has its own fake data generator, seeded from the suite's seed and the test's name, so
// the values a test generates do not depend on which other tests ran before it.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. Scenario also makes its own assertions, causing the test to immediately fail if the
// response is not what was expected.
type T struct {
	context *framework.Context
	env     *suiteEnvironment
	fake    *fakedata.Generator
}

type suiteEnvironment struct {
	ctx     context.Context
	harness *framework.TestHarness
	fake    *fakedata.Generator
}

// Expect describes the response that a scenario should receive.
type Expect struct {
	// Status is the expected HTTP status. Zero means 200.
	Status int

	// Body is the expected shape of the response body; see the shape package for the rules.
	// If it is null, the body is not checked.
	Body ldvalue.Value

	// Paths are JSONPath conditions that the body must also satisfy.
	Paths map[string]ldvalue.Value
}

func newTestScope(context *framework.Context, env *suiteEnvironment) *T {
	return &T{
		context: context,
		env:     env,
		fake:    env.fake.ForTest(context.ID().String()),
	}
}

// ID returns the test's identifier.
func (t *T) ID() framework.TestID {
	return t.context.ID()
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Fake returns the test's fake data generator.
func (t *T) Fake() *fakedata.Generator {
	return t.fake
}

// Send issues one request to the echo service. The test fails and immediately exits if no
// response is received.
func (t *T) Send(req servicedef.Request) servicedef.Response {
	resp, err := t.env.harness.Service().Do(t.env.ctx, req, t.context.DebugLogger())
	require.NoError(t, err, "request to echo service failed")
	return resp
}

// Scenario sends one request and checks the response: first its status, then its body against
// the expected shape, then any JSONPath conditions. The test fails and immediately exits at the
// first thing that does not match.
func (t *T) Scenario(req servicedef.Request, expect Expect) servicedef.Response {
	resp := t.Send(req)
	t.RequireStatus(resp, expect.Status)
	t.RequireBodyLike(resp, expect.Body)
	if m := shape.MatchPaths(expect.Paths, resp.Body); m != nil {
		t.Errorf("response body mismatch at %s", m)
		t.FailNow()
	}
	return resp
}

// RequireStatus fails the test and immediately exits if the response status is not the expected
// one. Zero means 200.
func (t *T) RequireStatus(resp servicedef.Response, status int) {
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Status != status {
		t.Errorf("status: expected %d but got %d (response body: %s)", status, resp.Status, truncate(string(resp.RawBody)))
		t.FailNow()
	}
}

// RequireBodyLike fails the test and immediately exits if the response body does not match the
// expected shape. It does nothing if the expected shape is null.
func (t *T) RequireBodyLike(resp servicedef.Response, expected ldvalue.Value) {
	if expected.IsNull() {
		return
	}
	if m := shape.Match(expected, resp.Body); m != nil {
		t.Errorf("response body mismatch at %s", m)
		t.FailNow()
	}
}

const maxBodyInMessage = 500

func truncate(s string) string {
	if len(s) <= maxBodyInMessage {
		return s
	}
	return s[:maxBodyInMessage] + "..."
}
