package echotests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/launchdarkly/echo-contract-tests/echoserver"
	"github.com/launchdarkly/echo-contract-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const liveURLVar = "ECHO_CONTRACT_LIVE_URL"

// built-in groups plus the tests within them
const builtInTestCount = 7 + 5 + 4 + 1 + 1 + 2 + 1 + 1

func withHarness(t *testing.T, handler http.Handler, action func(*framework.TestHarness)) {
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		harness, err := framework.NewTestHarness(framework.HarnessConfig{
			ServiceBaseURL:     server.URL,
			StatusQueryTimeout: time.Second * 5,
		}, nil, io.Discard)
		require.NoError(t, err)
		action(harness)
	})
}

func failureIDs(results framework.Results) []string {
	var ids []string
	for _, f := range results.Failures {
		ids = append(ids, f.TestID.String())
	}
	return ids
}

func TestSuitePassesAgainstLocalEchoServer(t *testing.T) {
	withHarness(t, echoserver.Handler(), func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1}, nil, nil)
		assert.True(t, results.OK(), "failures: %v", results.Failures)
		assert.Len(t, results.Tests, builtInTestCount)
		assert.Equal(t, 0, results.SkippedCount())
	})
}

func TestSuitePassesWithRandomSeed(t *testing.T) {
	withHarness(t, echoserver.Handler(), func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{}, nil, nil)
		assert.True(t, results.OK(), "failures: %v", results.Failures)
	})
}

func TestFailingEndpointDoesNotStopOtherTests(t *testing.T) {
	echo := echoserver.Handler()
	broken := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/post" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		echo.ServeHTTP(w, r)
	})
	withHarness(t, broken, func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1}, nil, nil)
		assert.False(t, results.OK())
		assert.Len(t, results.Tests, builtInTestCount)
		assert.Equal(t, []string{
			"POST/echo user data",
			"POST/echo message data",
			"POST/echo fixed message",
			"POST/echo nested data",
			"POST/empty body",
			"form/url-encoded form",
		}, failureIDs(results))

		for _, f := range results.Failures {
			require.NotEmpty(t, f.Errors)
			assert.Contains(t, f.Errors[0].Error(), "status: expected 200 but got 500")
		}
	})
}

func TestNetworkErrorFailsOnlyThatScenario(t *testing.T) {
	echo := echoserver.Handler()
	dropping := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/put" {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		echo.ServeHTTP(w, r)
	})
	withHarness(t, dropping, func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1}, nil, nil)
		assert.Len(t, results.Tests, builtInTestCount)
		require.Equal(t, []string{"PUT/update resource"}, failureIDs(results))
		require.NotEmpty(t, results.Failures[0].Errors)
		assert.Contains(t, results.Failures[0].Errors[0].Error(), "request to echo service failed")
	})
}

func TestBodyMismatchIsReported(t *testing.T) {
	echo := echoserver.Handler()
	// reports every query parameter value in upper case
	wrong := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for k, vs := range q {
			q[k] = []string{strings.ToUpper(vs[0])}
		}
		r.URL.RawQuery = q.Encode()
		echo.ServeHTTP(w, r)
	})
	var filter framework.RegexFilters
	require.NoError(t, filter.MustMatch.Set("^GET$/^different query params$"))

	withHarness(t, wrong, func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1}, filter.AsFilter, nil)
		require.Equal(t, []string{"GET/different query params"}, failureIDs(results))
		assert.Equal(t,
			`response body mismatch at args.category: expected "books" but got "BOOKS"`,
			results.Failures[0].Errors[0].Error())
	})
}

func TestFilterSkipsTests(t *testing.T) {
	var filter framework.RegexFilters
	require.NoError(t, filter.MustMatch.Set("^PUT$"))
	withHarness(t, echoserver.Handler(), func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1}, filter.AsFilter, nil)
		assert.True(t, results.OK())
		assert.Equal(t, 6, results.SkippedCount())
		assert.Len(t, results.Tests, 8)
	})
}

func TestFileScenariosRunAsGroup(t *testing.T) {
	scenarios, err := ParseScenarios([]byte(`
scenarios:
  - name: create user
    method: post
    path: /post
    json:
      username: "{{user=faker.username}}"
      age: "{{faker.number}}"
    expect:
      status: 200
      body:
        json:
          username: "{{user}}"
      paths:
        "$.headers['content-type']": application/json
  - name: wrong status
    method: GET
    path: /get
    expect:
      status: 201
`))
	require.NoError(t, err)

	var filter framework.RegexFilters
	require.NoError(t, filter.MustMatch.Set("^scenarios$"))
	withHarness(t, echoserver.Handler(), func(harness *framework.TestHarness) {
		results := RunTestSuite(harness, SuiteConfig{Seed: 1, Scenarios: scenarios}, filter.AsFilter, nil)
		assert.Equal(t, []string{"scenarios/wrong status"}, failureIDs(results))
		assert.Contains(t, results.Failures[0].Errors[0].Error(), "status: expected 201 but got 200")
		assert.Equal(t, 7, results.SkippedCount())
	})
}

func TestSuiteAgainstLiveService(t *testing.T) {
	url := os.Getenv(liveURLVar)
	if url == "" {
		t.Skipf("set %s to run against a real echo service", liveURLVar)
	}
	harness, err := framework.NewTestHarness(framework.HarnessConfig{
		ServiceBaseURL:     url,
		StatusQueryTimeout: time.Second * 10,
	}, nil, io.Discard)
	require.NoError(t, err)
	results := RunTestSuite(harness, SuiteConfig{}, nil, nil)
	assert.True(t, results.OK(), "failures: %v", results.Failures)
}
