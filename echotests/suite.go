package echotests

import (
	"context"

	"github.com/launchdarkly/echo-contract-tests/fakedata"
	"github.com/launchdarkly/echo-contract-tests/framework"
)

// SuiteConfig contains options for RunTestSuite.
type SuiteConfig struct {
	// Seed for fake data. Zero means a random seed.
	Seed int64

	// Scenarios are additional scenarios, usually from a scenario file.
	Scenarios []FileScenario

	// Context applies to every request. It defaults to context.Background().
	Context context.Context
}

func RunTestSuite(
	harness *framework.TestHarness,
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &suiteEnvironment{
		ctx:     config.Context,
		harness: harness,
		fake:    fakedata.New(config.Seed),
	}
	if env.ctx == nil {
		env.ctx = context.Background()
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("POST", DoPOSTTests)
		t.Run("GET", DoGETTests)
		t.Run("PUT", DoPUTTests)
		t.Run("DELETE", DoDELETETests)
		t.Run("headers", DoHeaderTests)
		t.Run("form", DoFormTests)
		t.Run("not found", DoNotFoundTests)
		if len(config.Scenarios) != 0 {
			t.Run("scenarios", DoFileScenarioTests(config.Scenarios))
		}
	})
}
