package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/launchdarkly/echo-contract-tests/echoserver"
	"github.com/launchdarkly/echo-contract-tests/echotests"
	"github.com/launchdarkly/echo-contract-tests/fakedata"
	"github.com/launchdarkly/echo-contract-tests/framework"
	"github.com/launchdarkly/echo-contract-tests/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	defaultServiceURL     = "https://postman-echo.com"
	defaultPort           = 8111
	defaultRequestTimeout = time.Second * 30
	statusQueryTimeout    = time.Second * 10
	shutdownTimeout       = time.Second * 5

	// Sent with every request so that a run can be picked out of the echo service's logs.
	runIDHeader = "X-Echo-Contract-Run"
)

var errTestsFailed = errors.New("some tests failed")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var params commandParams
	root := &cobra.Command{
		Use:           "echo-contract-tests",
		Short:         "Contract tests for HTTP echo services",
		Long:          "Sends requests to an echo service such as postman-echo.com and checks that each response reports the request back.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(params)
		},
	}
	params.addFlags(root.Flags())
	root.AddCommand(newServeCommand())
	return root
}

func runTests(params commandParams) error {
	if err := params.validate(); err != nil {
		return err
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	serviceURL := params.serviceURL
	if params.local {
		server, err := framework.StartServer(params.port, echoserver.Handler(),
			framework.PrefixedLogger(mainDebugLogger, "[echo service] "))
		if err != nil {
			return err
		}
		defer server.Close()
		serviceURL = fmt.Sprintf("http://localhost:%d", params.port)
	}

	var scenarios []echotests.FileScenario
	if params.scenarioFile != "" {
		var err error
		if scenarios, err = echotests.LoadScenarioFile(params.scenarioFile); err != nil {
			return err
		}
		fmt.Printf("Loaded %d scenarios from %s\n", len(scenarios), params.scenarioFile)
	}

	runID := uuid.NewString()
	harness, err := framework.NewTestHarness(
		framework.HarnessConfig{
			ServiceBaseURL:     serviceURL,
			RequestTimeout:     params.timeout,
			StatusQueryTimeout: statusQueryTimeout,
			Headers:            map[string]string{runIDHeader: runID},
		},
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		return fmt.Errorf("echo service error: %w", err)
	}

	seed := fakedata.New(params.seed).Seed()

	fmt.Println()
	framework.PrintFilterDescription(params.filters)

	fmt.Printf("Running test suite (run ID %s, fake data seed %d)\n", runID, seed)

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	startTime := time.Now()
	results := echotests.RunTestSuite(
		harness,
		echotests.SuiteConfig{Seed: seed, Scenarios: scenarios},
		params.filters.AsFilter,
		testLogger,
	)
	duration := time.Since(startTime)

	fmt.Println()
	framework.PrintResults(results)

	if params.reportFile != "" {
		if err := report.WriteExcel(params.reportFile, results, duration, seed); err != nil {
			return err
		}
		fmt.Printf("Report saved to %s\n", params.reportFile)
	}

	if !results.OK() {
		fmt.Println()
		fmt.Println("To repeat the failed tests with the same data:")
		fmt.Printf("  %s\n", params.rerunCommand(results.Failures, seed))
		return errTestsFailed
	}
	return nil
}

func newServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the built-in echo service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := framework.StartServer(port, echoserver.Handler(), log.New(os.Stdout, "", log.LstdFlags))
			if err != nil {
				return err
			}
			fmt.Printf("Echo service listening on port %d\n", port)

			signals := make(chan os.Signal, 1)
			signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
			<-signals

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", defaultPort, "port to listen on")
	return cmd
}
