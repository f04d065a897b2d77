package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/echo-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/spf13/pflag"
)

type commandParams struct {
	serviceURL   string
	local        bool
	port         int
	filters      framework.RegexFilters
	seed         int64
	timeout      time.Duration
	scenarioFile string
	reportFile   string
	debug        bool
	debugAll     bool
}

func (c *commandParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.serviceURL, "url", defaultServiceURL, "echo service base URL")
	fs.BoolVar(&c.local, "local", false, "test against the built-in echo service instead of --url")
	fs.IntVar(&c.port, "port", defaultPort, "port for the built-in echo service when --local is set")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run; slashes separate levels as in go test -run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Int64Var(&c.seed, "seed", 0, "seed for fake data; 0 picks a random seed")
	fs.DurationVar(&c.timeout, "timeout", defaultRequestTimeout, "timeout for each request")
	fs.StringVar(&c.scenarioFile, "scenarios", "", "YAML file of additional scenarios")
	fs.StringVar(&c.reportFile, "report", "", "write an Excel report (.xlsx) to this file")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
}

func (c *commandParams) validate() error {
	if !c.local && c.serviceURL == "" {
		return errors.New("--url is required unless --local is set")
	}
	if c.reportFile != "" && !strings.EqualFold(filepath.Ext(c.reportFile), ".xlsx") {
		return errors.New("--report file name must end in .xlsx")
	}
	if c.timeout <= 0 {
		return errors.New("--timeout must be positive")
	}
	return nil
}

// rerunCommand returns a command line that runs only the specified tests, with the same fake
// data as this run.
func (c *commandParams) rerunCommand(tests []framework.TestResult, seed int64) string {
	var b commandBuilder
	b.add(filepath.Base(os.Args[0]))
	if c.local {
		b.add("--local", "--port", strconv.Itoa(c.port))
	} else {
		b.add("--url", c.serviceURL)
	}
	if c.scenarioFile != "" {
		b.add("--scenarios", c.scenarioFile)
	}
	b.add("--seed", strconv.FormatInt(seed, 10))
	for _, t := range tests {
		b.add("--run", exactTestPattern(t.TestID))
	}
	return b.String()
}

func exactTestPattern(id framework.TestID) string {
	levels := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		levels = append(levels, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(levels, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
