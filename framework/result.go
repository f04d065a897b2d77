package framework

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Skipped  bool
	Duration time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// SkippedCount returns the number of tests that were skipped by a filter or by the test itself.
func (r Results) SkippedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run to standard output.
func PrintResults(results Results) {
	ran := len(results.Tests) - results.SkippedCount()
	fmt.Printf("Ran %d tests, %d skipped\n", ran, results.SkippedCount())
	if results.OK() {
		fmt.Println(color.GreenString("All tests passed"))
		return
	}
	fmt.Println(color.RedString("FAILED TESTS (%d):", len(results.Failures)))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
	}
}
