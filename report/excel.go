// Package report writes the results of a test run to an Excel workbook.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/launchdarkly/echo-contract-tests/framework"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName       = "Results"
	timeFormat      = "2006-01-02 15:04:05"
	errorBgColor    = "FF5900"
	skippedBgColor  = "D9D9D9"
	slowBgColor     = "FFEB9C"
	slowTestMinimum = 2 * time.Second
)

const (
	statusPassed  = "passed"
	statusFailed  = "failed"
	statusSkipped = "skipped"
)

var headers = []string{"Test", "Status", "Duration (ms)", "Errors"}

var columnWidths = []float64{48, 10, 14, 100}

// WriteExcel saves a workbook with one row for each test, followed by a summary. Failed tests
// are highlighted in red, skipped ones in grey, and passing tests that took at least two
// seconds in yellow.
func WriteExcel(path string, results framework.Results, duration time.Duration, seed int64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("cannot create worksheet: %w", err)
	}
	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}
	for i, h := range headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}

	row := 2
	for _, r := range results.Tests {
		status := statusOf(r)
		cells := []interface{}{
			r.TestID.String(),
			status,
			r.Duration.Milliseconds(),
			joinErrors(r.Errors),
		}
		for i, value := range cells {
			if value == "" {
				continue
			}
			if err := setCell(f, i+1, row, value); err != nil {
				return err
			}
		}
		if style, ok := styles.forResult(r, status); ok {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(headers), row)
			if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
				return err
			}
		}
		row++
	}

	row++
	summary := []string{
		"Summary",
		fmt.Sprintf("Finished: %s", time.Now().Format(timeFormat)),
		fmt.Sprintf("Total time: %.3fs", duration.Seconds()),
		fmt.Sprintf("Tests: %d", len(results.Tests)),
		fmt.Sprintf("Failed: %d", len(results.Failures)),
		fmt.Sprintf("Skipped: %d", results.SkippedCount()),
		fmt.Sprintf("Seed: %d", seed),
	}
	for i, line := range summary {
		if err := setCell(f, 1, row+i, line); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save report: %w", err)
	}
	return nil
}

type styles struct {
	failed, skipped, slow int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	for _, p := range []struct {
		id    *int
		color string
	}{
		{&s.failed, errorBgColor},
		{&s.skipped, skippedBgColor},
		{&s.slow, slowBgColor},
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{p.color}},
		})
		if err != nil {
			return s, fmt.Errorf("cannot create cell style: %w", err)
		}
		*p.id = id
	}
	return s, nil
}

func (s styles) forResult(r framework.TestResult, status string) (int, bool) {
	switch {
	case status == statusFailed:
		return s.failed, true
	case status == statusSkipped:
		return s.skipped, true
	case r.Duration >= slowTestMinimum:
		return s.slow, true
	default:
		return 0, false
	}
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheetName, cell, value)
}

func statusOf(r framework.TestResult) string {
	switch {
	case r.Skipped:
		return statusSkipped
	case r.Failed():
		return statusFailed
	default:
		return statusPassed
	}
}

func joinErrors(errs []error) string {
	var lines []string
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
