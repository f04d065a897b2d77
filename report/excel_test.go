package report

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/launchdarkly/echo-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteExcel(t *testing.T) {
	failure := framework.TestResult{
		TestID:   framework.TestID{Path: []string{"GET", "query params"}},
		Errors:   []error{errors.New("args.page: missing (expected \"1\")")},
		Duration: 120 * time.Millisecond,
	}
	results := framework.Results{
		Tests: []framework.TestResult{
			{TestID: framework.TestID{Path: []string{"POST", "empty body"}}, Duration: 50 * time.Millisecond},
			failure,
			{TestID: framework.TestID{Path: []string{"PUT"}}, Skipped: true},
		},
		Failures: []framework.TestResult{failure},
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, WriteExcel(path, results, 3*time.Second, 42))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.True(t, len(rows) >= 4)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, []string{"POST/empty body", "passed", "50"}, rows[1])
	assert.Equal(t, []string{"GET/query params", "failed", "120", `args.page: missing (expected "1")`}, rows[2])
	assert.Equal(t, []string{"PUT", "skipped", "0"}, rows[3])

	var summary []string
	for _, r := range rows[5:] {
		if len(r) > 0 {
			summary = append(summary, r[0])
		}
	}
	assert.Contains(t, summary, "Tests: 3")
	assert.Contains(t, summary, "Failed: 1")
	assert.Contains(t, summary, "Skipped: 1")
	assert.Contains(t, summary, "Seed: 42")
}

func TestWriteExcelToBadPath(t *testing.T) {
	err := WriteExcel(filepath.Join(t.TempDir(), "missing-dir", "report.xlsx"), framework.Results{}, 0, 1)
	assert.Error(t, err)
}
