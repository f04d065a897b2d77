package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID {
	return TestID{Path: path}
}

func TestNoFiltersMatchEverything(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(id("POST")))
	assert.True(t, f.AsFilter(id("POST", "empty body")))
}

func TestMustMatchWorksByLevel(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("POST/empty"))

	assert.True(t, f.AsFilter(id("POST")))
	assert.True(t, f.AsFilter(id("POST", "empty body")))
	assert.False(t, f.AsFilter(id("POST", "echo user data")))
	assert.False(t, f.AsFilter(id("GET")))
	assert.True(t, f.AsFilter(id("POST", "empty body", "deeper")))
}

func TestMustMatchWithEmptyFirstLevel(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("/query"))

	assert.True(t, f.AsFilter(id("GET")))
	assert.True(t, f.AsFilter(id("GET", "query params")))
	assert.True(t, f.AsFilter(id("GET", "no query params")))
	assert.False(t, f.AsFilter(id("POST", "empty body")))
}

func TestMultipleMustMatchPatterns(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^PUT$"))
	require.NoError(t, f.MustMatch.Set("^DELETE$"))

	assert.True(t, f.AsFilter(id("PUT", "update resource")))
	assert.True(t, f.AsFilter(id("DELETE")))
	assert.False(t, f.AsFilter(id("POST")))
}

func TestMustNotMatchAppliesToFullID(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustNotMatch.Set("POST/echo"))

	assert.True(t, f.AsFilter(id("POST")))
	assert.True(t, f.AsFilter(id("POST", "empty body")))
	assert.False(t, f.AsFilter(id("POST", "echo user data")))
}

func TestInvalidRegex(t *testing.T) {
	var r RegexList
	assert.Error(t, r.Set("("))
	assert.Error(t, r.Set("ok/("))
	assert.False(t, r.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var r RegexList
	require.NoError(t, r.Set("a"))
	require.NoError(t, r.Set("b/c"))
	assert.Equal(t, `"a" or "b/c"`, r.String())
	assert.Equal(t, "regex", r.Type())
}
