package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestMatchPaths(t *testing.T) {
	actual := parse(t, `{"json": {"user": "amy", "tags": ["a", "b"]}, "args": {"page": "1"}}`)

	assert.Nil(t, MatchPaths(nil, actual))
	assert.Nil(t, MatchPaths(map[string]ldvalue.Value{
		"$.json.user": ldvalue.String("amy"),
		"$.args":      parse(t, `{"page": "1"}`),
		"$.json.tags": parse(t, `["a", "b"]`),
	}, actual))
	assert.Nil(t, MatchPaths(map[string]ldvalue.Value{
		"$.json.tags[*]": ldvalue.String("b"),
	}, actual), "a wildcard matches if any selected value matches")
}

func TestMatchPathsReportsFailures(t *testing.T) {
	actual := parse(t, `{"json": {"user": "amy"}}`)

	m := MatchPaths(map[string]ldvalue.Value{"$.json.email": ldvalue.String("x")}, actual)
	require.NotNil(t, m)
	assert.True(t, m.Missing)
	assert.Equal(t, "$.json.email", m.Path)

	m = MatchPaths(map[string]ldvalue.Value{"$.json.user": ldvalue.String("bob")}, actual)
	require.NotNil(t, m)
	assert.Equal(t, `$.json.user: expected "bob" but got "amy"`, m.Error())

	m = MatchPaths(map[string]ldvalue.Value{"$.json[": ldvalue.String("bob")}, actual)
	require.NotNil(t, m)
	assert.Contains(t, m.Error(), "invalid JSONPath")
}
