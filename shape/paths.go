package shape

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// MatchPaths evaluates JSONPath conditions, such as "$.data.id", against actual. Each
// condition is satisfied if any value selected by its path matches the expected shape. The
// conditions are checked in alphabetical order of their paths, and the first one that fails is
// returned as a Mismatch whose Path is the JSONPath expression.
func MatchPaths(conditions map[string]ldvalue.Value, actual ldvalue.Value) *Mismatch {
	if len(conditions) == 0 {
		return nil
	}
	paths := make([]string, 0, len(conditions))
	for p := range conditions {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	data := actual.AsArbitraryValue()
	for _, p := range paths {
		expected := conditions[p]
		expr, err := jp.ParseString(p)
		if err != nil {
			return &Mismatch{Path: p, Expected: expected, Reason: fmt.Sprintf("invalid JSONPath: %s", err)}
		}
		results := expr.Get(data)
		if len(results) == 0 {
			return &Mismatch{Path: p, Expected: expected, Missing: true}
		}
		var first *Mismatch
		for _, r := range results {
			m := Match(expected, ldvalue.CopyArbitraryValue(r))
			if m == nil {
				first = nil
				break
			}
			if first == nil {
				first = m
			}
		}
		if first != nil {
			return &Mismatch{Path: p, Expected: expected, Actual: ldvalue.CopyArbitraryValue(results[0])}
		}
	}
	return nil
}
