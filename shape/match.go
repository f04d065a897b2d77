// Package shape compares JSON response bodies against expected shapes.
//
// A shape is matched as a subset: every property named in the expected value has to be present
// in the actual value and match it, recursively, but the actual value may have any number of
// other properties. Arrays must have the same length, and their elements are matched in order
// by the same rules. Scalars are compared for JSON equality, so 10 and 10.0 are equal.
package shape

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Mismatch describes the first place where an actual value diverged from the expected shape.
type Mismatch struct {
	// Path locates the divergent value, such as "data.tags[1]". It is empty for the top level.
	Path     string
	Expected ldvalue.Value
	Actual   ldvalue.Value
	// Missing is true if the property did not exist in the actual value.
	Missing bool
	// Reason replaces the default description, if set.
	Reason string
}

func (m *Mismatch) Error() string {
	path := m.Path
	if path == "" {
		path = "body"
	}
	switch {
	case m.Reason != "":
		return fmt.Sprintf("%s: %s", path, m.Reason)
	case m.Missing:
		return fmt.Sprintf("%s: missing (expected %s)", path, m.Expected.JSONString())
	default:
		return fmt.Sprintf("%s: expected %s but got %s", path, m.Expected.JSONString(), m.Actual.JSONString())
	}
}

// Match returns nil if actual matches the expected shape, or else a description of the first
// divergent value. Object properties are visited in alphabetical order, so for any given pair
// of values the result is always the same.
func Match(expected, actual ldvalue.Value) *Mismatch {
	return match("", expected, actual)
}

func match(path string, expected, actual ldvalue.Value) *Mismatch {
	switch expected.Type() {
	case ldvalue.ObjectType:
		if actual.Type() != ldvalue.ObjectType {
			return &Mismatch{Path: path, Expected: expected, Actual: actual}
		}
		keys := expected.Keys()
		sort.Strings(keys)
		for _, key := range keys {
			subPath := propertyPath(path, key)
			actualValue, ok := actual.TryGetByKey(key)
			if !ok {
				return &Mismatch{Path: subPath, Expected: expected.GetByKey(key), Missing: true}
			}
			if m := match(subPath, expected.GetByKey(key), actualValue); m != nil {
				return m
			}
		}
		return nil

	case ldvalue.ArrayType:
		if actual.Type() != ldvalue.ArrayType {
			return &Mismatch{Path: path, Expected: expected, Actual: actual}
		}
		if expected.Count() != actual.Count() {
			return &Mismatch{
				Path:     path,
				Expected: expected,
				Actual:   actual,
				Reason:   fmt.Sprintf("expected %d elements but got %d", expected.Count(), actual.Count()),
			}
		}
		for i := 0; i < expected.Count(); i++ {
			if m := match(path+"["+strconv.Itoa(i)+"]", expected.GetByIndex(i), actual.GetByIndex(i)); m != nil {
				return m
			}
		}
		return nil

	default:
		if !expected.Equal(actual) {
			return &Mismatch{Path: path, Expected: expected, Actual: actual}
		}
		return nil
	}
}

func propertyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
