package fakedata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const fakerPrefix = "faker."

// A placeholder is either {{faker.kind}}, {{name=faker.kind}} which also remembers the value
// under that name, or {{name}} which refers to a remembered value.
var placeholderRegex = regexp.MustCompile(`\{\{\s*(?:([A-Za-z_][A-Za-z0-9_]*)\s*=\s*)?([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// Values expands placeholders in templates, generating each named value only once so that a
// request and the expectation for its response can refer to the same value.
type Values struct {
	gen   *Generator
	bound map[string]interface{}
}

// NewValues creates an empty Values table that draws from this Generator.
func (g *Generator) NewValues() *Values {
	return &Values{gen: g, bound: make(map[string]interface{})}
}

// Get returns a value that was bound by an earlier expansion.
func (v *Values) Get(name string) (interface{}, bool) {
	value, ok := v.bound[name]
	return value, ok
}

// Expand replaces the placeholders in s. If s consists of exactly one placeholder, the result
// has the value's own type, so "{{faker.boolean}}" becomes a bool rather than "true"; otherwise
// it is a string.
func (v *Values) Expand(s string) (interface{}, error) {
	if loc := placeholderRegex.FindStringSubmatchIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
		m := placeholderRegex.FindStringSubmatch(s)
		return v.resolve(m[1], m[2])
	}
	var firstErr error
	result := placeholderRegex.ReplaceAllStringFunc(s, func(p string) string {
		m := placeholderRegex.FindStringSubmatch(p)
		value, err := v.resolve(m[1], m[2])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return p
		}
		return fmt.Sprint(value)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// ExpandAll expands placeholders in every string within data, which may be a string, a
// map[string]interface{}, a []interface{}, or a scalar. Map properties are visited in
// alphabetical order, so a value must be bound in an earlier property than the ones that
// refer to it.
func (v *Values) ExpandAll(data interface{}) (interface{}, error) {
	switch d := data.(type) {
	case string:
		return v.Expand(d)
	case map[string]interface{}:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ret := make(map[string]interface{}, len(d))
		for _, k := range keys {
			value, err := v.ExpandAll(d[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			ret[k] = value
		}
		return ret, nil
	case []interface{}:
		ret := make([]interface{}, 0, len(d))
		for i, item := range d {
			value, err := v.ExpandAll(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			ret = append(ret, value)
		}
		return ret, nil
	default:
		return data, nil
	}
}

// ExpandStrings expands the placeholders in each value of a string map. Values that expand to
// non-strings are formatted as strings.
func (v *Values) ExpandStrings(m map[string]string) (map[string]string, error) {
	if m == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ret := make(map[string]string, len(m))
	for _, k := range keys {
		value, err := v.Expand(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		ret[k] = fmt.Sprint(value)
	}
	return ret, nil
}

func (v *Values) resolve(bindName, ref string) (interface{}, error) {
	if kind := strings.TrimPrefix(ref, fakerPrefix); kind != ref {
		if bindName != "" {
			if _, exists := v.bound[bindName]; exists {
				return nil, fmt.Errorf("value %q is defined more than once", bindName)
			}
		}
		value, err := v.gen.Generate(kind)
		if err != nil {
			return nil, err
		}
		if bindName != "" {
			v.bound[bindName] = value
		}
		return value, nil
	}
	if bindName != "" {
		return nil, fmt.Errorf("cannot bind %q to %q, which is not a faker value", bindName, ref)
	}
	value, ok := v.bound[ref]
	if !ok {
		return nil, fmt.Errorf("undefined value %q", ref)
	}
	return value, nil
}
