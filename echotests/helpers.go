package echotests

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// echoedAs is the expected shape of a response that reports value under the specified key.
func echoedAs(key string, value ldvalue.Value) ldvalue.Value {
	return ldvalue.ObjectBuild().Set(key, value).Build()
}

func stringsValue(m map[string]string) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for k, v := range m {
		b.Set(k, ldvalue.String(v))
	}
	return b.Build()
}

// The echo service reports header names in lower case.
func lowerCaseKeys(m map[string]string) map[string]string {
	ret := make(map[string]string, len(m))
	for k, v := range m {
		ret[strings.ToLower(k)] = v
	}
	return ret
}
