package echotests

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/launchdarkly/echo-contract-tests/fakedata"
	"github.com/launchdarkly/echo-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

// ScenarioFile is the format of a YAML file of additional scenarios.
//
// Any string in a scenario may contain fake data placeholders: {{faker.kind}} generates a value,
// {{name=faker.kind}} generates one and remembers it as name, and {{name}} refers to it again.
// The request fields are expanded before the expectation, in the order json, form, query,
// headers, so the expectation can refer to values generated for the request.
//
// JSON bodies, expected bodies, and JSONPath values are taken literally: an unquoted date such
// as 2024-01-02 stays the string "2024-01-02". JSON numbers are sent as 64-bit floats, so an
// integer whose magnitude is above 2^53 is an error; quote it to send it as a string.
type ScenarioFile struct {
	Scenarios []FileScenario `yaml:"scenarios"`
}

type FileScenario struct {
	Name    string            `yaml:"name"`
	Method  string            `yaml:"method"`
	Path    string            `yaml:"path"`
	Query   map[string]string `yaml:"query,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	JSON    LiteralValue      `yaml:"json,omitempty"`
	Form    map[string]string `yaml:"form,omitempty"`
	Expect  FileExpect        `yaml:"expect"`
}

type FileExpect struct {
	Status int                     `yaml:"status,omitempty"`
	Body   LiteralValue            `yaml:"body,omitempty"`
	Paths  map[string]LiteralValue `yaml:"paths,omitempty"`
}

var allowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}

// LoadScenarioFile reads and validates a YAML scenario file.
func LoadScenarioFile(path string) ([]FileScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario file: %w", err)
	}
	scenarios, err := ParseScenarios(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// ParseScenarios decodes and validates YAML scenario data. Unknown properties are errors, and
// every scenario's placeholders are checked by expanding them once with throwaway values.
func ParseScenarios(data []byte) ([]FileScenario, error) {
	var file ScenarioFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no scenarios found")
		}
		return nil, fmt.Errorf("invalid YAML format: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, errors.New("no scenarios found")
	}

	names := make(map[string]bool)
	for i := range file.Scenarios {
		s := &file.Scenarios[i]
		s.Method = strings.ToUpper(s.Method)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%q): %w", i+1, s.Name, err)
		}
		if names[s.Name] {
			return nil, fmt.Errorf("scenario name %q is used more than once", s.Name)
		}
		names[s.Name] = true
		if _, _, err := s.Build(fakedata.New(1).NewValues()); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
	}
	return file.Scenarios, nil
}

func (s FileScenario) validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if strings.Contains(s.Name, "/") {
		return errors.New("name cannot contain a slash")
	}
	methodOK := false
	for _, m := range allowedMethods {
		if s.Method == m {
			methodOK = true
		}
	}
	if !methodOK {
		return fmt.Errorf("method must be one of %s", strings.Join(allowedMethods, ", "))
	}
	if !strings.HasPrefix(s.Path, "/") {
		return errors.New("path must begin with a slash")
	}
	if s.JSON.IsDefined() && len(s.Form) != 0 {
		return errors.New("json and form cannot both be set")
	}
	if s.Expect.Status != 0 && (s.Expect.Status < 100 || s.Expect.Status > 599) {
		return fmt.Errorf("invalid status %d", s.Expect.Status)
	}
	return nil
}

// Build expands the scenario's placeholders and returns the request to send and the response
// to expect.
func (s FileScenario) Build(values *fakedata.Values) (servicedef.Request, Expect, error) {
	req := servicedef.Request{Method: s.Method, Path: s.Path}
	if s.JSON.IsDefined() {
		body, err := values.ExpandAll(s.JSON.value)
		if err != nil {
			return req, Expect{}, fmt.Errorf("json: %w", err)
		}
		req.JSON = ldvalue.CopyArbitraryValue(body)
	}
	var err error
	if req.Form, err = values.ExpandStrings(s.Form); err != nil {
		return req, Expect{}, fmt.Errorf("form: %w", err)
	}
	if req.Query, err = values.ExpandStrings(s.Query); err != nil {
		return req, Expect{}, fmt.Errorf("query: %w", err)
	}
	if req.Headers, err = values.ExpandStrings(s.Headers); err != nil {
		return req, Expect{}, fmt.Errorf("headers: %w", err)
	}

	expect := Expect{Status: s.Expect.Status}
	if s.Expect.Body.IsDefined() {
		body, err := values.ExpandAll(s.Expect.Body.value)
		if err != nil {
			return req, Expect{}, fmt.Errorf("expect.body: %w", err)
		}
		expect.Body = ldvalue.CopyArbitraryValue(body)
	}
	if len(s.Expect.Paths) != 0 {
		conditions := make(map[string]interface{}, len(s.Expect.Paths))
		for p, v := range s.Expect.Paths {
			conditions[p] = v.value
		}
		paths, err := values.ExpandAll(conditions)
		if err != nil {
			return req, Expect{}, fmt.Errorf("expect.paths: %w", err)
		}
		expect.Paths = make(map[string]ldvalue.Value)
		for p, v := range paths.(map[string]interface{}) {
			expect.Paths[p] = ldvalue.CopyArbitraryValue(v)
		}
	}
	return req, expect, nil
}

// DoFileScenarioTests returns a test group that runs each scenario as a subtest.
func DoFileScenarioTests(scenarios []FileScenario) func(*T) {
	return func(t *T) {
		for _, s := range scenarios {
			s := s
			t.Run(s.Name, func(t *T) {
				req, expect, err := s.Build(t.Fake().NewValues())
				require.NoError(t, err, "invalid scenario")
				t.Scenario(req, expect)
			})
		}
	}
}
