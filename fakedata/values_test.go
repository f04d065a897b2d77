package fakedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBindsValuesOnce(t *testing.T) {
	v := New(1).NewValues()

	first, err := v.Expand("{{mail=faker.email}}")
	require.NoError(t, err)
	again, err := v.Expand("{{ mail }}")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	bound, ok := v.Get("mail")
	assert.True(t, ok)
	assert.Equal(t, first, bound)
}

func TestExpandKeepsTypeOfSinglePlaceholder(t *testing.T) {
	v := New(1).NewValues()

	b, err := v.Expand("{{done=faker.boolean}}")
	require.NoError(t, err)
	assert.IsType(t, false, b)

	n, err := v.Expand("{{faker.number}}")
	require.NoError(t, err)
	assert.IsType(t, 0, n)

	s, err := v.Expand("done: {{done}}")
	require.NoError(t, err)
	assert.Equal(t, "done: "+map[bool]string{true: "true", false: "false"}[b.(bool)], s)
}

func TestExpandLeavesPlainStringsAlone(t *testing.T) {
	v := New(1).NewValues()
	s, err := v.Expand("books")
	require.NoError(t, err)
	assert.Equal(t, "books", s)
}

func TestExpandErrors(t *testing.T) {
	v := New(1).NewValues()

	_, err := v.Expand("{{user}}")
	assert.EqualError(t, err, `undefined value "user"`)

	_, err = v.Expand("{{faker.zipcode}}")
	assert.Error(t, err)

	_, err = v.Expand("{{a=faker.word}}")
	require.NoError(t, err)
	_, err = v.Expand("{{a=faker.word}}")
	assert.EqualError(t, err, `value "a" is defined more than once`)

	_, err = v.Expand("{{b=a}}")
	assert.EqualError(t, err, `cannot bind "b" to "a", which is not a faker value`)

	_, err = v.Expand("prefix {{missing}}")
	assert.EqualError(t, err, `undefined value "missing"`)
}

func TestExpandAll(t *testing.T) {
	v := New(1).NewValues()
	data := map[string]interface{}{
		"a": "{{id=faker.uuid}}",
		"b": []interface{}{"{{id}}", 3, true},
		"c": map[string]interface{}{"same": "{{id}}"},
	}
	out, err := v.ExpandAll(data)
	require.NoError(t, err)

	m := out.(map[string]interface{})
	id := m["a"]
	assert.Equal(t, []interface{}{id, 3, true}, m["b"])
	assert.Equal(t, map[string]interface{}{"same": id}, m["c"])

	_, err = New(1).NewValues().ExpandAll(map[string]interface{}{"a": "{{later}}", "b": "{{later=faker.word}}"})
	assert.EqualError(t, err, `a: undefined value "later"`)
}

func TestExpandStrings(t *testing.T) {
	v := New(1).NewValues()
	out, err := v.ExpandStrings(map[string]string{"page": "{{faker.number}}", "search": "books"})
	require.NoError(t, err)
	assert.Equal(t, "books", out["search"])
	assert.NotEmpty(t, out["page"])

	none, err := v.ExpandStrings(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}
