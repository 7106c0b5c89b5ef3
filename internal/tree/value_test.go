package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalar(t *testing.T) {
	cases := []struct {
		input string
		want  Scalar
	}{
		{`"active"`, String("active")},
		{`500`, Int(500)},
		{`0.25`, Float(0.25)},
		{`-3`, Int(-3)},
		{`true`, Bool(true)},
		{`false`, Bool(false)},
		{`null`, Null{}},
	}

	for _, tc := range cases {
		got, err := ParseScalar([]byte(tc.input))
		require.NoError(t, err, "input %s", tc.input)
		assert.Equal(t, tc.want, got, "input %s", tc.input)
	}
}

func TestParseScalar_RejectsComposites(t *testing.T) {
	for _, input := range []string{`[1,2]`, `{"a":1}`, ``, `nope`} {
		_, err := ParseScalar([]byte(input))
		assert.Error(t, err, "input %s", input)
	}
}

func TestScalarPredicates(t *testing.T) {
	assert.True(t, IsNumeric(Int(1)))
	assert.True(t, IsNumeric(Float(0.5)))
	assert.False(t, IsNumeric(String("1")))
	assert.False(t, IsNumeric(Bool(true)))
	assert.False(t, IsNumeric(nil))

	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(Null{}))
	assert.True(t, IsEmpty(String("")))
	assert.False(t, IsEmpty(String("x")))
	assert.False(t, IsEmpty(Int(0)))
	assert.False(t, IsEmpty(Bool(false)))
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "active", ScalarString(String("active")))
	assert.Equal(t, "500", ScalarString(Int(500)))
	assert.Equal(t, "0.25", ScalarString(Float(0.25)))
	assert.Equal(t, "true", ScalarString(Bool(true)))
	assert.Equal(t, "", ScalarString(nil))
}
