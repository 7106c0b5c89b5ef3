package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_KnownShapes(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		version Version
		dialect Dialect
	}{
		{
			name:    "flat array is shape 0",
			input:   `[{"column":"a","operator":"=","value":"1"}]`,
			version: Version0,
		},
		{
			name:    "and key is shape 1 backend",
			input:   `{"and":[{"column":"a","operator":"=","value":"1"}]}`,
			version: Version1,
			dialect: DialectBackend,
		},
		{
			name:    "or key is shape 1 backend",
			input:   `{"or":[{"column":"a","operator":"=","value":"1"}]}`,
			version: Version1,
			dialect: DialectBackend,
		},
		{
			name:    "label plus items is shape 1 frontend",
			input:   `{"label":"and","groupId":"g1","items":[]}`,
			version: Version1,
			dialect: DialectFrontend,
		},
		{
			name:    "tagged envelope is shape 2",
			input:   `{"version":2,"conditions":{"filterType":"group","logicalOperator":"AND","groupId":"g1","conditions":[]}}`,
			version: Version2,
		},
		{
			name:    "string version tag is shape 2",
			input:   `{"version":"2","conditions":{"filterType":"group","logicalOperator":"AND","conditions":[]}}`,
			version: Version2,
		},
		{
			name:    "untagged filterType document is shape 2",
			input:   `{"filterType":"group","logicalOperator":"AND","conditions":[]}`,
			version: Version2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detection, err := Detect(json.RawMessage(tc.input))
			require.NoError(t, err)
			assert.False(t, detection.Empty)
			assert.Equal(t, tc.version, detection.Version)
			assert.Equal(t, tc.dialect, detection.Dialect)
		})
	}
}

func TestDetect_TaggedEnvelopeUnwrapsPayload(t *testing.T) {
	detection, err := Detect(json.RawMessage(`{"version":2,"conditions":{"filterType":"group","logicalOperator":"OR","conditions":[]}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"filterType":"group","logicalOperator":"OR","conditions":[]}`, string(detection.Payload))
}

func TestDetect_EmptyInputs(t *testing.T) {
	for _, input := range []string{"", "null", "{}", `""`, "  \n "} {
		detection, err := Detect(json.RawMessage(input))
		require.NoError(t, err, "input %q", input)
		assert.True(t, detection.Empty, "input %q must mean no conditions", input)
	}
}

func TestDetect_UnknownShape(t *testing.T) {
	cases := []string{
		`{"foo":"bar"}`,
		`42`,
		`"just a string"`,
	}
	for _, input := range cases {
		_, err := Detect(json.RawMessage(input))
		require.Error(t, err, "input %q", input)
		assert.True(t, IsUnknownShape(err), "input %q must be UNKNOWN_SHAPE", input)
	}
}
