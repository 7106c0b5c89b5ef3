package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAlertFile_FullDefinition(t *testing.T) {
	path := writeTempFile(t, "alert.json", `{
		"stream_name": "default",
		"stream_type": "logs",
		"timestamp_column": "ts",
		"conditions": [{"column":"a","operator":"=","value":"1"}]
	}`)

	file, err := LoadAlertFile(path)
	require.NoError(t, err)
	assert.False(t, file.Bare)
	assert.Equal(t, "default", file.StreamName)
	assert.Equal(t, "logs", file.StreamType)
	assert.Equal(t, "ts", file.TimestampColumn)
	assert.JSONEq(t, `[{"column":"a","operator":"=","value":"1"}]`, string(file.Conditions))
}

func TestLoadAlertFile_BareDocument(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"flat array", `[{"column":"a","operator":"=","value":"1"}]`},
		{"backend node", `{"and":[]}`},
		{"tagged envelope", `{"version":2,"conditions":{"filterType":"group","logicalOperator":"AND","conditions":[]}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, "conditions.json", tc.content)
			file, err := LoadAlertFile(path)
			require.NoError(t, err)
			assert.True(t, file.Bare)
			assert.JSONEq(t, tc.content, string(file.Conditions))
		})
	}
}

func TestLoadAlertFile_YAMLNormalization(t *testing.T) {
	path := writeTempFile(t, "alert.yml", `
stream_name: default
conditions:
  - column: code
    operator: ">="
    value: 500
`)

	file, err := LoadAlertFile(path)
	require.NoError(t, err)
	assert.Equal(t, "default", file.StreamName)
	assert.JSONEq(t, `[{"column":"code","operator":">=","value":500}]`, string(file.Conditions))
}

func TestLoadAlertFile_FullDefinitionWithoutConditions(t *testing.T) {
	path := writeTempFile(t, "alert.json", `{"stream_name":"default"}`)

	file, err := LoadAlertFile(path)
	require.NoError(t, err)
	assert.Equal(t, "null", string(file.Conditions), "missing conditions mean an empty tree downstream")
}

func TestLoadAlertFile_BadYAML(t *testing.T) {
	path := writeTempFile(t, "alert.yaml", "stream_name: [unclosed")

	_, err := LoadAlertFile(path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
