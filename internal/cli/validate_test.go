package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidFile(t *testing.T) {
	path := writeTempFile(t, "conditions.json",
		`[{"column":"status","operator":"=","value":"error"}]`)

	stdout, _, err := runCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", stdout)
}

func TestValidateCommand_JSONReportsShapeAndIncomplete(t *testing.T) {
	path := writeTempFile(t, "conditions.json",
		`{"and":[{"column":"status","operator":"=","value":"error"},{"column":"","operator":"=","value":""}]}`)

	stdout, _, err := runCommand(t, "--format", "json", "validate", path)
	require.NoError(t, err, "incomplete conditions are reported, not failed")

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 1, resp.Data.Version)
	assert.Equal(t, 1, resp.Data.Incomplete)
	assert.Empty(t, resp.Data.Errors)
}

func TestValidateCommand_CurrentShapeReportsVersion2(t *testing.T) {
	path := writeTempFile(t, "conditions.json",
		`{"version":2,"conditions":{"filterType":"group","logicalOperator":"AND","conditions":[]}}`)

	stdout, _, err := runCommand(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 2, resp.Data.Version)
}

func TestValidateCommand_UnknownShapeFails(t *testing.T) {
	path := writeTempFile(t, "conditions.json", `{"foo":"bar"}`)

	stdout, _, err := runCommand(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Data.Valid)
	assert.NotEmpty(t, resp.Data.Errors)
}

func TestValidateCommand_MalformedShapeFails(t *testing.T) {
	path := writeTempFile(t, "conditions.json", `{"and":"oops"}`)

	_, _, err := runCommand(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
