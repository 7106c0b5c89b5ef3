package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openobserve/alertquery/internal/tree"
)

func TestConvertV0_WrapsInRootANDGroup(t *testing.T) {
	raw := json.RawMessage(`[
		{"column":"status","operator":"=","value":"active"},
		{"column":"code","operator":">=","value":500}
	]`)

	root, err := ConvertV0(raw)
	require.NoError(t, err)

	assert.Equal(t, tree.LogicalAnd, root.LogicalOp)
	require.Len(t, root.Children, 2)

	first := root.Children[0].(*tree.Condition)
	assert.Equal(t, "status", first.Column)
	assert.Equal(t, tree.OpEq, first.Operator)
	assert.Equal(t, tree.String("active"), first.Value)

	second := root.Children[1].(*tree.Condition)
	assert.Equal(t, tree.Int(500), second.Value)

	tree.Walk(root, func(n tree.Node) bool {
		assert.NotEmpty(t, tree.NodeID(n), "converter must leave every node with an id")
		return true
	})
}

func TestConvertV0_EmptyArray(t *testing.T) {
	root, err := ConvertV0(json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Equal(t, tree.LogicalAnd, root.LogicalOp)
	assert.Empty(t, root.Children)
}

func TestConvertV1Backend_Nested(t *testing.T) {
	raw := json.RawMessage(`{
		"and": [
			{"column":"status","operator":"=","value":"active"},
			{"or": [
				{"column":"code","operator":">=","value":500},
				{"column":"code","operator":"<","value":200}
			]}
		]
	}`)

	root, err := ConvertV1Backend(raw)
	require.NoError(t, err)

	assert.Equal(t, tree.LogicalAnd, root.LogicalOp)
	require.Len(t, root.Children, 2)

	nested, ok := root.Children[1].(*tree.Group)
	require.True(t, ok, "nested or node must become a group")
	assert.Equal(t, tree.LogicalOr, nested.LogicalOp)
	require.Len(t, nested.Children, 2)
}

func TestConvertV1Backend_MalformedPayload(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"and holds an object", `{"and":{"column":"a"}}`},
		{"and holds a string", `{"and":"oops"}`},
		{"nested or holds a number", `{"and":[{"or":7}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ConvertV1Backend(json.RawMessage(tc.input))
			require.Error(t, err)
			assert.True(t, IsMalformedShape(err), "must be MALFORMED_LEGACY_SHAPE, got %v", err)
		})
	}
}

func TestConvertV1Frontend_PreservesGroupIDs(t *testing.T) {
	raw := json.RawMessage(`{
		"label": "or",
		"groupId": "g1",
		"items": [
			{"column":"status","operator":"=","value":"active"},
			{"label":"and","groupId":"g2","items":[
				{"column":"code","operator":">=","value":500}
			]}
		]
	}`)

	root, err := ConvertV1Frontend(raw)
	require.NoError(t, err)

	assert.Equal(t, "g1", root.ID)
	assert.Equal(t, tree.LogicalOr, root.LogicalOp)
	require.Len(t, root.Children, 2)

	nested := root.Children[1].(*tree.Group)
	assert.Equal(t, "g2", nested.ID)
	assert.Equal(t, tree.LogicalAnd, nested.LogicalOp)
}

func TestConvertV1Frontend_MalformedItems(t *testing.T) {
	_, err := ConvertV1Frontend(json.RawMessage(`{"label":"and","groupId":"g1","items":"oops"}`))
	require.Error(t, err)
	assert.True(t, IsMalformedShape(err))
}

func TestConvertV1Frontend_EmptyItems(t *testing.T) {
	root, err := ConvertV1Frontend(json.RawMessage(`{"label":"and","groupId":"g1","items":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "g1", root.ID)
	assert.Empty(t, root.Children)
}

func TestConverters_DoNotMutateInput(t *testing.T) {
	raw := json.RawMessage(`{"and":[{"column":"a","operator":"=","value":"1"}]}`)
	before := string(raw)

	_, err := ConvertV1Backend(raw)
	require.NoError(t, err)
	assert.Equal(t, before, string(raw))
}
