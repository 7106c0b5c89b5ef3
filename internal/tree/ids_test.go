package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureIDs_AssignsMissing(t *testing.T) {
	root := NewGroup(LogicalAnd,
		NewCondition("status", OpEq, String("active")),
		NewGroup(LogicalOr,
			NewCondition("code", OpGte, Int(500)),
		),
	)

	assigned := EnsureIDs(root)
	assert.Equal(t, 4, assigned) // root, leaf, nested group, nested leaf

	seen := map[string]bool{}
	Walk(root, func(n Node) bool {
		id := NodeID(n)
		require.NotEmpty(t, id, "every node must carry an id")
		require.False(t, seen[id], "ids must be unique within one tree")
		seen[id] = true
		return true
	})
}

func TestEnsureIDs_PreservesExisting(t *testing.T) {
	leaf := NewCondition("status", OpEq, String("active"))
	leaf.ID = "L1"
	root := NewGroup(LogicalAnd, leaf)
	root.ID = "G1"

	assigned := EnsureIDs(root)
	assert.Equal(t, 0, assigned)
	assert.Equal(t, "G1", root.ID)
	assert.Equal(t, "L1", leaf.ID)
}

func TestEnsureIDs_Idempotent(t *testing.T) {
	root := NewGroup(LogicalAnd,
		NewCondition("a", OpEq, String("1")),
		NewGroup(LogicalOr, NewCondition("b", OpNeq, String("2"))),
	)

	EnsureIDs(root)
	before := collectIDs(root)

	assigned := EnsureIDs(root)
	assert.Equal(t, 0, assigned, "second pass must change nothing")
	assert.Equal(t, before, collectIDs(root))
}

func TestEnsureIDs_NeverReorders(t *testing.T) {
	a := NewCondition("a", OpEq, String("1"))
	b := NewCondition("b", OpEq, String("2"))
	c := NewCondition("c", OpEq, String("3"))
	root := NewGroup(LogicalAnd, a, b, c)

	EnsureIDs(root)

	require.Len(t, root.Children, 3)
	assert.Same(t, a, root.Children[0])
	assert.Same(t, b, root.Children[1])
	assert.Same(t, c, root.Children[2])
}

func collectIDs(root *Group) []string {
	var ids []string
	Walk(root, func(n Node) bool {
		ids = append(ids, NodeID(n))
		return true
	})
	return ids
}
