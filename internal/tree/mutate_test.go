package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFixture returns G1{AND}[leaf(L1), G2{OR}[leaf(L2)]].
func buildFixture() (*Group, *Condition, *Group, *Condition) {
	l1 := NewCondition("a", OpEq, String("1"))
	l1.ID = "L1"
	l2 := NewCondition("b", OpEq, String("2"))
	l2.ID = "L2"
	g2 := NewGroup(LogicalOr, l2)
	g2.ID = "G2"
	g1 := NewGroup(LogicalAnd, l1, g2)
	g1.ID = "G1"
	return g1, l1, g2, l2
}

func TestUpdateGroup_ReplacesNestedGroup(t *testing.T) {
	root, _, _, _ := buildFixture()

	updated := NewGroup(LogicalAnd, NewCondition("c", OpGt, Int(9)))
	updated.ID = "G2"

	require.True(t, UpdateGroup(root, updated))
	require.Len(t, root.Children, 2)
	assert.Same(t, updated, root.Children[1])
}

func TestUpdateGroup_RootItself(t *testing.T) {
	root, _, _, _ := buildFixture()

	updated := NewGroup(LogicalOr)
	updated.ID = "G1"

	require.True(t, UpdateGroup(root, updated))
	assert.Equal(t, LogicalOr, root.LogicalOp)
	assert.Empty(t, root.Children)
}

func TestUpdateGroup_MissingIDIsSilentNoOp(t *testing.T) {
	root, _, _, _ := buildFixture()
	before := collectIDs(root)

	updated := NewGroup(LogicalOr)
	updated.ID = "gone"

	// The UI may update a group that a previous edit already removed;
	// that must not be an error and must not touch the tree.
	assert.False(t, UpdateGroup(root, updated))
	assert.Equal(t, before, collectIDs(root))
}

func TestRemoveConditionGroup_LeavesEmptiedGroupInPlace(t *testing.T) {
	root, l1, g2, _ := buildFixture()

	require.True(t, RemoveConditionGroup(root, "L2"))

	require.Len(t, root.Children, 2)
	assert.Same(t, l1, root.Children[0])
	assert.Same(t, g2, root.Children[1])
	assert.Empty(t, g2.Children, "emptied nested group stays, it is not collapsed")
}

func TestRemoveConditionGroup_RemovesNestedGroup(t *testing.T) {
	root, l1, _, _ := buildFixture()

	require.True(t, RemoveConditionGroup(root, "G2"))
	require.Len(t, root.Children, 1)
	assert.Same(t, l1, root.Children[0])
}

func TestRemoveConditionGroup_MissingID(t *testing.T) {
	root, _, _, _ := buildFixture()
	assert.False(t, RemoveConditionGroup(root, "nope"))
	assert.Len(t, root.Children, 2)
}

func TestFindNode(t *testing.T) {
	root, _, g2, l2 := buildFixture()

	assert.Same(t, Node(l2), FindNode(root, "L2"))
	assert.Same(t, Node(g2), FindNode(root, "G2"))
	assert.Nil(t, FindNode(root, "missing"))
}

func TestClone_SharesNothing(t *testing.T) {
	root, _, _, l2 := buildFixture()

	dup := CloneGroup(root)
	require.Equal(t, collectIDs(root), collectIDs(dup))

	l2.Column = "changed"
	cloned := FindNode(dup, "L2").(*Condition)
	assert.Equal(t, "b", cloned.Column, "mutating the original must not leak into the clone")
}
