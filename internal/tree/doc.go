// Package tree defines the alert condition tree: the recursive boolean
// expression a user builds while editing an alert.
//
// A tree is a tagged union of two node kinds:
//
//   - Condition: a single column/operator/value comparison (a leaf)
//   - Group: an AND/OR combination of child nodes (leaves or nested groups)
//
// The root of every tree is a Group, even when it holds a single leaf. Every
// node carries an id that is unique within its tree; EnsureIDs assigns ids to
// nodes that are missing one and never touches nodes that already have one.
//
// SEALED UNION:
//
// Node is a sealed interface using the marker method pattern. Only Condition
// and Group implement it, so consumers can type-switch exhaustively instead
// of probing marker fields:
//
//	switch n := node.(type) {
//	case *tree.Condition:
//	    // leaf
//	case *tree.Group:
//	    // recurse into n.Children
//	}
//
// OWNERSHIP:
//
// A tree is owned exclusively by one editing session. All operations in this
// package are synchronous and single-threaded; mutation helpers
// (UpdateGroup, RemoveConditionGroup) modify the tree in place and return
// whether anything changed. Callers that need isolation use Clone.
//
// SERIALIZATION:
//
// The JSON form of a tree is the version-2 wire shape: groups are objects
// with filterType "group", a logicalOperator, a groupId and a conditions
// array; leaves are flat objects with filterType "condition". Legacy wire
// shapes are handled by the legacy package, never here.
package tree
