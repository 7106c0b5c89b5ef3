package tree

// LogicalOp determines how the direct children of a Group combine.
type LogicalOp string

const (
	// LogicalAnd requires every child to match.
	LogicalAnd LogicalOp = "AND"
	// LogicalOr requires at least one child to match.
	LogicalOr LogicalOp = "OR"
)

// Valid reports whether the operator is one of the two supported values.
func (op LogicalOp) Valid() bool {
	return op == LogicalAnd || op == LogicalOr
}

// Operator is a leaf comparison operator.
//
// The comparison operators pass through to SQL unchanged; Contains and
// NotContains compile to LIKE patterns (see the sqlgen package).
type Operator string

const (
	OpEq          Operator = "="
	OpNeq         Operator = "!="
	OpGte         Operator = ">="
	OpLte         Operator = "<="
	OpGt          Operator = ">"
	OpLt          Operator = "<"
	OpContains    Operator = "Contains"
	OpNotContains Operator = "NotContains"
)

// Valid reports whether the operator is one of the supported comparisons.
func (op Operator) Valid() bool {
	switch op {
	case OpEq, OpNeq, OpGte, OpLte, OpGt, OpLt, OpContains, OpNotContains:
		return true
	}
	return false
}

// Node represents one node of a condition tree.
//
// This is a sealed interface - only *Condition and *Group implement it.
// The marker method prevents external implementations and enables
// exhaustive type switches in the converters and the SQL compiler.
type Node interface {
	conditionNode() // Marker method - seals interface to this package
}

// Condition is a leaf node: a single column/operator/value comparison.
//
// Value is required for all operators. Values is used only by list-style
// filters and may be empty. JoinWith records how the leaf combines with its
// previous sibling; it is an edit-time hint preserved for the UI and does
// not affect compilation (the parent Group's LogicalOp does).
type Condition struct {
	ID         string
	Column     string
	Operator   Operator
	Value      Scalar
	Values     []Scalar
	IgnoreCase bool
	JoinWith   LogicalOp
}

func (*Condition) conditionNode() {}

// Group is a boolean combination of child nodes.
//
// Children may be empty only transiently during editing; an empty group
// compiles to a no-op (true) predicate so it never breaks a surrounding
// join. Nested groups are parenthesized explicitly when compiled, so
// operator precedence is never ambiguous.
type Group struct {
	ID        string
	LogicalOp LogicalOp
	Children  []Node
}

func (*Group) conditionNode() {}

// NewGroup creates a group with the given operator and children.
// The id is left empty; EnsureIDs fills it in.
func NewGroup(op LogicalOp, children ...Node) *Group {
	return &Group{LogicalOp: op, Children: children}
}

// NewRoot creates an empty AND root group, the starting point for a fresh
// alert. The root of a tree is always a Group, never a bare leaf.
func NewRoot() *Group {
	return NewGroup(LogicalAnd)
}

// NewCondition creates a leaf comparing column against value.
// The id is left empty; EnsureIDs fills it in.
func NewCondition(column string, op Operator, value Scalar) *Condition {
	return &Condition{Column: column, Operator: op, Value: value}
}

// NodeID returns the id of a node regardless of its kind.
func NodeID(n Node) string {
	switch node := n.(type) {
	case *Condition:
		return node.ID
	case *Group:
		return node.ID
	default:
		return ""
	}
}

// Walk visits every node of the tree in depth-first, document order,
// starting at n. Traversal stops early when fn returns false.
func Walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			if !Walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the node. The copy shares nothing with the
// original, so mutating one never affects the other.
func Clone(n Node) Node {
	switch node := n.(type) {
	case *Condition:
		dup := *node
		if node.Values != nil {
			dup.Values = make([]Scalar, len(node.Values))
			copy(dup.Values, node.Values)
		}
		return &dup
	case *Group:
		dup := &Group{ID: node.ID, LogicalOp: node.LogicalOp}
		if node.Children != nil {
			dup.Children = make([]Node, len(node.Children))
			for i, child := range node.Children {
				dup.Children[i] = Clone(child)
			}
		}
		return dup
	default:
		return nil
	}
}

// CloneGroup is Clone specialized to a group root.
func CloneGroup(g *Group) *Group {
	if g == nil {
		return nil
	}
	return Clone(g).(*Group)
}
