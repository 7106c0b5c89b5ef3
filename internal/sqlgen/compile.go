package sqlgen

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/openobserve/alertquery/internal/tree"
)

// ErrIncomplete reports a tree that cannot compile yet because some leaf
// is missing its column or value. This is the normal state while the user
// is mid-typing, not a defect in the tree.
var ErrIncomplete = errors.New("condition tree has incomplete conditions")

// Output is the result of compiling a tree.
type Output struct {
	// Where is the SQL boolean expression for the tree.
	Where string

	// GroupByHaving is the aggregation fragment ("GROUP BY ... HAVING
	// ..."), empty when aggregation is absent or disabled.
	GroupByHaving string
}

// Compiler compiles condition trees for one target stream.
type Compiler struct {
	// TimestampColumn is the stream's time column. When aggregation is
	// enabled with no explicit group-by columns, rows are grouped by it.
	TimestampColumn string
}

// New creates a compiler for a stream with the given timestamp column.
func New(timestampColumn string) *Compiler {
	return &Compiler{TimestampColumn: timestampColumn}
}

// Compile walks the tree and produces its SQL predicate plus, when agg is
// enabled, the GROUP BY/HAVING fragment.
//
// Identical trees always compile to byte-identical text: ids never affect
// the output, and child order is preserved as-is.
func (c *Compiler) Compile(root *tree.Group, agg *Aggregation) (Output, error) {
	if root == nil {
		return Output{}, fmt.Errorf("cannot compile nil tree")
	}
	if leaves := Incomplete(root); len(leaves) > 0 {
		return Output{}, fmt.Errorf("%w: %d leaf(s) missing column or value", ErrIncomplete, len(leaves))
	}

	where := compileGroup(root, true)

	out := Output{Where: where}
	if agg != nil && agg.Enabled {
		fragment, err := c.compileAggregation(agg)
		if err != nil {
			return Output{}, err
		}
		out.GroupByHaving = fragment
	}
	return out, nil
}

// Compile is a convenience wrapper for one-shot compilation.
func Compile(root *tree.Group, agg *Aggregation, timestampColumn string) (Output, error) {
	return New(timestampColumn).Compile(root, agg)
}

// compileGroup joins the compiled children with the group's operator.
// Only the root goes unparenthesized; nested groups always wrap
// themselves so precedence is explicit in the text.
func compileGroup(g *tree.Group, isRoot bool) string {
	if len(g.Children) == 0 {
		// A group emptied mid-edit is a no-op predicate, never an
		// empty string that would corrupt a surrounding join.
		if isRoot {
			return "true"
		}
		return "(true)"
	}

	parts := make([]string, len(g.Children))
	for i, child := range g.Children {
		switch n := child.(type) {
		case *tree.Condition:
			parts[i] = compileLeaf(n)
		case *tree.Group:
			parts[i] = compileGroup(n, false)
		}
	}

	joined := strings.Join(parts, " "+string(g.LogicalOp)+" ")
	if isRoot {
		return joined
	}
	return "(" + joined + ")"
}

// compileLeaf emits a single comparison. List-style leaves (non-empty
// Values) compile to IN / NOT IN; everything else is a binary comparison
// with the operator mapping:
//
//	=  !=  >=  <=  >  <   pass through
//	Contains              LIKE '%value%'
//	NotContains           NOT LIKE '%value%'
//
// IgnoreCase lower-cases both sides in the emitted SQL rather than relying
// on a collation.
func compileLeaf(c *tree.Condition) string {
	column := c.Column

	if len(c.Values) > 0 && (c.Operator == tree.OpEq || c.Operator == tree.OpNeq) {
		return compileList(c)
	}

	switch c.Operator {
	case tree.OpContains:
		return likeExpr(column, c.Value, false, c.IgnoreCase)
	case tree.OpNotContains:
		return likeExpr(column, c.Value, true, c.IgnoreCase)
	default:
		lit := literal(c.Value)
		if c.IgnoreCase && !tree.IsNumeric(c.Value) {
			return fmt.Sprintf("LOWER(%s) %s LOWER(%s)", column, c.Operator, lit)
		}
		return fmt.Sprintf("%s %s %s", column, c.Operator, lit)
	}
}

// compileList emits col IN (...) / col NOT IN (...) for list-style leaves.
func compileList(c *tree.Condition) string {
	items := make([]string, len(c.Values))
	for i, v := range c.Values {
		items[i] = literal(v)
		if c.IgnoreCase && !tree.IsNumeric(v) {
			items[i] = "LOWER(" + items[i] + ")"
		}
	}
	op := "IN"
	if c.Operator == tree.OpNeq {
		op = "NOT IN"
	}
	column := c.Column
	if c.IgnoreCase {
		column = "LOWER(" + column + ")"
	}
	return fmt.Sprintf("%s %s (%s)", column, op, strings.Join(items, ", "))
}

func likeExpr(column string, value tree.Scalar, negate, ignoreCase bool) string {
	pattern := quote("%" + tree.ScalarString(value) + "%")
	op := "LIKE"
	if negate {
		op = "NOT LIKE"
	}
	if ignoreCase {
		return fmt.Sprintf("LOWER(%s) %s LOWER(%s)", column, op, pattern)
	}
	return fmt.Sprintf("%s %s %s", column, op, pattern)
}

// literal renders a scalar as a SQL literal. Numeric and boolean scalars
// go unquoted; strings are NFC-normalized and single-quoted.
func literal(v tree.Scalar) string {
	if tree.IsNumeric(v) {
		return tree.ScalarString(v)
	}
	if b, ok := v.(tree.Bool); ok {
		if b {
			return "true"
		}
		return "false"
	}
	return quote(tree.ScalarString(v))
}

// quote single-quotes a string literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(norm.NFC.String(s), "'", "''") + "'"
}

// Incomplete returns the leaves that block compilation: empty column, or
// no usable value (list leaves count their Values list). The tree itself
// is untouched - partially-filled leaves are legal while editing.
func Incomplete(root *tree.Group) []*tree.Condition {
	var out []*tree.Condition
	tree.Walk(root, func(n tree.Node) bool {
		if c, ok := n.(*tree.Condition); ok {
			if c.Column == "" || (tree.IsEmpty(c.Value) && len(c.Values) == 0) {
				out = append(out, c)
			}
		}
		return true
	})
	return out
}

// Ready reports whether the tree compiles as-is.
func Ready(root *tree.Group) bool {
	return root != nil && len(Incomplete(root)) == 0
}
