package sqlgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openobserve/alertquery/internal/tree"
)

// Aggregation describes the optional post-grouping filter evaluated after
// GROUP BY.
//
// Enabled gates the whole descriptor with soft-delete semantics: toggling
// aggregation off leaves Function/GroupBy/Having populated in memory so
// the user's settings survive toggling it back on, but a disabled
// descriptor contributes nothing to compiled output.
type Aggregation struct {
	Enabled  bool     `json:"enabled"`
	Function string   `json:"function"`
	GroupBy  []string `json:"group_by"`
	Having   Having   `json:"having"`
}

// Having is the post-grouping comparison.
type Having struct {
	Column   string        `json:"column"`
	Operator tree.Operator `json:"operator"`
	Value    tree.Scalar   `json:"-"`
}

// compileAggregation emits the GROUP BY/HAVING fragment for an enabled
// descriptor. Callers have already checked agg.Enabled.
func (c *Compiler) compileAggregation(agg *Aggregation) (string, error) {
	groupBy := agg.GroupBy
	if len(groupBy) == 0 {
		// No explicit grouping columns: group per time bucket so the
		// aggregate is still evaluated over something bounded.
		if c.TimestampColumn == "" {
			return "", fmt.Errorf("aggregation needs group_by columns or a timestamp column")
		}
		groupBy = []string{c.TimestampColumn}
	}

	var sb strings.Builder
	sb.WriteString("GROUP BY ")
	sb.WriteString(strings.Join(groupBy, ", "))

	having, err := compileHaving(agg)
	if err != nil {
		return "", err
	}
	if having != "" {
		sb.WriteString(" HAVING ")
		sb.WriteString(having)
	}
	return sb.String(), nil
}

// compileHaving emits "fn(column) op value" with the same operator-mapping
// rules as leaves. An empty column, operator or value means no HAVING at
// all. When the column already names the aggregate itself (column ==
// function, e.g. a count alias), the bare name is emitted instead of
// wrapping it again.
func compileHaving(agg *Aggregation) (string, error) {
	h := agg.Having
	if h.Column == "" || h.Operator == "" || tree.IsEmpty(h.Value) {
		return "", nil
	}

	target := h.Column
	if agg.Function != "" && !strings.EqualFold(agg.Function, h.Column) {
		target = fmt.Sprintf("%s(%s)", agg.Function, h.Column)
	}

	switch h.Operator {
	case tree.OpContains:
		return fmt.Sprintf("%s LIKE %s", target, quote("%"+tree.ScalarString(h.Value)+"%")), nil
	case tree.OpNotContains:
		return fmt.Sprintf("%s NOT LIKE %s", target, quote("%"+tree.ScalarString(h.Value)+"%")), nil
	default:
		if !h.Operator.Valid() {
			return "", fmt.Errorf("unknown having operator %q", h.Operator)
		}
		return fmt.Sprintf("%s %s %s", target, h.Operator, literal(h.Value)), nil
	}
}

// MarshalJSON keeps Having's scalar value in its natural JSON form.
func (h Having) MarshalJSON() ([]byte, error) {
	value, err := tree.MarshalScalar(h.Value)
	if err != nil {
		return nil, err
	}
	type wire struct {
		Column   string          `json:"column"`
		Operator string          `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	return json.Marshal(wire{Column: h.Column, Operator: string(h.Operator), Value: value})
}

// UnmarshalJSON decodes Having, accepting any scalar value type.
func (h *Having) UnmarshalJSON(data []byte) error {
	var wire struct {
		Column   string          `json:"column"`
		Operator string          `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	h.Column = wire.Column
	h.Operator = tree.Operator(wire.Operator)
	if len(wire.Value) > 0 {
		v, err := tree.ParseScalar(wire.Value)
		if err != nil {
			return fmt.Errorf("having value: %w", err)
		}
		h.Value = v
	}
	return nil
}
