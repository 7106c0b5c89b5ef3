package tree

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Filter type tags distinguishing node kinds in the version-2 wire shape.
const (
	FilterTypeGroup     = "group"
	FilterTypeCondition = "condition"
)

// groupWire is the JSON shape of a Group.
type groupWire struct {
	FilterType      string            `json:"filterType"`
	LogicalOperator string            `json:"logicalOperator"`
	GroupID         string            `json:"groupId,omitempty"`
	Conditions      []json.RawMessage `json:"conditions"`
}

// conditionWire is the JSON shape of a Condition.
type conditionWire struct {
	FilterType      string            `json:"filterType"`
	ID              string            `json:"id,omitempty"`
	Column          string            `json:"column"`
	Operator        string            `json:"operator"`
	Value           json.RawMessage   `json:"value"`
	Values          []json.RawMessage `json:"values,omitempty"`
	IgnoreCase      bool              `json:"ignoreCase,omitempty"`
	LogicalOperator string            `json:"logicalOperator,omitempty"`
}

// MarshalJSON emits the version-2 tagged wire shape for a group.
// An empty Children slice serializes as [] rather than null so the wire
// shape is always a well-formed group object.
func (g *Group) MarshalJSON() ([]byte, error) {
	conditions := make([]json.RawMessage, len(g.Children))
	for i, child := range g.Children {
		data, err := json.Marshal(child)
		if err != nil {
			return nil, err
		}
		conditions[i] = data
	}
	return json.Marshal(groupWire{
		FilterType:      FilterTypeGroup,
		LogicalOperator: string(g.LogicalOp),
		GroupID:         g.ID,
		Conditions:      conditions,
	})
}

// UnmarshalJSON decodes the version-2 tagged wire shape into a group.
func (g *Group) UnmarshalJSON(data []byte) error {
	var wire groupWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	op, err := ParseLogicalOp(wire.LogicalOperator)
	if err != nil {
		return err
	}
	g.ID = wire.GroupID
	g.LogicalOp = op
	g.Children = make([]Node, 0, len(wire.Conditions))
	for i, raw := range wire.Conditions {
		child, err := DecodeNode(raw)
		if err != nil {
			return fmt.Errorf("conditions[%d]: %w", i, err)
		}
		g.Children = append(g.Children, child)
	}
	return nil
}

// MarshalJSON emits the version-2 tagged wire shape for a condition.
func (c *Condition) MarshalJSON() ([]byte, error) {
	value, err := MarshalScalar(c.Value)
	if err != nil {
		return nil, err
	}
	wire := conditionWire{
		FilterType:      FilterTypeCondition,
		ID:              c.ID,
		Column:          c.Column,
		Operator:        string(c.Operator),
		Value:           value,
		IgnoreCase:      c.IgnoreCase,
		LogicalOperator: string(c.JoinWith),
	}
	if len(c.Values) > 0 {
		wire.Values = make([]json.RawMessage, len(c.Values))
		for i, v := range c.Values {
			data, err := MarshalScalar(v)
			if err != nil {
				return nil, err
			}
			wire.Values[i] = data
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the version-2 tagged wire shape into a condition.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var wire conditionWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cond, err := conditionFromWire(&wire)
	if err != nil {
		return err
	}
	*c = *cond
	return nil
}

func conditionFromWire(wire *conditionWire) (*Condition, error) {
	cond := &Condition{
		ID:         wire.ID,
		Column:     wire.Column,
		Operator:   Operator(wire.Operator),
		IgnoreCase: wire.IgnoreCase,
	}
	if wire.LogicalOperator != "" {
		op, err := ParseLogicalOp(wire.LogicalOperator)
		if err != nil {
			return nil, err
		}
		cond.JoinWith = op
	}
	if len(wire.Value) > 0 {
		value, err := ParseScalar(wire.Value)
		if err != nil {
			return nil, fmt.Errorf("condition value: %w", err)
		}
		cond.Value = value
	}
	if len(wire.Values) > 0 {
		cond.Values = make([]Scalar, len(wire.Values))
		for i, raw := range wire.Values {
			v, err := ParseScalar(raw)
			if err != nil {
				return nil, fmt.Errorf("condition values[%d]: %w", i, err)
			}
			cond.Values[i] = v
		}
	}
	return cond, nil
}

// DecodeNode decodes one version-2 wire node, dispatching on its filterType
// tag. Objects without a tag are treated as conditions when they carry a
// column, matching trees persisted before the tag was introduced.
func DecodeNode(data []byte) (Node, error) {
	var probe struct {
		FilterType string          `json:"filterType"`
		Column     *string         `json:"column"`
		Conditions json.RawMessage `json:"conditions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	kind := probe.FilterType
	if kind == "" {
		switch {
		case probe.Column != nil:
			kind = FilterTypeCondition
		case probe.Conditions != nil:
			kind = FilterTypeGroup
		default:
			return nil, fmt.Errorf("node has neither filterType, column nor conditions")
		}
	}

	switch kind {
	case FilterTypeGroup:
		g := &Group{}
		if err := json.Unmarshal(data, g); err != nil {
			return nil, err
		}
		return g, nil
	case FilterTypeCondition:
		c := &Condition{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown filterType %q", probe.FilterType)
	}
}

// ParseLogicalOp normalizes a logical operator string. Legacy shapes spell
// the operator in lower case ("and"/"or"); the current shape upper-cases it.
func ParseLogicalOp(s string) (LogicalOp, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AND", "":
		return LogicalAnd, nil
	case "OR":
		return LogicalOr, nil
	default:
		return "", fmt.Errorf("unknown logical operator %q", s)
	}
}
