package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Scalar is a sealed interface over the value types a leaf may compare
// against. Only String, Int, Float, Bool and Null implement it.
//
// Int and Float are kept distinct so that a threshold entered as 5 survives
// round-trips as 5, not 5.0. Alert thresholds are frequently fractional
// (latency seconds, error ratios), so floats are first-class here.
type Scalar interface {
	scalarValue() // Sealed - only these types implement it
}

// String is a string scalar.
type String string

func (String) scalarValue() {}

// Int is an integer scalar, always int64.
type Int int64

func (Int) scalarValue() {}

// Float is a floating-point scalar.
type Float float64

func (Float) scalarValue() {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) scalarValue() {}

// Null represents an absent value. A leaf whose Value is Null (or nil) is
// incomplete and blocks SQL compilation; it is not an error while editing.
type Null struct{}

func (Null) scalarValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IsNumeric reports whether the scalar is an Int or a Float. Numeric
// scalars are emitted unquoted in compiled SQL.
func IsNumeric(s Scalar) bool {
	switch s.(type) {
	case Int, Float:
		return true
	}
	return false
}

// IsEmpty reports whether the scalar is missing or an empty string, the
// "still being typed" state the compiler must treat as not ready.
func IsEmpty(s Scalar) bool {
	switch v := s.(type) {
	case nil, Null:
		return true
	case String:
		return v == ""
	}
	return false
}

// ScalarString renders a scalar as the plain text the SQL compiler embeds.
// Int and Float use the shortest exact decimal form so identical trees
// always render identical text.
func ScalarString(s Scalar) string {
	switch v := s.(type) {
	case String:
		return string(v)
	case Int:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case Bool:
		if v {
			return "true"
		}
		return "false"
	case nil, Null:
		return ""
	default:
		return ""
	}
}

// ParseScalar decodes a single JSON value into the matching Scalar type.
// Integers that fit int64 become Int; any other number becomes Float.
func ParseScalar(data []byte) (Scalar, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil

	case 'n':
		if string(data) != "null" {
			return nil, fmt.Errorf("invalid JSON value: %s", string(data))
		}
		return Null{}, nil

	case '[', '{':
		return nil, fmt.Errorf("condition values must be scalar, got %c", data[0])

	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", n.String(), err)
		}
		return Float(f), nil
	}
}

// MarshalScalar encodes a scalar back to its JSON form.
func MarshalScalar(s Scalar) ([]byte, error) {
	switch v := s.(type) {
	case String:
		return json.Marshal(string(v))
	case Int:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case Float:
		return json.Marshal(float64(v))
	case Bool:
		return json.Marshal(bool(v))
	case nil, Null:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unsupported scalar type: %T", s)
	}
}
