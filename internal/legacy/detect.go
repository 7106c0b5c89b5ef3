package legacy

import (
	"bytes"
	"encoding/json"
)

// Version identifies a historical wire shape of the condition tree.
type Version int

const (
	// Version0 is the flat shape: a bare array of leaves, implicit AND.
	Version0 Version = 0
	// Version1 is the nested shape, in one of two dialects.
	Version1 Version = 1
	// Version2 is the current tagged-union shape.
	Version2 Version = 2
)

// Dialect distinguishes the two sub-dialects of the nested shape.
type Dialect int

const (
	// DialectNone applies to shapes 0 and 2, which have no dialects.
	DialectNone Dialect = iota
	// DialectBackend is the {and: [...]} / {or: [...]} form.
	DialectBackend
	// DialectFrontend is the {label, groupId, items: [...]} edit-time form.
	DialectFrontend
)

// Detection is the result of classifying raw persisted bytes.
type Detection struct {
	Version Version
	Dialect Dialect

	// Payload is the tree content to convert. For a version-tagged
	// envelope this is the unwrapped "conditions" value; otherwise it is
	// the input itself.
	Payload json.RawMessage

	// Empty is set when the input holds no conditions at all (null,
	// missing, or an empty document). The caller starts from a fresh
	// empty root group instead of invoking a converter.
	Empty bool
}

// rawProbe surfaces just the keys detection dispatches on.
type rawProbe struct {
	Version    json.RawMessage `json:"version"`
	Conditions json.RawMessage `json:"conditions"`
	FilterType json.RawMessage `json:"filterType"`
	And        json.RawMessage `json:"and"`
	Or         json.RawMessage `json:"or"`
	Label      json.RawMessage `json:"label"`
	Items      json.RawMessage `json:"items"`
}

// Detect classifies raw persisted bytes as one of the historical shapes.
//
// Classification is deterministic, pure structural inspection - no
// heuristics on content. The rules are checked in order:
//
//  1. An object with an explicit version tag of 2 (string or number) is
//     shape 2; the nested "conditions" payload is unwrapped.
//  2. An array is shape 0.
//  3. An object with an "and" or "or" key is shape 1, backend dialect.
//  4. An object with both "label" and "items" is shape 1, edit-time dialect.
//  5. An object with "filterType" and a "conditions" array is shape 2
//     without a version tag (persisted before tagging was added).
//  6. Null, missing or empty input means "no conditions yet".
//
// Anything else non-empty is an UNKNOWN_SHAPE error.
func Detect(raw json.RawMessage) (Detection, error) {
	trimmed := bytes.TrimSpace(raw)
	if isEmptyDocument(trimmed) {
		return Detection{Version: Version2, Empty: true}, nil
	}

	if trimmed[0] == '[' {
		return Detection{Version: Version0, Payload: trimmed}, nil
	}

	if trimmed[0] != '{' {
		return Detection{}, unknown("conditions must be an object or array, got %q", previewOf(trimmed))
	}

	var probe rawProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Detection{}, unknown("undecodable conditions document: %v", err)
	}

	if versionTagIs2(probe.Version) {
		payload := bytes.TrimSpace(probe.Conditions)
		if isEmptyDocument(payload) {
			return Detection{Version: Version2, Empty: true}, nil
		}
		return Detection{Version: Version2, Payload: payload}, nil
	}

	if probe.And != nil || probe.Or != nil {
		return Detection{Version: Version1, Dialect: DialectBackend, Payload: trimmed}, nil
	}

	if probe.Label != nil && probe.Items != nil {
		return Detection{Version: Version1, Dialect: DialectFrontend, Payload: trimmed}, nil
	}

	if probe.FilterType != nil && isArray(probe.Conditions) {
		return Detection{Version: Version2, Payload: trimmed}, nil
	}

	if string(trimmed) == "{}" {
		return Detection{Version: Version2, Empty: true}, nil
	}

	return Detection{}, unknown("conditions document matches no known shape")
}

// versionTagIs2 accepts the tag as either the number 2 or the string "2";
// both spellings exist in persisted data.
func versionTagIs2(tag json.RawMessage) bool {
	switch string(bytes.TrimSpace(tag)) {
	case "2", `"2"`:
		return true
	}
	return false
}

func isEmptyDocument(raw []byte) bool {
	switch string(raw) {
	case "", "null", `""`:
		return true
	}
	return false
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func previewOf(raw []byte) string {
	const max = 24
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
