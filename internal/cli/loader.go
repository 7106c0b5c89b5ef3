package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openobserve/alertquery/internal/sqlgen"
)

// AlertFile is the on-disk input the CLI accepts: either a full alert
// definition or a bare conditions document of any supported shape.
type AlertFile struct {
	StreamName      string              `json:"stream_name"`
	StreamType      string              `json:"stream_type"`
	TimestampColumn string              `json:"timestamp_column"`
	Conditions      json.RawMessage     `json:"conditions"`
	Aggregation     *sqlgen.Aggregation `json:"aggregation"`

	// Bare is set when the file held only a conditions document with no
	// surrounding alert fields.
	Bare bool `json:"-"`
}

// LoadAlertFile reads a JSON or YAML alert file.
//
// A document carrying a stream_name is treated as a full alert definition;
// anything else is taken as a bare conditions document (a flat shape-0
// array, a shape-1 node, or a version-2 envelope) and the shape pipeline
// sorts it out downstream.
func LoadAlertFile(path string) (*AlertFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot parse %s", path), err)
		}
	}

	return parseAlertDocument(raw)
}

func parseAlertDocument(raw []byte) (*AlertFile, error) {
	var probe struct {
		StreamName *string `json:"stream_name"`
	}
	// A non-object document (e.g. a shape-0 array) fails this probe and
	// falls through to the bare path.
	if err := json.Unmarshal(raw, &probe); err == nil && probe.StreamName != nil {
		var file AlertFile
		if err := json.Unmarshal(raw, &file); err != nil {
			return nil, WrapExitError(ExitCommandError, "cannot parse alert definition", err)
		}
		if len(file.Conditions) == 0 {
			file.Conditions = json.RawMessage("null")
		}
		return &file, nil
	}

	return &AlertFile{Conditions: json.RawMessage(raw), Bare: true}, nil
}

// yamlToJSON re-encodes a YAML document as JSON so the rest of the
// pipeline only ever sees one syntax.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML rewrites map[any]any keys (which yaml.v3 produces for
// non-string keys) into string keys json.Marshal can handle.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = normalizeYAML(elem)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = normalizeYAML(elem)
		}
		return out
	default:
		return v
	}
}
