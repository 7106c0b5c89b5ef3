package legacy

import (
	"encoding/json"
	"fmt"

	"github.com/openobserve/alertquery/internal/tree"
)

// Upgrade brings raw persisted bytes, whatever their vintage, into the
// current shape. It is the detect → convert → assign-ids pipeline as a
// single composition:
//
//	raw ── Detect ──┬── (empty) ──────────── fresh root
//	                ├── shape 0 ── ConvertV0 ──┐
//	                ├── shape 1 ── ConvertV1* ─┤── EnsureIDs ── *tree.Group
//	                └── shape 2 ── decode ─────┘
//
// The returned tree is always a current-shape root group with every node
// carrying an id. Input is never mutated; on error the caller still holds
// its raw bytes untouched.
func Upgrade(raw json.RawMessage) (*tree.Group, error) {
	detection, err := Detect(raw)
	if err != nil {
		return nil, err
	}
	if detection.Empty {
		root := tree.NewRoot()
		tree.EnsureIDs(root)
		return root, nil
	}

	switch detection.Version {
	case Version0:
		return ConvertV0(detection.Payload)

	case Version1:
		if detection.Dialect == DialectFrontend {
			return ConvertV1Frontend(detection.Payload)
		}
		return ConvertV1Backend(detection.Payload)

	case Version2:
		root := &tree.Group{}
		if err := json.Unmarshal(detection.Payload, root); err != nil {
			return nil, malformed("", "shape-2 conditions undecodable: %v", err)
		}
		tree.EnsureIDs(root)
		return root, nil

	default:
		return nil, fmt.Errorf("unreachable: version %d", detection.Version)
	}
}
