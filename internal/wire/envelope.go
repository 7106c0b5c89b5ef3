package wire

import (
	"encoding/json"
	"fmt"

	"github.com/openobserve/alertquery/internal/legacy"
	"github.com/openobserve/alertquery/internal/tree"
)

// CurrentVersion is the wire format version this package writes. Older
// versions are read-only input.
const CurrentVersion = 2

// Envelope is the persisted/wire form of a condition tree.
type Envelope struct {
	Version    int         `json:"version"`
	Conditions *tree.Group `json:"conditions"`
}

// NewEnvelope wraps a current-shape root in a tagged envelope.
func NewEnvelope(root *tree.Group) Envelope {
	return Envelope{Version: CurrentVersion, Conditions: root}
}

// Decode loads raw persisted bytes of any supported vintage and returns the
// current-shape envelope. Legacy shapes are upgraded on the way in; the
// result always carries the explicit version tag.
func Decode(raw json.RawMessage) (Envelope, error) {
	root, err := legacy.Upgrade(raw)
	if err != nil {
		return Envelope{}, fmt.Errorf("decode conditions: %w", err)
	}
	return NewEnvelope(root), nil
}

// Encode serializes the envelope as canonical JSON. Identical trees encode
// to identical bytes, which is what the store persists and what golden
// tests compare against.
func Encode(env Envelope) ([]byte, error) {
	if env.Version != CurrentVersion {
		return nil, fmt.Errorf("refusing to encode version %d: only version %d is written", env.Version, CurrentVersion)
	}
	plain, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return MarshalCanonical(plain)
}
