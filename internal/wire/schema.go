package wire

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
	schemaErr   error
)

// envelopeSchema compiles the embedded schema once. Uses CUE SDK's Go API
// directly (not CLI subprocess).
func envelopeSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		compiled := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := compiled.Err(); err != nil {
			schemaErr = fmt.Errorf("compile embedded schema: %w", err)
			return
		}
		schemaValue = compiled.LookupPath(cue.ParsePath("#Envelope"))
		if err := schemaValue.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Envelope: %w", err)
		}
	})
	return schemaValue, schemaErr
}

// Check validates raw bytes against the version-2 envelope schema.
//
// This is a structural check only - it verifies the payload is a
// well-formed tagged envelope before the fast decode path is taken. It
// says nothing about whether leaf columns exist in the target stream;
// column legality is the stream schema's concern, outside this subsystem.
func Check(raw []byte) error {
	schema, err := envelopeSchema()
	if err != nil {
		return err
	}
	if err := cuejson.Validate(raw, schema); err != nil {
		return fmt.Errorf("conditions payload does not match the version-%d schema: %w", CurrentVersion, err)
	}
	return nil
}
