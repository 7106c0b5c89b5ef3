// Package wire defines the persisted/wire format of a condition tree: the
// {version: 2, conditions: <group>} envelope, its canonical serialization,
// and a CUE schema check for raw payloads.
//
// Legacy persisted data omits the version tag and is one of the historical
// shapes handled by the legacy package; Decode auto-upgrades whatever it is
// given, and Encode always emits the tagged version-2 envelope so future
// loads skip detection. A legacy shape is never written back out.
//
// MarshalCanonical produces byte-stable JSON (sorted keys, NFC-normalized
// strings, no HTML escaping) for storage and golden-file comparison.
package wire
