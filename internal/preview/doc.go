// Package preview keeps the "compiled SQL" preview of an alert in sync
// with the condition tree while the user edits.
//
// Every edit compiles locally right away, so something is always on
// screen. Remote compilation (which may apply server-side semantics the
// local compiler does not, e.g. schema-aware quoting) is debounced: a
// burst of edits inside the window collapses into one outbound call after
// the burst settles.
//
// Responses are ordered by issue, not completion. Each outbound call is
// tagged with a monotonically increasing generation number and only the
// response matching the newest issued generation is applied; a stale
// in-flight response is simply dropped when it resolves.
//
// Remote failure is never surfaced as a blocking error: the coordinator
// falls back to the last successfully locally-compiled SQL and tags the
// displayed result with its source, since save logic downstream trusts
// remote-compiled SQL without revalidation but not local.
package preview
