// Package sqlgen compiles a condition tree, plus an optional aggregation
// descriptor, into SQL text for preview and backend evaluation.
//
// Compilation is a bottom-up recursive walk. Leaves become
// "column op value" comparisons, groups join their compiled children with
// AND/OR and parenthesize themselves unless they are the tree root. An
// empty group compiles to the literal "true" so it never breaks a
// surrounding join.
//
// Output is deterministic: node ids never affect the text, and compiling
// the same tree twice yields byte-identical SQL. The local compiler is
// schema-blind; quoting decisions that need the stream's field types are
// the remote compiler's business (see the preview package).
//
// A tree containing a leaf with an empty column or value is "not ready",
// not wrong: Compile returns ErrIncomplete and the caller simply waits for
// the user to finish typing.
package sqlgen
