// Package legacy upgrades persisted condition trees from historical wire
// shapes to the current version-2 model.
//
// Three shapes exist in the wild and all must load losslessly:
//
//   - Shape 0 (flat): a bare array of leaf objects, implicit AND between
//     them, no groups.
//   - Shape 1 (nested): either {and: [...]} / {or: [...]} (backend dialect)
//     or {label, groupId, items: [...]} (edit-time dialect), recursively
//     nested.
//   - Shape 2 (current): the tagged union the tree package models, wrapped
//     in a {version: 2, conditions: ...} envelope once version tagging was
//     introduced.
//
// Loading is a fixed pipeline: Detect classifies the raw bytes by pure
// structural inspection, the matching converter produces a current-shape
// tree, and tree.EnsureIDs runs as the final pass. Upgrade composes the
// three steps. Legacy shapes are accepted as input only - a tree is always
// re-persisted as shape 2.
//
// Malformed legacy input (an "and" key holding a non-array, "items" that is
// not an array) is a hard ShapeError, never a silent coercion: the caller
// surfaces the raw tree unconverted and blocks editing rather than dropping
// the user's data.
package legacy
