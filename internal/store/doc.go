// Package store persists alert definitions in SQLite.
//
// The conditions column holds whatever wire shape the row was written
// with. Rows written by this code always carry the tagged version-2
// envelope in canonical JSON; rows imported from older installations may
// still hold a legacy shape, and LoadAlert upgrades them transparently on
// the way out. The next SaveAlert then rewrites the row as version 2, so
// legacy shapes age out of the database without a migration pass.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
