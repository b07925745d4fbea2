// Package symbol implements a process-wide string interning pool.
//
// This package contains:
//   - A Symbol handle with three representations (inline, shared, static)
//   - A concurrent intern table with owner-count-driven eviction
//   - A streaming hash/equality adapter for format-and-intern
//   - Text and CBOR codec adapters
//
// Interning collapses equal text to shared, identity-comparable storage:
// repeated Intern calls for the same content return handles over one
// canonical allocation, so equality and hashing of recurring identifiers,
// tags and keys become cheap. Content of at most SmallCap bytes is stored
// inline in the handle and never allocates; compile-time constants can be
// registered once with InternStatic and are never evicted.
package symbol
