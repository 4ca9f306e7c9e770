// Package prop implements the system property store: a read/write
// layer reconciling two independently-addressed backing stores behind
// one get/set/delete/list API.
//
// The two stores are:
//   - Live: the shared property table mediated by the property
//     service (see LiveStore). Always authoritative when it has a
//     value for a name.
//   - Persisted: the on-disk subset of properties whose names carry
//     the "persist." prefix (see PersistedStore). Consulted only as a
//     fallback, and only when an operation asks for it.
//
// # Core rules
//
// Naming: every operation validates names with IsLegalName first and
// rejects illegal names before touching either store. The grammar is
// identical across all operations.
//
// Read-only recreate: names under "ro." are never updated in place.
// The live table sizes value storage at creation time, so a set on an
// existing read-only name deletes the leaf (without pruning, it is
// recreated immediately) and creates a fresh entry.
//
// Precedence: at most one authoritative live value exists per name.
// A persisted entry for the same name is an independently-lifecycled
// copy; reads fall back to it only when the live value is empty or
// absent, and enumeration merges persisted entries after live ones
// with live values winning on duplicates.
//
// # Concurrency
//
// Operations are synchronous and issue at most one persisted-store
// call each. Atomicity of individual adapter calls is the adapter's
// contract; the store adds no locking of its own.
package prop
