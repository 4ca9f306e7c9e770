package prop

// Handle is an opaque reference to a live-table entry returned by
// LiveStore.Find. It stays valid until that entry is deleted.
type Handle interface{}

// LiveStore is the live, shared property table mediated by the
// property service. Each call is individually atomic at the adapter
// boundary; the store issues synchronous calls and adds no locking.
type LiveStore interface {
	// Init prepares the table for use. Called once per process and
	// required to be idempotent.
	Init() error

	// Find returns a handle to the entry for name, or nil when the
	// name has no entry.
	Find(name string) Handle

	// Read returns the name and value behind a handle. Whether the
	// adapter reads into a buffer or delivers via callback is an
	// implementation detail; the result is the same either way.
	Read(h Handle) (name, value string, err error)

	// Add creates a new entry. Fails when the name already exists.
	Add(name, value string) error

	// Update replaces the value of an existing entry in place. The
	// new value is constrained by the entry's original storage size.
	Update(h Handle, value string) error

	// Delete removes the entry for name, returning ErrNotFound when
	// no entry exists. With prune set, now-empty ancestor nodes are
	// removed from the table as well.
	Delete(name string, prune bool) error

	// Foreach visits every entry. Handles passed to visit are
	// readable via Read.
	Foreach(visit func(h Handle)) error

	// GetContext returns the security context assigned to name, or
	// "" when none is set. Contexts exist independently of values.
	GetContext(name string) string

	// Set writes name=value through the mediating property service,
	// the default write path. Distinct from direct Add/Update.
	Set(name, value string) error
}

// PersistedStore is the on-disk store holding copies of properties
// under PersistPrefix.
type PersistedStore interface {
	// Get returns the persisted value for name. found is false when
	// no entry exists; a stored empty value returns ("", true, nil).
	Get(name string) (value string, found bool, err error)

	// Put stores name=value, replacing any existing entry.
	Put(name, value string) error

	// Delete removes the entry for name and reports whether an
	// entry was actually removed.
	Delete(name string) (bool, error)

	// Foreach visits every persisted entry.
	Foreach(visit func(name, value string)) error
}
