package prop

// Name prefixes with special handling in the store.
const (
	// ReadonlyPrefix marks properties whose live-table value storage
	// is sized at creation; a set on an existing entry must recreate
	// it rather than update in place.
	ReadonlyPrefix = "ro."

	// PersistPrefix marks properties that may also have a copy in
	// the persisted store.
	PersistPrefix = "persist."
)

// Flags selects behavior variants for a single operation. The flags
// are orthogonal booleans; the zero value is the default behavior.
type Flags struct {
	// SkipSvc bypasses the mediating property service and mutates
	// the live table directly on writes.
	SkipSvc bool

	// Persist also consults the persisted store on reads and
	// enumeration, and also deletes from it on delete, for names
	// under PersistPrefix.
	Persist bool

	// Context returns security contexts instead of values on reads
	// and enumeration.
	Context bool
}
