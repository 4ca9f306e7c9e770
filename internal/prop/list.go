package prop

// Entry is one name/value pair in a List.
type Entry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// List is a name-to-value mapping that preserves first-seen insertion
// order. It backs full enumeration: later sources never displace an
// entry already emitted by an earlier one.
type List struct {
	entries []Entry
	index   map[string]int
}

// NewList returns an empty List.
func NewList() *List {
	return &List{index: make(map[string]int)}
}

// Put inserts name with value if the name has not been seen yet and
// reports whether it was inserted. An existing entry keeps both its
// value and its position.
func (l *List) Put(name, value string) bool {
	if _, ok := l.index[name]; ok {
		return false
	}
	l.index[name] = len(l.entries)
	l.entries = append(l.entries, Entry{Name: name, Value: value})
	return true
}

// Set overwrites the value of an existing entry in place, keeping its
// position. A new name is appended.
func (l *List) Set(name, value string) {
	if i, ok := l.index[name]; ok {
		l.entries[i].Value = value
		return
	}
	l.Put(name, value)
}

// Get returns the value for name and whether it is present.
func (l *List) Get(name string) (string, bool) {
	i, ok := l.index[name]
	if !ok {
		return "", false
	}
	return l.entries[i].Value, true
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns the entries in first-seen order. The returned slice
// is a copy; mutating it does not affect the List.
func (l *List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
