// Package liveprop provides the reference live property table: an
// in-memory trie keyed by dot-separated name segments, plus the
// mediating property service that fronts it. The trie mirrors the
// shared-memory property area of the platform this tool targets; a
// platform binding would replace this package behind prop.LiveStore.
package liveprop

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/davral/sysprop/internal/prop"
)

// ValueMax is the storage size of a regular property value slot.
// Only read-only properties may exceed it: their slots are allocated
// exactly once at creation, sized to the value.
const ValueMax = 92

// DefaultContext is the security context assigned to names no table
// prefix matches.
const DefaultContext = "u:object_r:default_prop:s0"

// node is one segment of the name trie. A property terminates at a
// node when entry is non-nil; interior nodes may carry entries too
// ("sys" and "sys.boot" can both be properties).
type node struct {
	children map[string]*node
	entry    *entry
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// entry is a live property record. capacity fixes the value storage
// at creation time: Update fails when the new value would not fit.
// seq records creation order for stable iteration.
type entry struct {
	name     string
	value    string
	capacity int
	seq      int
}

// Area is the in-memory live property table.
type Area struct {
	mu       sync.Mutex
	root     *node
	contexts map[string]string
	seq      int
}

// NewArea returns an empty Area with the built-in context table.
func NewArea() *Area {
	return &Area{
		root: newNode(),
		contexts: map[string]string{
			"ro.":      "u:object_r:build_prop:s0",
			"persist.": "u:object_r:persist_prop:s0",
			"sys.":     "u:object_r:system_prop:s0",
			"debug.":   "u:object_r:debug_prop:s0",
		},
	}
}

// Init implements prop.LiveStore. The in-memory table needs no setup;
// Init exists so callers can initialize any LiveStore exactly once,
// and is idempotent.
func (a *Area) Init() error {
	return nil
}

// SetContext assigns a security context to a name prefix. Longest
// matching prefix wins on lookup.
func (a *Area) SetContext(prefix, context string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.contexts[prefix] = context
}

// Find implements prop.LiveStore.
func (a *Area) Find(name string) prop.Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.lookup(name)
	if n == nil || n.entry == nil {
		return nil
	}
	return n.entry
}

// Read implements prop.LiveStore.
func (a *Area) Read(h prop.Handle) (string, string, error) {
	e, err := asEntry(h)
	if err != nil {
		return "", "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return e.name, e.value, nil
}

// Add implements prop.LiveStore. It fails when the name already has
// an entry or a non-read-only value exceeds ValueMax.
func (a *Area) Add(name, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.ensure(name)
	if n.entry != nil {
		return fmt.Errorf("liveprop: [%s] already exists", name)
	}
	capacity := ValueMax
	if len(value) > ValueMax {
		if !strings.HasPrefix(name, prop.ReadonlyPrefix) {
			return fmt.Errorf("liveprop: value for [%s] exceeds %d bytes", name, ValueMax)
		}
		capacity = len(value)
	}
	a.seq++
	n.entry = &entry{name: name, value: value, capacity: capacity, seq: a.seq}
	return nil
}

// Update implements prop.LiveStore. The entry's storage was sized at
// creation, so values longer than its capacity are rejected.
func (a *Area) Update(h prop.Handle, value string) error {
	e, err := asEntry(h)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(value) > e.capacity {
		return fmt.Errorf("liveprop: value for [%s] exceeds entry storage (%d > %d)",
			e.name, len(value), e.capacity)
	}
	e.value = value
	return nil
}

// Delete implements prop.LiveStore. Without prune only the leaf entry
// is cleared; with prune, ancestor nodes left without entries or
// children are removed as well.
func (a *Area) Delete(name string, prune bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	segs := strings.Split(name, ".")
	path := make([]*node, 0, len(segs)+1)
	n := a.root
	path = append(path, n)
	for _, seg := range segs {
		child := n.children[seg]
		if child == nil {
			return prop.ErrNotFound
		}
		n = child
		path = append(path, n)
	}
	if n.entry == nil {
		return prop.ErrNotFound
	}
	n.entry = nil

	if prune {
		for i := len(path) - 1; i >= 1; i-- {
			cur := path[i]
			if cur.entry != nil || len(cur.children) > 0 {
				break
			}
			delete(path[i-1].children, segs[i-1])
		}
	}
	return nil
}

// Foreach implements prop.LiveStore, visiting entries in creation
// order. The visit callback runs outside the table lock so it may
// call back into the Area.
func (a *Area) Foreach(visit func(h prop.Handle)) error {
	a.mu.Lock()
	var entries []*entry
	var walk func(*node)
	walk = func(n *node) {
		if n.entry != nil {
			entries = append(entries, n.entry)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(a.root)
	a.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	for _, e := range entries {
		visit(e)
	}
	return nil
}

// GetContext implements prop.LiveStore. The longest matching prefix
// in the context table wins; names no prefix matches get
// DefaultContext. Contexts exist whether or not a value does.
func (a *Area) GetContext(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	best := -1
	ctx := DefaultContext
	for prefix, c := range a.contexts {
		if strings.HasPrefix(name, prefix) && len(prefix) > best {
			best = len(prefix)
			ctx = c
		}
	}
	return ctx
}

// lookup walks the trie to the node for name. Caller holds mu.
func (a *Area) lookup(name string) *node {
	n := a.root
	for _, seg := range strings.Split(name, ".") {
		n = n.children[seg]
		if n == nil {
			return nil
		}
	}
	return n
}

// ensure walks the trie to the node for name, creating missing
// segments. Caller holds mu.
func (a *Area) ensure(name string) *node {
	n := a.root
	for _, seg := range strings.Split(name, ".") {
		child := n.children[seg]
		if child == nil {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	return n
}

func asEntry(h prop.Handle) (*entry, error) {
	e, ok := h.(*entry)
	if !ok || e == nil {
		return nil, fmt.Errorf("liveprop: bad handle %T", h)
	}
	return e, nil
}
