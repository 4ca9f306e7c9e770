package prop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davral/sysprop/internal/liveprop"
	"github.com/davral/sysprop/internal/prop"
)

// fakePersist is an in-memory PersistedStore that preserves insertion
// order and counts calls for no-touch assertions.
type fakePersist struct {
	order []string
	vals  map[string]string

	getCalls int
	putCalls int
	delCalls int
}

func newFakePersist() *fakePersist {
	return &fakePersist{vals: make(map[string]string)}
}

func (p *fakePersist) Get(name string) (string, bool, error) {
	p.getCalls++
	v, ok := p.vals[name]
	return v, ok, nil
}

func (p *fakePersist) Put(name, value string) error {
	p.putCalls++
	if _, ok := p.vals[name]; !ok {
		p.order = append(p.order, name)
	}
	p.vals[name] = value
	return nil
}

func (p *fakePersist) Delete(name string) (bool, error) {
	p.delCalls++
	if _, ok := p.vals[name]; !ok {
		return false, nil
	}
	delete(p.vals, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (p *fakePersist) Foreach(visit func(name, value string)) error {
	for _, n := range p.order {
		visit(n, p.vals[n])
	}
	return nil
}

func (p *fakePersist) calls() int {
	return p.getCalls + p.putCalls + p.delCalls
}

// countingLive is a LiveStore that records how many operations were
// attempted against it. Every operation is a no-op.
type countingLive struct {
	calls int
}

func (l *countingLive) Init() error { return nil }

func (l *countingLive) Find(string) prop.Handle {
	l.calls++
	return nil
}

func (l *countingLive) Read(prop.Handle) (string, string, error) {
	l.calls++
	return "", "", nil
}

func (l *countingLive) Add(string, string) error {
	l.calls++
	return nil
}

func (l *countingLive) Update(prop.Handle, string) error {
	l.calls++
	return nil
}

func (l *countingLive) Delete(string, bool) error {
	l.calls++
	return nil
}

func (l *countingLive) Foreach(func(prop.Handle)) error {
	l.calls++
	return nil
}

func (l *countingLive) GetContext(string) string {
	l.calls++
	return ""
}

func (l *countingLive) Set(string, string) error {
	l.calls++
	return nil
}

// newTestStore wires a Store over the reference live table, the
// mediating service, and an in-memory persisted fake.
func newTestStore(t *testing.T) (*prop.Store, *liveprop.Area, *fakePersist) {
	t.Helper()
	area := liveprop.NewArea()
	fp := newFakePersist()
	store, err := prop.New(liveprop.NewService(area, fp), fp)
	require.NoError(t, err)
	return store, area, fp
}
