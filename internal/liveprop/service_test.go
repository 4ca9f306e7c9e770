package liveprop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersist is a minimal PersistedStore for mirror assertions.
type memPersist struct {
	vals   map[string]string
	putErr error
}

func newMemPersist() *memPersist {
	return &memPersist{vals: make(map[string]string)}
}

func (p *memPersist) Get(name string) (string, bool, error) {
	v, ok := p.vals[name]
	return v, ok, nil
}

func (p *memPersist) Put(name, value string) error {
	if p.putErr != nil {
		return p.putErr
	}
	p.vals[name] = value
	return nil
}

func (p *memPersist) Delete(name string) (bool, error) {
	_, ok := p.vals[name]
	delete(p.vals, name)
	return ok, nil
}

func (p *memPersist) Foreach(visit func(name, value string)) error {
	for n, v := range p.vals {
		visit(n, v)
	}
	return nil
}

func TestService_SetCreatesAndUpdates(t *testing.T) {
	svc := NewService(NewArea(), nil)

	require.NoError(t, svc.Set("sys.x", "1"))
	h := svc.Find("sys.x")
	require.NotNil(t, h)

	require.NoError(t, svc.Set("sys.x", "2"))
	_, value, err := svc.Read(svc.Find("sys.x"))
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestService_MirrorsPersistPrefix(t *testing.T) {
	mp := newMemPersist()
	svc := NewService(NewArea(), mp)

	require.NoError(t, svc.Set("persist.sys.locale", "en-US"))
	assert.Equal(t, "en-US", mp.vals["persist.sys.locale"])

	require.NoError(t, svc.Set("persist.sys.locale", "fr-FR"))
	assert.Equal(t, "fr-FR", mp.vals["persist.sys.locale"], "updates are mirrored too")

	require.NoError(t, svc.Set("sys.other", "1"))
	_, ok := mp.vals["sys.other"]
	assert.False(t, ok, "only persist.-prefixed names are mirrored")
}

func TestService_MirrorFailurePropagates(t *testing.T) {
	mp := newMemPersist()
	mp.putErr = errors.New("disk full")
	svc := NewService(NewArea(), mp)

	err := svc.Set("persist.sys.locale", "en-US")
	require.Error(t, err)
	assert.ErrorIs(t, err, mp.putErr)

	// The live write itself still happened.
	assert.NotNil(t, svc.Find("persist.sys.locale"))
}

func TestService_NoPersistedStore(t *testing.T) {
	svc := NewService(NewArea(), nil)
	require.NoError(t, svc.Set("persist.sys.locale", "en-US"))
}

func TestService_VerboseLogf(t *testing.T) {
	var lines []string
	svc := NewService(NewArea(), newMemPersist())
	svc.Logf = func(format string, args ...any) {
		lines = append(lines, format)
	}

	require.NoError(t, svc.Set("persist.sys.locale", "en-US"))
	assert.NotEmpty(t, lines)
}
