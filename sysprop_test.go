package sysprop

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestClient(t *testing.T) *Client {
	t.Helper()
	t.Setenv("SYSPROP_PERSIST_DB", filepath.Join(t.TempDir(), "persist.db"))

	c, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestOpen_SetGetRoundTrip(t *testing.T) {
	c := openTestClient(t)

	require.NoError(t, c.Set("sys.embedded.value", "42", Flags{}))

	value, found, err := c.Get("sys.embedded.value", Flags{})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "42", value)
}

func TestOpen_PersistSurvivesClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	t.Setenv("SYSPROP_PERSIST_DB", path)

	c1, err := Open("")
	require.NoError(t, err)
	require.NoError(t, c1.Set("persist.sys.locale", "en-US", Flags{}))
	require.NoError(t, c1.Close())

	// A new client has a fresh live table; the persisted copy is
	// what survives.
	c2, err := Open("")
	require.NoError(t, err)
	defer c2.Close()

	value, found, err := c2.Get("persist.sys.locale", Flags{Persist: true})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en-US", value)
}

func TestClient_SetLogf(t *testing.T) {
	c := openTestClient(t)

	var logged bool
	c.SetLogf(func(format string, args ...any) { logged = true })

	require.NoError(t, c.Set("persist.sys.tz", "UTC", Flags{}))
	assert.True(t, logged)
}

func TestIsLegalName(t *testing.T) {
	assert.True(t, IsLegalName("persist.sys.locale"))
	assert.False(t, IsLegalName("a..b"))
}
