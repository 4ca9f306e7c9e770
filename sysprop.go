// Package sysprop exposes the property store for embedding: the same
// wiring the sysprop binary uses, behind a single Open call.
package sysprop

import (
	"os"
	"path/filepath"

	"github.com/davral/sysprop/internal/config"
	"github.com/davral/sysprop/internal/liveprop"
	"github.com/davral/sysprop/internal/persist"
	"github.com/davral/sysprop/internal/prop"
)

// Core types re-exported for embedders.
type (
	Store = prop.Store
	Flags = prop.Flags
	List  = prop.List
	Entry = prop.Entry
)

// IsLegalName reports whether name is a valid property name.
func IsLegalName(name string) bool {
	return prop.IsLegalName(name)
}

// Client is a Store wired over the default adapters: the in-memory
// live table fronted by the property service, and the sqlite
// persisted store at the configured path.
type Client struct {
	*Store

	service   *liveprop.Service
	persisted *persist.Store
}

// Open loads configuration from configPath (empty selects the default
// location and SYSPROP_* environment overrides) and returns a ready
// Client. Adapter initialization is idempotent, so opening more than
// one Client over the same configuration is safe; Close releases the
// persisted store.
func Open(configPath string) (*Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PersistDB), 0o755); err != nil {
		return nil, err
	}
	pstore, err := persist.Open(cfg.PersistDB)
	if err != nil {
		return nil, err
	}

	area := liveprop.NewArea()
	for prefix, ctx := range cfg.Contexts {
		area.SetContext(prefix, ctx)
	}
	svc := liveprop.NewService(area, pstore)

	store, err := prop.New(svc, pstore)
	if err != nil {
		pstore.Close()
		return nil, err
	}
	return &Client{Store: store, service: svc, persisted: pstore}, nil
}

// SetLogf routes verbose diagnostics from the store and the property
// service to fn. Pass nil to silence them.
func (c *Client) SetLogf(fn func(format string, args ...any)) {
	c.Store.Logf = fn
	c.service.Logf = fn
}

// Close releases the persisted store. The Client must not be used
// afterwards.
func (c *Client) Close() error {
	return c.persisted.Close()
}
