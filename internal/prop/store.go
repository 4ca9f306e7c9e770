package prop

import "strings"

// Store reconciles the live property table and the persisted store
// behind a single get/set/delete/list API. Construct with New; the
// zero value is not usable.
type Store struct {
	live      LiveStore
	persisted PersistedStore

	// Logf, when non-nil, receives verbose diagnostics. It is never
	// consulted for error signaling.
	Logf func(format string, args ...any)
}

// New returns a Store over the given adapters after initializing the
// live table. LiveStore.Init is idempotent, so constructing several
// stores over the same adapters is safe. persisted may be nil, in
// which case persisted lookups behave as an empty store.
func New(live LiveStore, persisted PersistedStore) (*Store, error) {
	if err := live.Init(); err != nil {
		return nil, newAdapterFailure("", err)
	}
	return &Store{live: live, persisted: persisted}, nil
}

func (s *Store) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// Get returns the value for name. found reports whether any consulted
// store had an entry; a stored empty value comes back as ("", true).
//
// With flags.Context the live store's security context for name is
// returned instead; context queries never consult the persisted
// store. The persisted fallback applies only when the live value is
// empty or absent, flags.Persist is set, and name carries
// PersistPrefix.
func (s *Store) Get(name string, flags Flags) (value string, found bool, err error) {
	if !IsLegalName(name) {
		return "", false, newInvalidName(name)
	}

	if flags.Context {
		ctx := s.live.GetContext(name)
		s.logf("prop context [%s]: [%s]", name, ctx)
		return ctx, ctx != "", nil
	}

	if h := s.live.Find(name); h != nil {
		_, value, err = s.live.Read(h)
		if err != nil {
			return "", false, newAdapterFailure(name, err)
		}
		found = true
		s.logf("get prop [%s]: [%s]", name, value)
	}

	if value == "" && flags.Persist && s.persisted != nil && strings.HasPrefix(name, PersistPrefix) {
		pv, pfound, perr := s.persisted.Get(name)
		if perr != nil {
			return "", false, newAdapterFailure(name, perr)
		}
		if pfound {
			value = pv
			found = true
		}
	}

	if !found {
		s.logf("prop [%s] does not exist", name)
	}
	return value, found, nil
}

// Set creates or updates name=value in the live store.
//
// An existing entry under ReadonlyPrefix is deleted first, leaf only,
// and recreated: its storage was sized for the old value and cannot
// hold a longer one. With flags.SkipSvc the table is mutated directly
// via Add/Update; otherwise the write goes through the mediating
// service's Set path. The persisted store is never written here: the
// service mirrors persist.-prefixed writes itself.
func (s *Store) Set(name, value string, flags Flags) error {
	if !IsLegalName(name) {
		return newInvalidName(name)
	}

	path := "property service"
	if flags.SkipSvc {
		path = "direct modification"
	}

	h := s.live.Find(name)
	if h != nil && strings.HasPrefix(name, ReadonlyPrefix) {
		// Skip pruning: the node is recreated immediately.
		if err := s.live.Delete(name, false); err != nil {
			return newAdapterFailure(name, err)
		}
		h = nil
	}

	var err error
	if h != nil {
		if flags.SkipSvc {
			err = s.live.Update(h, value)
		} else {
			err = s.live.Set(name, value)
		}
		s.logf("update prop [%s]: [%s] by %s", name, value, path)
	} else {
		if flags.SkipSvc {
			err = s.live.Add(name, value)
		} else {
			err = s.live.Set(name, value)
		}
		s.logf("create prop [%s]: [%s] by %s", name, value, path)
	}
	if err != nil {
		return newAdapterFailure(name, err)
	}
	return nil
}

// Delete removes name from the live store, pruning ancestor nodes
// emptied by the removal.
//
// With flags.Persist and a name under PersistPrefix the persisted
// entry is deleted too, and a successful persisted deletion makes the
// whole operation succeed even when the live deletion failed (the
// name may never have existed live).
func (s *Store) Delete(name string, flags Flags) error {
	if !IsLegalName(name) {
		return newInvalidName(name)
	}

	s.logf("delete prop [%s]", name)

	err := s.live.Delete(name, true)
	if flags.Persist && s.persisted != nil && strings.HasPrefix(name, PersistPrefix) {
		removed, perr := s.persisted.Delete(name)
		switch {
		case perr != nil:
			s.logf("persist delete [%s] failed: %v", name, perr)
		case removed:
			err = nil
		}
	}
	if err != nil {
		if IsNotFound(err) {
			return newNotFound(name)
		}
		return newAdapterFailure(name, err)
	}
	return nil
}

// List enumerates all properties in first-seen order: live entries in
// the live store's iteration order, then, with flags.Persist,
// persisted entries appended. Live values win when a name appears in
// both. With flags.Context every value is replaced by the name's live
// security context; the order is unaffected.
func (s *Store) List(flags Flags) (*List, error) {
	list := NewList()

	err := s.live.Foreach(func(h Handle) {
		name, value, rerr := s.live.Read(h)
		if rerr != nil {
			s.logf("skip unreadable entry: %v", rerr)
			return
		}
		list.Put(name, value)
	})
	if err != nil {
		return nil, newAdapterFailure("", err)
	}

	if flags.Persist && s.persisted != nil {
		err := s.persisted.Foreach(func(name, value string) {
			list.Put(name, value)
		})
		if err != nil {
			return nil, newAdapterFailure("", err)
		}
	}

	if flags.Context {
		for _, e := range list.Entries() {
			list.Set(e.Name, s.live.GetContext(e.Name))
		}
	}
	return list, nil
}
