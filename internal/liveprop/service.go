package liveprop

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davral/sysprop/internal/prop"
)

// Service is the mediating property service fronting an Area. It is
// the default write path: direct table mutation exists only for
// callers that explicitly bypass the service.
//
// Beyond the table's own storage rules, the service mirrors writes of
// persist.-prefixed names to the persisted store, so a plain set of a
// persistent property survives the process without the caller writing
// the persisted store itself.
type Service struct {
	*Area
	persisted prop.PersistedStore

	// Logf, when non-nil, receives per-request diagnostics.
	Logf func(format string, args ...any)
}

// NewService returns a Service over area. persisted may be nil, in
// which case persist.-prefixed writes are not mirrored.
func NewService(area *Area, persisted prop.PersistedStore) *Service {
	return &Service{Area: area, persisted: persisted}
}

// Set implements the mediated write path of prop.LiveStore: create
// when the name has no entry, update in place otherwise, then mirror
// persist.-prefixed values to the persisted store. Each request gets
// an ID so interleaved diagnostics from unrelated callers stay
// attributable.
func (s *Service) Set(name, value string) error {
	req := uuid.NewString()
	s.logf("propserv: set [%s] req=%s", name, req)

	var err error
	if h := s.Area.Find(name); h != nil {
		err = s.Area.Update(h, value)
	} else {
		err = s.Area.Add(name, value)
	}
	if err != nil {
		s.logf("propserv: set [%s] req=%s failed: %v", name, req, err)
		return err
	}

	if s.persisted != nil && strings.HasPrefix(name, prop.PersistPrefix) {
		if perr := s.persisted.Put(name, value); perr != nil {
			return fmt.Errorf("propserv: mirror persist write [%s]: %w", name, perr)
		}
		s.logf("propserv: mirrored [%s] to persist storage req=%s", name, req)
	}
	return nil
}

func (s *Service) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}
