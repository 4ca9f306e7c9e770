package prop

import (
	"fmt"

	"github.com/davral/sysprop/internal/propfile"
)

// LoadFile parses a property-definitions file and applies each pair
// through Set in file order.
//
// Per-line failures, whether parse errors or rejected sets, are
// collected and do not stop the load; pairs applied before a failing
// line stay applied. The second return value is non-nil only when the
// file itself cannot be read, in which case nothing was applied.
func (s *Store) LoadFile(path string, flags Flags) (lineErrs []error, err error) {
	s.logf("parse prop file [%s]", path)

	err = propfile.ParseFile(path, func(line int, name, value string, perr error) bool {
		if perr != nil {
			lineErrs = append(lineErrs, fmt.Errorf("%s:%d: %w", path, line, perr))
			return true
		}
		if serr := s.Set(name, value, flags); serr != nil {
			lineErrs = append(lineErrs, fmt.Errorf("%s:%d: %w", path, line, serr))
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("load prop file %s: %w", path, err)
	}
	return lineErrs, nil
}
