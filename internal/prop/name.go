package prop

// IsLegalName reports whether name is a valid property name.
//
// A legal name is non-empty, contains only alphanumerics plus the
// characters '.', '-', '@', ':', '_', does not start or end with '.',
// and never contains "..". Names are case-sensitive byte strings and
// are never normalized.
func IsLegalName(name string) bool {
	if len(name) < 1 {
		return false
	}
	if name[0] == '.' || name[len(name)-1] == '.' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.':
			// i == 0 is never a dot, checked above.
			if name[i-1] == '.' {
				return false
			}
		case c == '_' || c == '-' || c == '@' || c == ':':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
