package purge

// Hard-coded protected names per kind. These are a last-resort safety net:
// no manifest configuration can force a purge of an entity named here.
// Policies receive their own copy at construction so tests can substitute
// alternate sets.

var defaultProtectedUsers = []string{"root"}

var defaultProtectedGroups = []string{"root", "wheel"}

// DefaultProtected returns the built-in protected-name list for a kind.
func DefaultProtected(kind Kind) []string {
	switch kind {
	case KindUser:
		return defaultProtectedUsers
	case KindGroup:
		return defaultProtectedGroups
	}
	return nil
}
