package domain

import "strings"

// defaultOwners is the built-in roster used when the config provides none.
var defaultOwners = []string{"Priya", "Marcus", "Lena", "Theo", "Ines"}

// Roster is the fixed set of people a task may be assigned to.
type Roster struct {
	owners []string
}

// DefaultRoster returns the built-in owner roster.
func DefaultRoster() Roster {
	return Roster{owners: append([]string(nil), defaultOwners...)}
}

// NewRoster builds a roster from config-provided names, dropping blanks and
// duplicates while preserving order. An empty result is invalid.
func NewRoster(names []string) (Roster, error) {
	owners := make([]string, 0, len(names))
	seen := map[string]struct{}{}
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		owners = append(owners, name)
	}
	if len(owners) == 0 {
		return Roster{}, ErrInvalidOwner
	}
	return Roster{owners: owners}, nil
}

// Owners returns the roster names in display order.
func (r Roster) Owners() []string {
	return append([]string(nil), r.owners...)
}

// Contains reports whether a name is on the roster (case-insensitive).
func (r Roster) Contains(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, owner := range r.owners {
		if strings.ToLower(owner) == name {
			return true
		}
	}
	return false
}

// Normalize maps a name to its canonical roster spelling. The second
// return reports whether the name is on the roster at all.
func (r Roster) Normalize(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, owner := range r.owners {
		if strings.EqualFold(owner, trimmed) {
			return owner, true
		}
	}
	return trimmed, false
}

// Len returns the roster size.
func (r Roster) Len() int {
	return len(r.owners)
}
