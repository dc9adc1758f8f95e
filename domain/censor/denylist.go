package censor

import "strings"

// Denylist is an immutable set of lowercase strings whose presence inside a
// token marks it for censorship
type Denylist struct {
	entries []string
}

// NewDenylist creates a Denylist from raw entries.
// Entries are trimmed and lower-cased; blank entries and duplicates are dropped.
func NewDenylist(entries []string) Denylist {
	seen := make(map[string]struct{}, len(entries))
	cleaned := make([]string, 0, len(entries))
	for _, e := range entries {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		cleaned = append(cleaned, e)
	}
	return Denylist{entries: cleaned}
}

// Matches reports whether any entry is a substring of token.
// "damn" matches "damned" and "goddamn", and a short
// entry will also match unrelated longer words that happen to contain it.
func (d Denylist) Matches(token string) bool {
	if token == "" {
		return false
	}
	for _, e := range d.entries {
		if strings.Contains(token, e) {
			return true
		}
	}
	return false
}

// Len returns the number of entries
func (d Denylist) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the entries
func (d Denylist) Entries() []string {
	out := make([]string, len(d.entries))
	copy(out, d.entries)
	return out
}
