// Package ids normalizes platform resource ids. Campaign records and page
// contexts mix fully qualified gids ("gid://shopify/Product/123") with bare
// numeric strings ("123"); every id comparison in the codebase goes through
// Equal so the two spellings always match.
package ids

import (
	"strconv"
	"strings"
)

// Normalize reduces a qualified gid to its trailing segment. Bare ids pass
// through unchanged, as does anything without a "gid://" prefix.
func Normalize(id string) string {
	if !strings.HasPrefix(id, "gid://") {
		return id
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Equal reports whether two ids refer to the same resource, regardless of
// spelling.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Variant resolves an id to a numeric variant id. Returns false for empty
// ids and anything that does not end in a plain digit run; such records
// are skipped upstream rather than guessed at.
func Variant(id string) (int64, bool) {
	s := Normalize(strings.TrimSpace(id))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
