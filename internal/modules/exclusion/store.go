// Package exclusion persists the shopper's opt-outs: variant ids they
// explicitly unchecked. This list is the only widget state that outlives a
// page view, and it wins over a campaign's pre-check flag.
package exclusion

import "context"

// StorageKey is the single key the list lives under, shared across all
// store implementations so a shopper moving between them keeps their
// opt-outs addressable.
const StorageKey = "easyTickUncheckedVariants"

// Store holds the JSON-encoded list of excluded variant ids. An absent key
// loads as an empty list, never an error. Entries never expire.
type Store interface {
	Load(ctx context.Context) ([]int64, error)
	Save(ctx context.Context, variants []int64) error
}
