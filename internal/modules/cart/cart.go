// Package cart talks to the hosting storefront's cart endpoints. The cart
// itself is an external shared resource: nothing here locks it, correctness
// comes from the widget's idempotent mutation rules.
package cart

import "context"

type LineItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type Snapshot struct {
	Items      []LineItem `json:"items"`
	TotalPrice int64      `json:"total_price"`
}

// Contains reports whether the snapshot holds a line for the variant.
func (s Snapshot) Contains(variantID int64) bool {
	for _, it := range s.Items {
		if it.VariantID == variantID {
			return true
		}
	}
	return false
}

func (s Snapshot) Empty() bool { return len(s.Items) == 0 }

type LineInput struct {
	VariantID int64
	Quantity  int
}

// API is the cart surface the widget controller depends on. *Client
// implements it against a live storefront, *Cached adds read memoization,
// and tests substitute an in-memory fake.
type API interface {
	Get(ctx context.Context) (Snapshot, error)
	Add(ctx context.Context, items []LineInput) error
	// SetQuantity with qty 0 removes the line. Safe on absent variants.
	SetQuantity(ctx context.Context, variantID int64, qty int) error
	// SubmitForm performs a cart form submission (add/change) with the
	// given body against the form's own action path.
	SubmitForm(ctx context.Context, action string, form map[string][]string) error
	// Invalidate drops any memoized snapshot. Mutating calls do this
	// themselves; it exists for callers that mutate out of band.
	Invalidate()
}
