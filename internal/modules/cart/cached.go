package cart

import (
	"context"
	"sync"
	"time"
)

// ReadTTL bounds how stale a passive cart read may be. Mutations always
// invalidate immediately, the TTL only coalesces read bursts (the
// reconciliation sequence refetches the cart several times in a row).
const ReadTTL = 1000 * time.Millisecond

// Cached wraps an API with read memoization. One instance belongs to one
// widget controller; the zero TTL case is not supported.
type Cached struct {
	inner API
	ttl   time.Duration
	now   func() time.Time

	mu   sync.Mutex
	snap Snapshot
	at   time.Time
	ok   bool
}

func NewCached(inner API) *Cached {
	return &Cached{inner: inner, ttl: ReadTTL, now: time.Now}
}

func (c *Cached) Get(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.ok && c.now().Sub(c.at) < c.ttl {
		snap := c.snap
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	snap, err := c.inner.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	c.mu.Lock()
	c.snap = snap
	c.at = c.now()
	c.ok = true
	c.mu.Unlock()
	return snap, nil
}

func (c *Cached) Add(ctx context.Context, items []LineInput) error {
	err := c.inner.Add(ctx, items)
	if err == nil {
		c.Invalidate()
	}
	return err
}

func (c *Cached) SetQuantity(ctx context.Context, variantID int64, qty int) error {
	err := c.inner.SetQuantity(ctx, variantID, qty)
	if err == nil {
		c.Invalidate()
	}
	return err
}

func (c *Cached) SubmitForm(ctx context.Context, action string, form map[string][]string) error {
	err := c.inner.SubmitForm(ctx, action, form)
	if err == nil {
		c.Invalidate()
	}
	return err
}

func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.ok = false
	c.mu.Unlock()
}
