package exclusion

import (
	"context"
	"sync"
)

// Memory is the in-process store used by tests and one-shot tooling.
type Memory struct {
	mu       sync.Mutex
	variants []int64
}

func NewMemory(initial ...int64) *Memory {
	return &Memory{variants: append([]int64(nil), initial...)}
}

func (m *Memory) Load(_ context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.variants...), nil
}

func (m *Memory) Save(_ context.Context, variants []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variants = append([]int64(nil), variants...)
	return nil
}
