package index

import (
	"context"
	"sync"

	"github.com/sandevgo/aitalk/internal/core"
)

// Store is append-only item storage. Items returns entries in insertion order.
type Store interface {
	Add(ctx context.Context, text string, vector []float32) (int64, error)
	Items(ctx context.Context) ([]core.MemoryItem, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps items in a slice. Ids start at 1.
type MemoryStore struct {
	mu    sync.RWMutex
	items []core.MemoryItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Add(_ context.Context, text string, vector []float32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := int64(len(s.items) + 1)
	s.items = append(s.items, core.MemoryItem{ID: id, Text: text, Vector: vector})
	return id, nil
}

func (s *MemoryStore) Items(_ context.Context) ([]core.MemoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.MemoryItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}
