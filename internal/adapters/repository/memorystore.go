package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/pkg/metrics"
)

// MemoryStore is an in-memory Store. Reads may run concurrently with each
// other; writes are serialized.
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.Snapshot
	byID  map[string]int

	initialCapacity int
}

// NewMemoryStore creates an empty history.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	for _, opt := range opts {
		opt(s)
	}
	s.items = make([]model.Snapshot, 0, s.initialCapacity)
	s.byID = make(map[string]int, s.initialCapacity)
	metrics.UpdateHistorySize(0)
	return s
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, snap model.Snapshot) (model.Snapshot, error) {
	if snap.ID == "" {
		return model.Snapshot{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[snap.ID]; exists {
		metrics.RecordErrorByComponent("repository", "duplicate_id")
		return model.Snapshot{}, fmt.Errorf("%w: %s", ErrDuplicateID, snap.ID)
	}

	stored := snap.Clone()
	stored.Seq = len(s.items) + 1
	s.byID[stored.ID] = len(s.items)
	s.items = append(s.items, stored)

	metrics.UpdateHistorySize(len(s.items))
	return stored.Clone(), nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) []model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Snapshot, len(s.items))
	for i, item := range s.items {
		out[i] = item.Clone()
	}
	return out
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[idx].Clone(), nil
}

// Count implements Store.
func (s *MemoryStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
