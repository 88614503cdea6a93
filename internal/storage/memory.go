package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/sevigo/mamba-review/internal/core"
)

type memoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	insights []*core.Insight
}

// NewMemoryStore returns a Store that keeps insights in process memory. It is
// used when no DATABASE_URL is configured.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) SaveInsight(_ context.Context, insight *core.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	insight.ID = s.nextID
	stored := *insight
	s.insights = append(s.insights, &stored)
	return nil
}

func (s *memoryStore) ListInsights(_ context.Context, limit int) ([]*core.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit = normalizeLimit(limit)
	out := make([]*core.Insight, 0, min(limit, len(s.insights)))
	for _, in := range slices.Backward(s.insights) {
		if len(out) == limit {
			break
		}
		cp := *in
		out = append(out, &cp)
	}
	return out, nil
}
