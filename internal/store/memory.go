package store

import (
	"context"
	"sort"
	"sync"

	"github.com/validata/backend/internal/dataset"
)

// Memory is an in-memory Store used in tests and local development.
type Memory struct {
	mu       sync.RWMutex
	datasets map[string]*dataset.Dataset
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{datasets: make(map[string]*dataset.Dataset)}
}

func (s *Memory) EnsureSchema(ctx context.Context) error { return nil }

func (s *Memory) Insert(ctx context.Context, d *dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[d.ID] = d
	return nil
}

func (s *Memory) Get(ctx context.Context, id string) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.datasets[id]
	if !ok {
		return nil, dataset.ErrNotFound
	}
	return d, nil
}

func (s *Memory) List(ctx context.Context) ([]*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	datasets := make([]*dataset.Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		datasets = append(datasets, d)
	}
	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].UploadedAt.After(datasets[j].UploadedAt)
	})
	return datasets, nil
}
