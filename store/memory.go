package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	samples     map[string]map[int]Sample
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.samples = make(map[string]map[int]Sample)
	return nil
}

func (s *MemoryStore) SaveSample(_ context.Context, sample Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}

	run, ok := s.samples[sample.RunID]
	if !ok {
		run = make(map[int]Sample)
		s.samples[sample.RunID] = run
	}
	run[sample.Index] = sample
	return nil
}

func (s *MemoryStore) ListSamples(_ context.Context, runID string) ([]Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}

	run := s.samples[runID]
	samples := make([]Sample, 0, len(run))
	for _, sample := range run {
		samples = append(samples, sample)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Index < samples[j].Index })
	return samples, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
