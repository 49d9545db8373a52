// Package store records the evaluated Chromosomes of a run.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sample is a single evaluated Chromosome of a run
type Sample struct {
	RunID      string
	Index      int
	Binary     string
	Symbols    string
	Expression string
	Value      float64
	Target     float64
	Fitness    float64
	CreatedAt  time.Time
}

// Store persists Samples. Saving a Sample with the RunID and Index of an existing one
// replaces it.
type Store interface {
	Init(ctx context.Context) error
	SaveSample(ctx context.Context, sample Sample) error
	// ListSamples returns a run's Samples ordered by Index
	ListSamples(ctx context.Context, runID string) ([]Sample, error)
	Close() error
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func NewRunID() string {
	return uuid.NewString()
}
