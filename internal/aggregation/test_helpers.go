package aggregation

import (
	"context"
	"sync"

	coreagg "github.com/aevon-lab/thermod/internal/core/aggregation"
)

// MemorySink is a test helper that records every aggregate it receives.
type MemorySink struct {
	mu   sync.Mutex
	aggs []coreagg.Aggregate
}

// NewMemorySink creates an empty in-memory sink for testing.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, agg coreagg.Aggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggs = append(s.aggs, agg)
	return nil
}

// Aggregates returns a copy of everything written so far.
func (s *MemorySink) Aggregates() []coreagg.Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]coreagg.Aggregate(nil), s.aggs...)
}
