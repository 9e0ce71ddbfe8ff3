// Package state holds the mutable values shared by the daemon's goroutines.
package state

import (
	"sync"
	"time"

	"github.com/aevon-lab/thermod/internal/core/aggregation"
)

// State is created once per daemon and passed to every component that needs it.
type State struct {
	// StartedAt is the default start of an unbounded /stats range.
	StartedAt time.Time

	Hourly *aggregation.Bucket
	Daily  *aggregation.Bucket

	mu      sync.RWMutex
	current string
}

// New returns a State stamped with startedAt and empty buckets.
func New(startedAt time.Time) *State {
	return &State{
		StartedAt: startedAt,
		Hourly:    aggregation.NewBucket(),
		Daily:     aggregation.NewBucket(),
	}
}

// SetCurrent records the latest reading's value string.
func (s *State) SetCurrent(v string) {
	s.mu.Lock()
	s.current = v
	s.mu.Unlock()
}

// Current returns the latest value string, or "" before the first sample.
func (s *State) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
