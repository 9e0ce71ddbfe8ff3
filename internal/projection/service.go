// Package projection serves the read side of the daemon: the current value,
// raw readings by range and flushed window aggregates.
package projection

import (
	"context"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/core/record"
	"github.com/aevon-lab/thermod/internal/core/state"
)

// Reader is the part of storage.Store the query layer depends on.
type Reader interface {
	Query(ctx context.Context, start, end string) ([]v1.Reading, error)
	QueryAggregates(ctx context.Context, window, start, end string) ([]aggregation.Aggregate, error)
}

// Service implements the query layer over the store and the shared state.
type Service struct {
	store  Reader
	state  *state.State
	hourly string
	daily  string
	nowFn  func() time.Time
}

// NewService creates a projection service. hourly and daily are the window
// labels the flushers write aggregates under.
func NewService(store Reader, st *state.State, hourly, daily string) *Service {
	if store == nil || st == nil {
		panic("projection: store and state are required")
	}
	return &Service{
		store:  store,
		state:  st,
		hourly: hourly,
		daily:  daily,
		nowFn:  time.Now,
	}
}

// Current returns the latest reading's value string.
func (s *Service) Current() v1.CurrentResponse {
	return v1.CurrentResponse{Temperature: s.state.Current()}
}

// Range resolves q against the daemon's start time and the current time.
func (s *Service) Range(q StatsQuery) Range {
	return ResolveRange(q, s.state.StartedAt, s.nowFn())
}

// Readings returns every stored reading within q, oldest first.
func (s *Service) Readings(ctx context.Context, q StatsQuery) ([]v1.Reading, error) {
	r := s.Range(q)
	readings, err := s.store.Query(ctx, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("query readings [%s, %s]: %w", r.Start, r.End, err)
	}
	if readings == nil {
		readings = []v1.Reading{}
	}
	return readings, nil
}

// Hourly returns the flushed hourly aggregates within q.
func (s *Service) Hourly(ctx context.Context, q StatsQuery) ([]v1.AggregateResponse, error) {
	return s.aggregates(ctx, s.hourly, q)
}

// Daily returns the flushed daily aggregates within q.
func (s *Service) Daily(ctx context.Context, q StatsQuery) ([]v1.AggregateResponse, error) {
	return s.aggregates(ctx, s.daily, q)
}

func (s *Service) aggregates(ctx context.Context, window string, q StatsQuery) ([]v1.AggregateResponse, error) {
	r := s.Range(q)
	aggs, err := s.store.QueryAggregates(ctx, window, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("query %s aggregates [%s, %s]: %w", window, r.Start, r.End, err)
	}

	out := make([]v1.AggregateResponse, 0, len(aggs))
	for _, agg := range aggs {
		out = append(out, v1.AggregateResponse{
			Timestamp:   agg.Timestamp,
			Temperature: record.FormatValue(agg.Mean),
			Count:       agg.Count,
		})
	}
	return out, nil
}
