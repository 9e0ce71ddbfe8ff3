package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/aevon-lab/thermod/internal/core/aggregation"
)

// ErrClosed is returned by store operations after Close.
var ErrClosed = errors.New("store is closed")

// ReadingStore persists raw readings.
// The ingestion worker is the only writer; the query server reads concurrently.
type ReadingStore interface {
	Insert(ctx context.Context, r v1.Reading) error

	// Query returns readings with start <= timestamp <= end in insertion order.
	// Bounds are compared lexically, which matches chronological order for
	// record.TimestampLayout.
	Query(ctx context.Context, start, end string) ([]v1.Reading, error)
}

// AggregateStore persists flushed window aggregates.
type AggregateStore interface {
	InsertAggregate(ctx context.Context, agg aggregation.Aggregate) error
	QueryAggregates(ctx context.Context, window, start, end string) ([]aggregation.Aggregate, error)
}

// Store is the full persistence surface used by the daemon.
type Store interface {
	ReadingStore
	AggregateStore
	Ping(ctx context.Context) error
	Close() error
}
