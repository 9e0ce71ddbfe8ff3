package aggregation

import (
	"context"
	"fmt"
	"time"

	"github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/core/record"
	"github.com/aevon-lab/thermod/internal/core/storage"
)

// Sink receives every aggregate a flusher emits.
// A failing sink is logged by the flusher and does not stop the other sinks.
type Sink interface {
	Write(ctx context.Context, agg aggregation.Aggregate) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, agg aggregation.Aggregate) error

func (f SinkFunc) Write(ctx context.Context, agg aggregation.Aggregate) error {
	return f(ctx, agg)
}

// StoreSink writes aggregates to the aggregates table.
func StoreSink(store storage.AggregateStore) Sink {
	return SinkFunc(func(ctx context.Context, agg aggregation.Aggregate) error {
		return store.InsertAggregate(ctx, agg)
	})
}

// LineWriter is a ring log. *logfile.Ring satisfies it.
type LineWriter interface {
	Write(line string) error
}

// RingSink writes "<timestamp> <mean>" fixed records to a ring log.
func RingSink(ring LineWriter) Sink {
	return SinkFunc(func(_ context.Context, agg aggregation.Aggregate) error {
		if err := ring.Write(line(agg)); err != nil {
			return fmt.Errorf("ring sink: %w", err)
		}
		return nil
	})
}

// YearWriter is a log that rotates on calendar years. *logfile.YearlyLog satisfies it.
type YearWriter interface {
	Write(at time.Time, line string) error
}

// YearlySink writes "<timestamp> <mean>" fixed records to a yearly log,
// using the aggregate's flush time to decide rotation.
func YearlySink(log YearWriter) Sink {
	return SinkFunc(func(_ context.Context, agg aggregation.Aggregate) error {
		if err := log.Write(agg.At, line(agg)); err != nil {
			return fmt.Errorf("yearly sink: %w", err)
		}
		return nil
	})
}

func line(agg aggregation.Aggregate) string {
	return record.Line(agg.Timestamp, agg.Mean)
}
