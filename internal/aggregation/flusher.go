package aggregation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/core/record"
)

const defaultTick = time.Second

// Flusher closes one aggregation window at a time. It polls the clock every
// tick; when the boundary has passed it advances the boundary by exactly one
// window, drains the bucket and hands the aggregate to every sink.
//
// A stall longer than a window does not replay missed windows: the next poll
// emits one aggregate and the boundary lags until later polls catch up.
// Partial windows are dropped on shutdown.
type Flusher struct {
	name   string
	window time.Duration
	bucket *aggregation.Bucket
	sinks  []Sink
	tick   time.Duration
	now    func() time.Time
	next   time.Time
	logger *slog.Logger
}

// NewFlusher creates a flusher whose first boundary is start+window.
func NewFlusher(name string, window time.Duration, bucket *aggregation.Bucket, start time.Time, tick time.Duration, logger *slog.Logger, sinks ...Sink) *Flusher {
	if window <= 0 {
		panic("aggregation: window must be positive")
	}
	if bucket == nil {
		panic("aggregation: bucket must not be nil")
	}
	if tick <= 0 {
		tick = defaultTick
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Flusher{
		name:   name,
		window: window,
		bucket: bucket,
		sinks:  sinks,
		tick:   tick,
		now:    time.Now,
		next:   start.Add(window),
		logger: logger,
	}
}

// Next returns the boundary the flusher is waiting for.
func (f *Flusher) Next() time.Time {
	return f.next
}

// Run polls until ctx is cancelled.
func (f *Flusher) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	f.logger.Info("[Flusher] Starting",
		"name", f.name,
		"window", f.window,
		"first_boundary", f.next.Format(record.TimestampLayout),
	)

	for {
		select {
		case <-ticker.C:
			f.Poll(ctx, f.now())
		case <-ctx.Done():
			// In-progress window is not emitted.
			_, pending := f.bucket.Snapshot()
			f.logger.Info("[Flusher] Stopping (context cancelled)",
				"name", f.name,
				"pending_samples", pending,
			)
			return nil
		}
	}
}

// Poll emits an aggregate stamped now if the boundary has been reached and
// reports whether it did.
func (f *Flusher) Poll(ctx context.Context, now time.Time) bool {
	if now.Before(f.next) {
		return false
	}
	f.next = f.next.Add(f.window)

	mean, count := f.bucket.DrainAndReset()
	agg := aggregation.Aggregate{
		Window:    aggregation.Label(f.window),
		At:        now,
		Timestamp: record.FormatTimestamp(now),
		Mean:      mean,
		Count:     count,
	}

	for _, sink := range f.sinks {
		if err := sink.Write(ctx, agg); err != nil {
			f.logger.Error("[Flusher] Sink write failed",
				"name", f.name,
				"timestamp", agg.Timestamp,
				"error", err,
			)
		}
	}

	f.logger.Info("[Flusher] Window closed",
		"name", f.name,
		"timestamp", agg.Timestamp,
		"mean", record.FormatValue(mean),
		"samples", count,
		"next_boundary", f.next.Format(record.TimestampLayout),
	)
	return true
}
