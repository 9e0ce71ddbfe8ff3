package aggregation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	coreagg "github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/core/record"
	"github.com/aevon-lab/thermod/internal/logfile"
	aggregationmocks "github.com/aevon-lab/thermod/internal/mocks/aggregation"
	storagemocks "github.com/aevon-lab/thermod/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlusher_Poll(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	bucket := coreagg.NewBucket()
	sink := NewMemorySink()
	f := NewFlusher("hourly", time.Hour, bucket, start, time.Second, quietLogger(), sink)

	for _, v := range []float64{20.0, 20.4, 0.0, 21.0} {
		bucket.Accumulate(v)
	}

	require.False(t, f.Poll(context.Background(), start.Add(59*time.Minute)))
	require.Empty(t, sink.Aggregates())

	boundary := start.Add(time.Hour)
	require.True(t, f.Poll(context.Background(), boundary))

	aggs := sink.Aggregates()
	require.Len(t, aggs, 1)
	require.Equal(t, coreagg.LabelHourly, aggs[0].Window)
	require.Equal(t, boundary, aggs[0].At)
	require.Equal(t, "2024-03-01 13:00:00.000", aggs[0].Timestamp)
	require.InDelta(t, 15.35, aggs[0].Mean, 1e-9)
	require.Equal(t, 4, aggs[0].Count)

	_, count := bucket.Snapshot()
	require.Zero(t, count)
	require.Equal(t, start.Add(2*time.Hour), f.Next())
}

func TestFlusher_EmptyWindowEmitsZero(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	sink := NewMemorySink()
	f := NewFlusher("daily", 24*time.Hour, coreagg.NewBucket(), start, 0, quietLogger(), sink)

	require.True(t, f.Poll(context.Background(), start.Add(24*time.Hour)))
	aggs := sink.Aggregates()
	require.Len(t, aggs, 1)
	require.Equal(t, coreagg.LabelDaily, aggs[0].Window)
	require.Zero(t, aggs[0].Mean)
	require.Zero(t, aggs[0].Count)
}

func TestFlusher_StallAdvancesOneWindowPerPoll(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	sink := NewMemorySink()
	f := NewFlusher("hourly", time.Hour, coreagg.NewBucket(), start, time.Second, quietLogger(), sink)

	late := start.Add(3*time.Hour + 30*time.Minute)
	require.True(t, f.Poll(context.Background(), late))
	require.Len(t, sink.Aggregates(), 1)
	require.Equal(t, start.Add(2*time.Hour), f.Next())

	// The lagging boundary fires on each following poll until it passes now.
	require.True(t, f.Poll(context.Background(), late))
	require.True(t, f.Poll(context.Background(), late))
	require.False(t, f.Poll(context.Background(), late))
	require.Len(t, sink.Aggregates(), 3)
	require.Equal(t, start.Add(4*time.Hour), f.Next())
}

func TestFlusher_SinkErrorIsNotFatal(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	failing := aggregationmocks.NewSink(t)
	failing.EXPECT().
		Write(mock.Anything, mock.AnythingOfType("aggregation.Aggregate")).
		Return(errors.New("disk full")).
		Twice()
	after := NewMemorySink()

	bucket := coreagg.NewBucket()
	f := NewFlusher("hourly", time.Hour, bucket, start, time.Second, quietLogger(), failing, after)

	bucket.Accumulate(10)
	require.True(t, f.Poll(context.Background(), start.Add(time.Hour)))
	bucket.Accumulate(30)
	require.True(t, f.Poll(context.Background(), start.Add(2*time.Hour)))

	aggs := after.Aggregates()
	require.Len(t, aggs, 2)
	require.Equal(t, 10.0, aggs[0].Mean)
	require.Equal(t, 30.0, aggs[1].Mean)
}

func TestFlusher_RunStopsWithoutFinalFlush(t *testing.T) {
	start := time.Now()
	bucket := coreagg.NewBucket()
	sink := NewMemorySink()
	f := NewFlusher("hourly", time.Hour, bucket, start, 5*time.Millisecond, quietLogger(), sink)

	bucket.Accumulate(42)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)

	require.Empty(t, sink.Aggregates())
	_, count := bucket.Snapshot()
	require.Equal(t, 1, count)
}

func TestFlusher_RunFiresOnClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	bucket := coreagg.NewBucket()
	sink := NewMemorySink()
	f := NewFlusher("hourly", time.Hour, bucket, start, time.Millisecond, quietLogger(), sink)
	f.now = func() time.Time { return start.Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx)

	require.Eventually(t, func() bool { return len(sink.Aggregates()) == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestStoreSink(t *testing.T) {
	store := storagemocks.NewStore(t)
	agg := coreagg.Aggregate{Window: coreagg.LabelHourly, Timestamp: "2024-03-01 13:00:00.000", Mean: 1, Count: 1}
	store.EXPECT().InsertAggregate(mock.Anything, agg).Return(nil).Once()

	require.NoError(t, StoreSink(store).Write(context.Background(), agg))
}

func TestRingSink_WritesFixedRecords(t *testing.T) {
	dir := t.TempDir()
	pos := &slot{}
	ring, err := logfile.OpenRing(filepath.Join(dir, "log_hour.txt"), 720, pos, quietLogger())
	require.NoError(t, err)
	defer ring.Close()

	agg := coreagg.Aggregate{Timestamp: "2024-03-01 13:00:00.000", Mean: 15.35}
	require.NoError(t, RingSink(ring).Write(context.Background(), agg))
	require.Equal(t, 1, pos.n)
}

func TestYearlySink_PassesFlushTime(t *testing.T) {
	var gotAt time.Time
	var gotLine string
	w := yearWriterFunc(func(at time.Time, line string) error {
		gotAt, gotLine = at, line
		return nil
	})

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	agg := coreagg.Aggregate{At: at, Timestamp: record.FormatTimestamp(at), Mean: 18.25}
	require.NoError(t, YearlySink(w).Write(context.Background(), agg))

	require.Equal(t, at, gotAt)
	require.Equal(t, record.Fixed("2025-01-01 00:00:00.000 18.25"), gotLine)
}

func TestYearlySink_WrapsError(t *testing.T) {
	boom := errors.New("read-only file system")
	w := yearWriterFunc(func(time.Time, string) error { return boom })

	err := YearlySink(w).Write(context.Background(), coreagg.Aggregate{})
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "yearly sink")
}

type slot struct{ n int }

func (s *slot) Get() int  { return s.n }
func (s *slot) Set(n int) { s.n = n }

type yearWriterFunc func(at time.Time, line string) error

func (f yearWriterFunc) Write(at time.Time, line string) error { return f(at, line) }
