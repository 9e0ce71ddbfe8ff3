package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/migrations"
	"github.com/stretchr/testify/require"
)

func newFileAdapter(t *testing.T) *Adapter {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "temperature.db"), 4)
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db, true))

	adapter, err := NewAdapter(db)
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestRoundTrip_InsertAndQuery(t *testing.T) {
	adapter := newFileAdapter(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	for i, v := range []float64{20.0, 20.4, 0.0, 21.0} {
		require.NoError(t, adapter.Insert(ctx, v1.NewReading(base.Add(time.Duration(i)*time.Second), v)))
	}

	all, err := adapter.Query(ctx, "2024-03-01 12:00:00.000", "2024-03-01 12:00:03.000")
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "20.400000", all[1].Temperature)
	require.Equal(t, "0.000000", all[2].Temperature)

	// Both bounds are inclusive.
	one, err := adapter.Query(ctx, "2024-03-01 12:00:01.000", "2024-03-01 12:00:01.000")
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "2024-03-01 12:00:01.000", one[0].Timestamp)

	none, err := adapter.Query(ctx, "2024-03-01 12:00:03.000", "2024-03-01 12:00:00.000")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestRoundTrip_PreservesInsertionOrder(t *testing.T) {
	adapter := newFileAdapter(t)
	ctx := context.Background()

	// Same timestamp, different values.
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, adapter.Insert(ctx, v1.NewReading(at, 2)))
	require.NoError(t, adapter.Insert(ctx, v1.NewReading(at, 1)))

	rows, err := adapter.Query(ctx, "2024-03-01 12:00:00.000", "2024-03-01 12:00:00.000")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2.0, rows[0].Value)
	require.Equal(t, 1.0, rows[1].Value)
}

func TestRoundTrip_Aggregates(t *testing.T) {
	adapter := newFileAdapter(t)
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 13, 0, 0, 0, time.Local)
	require.NoError(t, adapter.InsertAggregate(ctx, aggregation.Aggregate{
		Window: aggregation.LabelHourly, At: at, Timestamp: "2024-03-01 13:00:00.000", Mean: 15.35, Count: 4,
	}))
	require.NoError(t, adapter.InsertAggregate(ctx, aggregation.Aggregate{
		Window: aggregation.LabelDaily, At: at, Timestamp: "2024-03-01 13:00:00.000", Mean: 18, Count: 10,
	}))

	hourly, err := adapter.QueryAggregates(ctx, aggregation.LabelHourly, "2024-03-01 00:00:00.000", "2024-03-01 23:59:59.999")
	require.NoError(t, err)
	require.Len(t, hourly, 1)
	require.Equal(t, 15.35, hourly[0].Mean)
	require.Equal(t, 4, hourly[0].Count)
	require.Equal(t, at, hourly[0].At)
}

func TestRoundTrip_ConcurrentReadersAndWriter(t *testing.T) {
	adapter := newFileAdapter(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	const writes = 100
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			require.NoError(t, adapter.Insert(ctx, v1.NewReading(base.Add(time.Duration(i)*time.Millisecond), float64(i))))
		}
	}()

	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := adapter.Query(ctx, "2024-03-01 00:00:00.000", "2024-03-01 23:59:59.999")
				require.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	rows, err := adapter.Query(ctx, "2024-03-01 00:00:00.000", "2024-03-01 23:59:59.999")
	require.NoError(t, err)
	require.Len(t, rows, writes)
	require.NoError(t, adapter.Ping(ctx))
}
