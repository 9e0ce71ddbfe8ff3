package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/aevon-lab/thermod/internal/core/record"
	"github.com/aevon-lab/thermod/internal/core/storage"
	"github.com/shopspring/decimal"
)

// InsertAggregate stores one flushed window.
func (a *Adapter) InsertAggregate(ctx context.Context, agg aggregation.Aggregate) error {
	if a.closed.Load() {
		return storage.ErrClosed
	}

	_, err := a.stmtInsertAggregate.ExecContext(ctx,
		agg.Window,
		agg.Timestamp,
		record.FormatValue(agg.Mean),
		agg.Count,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s aggregate: %w", agg.Window, err)
	}
	return nil
}

// QueryAggregates returns aggregates of one window label flushed within
// [start, end], oldest first.
func (a *Adapter) QueryAggregates(ctx context.Context, window, start, end string) ([]aggregation.Aggregate, error) {
	if a.closed.Load() {
		return nil, storage.ErrClosed
	}

	rows, err := a.stmtRangeAggregates.QueryContext(ctx, window, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s aggregates: %w", window, err)
	}
	defer rows.Close()

	out := make([]aggregation.Aggregate, 0)
	for rows.Next() {
		var (
			agg  aggregation.Aggregate
			mean string
		)
		if err := rows.Scan(&agg.Window, &agg.Timestamp, &mean, &agg.Count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}

		d, err := decimal.NewFromString(trimValue(mean))
		if err != nil {
			return nil, fmt.Errorf("invalid aggregate mean %q: %w", mean, err)
		}
		agg.Mean = d.InexactFloat64()

		if at, err := time.ParseInLocation(record.TimestampLayout, agg.Timestamp, time.Local); err == nil {
			agg.At = at
		}

		out = append(out, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregates: %w", err)
	}

	return out, nil
}

func trimValue(s string) string {
	return strings.TrimSpace(s)
}
