package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/aevon-lab/thermod/internal/core/storage"
)

// Insert appends a reading. Rows get a monotonically increasing id.
func (a *Adapter) Insert(ctx context.Context, r v1.Reading) error {
	if a.closed.Load() {
		return storage.ErrClosed
	}

	if _, err := a.stmtInsertReading.ExecContext(ctx, r.Timestamp, r.Temperature); err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}

	slog.Debug("[SQLite] Inserted reading",
		"timestamp", r.Timestamp,
		"temperature", r.Temperature)
	return nil
}

// Query returns readings with start <= timestamp <= end ordered by id.
// An empty range yields an empty, non-nil slice.
func (a *Adapter) Query(ctx context.Context, start, end string) ([]v1.Reading, error) {
	if a.closed.Load() {
		return nil, storage.ErrClosed
	}

	rows, err := a.stmtRangeReadings.QueryContext(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	readings := make([]v1.Reading, 0)
	for rows.Next() {
		var r v1.Reading
		if err := rows.Scan(&r.Timestamp, &r.Temperature); err != nil {
			return nil, fmt.Errorf("failed to scan reading row: %w", err)
		}
		// Rows written by older builds may hold padded text.
		if v, err := strconv.ParseFloat(trimValue(r.Temperature), 64); err == nil {
			r.Value = v
		}
		readings = append(readings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return readings, nil
}
