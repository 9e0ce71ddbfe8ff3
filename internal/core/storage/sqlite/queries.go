package sqlite

// SQL statements for reading and aggregate storage.
// Timestamps are TEXT in record.TimestampLayout, so BETWEEN compares chronologically.

const (
	queryInsertReading = `
		INSERT INTO readings (timestamp, temperature)
		VALUES (?, ?)
	`

	// queryRangeReadings is inclusive on both bounds and returns rows in insertion order.
	queryRangeReadings = `
		SELECT timestamp, temperature
		FROM readings
		WHERE timestamp BETWEEN ? AND ?
		ORDER BY id ASC
	`

	queryInsertAggregate = `
		INSERT INTO aggregates (window_label, timestamp, temperature, sample_count)
		VALUES (?, ?, ?, ?)
	`

	queryRangeAggregates = `
		SELECT window_label, timestamp, temperature, sample_count
		FROM aggregates
		WHERE window_label = ?
		  AND timestamp BETWEEN ? AND ?
		ORDER BY id ASC
	`

	querySchemaTables = `
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name IN ('readings', 'aggregates')
	`
)
