package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/thermod/internal/core/storage"
	_ "modernc.org/sqlite" // Register sqlite driver
)

const connectPingTimeout = 5 * time.Second

// pragmas applied to every pooled connection.
var pragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"busy_timeout(5000)",
	"foreign_keys(OFF)",
}

// Adapter implements storage.Store on an embedded SQLite database.
type Adapter struct {
	db                  *sql.DB
	stmtInsertReading   *sql.Stmt
	stmtRangeReadings   *sql.Stmt
	stmtInsertAggregate *sql.Stmt
	stmtRangeAggregates *sql.Stmt
	closed              atomic.Bool
}

var _ storage.Store = (*Adapter)(nil)

// Open opens (creating if needed) the database file at path and verifies the
// connection. Schema is not touched; run migrations before NewAdapter.
func Open(path string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	slog.Info("[SQLite] Database opened",
		"path", path,
		"max_open_conns", maxOpenConns)

	return db, nil
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// NewAdapter validates the schema of db and prepares all statements.
// The adapter takes ownership of db and closes it in Close.
func NewAdapter(db *sql.DB) (*Adapter, error) {
	if err := validateSchema(db); err != nil {
		return nil, fmt.Errorf("schema validation failed - did you run migrations?: %w", err)
	}

	a := &Adapter{db: db}
	stmts := []struct {
		dst   **sql.Stmt
		query string
		name  string
	}{
		{&a.stmtInsertReading, queryInsertReading, "insertReading"},
		{&a.stmtRangeReadings, queryRangeReadings, "rangeReadings"},
		{&a.stmtInsertAggregate, queryInsertAggregate, "insertAggregate"},
		{&a.stmtRangeAggregates, queryRangeAggregates, "rangeAggregates"},
	}
	for _, s := range stmts {
		stmt, err := db.Prepare(s.query)
		if err != nil {
			a.closeStatements()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", s.name, err)
		}
		*s.dst = stmt
	}

	slog.Info("[SQLite] Adapter initialized with prepared statements")
	return a, nil
}

// validateSchema checks that both tables exist.
func validateSchema(db *sql.DB) error {
	var n int
	if err := db.QueryRow(querySchemaTables).Scan(&n); err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if n != 2 {
		return fmt.Errorf("expected readings and aggregates tables, found %d of 2", n)
	}
	return nil
}

// Ping verifies the database is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.closed.Load() {
		return storage.ErrClosed
	}
	return a.db.PingContext(ctx)
}

// Close closes all prepared statements and the database. Calling Close more
// than once is a no-op.
func (a *Adapter) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}

	firstErr := a.closeStatements()

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to close database: %w", err)
	}

	if firstErr != nil {
		return firstErr
	}

	slog.Info("[SQLite] Adapter closed gracefully")
	return nil
}

func (a *Adapter) closeStatements() error {
	var firstErr error
	for _, stmt := range []*sql.Stmt{
		a.stmtInsertReading,
		a.stmtRangeReadings,
		a.stmtInsertAggregate,
		a.stmtRangeAggregates,
	} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close statement: %w", err)
		}
	}
	return firstErr
}
