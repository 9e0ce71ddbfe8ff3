// Package logfile implements the two on-disk text logs kept next to the database:
// a fixed-capacity ring of fixed-length records and a yearly append log.
package logfile

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/aevon-lab/thermod/internal/core/record"
)

// Position is the persisted write slot of a ring. *checkpoint.Cursor satisfies it.
type Position interface {
	Get() int
	Set(int)
}

// Ring is a file of cycle fixed-length slots written in order and wrapped back
// to slot 0 after the last one. Slot n lives at byte offset n*record.Length.
//
// Invariant: 0 <= position < cycle after every operation.
type Ring struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	cycle  int
	pos    Position
	logger *slog.Logger
}

// OpenRing opens (without truncating) or creates the ring file at path.
// A stored position outside [0, cycle) restarts the ring at slot 0.
func OpenRing(path string, cycle int, pos Position, logger *slog.Logger) (*Ring, error) {
	if cycle <= 0 {
		return nil, fmt.Errorf("ring %s: cycle must be positive, got %d", path, cycle)
	}
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open ring log %s: %w", path, err)
	}

	if p := pos.Get(); p >= cycle {
		logger.Warn("[Ring] Stored position past cycle, wrapping to start",
			"path", path, "position", p, "cycle", cycle)
		pos.Set(0)
	}

	logger.Info("[Ring] Opened", "path", path, "cycle", cycle, "position", pos.Get())
	return &Ring{f: f, path: path, cycle: cycle, pos: pos, logger: logger}, nil
}

// Write stores line, normalized to a fixed record, in the current slot and
// advances the position. The position is only advanced when the write succeeds.
func (r *Ring) Write(line string) error {
	rec := record.Fixed(line)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.f == nil {
		return fmt.Errorf("ring log %s: %w", r.path, os.ErrClosed)
	}

	slot := r.pos.Get()
	if _, err := r.f.WriteAt([]byte(rec), int64(slot)*record.Length); err != nil {
		return fmt.Errorf("failed to write ring log %s slot %d: %w", r.path, slot, err)
	}

	next := slot + 1
	if next >= r.cycle {
		next = 0
	}
	r.pos.Set(next)
	return nil
}

// Position returns the slot the next write goes to.
func (r *Ring) Position() int {
	return r.pos.Get()
}

// Path returns the ring file path.
func (r *Ring) Path() string {
	return r.path
}

// Close syncs and closes the file. Repeated calls are no-ops.
func (r *Ring) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.f == nil {
		return nil
	}
	f := r.f
	r.f = nil

	syncErr := f.Sync()
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close ring log %s: %w", r.path, err)
	}
	if syncErr != nil {
		return fmt.Errorf("failed to sync ring log %s: %w", r.path, syncErr)
	}
	return nil
}
