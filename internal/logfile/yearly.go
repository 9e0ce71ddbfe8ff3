package logfile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aevon-lab/thermod/internal/core/record"
	"github.com/klauspost/compress/zstd"
)

// YearlyLog appends fixed records to a file that holds a single calendar year.
//
// The first write of a process only records the year. A later write stamped
// with a different year closes the file, optionally archives its content to
// "<path>.<year>.zst", truncates it and then appends the new record. The
// record is written even when archiving fails.
type YearlyLog struct {
	mu      sync.Mutex
	f       *os.File
	path    string
	year    int
	archive bool
	closed  bool
	logger  *slog.Logger
}

// OpenYearly opens or creates the log at path in append mode.
func OpenYearly(path string, archive bool, logger *slog.Logger) (*YearlyLog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := openAppend(path, false)
	if err != nil {
		return nil, err
	}

	logger.Info("[YearlyLog] Opened", "path", path, "archive", archive)
	return &YearlyLog{f: f, path: path, archive: archive, logger: logger}, nil
}

func openAppend(path string, truncate bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if truncate {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open yearly log %s: %w", path, err)
	}
	return f, nil
}

// Write appends line as a fixed record, rotating first if at falls in a new year.
func (y *YearlyLog) Write(at time.Time, line string) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.closed {
		return fmt.Errorf("yearly log %s: %w", y.path, os.ErrClosed)
	}

	year := at.Year()
	switch {
	case y.year == 0:
		y.year = year
	case year != y.year:
		y.rotate()
		y.year = year
	}

	// A failed reopen leaves f nil; retry on every write.
	if y.f == nil {
		f, err := openAppend(y.path, false)
		if err != nil {
			return err
		}
		y.f = f
	}

	if _, err := io.WriteString(y.f, record.Fixed(line)); err != nil {
		return fmt.Errorf("failed to append yearly log %s: %w", y.path, err)
	}
	return nil
}

// rotate closes the current file, archives it when enabled and reopens it
// empty. An archive failure is logged and the old year is discarded anyway.
func (y *YearlyLog) rotate() {
	if err := y.f.Close(); err != nil {
		y.logger.Warn("[YearlyLog] Close before rotation failed", "path", y.path, "error", err)
	}
	y.f = nil

	if y.archive {
		dst, err := archiveYear(y.path, y.year)
		if err != nil {
			y.logger.Error("[YearlyLog] Archive failed, discarding year",
				"year", y.year,
				"path", y.path,
				"error", err,
			)
		} else {
			y.logger.Info("[YearlyLog] Archived year", "year", y.year, "archive", dst)
		}
	}

	f, err := openAppend(y.path, true)
	if err != nil {
		y.logger.Error("[YearlyLog] Reopen after rotation failed", "path", y.path, "error", err)
		return
	}
	y.f = f

	y.logger.Info("[YearlyLog] Rotated", "path", y.path, "previous_year", y.year)
}

// archiveYear is replaced in tests.
var archiveYear = archiveFile

// archivePath returns "<path>.<year>.zst", or a timestamped variant when that
// archive already exists.
func archivePath(path string, year int) string {
	dst := fmt.Sprintf("%s.%d.zst", path, year)
	if _, err := os.Lstat(dst); errors.Is(err, os.ErrNotExist) {
		return dst
	}
	return fmt.Sprintf("%s.%d-%d.zst", path, year, time.Now().UnixNano())
}

// archiveFile compresses src into a temp file next to it and renames it into
// place, so a failed attempt never leaves a partial archive behind.
func archiveFile(src string, year int) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(src), filepath.Base(src)+".*.zst.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		tmp.Close()
		return "", err
	}
	if _, err := io.Copy(enc, in); err != nil {
		enc.Close()
		tmp.Close()
		return "", err
	}
	if err := enc.Close(); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	dst := archivePath(src, year)
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Year returns the calendar year of the current content, or 0 before the first write.
func (y *YearlyLog) Year() int {
	y.mu.Lock()
	defer y.mu.Unlock()
	return y.year
}

// Path returns the log file path.
func (y *YearlyLog) Path() string {
	return y.path
}

// Close closes the file. Repeated calls are no-ops.
func (y *YearlyLog) Close() error {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.closed {
		return nil
	}
	y.closed = true
	if y.f == nil {
		return nil
	}
	f := y.f
	y.f = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close yearly log %s: %w", y.path, err)
	}
	return nil
}
