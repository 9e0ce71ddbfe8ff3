package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	v1 "github.com/aevon-lab/thermod/internal/api/v1"
	"github.com/aevon-lab/thermod/internal/core/state"
	"github.com/aevon-lab/thermod/internal/core/storage"
)

const defaultReadBuffer = 255

// LineWriter receives the fixed record of every reading. *logfile.Ring satisfies it.
type LineWriter interface {
	Write(line string) error
}

// Publisher receives every reading after it is stored. *live.Hub satisfies it.
type Publisher interface {
	Publish(r v1.Reading)
}

// Options tune the read loop.
type Options struct {
	PollInterval time.Duration
	ReadBuffer   int
}

// Worker turns transport bytes into readings: it persists them, feeds the
// aggregation buckets and updates the current value.
type Worker struct {
	src    io.Reader
	store  storage.ReadingStore
	raw    LineWriter
	state  *state.State
	feed   Publisher
	opts   Options
	now    func() time.Time
	logger *slog.Logger
}

// NewWorker wires a worker. raw and feed may be nil.
func NewWorker(src io.Reader, store storage.ReadingStore, raw LineWriter, st *state.State, feed Publisher, opts Options, logger *slog.Logger) *Worker {
	if src == nil {
		panic("ingestion: transport must not be nil")
	}
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if st == nil {
		panic("ingestion: state must not be nil")
	}
	if opts.ReadBuffer <= 0 {
		opts.ReadBuffer = defaultReadBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		src:    src,
		store:  store,
		raw:    raw,
		state:  st,
		feed:   feed,
		opts:   opts,
		now:    time.Now,
		logger: logger,
	}
}

// Run reads from the transport until ctx is cancelled. A read error ends the
// loop and is returned; everything downstream of a successful read is best effort.
func (w *Worker) Run(ctx context.Context) error {
	buf := make([]byte, w.opts.ReadBuffer)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Info("[Ingestion] Worker started",
		"poll_interval", w.opts.PollInterval,
		"read_buffer", w.opts.ReadBuffer)

	for {
		if ctx.Err() != nil {
			w.logger.Info("[Ingestion] Worker stopped")
			return nil
		}

		n, err := w.src.Read(buf)
		if err != nil && !(errors.Is(err, io.EOF) && n > 0) {
			if ctx.Err() != nil {
				w.logger.Info("[Ingestion] Worker stopped")
				return nil
			}
			w.logger.Error("[Ingestion] Transport read failed", "error", err)
			return fmt.Errorf("transport read: %w", err)
		}
		if n > 0 {
			w.Process(ctx, buf[:n])
		}

		if w.opts.PollInterval <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(w.opts.PollInterval)
		} else {
			timer.Reset(w.opts.PollInterval)
		}
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// Process handles one chunk read from the transport and returns the reading
// built from it.
func (w *Worker) Process(ctx context.Context, chunk []byte) v1.Reading {
	value := w.parse(chunk)
	r := v1.NewReading(w.now(), value)

	if err := w.store.Insert(ctx, r); err != nil {
		w.logger.Error("[Ingestion] Failed to store reading",
			"timestamp", r.Timestamp,
			"error", err)
	}

	if w.raw != nil {
		if err := w.raw.Write(r.Line()); err != nil {
			w.logger.Error("[Ingestion] Failed to write raw log",
				"timestamp", r.Timestamp,
				"error", err)
		}
	}

	w.state.SetCurrent(r.Temperature)
	w.state.Hourly.Accumulate(value)
	w.state.Daily.Accumulate(value)

	if w.feed != nil {
		w.feed.Publish(r)
	}

	w.logger.Debug("[Ingestion] Reading processed",
		"timestamp", r.Timestamp,
		"temperature", r.Temperature)
	return r
}

// parse returns the chunk as a finite float, or 0 when it is not one.
func (w *Worker) parse(chunk []byte) float64 {
	text := strings.TrimSpace(string(chunk))
	v, err := strconv.ParseFloat(text, 64)
	if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}

	w.logger.Warn("[Ingestion] Unparsable sample, recording 0",
		"raw", text,
		"error", err)
	return 0
}
