// Package daemon owns the lifecycle of every long-lived resource: it acquires
// them in a fixed order, runs the worker goroutines and releases them in
// reverse on shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aevon-lab/thermod/internal/aggregation"
	"github.com/aevon-lab/thermod/internal/checkpoint"
	"github.com/aevon-lab/thermod/internal/core/config"
	"github.com/aevon-lab/thermod/internal/core/state"
	"github.com/aevon-lab/thermod/internal/core/storage/sqlite"
	"github.com/aevon-lab/thermod/internal/ingestion"
	"github.com/aevon-lab/thermod/internal/live"
	"github.com/aevon-lab/thermod/internal/logfile"
	"github.com/aevon-lab/thermod/internal/migrations"
	"github.com/aevon-lab/thermod/internal/projection"
	"github.com/aevon-lab/thermod/internal/server"
	"github.com/aevon-lab/thermod/internal/transport"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	coreagg "github.com/aevon-lab/thermod/internal/core/aggregation"
)

// Checkpoint slots.
const (
	slotRaw = iota
	slotHourly
	slotCount
)

// Daemon is the assembled telemetry service.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	state  *state.State

	// Acquired resources, in acquisition order.
	checkpoint *checkpoint.File
	store      *sqlite.Adapter
	rawLog     *logfile.Ring
	hourlyLog  *logfile.Ring
	dailyLog   *logfile.YearlyLog
	transport  transport.Transport

	worker   *ingestion.Worker
	flushers []*aggregation.Flusher
	hub      *live.Hub
	server   *server.Server

	closeOnce sync.Once
	closeErr  error
}

// New acquires every resource named by cfg and wires the components. If any
// step fails, the resources acquired so far are released in reverse order.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Daemon{
		cfg:    cfg,
		logger: logger,
		state:  state.New(time.Now()),
	}

	if err := d.acquire(); err != nil {
		if relErr := d.release(); relErr != nil {
			logger.Error("[Daemon] Release after failed startup", "error", relErr)
		}
		return nil, err
	}
	d.wire()

	return d, nil
}

func (d *Daemon) acquire() error {
	var err error

	d.checkpoint, err = checkpoint.Load(d.cfg.Checkpoint.Path, slotCount)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	d.logger.Info("[Daemon] Checkpoint loaded",
		"path", d.checkpoint.Path(),
		"positions", d.checkpoint.Positions(),
	)

	db, err := sqlite.Open(d.cfg.Database.Path, d.cfg.Database.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := migrations.RunMigrations(db, d.cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return fmt.Errorf("migrate store: %w", err)
	}
	d.store, err = sqlite.NewAdapter(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("open store: %w", err)
	}

	d.rawLog, err = logfile.OpenRing(d.cfg.Logs.Raw.Path, d.cfg.Logs.Raw.Cycle, d.checkpoint.Slot(slotRaw), d.logger)
	if err != nil {
		return fmt.Errorf("open raw log: %w", err)
	}
	d.hourlyLog, err = logfile.OpenRing(d.cfg.Logs.Hourly.Path, d.cfg.Logs.Hourly.Cycle, d.checkpoint.Slot(slotHourly), d.logger)
	if err != nil {
		return fmt.Errorf("open hourly log: %w", err)
	}
	d.dailyLog, err = logfile.OpenYearly(d.cfg.Logs.Daily.Path, d.cfg.Logs.Daily.Archive, d.logger)
	if err != nil {
		return fmt.Errorf("open daily log: %w", err)
	}
	d.logger.Info("[Daemon] Logs opened",
		"raw", d.rawLog.Path(),
		"raw_position", d.rawLog.Position(),
		"hourly", d.hourlyLog.Path(),
		"hourly_position", d.hourlyLog.Position(),
		"daily", d.dailyLog.Path(),
	)

	d.transport, err = transport.Open(d.cfg.Transport, d.logger)
	if err != nil {
		return fmt.Errorf("open transport: %w", err)
	}
	return nil
}

func (d *Daemon) wire() {
	hourly, daily := d.cfg.Aggregation.Windows()
	tick := d.cfg.Aggregation.TickInterval()

	d.hub = live.NewHub(d.logger)

	d.worker = ingestion.NewWorker(d.transport, d.store, d.rawLog, d.state, d.hub, ingestion.Options{
		PollInterval: d.cfg.Transport.Poll(),
		ReadBuffer:   d.cfg.Transport.ReadBuffer,
	}, d.logger)

	d.flushers = []*aggregation.Flusher{
		aggregation.NewFlusher("hourly", hourly, d.state.Hourly, d.state.StartedAt, tick, d.logger,
			aggregation.RingSink(d.hourlyLog),
			aggregation.StoreSink(d.store),
		),
		aggregation.NewFlusher("daily", daily, d.state.Daily, d.state.StartedAt, tick, d.logger,
			aggregation.YearlySink(d.dailyLog),
			aggregation.StoreSink(d.store),
		),
	}

	query := projection.NewService(d.store, d.state, coreagg.Label(hourly), coreagg.Label(daily))

	d.server = server.New(d.cfg.Server, d.store, d.logger)
	query.RegisterRoutes(d.server.Engine)
	d.server.Engine.GET("/live", gin.WrapH(d.hub))
}

// Server exposes the HTTP server, mainly so tests can drive its engine.
func (d *Daemon) Server() *server.Server {
	return d.server
}

// State exposes the shared daemon state.
func (d *Daemon) State() *state.State {
	return d.state
}

// Run starts every worker and blocks until ctx is cancelled or one of them
// fails. A failure cancels the others.
func (d *Daemon) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := d.worker.Run(ctx); err != nil {
			return fmt.Errorf("ingestion: %w", err)
		}
		return nil
	})
	for _, f := range d.flushers {
		g.Go(func() error { return f.Run(ctx) })
	}
	g.Go(func() error { return d.hub.Run(ctx) })
	g.Go(func() error {
		if err := d.server.Run(ctx); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	d.logger.Info("[Daemon] Running",
		"transport", d.cfg.Transport.Kind,
		"address", d.server.Addr,
	)

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close saves the checkpoint and releases every resource. It is safe to call
// more than once.
func (d *Daemon) Close() error {
	d.closeOnce.Do(func() {
		var errs []error
		if d.checkpoint != nil {
			if err := d.checkpoint.Save(); err != nil {
				errs = append(errs, fmt.Errorf("save checkpoint: %w", err))
			} else {
				d.logger.Info("[Daemon] Checkpoint saved", "positions", d.checkpoint.Positions())
			}
		}
		if err := d.release(); err != nil {
			errs = append(errs, err)
		}
		d.closeErr = errors.Join(errs...)
	})
	return d.closeErr
}

// release closes acquired resources in reverse acquisition order. Resources
// that were never acquired are skipped.
func (d *Daemon) release() error {
	var errs []error
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close transport: %w", err))
		}
	}
	if d.dailyLog != nil {
		if err := d.dailyLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close daily log: %w", err))
		}
	}
	if d.hourlyLog != nil {
		if err := d.hourlyLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close hourly log: %w", err))
		}
	}
	if d.rawLog != nil {
		if err := d.rawLog.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close raw log: %w", err))
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}
