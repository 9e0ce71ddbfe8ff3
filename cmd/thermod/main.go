package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	corecfg "github.com/aevon-lab/thermod/internal/core/config"
	"github.com/aevon-lab/thermod/internal/daemon"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := pflag.StringP("config", "c", "", "Path to YAML configuration file")
	printConfig := pflag.Bool("print-config", false, "Print the effective configuration and exit")
	logLevel := pflag.String("log-level", "", "Override log.level (debug, info, warn, error)")
	pflag.Parse()

	if *logLevel != "" {
		os.Setenv(corecfg.EnvPrefix+"LOG__LEVEL", *logLevel)
	}

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if *printConfig {
		if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print config: %v\n", err)
			return 1
		}
		return 0
	}

	// 2. Initialize Logger
	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)
	slog.Info("Loaded config", "config", cfg)

	// 3. Acquire resources
	d, err := daemon.New(cfg, logger)
	if err != nil {
		slog.Error("Failed to start daemon", "error", err)
		return 1
	}
	defer func() {
		if err := d.Close(); err != nil {
			slog.Error("Shutdown released resources with errors", "error", err)
		}
		slog.Info("Shutdown complete")
	}()

	// 4. Run until the first signal; a second one terminates immediately.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := d.Run(ctx); err != nil {
		slog.Error("Daemon stopped with error", "error", err)
		return 1
	}
	slog.Info("Shutting down...")
	return 0
}

func newLogger(cfg corecfg.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
