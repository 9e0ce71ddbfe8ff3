package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	coreagg "github.com/aevon-lab/thermod/internal/core/aggregation"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. THERMOD_SERVER__PORT sets server.port.
const EnvPrefix = "THERMOD_"

// Supported serial line speeds.
var BaudRates = []int{4800, 9600, 19200, 38400, 57600, 115200}

// Transport kinds accepted by transport.kind.
const (
	TransportSerial    = "serial"
	TransportSimulator = "simulator"
)

// Config is the top-level daemon configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server" yaml:"server"`
	Database    DatabaseConfig    `koanf:"database" yaml:"database"`
	Transport   TransportConfig   `koanf:"transport" yaml:"transport"`
	Checkpoint  CheckpointConfig  `koanf:"checkpoint" yaml:"checkpoint"`
	Logs        LogsConfig        `koanf:"logs" yaml:"logs"`
	Aggregation AggregationConfig `koanf:"aggregation" yaml:"aggregation"`
	Log         LogConfig         `koanf:"log" yaml:"log"`
}

type ServerConfig struct {
	Port      int    `koanf:"port" yaml:"port"`
	Host      string `koanf:"host" yaml:"host"`
	Mode      string `koanf:"mode" yaml:"mode"` // debug | release
	AssetsDir string `koanf:"assets_dir" yaml:"assets_dir"`
}

// Addr returns host:port for net.Listen.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Path         string `koanf:"path" yaml:"path"`
	MaxOpenConns int    `koanf:"max_open_conns" yaml:"max_open_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate" yaml:"auto_migrate"`
}

type TransportConfig struct {
	Kind         string `koanf:"kind" yaml:"kind"` // serial | simulator
	Device       string `koanf:"device" yaml:"device"`
	BaudRate     int    `koanf:"baud_rate" yaml:"baud_rate"`
	PollInterval string `koanf:"poll_interval" yaml:"poll_interval"` // parsed and validated on startup
	ReadBuffer   int    `koanf:"read_buffer" yaml:"read_buffer"`
}

// Poll returns the parsed poll interval. Call Validate first.
func (c TransportConfig) Poll() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

type CheckpointConfig struct {
	Path string `koanf:"path" yaml:"path"`
}

type LogsConfig struct {
	Raw    RingLogConfig   `koanf:"raw" yaml:"raw"`
	Hourly RingLogConfig   `koanf:"hourly" yaml:"hourly"`
	Daily  YearlyLogConfig `koanf:"daily" yaml:"daily"`
}

type RingLogConfig struct {
	Path  string `koanf:"path" yaml:"path"`
	Cycle int    `koanf:"cycle" yaml:"cycle"`
}

type YearlyLogConfig struct {
	Path    string `koanf:"path" yaml:"path"`
	Archive bool   `koanf:"archive" yaml:"archive"`
}

type AggregationConfig struct {
	HourlyWindow string `koanf:"hourly_window" yaml:"hourly_window"` // "1h" or Go duration
	DailyWindow  string `koanf:"daily_window" yaml:"daily_window"`   // "1d" or Go duration
	Tick         string `koanf:"tick" yaml:"tick"`
}

// Windows returns the parsed hourly and daily window lengths. Call Validate first.
func (c AggregationConfig) Windows() (hourly, daily time.Duration) {
	hourly, _ = coreagg.ParseWindow(c.HourlyWindow)
	daily, _ = coreagg.ParseWindow(c.DailyWindow)
	return hourly, daily
}

// TickInterval returns the parsed flusher poll tick. Call Validate first.
func (c AggregationConfig) TickInterval() time.Duration {
	d, _ := time.ParseDuration(c.Tick)
	return d
}

type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`   // debug | info | warn | error
	Format string `koanf:"format" yaml:"format"` // text | json
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}

	switch c.Transport.Kind {
	case TransportSerial:
		if strings.TrimSpace(c.Transport.Device) == "" {
			return fmt.Errorf("transport.device is required for serial transport")
		}
		if !slices.Contains(BaudRates, c.Transport.BaudRate) {
			return fmt.Errorf("unsupported transport.baud_rate %d (must be one of %v)", c.Transport.BaudRate, BaudRates)
		}
	case TransportSimulator:
	default:
		return fmt.Errorf("unsupported transport.kind %q (must be serial or simulator)", c.Transport.Kind)
	}
	if err := positiveDuration("transport.poll_interval", c.Transport.PollInterval); err != nil {
		return err
	}
	if c.Transport.ReadBuffer <= 0 {
		return fmt.Errorf("transport.read_buffer must be > 0")
	}

	if strings.TrimSpace(c.Checkpoint.Path) == "" {
		return fmt.Errorf("checkpoint.path is required")
	}

	for name, ring := range map[string]RingLogConfig{"logs.raw": c.Logs.Raw, "logs.hourly": c.Logs.Hourly} {
		if strings.TrimSpace(ring.Path) == "" {
			return fmt.Errorf("%s.path is required", name)
		}
		if ring.Cycle <= 0 {
			return fmt.Errorf("%s.cycle must be > 0", name)
		}
	}
	if strings.TrimSpace(c.Logs.Daily.Path) == "" {
		return fmt.Errorf("logs.daily.path is required")
	}

	if _, err := coreagg.ParseWindow(c.Aggregation.HourlyWindow); err != nil {
		return fmt.Errorf("invalid aggregation.hourly_window: %w", err)
	}
	if _, err := coreagg.ParseWindow(c.Aggregation.DailyWindow); err != nil {
		return fmt.Errorf("invalid aggregation.daily_window: %w", err)
	}
	if err := positiveDuration("aggregation.tick", c.Aggregation.Tick); err != nil {
		return err
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q (must be text or json)", c.Log.Format)
	}

	return nil
}

func positiveDuration(key, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be > 0", key)
	}
	return nil
}

// Defaults returns the built-in configuration values keyed by koanf path.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":               8080,
		"server.host":               "0.0.0.0",
		"server.mode":               "release",
		"server.assets_dir":         ".",
		"database.path":             "temperature.db",
		"database.max_open_conns":   4,
		"database.auto_migrate":     true,
		"transport.kind":            TransportSerial,
		"transport.device":          "/dev/pts/3",
		"transport.baud_rate":       115200,
		"transport.poll_interval":   "1s",
		"transport.read_buffer":     255,
		"checkpoint.path":           "last_record.txt",
		"logs.raw.path":             "log.txt",
		"logs.raw.cycle":            86400,
		"logs.hourly.path":          "log_hour.txt",
		"logs.hourly.cycle":         720,
		"logs.daily.path":           "log_day.txt",
		"logs.daily.archive":        true,
		"aggregation.hourly_window": coreagg.LabelHourly,
		"aggregation.daily_window":  coreagg.LabelDaily,
		"aggregation.tick":          "1s",
		"log.level":                 "info",
		"log.format":                "text",
	}
}

// Load layers defaults, the optional YAML file at configPath and THERMOD_
// environment variables, then validates the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
