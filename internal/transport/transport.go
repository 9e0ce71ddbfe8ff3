// Package transport provides the byte sources the ingestion worker reads samples from.
package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aevon-lab/thermod/internal/core/config"
)

// ErrUnknownKind is returned by Open for an unsupported transport.kind.
var ErrUnknownKind = errors.New("unknown transport kind")

// Transport is a stream of sensor bytes. Read blocks for at most the
// transport's read timeout and may return 0, nil when nothing arrived.
// Close is idempotent.
type Transport interface {
	io.ReadCloser
}

// Open builds the transport selected by cfg.Kind.
func Open(cfg config.TransportConfig, logger *slog.Logger) (Transport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Kind {
	case config.TransportSerial:
		s, err := OpenSerial(cfg.Device, cfg.BaudRate, cfg.Poll(), logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.TransportSimulator:
		logger.Info("[Transport] Using simulated sensor")
		return NewSimulator(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}
