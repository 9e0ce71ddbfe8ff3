package transport

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.bug.st/serial"
)

// openPort is replaced in tests.
var openPort = serial.Open

// Serial reads from a tty configured for 8N1.
type Serial struct {
	port     serial.Port
	device   string
	once     sync.Once
	closeErr error
}

// OpenSerial opens device at baud, sets the read timeout and discards any
// bytes already queued in the input buffer.
func OpenSerial(device string, baud int, readTimeout time.Duration, logger *slog.Logger) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := openPort(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", device, err)
	}

	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", device, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush input buffer on %s: %w", device, err)
	}

	logger.Info("[Transport] Serial port opened",
		"device", device,
		"baud_rate", baud,
		"read_timeout", readTimeout)

	return &Serial{port: port, device: device}, nil
}

// Read returns whatever bytes arrived within the read timeout.
func (s *Serial) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if err != nil {
		return n, fmt.Errorf("serial read %s: %w", s.device, err)
	}
	return n, nil
}

// Close closes the port once.
func (s *Serial) Close() error {
	s.once.Do(func() {
		s.closeErr = s.port.Close()
	})
	return s.closeErr
}
