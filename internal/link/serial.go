// internal/link/serial.go
package link

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig is the minimal port config the uploader needs.
type SerialConfig struct {
	Address  string
	BaudRate int

	// PollInterval is the port read timeout. ReadLine bounds are built from it.
	PollInterval time.Duration

	// ResetPulse is how long DTR/RTS stay deasserted during a reset strobe.
	ResetPulse time.Duration
}

// DefaultSerialConfig returns 115200 baud, 50ms polls and a 100ms reset pulse.
func DefaultSerialConfig(address string) SerialConfig {
	return SerialConfig{
		Address:      address,
		BaudRate:     115200,
		PollInterval: 50 * time.Millisecond,
		ResetPulse:   100 * time.Millisecond,
	}
}

// OpenSerial opens the port 8N1 and wraps it in a line-framed Conn.
func OpenSerial(cfg SerialConfig) (*Conn, error) {
	if cfg.Address == "" {
		return nil, errors.New("link: serial address required")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("link: invalid baud rate %d", cfg.BaudRate)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 50 * time.Millisecond
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Address,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		// goburrow/serial defaults to even parity (Modbus); the device runs 8N1.
		Parity:  "N",
		Timeout: cfg.PollInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", cfg.Address, err)
	}

	return NewConn(port, controlLineReset(cfg.Address, cfg.ResetPulse)), nil
}
