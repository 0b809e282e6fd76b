// internal/link/channel.go
package link

import (
	"errors"
	"time"
)

var (
	// ErrReadTimeout means no complete line arrived within the requested bound.
	ErrReadTimeout = errors.New("link: read timeout")
	// ErrLineTooLong means the peer sent more than MaxLineLen bytes without a line break.
	ErrLineTooLong = errors.New("link: line too long")
	// ErrResetUnsupported means the channel has no control lines to strobe.
	// The device must then be put into upload mode by hand.
	ErrResetUnsupported = errors.New("link: device reset not supported")
	// ErrClosed is returned by operations on a closed channel.
	ErrClosed = errors.New("link: closed")
)

// Channel is a duplex, line-framed byte stream to one device.
// Exactly one owner may use it at a time.
type Channel interface {
	// WriteLine sends line followed by a line break.
	WriteLine(line string) error
	// ReadLine blocks until a full line is available or timeout elapses (ErrReadTimeout).
	// The line break and any trailing carriage return are stripped.
	ReadLine(timeout time.Duration) (string, error)
	// ResetDevice strobes the reset control lines. It does not wait for the device to boot.
	ResetDevice() error
	Close() error
}

// Resetter performs the hardware reset strobe for a Conn.
type Resetter interface {
	Reset() error
}

// ResetFunc is func type of Resetter.
type ResetFunc func() error

// Reset implements Resetter.
func (f ResetFunc) Reset() error { return f() }
