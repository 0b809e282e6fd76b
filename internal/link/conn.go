// internal/link/conn.go
package link

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// MaxLineLen bounds a single received line.
const MaxLineLen = 4096

// Conn frames an io.ReadWriteCloser into lines.
// The underlying Read is expected to return within a short poll interval,
// either with data or with a timeout error (serial.ErrTimeout, os.ErrDeadlineExceeded)
// or (0, nil). Conn turns those polls into a per-call ReadLine bound.
type Conn struct {
	rw    io.ReadWriteCloser
	reset Resetter

	mu      sync.Mutex
	pending []byte
	buf     []byte
	closed  bool

	now func() time.Time
}

// NewConn wraps rw. reset may be nil, in which case ResetDevice reports ErrResetUnsupported.
func NewConn(rw io.ReadWriteCloser, reset Resetter) *Conn {
	return &Conn{
		rw:    rw,
		reset: reset,
		buf:   make([]byte, 256),
		now:   time.Now,
	}
}

// WriteLine implements Channel.
func (c *Conn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	b := make([]byte, 0, len(line)+1)
	b = append(b, line...)
	b = append(b, '\n')
	return writeAll(c.rw, b)
}

// ReadLine implements Channel.
func (c *Conn) ReadLine(timeout time.Duration) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrClosed
	}

	deadline := c.now().Add(timeout)

	for {
		if line, ok := c.takeLine(); ok {
			return line, nil
		}
		if len(c.pending) > MaxLineLen {
			c.pending = c.pending[:0]
			return "", ErrLineTooLong
		}
		if !c.now().Before(deadline) {
			return "", ErrReadTimeout
		}

		n, err := c.rw.Read(c.buf)
		if n > 0 {
			c.pending = append(c.pending, c.buf[:n]...)
		}
		if err != nil && !isPollTimeout(err) {
			return "", err
		}
	}
}

// ResetDevice implements Channel.
func (c *Conn) ResetDevice() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.reset == nil {
		return ErrResetUnsupported
	}

	// Bytes from before the reboot belong to the previous firmware run.
	c.pending = c.pending[:0]
	return c.reset.Reset()
}

// Close implements Channel. It is safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.rw.Close()
}

func (c *Conn) takeLine() (string, bool) {
	i := bytes.IndexByte(c.pending, '\n')
	if i < 0 {
		return "", false
	}
	line := bytes.TrimRight(c.pending[:i], "\r")
	out := string(line)

	// shift remaining bytes down instead of re-slicing so the buffer does not grow forever
	n := copy(c.pending, c.pending[i+1:])
	c.pending = c.pending[:n]
	return out, true
}

func isPollTimeout(err error) bool {
	return errors.Is(err, serial.ErrTimeout) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		os.IsTimeout(err)
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}
