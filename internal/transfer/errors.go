// internal/transfer/errors.go
package transfer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotReady is returned by Upload before the handshake or after teardown.
	ErrNotReady = errors.New("transfer: session not ready")
	// ErrSessionBroken is returned by Upload after a previous file failed.
	ErrSessionBroken = errors.New("transfer: session aborted by an earlier failure")
)

// noChunk marks errors raised outside the chunk loop.
const noChunk = -1

// DeviceUnreachableError means reset + handshake exhausted every attempt.
type DeviceUnreachableError struct {
	Attempts int
	Err      error // last attempt's failure
}

func (e *DeviceUnreachableError) Error() string {
	return fmt.Sprintf("device unreachable: no %s after %d reset attempt(s): %v", LineUploadReady, e.Attempts, e.Err)
}

func (e *DeviceUnreachableError) Unwrap() error { return e.Err }

// Code is the process exit code for this failure kind.
func (e *DeviceUnreachableError) Code() int { return 3 }

// DeviceRejectedError means the device answered with an ERROR line.
type DeviceRejectedError struct {
	Phase Phase
	File  string
	Chunk int
	Line  string
}

func (e *DeviceRejectedError) Error() string {
	return fmt.Sprintf("device rejected: phase=%s%s reply=%q", e.Phase, where(e.File, e.Chunk), e.Line)
}

// Code is the process exit code for this failure kind.
func (e *DeviceRejectedError) Code() int { return 4 }

// IntegrityError means an acknowledgment did not match the chunk sent.
type IntegrityError struct {
	File  string
	Chunk int
	Sent  int // raw bytes in the chunk
	Acked int // bytes the device reports decoding; -1 if unreadable
	Line  string
}

func (e *IntegrityError) Error() string {
	if e.Acked < 0 {
		return fmt.Sprintf("integrity error:%s sent=%d unreadable ack %q", where(e.File, e.Chunk), e.Sent, e.Line)
	}
	return fmt.Sprintf("integrity error:%s sent=%d acked=%d", where(e.File, e.Chunk), e.Sent, e.Acked)
}

// Code is the process exit code for this failure kind.
func (e *IntegrityError) Code() int { return 5 }

// TimeoutError means no qualifying line arrived within a phase bound.
type TimeoutError struct {
	Phase   Phase
	File    string
	Chunk   int
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: phase=%s%s no reply within %s", e.Phase, where(e.File, e.Chunk), e.Timeout)
}

// Code is the process exit code for this failure kind.
func (e *TimeoutError) Code() int { return 6 }

func where(file string, chunk int) string {
	s := ""
	if file != "" {
		s += " file=" + file
	}
	if chunk >= 0 {
		s += fmt.Sprintf(" chunk=%d", chunk)
	}
	return s
}
