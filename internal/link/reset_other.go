// internal/link/reset_other.go

//go:build !linux && !darwin && !freebsd

package link

import "time"

// controlLineReset has no modem-control implementation here.
// Sessions skip the strobe and wait for a device already in upload mode.
func controlLineReset(address string, pulse time.Duration) Resetter {
	return ResetFunc(func() error { return ErrResetUnsupported })
}
