// internal/link/reset_unix.go

//go:build linux || darwin || freebsd

package link

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// controlLineReset strobes DTR and RTS on the tty at address.
// The strobe uses its own descriptor; modem lines belong to the device, not the fd.
func controlLineReset(address string, pulse time.Duration) Resetter {
	return ResetFunc(func() error {
		fd, err := unix.Open(address, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
		if err != nil {
			return fmt.Errorf("link: reset open %s: %w", address, err)
		}
		defer unix.Close(fd)

		if err := setModemLines(fd, false, false); err != nil {
			return err
		}
		time.Sleep(pulse)
		return setModemLines(fd, true, true)
	})
}

func setModemLines(fd int, dtr, rts bool) error {
	status, err := unix.IoctlGetInt(fd, unix.TIOCMGET)
	if err != nil {
		return fmt.Errorf("link: TIOCMGET: %w", err)
	}

	status = withBit(status, unix.TIOCM_DTR, dtr)
	status = withBit(status, unix.TIOCM_RTS, rts)

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCMSET, status); err != nil {
		return fmt.Errorf("link: TIOCMSET: %w", err)
	}
	return nil
}

func withBit(v, bit int, on bool) int {
	if on {
		return v | bit
	}
	return v &^ bit
}
