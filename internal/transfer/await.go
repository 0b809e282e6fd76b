// internal/transfer/await.go
package transfer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/CotynB/WizWatch/internal/link"
)

// verdict is how a phase treats one received line.
type verdict int

const (
	skip   verdict = iota // not for this phase; keep waiting
	accept                // the reply the phase waits for
	reject                // an explicit failure from the device
)

type classifier func(line string) verdict

// expectExact accepts one exact line and rejects ERROR lines.
func expectExact(want string) classifier {
	return func(line string) verdict {
		switch {
		case line == want:
			return accept
		case isErrorLine(line):
			return reject
		default:
			return skip
		}
	}
}

// expectPrefix accepts lines starting with prefix and rejects ERROR lines.
func expectPrefix(prefix string) classifier {
	return func(line string) verdict {
		switch {
		case strings.HasPrefix(line, prefix):
			return accept
		case isErrorLine(line):
			return reject
		default:
			return skip
		}
	}
}

// anyLine accepts the first non-empty line.
func anyLine(string) verdict { return accept }

// site locates a wait for error reporting.
type site struct {
	phase Phase
	file  string
	chunk int
}

// awaitLine reads lines until classify accepts or rejects one, or timeout elapses.
// The bound covers the whole wait; skipped lines do not extend it.
//
// Returns the accepted line, *DeviceRejectedError, *TimeoutError, or a wrapped channel error.
func awaitLine(ch link.Channel, at site, timeout time.Duration, classify classifier, log zerolog.Logger) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", &TimeoutError{Phase: at.phase, File: at.file, Chunk: at.chunk, Timeout: timeout}
		}

		line, err := ch.ReadLine(remaining)
		switch {
		case errors.Is(err, link.ErrReadTimeout):
			continue
		case errors.Is(err, link.ErrLineTooLong):
			log.Warn().Str("phase", string(at.phase)).Msg("dropped oversized line from device")
			continue
		case err != nil:
			return "", fmt.Errorf("transfer: %s: read: %w", at.phase, err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		log.Trace().Str("dir", "<").Msg(line)

		switch classify(line) {
		case accept:
			return line, nil
		case reject:
			return line, &DeviceRejectedError{Phase: at.phase, File: at.file, Chunk: at.chunk, Line: line}
		default:
			log.Debug().Str("phase", string(at.phase)).Str("line", line).Msg("skipped device line")
		}
	}
}
