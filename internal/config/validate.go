// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/CotynB/WizWatch/internal/logging"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
// Zero numeric values are allowed: Normalize replaces them with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	u := cfg.Uploader

	if u.BaudRate < 0 {
		return fmt.Errorf("baud_rate must be > 0, got %d", u.BaudRate)
	}
	if u.ReadPollMs < 0 {
		return fmt.Errorf("read_poll_ms must be >= 0, got %d", u.ReadPollMs)
	}

	// ------------------------------------------------------------
	// RESET
	// ------------------------------------------------------------

	if u.Reset.Attempts < 0 {
		return fmt.Errorf("reset.attempts must be >= 0, got %d", u.Reset.Attempts)
	}
	if u.Reset.PulseMs < 0 || u.Reset.SettleMs < 0 {
		return fmt.Errorf("reset: pulse_ms and settle_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// TIMEOUTS (every wait must stay bounded)
	// ------------------------------------------------------------

	t := u.Timeouts
	for _, tv := range []struct {
		name  string
		value int
	}{
		{"session_ready_ms", t.SessionReadyMs},
		{"file_ready_ms", t.FileReadyMs},
		{"chunk_ack_ms", t.ChunkAckMs},
		{"complete_ms", t.CompleteMs},
		{"teardown_ms", t.TeardownMs},
	} {
		if tv.value < 0 {
			return fmt.Errorf("timeouts.%s must be >= 0, got %d", tv.name, tv.value)
		}
	}

	// ------------------------------------------------------------
	// ASSETS
	// ------------------------------------------------------------

	if strings.ContainsAny(u.SourcePrefix, `/\`) {
		return fmt.Errorf("source_prefix %q must be a file name prefix, not a path", u.SourcePrefix)
	}

	// ------------------------------------------------------------
	// LOG (empty means default)
	// ------------------------------------------------------------

	if strings.TrimSpace(u.Log.Level) != "" {
		if _, ok := logging.ParseLevel(u.Log.Level); !ok {
			return fmt.Errorf("log.level %q is not one of trace|debug|info|warn|error|off", u.Log.Level)
		}
	}

	return nil
}

// RequirePort checks a serial port was given by any source.
func RequirePort(cfg *Config) error {
	if strings.TrimSpace(cfg.Uploader.Port) == "" {
		return fmt.Errorf("serial port required (positional argument, %s, or uploader.port)", EnvPort)
	}
	return nil
}
