// internal/transfer/session.go
package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/CotynB/WizWatch/internal/link"
)

// Timeouts bound every blocking wait of the protocol.
type Timeouts struct {
	SessionReady time.Duration // per reset attempt
	FileReady    time.Duration
	ChunkAck     time.Duration
	Complete     time.Duration
	Teardown     time.Duration
}

// DefaultTimeouts match the device firmware's pacing.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		SessionReady: 10 * time.Second,
		FileReady:    10 * time.Second,
		ChunkAck:     20 * time.Second,
		Complete:     15 * time.Second,
		Teardown:     2 * time.Second,
	}
}

// Config is the runtime config of one session.
type Config struct {
	Timeouts Timeouts

	// ResetAttempts bounds reset + handshake tries.
	ResetAttempts int
	// Settle is the wait after each reset strobe while the device boots.
	Settle time.Duration

	Log      zerolog.Logger
	Progress ProgressFunc

	// Sleep is used for the settle delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultConfig returns 3 reset attempts, a 3s settle and DefaultTimeouts.
func DefaultConfig() Config {
	return Config{
		Timeouts:      DefaultTimeouts(),
		ResetAttempts: 3,
		Settle:        3 * time.Second,
		Log:           zerolog.Nop(),
	}
}

// Session owns a channel from device reset through teardown.
// Files are uploaded one at a time; the protocol never pipelines.
type Session struct {
	ch  link.Channel
	cfg Config
	log zerolog.Logger

	state    SessionState
	attempts int
	broken   bool
}

// Open resets the device and waits for the session handshake.
// The session takes ownership of ch; on failure ch is closed.
func Open(ch link.Channel, cfg Config) (*Session, error) {
	if ch == nil {
		return nil, errors.New("transfer: channel required")
	}
	if cfg.ResetAttempts <= 0 {
		cfg.ResetAttempts = 1
	}
	if cfg.Sleep == nil {
		cfg.Sleep = time.Sleep
	}

	s := &Session{
		ch:    ch,
		cfg:   cfg,
		log:   cfg.Log,
		state: StateDisconnected,
	}

	attempts, err := s.establish(cfg.ResetAttempts)
	s.attempts = attempts
	if err != nil {
		s.state = StateDisconnected
		_ = ch.Close()
		return nil, err
	}

	s.state = StateSessionReady
	s.log.Info().Int("attempts", attempts).Msg("device ready for upload")
	return s, nil
}

// establish runs up to maxAttempts reset + handshake cycles.
// It returns the number of attempts used.
// A channel without reset lines skips the strobe and settle but keeps the bounded handshake.
func (s *Session) establish(maxAttempts int) (int, error) {
	var last error
	strobe := true

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			s.log.Warn().Int("attempt", attempt).Msg("retrying device reset")
		}

		s.state = StateResetting
		if strobe {
			err := s.ch.ResetDevice()
			switch {
			case errors.Is(err, link.ErrResetUnsupported):
				s.log.Warn().Msg("no reset lines on this port; put the device in upload mode by hand")
				strobe = false
			case err != nil:
				return attempt, &DeviceUnreachableError{Attempts: attempt, Err: err}
			default:
				s.cfg.Sleep(s.cfg.Settle)
			}
		}

		s.state = StateAwaitingSessionReady
		_, err := awaitLine(
			s.ch,
			site{phase: PhaseSessionReady, chunk: noChunk},
			s.cfg.Timeouts.SessionReady,
			expectExact(LineUploadReady),
			s.log,
		)
		if err == nil {
			return attempt, nil
		}

		var te *TimeoutError
		var re *DeviceRejectedError
		if !errors.As(err, &te) && !errors.As(err, &re) {
			return attempt, &DeviceUnreachableError{Attempts: attempt, Err: err}
		}
		last = err
	}

	return maxAttempts, &DeviceUnreachableError{Attempts: maxAttempts, Err: last}
}

// State returns the current session state.
func (s *Session) State() SessionState { return s.state }

// Attempts is the number of reset attempts Open needed.
func (s *Session) Attempts() int { return s.attempts }

// Close sends the end-of-session line, waits briefly for any reply and closes the channel.
// Teardown is best-effort: a missing reply is not an error.
func (s *Session) Close() error {
	if s.state == StateDisconnected {
		return nil
	}
	s.state = StateTeardown

	if err := s.send(CmdDone); err != nil {
		s.log.Warn().Err(err).Msg("teardown write failed")
	} else {
		line, err := awaitLine(s.ch, site{phase: PhaseTeardown, chunk: noChunk}, s.cfg.Timeouts.Teardown, anyLine, s.log)
		if err == nil {
			s.log.Debug().Str("reply", line).Msg("session closed by device")
		} else {
			s.log.Debug().Err(err).Msg("no teardown reply")
		}
	}

	s.state = StateDisconnected
	if err := s.ch.Close(); err != nil {
		return fmt.Errorf("transfer: close channel: %w", err)
	}
	return nil
}

func (s *Session) send(line string) error {
	s.log.Trace().Str("dir", ">").Msg(line)
	return s.ch.WriteLine(line)
}
