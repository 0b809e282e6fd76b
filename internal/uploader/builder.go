// internal/uploader/builder.go
package uploader

import (
	"time"

	"github.com/rs/zerolog"

	cfg "github.com/CotynB/WizWatch/internal/config"
	"github.com/CotynB/WizWatch/internal/link"
	"github.com/CotynB/WizWatch/internal/transfer"
)

// Build wires config to a serial-backed Uploader.
// The port is opened lazily, once per Run, by the connector.
func Build(u cfg.UploaderConfig, log zerolog.Logger) (*Uploader, error) {
	serialCfg := SerialConfig(u)
	sessionCfg := SessionConfig(u, log)

	// connector: ONE session per call
	connect := func() (Session, error) {
		ch, err := link.OpenSerial(serialCfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("port", serialCfg.Address).Int("baud", serialCfg.BaudRate).Msg("port open, resetting device")

		s, err := transfer.Open(ch, sessionCfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return New(connect, log)
}

// SerialConfig maps normalized config onto the serial link.
func SerialConfig(u cfg.UploaderConfig) link.SerialConfig {
	return link.SerialConfig{
		Address:      u.Port,
		BaudRate:     u.BaudRate,
		PollInterval: ms(u.ReadPollMs),
		ResetPulse:   ms(u.Reset.PulseMs),
	}
}

// SessionConfig maps normalized config onto the transfer session.
func SessionConfig(u cfg.UploaderConfig, log zerolog.Logger) transfer.Config {
	c := transfer.DefaultConfig()
	c.Timeouts = transfer.Timeouts{
		SessionReady: ms(u.Timeouts.SessionReadyMs),
		FileReady:    ms(u.Timeouts.FileReadyMs),
		ChunkAck:     ms(u.Timeouts.ChunkAckMs),
		Complete:     ms(u.Timeouts.CompleteMs),
		Teardown:     ms(u.Timeouts.TeardownMs),
	}
	c.ResetAttempts = u.Reset.Attempts
	c.Settle = ms(u.Reset.SettleMs)
	c.Log = log
	c.Progress = progressLogger(log)
	return c
}

// progressLogger reports each file at 10% steps; per-chunk detail stays at debug.
func progressLogger(log zerolog.Logger) transfer.ProgressFunc {
	last := map[string]int{}
	return func(p transfer.Progress) {
		step := p.Percent() / 10
		if prev, ok := last[p.File]; ok && prev == step {
			return
		}
		last[p.File] = step
		log.Info().
			Str("file", p.File).
			Int("sent", p.Sent).
			Int("total", p.Total).
			Int("pct", p.Percent()).
			Msg("progress")
	}
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
