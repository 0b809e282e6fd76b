// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultBaudRate     = 115200
	DefaultReadPollMs   = 50
	DefaultAssetsDir    = "ui/WizWatch/src/ui/images"
	DefaultSourcePrefix = "ui_image_"

	DefaultResetAttempts = 3
	DefaultResetPulseMs  = 100
	DefaultResetSettleMs = 3000

	DefaultSessionReadyMs = 10000
	DefaultFileReadyMs    = 10000
	DefaultChunkAckMs     = 20000
	DefaultCompleteMs     = 15000
	DefaultTeardownMs     = 2000

	DefaultLogLevel = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	u := &cfg.Uploader

	setDefault(&u.BaudRate, DefaultBaudRate)
	setDefault(&u.ReadPollMs, DefaultReadPollMs)

	if u.AssetsDir == "" {
		u.AssetsDir = DefaultAssetsDir
	}
	if u.SourcePrefix == "" {
		u.SourcePrefix = DefaultSourcePrefix
	}

	setDefault(&u.Reset.Attempts, DefaultResetAttempts)
	setDefault(&u.Reset.PulseMs, DefaultResetPulseMs)
	setDefault(&u.Reset.SettleMs, DefaultResetSettleMs)

	setDefault(&u.Timeouts.SessionReadyMs, DefaultSessionReadyMs)
	setDefault(&u.Timeouts.FileReadyMs, DefaultFileReadyMs)
	setDefault(&u.Timeouts.ChunkAckMs, DefaultChunkAckMs)
	setDefault(&u.Timeouts.CompleteMs, DefaultCompleteMs)
	setDefault(&u.Timeouts.TeardownMs, DefaultTeardownMs)

	if u.Log.Level == "" {
		u.Log.Level = DefaultLogLevel
	}
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
