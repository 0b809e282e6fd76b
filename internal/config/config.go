// internal/config/config.go
package config

type Config struct {
	Uploader UploaderConfig `yaml:"uploader" toml:"uploader"`
}

// ---- UPLOADER ----

type UploaderConfig struct {
	Port       string `yaml:"port" toml:"port"`
	BaudRate   int    `yaml:"baud_rate" toml:"baud_rate"`
	ReadPollMs int    `yaml:"read_poll_ms" toml:"read_poll_ms"`

	AssetsDir    string `yaml:"assets_dir" toml:"assets_dir"`
	SourcePrefix string `yaml:"source_prefix" toml:"source_prefix"`

	Reset    ResetConfig   `yaml:"reset" toml:"reset"`
	Timeouts TimeoutConfig `yaml:"timeouts" toml:"timeouts"`
	Log      LogConfig     `yaml:"log" toml:"log"`
}

// ---- RESET ----

type ResetConfig struct {
	Attempts int `yaml:"attempts" toml:"attempts"`
	PulseMs  int `yaml:"pulse_ms" toml:"pulse_ms"`   // DTR/RTS low time
	SettleMs int `yaml:"settle_ms" toml:"settle_ms"` // boot wait after each strobe
}

// ---- TIMEOUTS ----

// Zero means "use the default" for every field.
type TimeoutConfig struct {
	SessionReadyMs int `yaml:"session_ready_ms" toml:"session_ready_ms"`
	FileReadyMs    int `yaml:"file_ready_ms" toml:"file_ready_ms"`
	ChunkAckMs     int `yaml:"chunk_ack_ms" toml:"chunk_ack_ms"`
	CompleteMs     int `yaml:"complete_ms" toml:"complete_ms"`
	TeardownMs     int `yaml:"teardown_ms" toml:"teardown_ms"`
}

// ---- LOG ----

type LogConfig struct {
	Level   string `yaml:"level" toml:"level"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}
