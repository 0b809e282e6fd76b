// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func env(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestLoad_YAML(t *testing.T) {
	p := write(t, "uploader.yaml", `
uploader:
  port: /dev/ttyUSB1
  baud_rate: 921600
  assets_dir: build/images
  reset:
    attempts: 5
    settle_ms: 1500
  timeouts:
    chunk_ack_ms: 5000
  log:
    level: debug
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	u := cfg.Uploader
	require.Equal(t, "/dev/ttyUSB1", u.Port)
	require.Equal(t, 921600, u.BaudRate)
	require.Equal(t, "build/images", u.AssetsDir)
	require.Equal(t, 5, u.Reset.Attempts)
	require.Equal(t, 1500, u.Reset.SettleMs)
	require.Equal(t, DefaultResetPulseMs, u.Reset.PulseMs)
	require.Equal(t, 5000, u.Timeouts.ChunkAckMs)
	require.Equal(t, DefaultFileReadyMs, u.Timeouts.FileReadyMs)
	require.Equal(t, "debug", u.Log.Level)
}

func TestLoad_TOML(t *testing.T) {
	p := write(t, "uploader.toml", `
[uploader]
port = "COM3"
source_prefix = "img_"

[uploader.timeouts]
complete_ms = 30000
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	require.Equal(t, "COM3", cfg.Uploader.Port)
	require.Equal(t, "img_", cfg.Uploader.SourcePrefix)
	require.Equal(t, 30000, cfg.Uploader.Timeouts.CompleteMs)
	require.Equal(t, DefaultBaudRate, cfg.Uploader.BaudRate)
}

func TestLoad_EmptyPathIsAllDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	u := cfg.Uploader
	require.Equal(t, DefaultBaudRate, u.BaudRate)
	require.Equal(t, DefaultAssetsDir, u.AssetsDir)
	require.Equal(t, DefaultSourcePrefix, u.SourcePrefix)
	require.Equal(t, DefaultResetAttempts, u.Reset.Attempts)
	require.Equal(t, DefaultSessionReadyMs, u.Timeouts.SessionReadyMs)
	require.Equal(t, DefaultChunkAckMs, u.Timeouts.ChunkAckMs)
	require.Equal(t, DefaultCompleteMs, u.Timeouts.CompleteMs)
	require.Equal(t, DefaultLogLevel, u.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(write(t, "bad.yaml", "uploader: [1, 2"))
	require.Error(t, err)

	_, err = Load(write(t, "bad.toml", "[uploader\nport = 1"))
	require.Error(t, err)
}

func TestApplyEnv_Overrides(t *testing.T) {
	cfg := &Config{Uploader: UploaderConfig{Port: "/dev/ttyUSB0", BaudRate: 9600}}

	err := ApplyEnv(cfg, env(map[string]string{
		EnvPort:      "/dev/ttyACM0",
		EnvBaud:      "115200",
		EnvAssetsDir: "out/img",
		EnvLogLevel:  "trace",
	}))
	require.NoError(t, err)

	require.Equal(t, "/dev/ttyACM0", cfg.Uploader.Port)
	require.Equal(t, 115200, cfg.Uploader.BaudRate)
	require.Equal(t, "out/img", cfg.Uploader.AssetsDir)
	require.Equal(t, "trace", cfg.Uploader.Log.Level)
}

func TestApplyEnv_BadBaud(t *testing.T) {
	err := ApplyEnv(&Config{}, env(map[string]string{EnvBaud: "fast"}))
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	p := write(t, ".env", "UPLOADER_TEST_DOTENV=from-file\n")
	t.Setenv("UPLOADER_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("UPLOADER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"), p))
	require.Equal(t, "from-file", os.Getenv("UPLOADER_TEST_DOTENV"))
}
