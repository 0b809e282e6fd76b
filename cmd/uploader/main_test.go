// cmd/uploader/main_test.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CotynB/WizWatch/internal/blob"
	"github.com/CotynB/WizWatch/internal/transfer"
)

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 1, exitCode(errors.New("plain")))
	require.Equal(t, 2, exitCode(fmt.Errorf("compile x: %w", &blob.FormatError{Asset: "x"})))
	require.Equal(t, 3, exitCode(&transfer.DeviceUnreachableError{Attempts: 3}))
	require.Equal(t, 4, exitCode(fmt.Errorf("upload: %w", &transfer.DeviceRejectedError{})))
	require.Equal(t, 5, exitCode(fmt.Errorf("upload: %w", &transfer.IntegrityError{})))
	require.Equal(t, 6, exitCode(fmt.Errorf("upload: %w", &transfer.TimeoutError{})))
}

func imageSource(w, h, stride, n int) string {
	var b strings.Builder
	b.WriteString("uint8_t img_x_map[] = {\n")
	for i := 0; i < n; i++ {
		b.WriteString("0x7f, ")
	}
	fmt.Fprintf(&b, "\n};\nconst lv_image_dsc_t img_x = { .header.w = %d, .header.h = %d, .header.stride = %d };\n", w, h, stride)
	return b.String()
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui_image_fond.c"), []byte(imageSource(2, 2, 8, 16)), 0o644))

	var out bytes.Buffer
	code := run([]string{"-dry-run", "-env-file", "", "-assets", dir, "-log-level", "info"}, &out)

	require.Equal(t, 0, code, out.String())
	require.Contains(t, out.String(), "fond.bin")
	require.Contains(t, out.String(), "bytes=28")
}

func TestRun_DryRunFormatError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui_image_fond.c"), []byte(imageSource(2, 2, 8, 15)), 0o644))

	var out bytes.Buffer
	code := run([]string{"-dry-run", "-env-file", "", "-assets", dir}, &out)

	require.Equal(t, 2, code, out.String())
}

func TestRun_UsageErrors(t *testing.T) {
	var out bytes.Buffer
	require.Equal(t, 1, run([]string{"-env-file", "", "COM3", "COM4"}, &out))

	t.Setenv("UPLOADER_PORT", "")
	out.Reset()
	require.Equal(t, 1, run([]string{"-env-file", "", "-assets", t.TempDir()}, &out))
	require.Contains(t, out.String(), "usage")
}

func TestRun_UnknownLogLevel(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-dry-run", "-env-file", "", "-assets", t.TempDir(), "-log-level", "verbose"}, &out)
	require.Equal(t, 1, code)
	require.Contains(t, out.String(), "log.level")
}
