// internal/asset/discover_test.go
package asset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
}

func TestDiscover_SortedByOutputName(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ui_image_zeta.c")
	touch(t, dir, "ui_image_fond.c")
	touch(t, dir, "ui_image_alarm.c")
	touch(t, dir, "ui_image_fond.h") // header, ignored
	touch(t, dir, "screens.c")       // not an image
	touch(t, dir, "ui_image_.c")     // empty name
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ui_image_dir.c"), 0o755))

	srcs, err := Discover(dir, DefaultPrefix)
	require.NoError(t, err)

	var names []string
	for _, s := range srcs {
		names = append(names, s.OutputName())
	}
	require.Equal(t, []string{"alarm.bin", "fond.bin", "zeta.bin"}, names)
	require.Equal(t, filepath.Join(dir, "ui_image_fond.c"), srcs[1].Path)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), DefaultPrefix)
	require.Error(t, err)
}

func TestNameFromSource(t *testing.T) {
	name, ok := NameFromSource("ui_image_fond.c", DefaultPrefix)
	require.True(t, ok)
	require.Equal(t, "fond", name)

	_, ok = NameFromSource("image_fond.c", DefaultPrefix)
	require.False(t, ok)
}
