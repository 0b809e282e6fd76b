// internal/asset/source_test.go
package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fondSource = `
#include "../images.h"

#ifndef LV_ATTRIBUTE_IMG_FOND
#define LV_ATTRIBUTE_IMG_FOND
#endif

const LV_ATTRIBUTE_MEM_ALIGN uint8_t img_fond_map[] = {
    0x00, 0x11, 0xfF, 0x7a,
    0x01, 0x02, 0x03, 0x04,
};

const lv_image_dsc_t img_fond = {
    .header.magic = LV_IMAGE_HEADER_MAGIC,
    .header.cf = LV_COLOR_FORMAT_ARGB8888,
    .header.w = 2,
    .header.h = 1,
    .header.stride = 8,
    .data_size = sizeof(img_fond_map),
    .data = img_fond_map,
};
`

func TestParseSource_Geometry(t *testing.T) {
	a, err := ParseSource("fond", []byte(fondSource))
	require.NoError(t, err)

	require.Equal(t, "fond", a.Name)
	require.Equal(t, 2, a.Width)
	require.Equal(t, 1, a.Height)
	require.Equal(t, 8, a.Stride)
	require.Equal(t, []byte{0x00, 0x11, 0xff, 0x7a, 0x01, 0x02, 0x03, 0x04}, a.Pixels)
	require.Equal(t, "fond.bin", a.OutputName())
	require.Equal(t, 8, a.ExpectedPixelBytes())
}

func TestParseSource_IgnoresBytesOutsideMap(t *testing.T) {
	src := `#define LV_SOMETHING 0xAB
uint8_t img_x_map[] = { 0x01, 0x02 };
/* 0xCC */
.w = 1, .h = 1, .stride = 2`

	a, err := ParseSource("x", []byte(src))
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, a.Pixels)
}

func TestParseSource_MissingField(t *testing.T) {
	_, err := ParseSource("x", []byte(`uint8_t img_x_map[] = { 0x01 }; .w = 1, .h = 1`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stride")
}

func TestParseSource_MissingMap(t *testing.T) {
	_, err := ParseSource("x", []byte(`.w = 1, .h = 1, .stride = 4`))
	require.True(t, errors.Is(err, ErrNoPixelMap), "got %v", err)
}

func TestLoadAll_FromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui_image_fond.c"), []byte(fondSource), 0o644))

	srcs, err := Discover(dir, "")
	require.NoError(t, err)

	assets, err := LoadAll(srcs)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	require.Equal(t, "fond", assets[0].Name)
}
