// internal/blob/compile_test.go
package blob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CotynB/WizWatch/internal/asset"
)

func fondAsset() asset.Asset {
	px := make([]byte, 400*50)
	for i := range px {
		px[i] = byte(i)
	}
	return asset.Asset{Name: "fond", Width: 100, Height: 50, Stride: 400, Pixels: px}
}

func TestCompile_Fond(t *testing.T) {
	a := fondAsset()

	b, err := Compile(a)
	require.NoError(t, err)
	require.Len(t, b, 20012)
	require.Equal(t, Size(a), len(b))

	h, err := DecodeHeader(b)
	require.NoError(t, err)
	require.NoError(t, h.Validate())
	require.Equal(t, uint16(100), h.Width)
	require.Equal(t, uint16(50), h.Height)
	require.Equal(t, uint16(400), h.Stride)
	require.Equal(t, Magic, h.Magic)
	require.Equal(t, ColorFormatARGB8888, h.ColorFormat)
	require.Equal(t, a.Pixels, b[HeaderSize:])
}

func TestCompile_HeaderBytesExact(t *testing.T) {
	b, err := Compile(fondAsset())
	require.NoError(t, err)

	// 0x00001019, 0x00320064, 0x00000190 little-endian
	want := []byte{
		0x19, 0x10, 0x00, 0x00,
		0x64, 0x00, 0x32, 0x00,
		0x90, 0x01, 0x00, 0x00,
	}
	require.Equal(t, want, b[:HeaderSize])
}

func TestCompile_RoundTripGeometries(t *testing.T) {
	cases := []struct{ w, h, s int }{
		{1, 1, 4},
		{3, 7, 12},
		{3, 7, 16}, // padded rows
		{240, 240, 960},
		{16383, 1, 65532},
	}

	for _, c := range cases {
		a := asset.Asset{Name: "x", Width: c.w, Height: c.h, Stride: c.s, Pixels: make([]byte, c.s*c.h)}

		b, err := Compile(a)
		require.NoError(t, err)
		require.Len(t, b, HeaderSize+c.s*c.h)

		h, err := DecodeHeader(b)
		require.NoError(t, err)
		require.Equal(t, c.w, int(h.Width))
		require.Equal(t, c.h, int(h.Height))
		require.Equal(t, c.s, int(h.Stride))
		require.Equal(t, c.s*c.h, h.PixelBytes())
	}
}

func TestCompile_PixelLengthMismatch(t *testing.T) {
	for _, n := range []int{0, 19999, 20001, 40000} {
		a := fondAsset()
		a.Pixels = make([]byte, n)

		b, err := Compile(a)
		require.Nil(t, b)

		var fe *FormatError
		require.True(t, errors.As(err, &fe), "got %v", err)
		require.Equal(t, 20000, fe.Expected)
		require.Equal(t, n, fe.Actual)
		require.Equal(t, "fond", fe.Asset)
		require.Contains(t, err.Error(), "expected=20000")
	}
}

func TestCompile_BadGeometry(t *testing.T) {
	cases := []asset.Asset{
		{Name: "zero-w", Width: 0, Height: 1, Stride: 4},
		{Name: "neg-h", Width: 1, Height: -1, Stride: 4},
		{Name: "short-stride", Width: 10, Height: 1, Stride: 39, Pixels: make([]byte, 39)},
		{Name: "wide", Width: 70000, Height: 1, Stride: 280000},
	}

	for _, a := range cases {
		b, err := Compile(a)
		require.Nil(t, b, a.Name)

		var fe *FormatError
		require.True(t, errors.As(err, &fe), "%s: got %v", a.Name, err)
		require.Equal(t, 2, fe.Code())
	}
}

func TestDecodeHeader_Short(t *testing.T) {
	_, err := DecodeHeader([]byte{0x19, 0x10})
	require.True(t, errors.Is(err, ErrShortHeader))
}

func TestHeader_ValidateRejectsForeign(t *testing.T) {
	raw := EncodeHeader(Header{Magic: 0x42, ColorFormat: ColorFormatARGB8888})
	h, err := DecodeHeader(raw[:])
	require.NoError(t, err)
	require.Error(t, h.Validate())
}
