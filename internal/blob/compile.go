// internal/blob/compile.go
package blob

import (
	"fmt"

	"github.com/CotynB/WizWatch/internal/asset"
)

// FormatError reports asset metadata that cannot produce a valid blob.
// It is raised before any transfer begins.
type FormatError struct {
	Asset    string
	Field    string
	Expected int
	Actual   int
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Field == "pixels" {
		return fmt.Sprintf(
			"format error: asset %q pixel data length mismatch: expected=%d (stride*height) actual=%d",
			e.Asset, e.Expected, e.Actual,
		)
	}
	return fmt.Sprintf("format error: asset %q %s=%d: %s", e.Asset, e.Field, e.Actual, e.Reason)
}

// Code is the process exit code for this failure kind.
func (e *FormatError) Code() int { return 2 }

// Compile converts an asset into a device-ready blob: header || pixels.
// No IO. No side effects. On error the returned blob is nil.
func Compile(a asset.Asset) ([]byte, error) {
	if err := checkGeometry(a); err != nil {
		return nil, err
	}

	expected := a.ExpectedPixelBytes()
	if len(a.Pixels) != expected {
		return nil, &FormatError{
			Asset:    a.Name,
			Field:    "pixels",
			Expected: expected,
			Actual:   len(a.Pixels),
		}
	}

	hdr := EncodeHeader(Header{
		Magic:       Magic,
		ColorFormat: ColorFormatARGB8888,
		Flags:       Flags,
		Width:       uint16(a.Width),
		Height:      uint16(a.Height),
		Stride:      uint16(a.Stride),
	})

	out := make([]byte, 0, HeaderSize+expected)
	out = append(out, hdr[:]...)
	out = append(out, a.Pixels...)
	return out, nil
}

// Size is the blob length an asset compiles to.
func Size(a asset.Asset) int {
	return HeaderSize + a.ExpectedPixelBytes()
}

func checkGeometry(a asset.Asset) error {
	fields := []struct {
		name string
		v    int
	}{
		{"width", a.Width},
		{"height", a.Height},
		{"stride", a.Stride},
	}

	for _, f := range fields {
		if f.v <= 0 {
			return &FormatError{Asset: a.Name, Field: f.name, Actual: f.v, Reason: "must be positive"}
		}
		if f.v > MaxDimension {
			return &FormatError{Asset: a.Name, Field: f.name, Actual: f.v, Reason: "does not fit a 16-bit header field"}
		}
	}

	if minStride := a.Width * BytesPerPixel; a.Stride < minStride {
		return &FormatError{
			Asset:    a.Name,
			Field:    "stride",
			Expected: minStride,
			Actual:   a.Stride,
			Reason:   fmt.Sprintf("shorter than width*%d=%d", BytesPerPixel, minStride),
		}
	}

	return nil
}
