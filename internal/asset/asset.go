// internal/asset/asset.go
package asset

import "strings"

// OutputExt is appended to an asset name to form the on-device file name.
const OutputExt = ".bin"

// Asset is one generated bitmap, as declared by its source file.
// Geometry only: no color interpretation.
type Asset struct {
	Name   string // e.g. "fond"
	Width  int
	Height int
	Stride int // bytes per row, may include padding

	Pixels []byte
}

// OutputName is the file name the asset is stored under on the device.
func (a Asset) OutputName() string {
	return a.Name + OutputExt
}

// ExpectedPixelBytes is the pixel byte count the declared geometry implies.
func (a Asset) ExpectedPixelBytes() int {
	return a.Stride * a.Height
}

// NameFromSource derives the asset name from a generated source file name.
// ui_image_fond.c -> fond
func NameFromSource(filename, prefix string) (string, bool) {
	if !strings.HasPrefix(filename, prefix) || !strings.HasSuffix(filename, ".c") {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(filename, prefix), ".c")
	if name == "" {
		return "", false
	}
	return name, true
}
