// internal/asset/source.go
package asset

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

var (
	reWidth  = regexp.MustCompile(`\.w\s*=\s*(\d+)`)
	reHeight = regexp.MustCompile(`\.h\s*=\s*(\d+)`)
	reStride = regexp.MustCompile(`\.stride\s*=\s*(\d+)`)

	// Only bytes inside the pixel map initializer count.
	reMap  = regexp.MustCompile(`(?s)img_\w+_map\[\]\s*=\s*\{(.*?)\}`)
	reByte = regexp.MustCompile(`0x([0-9a-fA-F]{2})`)
)

// ErrNoPixelMap is returned when a source file has no img_*_map[] initializer.
var ErrNoPixelMap = errors.New("asset: no pixel map array in source")

// ParseSource extracts geometry and pixel bytes from a generated image source.
// The byte count is NOT checked against the geometry here; that is the compiler's job.
func ParseSource(name string, src []byte) (Asset, error) {
	a := Asset{Name: name}

	var err error
	if a.Width, err = intField(reWidth, src, "w"); err != nil {
		return Asset{}, fmt.Errorf("asset %q: %w", name, err)
	}
	if a.Height, err = intField(reHeight, src, "h"); err != nil {
		return Asset{}, fmt.Errorf("asset %q: %w", name, err)
	}
	if a.Stride, err = intField(reStride, src, "stride"); err != nil {
		return Asset{}, fmt.Errorf("asset %q: %w", name, err)
	}

	m := reMap.FindSubmatch(src)
	if m == nil {
		return Asset{}, fmt.Errorf("asset %q: %w", name, ErrNoPixelMap)
	}

	hexBytes := reByte.FindAllSubmatch(m[1], -1)
	a.Pixels = make([]byte, 0, len(hexBytes))
	for _, hb := range hexBytes {
		v, err := strconv.ParseUint(string(hb[1]), 16, 8)
		if err != nil {
			return Asset{}, fmt.Errorf("asset %q: bad pixel byte %q: %w", name, hb[0], err)
		}
		a.Pixels = append(a.Pixels, byte(v))
	}

	return a, nil
}

// LoadFile reads and parses one source file.
func LoadFile(src Source) (Asset, error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return Asset{}, fmt.Errorf("asset %q: read source: %w", src.Name, err)
	}
	return ParseSource(src.Name, data)
}

// LoadAll parses every discovered source. All-or-nothing.
func LoadAll(srcs []Source) ([]Asset, error) {
	out := make([]Asset, 0, len(srcs))
	for _, s := range srcs {
		a, err := LoadFile(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func intField(re *regexp.Regexp, src []byte, field string) (int, error) {
	m := re.FindSubmatch(src)
	if m == nil {
		return 0, fmt.Errorf("missing .%s field", field)
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, fmt.Errorf("bad .%s field %q: %w", field, m[1], err)
	}
	return v, nil
}
