// internal/asset/discover.go
package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPrefix is the file name prefix of generated image sources.
const DefaultPrefix = "ui_image_"

// Source is one generated image source file found on disk.
type Source struct {
	Path string
	Name string
}

// OutputName mirrors Asset.OutputName for a not-yet-parsed source.
func (s Source) OutputName() string {
	return s.Name + OutputExt
}

// Discover lists generated image sources in dir, sorted by output name.
// Subdirectories are not descended into.
func Discover(dir, prefix string) ([]Source, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("asset: read dir %s: %w", dir, err)
	}

	var out []Source
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := NameFromSource(e.Name(), prefix)
		if !ok {
			continue
		}
		out = append(out, Source{
			Path: filepath.Join(dir, e.Name()),
			Name: name,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].OutputName() < out[j].OutputName()
	})

	return out, nil
}
