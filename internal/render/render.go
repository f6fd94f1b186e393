// Package render turns configured targets into PNG files on disk.
package render

import (
	"fmt"
	"path/filepath"

	"github.com/neurodata/pwaicons/internal/config"
	"github.com/neurodata/pwaicons/internal/icon"
	"github.com/neurodata/pwaicons/internal/paths"
	"github.com/neurodata/pwaicons/internal/pngenc"
)

// Result describes one written icon.
type Result struct {
	Path   string
	Width  int
	Height int
	Size   int // bytes written
}

// Render generates and encodes a single target. The stream is verified
// before it is returned.
func Render(t config.Target, pal icon.Palette) ([]byte, error) {
	buf, err := icon.Generate(t.Width, t.Height, pal)
	if err != nil {
		return nil, err
	}
	data, err := pngenc.Bytes(buf.Width, buf.Height, buf.Bytes())
	if err != nil {
		return nil, err
	}
	if err := pngenc.Verify(data, buf.Width, buf.Height); err != nil {
		return nil, err
	}
	return data, nil
}

// Write renders t and stores it atomically as dir/t.Name. Nothing is
// written if rendering fails.
func Write(dir string, t config.Target, pal icon.Palette) (Result, error) {
	data, err := Render(t, pal)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", t.Name, err)
	}
	p := filepath.Join(dir, t.Name)
	if err := paths.AtomicWrite(p, data); err != nil {
		return Result{}, fmt.Errorf("%s: %w: %w", t.Name, pngenc.ErrIO, err)
	}
	return Result{Path: p, Width: t.Width, Height: t.Height, Size: len(data)}, nil
}

// WriteAll validates cfg and writes every target in order, stopping at
// the first failure. Icons written before the failure stay on disk and
// are complete.
func WriteAll(dir string, cfg config.Config) ([]Result, error) {
	pal, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		r, err := Write(dir, t, pal)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}
