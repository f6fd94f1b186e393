package config

import (
	"errors"
	"fmt"

	"github.com/neurodata/pwaicons/internal/icon"
	"github.com/neurodata/pwaicons/internal/paths"
)

// Square icon sizes written on every run.
const (
	SmallIconSize = 192
	LargeIconSize = 512
)

// Target is a single image to render.
type Target struct {
	Width  int
	Height int
	Name   string // file name relative to the output directory
}

// Config holds the icon set and its colors.
type Config struct {
	Targets    []Target
	StartColor string
	EndColor   string
	InkColor   string
	Overlay    bool
}

// Default returns the built-in configuration: icon-192.png and
// icon-512.png in the brand palette with the overlay drawn.
func Default() Config {
	cfg := Config{
		StartColor: icon.DefaultStartColor,
		EndColor:   icon.DefaultEndColor,
		InkColor:   icon.DefaultInkColor,
		Overlay:    true,
	}
	for _, s := range [...]int{SmallIconSize, LargeIconSize} {
		cfg.Targets = append(cfg.Targets, Target{Width: s, Height: s, Name: paths.IconFileName(s)})
	}
	return cfg
}

// Palette parses the configured colors.
func (c Config) Palette() (icon.Palette, error) {
	pal, err := icon.ParsePalette(c.StartColor, c.EndColor, c.InkColor)
	if err != nil {
		return icon.Palette{}, err
	}
	pal.Overlay = c.Overlay
	return pal, nil
}

// Validate checks that every target is renderable, that file names are
// unique, and that the colors parse. It returns the parsed palette.
// Dimension problems wrap icon.ErrInvalidDimensions.
func (c Config) Validate() (icon.Palette, error) {
	if len(c.Targets) == 0 {
		return icon.Palette{}, errors.New("config: no targets")
	}
	seen := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Width <= 0 || t.Height <= 0 || t.Width > icon.MaxDimension || t.Height > icon.MaxDimension {
			return icon.Palette{}, fmt.Errorf("config: target %d (%q): %w: got %dx%d", i, t.Name, icon.ErrInvalidDimensions, t.Width, t.Height)
		}
		if t.Name == "" {
			return icon.Palette{}, fmt.Errorf("config: target %d has no file name", i)
		}
		if seen[t.Name] {
			return icon.Palette{}, fmt.Errorf("config: duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
	}
	pal, err := c.Palette()
	if err != nil {
		return icon.Palette{}, fmt.Errorf("config: %w", err)
	}
	return pal, nil
}
