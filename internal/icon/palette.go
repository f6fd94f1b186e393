package icon

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Brand colors: cyan fading into purple, with white line art.
const (
	DefaultStartColor = "#00d4ff"
	DefaultEndColor   = "#667eea"
	DefaultInkColor   = "#ffffff"
)

// Palette holds the gradient endpoints and the overlay ink.
// Overlay=false renders the bare gradient.
type Palette struct {
	Start   Pixel
	End     Pixel
	Ink     Pixel
	Overlay bool
}

// DefaultPalette returns the brand palette with the overlay enabled.
func DefaultPalette() Palette {
	return Palette{
		Start:   Pixel{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		End:     Pixel{R: 0x66, G: 0x7e, B: 0xea, A: 0xff},
		Ink:     Pixel{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Overlay: true,
	}
}

// ParsePalette builds a palette from "#rrggbb" (or "#rgb") strings.
// All three colors are fully opaque.
func ParsePalette(start, end, ink string) (Palette, error) {
	var p Palette
	var err error
	if p.Start, err = parseColor(start); err != nil {
		return Palette{}, err
	}
	if p.End, err = parseColor(end); err != nil {
		return Palette{}, err
	}
	if p.Ink, err = parseColor(ink); err != nil {
		return Palette{}, err
	}
	p.Overlay = true
	return p, nil
}

func parseColor(s string) (Pixel, error) {
	// colorful.Hex scans with Sscanf, which tolerates short and trailing
	// input; the shape is checked here first.
	if !isHexColor(s) {
		return Pixel{}, fmt.Errorf("palette: color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Pixel{}, fmt.Errorf("palette: color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return Pixel{R: r, G: g, B: b, A: 255}, nil
}

func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
