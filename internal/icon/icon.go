// Package icon computes the pixels of the app icon: a diagonal gradient
// with a white brain-like outline drawn on top.
package icon

import (
	"errors"
	"fmt"
	"image"
)

// MaxDimension caps width and height so that width*height*4 stays well
// inside int range on every platform.
const MaxDimension = 8192

// ErrInvalidDimensions is returned when width or height is not positive
// or exceeds MaxDimension.
var ErrInvalidDimensions = errors.New("invalid dimensions: width and height must be positive")

// Pixel is one 8-bit RGBA sample.
type Pixel struct {
	R, G, B, A uint8
}

// Buffer is a row-major pixel grid. Pixels[y*Width+x] is the pixel at (x, y).
type Buffer struct {
	Width  int
	Height int
	Pixels []Pixel
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) Pixel {
	return b.Pixels[y*b.Width+x]
}

// Bytes flattens the buffer into R,G,B,A bytes, row by row.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, len(b.Pixels)*4)
	for _, p := range b.Pixels {
		out = append(out, p.R, p.G, p.B, p.A)
	}
	return out
}

// Image returns a copy of the buffer as an *image.NRGBA. Alpha is not
// premultiplied, so Image().Pix matches Bytes().
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Bytes(),
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Generate renders a width×height icon. The result depends only on its
// arguments: the same call always yields the same pixels.
func Generate(width, height int, pal Palette) (*Buffer, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	b := &Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]Pixel, width*height),
	}

	// t = (x+y)/(width+height), kept as an integer fraction.
	span := width + height
	for y := 0; y < height; y++ {
		row := b.Pixels[y*width : (y+1)*width]
		for x := range row {
			row[x] = blend(pal.Start, pal.End, x+y, span)
		}
	}

	if pal.Overlay {
		drawOverlay(b, pal.Ink)
	}
	return b, nil
}

// blend interpolates a toward c by num/den. Alpha is always opaque.
func blend(a, c Pixel, num, den int) Pixel {
	return Pixel{
		R: mix(a.R, c.R, num, den),
		G: mix(a.G, c.G, num, den),
		B: mix(a.B, c.B, num, den),
		A: 255,
	}
}

// mix requires 0 <= num < den, which keeps the result between a and c.
func mix(a, c uint8, num, den int) uint8 {
	return uint8(int(a) + (int(c)-int(a))*num/den)
}
