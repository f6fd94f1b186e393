package icon

// Geometry is done in doubled coordinates so pixel centers (x+0.5, y+0.5)
// and the image center (w/2, h/2) are integers. No floating point is
// involved, which keeps output identical across architectures.

// dotUnits are the neural dot centers in a 192-unit icon, relative to the
// image center.
var dotUnits = [6][2]int{
	{-25, -15}, {25, -15},
	{-25, 15}, {25, 15},
	{-15, 0}, {15, 0},
}

// overlay describes the decoration for one image size.
type overlay struct {
	w, h   int // image size, also the doubled center
	radius int // ring radius
	stroke int // ring and spine width
	thin   int // texture line width
	dotR   int // neural dot radius
	dots   [6][2]int
}

func newOverlay(w, h int) overlay {
	size := min(w, h)
	o := overlay{
		w:      w,
		h:      h,
		radius: size / 3,
		stroke: max(1, size/32),
		thin:   max(1, size/64),
		dotR:   max(1, 3*size/192),
	}
	for i, u := range dotUnits {
		o.dots[i] = [2]int{u[0] * size / 192, u[1] * size / 192}
	}
	return o
}

// covers reports whether pixel (x, y) is part of the decoration.
func (o overlay) covers(x, y int) bool {
	dx := 2*x + 1 - o.w
	dy := 2*y + 1 - o.h
	d2 := dx*dx + dy*dy
	r2 := 2 * o.radius

	// Ring, stroked inward from the radius.
	inner := 2 * (o.radius - o.stroke)
	if d2 <= r2*r2 && (inner < 0 || d2 > inner*inner) {
		return true
	}

	// Vertical spine across the ring diameter.
	if abs(dx) < o.stroke && abs(dy) <= r2 {
		return true
	}

	// Three horizontal texture lines, half the ring diameter wide.
	if abs(dx) <= o.radius {
		for _, off := range [3]int{-o.radius / 2, 0, o.radius / 2} {
			if abs(dy-2*off) < o.thin {
				return true
			}
		}
	}

	dr := 2 * o.dotR
	for _, c := range o.dots {
		ex := dx - 2*c[0]
		ey := dy - 2*c[1]
		if ex*ex+ey*ey <= dr*dr {
			return true
		}
	}
	return false
}

// drawOverlay paints the decoration onto b. Covered pixels take the ink
// color and are forced opaque.
func drawOverlay(b *Buffer, ink Pixel) {
	ink.A = 255
	o := newOverlay(b.Width, b.Height)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if o.covers(x, y) {
				b.Pixels[y*b.Width+x] = ink
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
