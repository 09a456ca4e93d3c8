package game

import (
	"image/color"
	"math/rand"
)

// Backdrop is the scrolling debris field behind the battlefield. Its
// scroll offset is derived from the camera position scaled by the
// parallax factor, so it lags the foreground and sells depth. Flecks
// live on a torus around the camera so they never run out.
type Backdrop struct {
	flecks  []fleck
	span    float64
	factor  float64
	offsetX float64
	offsetY float64
}

type fleck struct {
	x, y  float64
	size  float64
	shade uint8
}

// NewBackdrop seeds a debris field sized to the viewport.
func NewBackdrop(screenWidth, screenHeight float64, parallaxFactor float64, rng *rand.Rand) *Backdrop {
	span := (screenWidth + screenHeight) * 1.2
	flecks := make([]fleck, 160)
	for i := range flecks {
		flecks[i] = fleck{
			x:     rng.Float64() * span,
			y:     rng.Float64() * span,
			size:  1 + rng.Float64()*2,
			shade: uint8(60 + rng.Intn(80)),
		}
	}
	return &Backdrop{
		flecks: flecks,
		span:   span,
		factor: parallaxFactor,
	}
}

// Update recomputes the scroll offset from the camera position.
func (b *Backdrop) Update(cam *Camera) {
	b.offsetX = cam.X * b.factor
	b.offsetY = cam.Y * b.factor
}

// Offset returns the current scroll offset, mostly for tests.
func (b *Backdrop) Offset() (x, y float64) {
	return b.offsetX, b.offsetY
}

// VisibleFlecks yields each fleck's screen position via fn, wrapped onto
// the viewport torus.
func (b *Backdrop) VisibleFlecks(screenWidth, screenHeight float64, fn func(x, y, size float64, shade color.NRGBA)) {
	for _, f := range b.flecks {
		x := wrap(f.x-b.offsetX, b.span)
		y := wrap(f.y-b.offsetY, b.span)
		if x > screenWidth || y > screenHeight {
			continue
		}
		fn(x, y, f.size, color.NRGBA{f.shade, f.shade, f.shade, 255})
	}
}

// wrap maps v onto [0, span).
func wrap(v, span float64) float64 {
	v -= float64(int(v/span)) * span
	if v < 0 {
		v += span
	}
	return v
}
