package game

// Camera represents the viewport into the world
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height float64) *Camera {
	return &Camera{
		Width:  width,
		Height: height,
	}
}

// Follow eases the camera toward a world position.
func (c *Camera) Follow(x, y float64) {
	c.X += (x - c.X) * 0.1
	c.Y += (y - c.Y) * 0.1
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx - c.X + c.Width/2, wy - c.Y + c.Height/2
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return sx - c.Width/2 + c.X, sy - c.Height/2 + c.Y
}
