package render

import "github.com/jakecoffman/cp"

const (
	minZoom = 0.25
	maxZoom = 8.0
)

// Camera maps world coordinates to the screen: world positions are scaled by
// Zoom and then shifted by the offset.
type Camera struct {
	OffsetX float64
	OffsetY float64
	Zoom    float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

func (c *Camera) zoom() float64 {
	if c == nil || c.Zoom == 0 {
		return 1
	}
	return c.Zoom
}

func (c *Camera) ScreenToWorld(p cp.Vector) cp.Vector {
	if c == nil {
		return p
	}
	z := c.zoom()
	return cp.Vector{X: (p.X - c.OffsetX) / z, Y: (p.Y - c.OffsetY) / z}
}

func (c *Camera) WorldToScreen(p cp.Vector) cp.Vector {
	if c == nil {
		return p
	}
	z := c.zoom()
	return cp.Vector{X: p.X*z + c.OffsetX, Y: p.Y*z + c.OffsetY}
}

// Pan shifts the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt scales the view by factor, keeping the world point under screen
// fixed.
func (c *Camera) ZoomAt(screen cp.Vector, factor float64) {
	world := c.ScreenToWorld(screen)
	z := c.zoom() * factor
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	c.Zoom = z
	c.OffsetX = screen.X - world.X*z
	c.OffsetY = screen.Y - world.Y*z
}
