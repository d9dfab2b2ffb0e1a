package battle

import "github.com/samdwyer/troupe/internal/geom"

const (
	// easeDivisor is the fraction of the remaining distance covered per reference frame.
	easeDivisor = 10
	// referenceFPS normalises easing so it is frame-rate independent.
	referenceFPS = 60
)

// Camera is the viewport's top-left corner in world space.
type Camera struct {
	Pos      geom.Vec2
	Viewport geom.Vec2 // Viewport size in world pixels
}

// NewCamera creates a camera at the origin with the given viewport size.
func NewCamera(viewW, viewH float64) *Camera {
	return &Camera{Viewport: geom.Vec2{X: viewW, Y: viewH}}
}

// Follow eases the camera so that focus ends up centred on screen.
// Without a focus point the camera drifts back to the origin.
func (c *Camera) Follow(dt float64, focus geom.Vec2, ok bool) {
	var target geom.Vec2
	if ok {
		target = focus.Sub(c.Viewport.Scale(0.5))
	}
	c.Pos = geom.Offset(c.Pos, target.Sub(c.Pos), dt*referenceFPS/easeDivisor)
}

// RenderOffset converts a world position to its screen position.
func (c *Camera) RenderOffset(world geom.Vec2) geom.Vec2 {
	return world.Sub(c.Pos)
}
