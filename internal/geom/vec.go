// Package geom provides 2D vector math for world, camera and screen space.
package geom

import "math"

// Vec2 is a point or displacement in 2D float space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Offset moves base by delta scaled by scale.
// Camera easing and cursor movement both go through here.
func Offset(base, delta Vec2, scale float64) Vec2 {
	return base.Add(delta.Scale(scale))
}

// Centroid returns the mean of the points, or false when there are none.
func Centroid(points []Vec2) (Vec2, bool) {
	if len(points) == 0 {
		return Vec2{}, false
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points))), true
}
