// Package core provides fundamental types and utilities shared by the
// simulation and the terminal platform. It contains no external dependencies
// (especially no Bubble Tea) to keep simulation logic pure and testable.
package core

import "math"

// Vec is a 2D vector in world units (pixels of the reference layout).
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return o.Sub(v).Len()
}

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector pointing along v.
// The zero vector normalizes to itself.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Toward returns a velocity of the given speed pointing from v to target.
func (v Vec) Toward(target Vec, speed float64) Vec {
	return target.Sub(v).Normalize().Scale(speed)
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround creates a rectangle of the given size centered on c.
func RectAround(c Vec, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point p is inside this rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Penetration returns the smallest translation that moves r out of other.
// The second result is false when the rectangles do not overlap.
func (r Rect) Penetration(other Rect) (Vec, bool) {
	if !r.Intersects(other) {
		return Vec{}, false
	}

	left := r.Right() - other.X
	right := other.Right() - r.X
	up := r.Bottom() - other.Y
	down := other.Bottom() - r.Y

	dx := -left
	if right < left {
		dx = right
	}
	dy := -up
	if down < up {
		dy = down
	}

	if math.Abs(dx) < math.Abs(dy) {
		return Vec{X: dx}, true
	}
	return Vec{Y: dy}, true
}

// ClampInto returns the rectangle moved so that it lies inside bounds.
// A rectangle larger than bounds is aligned to the top-left corner.
func (r Rect) ClampInto(bounds Rect) Rect {
	r.X = ClampF(r.X, bounds.X, bounds.Right()-r.W)
	r.Y = ClampF(r.Y, bounds.Y, bounds.Bottom()-r.H)
	if r.W > bounds.W {
		r.X = bounds.X
	}
	if r.H > bounds.H {
		r.Y = bounds.Y
	}
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
