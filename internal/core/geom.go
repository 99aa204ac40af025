// Package core provides fundamental types and utilities shared by the game core
// and its hosts. It has no external dependencies (especially no Bubble Tea) to
// keep the simulation pure and testable.
package core

import "math"

// Rect represents an axis-aligned cell rectangle used when drawing to a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Rotate returns p rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a canvas size in canvas units.
type Size struct {
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Valid reports whether both dimensions are positive and finite.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 0) && !math.IsInf(s.H, 0)
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
// If min > max the range is degenerate and the midpoint is returned.
func ClampF(val, min, max float64) float64 {
	if min > max {
		return (min + max) / 2
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
