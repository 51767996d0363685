// Package core provides fundamental types and utilities for the ascent platform.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec2 is a point or displacement in level space.
// Level space is pixel-scaled and Y grows downward.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).Scale(t))
}

// Box is an axis-aligned bounding box in level space.
// Every placed entity (platform, trap, checkpoint, player) embeds one.
type Box struct {
	Position Vec2    // Top-left corner
	Width    float64 // Extent along X
	Height   float64 // Extent along Y
}

// NewBox creates a box with its top-left corner at (x, y).
func NewBox(x, y, w, h float64) Box {
	return Box{Position: Vec2{X: x, Y: y}, Width: w, Height: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float64 {
	return b.Position.X
}

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 {
	return b.Position.Y
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.Position.X + b.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Position.Y + b.Height
}

// Overlaps reports whether the interiors of b and o intersect.
// Boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.Left() < o.Right() && b.Right() > o.Left() &&
		b.Top() < o.Bottom() && b.Bottom() > o.Top()
}

// OverlapsX reports whether the horizontal extents of b and o intersect.
func (b Box) OverlapsX(o Box) bool {
	return b.Right() > o.Left() && b.Left() < o.Right()
}

// Contains reports whether p lies inside b. The right and bottom edges
// are exclusive.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Left() && p.X < b.Right() && p.Y >= b.Top() && p.Y < b.Bottom()
}

// Translate returns b moved by d.
func (b Box) Translate(d Vec2) Box {
	b.Position = b.Position.Add(d)
	return b
}

// At returns b with its top-left corner moved to p.
func (b Box) At(p Vec2) Box {
	b.Position = p
	return b
}

// Rect represents an axis-aligned rectangle in screen cells.
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
