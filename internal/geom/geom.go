// Package geom provides the floating-point points and axis-aligned rectangles
// used to reason about window placement.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle spanning Min (top-left) to Max
// (bottom-right). The zero Rect is the empty rectangle.
type Rect struct {
	Min Point
	Max Point
}

// XYWH builds a rectangle from its top-left corner and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns width and height.
func (r Rect) Size() (float64, float64) {
	return r.Width(), r.Height()
}

// Area is the literal product of width and height. A rectangle read from a
// misbehaving host may have a negative extent; no attempt is made to correct it.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Intersect returns the overlap of r and s, or the empty Rect when they do not
// overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: Pt(math.Max(r.Min.X, s.Min.X), math.Max(r.Min.Y, s.Min.Y)),
		Max: Pt(math.Min(r.Max.X, s.Max.X), math.Min(r.Max.Y, s.Max.Y)),
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y {
		return Rect{}
	}
	return out
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Inset shrinks r by dx on the left and right and dy on the top and bottom.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		Min: Pt(r.Min.X+dx, r.Min.Y+dy),
		Max: Pt(r.Max.X-dx, r.Max.Y-dy),
	}
}

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Min: Pt(r.Min.X+dx, r.Min.Y+dy),
		Max: Pt(r.Max.X+dx, r.Max.Y+dy),
	}
}

// Eq reports whether both corners match within eps.
func (r Rect) Eq(s Rect, eps float64) bool {
	return math.Abs(r.Min.X-s.Min.X) <= eps && math.Abs(r.Min.Y-s.Min.Y) <= eps &&
		math.Abs(r.Max.X-s.Max.X) <= eps && math.Abs(r.Max.Y-s.Max.Y) <= eps
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g+%g+%g", r.Width(), r.Height(), r.Min.X, r.Min.Y)
}
