package domain

import "math"

// Point is a location in the plane
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPoint creates a new point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether neither coordinate is NaN or infinite
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Sub returns the vector p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the z component of the cross product of p and q as vectors
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - q.X*p.Y
}

// DistSq returns the squared distance between p and q
func (p Point) DistSq(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// PointSet is an ordered sequence of points
type PointSet []Point

// Bounds is an axis-aligned bounding box
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Bounds returns the bounding box of the set. The zero Bounds is returned
// for an empty set.
func (ps PointSet) Bounds() Bounds {
	if len(ps) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: ps[0].X, MinY: ps[0].Y, MaxX: ps[0].X, MaxY: ps[0].Y}
	for _, p := range ps[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// IndexOf returns the index of the first point equal to p, or -1
func (ps PointSet) IndexOf(p Point) int {
	for i, q := range ps {
		if q == p {
			return i
		}
	}
	return -1
}

// Contains reports whether p is a member of the set
func (ps PointSet) Contains(p Point) bool {
	return ps.IndexOf(p) >= 0
}
