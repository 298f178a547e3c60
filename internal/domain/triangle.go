package domain

import "math"

// Triangle is a triple of points taken from a point set
type Triangle [3]Point

// NewTriangle creates a new triangle
func NewTriangle(a, b, c Point) Triangle {
	return Triangle{a, b, c}
}

// SignedArea returns the oriented area, positive for counter-clockwise order
func (t Triangle) SignedArea() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])) / 2
}

// Area returns the unsigned area
func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

// HasVertex reports whether p is one of the triangle's vertices
func (t Triangle) HasVertex(p Point) bool {
	return t[0] == p || t[1] == p || t[2] == p
}

// Centroid returns the barycenter of the triangle
func (t Triangle) Centroid() Point {
	return Point{
		X: (t[0].X + t[1].X + t[2].X) / 3,
		Y: (t[0].Y + t[1].Y + t[2].Y) / 3,
	}
}

// Triangulation is the ordered list of triangles produced by the engine
type Triangulation []Triangle

// TotalArea returns the sum of the triangle areas
func (tr Triangulation) TotalArea() float64 {
	var sum float64
	for _, t := range tr {
		sum += t.Area()
	}
	return sum
}

// Vertices returns the distinct vertices in first-seen order across the
// triangle list.
func (tr Triangulation) Vertices() PointSet {
	seen := make(map[Point]struct{}, len(tr)+2)
	vertices := make(PointSet, 0, len(tr)+2)
	for _, t := range tr {
		for _, p := range t {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			vertices = append(vertices, p)
		}
	}
	return vertices
}

// Bounds returns the bounding box of all triangle vertices
func (tr Triangulation) Bounds() Bounds {
	return tr.Vertices().Bounds()
}
