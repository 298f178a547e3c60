package geometry

import (
	"math"
	"sort"

	"triangulator/internal/domain"
)

// ConvexHull returns the hull vertices in counter-clockwise order using
// Andrew's monotone chain. Collinear points on hull edges are dropped.
func ConvexHull(points []domain.Point) []domain.Point {
	if len(points) < 3 {
		out := make([]domain.Point, len(points))
		copy(out, points)
		return out
	}

	sorted := make([]domain.Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	turn := func(o, a, b domain.Point) float64 {
		return a.Sub(o).Cross(b.Sub(o))
	}

	hull := make([]domain.Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// PolygonArea returns the unsigned shoelace area of a simple polygon
func PolygonArea(polygon []domain.Point) float64 {
	var sum float64
	for i, p := range polygon {
		q := polygon[(i+1)%len(polygon)]
		sum += p.Cross(q)
	}
	return math.Abs(sum) / 2
}
