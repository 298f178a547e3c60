// Package geometry holds the numeric predicates used by the Delaunay engine.
package geometry

import (
	"math"

	"triangulator/internal/domain"
)

const (
	// DefaultTolerance bounds the cross product under which three points
	// are considered collinear.
	DefaultTolerance = 1e-10
	// DefaultEpsilon is the slack used by the circumcircle test. It also
	// bounds the determinant below which a triangle is treated as degenerate.
	DefaultEpsilon = 1e-10
)

// AreCollinear reports whether every point lies on the line through the
// first two points, within tolerance. Fewer than three points are
// trivially collinear.
func AreCollinear(points []domain.Point, tolerance float64) bool {
	if len(points) < 3 {
		return true
	}

	p0 := points[0]
	dir := points[1].Sub(p0)
	for _, p := range points[2:] {
		if math.Abs(dir.Cross(p.Sub(p0))) > tolerance {
			return false
		}
	}
	return true
}

// Circumcircle returns the center and squared radius of the circle through
// a, b and c. ok is false when the triangle is degenerate, that is when the
// determinant magnitude is below epsilon.
func Circumcircle(a, b, c domain.Point, epsilon float64) (center domain.Point, radiusSq float64, ok bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < epsilon {
		return domain.Point{}, 0, false
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y

	center = domain.Point{
		X: (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / d,
		Y: (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / d,
	}
	return center, a.DistSq(center), true
}

// InCircumcircle reports whether p lies inside the circumcircle of the
// triangle (a, b, c). Epsilon widens the circle so points on the boundary
// count as inside.
//
// A degenerate triangle never contains anything: the predicate returns
// false rather than failing.
func InCircumcircle(a, b, c, p domain.Point, epsilon float64) bool {
	center, radiusSq, ok := Circumcircle(a, b, c, epsilon)
	if !ok {
		return false
	}
	return p.DistSq(center) < radiusSq+epsilon
}
