package delaunay

import (
	"math"

	"triangulator/internal/domain"
	"triangulator/internal/geometry"
)

// superScale is how far, in multiples of the bounding box extent, the
// super-triangle vertices sit from the box center.
const superScale = 20

// Options tune a triangulation run. The zero value uses the default
// tolerances and no size limit.
type Options struct {
	// MaxPoints rejects larger inputs before any work. Zero means no limit.
	MaxPoints int
	// Tolerance is the collinearity tolerance. Zero or negative values
	// use geometry.DefaultTolerance, so an exact collinearity test cannot
	// be requested.
	Tolerance float64
	// Epsilon is the circumcircle slack and degeneracy bound. Zero or
	// negative values use geometry.DefaultEpsilon.
	Epsilon float64
}

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = geometry.DefaultTolerance
	}
	if o.Epsilon <= 0 {
		o.Epsilon = geometry.DefaultEpsilon
	}
	return o
}

// Triangulate returns the Delaunay triangulation of points
func Triangulate(points domain.PointSet) (domain.Triangulation, error) {
	return TriangulateWithOptions(points, Options{})
}

// TriangulateWithOptions is Triangulate with explicit options
func TriangulateWithOptions(points domain.PointSet, opts Options) (domain.Triangulation, error) {
	indices, err := IndexedWithOptions(points, opts)
	if err != nil {
		return nil, err
	}

	result := make(domain.Triangulation, len(indices))
	for i, t := range indices {
		result[i] = domain.Triangle{points[t[0]], points[t[1]], points[t[2]]}
	}
	return result, nil
}

// Indexed returns the triangulation as index triples into points
func Indexed(points domain.PointSet) ([][3]int, error) {
	return IndexedWithOptions(points, Options{})
}

// IndexedWithOptions is Indexed with explicit options
func IndexedWithOptions(points domain.PointSet, opts Options) ([][3]int, error) {
	opts = opts.withDefaults()

	if err := Validate(points, opts); err != nil {
		return nil, err
	}

	if len(points) == 3 {
		return [][3]int{{0, 1, 2}}, nil
	}

	return bowyerWatson(points, opts.Epsilon)
}

// Validate checks the preconditions in order and returns the first
// violation.
func Validate(points domain.PointSet, opts Options) error {
	opts = opts.withDefaults()

	if len(points) < 3 {
		return newError(KindInsufficientPoints, "got %d, need at least 3", len(points))
	}
	if opts.MaxPoints > 0 && len(points) > opts.MaxPoints {
		return newError(KindTooManyPoints, "got %d, limit is %d", len(points), opts.MaxPoints)
	}

	for i, p := range points {
		if !p.IsFinite() {
			return newError(KindInvalidCoordinate, "point %d is (%g, %g)", i, p.X, p.Y)
		}
	}

	seen := make(map[domain.Point]int, len(points))
	for i, p := range points {
		if j, ok := seen[p]; ok {
			return newError(KindDuplicatePoints, "point %d duplicates point %d (%g, %g)", i, j, p.X, p.Y)
		}
		seen[p] = i
	}

	if geometry.AreCollinear(points, opts.Tolerance) {
		return newError(KindCollinearPoints, "all %d points lie on one line", len(points))
	}

	return nil
}

// triangle holds three indices into the extended vertex list
type triangle [3]int

func (t triangle) edges() [3]domain.Edge {
	return [3]domain.Edge{
		domain.NewEdge(t[0], t[1]),
		domain.NewEdge(t[1], t[2]),
		domain.NewEdge(t[2], t[0]),
	}
}

func (t triangle) touchesAbove(limit int) bool {
	return t[0] >= limit || t[1] >= limit || t[2] >= limit
}

func bowyerWatson(points domain.PointSet, epsilon float64) ([][3]int, error) {
	n := len(points)
	vertices := make([]domain.Point, n, n+3)
	copy(vertices, points)
	vertices = append(vertices, superTriangle(points.Bounds())...)

	triangles := []triangle{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := vertices[i]

		kept := make([]triangle, 0, len(triangles)+2)
		var bad []triangle
		for _, t := range triangles {
			if geometry.InCircumcircle(vertices[t[0]], vertices[t[1]], vertices[t[2]], p, epsilon) {
				bad = append(bad, t)
			} else {
				kept = append(kept, t)
			}
		}

		boundary, err := cavityBoundary(bad)
		if err != nil {
			return nil, newError(KindInternalInconsistency, "inserting point %d: %v", i, err)
		}

		for _, e := range boundary {
			kept = append(kept, triangle{e.A, e.B, i})
		}
		triangles = kept
	}

	result := make([][3]int, 0, len(triangles))
	for _, t := range triangles {
		if t.touchesAbove(n) {
			continue
		}
		// Zero-area slivers can appear between collinear hull points.
		if domain.NewTriangle(vertices[t[0]], vertices[t[1]], vertices[t[2]]).SignedArea() == 0 {
			continue
		}
		result = append(result, [3]int(t))
	}
	return result, nil
}

// superTriangle returns three vertices whose triangle contains the box
// with a wide margin.
func superTriangle(b domain.Bounds) []domain.Point {
	delta := math.Max(b.Width(), b.Height())
	if delta <= 0 {
		delta = 1
	}
	mid := b.Center()

	return []domain.Point{
		{X: mid.X - superScale*delta, Y: mid.Y - delta},
		{X: mid.X, Y: mid.Y + superScale*delta},
		{X: mid.X + superScale*delta, Y: mid.Y - delta},
	}
}
