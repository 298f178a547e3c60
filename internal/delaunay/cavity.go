package delaunay

import (
	"fmt"

	"triangulator/internal/domain"
)

// cavityBoundary returns the edges that occur in exactly one of the bad
// triangles, in triangle-then-edge discovery order. Each edge keeps the
// orientation it had in its triangle.
func cavityBoundary(bad []triangle) ([]domain.Edge, error) {
	if len(bad) == 0 {
		return nil, nil
	}

	order := make([]domain.Edge, 0, 3*len(bad))
	counts := make(map[domain.EdgeKey]int, 3*len(bad))
	for _, t := range bad {
		for _, e := range t.edges() {
			key := e.Key()
			if counts[key] == 0 {
				order = append(order, e)
			}
			counts[key]++
		}
	}

	boundary := make([]domain.Edge, 0, len(order))
	for _, e := range order {
		switch c := counts[e.Key()]; c {
		case 1:
			boundary = append(boundary, e)
		case 2:
			// interior edge shared by two bad triangles
		default:
			return nil, fmt.Errorf("edge (%d, %d) shared by %d triangles", e.A, e.B, c)
		}
	}

	if len(boundary) < 3 {
		return nil, fmt.Errorf("cavity of %d triangles has %d boundary edges", len(bad), len(boundary))
	}
	return boundary, nil
}
