package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulator/internal/domain"
)

func TestConvexHull(t *testing.T) {
	t.Run("square with interior point", func(t *testing.T) {
		hull := ConvexHull(pts(0, 0, 4, 0, 4, 4, 0, 4, 2, 2))

		require.Len(t, hull, 4)
		assert.NotContains(t, hull, domain.Point{X: 2, Y: 2})
		assert.InDelta(t, 16.0, PolygonArea(hull), 1e-12)
	})

	t.Run("drops collinear edge points", func(t *testing.T) {
		hull := ConvexHull(pts(0, 0, 1, 0, 2, 0, 2, 2, 0, 2))

		assert.Len(t, hull, 4)
	})

	t.Run("small inputs are copied", func(t *testing.T) {
		in := pts(1, 1, 2, 2)
		hull := ConvexHull(in)

		assert.Equal(t, in, hull)
	})
}

func TestPolygonArea(t *testing.T) {
	// Orientation does not change the unsigned area.
	ccw := pts(0, 0, 3, 0, 3, 2, 0, 2)
	cw := pts(0, 2, 3, 2, 3, 0, 0, 0)

	assert.InDelta(t, 6.0, PolygonArea(ccw), 1e-12)
	assert.InDelta(t, 6.0, PolygonArea(cw), 1e-12)
}
