package domain

import (
	"math"
	"testing"
)

func TestPointIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"origin", NewPoint(0, 0), true},
		{"negative", NewPoint(-50.5, -100.5), true},
		{"nan x", NewPoint(math.NaN(), 0), false},
		{"nan y", NewPoint(0, math.NaN()), false},
		{"inf x", NewPoint(math.Inf(1), 0), false},
		{"neg inf y", NewPoint(0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointCross(t *testing.T) {
	a := NewPoint(1, 0)
	b := NewPoint(0, 1)

	if got := a.Cross(b); got != 1 {
		t.Errorf("expected cross 1, got %f", got)
	}
	if got := b.Cross(a); got != -1 {
		t.Errorf("expected cross -1, got %f", got)
	}
}

func TestPointSetBounds(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		b := PointSet{}.Bounds()
		if b != (Bounds{}) {
			t.Errorf("expected zero bounds, got %+v", b)
		}
	})

	t.Run("spans all points", func(t *testing.T) {
		ps := PointSet{{X: 1, Y: 5}, {X: -2, Y: 3}, {X: 4, Y: -1}}
		b := ps.Bounds()

		if b.MinX != -2 || b.MaxX != 4 || b.MinY != -1 || b.MaxY != 5 {
			t.Errorf("unexpected bounds %+v", b)
		}
		if b.Width() != 6 || b.Height() != 6 {
			t.Errorf("expected 6x6, got %fx%f", b.Width(), b.Height())
		}
		if c := b.Center(); c.X != 1 || c.Y != 2 {
			t.Errorf("expected center (1, 2), got %+v", c)
		}
	})
}

func TestPointSetIndexOf(t *testing.T) {
	ps := PointSet{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1}}

	if got := ps.IndexOf(Point{X: 1, Y: 1}); got != 1 {
		t.Errorf("expected first match at 1, got %d", got)
	}
	if ps.Contains(Point{X: 1, Y: 1.0000001}) {
		t.Error("expected exact comparison without tolerance")
	}
}
