package domain

import (
	"testing"
)

func TestNewEdge(t *testing.T) {
	t.Run("keeps orientation", func(t *testing.T) {
		edge := NewEdge(3, 1)

		if edge.A != 3 {
			t.Errorf("expected A=3, got %d", edge.A)
		}
		if edge.B != 1 {
			t.Errorf("expected B=1, got %d", edge.B)
		}
	})
}

func TestEdgeKey(t *testing.T) {
	t.Run("normalizes endpoints for consistent key", func(t *testing.T) {
		edge1 := NewEdge(1, 2)
		edge2 := NewEdge(2, 1)

		if edge1.Key() != edge2.Key() {
			t.Error("expected reversed endpoints to generate same key")
		}
	})

	t.Run("lower endpoint first", func(t *testing.T) {
		key := NewEdge(9, 4).Key()

		if key.Lo != 4 || key.Hi != 9 {
			t.Errorf("expected {4 9}, got %+v", key)
		}
	})

	t.Run("different endpoints generate different keys", func(t *testing.T) {
		edge1 := NewEdge(1, 2)
		edge2 := NewEdge(1, 3)

		if edge1.Key() == edge2.Key() {
			t.Error("expected different endpoints to generate different keys")
		}
	})
}

func TestEdgeReversed(t *testing.T) {
	edge := NewEdge(5, 7).Reversed()

	if edge.A != 7 || edge.B != 5 {
		t.Errorf("expected (7, 5), got (%d, %d)", edge.A, edge.B)
	}
	if !edge.Touches(5) || !edge.Touches(7) {
		t.Error("expected reversed edge to touch both endpoints")
	}
	if edge.Touches(6) {
		t.Error("expected edge not to touch 6")
	}
}
