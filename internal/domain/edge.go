package domain

// Edge is an oriented pair of vertex indices
type Edge struct {
	A int
	B int
}

// EdgeKey identifies an edge independently of its orientation
type EdgeKey struct {
	Lo int
	Hi int
}

// NewEdge creates a new edge from a to b
func NewEdge(a, b int) Edge {
	return Edge{A: a, B: b}
}

// Key returns the canonical key for the edge.
// (a, b) and (b, a) share a key.
func (e Edge) Key() EdgeKey {
	if e.A > e.B {
		return EdgeKey{Lo: e.B, Hi: e.A}
	}
	return EdgeKey{Lo: e.A, Hi: e.B}
}

// Reversed returns the edge with its endpoints swapped
func (e Edge) Reversed() Edge {
	return Edge{A: e.B, B: e.A}
}

// Touches reports whether v is one of the edge's endpoints
func (e Edge) Touches(v int) bool {
	return e.A == v || e.B == v
}
