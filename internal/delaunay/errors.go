package delaunay

import "fmt"

// Kind classifies a triangulation failure
type Kind int

const (
	KindInsufficientPoints Kind = iota + 1
	KindInvalidCoordinate
	KindDuplicatePoints
	KindCollinearPoints
	KindTooManyPoints
	KindInternalInconsistency
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInsufficientPoints:
		return "insufficient points"
	case KindInvalidCoordinate:
		return "invalid coordinate"
	case KindDuplicatePoints:
		return "duplicate points"
	case KindCollinearPoints:
		return "collinear points"
	case KindTooManyPoints:
		return "too many points"
	case KindInternalInconsistency:
		return "internal inconsistency"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned when a point set cannot be triangulated
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return "triangulation failed: " + e.Kind.String()
	}
	return "triangulation failed: " + e.Kind.String() + ": " + e.Detail
}

// Is matches any *Error of the same kind, so the sentinels below work
// with errors.Is regardless of Detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrInsufficientPoints    = &Error{Kind: KindInsufficientPoints}
	ErrInvalidCoordinate     = &Error{Kind: KindInvalidCoordinate}
	ErrDuplicatePoints       = &Error{Kind: KindDuplicatePoints}
	ErrCollinearPoints       = &Error{Kind: KindCollinearPoints}
	ErrTooManyPoints         = &Error{Kind: KindTooManyPoints}
	ErrInternalInconsistency = &Error{Kind: KindInternalInconsistency}
)

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
