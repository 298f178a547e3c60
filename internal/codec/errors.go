package codec

import "fmt"

// Kind classifies a codec failure
type Kind int

const (
	// KindTruncated means the buffer ended before a required field
	KindTruncated Kind = iota + 1
	// KindMalformedHeader means a count field could not be read. With a
	// fixed-width u32 header every short read is reported as truncated,
	// so this kind is kept for callers matching the full taxonomy.
	KindMalformedHeader
	// KindIndexOutOfRange means a mesh triangle references a missing vertex
	KindIndexOutOfRange
	// KindTooLarge means a count does not fit the u32 wire field or a
	// stream exceeded the caller's byte limit
	KindTooLarge
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindMalformedHeader:
		return "malformed header"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindTooLarge:
		return "too large"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error reports a failure to encode or decode a wire buffer
type Error struct {
	Kind    Kind
	Section string
	Need    uint64
	Got     uint64
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Section != "" {
		msg = e.Section + ": " + msg
	}
	switch e.Kind {
	case KindTruncated:
		return fmt.Sprintf("codec: %s: need %d bytes, got %d", msg, e.Need, e.Got)
	case KindIndexOutOfRange:
		return fmt.Sprintf("codec: %s: index %d, vertex count %d", msg, e.Got, e.Need)
	case KindTooLarge:
		return fmt.Sprintf("codec: %s: %d exceeds limit %d", msg, e.Got, e.Need)
	default:
		return "codec: " + msg
	}
}

// Is matches any *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrTruncated       = &Error{Kind: KindTruncated}
	ErrMalformedHeader = &Error{Kind: KindMalformedHeader}
	ErrIndexOutOfRange = &Error{Kind: KindIndexOutOfRange}
	ErrTooLarge        = &Error{Kind: KindTooLarge}
)

func truncated(section string, need, got int) *Error {
	return &Error{Kind: KindTruncated, Section: section, Need: uint64(need), Got: uint64(got)}
}
