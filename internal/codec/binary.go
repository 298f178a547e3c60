package codec

import (
	"encoding/binary"
	"io"
	"math"

	"triangulator/internal/domain"
)

// Wire layout, big-endian:
//
//	PointSet      := u32 N, (f32 x, f32 y){N}
//	TriangleMesh  := u32 V, (f32 x, f32 y){V}, u32 T, (u32 i0, u32 i1, u32 i2){T}
const (
	countSize    = 4
	pointSize    = 8
	triangleSize = 12
)

// PointSetSize returns the encoded length of n points
func PointSetSize(n int) int {
	return countSize + pointSize*n
}

// EncodePointSet encodes points in the PointSet wire format.
// Coordinates are narrowed to float32.
func EncodePointSet(points domain.PointSet) ([]byte, error) {
	return AppendPointSet(make([]byte, 0, PointSetSize(len(points))), points)
}

// AppendPointSet appends the PointSet encoding of points to dst
func AppendPointSet(dst []byte, points domain.PointSet) ([]byte, error) {
	if uint64(len(points)) > math.MaxUint32 {
		return nil, &Error{Kind: KindTooLarge, Section: "pointset count", Need: math.MaxUint32, Got: uint64(len(points))}
	}

	dst = binary.BigEndian.AppendUint32(dst, uint32(len(points)))
	for _, p := range points {
		dst = binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(p.X)))
		dst = binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(p.Y)))
	}
	return dst, nil
}

// DecodePointSet decodes a PointSet buffer. Bytes past the declared
// payload are ignored.
func DecodePointSet(data []byte) (domain.PointSet, error) {
	points, _, err := decodePointSet(data)
	return points, err
}

// decodePointSet returns the points and the number of bytes consumed
func decodePointSet(data []byte) (domain.PointSet, int, error) {
	if len(data) < countSize {
		return nil, 0, truncated("pointset header", countSize, len(data))
	}

	count := uint64(binary.BigEndian.Uint32(data))
	need := uint64(countSize) + count*pointSize
	if uint64(len(data)) < need {
		return nil, 0, &Error{Kind: KindTruncated, Section: "pointset payload", Need: need, Got: uint64(len(data))}
	}

	points := make(domain.PointSet, count)
	off := countSize
	for i := range points {
		points[i] = domain.Point{
			X: float64(math.Float32frombits(binary.BigEndian.Uint32(data[off:]))),
			Y: float64(math.Float32frombits(binary.BigEndian.Uint32(data[off+4:]))),
		}
		off += pointSize
	}
	return points, off, nil
}

// WritePointSet writes the PointSet encoding of points to w
func WritePointSet(w io.Writer, points domain.PointSet) error {
	data, err := EncodePointSet(points)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadPointSet reads at most limit bytes from r and decodes them as a
// PointSet. A non-positive limit reads to EOF.
func ReadPointSet(r io.Reader, limit int64) (domain.PointSet, error) {
	data, err := readLimited(r, limit)
	if err != nil {
		return nil, err
	}
	return DecodePointSet(data)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, &Error{Kind: KindTooLarge, Section: "stream", Need: uint64(limit), Got: uint64(len(data))}
	}
	return data, nil
}
