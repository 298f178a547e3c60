package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"triangulator/internal/domain"
)

func TestEncodePointSet_Layout(t *testing.T) {
	data, err := EncodePointSet(domain.PointSet{{X: 1, Y: -2}, {X: 0.5, Y: 3}})
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x02,
		0x3f, 0x80, 0x00, 0x00, 0xc0, 0x00, 0x00, 0x00,
		0x3f, 0x00, 0x00, 0x00, 0x40, 0x40, 0x00, 0x00,
	}
	assert.Equal(t, want, data)
}

func TestEncodePointSet_Empty(t *testing.T) {
	data, err := EncodePointSet(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)

	points, err := DecodePointSet(data)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestDecodePointSet_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		need uint64
	}{
		{"empty", []byte{}, 4},
		{"short header", []byte{0x00, 0x00}, 4},
		{"missing payload", []byte{0x00, 0x00, 0x00, 0x02}, 20},
		{"partial point", []byte{0x00, 0x00, 0x00, 0x01, 0x3f, 0x80}, 12},
		{"huge count", binary.BigEndian.AppendUint32(nil, 4_000_000_000), 4 + 8*4_000_000_000},
		{"negative count as u32", binary.BigEndian.AppendUint32(nil, uint32(0xfffffffb)), 4 + 8*uint64(0xfffffffb)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePointSet(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTruncated)

			var cerr *Error
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.need, cerr.Need)
			assert.Equal(t, uint64(len(tt.data)), cerr.Got)
		})
	}
}

func TestDecodePointSet_IgnoresTrailingBytes(t *testing.T) {
	data, err := EncodePointSet(domain.PointSet{{X: 1, Y: 2}})
	require.NoError(t, err)
	data = append(data, 0xde, 0xad, 0xbe, 0xef)

	points, err := DecodePointSet(data)
	require.NoError(t, err)
	assert.Equal(t, domain.PointSet{{X: 1, Y: 2}}, points)
}

func TestDecodePointSet_NarrowsToFloat32(t *testing.T) {
	data, err := EncodePointSet(domain.PointSet{{X: 0.1, Y: math.MaxFloat32}})
	require.NoError(t, err)

	points, err := DecodePointSet(data)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), points[0].X)
	assert.NotEqual(t, 0.1, points[0].X)
	assert.Equal(t, float64(math.MaxFloat32), points[0].Y)
}

func TestWriteReadPointSet(t *testing.T) {
	points := domain.PointSet{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	var buf bytes.Buffer
	require.NoError(t, WritePointSet(&buf, points))
	assert.Equal(t, PointSetSize(3), buf.Len())

	got, err := ReadPointSet(bytes.NewReader(buf.Bytes()), 0)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	_, err = ReadPointSet(bytes.NewReader(buf.Bytes()), 10)
	assert.ErrorIs(t, err, ErrTooLarge)

	got, err = ReadPointSet(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestErrorMessages(t *testing.T) {
	_, err := DecodePointSet([]byte{0x00, 0x00, 0x00, 0x02})
	require.Error(t, err)
	assert.Equal(t, "codec: pointset payload: truncated: need 20 bytes, got 4", err.Error())

	assert.False(t, errors.Is(err, ErrIndexOutOfRange))
}

// float32 values survive the wire format exactly
func float32Point() *rapid.Generator[domain.Point] {
	coord := rapid.Float32Range(-1e6, 1e6)
	return rapid.Custom(func(t *rapid.T) domain.Point {
		return domain.Point{X: float64(coord.Draw(t, "x")), Y: float64(coord.Draw(t, "y"))}
	})
}

func TestPointSetRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := domain.PointSet(rapid.SliceOf(float32Point()).Draw(t, "points"))

		data, err := EncodePointSet(points)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(data) != 4+8*len(points) {
			t.Fatalf("encoded length %d, want %d", len(data), 4+8*len(points))
		}

		got, err := DecodePointSet(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got) != len(points) {
			t.Fatalf("decoded %d points, want %d", len(got), len(points))
		}
		for i := range points {
			if got[i] != points[i] {
				t.Fatalf("point %d: got %v, want %v", i, got[i], points[i])
			}
		}
	})
}

func TestDecodePointSet_TruncatedPrefix_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		points := domain.PointSet(rapid.SliceOfN(float32Point(), 1, 20).Draw(t, "points"))
		data, err := EncodePointSet(points)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		cut := rapid.IntRange(0, len(data)-1).Draw(t, "cut")

		if _, err := DecodePointSet(data[:cut]); !errors.Is(err, ErrTruncated) {
			t.Fatalf("prefix of %d bytes: got %v, want truncated", cut, err)
		}
	})
}
