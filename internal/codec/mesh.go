package codec

import (
	"encoding/binary"
	"math"

	"triangulator/internal/domain"
)

// Mesh is a triangle list over a deduplicated vertex table
type Mesh struct {
	Vertices  domain.PointSet
	Triangles [][3]uint32
}

// vertexIndex assigns indices to vertices in first-seen order.
// Vertices are identified by exact coordinate equality.
type vertexIndex struct {
	index map[domain.Point]uint32
	order domain.PointSet
}

func newVertexIndex(capacity int) *vertexIndex {
	return &vertexIndex{
		index: make(map[domain.Point]uint32, capacity),
		order: make(domain.PointSet, 0, capacity),
	}
}

func (vi *vertexIndex) add(p domain.Point) uint32 {
	if i, ok := vi.index[p]; ok {
		return i
	}
	i := uint32(len(vi.order))
	vi.index[p] = i
	vi.order = append(vi.order, p)
	return i
}

// NewMesh builds the indexed form of a triangulation
func NewMesh(tr domain.Triangulation) (*Mesh, error) {
	if uint64(len(tr)) > math.MaxUint32 {
		return nil, &Error{Kind: KindTooLarge, Section: "triangle count", Need: math.MaxUint32, Got: uint64(len(tr))}
	}

	// V <= T+2 for any planar triangulation
	vi := newVertexIndex(len(tr) + 2)
	triangles := make([][3]uint32, len(tr))
	for i, t := range tr {
		for j, p := range t {
			if uint64(len(vi.order)) == math.MaxUint32 {
				return nil, &Error{Kind: KindTooLarge, Section: "vertex count", Need: math.MaxUint32, Got: uint64(len(vi.order)) + 1}
			}
			triangles[i][j] = vi.add(p)
		}
	}

	return &Mesh{Vertices: vi.order, Triangles: triangles}, nil
}

// Triangulation rebuilds the triangle list by value
func (m *Mesh) Triangulation() domain.Triangulation {
	tr := make(domain.Triangulation, len(m.Triangles))
	for i, t := range m.Triangles {
		tr[i] = domain.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
	}
	return tr
}

// Size returns the encoded length of the mesh
func (m *Mesh) Size() int {
	return PointSetSize(len(m.Vertices)) + countSize + triangleSize*len(m.Triangles)
}

// MarshalBinary encodes the mesh in the TriangleMesh wire format
func (m *Mesh) MarshalBinary() ([]byte, error) {
	if uint64(len(m.Triangles)) > math.MaxUint32 {
		return nil, &Error{Kind: KindTooLarge, Section: "triangle count", Need: math.MaxUint32, Got: uint64(len(m.Triangles))}
	}

	buf, err := AppendPointSet(make([]byte, 0, m.Size()), m.Vertices)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(m.Triangles)))
	for _, t := range m.Triangles {
		buf = binary.BigEndian.AppendUint32(buf, t[0])
		buf = binary.BigEndian.AppendUint32(buf, t[1])
		buf = binary.BigEndian.AppendUint32(buf, t[2])
	}
	return buf, nil
}

// UnmarshalBinary decodes a TriangleMesh buffer into m
func (m *Mesh) UnmarshalBinary(data []byte) error {
	vertices, off, err := decodePointSet(data)
	if err != nil {
		return err
	}

	rest := data[off:]
	if len(rest) < countSize {
		return truncated("triangle header", off+countSize, len(data))
	}
	count := uint64(binary.BigEndian.Uint32(rest))
	need := uint64(off) + countSize + count*triangleSize
	if uint64(len(data)) < need {
		return &Error{Kind: KindTruncated, Section: "triangle payload", Need: need, Got: uint64(len(data))}
	}

	triangles := make([][3]uint32, count)
	pos := countSize
	for i := range triangles {
		for j := 0; j < 3; j++ {
			idx := binary.BigEndian.Uint32(rest[pos:])
			if uint64(idx) >= uint64(len(vertices)) {
				return &Error{Kind: KindIndexOutOfRange, Section: "triangle payload", Need: uint64(len(vertices)), Got: uint64(idx)}
			}
			triangles[i][j] = idx
			pos += 4
		}
	}

	m.Vertices = vertices
	m.Triangles = triangles
	return nil
}

// EncodeMesh encodes a triangulation in the TriangleMesh wire format
func EncodeMesh(tr domain.Triangulation) ([]byte, error) {
	m, err := NewMesh(tr)
	if err != nil {
		return nil, err
	}
	return m.MarshalBinary()
}

// DecodeMesh decodes a TriangleMesh buffer. Bytes past the declared
// payload are ignored.
func DecodeMesh(data []byte) (*Mesh, error) {
	var m Mesh
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &m, nil
}
