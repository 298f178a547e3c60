package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"triangulator/internal/domain"
)

// Importer interface for importing point sets from text formats
type Importer interface {
	ParsePointSet(r io.Reader) (domain.PointSet, error)
	Format() string
}

// Exporter interface for exporting point sets and meshes to text formats
type Exporter interface {
	ExportPointSet(points domain.PointSet, w io.Writer) error
	ExportMesh(mesh *Mesh, w io.Writer) error
	Format() string
}

// TextCodec is a format that can both import and export
type TextCodec interface {
	Importer
	Exporter
}

// pointSetDocument is the text form of a point set
type pointSetDocument struct {
	Points [][2]float64 `json:"points" yaml:"points"`
}

// meshDocument is the text form of a mesh
type meshDocument struct {
	Vertices  [][2]float64 `json:"vertices" yaml:"vertices"`
	Triangles [][3]uint32  `json:"triangles" yaml:"triangles"`
}

func toPairs(points domain.PointSet) [][2]float64 {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64{p.X, p.Y}
	}
	return pairs
}

func fromPairs(pairs [][2]float64) domain.PointSet {
	points := make(domain.PointSet, len(pairs))
	for i, c := range pairs {
		points[i] = domain.Point{X: c[0], Y: c[1]}
	}
	return points
}

func newMeshDocument(mesh *Mesh) meshDocument {
	triangles := mesh.Triangles
	if triangles == nil {
		triangles = [][3]uint32{}
	}
	return meshDocument{Vertices: toPairs(mesh.Vertices), Triangles: triangles}
}

var formats = map[string]func() TextCodec{
	"json": func() TextCodec { return NewJSONCodec() },
	"yaml": func() TextCodec { return NewYAMLCodec() },
	"yml":  func() TextCodec { return NewYAMLCodec() },
}

// ForFormat returns the text codec registered for a format name
func ForFormat(name string) (TextCodec, error) {
	ctor, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", name, strings.Join(Formats(), ", "))
	}
	return ctor(), nil
}

// Formats lists the registered format names
func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
