package codec

import (
	"fmt"
	"io"

	"triangulator/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ParsePointSet imports a point set from YAML
func (c *YAMLCodec) ParsePointSet(r io.Reader) (domain.PointSet, error) {
	var doc pointSetDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return fromPairs(doc.Points), nil
}

// ExportPointSet exports a point set to YAML
func (c *YAMLCodec) ExportPointSet(points domain.PointSet, w io.Writer) error {
	return c.encode(pointSetDocument{Points: toPairs(points)}, w)
}

// ExportMesh exports a mesh to YAML
func (c *YAMLCodec) ExportMesh(mesh *Mesh, w io.Writer) error {
	return c.encode(newMeshDocument(mesh), w)
}

func (c *YAMLCodec) encode(v any, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
