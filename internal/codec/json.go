package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"triangulator/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ParsePointSet imports a point set from JSON
func (c *JSONCodec) ParsePointSet(r io.Reader) (domain.PointSet, error) {
	var doc pointSetDocument
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return fromPairs(doc.Points), nil
}

// ExportPointSet exports a point set to JSON
func (c *JSONCodec) ExportPointSet(points domain.PointSet, w io.Writer) error {
	return c.encode(pointSetDocument{Points: toPairs(points)}, w)
}

// ExportMesh exports a mesh to JSON
func (c *JSONCodec) ExportMesh(mesh *Mesh, w io.Writer) error {
	return c.encode(newMeshDocument(mesh), w)
}

func (c *JSONCodec) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
