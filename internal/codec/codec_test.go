package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulator/internal/domain"
)

func TestForFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"json", "json", false},
		{"YAML", "yaml", false},
		{"yml", "yaml", false},
		{" json ", "json", false},
		{"png", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ForFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Format())
		})
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "yaml", "yml"}, Formats())
}

func TestTextCodecs_PointSetRoundTrip(t *testing.T) {
	points := domain.PointSet{{X: 0, Y: 0}, {X: 1.5, Y: -2}, {X: 3, Y: 4.25}}

	for _, name := range []string{"json", "yaml"} {
		t.Run(name, func(t *testing.T) {
			c, err := ForFormat(name)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, c.ExportPointSet(points, &buf))

			got, err := c.ParsePointSet(&buf)
			require.NoError(t, err)
			assert.Equal(t, points, got)
		})
	}
}

func TestJSONCodec_ParsePointSet(t *testing.T) {
	c := NewJSONCodec()

	got, err := c.ParsePointSet(strings.NewReader(`{"points": [[0, 0], [1, 0], [0, 1]]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.PointSet{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, got)

	_, err = c.ParsePointSet(strings.NewReader(`{"pts": []}`))
	assert.Error(t, err)

	_, err = c.ParsePointSet(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestYAMLCodec_ParsePointSet(t *testing.T) {
	c := NewYAMLCodec()

	got, err := c.ParsePointSet(strings.NewReader("points:\n  - [0, 0]\n  - [2, 0]\n  - [1, 2]\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.PointSet{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 2}}, got)

	_, err = c.ParsePointSet(strings.NewReader("vertices: []\n"))
	assert.Error(t, err)
}

func TestJSONCodec_ExportMesh(t *testing.T) {
	m, err := NewMesh(domain.Triangulation{tri(0, 0, 1, 0, 0, 1)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().ExportMesh(m, &buf))

	want := `{
  "vertices": [
    [
      0,
      0
    ],
    [
      1,
      0
    ],
    [
      0,
      1
    ]
  ],
  "triangles": [
    [
      0,
      1,
      2
    ]
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestYAMLCodec_ExportMesh(t *testing.T) {
	m, err := NewMesh(domain.Triangulation{tri(0, 0, 1, 0, 0, 1)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().ExportMesh(m, &buf))

	out := buf.String()
	assert.Contains(t, out, "vertices:")
	assert.Contains(t, out, "triangles:")
}
