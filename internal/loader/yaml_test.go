package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triangulator/internal/domain"
	"triangulator/internal/repository/sqlite"
	"triangulator/internal/service"
	"triangulator/internal/telemetry"
)

const fixtures = `
version: "1"
pointsets:
  square:
    name: unit square
    points:
      - [0, 0]
      - [1, 0]
      - [1, 1]
      - [0, 1]
  triangle:
    points: [[0, 0], [4, 0], [0, 3]]
`

func TestParseYAML(t *testing.T) {
	sets, err := ParseYAML([]byte(fixtures))
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "square", sets[0].ID)
	assert.Equal(t, "unit square", sets[0].Name)
	assert.Len(t, sets[0].Points, 4)

	assert.Equal(t, "triangle", sets[1].ID)
	assert.Equal(t, "triangle", sets[1].Name, "name defaults to id")
	assert.Equal(t, domain.PointSet{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, sets[1].Points)
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "pointsets: [unclosed"},
		{"three coordinates", "pointsets:\n  a:\n    points: [[1, 2, 3]]\n"},
		{"one coordinate", "pointsets:\n  a:\n    points: [[1]]\n"},
		{"non numeric", "pointsets:\n  a:\n    points: [[x, 1]]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	in := []service.NamedPointSet{
		{ID: "b", Name: "second", Points: domain.PointSet{{X: 1.5, Y: -2}}},
		{ID: "a", Name: "first", Points: domain.PointSet{}},
	}
	data, err := ExportYAML(in)
	require.NoError(t, err)

	out, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Empty(t, out[0].Points)
	assert.Equal(t, in[0], out[1])
}

func newLoader(t *testing.T, path string) (*Loader, *service.PointSetService, *telemetry.Metrics) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	metrics := telemetry.NewMetrics()
	svc := service.NewPointSetService(repo, nil, metrics)
	return New(path, svc, metrics, nil), svc, metrics
}

func assertReloads(t *testing.T, metrics *telemetry.Metrics, sample string) {
	t.Helper()
	expected := "# HELP triangulator_fixture_reloads_total Fixture file loads by outcome\n" +
		"# TYPE triangulator_fixture_reloads_total counter\n" + sample + "\n"
	err := testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "triangulator_fixture_reloads_total")
	assert.NoError(t, err)
}

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtures), 0o644))

	l, svc, metrics := newLoader(t, path)
	assert.Equal(t, path, l.Path())

	result, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 2, result.Total)

	_, points, err := svc.Get(context.Background(), "square")
	require.NoError(t, err)
	assert.Len(t, points, 4)

	// loading again upserts rather than duplicating
	result, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	assertReloads(t, metrics, `triangulator_fixture_reloads_total{outcome="ok"} 2`)
}

func TestLoaderLoadMissingFile(t *testing.T) {
	l, _, metrics := newLoader(t, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assertReloads(t, metrics, `triangulator_fixture_reloads_total{outcome="error"} 1`)

	// Reload only logs
	l.Reload(context.Background())
}
