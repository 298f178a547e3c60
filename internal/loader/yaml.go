// Package loader reads point set fixtures from YAML files and imports them
// into the store.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"triangulator/internal/domain"
	"triangulator/internal/service"
	"triangulator/internal/telemetry"
)

// FixturesYAML represents the fixtures file structure
type FixturesYAML struct {
	Version   string                   `yaml:"version,omitempty"`
	PointSets map[string]*PointSetYAML `yaml:"pointsets"`
}

// PointSetYAML represents one point set in YAML format
type PointSetYAML struct {
	Name   string      `yaml:"name,omitempty"`
	Points [][]float64 `yaml:"points"`
}

// LoadYAML reads fixtures from a file
func LoadYAML(path string) ([]service.NamedPointSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML parses fixtures. Sets are returned sorted by id.
func ParseYAML(data []byte) ([]service.NamedPointSet, error) {
	var doc FixturesYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ids := make([]string, 0, len(doc.PointSets))
	for id := range doc.PointSets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sets := make([]service.NamedPointSet, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("point set with empty id")
		}
		y := doc.PointSets[id]
		if y == nil {
			y = &PointSetYAML{}
		}

		points := make(domain.PointSet, 0, len(y.Points))
		for i, xy := range y.Points {
			if len(xy) != 2 {
				return nil, fmt.Errorf("point set %q: point %d has %d coordinates, want 2", id, i, len(xy))
			}
			points = append(points, domain.NewPoint(xy[0], xy[1]))
		}

		name := y.Name
		if name == "" {
			name = id
		}
		sets = append(sets, service.NamedPointSet{ID: id, Name: name, Points: points})
	}

	return sets, nil
}

// ExportYAML renders sets in the fixtures format
func ExportYAML(sets []service.NamedPointSet) ([]byte, error) {
	doc := FixturesYAML{
		Version:   "1",
		PointSets: make(map[string]*PointSetYAML, len(sets)),
	}
	for _, set := range sets {
		y := &PointSetYAML{Name: set.Name, Points: make([][]float64, 0, len(set.Points))}
		for _, p := range set.Points {
			y.Points = append(y.Points, []float64{p.X, p.Y})
		}
		doc.PointSets[set.ID] = y
	}
	return yaml.Marshal(&doc)
}

// Loader imports a fixtures file into the point set store
type Loader struct {
	path    string
	svc     *service.PointSetService
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a loader for path. metrics and logger may be nil.
func New(path string, svc *service.PointSetService, metrics *telemetry.Metrics, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{path: path, svc: svc, metrics: metrics, logger: logger}
}

// Path returns the fixtures file path
func (l *Loader) Path() string {
	return l.path
}

// Load reads the file and upserts every set it names
func (l *Loader) Load(ctx context.Context) (*service.ImportResult, error) {
	sets, err := LoadYAML(l.path)
	if err != nil {
		l.record(telemetry.OutcomeError)
		return nil, fmt.Errorf("load fixtures %s: %w", l.path, err)
	}

	result, err := l.svc.Import(ctx, sets)
	if err != nil {
		l.record(telemetry.OutcomeError)
		return nil, fmt.Errorf("import fixtures %s: %w", l.path, err)
	}

	l.record(telemetry.OutcomeOK)
	l.logger.Info("fixtures loaded", "path", l.path, "upserted", result.Upserted, "total", result.Total)
	return result, nil
}

// Reload is Load for use as a watcher callback; failures are logged
func (l *Loader) Reload(ctx context.Context) {
	if _, err := l.Load(ctx); err != nil {
		l.logger.Error("fixture reload failed", "error", err)
	}
}

func (l *Loader) record(outcome string) {
	if l.metrics != nil {
		l.metrics.RecordFixtureReload(outcome)
	}
}
