package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"triangulator/internal/codec"
	"triangulator/internal/delaunay"
	"triangulator/internal/domain"
	"triangulator/internal/provider"
	"triangulator/internal/telemetry"
)

// Stage names a step of the triangulation pipeline
type Stage string

const (
	StageFetch       Stage = "fetch"
	StageDecode      Stage = "decode"
	StageTriangulate Stage = "triangulate"
	StageEncode      Stage = "encode"
)

var (
	// ErrInvalidID is returned for blank point set ids
	ErrInvalidID = errors.New("invalid point set id")
	// ErrNoProvider is returned when the service has no point set source
	ErrNoProvider = fmt.Errorf("%w: no provider configured", provider.ErrUnavailable)
)

// StageError records which pipeline stage failed
type StageError struct {
	Stage Stage
	ID    string
	Err   error
}

func (e *StageError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.ID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful triangulation
type Result struct {
	ID        string
	Points    domain.PointSet
	Triangles domain.Triangulation
	Mesh      *codec.Mesh
	Encoded   []byte
	Duration  time.Duration // Engine time only
}

// TriangulationService runs fetch, decode, triangulate and encode for a
// point set id
type TriangulationService struct {
	provider provider.Provider
	engine   delaunay.Options
	eventBus *EventBus
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// Option configures a TriangulationService
type Option func(*TriangulationService)

// WithEngineOptions sets the Delaunay engine options
func WithEngineOptions(opts delaunay.Options) Option {
	return func(s *TriangulationService) { s.engine = opts }
}

// WithEventBus publishes completion and failure events to bus
func WithEventBus(bus *EventBus) Option {
	return func(s *TriangulationService) { s.eventBus = bus }
}

// WithMetrics records pipeline metrics
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *TriangulationService) { s.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *TriangulationService) { s.logger = l }
}

// NewTriangulationService creates a service reading from p. A nil p makes
// every Triangulate call fail in the fetch stage with ErrNoProvider.
func NewTriangulationService(p provider.Provider, opts ...Option) *TriangulationService {
	s := &TriangulationService{
		provider: p,
		tracer:   telemetry.Tracer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Triangulate fetches the point set id and returns its encoded mesh.
// Failures are *StageError.
func (s *TriangulationService) Triangulate(ctx context.Context, id string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "triangulator.Triangulate",
		trace.WithAttributes(attribute.String("pointset.id", id)))
	defer span.End()

	res, err := s.run(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("pointset.points", len(res.Points)),
		attribute.Int("mesh.triangles", len(res.Triangles)),
	)
	return res, nil
}

func (s *TriangulationService) run(ctx context.Context, id string) (*Result, error) {
	if strings.TrimSpace(id) == "" {
		return nil, s.fail(StageFetch, id, ErrInvalidID)
	}
	if s.provider == nil {
		return nil, s.fail(StageFetch, id, ErrNoProvider)
	}

	data, err := s.fetch(ctx, id)
	if err != nil {
		return nil, s.fail(StageFetch, id, err)
	}

	points, err := codec.DecodePointSet(data)
	if err != nil {
		return nil, s.fail(StageDecode, id, err)
	}

	return s.triangulate(ctx, id, points)
}

// TriangulatePoints runs the triangulate and encode stages on points
// already in memory
func (s *TriangulationService) TriangulatePoints(ctx context.Context, points domain.PointSet) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "triangulator.TriangulatePoints",
		trace.WithAttributes(attribute.Int("pointset.points", len(points))))
	defer span.End()

	res, err := s.triangulate(ctx, "", points)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res, nil
}

func (s *TriangulationService) fetch(ctx context.Context, id string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "triangulator.fetch")
	defer span.End()

	data, err := s.provider.GetPointSet(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", provider.ErrNotFound, id)
	}
	return data, nil
}

func (s *TriangulationService) triangulate(ctx context.Context, id string, points domain.PointSet) (*Result, error) {
	_, span := s.tracer.Start(ctx, "triangulator.engine",
		trace.WithAttributes(attribute.Int("pointset.points", len(points))))
	start := time.Now()
	triangles, err := delaunay.TriangulateWithOptions(points, s.engine)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, s.fail(StageTriangulate, id, err)
	}
	span.End()

	mesh, err := codec.NewMesh(triangles)
	if err != nil {
		return nil, s.fail(StageEncode, id, err)
	}
	encoded, err := mesh.MarshalBinary()
	if err != nil {
		return nil, s.fail(StageEncode, id, err)
	}

	if s.metrics != nil {
		s.metrics.RecordTriangulation(len(points), len(triangles), elapsed)
		s.metrics.RecordRequest(string(StageEncode), telemetry.OutcomeOK)
	}
	s.logger.Debug("triangulation completed",
		"id", id, "points", len(points), "triangles", len(triangles), "duration", elapsed)
	s.eventBus.Publish(Event{
		Type: EventTriangulationCompleted,
		Payload: map[string]any{
			"pointset_id": id,
			"points":      len(points),
			"triangles":   len(triangles),
			"duration_ms": float64(elapsed.Microseconds()) / 1000,
		},
	})

	return &Result{
		ID:        id,
		Points:    points,
		Triangles: triangles,
		Mesh:      mesh,
		Encoded:   encoded,
		Duration:  elapsed,
	}, nil
}

// fail wraps err in a StageError and reports it
func (s *TriangulationService) fail(stage Stage, id string, err error) *StageError {
	if s.metrics != nil {
		s.metrics.RecordRequest(string(stage), telemetry.OutcomeError)
	}
	s.logger.Warn("triangulation failed", "stage", stage, "id", id, "error", err)
	s.eventBus.Publish(Event{
		Type: EventTriangulationFailed,
		Payload: map[string]string{
			"pointset_id": id,
			"stage":       string(stage),
			"error":       err.Error(),
		},
	})
	return &StageError{Stage: stage, ID: id, Err: err}
}
