package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"triangulator/internal/codec"
	"triangulator/internal/domain"
	"triangulator/internal/repository"
	"triangulator/internal/telemetry"
)

var (
	// ErrPointSetNotFound is returned for unknown stored point set ids
	ErrPointSetNotFound = errors.New("point set not found")
	// ErrInvalidPointSet is returned for point sets that cannot be stored
	ErrInvalidPointSet = errors.New("invalid point set")
)

// NamedPointSet is a point set with the id and name it is stored under
type NamedPointSet struct {
	ID     string
	Name   string
	Points domain.PointSet
}

// ImportResult summarizes a bulk import
type ImportResult struct {
	Upserted int `json:"upserted"`
	Total    int `json:"total"`
}

// PointSetService manages point sets in the local store
type PointSetService struct {
	repo     repository.PointSetRepository
	eventBus *EventBus
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// NewPointSetService creates a new point set service. metrics may be nil.
func NewPointSetService(repo repository.PointSetRepository, eventBus *EventBus, metrics *telemetry.Metrics) *PointSetService {
	return &PointSetService{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
		logger:   slog.Default(),
	}
}

// SetLogger replaces the default logger
func (s *PointSetService) SetLogger(l *slog.Logger) {
	s.logger = l
}

// Create stores points under a fresh id
func (s *PointSetService) Create(ctx context.Context, name string, points domain.PointSet) (*domain.StoredPointSet, error) {
	stored, err := s.newStored(uuid.NewString(), name, points)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, err
	}

	s.eventBus.Publish(Event{
		Type:    EventPointSetCreated,
		Payload: map[string]any{"pointset_id": stored.ID, "points": stored.PointCount},
	})
	s.refreshCount(ctx)

	return stored, nil
}

// Get returns a stored point set and its decoded points
func (s *PointSetService) Get(ctx context.Context, id string) (*domain.StoredPointSet, domain.PointSet, error) {
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if stored == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrPointSetNotFound, id)
	}

	points, err := codec.DecodePointSet(stored.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode stored point set %s: %w", id, err)
	}
	return stored, points, nil
}

// List returns stored point sets without their data
func (s *PointSetService) List(ctx context.Context) ([]*domain.StoredPointSet, error) {
	return s.repo.List(ctx)
}

// Delete removes a stored point set
func (s *PointSetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPointSetNotFound, id)
		}
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventPointSetDeleted,
		Payload: map[string]string{"pointset_id": id},
	})
	s.refreshCount(ctx)

	return nil
}

// Import upserts every set and publishes a single reload event
func (s *PointSetService) Import(ctx context.Context, sets []NamedPointSet) (*ImportResult, error) {
	result := &ImportResult{}

	for _, set := range sets {
		stored, err := s.newStored(set.ID, set.Name, set.Points)
		if err != nil {
			return result, fmt.Errorf("point set %q: %w", set.ID, err)
		}
		if err := s.repo.Upsert(ctx, stored); err != nil {
			return result, fmt.Errorf("point set %q: %w", set.ID, err)
		}
		result.Upserted++
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return result, err
	}
	result.Total = len(all)
	if s.metrics != nil {
		s.metrics.SetPointSetsStored(result.Total)
	}

	s.logger.Info("point sets imported", "upserted", result.Upserted, "total", result.Total)
	s.eventBus.Publish(Event{
		Type:    EventPointSetsReloaded,
		Payload: result,
	})

	return result, nil
}

func (s *PointSetService) newStored(id, name string, points domain.PointSet) (*domain.StoredPointSet, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidPointSet)
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: point %d has a non-finite coordinate", ErrInvalidPointSet, i)
		}
	}

	data, err := codec.EncodePointSet(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPointSet, err)
	}
	return domain.NewStoredPointSet(id, name, data, len(points)), nil
}

func (s *PointSetService) refreshCount(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to count point sets", "error", err)
		return
	}
	s.metrics.SetPointSetsStored(len(all))
}
