package repository

import (
	"context"
	"errors"

	"triangulator/internal/domain"
)

var (
	// ErrNotFound is returned by Delete when no point set has the id
	ErrNotFound = errors.New("point set not found")
	// ErrConflict is returned by Create when the id is taken
	ErrConflict = errors.New("point set already exists")
)

// PointSetRepository defines the interface for point set storage
type PointSetRepository interface {
	// Read operations. A missing id yields (nil, nil).
	Get(ctx context.Context, id string) (*domain.StoredPointSet, error)
	GetData(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]*domain.StoredPointSet, error)

	// Write operations
	Create(ctx context.Context, ps *domain.StoredPointSet) error
	Upsert(ctx context.Context, ps *domain.StoredPointSet) error
	Delete(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
