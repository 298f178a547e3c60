// Package provider fetches encoded point sets by id.
//
// A Provider hides where point sets live: the local sqlite store or a
// remote point set manager reached over HTTP. Callers only see the
// encoded PointSet bytes and two failure classes, ErrNotFound for ids
// with no data and ErrUnavailable for everything that prevented an
// answer. Retrying transient failures is the provider's job.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"triangulator/internal/repository"
)

var (
	// ErrNotFound means the source answered and has no point set for the id
	ErrNotFound = errors.New("point set not found")
	// ErrUnavailable means the source could not be reached or failed
	ErrUnavailable = errors.New("point set source unavailable")
)

// Provider returns the encoded PointSet bytes for an id
type Provider interface {
	GetPointSet(ctx context.Context, id string) ([]byte, error)
}

// StoreProvider serves point sets from a repository
type StoreProvider struct {
	repo repository.PointSetRepository
}

// NewStoreProvider creates a provider backed by repo
func NewStoreProvider(repo repository.PointSetRepository) *StoreProvider {
	return &StoreProvider{repo: repo}
}

// GetPointSet implements Provider
func (p *StoreProvider) GetPointSet(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	data, err := p.repo.GetData(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, nil
}
