package domain

import "time"

// StoredPointSet is a point set persisted by the repository.
// Data holds the encoded PointSet wire bytes.
type StoredPointSet struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	PointCount int       `json:"point_count"`
	Data       []byte    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewStoredPointSet creates a stored point set record
func NewStoredPointSet(id, name string, data []byte, count int) *StoredPointSet {
	now := time.Now().UTC()
	return &StoredPointSet{
		ID:         id,
		Name:       name,
		PointCount: count,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
