package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"triangulator/internal/domain"
	"triangulator/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.PointSetRepository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.PointSetRepository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pointsets (
		id TEXT PRIMARY KEY,
		name TEXT,
		point_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		data BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pointsets_created ON pointsets(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// stamp fills missing timestamps
func (r *Repository) stamp(ps *domain.StoredPointSet) {
	now := r.now()
	if ps.CreatedAt.IsZero() {
		ps.CreatedAt = now
	}
	if ps.UpdatedAt.IsZero() {
		ps.UpdatedAt = now
	}
}

// Get retrieves a point set with its data by ID
func (r *Repository) Get(ctx context.Context, id string) (*domain.StoredPointSet, error) {
	var row pointSetRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+pointSetColumns+`
		FROM pointsets WHERE id = ?
	`, id).Scan(row.scanArgs(true)...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query point set: %w", err)
	}

	return row.toDomain(), nil
}

// GetData retrieves only the encoded point set bytes
func (r *Repository) GetData(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM pointsets WHERE id = ?`, id).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query point set data: %w", err)
	}
	if data == nil {
		data = []byte{}
	}

	return data, nil
}

// List returns all point sets without their data, oldest first
func (r *Repository) List(ctx context.Context) ([]*domain.StoredPointSet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pointSetSummaryColumns+`
		FROM pointsets
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query point sets: %w", err)
	}
	defer rows.Close()

	pointSets := []*domain.StoredPointSet{}
	for rows.Next() {
		var row pointSetRow
		if err := rows.Scan(row.scanArgs(false)...); err != nil {
			return nil, fmt.Errorf("failed to scan point set: %w", err)
		}
		pointSets = append(pointSets, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point sets: %w", err)
	}

	return pointSets, nil
}

// Create inserts a new point set, failing with repository.ErrConflict
// if the id exists
func (r *Repository) Create(ctx context.Context, ps *domain.StoredPointSet) error {
	r.stamp(ps)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pointsets (id, name, point_count, created_at, updated_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, pointSetInsertArgs(ps)...)
	if err != nil {
		return fmt.Errorf("failed to insert point set: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read insert result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrConflict, ps.ID)
	}

	return nil
}

// Upsert inserts or replaces a point set, keeping the original created_at
func (r *Repository) Upsert(ctx context.Context, ps *domain.StoredPointSet) error {
	r.stamp(ps)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pointsets (id, name, point_count, created_at, updated_at, data)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			point_count = excluded.point_count,
			updated_at = excluded.updated_at,
			data = excluded.data
	`, pointSetInsertArgs(ps)...)
	if err != nil {
		return fmt.Errorf("failed to upsert point set: %w", err)
	}

	return nil
}

// Delete removes a point set, failing with repository.ErrNotFound if absent
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pointsets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete point set: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
