package sqlite

import (
	"database/sql"
	"time"

	"triangulator/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Timestamps are stored as Unix nanoseconds in UTC
func timeToUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func unixToTime(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

// ============================================================================
// Point Set Row Scanner
// ============================================================================
//
// CRITICAL: Column order must match between:
// - pointSetColumns / pointSetSummaryColumns
// - scanArgs() return slice
// - All SELECT queries using those constants

const (
	pointSetSummaryColumns = `id, name, point_count, created_at, updated_at`
	pointSetColumns        = pointSetSummaryColumns + `, data`
)

// pointSetRow holds all columns from a point set query for scanning
type pointSetRow struct {
	ID         string
	Name       sql.NullString
	PointCount int
	CreatedAt  int64
	UpdatedAt  int64
	Data       []byte
}

// scanArgs returns pointers for sql.Scan(). withData selects
// pointSetColumns over pointSetSummaryColumns.
func (r *pointSetRow) scanArgs(withData bool) []interface{} {
	args := []interface{}{
		&r.ID,         // 1
		&r.Name,       // 2
		&r.PointCount, // 3
		&r.CreatedAt,  // 4
		&r.UpdatedAt,  // 5
	}
	if withData {
		args = append(args, &r.Data) // 6
	}
	return args
}

// toDomain converts the scanned row to a domain.StoredPointSet
func (r *pointSetRow) toDomain() *domain.StoredPointSet {
	return &domain.StoredPointSet{
		ID:         r.ID,
		Name:       nullToString(r.Name),
		PointCount: r.PointCount,
		Data:       r.Data,
		CreatedAt:  unixToTime(r.CreatedAt),
		UpdatedAt:  unixToTime(r.UpdatedAt),
	}
}

// pointSetInsertArgs returns values in insert column order:
// id, name, point_count, created_at, updated_at, data
func pointSetInsertArgs(ps *domain.StoredPointSet) []interface{} {
	return []interface{}{
		ps.ID,
		stringToNull(ps.Name),
		ps.PointCount,
		timeToUnix(ps.CreatedAt),
		timeToUnix(ps.UpdatedAt),
		ps.Data,
	}
}
