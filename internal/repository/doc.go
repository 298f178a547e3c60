// Package repository defines the data access interfaces for stored
// point sets.
//
// This package provides the repository abstraction layer for persisting
// and retrieving point sets in their binary wire encoding. The actual
// implementation is in the sqlite subpackage.
//
// # Repository Interface
//
// PointSetRepository covers creation, idempotent upserts used by the
// fixtures loader, lookups by id, listing and deletion. Lookups of a
// missing id return (nil, nil); callers decide whether absence is an
// error. Create and Delete report ErrConflict and ErrNotFound.
//
// # SQLite Implementation
//
// The sqlite implementation stores each point set as a BLOB alongside
// its name, point count and timestamps, using WAL mode for concurrent
// readers. The schema is created on open.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
