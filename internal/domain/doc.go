// Package domain defines the core value types for the triangulation service.
//
// This package contains the planar geometry entities exchanged between the
// codec, the Delaunay engine and the HTTP layer.
//
// # Core Types
//
// Point is an (x, y) pair of float64 coordinates. Points compare with exact
// equality; no tolerance is applied when detecting duplicates.
//
// PointSet is an ordered sequence of points. Order is input order and is
// preserved through validation and index assignment.
//
// Triangle is a triple of points taken by value from a PointSet, and
// Triangulation is the ordered list of triangles the engine produces.
//
// Edge is an oriented pair of vertex indices used by the incremental
// construction. Its Key is orientation independent.
//
// # Storage
//
// StoredPointSet describes a point set persisted by the repository,
// carrying the encoded wire bytes alongside bookkeeping metadata.
//
// # Design Principles
//
// - Immutable value objects
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
package domain
