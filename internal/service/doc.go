// Package service implements business logic for the triangulator.
//
// This package provides service layers that coordinate between the HTTP
// handlers, the point set sources and the Delaunay engine, implementing
// validation, metrics and event publishing.
//
// # Services
//
// TriangulationService fetches an encoded point set from a provider,
// decodes it, triangulates it and encodes the resulting mesh. Every
// failure comes back as a *StageError naming the stage that failed
// (fetch, decode, triangulate or encode) and wrapping the underlying
// error, so callers can map failures with errors.Is and errors.As.
//
// PointSetService manages point sets held in the local store: creating
// them under generated ids, listing, deleting and bulk importing
// fixtures.
//
// # Event System
//
// Services publish events via EventBus for real-time updates to connected
// clients via Server-Sent Events (SSE). Publishing never blocks; slow
// subscribers miss events.
package service
