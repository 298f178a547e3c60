// Package handler implements the HTTP API of the triangulation service.
//
// # Endpoints
//
//	GET    /triangulation/{id}   mesh of a point set from the configured provider
//	POST   /triangulation        mesh of the point set in the request body
//	GET    /pointsets            stored point set metadata
//	POST   /pointsets            store a point set
//	GET    /pointsets/{id}       stored point set
//	DELETE /pointsets/{id}       remove a stored point set
//	GET    /pointset/{id}        same as GET /pointsets/{id}
//	GET    /events               server-sent events
//	GET    /metrics              Prometheus metrics
//	GET    /healthz              liveness
//
// Meshes and point sets are returned as binary wire bytes
// (application/octet-stream) unless ?format=json or ?format=yaml is given.
// Triangulations also accept ?format=png. Request bodies are binary unless
// Content-Type names JSON or YAML.
//
// # Errors
//
// Errors are returned as JSON {"code", "message"}. The code is one of the
// Code constants; the status follows the pipeline stage that failed.
package handler
