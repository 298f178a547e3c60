// Package telemetry wires Prometheus metrics and OpenTelemetry tracing
// for the triangulator.
//
// Metrics live in a private registry exposed at /metrics; tracing is
// exported over OTLP gRPC only when an endpoint is configured, and is a
// no-op otherwise.
package telemetry
