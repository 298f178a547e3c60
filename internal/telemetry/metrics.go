package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds all Prometheus metrics for the service
type Metrics struct {
	// Triangulation pipeline metrics
	requestsTotal *prometheus.CounterVec
	duration      prometheus.Histogram
	points        prometheus.Histogram
	triangles     prometheus.Histogram

	// Store metrics
	pointSetsStored prometheus.Gauge
	fixtureReloads  *prometheus.CounterVec

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics instance on a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	sizeBuckets := prometheus.ExponentialBuckets(3, 4, 10)

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triangulator_requests_total",
				Help: "Triangulation requests by the stage they ended in and outcome",
			},
			[]string{"stage", "outcome"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "triangulator_triangulation_duration_seconds",
				Help:    "Time spent in the triangulation engine",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),

		points: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "triangulator_points",
				Help:    "Points per triangulated point set",
				Buckets: sizeBuckets,
			},
		),

		triangles: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "triangulator_triangles",
				Help:    "Triangles per produced mesh",
				Buckets: sizeBuckets,
			},
		),

		pointSetsStored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "triangulator_pointsets_stored",
				Help: "Point sets currently held in the local store",
			},
		),

		fixtureReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triangulator_fixture_reloads_total",
				Help: "Fixture file loads by outcome",
			},
			[]string{"outcome"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triangulator_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "triangulator_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.requestsTotal,
		m.duration,
		m.points,
		m.triangles,
		m.pointSetsStored,
		m.fixtureReloads,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest counts a triangulation request that ended in stage
func (m *Metrics) RecordRequest(stage, outcome string) {
	m.requestsTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordTriangulation records a successful engine run
func (m *Metrics) RecordTriangulation(points, triangles int, d time.Duration) {
	m.points.Observe(float64(points))
	m.triangles.Observe(float64(triangles))
	m.duration.Observe(d.Seconds())
}

// SetPointSetsStored updates the stored point set gauge
func (m *Metrics) SetPointSetsStored(n int) {
	m.pointSetsStored.Set(float64(n))
}

// RecordFixtureReload counts a fixture file load
func (m *Metrics) RecordFixtureReload(outcome string) {
	m.fixtureReloads.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, statusCode string, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler returns the Prometheus metrics HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
