package handler

import (
	"log/slog"
	"net/http"

	"triangulator/internal/telemetry"
)

// Routes holds the handlers mounted by NewRouter. Nil fields leave their
// routes unregistered.
type Routes struct {
	Triangulation *TriangulationHandler
	PointSets     *PointSetHandler
	Events        http.Handler
	Metrics       *telemetry.Metrics
	Logger        *slog.Logger
	Tracing       bool
}

// NewRouter builds the service mux wrapped in the middleware stack
func NewRouter(rt Routes) http.Handler {
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", Health)

	if h := rt.Triangulation; h != nil {
		mux.HandleFunc("GET /triangulation/{id}", h.Get)
		mux.HandleFunc("GET /triangulation/{$}", h.MissingID)
		mux.HandleFunc("POST /triangulation", h.Post)
	}

	if h := rt.PointSets; h != nil {
		mux.HandleFunc("GET /pointsets", h.List)
		mux.HandleFunc("POST /pointsets", h.Create)
		mux.HandleFunc("GET /pointsets/{id}", h.Get)
		mux.HandleFunc("DELETE /pointsets/{id}", h.Delete)
		// PointSetManager-compatible path read by HTTP providers
		mux.HandleFunc("GET /pointset/{id}", h.Get)
	}

	if rt.Events != nil {
		mux.Handle("GET /events", rt.Events)
	}

	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics.Handler())
	}

	middleware := []Middleware{
		Recover(logger),
		RequestID,
		Logger(logger),
		CORS,
	}
	if rt.Tracing {
		middleware = append(middleware, Tracing("triangulator"))
	}
	middleware = append(middleware, Metrics(rt.Metrics))

	return Chain(mux, middleware...)
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
