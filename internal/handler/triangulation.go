package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"triangulator/internal/codec"
	"triangulator/internal/provider"
	"triangulator/internal/render"
	"triangulator/internal/service"
)

// TriangulationHandler serves triangulations of stored or posted point sets
type TriangulationHandler struct {
	svc          *service.TriangulationService
	maxBodyBytes int64
	renderOpts   render.Options
	logger       *slog.Logger
}

// NewTriangulationHandler creates a new triangulation handler
func NewTriangulationHandler(svc *service.TriangulationService) *TriangulationHandler {
	return &TriangulationHandler{
		svc:        svc,
		renderOpts: render.DefaultOptions(),
		logger:     slog.Default(),
	}
}

// SetMaxBodyBytes limits POST bodies. Zero means unlimited.
func (h *TriangulationHandler) SetMaxBodyBytes(n int64) {
	h.maxBodyBytes = n
}

// SetRenderOptions sets the options used for ?format=png
func (h *TriangulationHandler) SetRenderOptions(opts render.Options) {
	h.renderOpts = opts
}

// SetLogger replaces the default logger
func (h *TriangulationHandler) SetLogger(l *slog.Logger) {
	h.logger = l
}

// Get triangulates the point set named in the path
func (h *TriangulationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, CodeInvalidID, "point set id is empty or invalid", http.StatusBadRequest)
		return
	}

	format, ok := h.format(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Triangulate(r.Context(), id)
	if err != nil {
		h.writeStageError(w, err)
		return
	}
	h.writeResult(w, res, format)
}

// MissingID answers requests for the collection path without an id
func (h *TriangulationHandler) MissingID(w http.ResponseWriter, r *http.Request) {
	writeError(w, CodeBadRequest, "point set id is required in the URL", http.StatusBadRequest)
}

// Post triangulates the point set in the request body
func (h *TriangulationHandler) Post(w http.ResponseWriter, r *http.Request) {
	format, ok := h.format(w, r)
	if !ok {
		return
	}

	points, err := readPointSet(w, r, h.maxBodyBytes)
	if err != nil {
		writePointSetError(w, err)
		return
	}

	res, err := h.svc.TriangulatePoints(r.Context(), points)
	if err != nil {
		h.writeStageError(w, err)
		return
	}
	h.writeResult(w, res, format)
}

// format validates the ?format query parameter. "" selects binary.
func (h *TriangulationHandler) format(w http.ResponseWriter, r *http.Request) (string, bool) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "binary", "png":
		return format, true
	}
	if _, err := codec.ForFormat(format); err != nil {
		writeError(w, CodeBadRequest, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return format, true
}

func (h *TriangulationHandler) writeResult(w http.ResponseWriter, res *service.Result, format string) {
	switch format {
	case "", "binary":
		writeBinary(w, res.Encoded)

	case "png":
		var buf bytes.Buffer
		if err := render.PNG(&buf, res.Triangles, h.renderOpts); err != nil {
			writeError(w, CodeEncodingFailed, fmt.Sprintf("failed to render mesh: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypePNG)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())

	default:
		c, err := codec.ForFormat(format)
		if err != nil {
			writeError(w, CodeBadRequest, err.Error(), http.StatusBadRequest)
			return
		}
		var buf bytes.Buffer
		if err := c.ExportMesh(res.Mesh, &buf); err != nil {
			writeError(w, CodeEncodingFailed, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", textContentType(format))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func (h *TriangulationHandler) writeStageError(w http.ResponseWriter, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("triangulation request failed", "code", code, "error", err)
	}
	writeError(w, code, message, status)
}

// classify maps a pipeline error to an HTTP status and error code
func classify(err error) (int, string, string) {
	var stageErr *service.StageError
	if !errors.As(err, &stageErr) {
		return http.StatusInternalServerError, CodeInternal, err.Error()
	}

	switch stageErr.Stage {
	case service.StageFetch:
		switch {
		case errors.Is(err, service.ErrInvalidID):
			return http.StatusBadRequest, CodeInvalidID, "point set id is empty or invalid"
		case errors.Is(err, provider.ErrNotFound):
			return http.StatusNotFound, CodeNotFound, fmt.Sprintf("point set %s not found", stageErr.ID)
		default:
			return http.StatusServiceUnavailable, CodeServiceUnavailable,
				fmt.Sprintf("point set source unavailable: %v", stageErr.Err)
		}
	case service.StageDecode:
		return http.StatusBadRequest, CodeInvalidPointSet, fmt.Sprintf("failed to decode point set: %v", stageErr.Err)
	case service.StageTriangulate:
		return http.StatusInternalServerError, CodeTriangulationFailed, fmt.Sprintf("triangulation failed: %v", stageErr.Err)
	case service.StageEncode:
		return http.StatusInternalServerError, CodeEncodingFailed, fmt.Sprintf("failed to encode result: %v", stageErr.Err)
	default:
		return http.StatusInternalServerError, CodeInternal, err.Error()
	}
}
