package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"triangulator/internal/codec"
	"triangulator/internal/domain"
	"triangulator/internal/service"
)

// PointSetHandler manages stored point sets
type PointSetHandler struct {
	svc          *service.PointSetService
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewPointSetHandler creates a new point set handler
func NewPointSetHandler(svc *service.PointSetService) *PointSetHandler {
	return &PointSetHandler{svc: svc, logger: slog.Default()}
}

// SetMaxBodyBytes limits POST bodies. Zero means unlimited.
func (h *PointSetHandler) SetMaxBodyBytes(n int64) {
	h.maxBodyBytes = n
}

// SetLogger replaces the default logger
func (h *PointSetHandler) SetLogger(l *slog.Logger) {
	h.logger = l
}

// List returns metadata for every stored point set
func (h *PointSetHandler) List(w http.ResponseWriter, r *http.Request) {
	sets, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list point sets", "error", err)
		writeError(w, CodeInternal, "failed to list point sets", http.StatusInternalServerError)
		return
	}
	if sets == nil {
		sets = []*domain.StoredPointSet{}
	}
	writeJSON(w, sets, http.StatusOK)
}

// Create stores the point set in the request body. The body is binary
// unless Content-Type names JSON or YAML; ?name= labels the set.
func (h *PointSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	points, err := readPointSet(w, r, h.maxBodyBytes)
	if err != nil {
		writePointSetError(w, err)
		return
	}

	stored, err := h.svc.Create(r.Context(), r.URL.Query().Get("name"), points)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPointSet) {
			writeError(w, CodeInvalidPointSet, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create point set", "error", err)
		writeError(w, CodeInternal, "failed to create point set", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", "/pointsets/"+stored.ID)
	writeJSON(w, stored, http.StatusCreated)
}

// Get returns a stored point set as wire bytes, or as JSON/YAML with
// ?format=
func (h *PointSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		writeError(w, CodeInvalidID, "point set id is empty or invalid", http.StatusBadRequest)
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	var c codec.TextCodec
	if format != "" && format != "binary" {
		var err error
		if c, err = codec.ForFormat(format); err != nil {
			writeError(w, CodeBadRequest, err.Error(), http.StatusBadRequest)
			return
		}
	}

	stored, points, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPointSetNotFound) {
			writeError(w, CodeNotFound, "point set "+id+" not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get point set", "id", id, "error", err)
		writeError(w, CodeInternal, "failed to get point set", http.StatusInternalServerError)
		return
	}

	if c == nil {
		writeBinary(w, stored.Data)
		return
	}

	var buf bytes.Buffer
	if err := c.ExportPointSet(points, &buf); err != nil {
		writeError(w, CodeEncodingFailed, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", textContentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Delete removes a stored point set
func (h *PointSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrPointSetNotFound) {
			writeError(w, CodeNotFound, "point set "+id+" not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete point set", "id", id, "error", err)
		writeError(w, CodeInternal, "failed to delete point set", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
