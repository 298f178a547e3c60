package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"triangulator/internal/codec"
	"triangulator/internal/domain"
)

// Error codes returned in ErrorResponse.Code
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeInvalidID           = "INVALID_ID"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidPointSet     = "INVALID_POINTSET"
	CodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	CodeTriangulationFailed = "TRIANGULATION_FAILED"
	CodeEncodingFailed      = "ENCODING_FAILED"
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeInternal            = "INTERNAL_ERROR"
)

const (
	contentTypeBinary = "application/octet-stream"
	contentTypeJSON   = "application/json"
	contentTypeYAML   = "application/x-yaml"
	contentTypePNG    = "image/png"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Code: code, Message: message}, statusCode)
}

func writeBinary(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", contentTypeBinary)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

// textContentType returns the response media type for a text format
func textContentType(format string) string {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return contentTypeYAML
	default:
		return contentTypeJSON
	}
}

// formatForContentType maps a request media type to a text codec name.
// Binary bodies return "".
func formatForContentType(header string) string {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	switch mediaType {
	case contentTypeJSON, "text/json":
		return "json"
	case contentTypeYAML, "application/yaml", "text/yaml", "text/x-yaml":
		return "yaml"
	default:
		return ""
	}
}

// errBodyTooLarge is returned by readPointSet when the body exceeds the limit
var errBodyTooLarge = errors.New("request body too large")

// readPointSet decodes a request body as a binary, JSON or YAML point set
// depending on its Content-Type
func readPointSet(w http.ResponseWriter, r *http.Request, maxBytes int64) (domain.PointSet, error) {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	var (
		points domain.PointSet
		err    error
	)
	if format := formatForContentType(r.Header.Get("Content-Type")); format != "" {
		var c codec.TextCodec
		if c, err = codec.ForFormat(format); err == nil {
			points, err = c.ParsePointSet(body)
		}
	} else {
		var data []byte
		if data, err = io.ReadAll(body); err == nil {
			points, err = codec.DecodePointSet(data)
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
	}
	return points, err
}

// writePointSetError replies to a readPointSet failure
func writePointSetError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, CodePayloadTooLarge, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	writeError(w, CodeInvalidPointSet, err.Error(), http.StatusBadRequest)
}
