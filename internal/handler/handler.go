package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"krisik-bazar/internal/middleware"
	"krisik-bazar/internal/model"
	"krisik-bazar/internal/view"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	logger.Error().
		Str("request_id", requestID).
		Str("error", message).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message, RequestID: requestID})
}

// writeHTML renders doc as a complete HTML document. The document is rendered
// into a buffer first so a render failure can still produce a 500.
func writeHTML(w http.ResponseWriter, status int, doc *view.Node, logger zerolog.Logger) {
	var buf bytes.Buffer
	if err := view.RenderDocument(&buf, doc); err != nil {
		logger.Error().Err(err).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
