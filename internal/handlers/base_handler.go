package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SuccessResponse is returned by mutations that carry no payload
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreatedResponse is returned by create operations
type CreatedResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// ErrorResponse is returned on every failure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// respondServiceError maps a service error to a status code and a safe message.
// Unexpected errors are logged and answered with a generic message.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, action string) {
	if ve, ok := validation.AsError(err); ok {
		h.respondError(w, http.StatusBadRequest, ve.Error())
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidReference):
		h.respondError(w, http.StatusBadRequest, "referenced functie does not exist")
	case errors.Is(err, models.ErrConflict):
		h.respondError(w, http.StatusConflict, "username already exists")
	case errors.Is(err, models.ErrUnauthorized):
		h.respondError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, models.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error("failed to "+action, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeBody reads a JSON object from the request body.
// An empty body yields an empty map; numbers are kept as json.Number.
func (h *BaseHandler) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	data := map[string]any{}
	if r.Body == nil {
		return data, true
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	err := dec.Decode(&data)
	if err == nil || errors.Is(err, io.EOF) {
		if data == nil {
			data = map[string]any{}
		}
		return data, true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	h.respondError(w, http.StatusBadRequest, "invalid request body")
	return nil, false
}

// resolveID picks the resource id from the path, then the query string, then the body
func resolveID(r *http.Request, body map[string]any) any {
	if id := strings.TrimSpace(chi.URLParam(r, "id")); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		return id
	}
	return body["id"]
}

// writeJSONStatus writes a bare error body for router-level failures
func writeJSONStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Message: message})
}

// NotFound answers requests for unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known routes requested with an unsupported verb
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, http.StatusMethodNotAllowed, "method not allowed")
}

// passthrough is used when no write guard is configured
func passthrough(next http.Handler) http.Handler {
	return next
}
