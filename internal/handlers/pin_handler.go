package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PinService is the interface that wraps methods for Pins business logic.
type PinService interface {
	// Method List retrieves all pins in store order. The result is never nil.
	List(ctx context.Context) ([]models.Pin, error)
	// Method Get retrieves a single pin.
	//
	// If no pin has such ID, models.ErrNotFound is returned.
	Get(ctx context.Context, id int64) (*models.Pin, error)
	// Method Create validates the submitted fields and stores a new pin.
	//
	// If the referenced functie does not exist, models.ErrInvalidReference is returned.
	Create(ctx context.Context, data map[string]any) (int64, error)
	// Method Delete removes the pin identified by "rawID". A missing pin is not an error.
	Delete(ctx context.Context, rawID any) error
}

// CreatePinBody describes the body accepted by POST /pins
type CreatePinBody struct {
	Lat         float64 `json:"lat" validate:"required"`
	Lng         float64 `json:"lng" validate:"required"`
	FunctionID  *int64  `json:"functionId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

// PinHandler handles HTTP requests for map pins
type PinHandler struct {
	BaseHandler
	service PinService
}

// NewPinHandler creates a new pin handler
func NewPinHandler(svc PinService, logger *zap.Logger) *PinHandler {
	return &PinHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all pin handler routes.
// "writeGuard" wraps the mutating routes; nil leaves them open.
func (h *PinHandler) RegisterRoutes(r chi.Router, writeGuard func(http.Handler) http.Handler) {
	if writeGuard == nil {
		writeGuard = passthrough
	}

	r.Route("/pins", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(writeGuard)
			r.Post("/", h.Create)
			r.Delete("/", h.Delete)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /pins
// @Summary List pins
// @Description Get all map pins
// @Tags pins
// @Produce json
// @Success 200 {array} models.Pin
// @Failure 500 {object} ErrorResponse
// @Router /pins [get]
func (h *PinHandler) List(w http.ResponseWriter, r *http.Request) {
	pins, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "get pins")
		return
	}

	h.respondJSON(w, http.StatusOK, pins)
}

// Get handles GET /pins/{id}
// @Summary Get a pin
// @Description Get a single map pin by its ID
// @Tags pins
// @Produce json
// @Param id path int true "Pin ID"
// @Success 200 {object} models.Pin
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pins/{id} [get]
func (h *PinHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	pin, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "get pin")
		return
	}

	h.respondJSON(w, http.StatusOK, pin)
}

// Create handles POST /pins
// @Summary Create a pin
// @Description Create a map pin. "lat" and "lng" are required; "functionId" (or "function_id") optionally links a functie.
// @Tags pins
// @Accept json
// @Produce json
// @Param request body CreatePinBody true "Pin fields"
// @Success 200 {object} CreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pins [post]
func (h *PinHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), data)
	if err != nil {
		h.respondServiceError(w, err, "create pin")
		return
	}

	h.respondJSON(w, http.StatusOK, CreatedResponse{Success: true, ID: id})
}

// Delete handles DELETE /pins/{id} and DELETE /pins?id=
// @Summary Delete a pin
// @Description Delete a map pin. Deleting a pin that does not exist succeeds.
// @Tags pins
// @Produce json
// @Param id path int true "Pin ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pins/{id} [delete]
// @Router /pins [delete]
func (h *PinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), resolveID(r, data)); err != nil {
		h.respondServiceError(w, err, "delete pin")
		return
	}

	h.respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "pin deleted"})
}
