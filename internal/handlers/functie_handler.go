package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FunctieService is the interface that wraps methods for Functies business logic.
type FunctieService interface {
	// Method List retrieves all functies matching the filter, keyed by their ID.
	List(ctx context.Context, filter models.FunctieFilter) (map[string]models.Functie, error)
	// Method Get retrieves a single functie.
	//
	// If no functie has such ID, models.ErrNotFound is returned.
	Get(ctx context.Context, id int64) (*models.Functie, error)
	// Method Create validates the submitted fields and stores a new functie.
	//
	// "data" is the decoded request body. A missing "titel" yields a *validation.Error.
	Create(ctx context.Context, data map[string]any) (int64, error)
	// Method Update validates the submitted fields, including "id", and overwrites the ones provided.
	//
	// If no functie has such ID, models.ErrNotFound is returned.
	Update(ctx context.Context, data map[string]any) error
	// Method Delete removes the functie identified by "rawID". A missing functie is not an error.
	Delete(ctx context.Context, rawID any) error
}

// FunctieHandler handles HTTP requests for functies
type FunctieHandler struct {
	BaseHandler
	service FunctieService
}

// NewFunctieHandler creates a new functie handler
func NewFunctieHandler(svc FunctieService, logger *zap.Logger) *FunctieHandler {
	return &FunctieHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all functie handler routes.
// "writeGuard" wraps the mutating routes; nil leaves them open.
func (h *FunctieHandler) RegisterRoutes(r chi.Router, writeGuard func(http.Handler) http.Handler) {
	if writeGuard == nil {
		writeGuard = passthrough
	}

	r.Route("/functies", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(writeGuard)
			r.Post("/", h.Create)
			r.Put("/", h.Update)
			r.Put("/{id}", h.Update)
			r.Delete("/", h.Delete)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /functies
// @Summary List functies
// @Description Get all functies keyed by their ID, optionally filtered by education level and location
// @Tags functies
// @Produce json
// @Param opleiding query string false "Exact education level"
// @Param locatie query string false "Exact location name"
// @Success 200 {object} map[string]models.Functie
// @Failure 500 {object} ErrorResponse
// @Router /functies [get]
func (h *FunctieHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.FunctieFilter{
		Opleiding: strings.TrimSpace(r.URL.Query().Get("opleiding")),
		Locatie:   strings.TrimSpace(r.URL.Query().Get("locatie")),
	}

	functies, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondServiceError(w, err, "get functies")
		return
	}

	h.respondJSON(w, http.StatusOK, functies)
}

// Get handles GET /functies/{id}
// @Summary Get a functie
// @Description Get a single functie by its ID
// @Tags functies
// @Produce json
// @Param id path int true "Functie ID"
// @Success 200 {object} models.Functie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functies/{id} [get]
func (h *FunctieHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	functie, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "get functie")
		return
	}

	h.respondJSON(w, http.StatusOK, functie)
}

// Create handles POST /functies
// @Summary Create a functie
// @Description Create a functie. "titel" is required.
// @Tags functies
// @Accept json
// @Produce json
// @Param request body models.Functie true "Functie fields"
// @Success 200 {object} CreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functies [post]
func (h *FunctieHandler) Create(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), data)
	if err != nil {
		h.respondServiceError(w, err, "create functie")
		return
	}

	h.respondJSON(w, http.StatusOK, CreatedResponse{Success: true, ID: id})
}

// Update handles PUT /functies and PUT /functies/{id}
// @Summary Update a functie
// @Description Overwrite the provided fields of a functie. "id" and "titel" are required; the id is taken from the path, the query string or the body, in that order.
// @Tags functies
// @Accept json
// @Produce json
// @Param id path int false "Functie ID"
// @Param request body models.Functie true "Functie fields"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functies [put]
// @Router /functies/{id} [put]
func (h *FunctieHandler) Update(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}
	data["id"] = resolveID(r, data)

	if err := h.service.Update(r.Context(), data); err != nil {
		h.respondServiceError(w, err, "update functie")
		return
	}

	h.respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "functie updated"})
}

// Delete handles DELETE /functies, DELETE /functies?id= and DELETE /functies/{id}
// @Summary Delete a functie
// @Description Delete a functie. Pins linked to it are kept with their functie reference cleared. The id is taken from the path, the query string or the body, in that order.
// @Tags functies
// @Produce json
// @Param id path int false "Functie ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /functies [delete]
// @Router /functies/{id} [delete]
func (h *FunctieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	data, ok := h.decodeBody(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), resolveID(r, data)); err != nil {
		h.respondServiceError(w, err, "delete functie")
		return
	}

	h.respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "functie deleted"})
}
