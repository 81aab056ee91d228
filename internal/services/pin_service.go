package services

import (
	"context"
	"fmt"

	"github.com/datarijksnoord/backend/internal/metrics"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"go.uber.org/zap"
)

// PinRepository is the interface that wraps methods for Pins table data access
type PinRepository interface {
	// Method GetAll retrieves all pins in store order.
	GetAll(ctx context.Context) ([]models.Pin, error)
	// Method GetByID retrieves a pin by its ID.
	//
	// If no pin has such ID, models.ErrNotFound is returned.
	GetByID(ctx context.Context, id int64) (*models.Pin, error)
	// Method Create inserts a pin and returns its ID.
	//
	// If the referenced functie does not exist, models.ErrInvalidReference is returned.
	Create(ctx context.Context, req *models.CreatePinRequest) (int64, error)
	// Method Delete removes a pin. Removing a missing pin is not an error.
	Delete(ctx context.Context, id int64) error
}

// pinLimits holds the range and length rules of the pins table
type pinLimits struct {
	Lat   float64 `json:"lat" validate:"latitude"`
	Lng   float64 `json:"lng" validate:"longitude"`
	Title string  `json:"title" validate:"max=100"`
	Link  *string `json:"link" validate:"omitempty,url,max=255"`
}

type pinService struct {
	repo   PinRepository
	logger *zap.Logger
}

// NewPinService creates a new pin service
func NewPinService(repo PinRepository, logger *zap.Logger) *pinService {
	return &pinService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all pins. The result is never nil.
func (s *pinService) List(ctx context.Context) ([]models.Pin, error) {
	pins, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pins: %w", err)
	}
	if pins == nil {
		pins = []models.Pin{}
	}
	return pins, nil
}

// Get returns a single pin
func (s *pinService) Get(ctx context.Context, id int64) (*models.Pin, error) {
	if id <= 0 {
		return nil, validation.Invalid("id", "id must be a positive integer")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the submitted fields and stores a new pin.
//
// "lat" and "lng" are required and numeric. The functie reference may be sent as
// "functionId" or "function_id"; an absent or empty value leaves the pin unlinked.
func (s *pinService) Create(ctx context.Context, data map[string]any) (int64, error) {
	if err := validation.Required(data, "lat", "lng"); err != nil {
		return 0, err
	}

	lat, latErr := validation.Number("lat", data["lat"])
	lng, lngErr := validation.Number("lng", data["lng"])

	rawFunctionID, ok := data["functionId"]
	if !ok {
		rawFunctionID = data["function_id"]
	}
	functionID, functionErr := validation.OptionalID("functionId", rawFunctionID)

	var (
		title    string
		titleErr error
	)
	if v, ok := data["title"]; ok && v != nil {
		title, titleErr = validation.String("title", v)
	}
	description, descriptionErr := validation.OptionalString("description", data["description"])
	link, linkErr := validation.OptionalString("link", data["link"])
	if link != nil && *link == "" {
		link = nil
	}

	if err := validation.Merge(latErr, lngErr, functionErr, titleErr, descriptionErr, linkErr); err != nil {
		return 0, err
	}
	if err := validation.Struct(pinLimits{Lat: lat, Lng: lng, Title: title, Link: link}); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &models.CreatePinRequest{
		Lat:         lat,
		Lng:         lng,
		Title:       title,
		Description: description,
		Link:        link,
		FunctionID:  functionID,
	})
	if err != nil {
		return 0, err
	}

	metrics.MutationsTotal.WithLabelValues("pin", "create").Inc()
	s.logger.Info("pin created", zap.Int64("id", id))
	return id, nil
}

// Delete removes the pin identified by rawID. Missing pins are not an error.
func (s *pinService) Delete(ctx context.Context, rawID any) error {
	if err := validation.Required(map[string]any{"id": rawID}, "id"); err != nil {
		return err
	}
	id, err := validation.ID("id", rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("pin", "delete").Inc()
	s.logger.Info("pin deleted", zap.Int64("id", id))
	return nil
}
