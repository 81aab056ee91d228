package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/datarijksnoord/backend/internal/metrics"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"go.uber.org/zap"
)

// FunctieRepository is the interface that wraps methods for Functies table data access
type FunctieRepository interface {
	// Method GetAll retrieves all functies matching the filter, ordered by ID.
	GetAll(ctx context.Context, filter models.FunctieFilter) ([]models.Functie, error)
	// Method GetByID retrieves a functie by its ID.
	//
	// If no functie has such ID, models.ErrNotFound is returned.
	GetByID(ctx context.Context, id int64) (*models.Functie, error)
	// Method Create inserts a functie with the given column values and returns its ID.
	Create(ctx context.Context, fields models.FunctieFields) (int64, error)
	// Method Update overwrites the given column values of a functie.
	//
	// If no functie has such ID, models.ErrNotFound is returned.
	Update(ctx context.Context, id int64, fields models.FunctieFields) error
	// Method Delete removes a functie. Removing a missing functie is not an error.
	Delete(ctx context.Context, id int64) error
}

// functieLimits holds the length and range rules of the functies table
type functieLimits struct {
	Titel          *string  `json:"titel" validate:"omitempty,max=100"`
	Opleiding      *string  `json:"opleiding" validate:"omitempty,max=50"`
	Cursus         *string  `json:"cursus" validate:"omitempty,max=100"`
	VervolgFunctie *string  `json:"vervolg_functie" validate:"omitempty,max=100"`
	Locatie        *string  `json:"locatie" validate:"omitempty,max=100"`
	Lat            *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng            *float64 `json:"lng" validate:"omitempty,longitude"`
}

type functieService struct {
	repo   FunctieRepository
	logger *zap.Logger
}

// NewFunctieService creates a new functie service
func NewFunctieService(repo FunctieRepository, logger *zap.Logger) *functieService {
	return &functieService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all functies matching the filter keyed by their ID
func (s *functieService) List(ctx context.Context, filter models.FunctieFilter) (map[string]models.Functie, error) {
	functies, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get functies: %w", err)
	}

	byID := make(map[string]models.Functie, len(functies))
	for _, f := range functies {
		byID[strconv.FormatInt(f.ID, 10)] = f
	}
	return byID, nil
}

// Get returns a single functie
func (s *functieService) Get(ctx context.Context, id int64) (*models.Functie, error) {
	if id <= 0 {
		return nil, validation.Invalid("id", "id must be a positive integer")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates the submitted fields and stores a new functie.
//
// "titel" is required; every other known field is optional. Unknown fields are ignored.
func (s *functieService) Create(ctx context.Context, data map[string]any) (int64, error) {
	if err := validation.Required(data, string(models.FunctieTitel)); err != nil {
		return 0, err
	}

	fields, err := normalizeFunctieFields(data)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, fields)
	if err != nil {
		return 0, err
	}

	metrics.MutationsTotal.WithLabelValues("functie", "create").Inc()
	s.logger.Info("functie created", zap.Int64("id", id))
	return id, nil
}

// Update validates the submitted fields and overwrites the ones provided.
//
// Both "id" and "titel" are required; when both are missing both are reported.
func (s *functieService) Update(ctx context.Context, data map[string]any) error {
	if err := validation.Required(data, "id", string(models.FunctieTitel)); err != nil {
		return err
	}

	id, idErr := validation.ID("id", data["id"])
	fields, fieldsErr := normalizeFunctieFields(data)
	if err := validation.Merge(idErr, fieldsErr); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("functie", "update").Inc()
	s.logger.Info("functie updated", zap.Int64("id", id))
	return nil
}

// Delete removes the functie identified by rawID.
// Pins linked to it survive with their functie reference cleared.
func (s *functieService) Delete(ctx context.Context, rawID any) error {
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

	metrics.MutationsTotal.WithLabelValues("functie", "delete").Inc()
	s.logger.Info("functie deleted", zap.Int64("id", id))
	return nil
}

// normalizeFunctieFields converts the known keys of data into column values.
// Every type and limit violation is collected before returning.
func normalizeFunctieFields(data map[string]any) (models.FunctieFields, error) {
	fields := make(models.FunctieFields)
	limits := functieLimits{}
	var errs []error

	for _, column := range models.FunctieColumns {
		raw, ok := data[string(column)]
		if !ok {
			continue
		}

		switch column {
		case models.FunctieTitel:
			titel, err := validation.String(string(column), raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fields[column] = titel
			limits.Titel = &titel
		case models.FunctieLat, models.FunctieLng:
			n, err := validation.OptionalNumber(string(column), raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fields[column] = n
			if column == models.FunctieLat {
				limits.Lat = n
			} else {
				limits.Lng = n
			}
		default:
			str, err := validation.OptionalString(string(column), raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			fields[column] = str
			switch column {
			case models.FunctieOpleiding:
				limits.Opleiding = str
			case models.FunctieCursus:
				limits.Cursus = str
			case models.FunctieVervolgFunctie:
				limits.VervolgFunctie = str
			case models.FunctieLocatie:
				limits.Locatie = str
			}
		}
	}

	errs = append(errs, validation.Struct(limits))
	if err := validation.Merge(errs...); err != nil {
		return nil, err
	}
	return fields, nil
}
