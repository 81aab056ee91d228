package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/datarijksnoord/backend/internal/models"
	"go.uber.org/zap"
)

const pinSelectColumns = `id, lat, lng, title, description, link, function_id, created_at`

type pinRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPinRepository creates a new pin repository
func NewPinRepository(db *sql.DB, logger *zap.Logger) *pinRepository {
	return &pinRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all pins in store order
func (r *pinRepository) GetAll(ctx context.Context) ([]models.Pin, error) {
	query := "SELECT " + pinSelectColumns + " FROM pins ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query pins", zap.Error(err))
		return nil, fmt.Errorf("failed to query pins: %w", err)
	}
	defer rows.Close()

	var pins []models.Pin
	for rows.Next() {
		p, err := scanPin(rows)
		if err != nil {
			r.logger.Error("failed to scan pin", zap.Error(err))
			return nil, fmt.Errorf("failed to scan pin: %w", err)
		}
		pins = append(pins, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return pins, nil
}

// GetByID retrieves a pin by its ID
func (r *pinRepository) GetByID(ctx context.Context, id int64) (*models.Pin, error) {
	query := "SELECT " + pinSelectColumns + " FROM pins WHERE id = ?"

	p, err := scanPin(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("pin %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get pin by id", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}

	return p, nil
}

// Create inserts a new pin and returns its ID.
// The function_id foreign key is checked by the store in the same statement;
// a dangling reference yields models.ErrInvalidReference.
func (r *pinRepository) Create(ctx context.Context, req *models.CreatePinRequest) (int64, error) {
	query := `
		INSERT INTO pins (lat, lng, title, description, link, function_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var functionID any
	if req.FunctionID != nil {
		functionID = *req.FunctionID
	}

	result, err := r.db.ExecContext(ctx, query, req.Lat, req.Lng, req.Title, req.Description, req.Link, functionID)
	if err != nil {
		if classified := classifyError(err); classified != nil {
			return 0, fmt.Errorf("failed to create pin: %w", classified)
		}
		r.logger.Error("failed to create pin", zap.Error(err))
		return 0, fmt.Errorf("failed to create pin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// Delete removes a pin. Deleting a missing ID is not an error.
func (r *pinRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM pins WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete pin", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete pin: %w", err)
	}

	return nil
}

func scanPin(row rowScanner) (*models.Pin, error) {
	var (
		p                 models.Pin
		description, link sql.NullString
		functionID        sql.NullInt64
	)
	if err := row.Scan(
		&p.ID,
		&p.Lat,
		&p.Lng,
		&p.Title,
		&description,
		&link,
		&functionID,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Description = nullStringPtr(description)
	p.Link = nullStringPtr(link)
	p.FunctionID = nullInt64Ptr(functionID)

	return &p, nil
}
