package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/datarijksnoord/backend/internal/models"
	"go.uber.org/zap"
)

const functieSelectColumns = `id, titel, beschrijving, benodigd, opleiding, cursus, vervolg_functie, locatie, lat, lng, created_at, updated_at`

type functieRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFunctieRepository creates a new functie repository
func NewFunctieRepository(db *sql.DB, logger *zap.Logger) *functieRepository {
	return &functieRepository{
		db:     db,
		logger: logger,
	}
}

// GetAll retrieves all functies matching the filter, ordered by ID
func (r *functieRepository) GetAll(ctx context.Context, filter models.FunctieFilter) ([]models.Functie, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Opleiding != "" {
		conditions = append(conditions, "opleiding = ?")
		args = append(args, filter.Opleiding)
	}
	if filter.Locatie != "" {
		conditions = append(conditions, "locatie = ?")
		args = append(args, filter.Locatie)
	}

	query := "SELECT " + functieSelectColumns + " FROM functies"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query functies", zap.Error(err))
		return nil, fmt.Errorf("failed to query functies: %w", err)
	}
	defer rows.Close()

	var functies []models.Functie
	for rows.Next() {
		f, err := scanFunctie(rows)
		if err != nil {
			r.logger.Error("failed to scan functie", zap.Error(err))
			return nil, fmt.Errorf("failed to scan functie: %w", err)
		}
		functies = append(functies, *f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return functies, nil
}

// GetByID retrieves a functie by its ID
func (r *functieRepository) GetByID(ctx context.Context, id int64) (*models.Functie, error) {
	query := "SELECT " + functieSelectColumns + " FROM functies WHERE id = ?"

	f, err := scanFunctie(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("functie %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get functie by id", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get functie: %w", err)
	}

	return f, nil
}

// Create inserts a new functie and returns its ID.
// Only the columns present in fields are written; the rest keep their defaults.
func (r *functieRepository) Create(ctx context.Context, fields models.FunctieFields) (int64, error) {
	columns, args := splitFunctieFields(fields)
	if len(columns) == 0 {
		return 0, fmt.Errorf("failed to create functie: no fields")
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO functies (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to create functie", zap.Error(err))
		return 0, fmt.Errorf("failed to create functie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return id, nil
}

// Update overwrites the columns present in fields.
// ErrNotFound is returned when no row has the given ID.
func (r *functieRepository) Update(ctx context.Context, id int64, fields models.FunctieFields) error {
	columns, args := splitFunctieFields(fields)
	if len(columns) == 0 {
		return fmt.Errorf("failed to update functie: no fields")
	}

	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = column + " = ?"
	}
	query := fmt.Sprintf("UPDATE functies SET %s WHERE id = ?", strings.Join(assignments, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to update functie", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update functie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("functie %d: %w", id, models.ErrNotFound)
	}

	return nil
}

// Delete removes a functie. Pins that reference it keep existing with a NULL
// function_id (ON DELETE SET NULL). Deleting a missing ID is not an error.
func (r *functieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM functies WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.logger.Error("failed to delete functie", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete functie: %w", err)
	}

	return nil
}

// splitFunctieFields returns column names and values in table order.
// Column names come from models.FunctieColumns, never from request input.
func splitFunctieFields(fields models.FunctieFields) ([]string, []any) {
	columns := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, column := range models.FunctieColumns {
		value, ok := fields[column]
		if !ok {
			continue
		}
		columns = append(columns, string(column))
		args = append(args, value)
	}
	return columns, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFunctie(row rowScanner) (*models.Functie, error) {
	var (
		f                                 models.Functie
		beschrijving, benodigd, opleiding sql.NullString
		cursus, vervolg, locatie          sql.NullString
		lat, lng                          sql.NullFloat64
	)
	if err := row.Scan(
		&f.ID,
		&f.Titel,
		&beschrijving,
		&benodigd,
		&opleiding,
		&cursus,
		&vervolg,
		&locatie,
		&lat,
		&lng,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	f.Beschrijving = nullStringPtr(beschrijving)
	f.Benodigd = nullStringPtr(benodigd)
	f.Opleiding = nullStringPtr(opleiding)
	f.Cursus = nullStringPtr(cursus)
	f.VervolgFunctie = nullStringPtr(vervolg)
	f.Locatie = nullStringPtr(locatie)
	f.Lat = nullFloatPtr(lat)
	f.Lng = nullFloatPtr(lng)

	return &f, nil
}
