package repositories

import (
	"database/sql"
	"errors"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories translate into domain errors
const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrNoReferencedRow  = 1452
	mysqlErrNoReferencedRow1 = 1216
)

// classifyError maps constraint violations reported by MySQL to domain errors.
// It returns nil when err is not a known constraint violation.
func classifyError(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return nil
	}
	switch me.Number {
	case mysqlErrDuplicateEntry:
		return models.ErrConflict
	case mysqlErrNoReferencedRow, mysqlErrNoReferencedRow1:
		return models.ErrInvalidReference
	}
	return nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullFloatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

func nullInt64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	i := ni.Int64
	return &i
}
