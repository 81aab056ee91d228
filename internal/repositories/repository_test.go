package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newMockDB creates a sqlmock database and a development logger
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return db, mock, logger
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "duplicate entry",
			err:      &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'admin' for key 'username'"},
			expected: models.ErrConflict,
		},
		{
			name:     "foreign key violation",
			err:      &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"},
			expected: models.ErrInvalidReference,
		},
		{
			name:     "other mysql error",
			err:      &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"},
			expected: nil,
		},
		{
			name:     "non mysql error",
			err:      errors.New("connection refused"),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyError(tt.err))
		})
	}
}
