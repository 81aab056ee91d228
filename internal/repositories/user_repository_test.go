package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, logger := newMockDB(t)
	return NewUserRepository(db, logger), mock
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		anyError      bool
		expectedID    int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "hashedpassword", "user").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedID: 1,
		},
		{
			name: "duplicate username",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "hashedpassword", "user").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'testuser' for key 'username'"})
			},
			expectedError: models.ErrConflict,
		},
		{
			name: "database error on insert",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "hashedpassword", "user").
					WillReturnError(errors.New("database error"))
			},
			anyError: true,
		},
		{
			name: "error getting last insert id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("testuser", "hashedpassword", "user").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("last insert id error")))
			},
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupUserRepository(t)
			tt.setupMock(mock)

			user := &models.User{Username: "testuser", PasswordHash: "hashedpassword", Role: models.RoleUser}
			err := repo.Create(context.Background(), user)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.anyError:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, models.ErrConflict)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	columns := []string{"id", "username", "password", "role", "created_at"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		anyError      bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password, role, created_at FROM users WHERE username = \? LIMIT 1`).
					WithArgs("beheerder").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "beheerder", "hash", "admin", time.Now()))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password, role, created_at FROM users`).
					WithArgs("beheerder").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: models.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password, role, created_at FROM users`).
					WithArgs("beheerder").
					WillReturnError(errors.New("database error"))
			},
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupUserRepository(t)
			tt.setupMock(mock)

			user, err := repo.GetByUsername(context.Background(), "beheerder")

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			case tt.anyError:
				assert.Error(t, err)
				assert.Nil(t, user)
			default:
				require.NoError(t, err)
				assert.Equal(t, "beheerder", user.Username)
				assert.Equal(t, "hash", user.PasswordHash)
				assert.Equal(t, models.RoleAdmin, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
