package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/datarijksnoord/backend/internal/auth"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository keeps users in memory and enforces username uniqueness like the store does
type mockUserRepository struct {
	users map[string]*models.User
	err   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*models.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.Username]; ok {
		return models.ErrConflict
	}
	user.ID = len(m.users) + 1
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[username]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func newTestAuthService(repo UserRepository) *authService {
	return NewAuthService(repo, auth.NewTokenGenerator("test-secret", time.Hour), zap.NewNop())
}

func TestNewAuthService(t *testing.T) {
	repo := newMockUserRepository()
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	logger := zap.NewNop()

	svc := NewAuthService(repo, tg, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.userRepo)
	assert.Equal(t, tg, svc.tokenGenerator)
	assert.Equal(t, logger, svc.logger)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		repo          *mockUserRepository
		expectedError error
		invalidFields []string
	}{
		{
			name:     "success",
			username: "jdevries",
			password: "geheim123",
			repo:     newMockUserRepository(),
		},
		{
			name:     "username trimmed",
			username: "  jdevries  ",
			password: "geheim123",
			repo:     newMockUserRepository(),
		},
		{
			name:          "missing username and password",
			username:      "",
			password:      "",
			repo:          newMockUserRepository(),
			invalidFields: []string{"username", "password"},
		},
		{
			name:          "blank username",
			username:      "   ",
			password:      "geheim123",
			repo:          newMockUserRepository(),
			invalidFields: []string{"username"},
		},
		{
			name:          "username too short",
			username:      "jd",
			password:      "geheim123",
			repo:          newMockUserRepository(),
			invalidFields: []string{"username"},
		},
		{
			name:          "username too long",
			username:      strings.Repeat("a", 51),
			password:      "geheim123",
			repo:          newMockUserRepository(),
			invalidFields: []string{"username"},
		},
		{
			name:          "password too short",
			username:      "jdevries",
			password:      "12345",
			repo:          newMockUserRepository(),
			invalidFields: []string{"password"},
		},
		{
			name:          "password too long for bcrypt",
			username:      "jdevries",
			password:      strings.Repeat("x", 73),
			repo:          newMockUserRepository(),
			invalidFields: []string{"password"},
		},
		{
			name:          "repository error",
			username:      "jdevries",
			password:      "geheim123",
			repo:          &mockUserRepository{err: errors.New("connection refused")},
			expectedError: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(tt.repo)

			err := svc.Register(context.Background(), tt.username, tt.password)

			switch {
			case len(tt.invalidFields) > 0:
				ve, ok := validation.AsError(err)
				require.True(t, ok, "expected validation error, got %v", err)
				assert.Equal(t, tt.invalidFields, ve.Fields)
			case tt.expectedError != nil:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			default:
				require.NoError(t, err)
				user, ok := tt.repo.users[strings.TrimSpace(tt.username)]
				require.True(t, ok)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)

	require.NoError(t, svc.Register(context.Background(), "jdevries", "geheim123"))
	err := svc.Register(context.Background(), "jdevries", "anderwachtwoord")
	assert.ErrorIs(t, err, models.ErrConflict)

	// usernames are case-sensitive
	assert.NoError(t, svc.Register(context.Background(), "JdeVries", "geheim123"))
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "jdevries", "geheim123"))

	tests := []struct {
		name          string
		username      string
		password      string
		expectedError error
		invalidFields []string
	}{
		{name: "success", username: "jdevries", password: "geheim123"},
		{name: "username trimmed", username: " jdevries ", password: "geheim123"},
		{name: "wrong password", username: "jdevries", password: "geheim124", expectedError: models.ErrUnauthorized},
		{name: "unknown user", username: "pjansen", password: "geheim123", expectedError: models.ErrNotFound},
		{name: "different case", username: "JDEVRIES", password: "geheim123", expectedError: models.ErrNotFound},
		{name: "empty password", username: "jdevries", password: "", invalidFields: []string{"password"}},
		{name: "empty both", username: "", password: "", invalidFields: []string{"username", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, token, err := svc.Login(context.Background(), tt.username, tt.password)

			switch {
			case len(tt.invalidFields) > 0:
				ve, ok := validation.AsError(err)
				require.True(t, ok, "expected validation error, got %v", err)
				assert.Equal(t, tt.invalidFields, ve.Fields)
				assert.Nil(t, session)
				assert.Empty(t, token)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
				assert.Empty(t, token)
			default:
				require.NoError(t, err)
				assert.Equal(t, &models.Session{Username: "jdevries", Role: models.RoleUser}, session)
				assert.NotEmpty(t, token)

				parsed, err := svc.tokenGenerator.ValidateAccessToken(token)
				require.NoError(t, err)
				assert.Equal(t, session, parsed)
			}
		})
	}
}

func TestAuthService_Login_NeverMatchesOtherPasswords(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)
	require.NoError(t, svc.Register(context.Background(), "jdevries", "geheim123"))

	for _, password := range []string{" ", "geheim12", "geheim1234", "GEHEIM123", " geheim123"} {
		session, _, err := svc.Login(context.Background(), "jdevries", password)
		assert.Error(t, err, "password %q", password)
		assert.Nil(t, session)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newMockUserRepository()
	svc := newTestAuthService(repo)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "beheerder", "admin-wachtwoord"))
	assert.Equal(t, models.RoleAdmin, repo.users["beheerder"].Role)

	// second call is a no-op
	require.NoError(t, svc.EnsureAdmin(context.Background(), "beheerder", "ander-wachtwoord"))
	session, _, err := svc.Login(context.Background(), "beheerder", "admin-wachtwoord")
	require.NoError(t, err)
	assert.True(t, session.IsAdmin())

	err = svc.EnsureAdmin(context.Background(), "ab", "admin-wachtwoord")
	_, ok := validation.AsError(err)
	assert.True(t, ok)
}
