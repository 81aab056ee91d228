package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datarijksnoord/backend/internal/auth"
	"github.com/datarijksnoord/backend/internal/metrics"
	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. On success its ID is set.
	//
	// If the username is already taken, models.ErrConflict is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by exact username.
	//
	// If user with such username does not exist, models.ErrNotFound is returned.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// dummyHash is compared against when the username is unknown so both failure paths cost one bcrypt round
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("datarijksnoord-dummy-password"), bcrypt.DefaultCost)

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *auth.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new account with the "user" role.
//
// Uniqueness is left to the store, so two concurrent registrations of one username
// yield exactly one models.ErrConflict.
func (s *authService) Register(ctx context.Context, username, password string) error {
	user, err := s.newUser(username, password, models.RoleUser)
	if err != nil {
		return err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("user", "create").Inc()
	s.logger.Info("user registered", zap.String("username", user.Username))
	return nil
}

// Login verifies the credentials and returns the session descriptor with a signed access token.
//
// An unknown username yields models.ErrNotFound, a wrong password models.ErrUnauthorized.
func (s *authService) Login(ctx context.Context, username, password string) (*models.Session, string, error) {
	username = strings.TrimSpace(username)
	if err := validation.Required(map[string]any{"username": username, "password": password}, "username", "password"); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.LoginAttemptsTotal.WithLabelValues("unknown_user").Inc()
			return nil, "", err
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("wrong_password").Inc()
		return nil, "", fmt.Errorf("user %q: %w", username, models.ErrUnauthorized)
	}

	session := &models.Session{Username: user.Username, Role: user.Role}
	token, err := s.tokenGenerator.GenerateAccessToken(*session)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return session, token, nil
}

// EnsureAdmin creates the admin account if it does not exist yet.
// An existing account with that username is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	user, err := s.newUser(username, password, models.RoleAdmin)
	if err != nil {
		return err
	}

	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, models.ErrConflict) {
		s.logger.Debug("admin account already exists", zap.String("username", user.Username))
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("admin account created", zap.String("username", user.Username))
	return nil
}

// newUser validates the credentials and hashes the password
func (s *authService) newUser(username, password string, role models.Role) (*models.User, error) {
	creds := models.Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := validation.Required(map[string]any{"username": creds.Username, "password": creds.Password}, "username", "password"); err != nil {
		return nil, err
	}
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, validation.Invalid("password", "password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &models.User{
		Username:     creds.Username,
		PasswordHash: string(passwordHash),
		Role:         role,
	}, nil
}
