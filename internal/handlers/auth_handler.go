package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccessTokenCookie is the name of the HTTP-only cookie carrying the session token
const AccessTokenCookie = "access_token"

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register validates the credentials and creates an account with the "user" role.
	//
	// If the username is already taken, models.ErrConflict is returned.
	Register(ctx context.Context, username, password string) error
	// Method Login verifies the credentials and returns the session descriptor and a signed access token.
	//
	// An unknown username yields models.ErrNotFound, a wrong password models.ErrUnauthorized.
	Login(ctx context.Context, username, password string) (*models.Session, string, error)
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Success bool           `json:"success"`
	User    models.Session `json:"user"`
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	cookieMaxAge time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger, cookieMaxAge time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{logger: logger},
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

// Register handles POST /register
// @Summary Register a new account
// @Description Create an account with the "user" role. Username must be 3-50 characters, password at least 6.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Register request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		h.respondServiceError(w, err, "register user")
		return
	}

	h.respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "registration successful"})
}

// Login handles POST /login
// @Summary Login
// @Description Verify username and password. Returns the session descriptor and sets the access token as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.Credentials true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown user and wrong password look the same from outside
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrUnauthorized) {
			h.logger.Info("login failed", zap.String("username", req.Username))
			h.respondError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.respondServiceError(w, err, "login")
		return
	}

	h.setTokenCookie(w, token, int(h.cookieMaxAge.Seconds()))
	h.respondJSON(w, http.StatusOK, LoginResponse{Success: true, User: *session})
}

// Logout handles POST /logout
// @Summary Logout
// @Description Clear the access token cookie
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setTokenCookie(w, "", -1)
	h.respondJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "logged out"})
}

// setTokenCookie sets or, with a negative maxAge, clears the access token cookie
func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
