package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/datarijksnoord/backend/internal/models"
	"go.uber.org/zap"
)

// TokenValidator is implemented by *auth.TokenGenerator
type TokenValidator interface {
	ValidateAccessToken(token string) (*models.Session, error)
}

// RequireAdmin validates the session token and lets only administrators through.
//
// The token is read from the Authorization header ("Bearer <token>") or, failing that,
// from the access_token cookie. No token or an invalid one yields 401, a non-admin role 403.
func RequireAdmin(validator TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			session, err := validator.ValidateAccessToken(token)
			if err != nil {
				logger.Debug("rejected session token",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if !session.IsAdmin() {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the authenticated session from context
func GetSession(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*models.Session)
	return session, ok
}

func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
