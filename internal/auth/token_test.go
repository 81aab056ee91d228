package auth

import (
	"testing"
	"time"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.GenerateAccessToken(models.Session{Username: "beheerder", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := tg.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "beheerder", session.Username)
	assert.Equal(t, models.RoleAdmin, session.Role)
	assert.True(t, session.IsAdmin())
}

func TestTokenGenerator_ValidateAccessToken_Errors(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	sign := func(t *testing.T, secret string, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub":  "gebruiker",
			"role": "user",
			"exp":  time.Now().Add(time.Hour).Unix(),
			"type": "access",
		}
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-token" },
		},
		{
			name:  "wrong secret",
			token: func(t *testing.T) string { return sign(t, "other-secret", valid()) },
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				c := valid()
				c["exp"] = time.Now().Add(-time.Minute).Unix()
				return sign(t, "test-secret", c)
			},
		},
		{
			name: "wrong type",
			token: func(t *testing.T) string {
				c := valid()
				c["type"] = "refresh"
				return sign(t, "test-secret", c)
			},
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				c := valid()
				delete(c, "sub")
				return sign(t, "test-secret", c)
			},
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				c := valid()
				c["role"] = "editor"
				return sign(t, "test-secret", c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := tg.ValidateAccessToken(tt.token(t))
			assert.Error(t, err)
			assert.Nil(t, session)
		})
	}
}
