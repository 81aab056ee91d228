package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRouter builds a router with the JSON fallbacks used in production
func newTestRouter() *chi.Mux {
	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func TestBaseHandler_RespondServiceError(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "validation error lists every field",
			err:             validation.Merge(validation.Invalid("lat", "lat is required"), validation.Invalid("lng", "lng is required")),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "lat is required; lng is required",
		},
		{
			name:            "invalid reference",
			err:             models.ErrInvalidReference,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "referenced functie does not exist",
		},
		{
			name:            "conflict",
			err:             models.ErrConflict,
			expectedStatus:  http.StatusConflict,
			expectedMessage: "username already exists",
		},
		{
			name:            "unauthorized",
			err:             models.ErrUnauthorized,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "invalid username or password",
		},
		{
			name:            "not found",
			err:             errors.Join(errors.New("functie 3"), models.ErrNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "not found",
		},
		{
			name:            "store error is not leaked",
			err:             errors.New("Error 1045 (28000): Access denied for user 'root'@'localhost'"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "failed to do something",
		},
	}

	h := &BaseHandler{logger: zap.NewNop()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			h.respondServiceError(w, tt.err, "do something")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := decodeResponse(t, w)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.expectedMessage, resp["message"])
		})
	}
}

func TestBaseHandler_DecodeBody(t *testing.T) {
	h := &BaseHandler{logger: zap.NewNop()}

	tests := []struct {
		name           string
		body           string
		expectedOK     bool
		expectedStatus int
		expected       map[string]any
	}{
		{name: "object", body: `{"titel":"Analist","lat":53.2}`, expectedOK: true, expected: map[string]any{"titel": "Analist", "lat": json.Number("53.2")}},
		{name: "empty body", body: ``, expectedOK: true, expected: map[string]any{}},
		{name: "null", body: `null`, expectedOK: true, expected: map[string]any{}},
		{name: "array", body: `[1,2]`, expectedStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"titel":`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			data, ok := h.decodeBody(w, r)

			assert.Equal(t, tt.expectedOK, ok)
			if tt.expectedOK {
				assert.Equal(t, tt.expected, data)
				return
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBaseHandler_DecodeBody_TooLarge(t *testing.T) {
	h := &BaseHandler{logger: zap.NewNop()}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"titel":"`+strings.Repeat("a", 64)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	_, ok := h.decodeBody(w, r)

	assert.False(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestResolveID(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		pattern  string
		body     map[string]any
		expected any
	}{
		{name: "path wins", pattern: "/x/{id}", target: "/x/1?id=2", body: map[string]any{"id": 3}, expected: "1"},
		{name: "query beats body", pattern: "/x", target: "/x?id=2", body: map[string]any{"id": 3}, expected: "2"},
		{name: "body", pattern: "/x", target: "/x", body: map[string]any{"id": 3}, expected: 3},
		{name: "none", pattern: "/x", target: "/x", body: map[string]any{}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got any
			r := chi.NewRouter()
			r.Get(tt.pattern, func(w http.ResponseWriter, req *http.Request) {
				got = resolveID(req, tt.body)
			})

			doRequest(t, r, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRouterFallbacks(t *testing.T) {
	r := newTestRouter()
	r.Get("/pins", func(w http.ResponseWriter, r *http.Request) {})

	w := doRequest(t, r, http.MethodPatch, "/pins", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "method not allowed", decodeResponse(t, w)["message"])

	w = doRequest(t, r, http.MethodGet, "/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decodeResponse(t, w)["success"])
}
