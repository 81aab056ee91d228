package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/datarijksnoord/backend/internal/models"
	"github.com/datarijksnoord/backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPinService is a mock implementation of PinService
type mockPinService struct {
	pins      []models.Pin
	pin       *models.Pin
	createdID int64
	err       error
	lastData  map[string]any
	lastID    any
}

func (m *mockPinService) List(ctx context.Context) ([]models.Pin, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pins, nil
}

func (m *mockPinService) Get(ctx context.Context, id int64) (*models.Pin, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.pin, nil
}

func (m *mockPinService) Create(ctx context.Context, data map[string]any) (int64, error) {
	m.lastData = data
	if m.err != nil {
		return 0, m.err
	}
	return m.createdID, nil
}

func (m *mockPinService) Delete(ctx context.Context, rawID any) error {
	m.lastID = rawID
	return m.err
}

func newPinRouter(svc PinService) http.Handler {
	r := newTestRouter()
	NewPinHandler(svc, zap.NewNop()).RegisterRoutes(r, nil)
	return r
}

func TestPinHandler_List(t *testing.T) {
	functionID := int64(2)
	svc := &mockPinService{pins: []models.Pin{
		{ID: 1, Lat: 53.2, Lng: 6.5, Title: "Provinciehuis"},
		{ID: 2, Lat: 53.0, Lng: 6.56, FunctionID: &functionID},
	}}

	w := doRequest(t, newPinRouter(svc), http.MethodGet, "/pins", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Nil(t, resp[0]["function_id"])
	assert.Equal(t, 2.0, resp[1]["function_id"])
	for _, key := range []string{"id", "lat", "lng", "title", "description", "link", "function_id"} {
		assert.Contains(t, resp[0], key)
	}
}

func TestPinHandler_List_Empty(t *testing.T) {
	w := doRequest(t, newPinRouter(&mockPinService{pins: []models.Pin{}}), http.MethodGet, "/pins", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPinHandler_Get(t *testing.T) {
	w := doRequest(t, newPinRouter(&mockPinService{pin: &models.Pin{ID: 3, Lat: 53.2, Lng: 6.5}}), http.MethodGet, "/pins/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, newPinRouter(&mockPinService{err: models.ErrNotFound}), http.MethodGet, "/pins/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, newPinRouter(&mockPinService{}), http.MethodGet, "/pins/-4", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPinHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockPinService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"lat":53.2,"lng":6.5}`,
			svc:            &mockPinService{createdID: 8},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"id":8}`,
		},
		{
			name:           "missing coordinates",
			body:           `{}`,
			svc:            &mockPinService{err: validation.Merge(validation.Invalid("lat", "lat is required"), validation.Invalid("lng", "lng is required"))},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"lat is required; lng is required"}`,
		},
		{
			name:           "unknown functie",
			body:           `{"lat":53.2,"lng":6.5,"functionId":404}`,
			svc:            &mockPinService{err: models.ErrInvalidReference},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"message":"referenced functie does not exist"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newPinRouter(tt.svc), http.MethodPost, "/pins", strings.NewReader(tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPinHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		svc            *mockPinService
		expectedStatus int
		expectedID     any
	}{
		{name: "path id", target: "/pins/5", svc: &mockPinService{}, expectedStatus: http.StatusOK, expectedID: "5"},
		{name: "query id", target: "/pins?id=6", svc: &mockPinService{}, expectedStatus: http.StatusOK, expectedID: "6"},
		{
			name:           "no id",
			target:         "/pins",
			svc:            &mockPinService{err: validation.Invalid("id", "id is required")},
			expectedStatus: http.StatusBadRequest,
			expectedID:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newPinRouter(tt.svc), http.MethodDelete, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedID, tt.svc.lastID)
		})
	}
}

func TestPinHandler_MethodNotAllowed(t *testing.T) {
	w := doRequest(t, newPinRouter(&mockPinService{}), http.MethodPut, "/pins/5", strings.NewReader(`{}`))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
