package safaris_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"wildtrack-backend/internal/safaris"
	"wildtrack-backend/internal/safaris/mocks"
	"wildtrack-backend/internal/validation"
)

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockRepository(ctrl)

	v := validation.New()
	safaris.RegisterValidations(v)
	h := safaris.NewHandler(safaris.NewService(mockRepo, nil, time.Minute, zap.NewNop()), v, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/safaris", h.List)
	r.Post("/api/safaris", h.Create)
	r.Patch("/api/safaris/{id}/toggle", h.Toggle)
	r.Get("/api/safaris/{id}", h.Get)
	return r, mockRepo
}

func TestHandler_ListRejectsUnknownCategory(t *testing.T) {
	r, _ := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/safaris?category=midday", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"category"`)
}

func TestHandler_ListAppliesFilters(t *testing.T) {
	r, mockRepo := newRouter(t)

	yes := true
	mockRepo.EXPECT().
		List(gomock.Any(), safaris.ListFilter{Available: &yes, Category: "night"}).
		Return([]safaris.SafariPackage{{ID: "n1", Name: "Night Safari Drive"}}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/safaris?available=true&category=night", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                    `json:"success"`
		Count   int                     `json:"count"`
		Safaris []safaris.SafariPackage `json:"safaris"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "n1", body.Safaris[0].ID)
}

func TestHandler_CreateReportsEveryInvalidField(t *testing.T) {
	r, _ := newRouter(t)

	rec := httptest.NewRecorder()
	body := `{"name":"","price":-5,"duration":"1 hour","maxGuests":51,"currency":"JPY"}`
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/safaris", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	for _, field := range []string{"name", "description", "price", "duration", "maxGuests", "currency"} {
		assert.Contains(t, rec.Body.String(), `"field":"`+field+`"`)
	}
}

func TestHandler_ToggleMessage(t *testing.T) {
	r, mockRepo := newRouter(t)

	mockRepo.EXPECT().FindByID(gomock.Any(), "s1").Return(safaris.SafariPackage{ID: "s1", IsAvailable: true}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), "s1", gomock.Any()).
		Return(safaris.SafariPackage{ID: "s1", IsAvailable: false}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/safaris/s1/toggle", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Safari package is now unavailable"`)
	assert.Contains(t, rec.Body.String(), `"isAvailable":false`)
}
