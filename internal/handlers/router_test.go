package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"wildtrack-backend/internal/admins"
	adminmocks "wildtrack-backend/internal/admins/mocks"
	"wildtrack-backend/internal/auth"
	"wildtrack-backend/internal/bookings"
	bookingmocks "wildtrack-backend/internal/bookings/mocks"
	"wildtrack-backend/internal/cache"
	"wildtrack-backend/internal/handlers"
	"wildtrack-backend/internal/messages"
	messagemocks "wildtrack-backend/internal/messages/mocks"
	"wildtrack-backend/internal/middleware"
	"wildtrack-backend/internal/safaris"
	safarimocks "wildtrack-backend/internal/safaris/mocks"
	"wildtrack-backend/internal/validation"
)

type fixture struct {
	router   http.Handler
	tokens   *auth.Manager
	bookings *bookingmocks.MockRepository
	messages *messagemocks.MockRepository
	safaris  *safarimocks.MockRepository
	admins   *adminmocks.MockRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

func newFixtureWith(t *testing.T, tweak func(*handlers.Deps)) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := zap.NewNop()
	val := validation.New()
	safaris.RegisterValidations(val)
	bookings.RegisterValidations(val)

	tokens := &auth.Manager{Secret: []byte("router-secret"), Issuer: "wildtrack-backend"}

	f := &fixture{
		tokens:   tokens,
		bookings: bookingmocks.NewMockRepository(ctrl),
		messages: messagemocks.NewMockRepository(ctrl),
		safaris:  safarimocks.NewMockRepository(ctrl),
		admins:   adminmocks.NewMockRepository(ctrl),
	}

	safariSvc := safaris.NewService(f.safaris, cache.NewNoop(), time.Minute, log)
	bookingSvc := bookings.NewService(f.bookings, safariSvc, nil, time.UTC)
	messageSvc := messages.NewService(f.messages, nil)
	adminSvc := admins.NewService(f.admins, admins.NewStoreResolver(f.admins, log), tokens, nil)

	deps := handlers.Deps{
		Env:            "test",
		CORSOrigins:    []string{"http://localhost:3000"},
		Log:            log,
		Tokens:         tokens,
		Admins:         admins.NewHandler(adminSvc, val, log),
		Bookings:       bookings.NewHandler(bookingSvc, val, log),
		Messages:       messages.NewHandler(messageSvc, val, log),
		Safaris:        safaris.NewHandler(safariSvc, val, log),
		BookingLimiter: middleware.NewRateLimiter(2, time.Minute),
		MessageLimiter: middleware.NewRateLimiter(2, time.Minute),
		Now: func() time.Time {
			return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
		},
	}
	if tweak != nil {
		tweak(&deps)
	}
	f.router = handlers.NewRouter(deps)
	return f
}

func (f *fixture) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := f.tokens.Issue("64f000000000000000000001", role, "thandi")
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "2026-10-18T09:00:00Z", body["timestamp"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_StaffRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/bookings"},
		{http.MethodGet, "/api/bookings/stats/overview"},
		{http.MethodGet, "/api/bookings/64f000000000000000000009"},
		{http.MethodPut, "/api/bookings/64f000000000000000000009"},
		{http.MethodDelete, "/api/bookings/64f000000000000000000009"},
		{http.MethodGet, "/api/messages"},
		{http.MethodPut, "/api/messages/64f000000000000000000009/read"},
		{http.MethodPost, "/api/safaris"},
		{http.MethodPost, "/api/safaris/seed"},
		{http.MethodPatch, "/api/safaris/64f000000000000000000009/toggle"},
		{http.MethodGet, "/api/auth/verify"},
		{http.MethodPost, "/api/auth/create-admin"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := f.do(rt.method, rt.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"success":false,"message":"Access denied. No token provided."}`, rec.Body.String())
		})
	}
}

func TestRouter_WrongRoleForbidden(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/bookings", f.token(t, "guide"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPost, "/api/auth/create-admin", f.token(t, "guide"), `{"username":"sipho","password":"secret1"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ManagerMayCreateAdmin(t *testing.T) {
	f := newFixture(t)

	f.admins.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/api/auth/create-admin", f.token(t, auth.RoleManager), `{"username":"sipho","password":"secret1","name":"Sipho","email":"sipho@umzulu.example","role":"manager"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_StatsNotTakenForID(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().CountByStatus(gomock.Any()).Return(map[string]int64{bookings.StatusPending: 2}, nil)
	f.bookings.EXPECT().Recent(gomock.Any(), int64(5)).Return([]bookings.Recent{}, nil)

	rec := f.do(http.MethodGet, "/api/bookings/stats/overview", f.token(t, auth.RoleManager), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":2`)
}

func TestRouter_PublicBookingRateLimited(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		rec := f.do(http.MethodPost, "/api/bookings", "", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}

	rec := f.do(http.MethodPost, "/api/bookings", "", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func postFrom(router http.Handler, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(`{}`))
	req.RemoteAddr = "203.0.113.7:41000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_ForwardedForIgnoredByDefault(t *testing.T) {
	f := newFixture(t)

	codes := make([]int, 0, 5)
	for i := 1; i <= 5; i++ {
		codes = append(codes, postFrom(f.router, fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{
		http.StatusBadRequest,
		http.StatusBadRequest,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRouter_ForwardedForTrustedBehindProxy(t *testing.T) {
	f := newFixtureWith(t, func(d *handlers.Deps) { d.TrustProxy = true })

	for i := 1; i <= 5; i++ {
		assert.Equal(t, http.StatusBadRequest, postFrom(f.router, fmt.Sprintf("10.0.0.%d", i)))
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/elephants", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, rec.Body.String())

	rec = f.do(http.MethodPatch, "/api/health", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
