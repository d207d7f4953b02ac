package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wildtrack-backend/internal/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("1.2.3.4:/api/bookings")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4:/api/bookings")
	assert.True(t, ok)
	ok, retry := rl.Allow("1.2.3.4:/api/bookings")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.Allow("5.6.7.8:/api/bookings")
	assert.True(t, ok, "other clients have their own bucket")

	now = now.Add(time.Minute)
	ok, _ = rl.Allow("1.2.3.4:/api/bookings")
	assert.True(t, ok, "a new window starts once the old one expires")
}

func TestRateLimiterMiddleware(t *testing.T) {
	h := NewRateLimiter(1, time.Minute).Middleware(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"success":false,"message":"`+MsgTooManyRequests+`"}`, rec.Body.String())
}

func TestRateLimiterIgnoresForwardedFor(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	h := rl.Middleware(okHandler())

	throttled := 0
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.RemoteAddr = "203.0.113.7:41000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			throttled++
		}
	}

	assert.Equal(t, 48, throttled)
	rl.mu.Lock()
	assert.Len(t, rl.buckets, 1)
	rl.mu.Unlock()
}

func TestRequestIDGeneratedAndReused(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	const incoming = "0b7c8f3e-2f43-4d8e-9a55-1c7bd7a1e6f2"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\n")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not a uuid\n", seen)
}

func TestRecovererHidesStackInProduction(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recoverer(zap.NewNop(), false)(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Recoverer(zap.NewNop(), true)(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stack"`)
	assert.Contains(t, rec.Body.String(), "boom")
}

type stubVerifier struct {
	claims *auth.Claims
	err    error
	calls  int
}

func (s *stubVerifier) Verify(token string) (*auth.Claims, error) {
	s.calls++
	return s.claims, s.err
}

func TestAuthenticateThenAuthorize(t *testing.T) {
	cases := []struct {
		name   string
		header string
		claims *auth.Claims
		err    error
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer t", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "wrong role", header: "Bearer t", claims: &auth.Claims{Role: "guide"}, want: http.StatusForbidden},
		{name: "manager", header: "Bearer t", claims: &auth.Claims{Role: auth.RoleManager}, want: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &stubVerifier{claims: tc.claims, err: tc.err}
			h := Authenticate(v)(Authorize(auth.StaffRoles...)(okHandler()))

			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.header == "" {
				assert.Zero(t, v.calls)
			}
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	var got *auth.Claims
	h := OptionalAuthenticate(&stubVerifier{err: auth.ErrInvalidToken})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.ClaimsFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/safaris", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, got)
}
