package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"wildtrack-backend/internal/admins"
	"wildtrack-backend/internal/auth"
	"wildtrack-backend/internal/bookings"
	"wildtrack-backend/internal/failure"
	"wildtrack-backend/internal/messages"
	"wildtrack-backend/internal/middleware"
	"wildtrack-backend/internal/safaris"
	"wildtrack-backend/internal/transport"
)

const (
	MsgRouteNotFound    = "Route not found"
	MsgMethodNotAllowed = "Method not allowed"
)

type Deps struct {
	Env         string
	Production  bool
	TrustProxy  bool
	CORSOrigins []string
	Log         *zap.Logger
	Tokens      auth.TokenVerifier

	Admins   *admins.Handler
	Bookings *bookings.Handler
	Messages *messages.Handler
	Safaris  *safaris.Handler

	BookingLimiter *middleware.RateLimiter
	MessageLimiter *middleware.RateLimiter

	// Now defaults to time.Now.
	Now func() time.Time
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	if d.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recoverer(d.Log, !d.Production))
	r.Use(middleware.CORS(d.CORSOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	authenticated := middleware.Authenticate(d.Tokens)
	staff := middleware.Authorize(auth.StaffRoles...)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", health(d.Env, d.Now))

		api.Route("/auth", func(a chi.Router) {
			a.Post("/login", d.Admins.Login)
			a.Group(func(protected chi.Router) {
				protected.Use(authenticated)
				protected.Get("/verify", d.Admins.Verify)
				protected.Post("/logout", d.Admins.Logout)
				protected.With(staff).Post("/create-admin", d.Admins.Create)
			})
		})

		api.Route("/bookings", func(b chi.Router) {
			b.With(d.BookingLimiter.Middleware).Post("/", d.Bookings.Create)
			b.Group(func(protected chi.Router) {
				protected.Use(authenticated, staff)
				protected.Get("/", d.Bookings.List)
				// Before /{id} so "stats" is never taken for an id.
				protected.Get("/stats/overview", d.Bookings.Stats)
				protected.Get("/{id}", d.Bookings.Get)
				protected.Put("/{id}", d.Bookings.Update)
				protected.Delete("/{id}", d.Bookings.Delete)
			})
		})

		api.Route("/messages", func(m chi.Router) {
			m.With(d.MessageLimiter.Middleware).Post("/", d.Messages.Create)
			m.Group(func(protected chi.Router) {
				protected.Use(authenticated, staff)
				protected.Get("/", d.Messages.List)
				protected.Get("/stats/overview", d.Messages.Stats)
				protected.Get("/{id}", d.Messages.Get)
				protected.Put("/{id}/read", d.Messages.MarkRead)
				protected.Delete("/{id}", d.Messages.Delete)
			})
		})

		api.Route("/safaris", func(s chi.Router) {
			s.Get("/", d.Safaris.List)
			s.Get("/{id}", d.Safaris.Get)
			s.Group(func(protected chi.Router) {
				protected.Use(authenticated, staff)
				protected.Post("/", d.Safaris.Create)
				protected.Post("/seed", d.Safaris.Seed)
				protected.Put("/{id}", d.Safaris.Update)
				protected.Patch("/{id}/toggle", d.Safaris.Toggle)
				protected.Delete("/{id}", d.Safaris.Delete)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteFailure(w, failure.NotFound(MsgRouteNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed, nil)
	})

	return r
}
