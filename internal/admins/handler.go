package admins

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"wildtrack-backend/internal/auth"
	"wildtrack-backend/internal/failure"
	"wildtrack-backend/internal/httpx"
	"wildtrack-backend/internal/middleware"
	"wildtrack-backend/internal/transport"
	"wildtrack-backend/internal/validation"
)

const MsgInvalidCredentials = "Invalid credentials"

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *zap.Logger
}

func NewHandler(service *Service, val *validation.Validator, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	var req LoginRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("auth login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("auth login: validation error")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	token, id, err := h.service.Login(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("auth login: invalid credentials")
			transport.WriteError(w, http.StatusUnauthorized, MsgInvalidCredentials, nil)
			return
		}
		log.Error("auth login: failed", zap.Error(err))
		transport.WriteFailure(w, failure.Internal(""))
		return
	}

	log.Info("auth login: ok", zap.String("admin_id", id.ID), zap.String("role", id.Role))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"token": token,
		"user":  id,
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	claims, _ := auth.ClaimsFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := h.service.Verify(ctx, claims)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("auth verify: account not found")
			transport.WriteError(w, http.StatusUnauthorized, auth.MsgTokenInvalid, nil)
			return
		}
		log.Error("auth verify: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal(""))
		return
	}

	log.Info("auth verify: ok", zap.String("admin_id", id.ID))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{"user": id})
}

// Logout only acknowledges; tokens stay valid until they expire and the
// client is expected to discard its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		log.Info("auth logout: ok", zap.String("admin_id", claims.SubjectID()))
	}
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Logged out successfully",
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	var req CreateRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("auth create admin: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("auth create admin: validation error")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	admin, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			log.Warn("auth create admin: username exists")
			transport.WriteFailure(w, failure.Conflict("Username already exists"))
			return
		}
		if errors.Is(err, ErrInvalidRole) {
			log.Warn("auth create admin: invalid role")
			transport.WriteFailure(w, failure.Validation([]failure.FieldError{{Field: "role", Message: "role must be one of: admin, manager"}}))
			return
		}
		log.Error("auth create admin: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal(""))
		return
	}

	log.Info("auth create admin: ok", zap.String("admin_id", admin.ID), zap.String("role", admin.Role))
	transport.WriteSuccess(w, http.StatusCreated, transport.Envelope{
		"message": "Admin created successfully",
		"admin":   admin,
	})
}
