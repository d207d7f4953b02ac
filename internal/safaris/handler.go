package safaris

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wildtrack-backend/internal/failure"
	"wildtrack-backend/internal/httpx"
	"wildtrack-backend/internal/middleware"
	"wildtrack-backend/internal/transport"
	"wildtrack-backend/internal/validation"
)

const msgNotFound = "Safari package not found"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	filter, fields := parseListFilter(r)
	if len(fields) > 0 {
		log.Warn("safaris list: invalid query")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx, filter)
	if err != nil {
		log.Error("safaris list: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error fetching safari packages"))
		return
	}

	log.Info("safaris list: ok", zap.Int("count", len(items)))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"count":   len(items),
		"safaris": items,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, log, "safaris get", id, err)
		return
	}

	log.Info("safaris get: ok", zap.String("safari_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{"safari": item})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	var req CreateRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("safaris create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("safaris create: validation error")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeServiceError(w, log, "safaris create", "", err)
		return
	}

	log.Info("safaris create: ok", zap.String("safari_id", item.ID), zap.String("slug", item.Slug))
	transport.WriteSuccess(w, http.StatusCreated, transport.Envelope{
		"message": "Safari package created successfully",
		"safari":  item,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req UpdateRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("safaris update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("safaris update: validation error")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(w, log, "safaris update", id, err)
		return
	}

	log.Info("safaris update: ok", zap.String("safari_id", id), zap.String("slug", item.Slug))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Safari package updated successfully",
		"safari":  item,
	})
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.ToggleAvailability(ctx, id)
	if err != nil {
		h.writeServiceError(w, log, "safaris toggle", id, err)
		return
	}

	state := "unavailable"
	if item.IsAvailable {
		state = "available"
	}
	log.Info("safaris toggle: ok", zap.String("safari_id", id), zap.Bool("is_available", item.IsAvailable))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message":     "Safari package is now " + state,
		"isAvailable": item.IsAvailable,
		"safari":      item,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, log, "safaris delete", id, err)
		return
	}

	log.Info("safaris delete: ok", zap.String("safari_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Safari package deleted successfully",
	})
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	items, err := h.service.Seed(ctx)
	if err != nil {
		log.Error("safaris seed: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error seeding safari packages"))
		return
	}

	log.Info("safaris seed: ok", zap.Int("count", len(items)))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": fmt.Sprintf("Seeded %d safari packages", len(items)),
		"safaris": items,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *zap.Logger, op, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		log.Warn(op+": not found", zap.String("safari_id", id))
		transport.WriteFailure(w, failure.NotFound(msgNotFound))
	case errors.Is(err, ErrNameExists):
		log.Warn(op + ": name exists")
		transport.WriteFailure(w, failure.Conflict("Safari package with this name already exists"))
	case errors.Is(err, ErrInvalidName):
		transport.WriteFailure(w, failure.Validation([]failure.FieldError{{Field: "name", Message: ErrInvalidName.Error()}}))
	case errors.Is(err, ErrGuestBounds):
		transport.WriteFailure(w, failure.Validation([]failure.FieldError{{Field: "minGuests", Message: ErrGuestBounds.Error()}}))
	default:
		log.Error(op+": database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal(""))
	}
}

func parseListFilter(r *http.Request) (ListFilter, []failure.FieldError) {
	q := r.URL.Query()
	var (
		filter ListFilter
		fields []failure.FieldError
		err    error
	)

	if filter.Available, err = httpx.ParseOptionalBool(q, "available"); err != nil {
		fields = append(fields, failure.FieldError{Field: "available", Message: "available must be true or false"})
	}
	if filter.Popular, err = httpx.ParseOptionalBool(q, "popular"); err != nil {
		fields = append(fields, failure.FieldError{Field: "popular", Message: "popular must be true or false"})
	}

	filter.Category = strings.TrimSpace(q.Get("category"))
	if filter.Category != "" && !slices.Contains(Categories, filter.Category) {
		fields = append(fields, failure.FieldError{
			Field:   "category",
			Message: "category must be one of: " + strings.Join(Categories, ", "),
		})
	}
	return filter, fields
}
