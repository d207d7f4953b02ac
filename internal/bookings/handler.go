package bookings

import (
	"context"
	"errors"
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

const msgNotFound = "Booking not found"

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	var req CreateRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("bookings create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	req.Normalize()

	fields := httpx.MergeFields(typed, h.val.Check(req))
	fields = append(fields, h.service.CheckDate(req.Date)...)
	if len(fields) > 0 {
		log.Warn("bookings create: validation error", zap.Int("fields", len(fields)))
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	booking, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("bookings create: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error creating booking"))
		return
	}

	log.Info("bookings create: ok",
		zap.String("booking_id", booking.ID),
		zap.String("package", booking.SafariPackage),
		zap.Int("guests", booking.Guests),
	)
	transport.WriteSuccess(w, http.StatusCreated, transport.Envelope{
		"message": "Booking enquiry submitted successfully",
		"booking": booking.Summary(),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	q := r.URL.Query()

	filter := ListFilter{Status: strings.TrimSpace(q.Get("status"))}
	if filter.Status != "" && !slices.Contains(Statuses, filter.Status) {
		log.Warn("bookings list: invalid status", zap.String("status", filter.Status))
		transport.WriteFailure(w, failure.Validation([]failure.FieldError{{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(Statuses, ", "),
		}}))
		return
	}
	page := httpx.ParsePage(q)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.List(ctx, filter, page)
	if err != nil {
		log.Error("bookings list: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error fetching bookings"))
		return
	}

	log.Info("bookings list: ok", zap.Int("count", len(items)), zap.Int64("total", total))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"count":       len(items),
		"total":       total,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
		"bookings":    items,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, log, "bookings get", id, err)
		return
	}

	log.Info("bookings get: ok", zap.String("booking_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{"booking": booking})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req UpdateRequest
	typed, err := httpx.DecodeFields(r.Body, &req)
	if err != nil {
		log.Warn("bookings update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("bookings update: validation error")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	booking, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(w, log, "bookings update", id, err)
		return
	}

	log.Info("bookings update: ok", zap.String("booking_id", id), zap.String("status", booking.Status))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, log, "bookings delete", id, err)
		return
	}

	log.Info("bookings delete: ok", zap.String("booking_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Booking deleted successfully",
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	stats, recent, err := h.service.Stats(ctx)
	if err != nil {
		log.Error("bookings stats: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error fetching statistics"))
		return
	}

	log.Info("bookings stats: ok", zap.Int64("total", stats.Total))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"stats":          stats,
		"recentBookings": recent,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *zap.Logger, op, id string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		log.Warn(op+": not found", zap.String("booking_id", id))
		transport.WriteFailure(w, failure.NotFound(msgNotFound))
	case errors.Is(err, ErrEmptyUpdate):
		log.Warn(op + ": empty update")
		transport.WriteFailure(w, failure.Validation([]failure.FieldError{{
			Field:   "status",
			Message: "Provide a status or notes to update",
		}}))
	default:
		log.Error(op+": database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal(""))
	}
}
