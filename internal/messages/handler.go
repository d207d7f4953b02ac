package messages

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

const msgNotFound = "Message not found"

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
		log.Warn("messages create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "Invalid JSON body", nil)
		return
	}
	req.Normalize()

	if fields := httpx.MergeFields(typed, h.val.Check(req)); len(fields) > 0 {
		log.Warn("messages create: validation error", zap.Int("fields", len(fields)))
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	msg, err := h.service.Create(ctx, req)
	if err != nil {
		log.Error("messages create: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error sending message"))
		return
	}

	log.Info("messages create: ok", zap.String("message_id", msg.ID), zap.String("category", msg.Category))
	transport.WriteSuccess(w, http.StatusCreated, transport.Envelope{
		"message": "Message sent successfully. We will get back to you soon!",
		"data": Receipt{
			ID:        msg.ID,
			Name:      msg.Name,
			Subject:   msg.Subject,
			CreatedAt: msg.CreatedAt,
		},
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	q := r.URL.Query()

	var (
		filter ListFilter
		fields []failure.FieldError
		err    error
	)
	if filter.IsRead, err = httpx.ParseOptionalBool(q, "isRead"); err != nil {
		fields = append(fields, failure.FieldError{Field: "isRead", Message: "isRead must be true or false"})
	}
	filter.Category = strings.TrimSpace(q.Get("category"))
	if filter.Category != "" && !slices.Contains(Categories, filter.Category) {
		fields = append(fields, failure.FieldError{
			Field:   "category",
			Message: "category must be one of: " + strings.Join(Categories, ", "),
		})
	}
	if len(fields) > 0 {
		log.Warn("messages list: invalid query")
		transport.WriteFailure(w, failure.Validation(fields))
		return
	}
	page := httpx.ParsePage(q)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, unread, err := h.service.List(ctx, filter, page)
	if err != nil {
		log.Error("messages list: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error fetching messages"))
		return
	}

	log.Info("messages list: ok", zap.Int("count", len(items)), zap.Int64("total", total))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"count":       len(items),
		"total":       total,
		"unreadCount": unread,
		"totalPages":  page.TotalPages(total),
		"currentPage": page.Page,
		"messages":    items,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msg, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, log, "messages get", id, err)
		return
	}

	log.Info("messages get: ok", zap.String("message_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{"data": msg})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.MarkRead(ctx, id); err != nil {
		h.writeServiceError(w, log, "messages mark read", id, err)
		return
	}

	log.Info("messages mark read: ok", zap.String("message_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Message marked as read",
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, log, "messages delete", id, err)
		return
	}

	log.Info("messages delete: ok", zap.String("message_id", id))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"message": "Message deleted successfully",
	})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := middleware.RequestLogger(h.log, r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	stats, recent, err := h.service.Stats(ctx)
	if err != nil {
		log.Error("messages stats: database error", zap.Error(err))
		transport.WriteFailure(w, failure.Internal("Server error fetching statistics"))
		return
	}

	log.Info("messages stats: ok", zap.Int64("total", stats.Total), zap.Int64("unread", stats.Unread))
	transport.WriteSuccess(w, http.StatusOK, transport.Envelope{
		"stats":          stats,
		"recentMessages": recent,
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, log *zap.Logger, op, id string, err error) {
	if errors.Is(err, ErrNotFound) {
		log.Warn(op+": not found", zap.String("message_id", id))
		transport.WriteFailure(w, failure.NotFound(msgNotFound))
		return
	}
	log.Error(op+": database error", zap.Error(err))
	transport.WriteFailure(w, failure.Internal(""))
}
