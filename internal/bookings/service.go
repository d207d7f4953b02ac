package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wildtrack-backend/internal/failure"
	"wildtrack-backend/internal/httpx"
	"wildtrack-backend/internal/schedule"
	"wildtrack-backend/internal/validation"
)

const recentLimit = 5

var (
	ErrNotFound    = errors.New("booking not found")
	ErrEmptyUpdate = errors.New("nothing to update")
)

// Catalog prices a package by name. ok is false for names that are not in
// the catalog.
type Catalog interface {
	PriceOf(ctx context.Context, name string) (price float64, ok bool, err error)
}

// Notifier is told about new bookings. It must not block.
type Notifier interface {
	BookingReceived(b Booking)
}

type Service struct {
	repo     Repository
	catalog  Catalog
	notifier Notifier
	location *time.Location
	now      func() time.Time
}

func NewService(repo Repository, catalog Catalog, notifier Notifier, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		location: location,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for date checks and timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RegisterValidations adds the booking tags used by the request types.
func RegisterValidations(v *validation.Validator) {
	v.RegisterSet("safari_package", PackageNames...)
}

// CheckDate rejects days before today in the service time zone. Malformed
// dates are left to the struct validation.
func (s *Service) CheckDate(date string) []failure.FieldError {
	past, err := schedule.IsDatePast(date, s.location, s.now())
	if err != nil || !past {
		return nil
	}
	return []failure.FieldError{{Field: "date", Message: "Date must be today or in the future"}}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Booking, error) {
	day, err := schedule.ParseDay(req.Date, s.location)
	if err != nil {
		return Booking{}, err
	}

	var total float64
	if s.catalog != nil {
		price, ok, err := s.catalog.PriceOf(ctx, req.SafariPackage)
		if err != nil {
			return Booking{}, err
		}
		if ok {
			total = price * float64(req.Guests)
		}
	}

	now := s.now()
	booking := Booking{
		ID:            primitive.NewObjectID().Hex(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		SafariPackage: req.SafariPackage,
		Date:          day,
		Guests:        req.Guests,
		Message:       req.Message,
		TotalAmount:   total,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return Booking{}, err
	}

	if s.notifier != nil {
		s.notifier.BookingReceived(booking)
	}
	return booking, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, page httpx.Page) ([]Booking, int64, error) {
	items, err := s.repo.List(ctx, filter, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	booking, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return booking, nil
}

// Update changes status and/or notes; at least one must be present.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Booking, error) {
	if req.Status == nil && req.Notes == nil {
		return Booking{}, ErrEmptyUpdate
	}

	set := bson.M{"updatedAt": s.now()}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Notes != nil {
		set["notes"] = strings.TrimSpace(*req.Notes)
	}

	updated, err := s.repo.Update(ctx, strings.TrimSpace(id), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (Stats, []Recent, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return Stats{}, nil, err
	}

	stats := Stats{
		Pending:   counts[StatusPending],
		Confirmed: counts[StatusConfirmed],
		Cancelled: counts[StatusCancelled],
		Completed: counts[StatusCompleted],
	}
	for _, n := range counts {
		stats.Total += n
	}

	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return Stats{}, nil, err
	}
	return stats, recent, nil
}
