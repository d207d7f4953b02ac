package safaris

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wildtrack-backend/internal/cache"
	"wildtrack-backend/internal/utils"
)

const listCachePrefix = "safaris:list:"

var (
	ErrNotFound    = errors.New("safari package not found")
	ErrNameExists  = errors.New("safari package with this name already exists")
	ErrInvalidName = errors.New("name must contain at least one letter or digit")
	ErrGuestBounds = errors.New("minGuests cannot exceed maxGuests")
)

type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration, log *zap.Logger) *Service {
	if c == nil {
		c = cache.NewNoop()
	}
	return &Service{
		repo:  repo,
		cache: c,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// List serves from the cache when possible. Cache failures only cost a
// database round trip.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]SafariPackage, error) {
	key := filter.cacheKey()

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("safaris list: cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var items []SafariPackage
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
		s.log.Warn("safaris list: cache entry corrupt", zap.String("key", key))
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(items); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("safaris list: cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (SafariPackage, error) {
	item, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return SafariPackage{}, ErrNotFound
		}
		return SafariPackage{}, err
	}
	return item, nil
}

// PriceOf returns the catalog price of the named package. ok is false when
// the package is not in the catalog.
func (s *Service) PriceOf(ctx context.Context, name string) (float64, bool, error) {
	item, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return item.Price, true, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (SafariPackage, error) {
	item, err := s.build(req, s.now())
	if err != nil {
		return SafariPackage{}, err
	}

	if _, err := s.repo.FindByName(ctx, item.Name); err == nil {
		return SafariPackage{}, ErrNameExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return SafariPackage{}, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return SafariPackage{}, ErrNameExists
		}
		return SafariPackage{}, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (SafariPackage, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return SafariPackage{}, err
	}

	set := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug := utils.Slugify(name)
		if slug == "" {
			return SafariPackage{}, ErrInvalidName
		}
		set["name"] = name
		set["slug"] = slug
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.ShortDescription != nil {
		set["shortDescription"] = strings.TrimSpace(*req.ShortDescription)
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Currency != nil {
		set["currency"] = *req.Currency
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}

	maxGuests, minGuests := current.MaxGuests, current.MinGuests
	if req.MaxGuests != nil {
		maxGuests = *req.MaxGuests
		set["maxGuests"] = maxGuests
	}
	if req.MinGuests != nil {
		minGuests = *req.MinGuests
		set["minGuests"] = minGuests
	}
	if minGuests > maxGuests {
		return SafariPackage{}, ErrGuestBounds
	}

	if req.Image != nil {
		image := strings.TrimSpace(*req.Image)
		if image == "" {
			image = DefaultImage
		}
		set["image"] = image
	}
	if req.Features != nil {
		set["features"] = cleanList(*req.Features)
	}
	if req.Includes != nil {
		set["includes"] = cleanList(*req.Includes)
	}
	if req.Requirements != nil {
		set["requirements"] = cleanList(*req.Requirements)
	}
	if req.Schedule != nil {
		set["schedule"] = cleanSchedule(*req.Schedule)
	}
	if req.IsAvailable != nil {
		set["isAvailable"] = *req.IsAvailable
	}
	if req.IsPopular != nil {
		set["isPopular"] = *req.IsPopular
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	set["updatedAt"] = s.now()

	updated, err := s.repo.Update(ctx, current.ID, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return SafariPackage{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return SafariPackage{}, ErrNameExists
		}
		return SafariPackage{}, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// ToggleAvailability flips isAvailable with a read followed by a write.
// Concurrent toggles are last-writer-wins.
func (s *Service) ToggleAvailability(ctx context.Context, id string) (SafariPackage, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return SafariPackage{}, err
	}

	updated, err := s.repo.Update(ctx, current.ID, bson.M{
		"isAvailable": !current.IsAvailable,
		"updatedAt":   s.now(),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return SafariPackage{}, ErrNotFound
		}
		return SafariPackage{}, err
	}

	s.invalidate(ctx)
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
	s.invalidate(ctx)
	return nil
}

// Seed replaces the whole catalog with the default packages.
func (s *Service) Seed(ctx context.Context) ([]SafariPackage, error) {
	items := DefaultPackages(s.now())
	if err := s.repo.ReplaceAll(ctx, items); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return items, nil
}

// EnsureDefaults inserts the default packages whose names are missing and
// leaves existing ones untouched.
func (s *Service) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, item := range DefaultPackages(s.now()) {
		ok, err := s.repo.EnsureByName(ctx, item)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	if created > 0 {
		s.invalidate(ctx)
	}
	return created, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, listCachePrefix); err != nil {
		s.log.Warn("safaris cache: invalidation failed", zap.Error(err))
	}
}

func (s *Service) build(req CreateRequest, now time.Time) (SafariPackage, error) {
	name := strings.TrimSpace(req.Name)
	slug := utils.Slugify(name)
	if slug == "" {
		return SafariPackage{}, ErrInvalidName
	}

	minGuests := 1
	if req.MinGuests != nil {
		minGuests = *req.MinGuests
	}
	if minGuests > req.MaxGuests {
		return SafariPackage{}, ErrGuestBounds
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}
	image := strings.TrimSpace(req.Image)
	if image == "" {
		image = DefaultImage
	}
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}
	isPopular := false
	if req.IsPopular != nil {
		isPopular = *req.IsPopular
	}

	return SafariPackage{
		ID:               primitive.NewObjectID().Hex(),
		Name:             name,
		Slug:             slug,
		Description:      strings.TrimSpace(req.Description),
		ShortDescription: strings.TrimSpace(req.ShortDescription),
		Price:            req.Price,
		Currency:         currency,
		Duration:         req.Duration,
		MaxGuests:        req.MaxGuests,
		MinGuests:        minGuests,
		Image:            image,
		Features:         cleanList(req.Features),
		Includes:         cleanList(req.Includes),
		Requirements:     cleanList(req.Requirements),
		Schedule:         cleanSchedule(req.Schedule),
		IsAvailable:      isAvailable,
		IsPopular:        isPopular,
		Category:         category,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func cleanSchedule(s Schedule) Schedule {
	return Schedule{
		StartTime:    strings.TrimSpace(s.StartTime),
		EndTime:      strings.TrimSpace(s.EndTime),
		MeetingPoint: strings.TrimSpace(s.MeetingPoint),
	}
}
