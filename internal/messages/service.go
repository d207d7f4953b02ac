package messages

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wildtrack-backend/internal/httpx"
)

const recentLimit = 5

var ErrNotFound = errors.New("message not found")

// Notifier is told about new contact messages. It must not block.
type Notifier interface {
	MessageReceived(m Message)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Message, error) {
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}

	now := s.now()
	msg := Message{
		ID:        primitive.NewObjectID().Hex(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IsRead:    false,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return Message{}, err
	}

	if s.notifier != nil {
		s.notifier.MessageReceived(msg)
	}
	return msg, nil
}

// List returns one page of messages, the total matching the filter and the
// number of unread messages overall.
func (s *Service) List(ctx context.Context, filter ListFilter, page httpx.Page) ([]Message, int64, int64, error) {
	items, err := s.repo.List(ctx, filter, page.Limit, page.Skip())
	if err != nil {
		return nil, 0, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, 0, err
	}
	unread, err := s.countUnread(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return items, total, unread, nil
}

func (s *Service) Get(ctx context.Context, id string) (Message, error) {
	msg, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Message{}, ErrNotFound
		}
		return Message{}, err
	}
	return msg, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	found, err := s.repo.MarkRead(ctx, strings.TrimSpace(id), s.now())
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
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
	total, err := s.repo.Count(ctx, ListFilter{})
	if err != nil {
		return Stats{}, nil, err
	}
	unread, err := s.countUnread(ctx)
	if err != nil {
		return Stats{}, nil, err
	}
	categories, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return Stats{}, nil, err
	}
	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return Stats{}, nil, err
	}

	return Stats{Total: total, Unread: unread, Categories: categories}, recent, nil
}

func (s *Service) countUnread(ctx context.Context) (int64, error) {
	unread := false
	return s.repo.Count(ctx, ListFilter{IsRead: &unread})
}
