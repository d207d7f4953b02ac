package admins

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"wildtrack-backend/internal/auth"
)

// StoreResolver authenticates active administrators stored in the database.
type StoreResolver struct {
	repo    Repository
	log     *zap.Logger
	now     func() time.Time
	noMatch func(password string)
}

func NewStoreResolver(repo Repository, log *zap.Logger) *StoreResolver {
	return &StoreResolver{repo: repo, log: log, now: time.Now, noMatch: auth.CompareDummy}
}

func (s *StoreResolver) Resolve(ctx context.Context, username, password string) (auth.Identity, error) {
	admin, err := s.repo.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.noMatch(password)
			return auth.Identity{}, auth.ErrNoMatch
		}
		return auth.Identity{}, err
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return auth.Identity{}, auth.ErrNoMatch
	}

	// A failed last-login write must not block the login.
	if err := s.repo.TouchLastLogin(ctx, admin.ID, s.now()); err != nil {
		s.log.Warn("admins login: last login not recorded",
			zap.String("admin_id", admin.ID),
			zap.Error(err),
		)
	}

	return admin.Identity(), nil
}
