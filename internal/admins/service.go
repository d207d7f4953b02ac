package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"wildtrack-backend/internal/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("admin not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidRole        = errors.New("role must be admin or manager")
)

type TokenIssuer interface {
	Issue(subjectID, role, username string) (string, error)
}

type Service struct {
	repo     Repository
	resolver auth.Resolver
	tokens   TokenIssuer
	static   *auth.StaticResolver
	now      func() time.Time
}

// NewService wires login through resolver. static may be nil; it is only
// consulted to describe the environment-configured administrator on Verify.
func NewService(repo Repository, resolver auth.Resolver, tokens TokenIssuer, static *auth.StaticResolver) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		tokens:   tokens,
		static:   static,
		now:      time.Now,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, auth.Identity, error) {
	id, err := s.resolver.Resolve(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrNoMatch) {
			return "", auth.Identity{}, ErrInvalidCredentials
		}
		return "", auth.Identity{}, err
	}

	token, err := s.tokens.Issue(id.ID, id.Role, id.Username)
	if err != nil {
		return "", auth.Identity{}, err
	}
	return token, id, nil
}

// Verify describes the caller behind verified claims. Store-backed accounts
// that were removed or deactivated since the token was issued are rejected.
func (s *Service) Verify(ctx context.Context, claims *auth.Claims) (auth.Identity, error) {
	if claims == nil {
		return auth.Identity{}, ErrNotFound
	}

	if claims.SubjectID() == auth.StaticAdminID {
		if !s.static.Enabled() || s.static.Username != claims.Username {
			return auth.Identity{}, ErrNotFound
		}
		return auth.Identity{
			ID:       auth.StaticAdminID,
			Username: s.static.Username,
			Name:     s.static.Name,
			Email:    s.static.Email,
			Role:     auth.RoleAdmin,
		}, nil
	}

	admin, err := s.repo.FindByID(ctx, claims.SubjectID())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return auth.Identity{}, ErrNotFound
		}
		return auth.Identity{}, err
	}
	if !admin.IsActive {
		return auth.Identity{}, ErrNotFound
	}
	return admin.Identity(), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Admin, error) {
	admin, err := s.build(req)
	if err != nil {
		return Admin{}, err
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Admin{}, ErrUsernameExists
		}
		return Admin{}, err
	}
	return admin, nil
}

// EnsureDefault creates the administrator unless the username is taken.
func (s *Service) EnsureDefault(ctx context.Context, req CreateRequest) (Admin, bool, error) {
	admin, err := s.build(req)
	if err != nil {
		return Admin{}, false, err
	}
	created, err := s.repo.EnsureByUsername(ctx, admin)
	if err != nil {
		return Admin{}, false, err
	}
	return admin, created, nil
}

func (s *Service) build(req CreateRequest) (Admin, error) {
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = auth.RoleAdmin
	}
	if !auth.IsValidRole(role) {
		return Admin{}, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Admin{}, err
	}

	now := s.now()
	return Admin{
		ID:           primitive.NewObjectID().Hex(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
