package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

// ErrNoMatch tells a Chain to try the next resolver.
var ErrNoMatch = errors.New("no matching credentials")

// Identity is the resolved caller a token is issued for.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
}

// Resolver checks a username/password pair against one identity source.
// It returns ErrNoMatch when the source does not recognise the pair.
type Resolver interface {
	Resolve(ctx context.Context, username, password string) (Identity, error)
}

// Chain tries each resolver in order and stops at the first match. Any error
// other than ErrNoMatch aborts the chain.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, username, password string) (Identity, error) {
	for _, r := range c {
		if r == nil {
			continue
		}
		id, err := r.Resolve(ctx, username, password)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrNoMatch) {
			return Identity{}, err
		}
	}
	return Identity{}, ErrNoMatch
}

const StaticAdminID = "env-admin"

// StaticResolver is the single administrator configured through the environment.
// PasswordHash (bcrypt) takes precedence over the plain Password.
type StaticResolver struct {
	Username     string
	Password     string
	PasswordHash string
	Name         string
	Email        string
}

func (s *StaticResolver) Enabled() bool {
	return s != nil && s.Username != "" && (s.Password != "" || s.PasswordHash != "")
}

func (s *StaticResolver) Resolve(ctx context.Context, username, password string) (Identity, error) {
	if !s.Enabled() || username != s.Username {
		return Identity{}, ErrNoMatch
	}

	if s.PasswordHash != "" {
		if err := ComparePassword(s.PasswordHash, password); err != nil {
			return Identity{}, ErrNoMatch
		}
	} else {
		// Keep the plain-password path as slow as a stored-hash login.
		CompareDummy(password)
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) != 1 {
			return Identity{}, ErrNoMatch
		}
	}

	return Identity{
		ID:       StaticAdminID,
		Username: s.Username,
		Name:     s.Name,
		Email:    s.Email,
		Role:     RoleAdmin,
	}, nil
}
