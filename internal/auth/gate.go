package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"wildtrack-backend/internal/failure"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"

	bearerPrefix = "Bearer "
)

// StaffRoles may use the administrative API.
var StaffRoles = []string{RoleAdmin, RoleManager}

const (
	MsgNoToken      = "Access denied. No token provided."
	MsgTokenExpired = "Token expired. Please login again."
	MsgTokenInvalid = "Invalid token."
	MsgForbidden    = "Access denied. Admin privileges required."
)

type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

func IsValidRole(role string) bool {
	return slices.Contains(StaffRoles, role)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// Authenticate verifies the bearer token of r. A missing or malformed header
// fails without touching the verifier.
func Authenticate(r *http.Request, verifier TokenVerifier) (*Claims, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, failure.Unauthorized(MsgNoToken)
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, failure.Unauthorized(MsgTokenExpired)
		}
		return nil, failure.Unauthorized(MsgTokenInvalid)
	}
	return claims, nil
}

func Authorize(claims *Claims, allowed ...string) error {
	if claims == nil {
		return failure.Unauthorized(MsgNoToken)
	}
	if !slices.Contains(allowed, claims.Role) {
		return failure.Forbidden(MsgForbidden)
	}
	return nil
}

// OptionalAuthenticate returns nil for anonymous callers and for tokens that
// do not verify.
func OptionalAuthenticate(r *http.Request, verifier TokenVerifier) *Claims {
	token, ok := BearerToken(r)
	if !ok {
		return nil
	}
	claims, err := verifier.Verify(token)
	if err != nil {
		return nil
	}
	return claims
}
