// Package token turns bearer tokens into verified identity claims. The
// server itself never mints tokens; verification is delegated either to an
// OIDC provider's published keys or, for local development, a shared HMAC
// secret.
package token

import (
	"context"
	"errors"

	"noti-server/internal/domain"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

type Verifier interface {
	// Verify checks the raw bearer token and extracts its identity claims.
	Verify(ctx context.Context, raw string) (*domain.Identity, error)
}
