package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken is returned by TokenService.Verify for any token that is
// malformed, tampered with or expired. Callers at the authentication
// boundary treat it as "no authenticated user".
var ErrInvalidToken = errors.New("invalid token")

// TokenService defines the interface for issuing and verifying bearer tokens.
// Tokens are opaque to callers; the only guaranteed claim is the subject
// account ID.
type TokenService interface {
	// Sign encodes the account ID into a signed bearer token.
	Sign(accountID uuid.UUID) (string, error)

	// Verify decodes a token and returns the subject account ID, or
	// ErrInvalidToken if the token cannot be trusted.
	Verify(token string) (uuid.UUID, error)
}
