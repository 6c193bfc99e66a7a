// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"eats/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVerificationNotFound is returned when no verification matches the given code or owner.
var ErrVerificationNotFound = errors.New("verification not found")

// VerificationRepository defines the standard operations for pending
// email-verification persistence.
type VerificationRepository interface {
	// FindByCode retrieves a verification by its one-time code. When
	// withAccount is true the owning account is loaded as well, so a
	// redeem can update the owner without a second round trip.
	FindByCode(ctx context.Context, code string, withAccount bool) (*entity.Verification, error)

	// Create persists a new verification record.
	Create(ctx context.Context, verification *entity.Verification) error

	// DeleteByID removes a single verification, consuming its code.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteByAccountID removes any pending verification owned by the
	// account. Used when an email change supersedes the old code.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}
