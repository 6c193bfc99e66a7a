// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"eats/internal/domain/entity"

	"github.com/google/uuid"
)

// Result is the tagged outcome shared by every account operation. An
// operation either succeeded, or failed with a user-facing message; it
// never leaks a Go error across the usecase boundary.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Succeed builds the success variant.
func Succeed() Result {
	return Result{OK: true}
}

// Fail builds the failure variant carrying a user-facing message.
func Fail(message string) Result {
	return Result{OK: false, Error: message}
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=4"`
	Role     entity.Role `json:"role" validate:"required"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EditProfileInput carries the optional profile changes. Nil fields are
// left untouched.
type EditProfileInput struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=4"`
}

// --- Output DTOs ---

// AccountView is the externally visible projection of an Account.
// The password hash never leaves the core.
type AccountView struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	Verified bool        `json:"verified"`
}

// NewAccountView maps an Account entity onto its public projection.
func NewAccountView(account *entity.Account) *AccountView {
	if account == nil {
		return nil
	}

	return &AccountView{
		ID:       account.ID,
		Email:    account.Email,
		Role:     account.Role,
		Verified: account.Verified,
	}
}

// RegisterOutput reports whether the account was created.
type RegisterOutput struct {
	Result
}

// LoginOutput returns the bearer token after successful authentication.
type LoginOutput struct {
	Result
	Token string `json:"token,omitempty"`
}

// ProfileOutput returns the requested account.
type ProfileOutput struct {
	Result
	Account *AccountView `json:"account,omitempty"`
}

// EditProfileOutput reports whether the profile changes were persisted.
type EditProfileOutput struct {
	Result
}

// VerifyEmailOutput reports whether a verification code was redeemed.
type VerifyEmailOutput struct {
	Result
}

// AccountUsecase defines the account lifecycle operations offered to the
// delivery layer. Every operation is total: it always returns a tagged
// result value and never panics or returns an error.
type AccountUsecase interface {
	// Register creates an unverified account and dispatches a
	// verification email.
	Register(ctx context.Context, input *RegisterInput) *RegisterOutput

	// Login checks credentials and issues a bearer token.
	Login(ctx context.Context, input *LoginInput) *LoginOutput

	// GetProfile loads the account with the given id.
	GetProfile(ctx context.Context, accountID uuid.UUID) *ProfileOutput

	// EditProfile applies email and/or password changes. An email change
	// resets verification and issues a fresh code.
	EditProfile(ctx context.Context, accountID uuid.UUID, input *EditProfileInput) *EditProfileOutput

	// VerifyEmail redeems a one-time verification code.
	VerifyEmail(ctx context.Context, code string) *VerifyEmailOutput
}
