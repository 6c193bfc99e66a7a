// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity in the system, representing one registered
// person regardless of their role.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Email        string    // The account's login identifier. Unique across the system.
	PasswordHash string    // Stores the bcrypt-hashed password. Never holds plaintext.
	Role         Role      // The role picked at registration: owner, client or delivery.
	Verified     bool      // True only after a verification code has been redeemed.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Credentials is the minimal projection of an Account used during login.
// Only the fields needed to check a password and issue a token are loaded.
type Credentials struct {
	AccountID    uuid.UUID // The account the credentials belong to.
	PasswordHash string    // The stored bcrypt hash to compare against.
}
