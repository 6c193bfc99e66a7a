// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Verification is a pending proof-of-email-ownership record. The code acts
// as a one-time capability: redeeming it flips the owning account to
// verified and consumes the record. At most one live Verification exists
// per account; an email change deletes the old record before creating the
// replacement.
type Verification struct {
	ID        uuid.UUID // The unique ID for this verification record.
	Code      string    // The unguessable one-time code mailed to the account holder.
	AccountID uuid.UUID // Links this verification to the Account it proves ownership for.
	Account   *Account  // The owning account. Populated only when loaded with the owner.
	CreatedAt time.Time // Timestamp of when this verification was issued.
}
