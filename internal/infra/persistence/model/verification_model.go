package model

import (
	"time"

	"github.com/google/uuid"
)

// VerificationModel mirrors the 'verifications' table. AccountID references
// accounts.id and is unique, so at most one pending verification exists per
// account.
type VerificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Code      string    `gorm:"type:varchar(64);unique;not null"`
	AccountID uuid.UUID `gorm:"type:uuid;unique;not null"`
	CreatedAt time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (VerificationModel) TableName() string {
	return "verifications"
}
