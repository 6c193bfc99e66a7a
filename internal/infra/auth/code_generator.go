// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/google/uuid"

	"eats/internal/domain/service"
)

// uuidCodeGenerator issues verification codes as random UUIDs.
// uuid.NewString draws from crypto/rand, giving 122 bits of entropy per code.
type uuidCodeGenerator struct{}

// NewCodeGenerator is the constructor for uuidCodeGenerator.
func NewCodeGenerator() service.VerificationCodeGenerator {
	return &uuidCodeGenerator{}
}

// Generate produces a fresh one-time verification code.
func (g *uuidCodeGenerator) Generate() string {
	return uuid.NewString()
}
