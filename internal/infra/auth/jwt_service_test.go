package auth

import (
	"testing"
	"time"

	"eats/config"
	"eats/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig(ttl time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Secret:   "test_secret_key_very_long_for_testing",
			TokenTTL: ttl,
		},
	}
}

func TestJWTService_SignAndVerify(t *testing.T) {
	jwtService, err := NewJWTService(testAuthConfig(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	accountID := uuid.New()

	token, err := jwtService.Sign(accountID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := jwtService.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, accountID, subject)
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{Auth: &config.AuthConfig{}})
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testAuthConfig(time.Hour))
	require.NoError(t, err)

	// Garbage token
	_, err = jwtService.Verify("not.a.token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// Empty token
	_, err = jwtService.Verify("")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_TamperedToken(t *testing.T) {
	jwtService, err := NewJWTService(testAuthConfig(time.Hour))
	require.NoError(t, err)

	token, err := jwtService.Sign(uuid.New())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = jwtService.Verify(tampered)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	signer, err := NewJWTService(testAuthConfig(time.Hour))
	require.NoError(t, err)

	verifier, err := NewJWTService(&config.Config{
		Auth: &config.AuthConfig{Secret: "a_completely_different_secret_key"},
	})
	require.NoError(t, err)

	token, err := signer.Sign(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// Build the service directly; the constructor replaces a non-positive
	// TTL with the default.
	expired := &jwtService{
		secret: []byte("test_secret_key_very_long_for_testing"),
		ttl:    -time.Minute,
	}

	token, err := expired.Sign(uuid.New())
	require.NoError(t, err)

	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
