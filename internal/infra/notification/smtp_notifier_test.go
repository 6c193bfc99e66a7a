package notification

import (
	"io"
	"log/slog"
	"testing"

	"eats/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSMTPConfig() *config.Config {
	return &config.Config{
		SMTP: &config.SMTPConfig{
			Host:          "localhost",
			Port:          1025,
			From:          "noreply@example.com",
			VerifyBaseURL: "http://localhost:8080/verify-email",
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewSMTPNotifier(t *testing.T) {
	notifier, err := NewSMTPNotifier(testSMTPConfig(), nil, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, notifier)
}

func TestNewSMTPNotifier_MissingConfig(t *testing.T) {
	_, err := NewSMTPNotifier(nil, nil, discardLogger())
	assert.Error(t, err)

	_, err = NewSMTPNotifier(&config.Config{}, nil, discardLogger())
	assert.Error(t, err)

	_, err = NewSMTPNotifier(&config.Config{SMTP: &config.SMTPConfig{}}, nil, discardLogger())
	assert.Error(t, err)
}

func TestSMTPNotifier_RedeemURL(t *testing.T) {
	notifier, err := NewSMTPNotifier(testSMTPConfig(), nil, discardLogger())
	require.NoError(t, err)

	n := notifier.(*smtpNotifier)
	assert.Equal(t,
		"http://localhost:8080/verify-email?code=code-123",
		n.redeemURL("code-123"))

	// Codes end up in a query string, so they must be escaped
	assert.Equal(t,
		"http://localhost:8080/verify-email?code=a%26b%3Dc",
		n.redeemURL("a&b=c"))
}
