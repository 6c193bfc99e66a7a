// Package notification implements outbound email delivery for the account service.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/wneessen/go-mail"

	"eats/config"
	"eats/internal/domain/service"
	"eats/internal/errors"
)

// smtpNotifier delivers verification emails over SMTP using go-mail.
// Delivery is best-effort; callers dispatch sends off the request path and
// only log failures.
type smtpNotifier struct {
	cfg    *config.SMTPConfig
	qr     service.QRCodeService
	logger *slog.Logger
}

// NewSMTPNotifier is the constructor for smtpNotifier.
func NewSMTPNotifier(cfg *config.Config, qr service.QRCodeService, logger *slog.Logger) (service.Notifier, error) {
	if cfg == nil || cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp configuration must be provided")
	}

	return &smtpNotifier{
		cfg:    cfg.SMTP,
		qr:     qr,
		logger: logger,
	}, nil
}

// SendVerificationEmail mails the one-time code together with a redeem link
// and a QR code of that link.
func (n *smtpNotifier) SendVerificationEmail(ctx context.Context, email, code string) error {
	redeemURL := n.redeemURL(code)

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(email); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject("Verify Your Email")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi %s,\n\nConfirm your email address by opening this link:\n\n%s\n\nYour verification code is %s.\n", email, redeemURL, code))

	// QR attachment is optional; a render failure must not block the mail.
	if n.qr != nil {
		png, err := n.qr.GenerateVerificationQR(redeemURL)
		if err == nil {
			err = msg.AttachReader("verify-email.png", bytes.NewReader(png))
		}
		if err != nil {
			n.logger.Warn("Failed to attach verification QR code", slog.Any("error", err))
		}
	}

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send verification email")
	}

	n.logger.Debug("Verification email sent", slog.String("to", email))

	return nil
}

// redeemURL builds the public link that redeems the code.
func (n *smtpNotifier) redeemURL(code string) string {
	return n.cfg.VerifyBaseURL + "?code=" + url.QueryEscape(code)
}
