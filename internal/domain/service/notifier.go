package service

import "context"

// Notifier defines the interface for outbound account email delivery.
// Delivery is best-effort: the account service dispatches sends on a
// separate goroutine and never fails an operation on a send error.
type Notifier interface {
	// SendVerificationEmail mails the one-time verification code to the
	// given address.
	SendVerificationEmail(ctx context.Context, email, code string) error
}
