package service

// QRCodeService defines the interface for QR code image generation.
type QRCodeService interface {
	// GenerateVerificationQR renders the verification redeem URL as a PNG
	// so it can be attached to the verification email.
	GenerateVerificationQR(redeemURL string) ([]byte, error)
}
