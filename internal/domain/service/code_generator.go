package service

// VerificationCodeGenerator issues unguessable one-time verification codes.
// Generation has no persistence side effect; the caller stores the code on
// a Verification record.
type VerificationCodeGenerator interface {
	// Generate produces a cryptographically random code that is unique
	// with overwhelming probability.
	Generate() string
}
