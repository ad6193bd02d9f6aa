package rsa

import "github.com/vaultsandbox/rsa-go/internal/errs"

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidInput is returned for arguments outside an operation's domain.
	ErrInvalidInput = errs.ErrInvalidInput

	// ErrUnknownHash is returned for an unregistered hash method name. It
	// also matches ErrInvalidInput.
	ErrUnknownHash = errs.ErrUnknownHash

	// ErrOverflow is returned when a message, digest or mask does not fit.
	ErrOverflow = errs.ErrOverflow

	// ErrDecryption is returned for every decryption failure.
	ErrDecryption = errs.ErrDecryption

	// ErrVerification is returned when a signature does not verify.
	ErrVerification = errs.ErrVerification
)

// OverflowError carries the sizes involved in a capacity overflow.
type OverflowError = errs.OverflowError
