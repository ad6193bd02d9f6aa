// Package errs provides the error kinds shared by every rsa-go package.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidInput is returned for arguments outside an operation's domain:
	// negative integers, nil values, bad sizes or unknown symbols.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownHash is returned when a hash method name is not registered.
	ErrUnknownHash error = &unknownHashError{}

	// ErrOverflow is returned when a value does not fit the space available
	// for it, such as a message that is too long for the key.
	ErrOverflow = errors.New("capacity overflow")

	// ErrDecryption is returned for every PKCS#1 decryption failure. It never
	// carries the reason the block was rejected.
	ErrDecryption = errors.New("decryption failed")

	// ErrVerification is returned when a signature does not verify.
	ErrVerification = errors.New("verification failed")
)

type unknownHashError struct{}

func (e *unknownHashError) Error() string { return "unknown hash method" }

// Is lets ErrUnknownHash match ErrInvalidInput.
func (e *unknownHashError) Is(target error) bool {
	return target == ErrInvalidInput
}

// OverflowError describes a capacity overflow.
type OverflowError struct {
	What  string // "message", "integer", "mask", ...
	Size  int
	Limit int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s needs %d bytes, but there is only space for %d", e.What, e.Size, e.Limit)
}

// Is implements errors.Is for sentinel error matching.
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// UnknownHash wraps ErrUnknownHash with the offending name.
func UnknownHash(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownHash, name)
}

// Invalid wraps ErrInvalidInput with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
