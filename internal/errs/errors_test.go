package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownHash", ErrUnknownHash},
		{"ErrOverflow", ErrOverflow},
		{"ErrDecryption", ErrDecryption},
		{"ErrVerification", ErrVerification},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Fatal("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestUnknownHash(t *testing.T) {
	err := UnknownHash("SHA-999")

	if !errors.Is(err, ErrUnknownHash) {
		t.Errorf("errors.Is(err, ErrUnknownHash) = false")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false")
	}
	if errors.Is(err, ErrOverflow) {
		t.Errorf("errors.Is(err, ErrOverflow) = true")
	}
	if want := `unknown hash method: "SHA-999"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOverflowError(t *testing.T) {
	err := &OverflowError{What: "message", Size: 120, Limit: 117}

	if want := "message needs 120 bytes, but there is only space for 117"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrOverflow) {
		t.Error("OverflowError should match ErrOverflow")
	}

	wrapped := fmt.Errorf("encrypt: %w", err)
	var oe *OverflowError
	if !errors.As(wrapped, &oe) {
		t.Fatal("errors.As failed on wrapped OverflowError")
	}
	if oe.Limit != 117 {
		t.Errorf("Limit = %d, want 117", oe.Limit)
	}
}

func TestInvalid(t *testing.T) {
	err := Invalid("negative integer %d", -5)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Invalid() should wrap ErrInvalidInput")
	}
	if want := "invalid input: negative integer -5"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
