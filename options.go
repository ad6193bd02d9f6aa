package rsa

import (
	"io"

	"github.com/vaultsandbox/rsa-go/prime"
)

// keyConfig holds configuration for key generation.
type keyConfig struct {
	accurate bool
	poolSize int
	exponent int
	rand     io.Reader
	tester   prime.Tester
}

// KeyOption configures key generation.
type KeyOption func(*keyConfig)

func defaultKeyConfig() *keyConfig {
	return &keyConfig{
		accurate: true,
		poolSize: 1,
		exponent: DefaultExponent,
	}
}

// WithAccurate controls whether the modulus must have exactly the requested
// number of bits. Default: true
func WithAccurate(accurate bool) KeyOption {
	return func(c *keyConfig) {
		c.accurate = accurate
	}
}

// WithPoolSize sets how many goroutines race to find each prime.
// Default: 1
func WithPoolSize(n int) KeyOption {
	return func(c *keyConfig) {
		c.poolSize = n
	}
}

// WithExponent sets the public exponent. It must be odd and at least 3.
// Default: 65537
func WithExponent(e int) KeyOption {
	return func(c *keyConfig) {
		c.exponent = e
	}
}

// WithRandReader sets the randomness source for prime candidates. With a pool
// size above one the reader is shared between goroutines and must be safe for
// concurrent use.
// Default: crypto/rand.Reader
func WithRandReader(r io.Reader) KeyOption {
	return func(c *keyConfig) {
		c.rand = r
	}
}

// WithPrimeTester replaces the Miller-Rabin primality test.
func WithPrimeTester(t prime.Tester) KeyOption {
	return func(c *keyConfig) {
		c.tester = t
	}
}
