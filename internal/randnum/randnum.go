// Package randnum draws the random integers and byte strings used for prime
// candidates, padding strings and blinding factors.
package randnum

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/errs"
)

// randReader is the random source used when callers pass a nil reader.
// It defaults to crypto/rand but can be overridden for testing.
var randReader io.Reader = rand.Reader

// Reader returns r, or the package default when r is nil.
func Reader(r io.Reader) io.Reader {
	if r == nil {
		return randReader
	}
	return r
}

// ReadRandomBits reads nbits random bits. The leading byte only carries the
// nbits%8 low bits when nbits is not a multiple of eight.
func ReadRandomBits(r io.Reader, nbits int) ([]byte, error) {
	if nbits <= 0 {
		return nil, errs.Invalid("bit count must be positive, got %d", nbits)
	}

	nbytes, rbits := nbits/8, nbits%8
	if rbits > 0 {
		nbytes++
	}

	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(Reader(r), buf); err != nil {
		return nil, err
	}
	if rbits > 0 {
		buf[0] >>= 8 - rbits
	}

	return buf, nil
}

// ReadRandomInt returns a random integer of exactly nbits bits: the top bit
// is always set.
func ReadRandomInt(r io.Reader, nbits int) (*big.Int, error) {
	buf, err := ReadRandomBits(r, nbits)
	if err != nil {
		return nil, err
	}

	value := new(big.Int).SetBytes(buf)
	return value.SetBit(value, nbits-1, 1), nil
}

// ReadRandomOddInt returns a random odd integer of exactly nbits bits.
func ReadRandomOddInt(r io.Reader, nbits int) (*big.Int, error) {
	value, err := ReadRandomInt(r, nbits)
	if err != nil {
		return nil, err
	}
	return value.SetBit(value, 0, 1), nil
}

// RandInt returns a uniform random integer in [1, max].
func RandInt(r io.Reader, max *big.Int) (*big.Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, errs.Invalid("upper bound must be positive")
	}
	v, err := rand.Int(Reader(r), max)
	if err != nil {
		return nil, err
	}
	return v.Add(v, big.NewInt(1)), nil
}

// NonZeroBytes returns n random bytes, none of which is zero.
func NonZeroBytes(r io.Reader, n int) ([]byte, error) {
	if n < 0 {
		return nil, errs.Invalid("negative length %d", n)
	}

	out := make([]byte, 0, n)
	// Over-read a little; about 1 in 256 bytes is dropped.
	chunk := make([]byte, n+5)
	for len(out) < n {
		if _, err := io.ReadFull(Reader(r), chunk); err != nil {
			return nil, err
		}
		for _, b := range chunk {
			if b == 0 {
				continue
			}
			out = append(out, b)
			if len(out) == n {
				break
			}
		}
	}

	return out, nil
}
