// Package transform converts between integers, byte strings and the
// base64-like integer notation used by rsa-go.
//
// Integers are represented as *big.Int and must be nonnegative. Byte strings
// are big-endian, matching the I2OSP and OS2IP primitives of RFC 8017.
package transform

import (
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/errs"
)

// BitSize returns the number of bits needed to represent x. BitSize(0) is 0.
func BitSize(x *big.Int) int {
	if x == nil {
		return 0
	}
	return x.BitLen()
}

// ByteSize returns the number of bytes needed to represent x.
// Zero still occupies one byte.
func ByteSize(x *big.Int) int {
	bits := BitSize(x)
	if bits == 0 {
		return 1
	}
	return CeilDiv(bits, 8)
}

// CeilDiv returns the integer ceiling of num / div.
func CeilDiv(num, div int) int {
	q, r := num/div, num%div
	if r != 0 {
		q++
	}
	return q
}

// IntToBytes returns the minimal big-endian representation of x.
// Zero encodes as a single 0x00 byte.
func IntToBytes(x *big.Int) ([]byte, error) {
	if err := checkNonNegative(x); err != nil {
		return nil, err
	}
	if x.Sign() == 0 {
		return []byte{0}, nil
	}
	return x.Bytes(), nil
}

// IntToFixedBytes returns x as exactly size big-endian bytes, left-padded with
// zeros. It fails with an *errs.OverflowError when x needs more than size bytes.
func IntToFixedBytes(x *big.Int, size int) ([]byte, error) {
	if err := checkNonNegative(x); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, errs.Invalid("negative fill size %d", size)
	}

	needed := CeilDiv(x.BitLen(), 8)
	if needed > size {
		return nil, &errs.OverflowError{What: "integer", Size: needed, Limit: size}
	}

	return x.FillBytes(make([]byte, size)), nil
}

// BytesToInt interprets buf as a big-endian unsigned integer.
// An empty buffer is zero.
func BytesToInt(buf []byte) *big.Int {
	return new(big.Int).SetBytes(buf)
}

func checkNonNegative(x *big.Int) error {
	if x == nil {
		return errs.Invalid("nil integer")
	}
	if x.Sign() < 0 {
		return errs.Invalid("only nonnegative integers are supported, got %s", x)
	}
	return nil
}
