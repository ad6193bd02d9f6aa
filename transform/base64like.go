package transform

import (
	"math/big"
	"strings"

	"github.com/vaultsandbox/rsa-go/internal/errs"
)

// Base64LikeAlphabet lists the 64 digit symbols in value order.
// Unlike RFC 4648, digits come first and there is no padding.
const Base64LikeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var sixtyFour = big.NewInt(64)

// IntToBase64Like encodes x most significant digit first. Zero encodes as "0".
func IntToBase64Like(x *big.Int) (string, error) {
	if err := checkNonNegative(x); err != nil {
		return "", err
	}
	if x.Sign() == 0 {
		return Base64LikeAlphabet[:1], nil
	}

	// Each symbol carries exactly six bits, so read them straight off the
	// binary representation instead of dividing.
	digits := CeilDiv(x.BitLen(), 6)
	out := make([]byte, digits)
	for i := 0; i < digits; i++ {
		var v uint
		for b := 0; b < 6; b++ {
			v |= x.Bit(i*6+b) << b
		}
		out[digits-1-i] = Base64LikeAlphabet[v]
	}

	return string(out), nil
}

// Base64LikeToInt decodes a string produced by IntToBase64Like.
func Base64LikeToInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, errs.Invalid("empty base64-like string")
	}

	result := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(Base64LikeAlphabet, s[i])
		if v < 0 {
			return nil, errs.Invalid("invalid base64-like symbol %q at offset %d", s[i], i)
		}
		result.Mul(result, sixtyFour)
		result.Add(result, digit.SetInt64(int64(v)))
	}

	return result, nil
}
