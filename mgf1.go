package rsa

import (
	"encoding/binary"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/internal/hashes"
)

// MGF1 expands seed into a length-byte mask by hashing seed followed by a
// big-endian 32-bit counter, as defined in RFC 8017 B.2.1.
func MGF1(seed []byte, length int, hashName string) ([]byte, error) {
	m, err := hashes.Lookup(hashName)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, errs.Invalid("mask length must not be negative, got %d", length)
	}
	if limit := uint64(m.Size) << 32; uint64(length) > limit {
		return nil, &OverflowError{What: "mask", Size: length, Limit: int(limit)}
	}

	out := make([]byte, 0, length+m.Size)
	var counter [4]byte
	h := m.New()
	for c := uint32(0); len(out) < length; c++ {
		binary.BigEndian.PutUint32(counter[:], c)
		h.Reset()
		h.Write(seed)
		h.Write(counter[:])
		out = h.Sum(out)
	}
	return out[:length], nil
}
