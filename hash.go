package rsa

import (
	"io"

	"github.com/vaultsandbox/rsa-go/internal/hashes"
)

// Hash method names accepted by Sign, ComputeHash and MGF1.
const (
	MD5       = hashes.MD5
	SHA1      = hashes.SHA1
	SHA224    = hashes.SHA224
	SHA256    = hashes.SHA256
	SHA384    = hashes.SHA384
	SHA512    = hashes.SHA512
	SHA3_256  = hashes.SHA3_256
	SHA3_384  = hashes.SHA3_384
	SHA3_512  = hashes.SHA3_512
	RIPEMD160 = hashes.RIPEMD160

	// SHAKE128 and SHAKE256 yield 32 and 64 bytes. They have no DigestInfo
	// encoding, so they work with ComputeHash and MGF1 but not with Sign.
	SHAKE128 = hashes.SHAKE128
	SHAKE256 = hashes.SHAKE256
)

// ComputeHash returns the digest of message under the named method.
func ComputeHash(message []byte, hashName string) ([]byte, error) {
	return hashes.Compute(message, hashName)
}

// ComputeHashReader hashes everything r yields.
func ComputeHashReader(r io.Reader, hashName string) ([]byte, error) {
	return hashes.ComputeReader(r, hashName)
}

// HashMethods returns the registered method names, sorted.
func HashMethods() []string {
	return hashes.Names()
}
