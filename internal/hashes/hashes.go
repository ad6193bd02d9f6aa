// Package hashes is the registry of hash methods usable for signing and mask
// generation, together with the DER DigestInfo prefixes that identify them
// inside a PKCS#1 v1.5 signature.
package hashes

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"
	"sort"

	"github.com/cloudflare/circl/xof"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"

	"github.com/vaultsandbox/rsa-go/internal/errs"
)

// Hash method names.
const (
	MD5       = "MD5"
	SHA1      = "SHA-1"
	SHA224    = "SHA-224"
	SHA256    = "SHA-256"
	SHA384    = "SHA-384"
	SHA512    = "SHA-512"
	SHA3_256  = "SHA3-256"
	SHA3_384  = "SHA3-384"
	SHA3_512  = "SHA3-512"
	RIPEMD160 = "RIPEMD-160"
	SHAKE128  = "SHAKE128"
	SHAKE256  = "SHAKE256"
)

// readBlockSize is the chunk size used when hashing a reader.
const readBlockSize = 1024

// Method describes a registered hash function.
type Method struct {
	Name string
	// Size is the digest length in bytes.
	Size int
	New  func() hash.Hash
}

var methods = map[string]Method{
	MD5:       {MD5, md5.Size, md5.New},
	SHA1:      {SHA1, sha1.Size, sha1.New},
	SHA224:    {SHA224, sha256.Size224, sha256.New224},
	SHA256:    {SHA256, sha256.Size, sha256.New},
	SHA384:    {SHA384, sha512.Size384, sha512.New384},
	SHA512:    {SHA512, sha512.Size, sha512.New},
	SHA3_256:  {SHA3_256, 32, sha3.New256},
	SHA3_384:  {SHA3_384, 48, sha3.New384},
	SHA3_512:  {SHA3_512, 64, sha3.New512},
	RIPEMD160: {RIPEMD160, ripemd160.Size, ripemd160.New},
	SHAKE128:  {SHAKE128, 32, newXOF(xof.SHAKE128, 32, 168)},
	SHAKE256:  {SHAKE256, 64, newXOF(xof.SHAKE256, 64, 136)},
}

// These are ASN1 DER structures:
//
//	DigestInfo ::= SEQUENCE {
//	  digestAlgorithm AlgorithmIdentifier,
//	  digest OCTET STRING
//	}
//
// The prefix is everything up to the digest bytes. SHAKE has no PKCS#1 v1.5
// encoding and is absent here.
var digestInfoPrefixes = map[string][]byte{
	MD5:       {0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10},
	SHA1:      {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14},
	SHA224:    {0x30, 0x2d, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x04, 0x05, 0x00, 0x04, 0x1c},
	SHA256:    {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x01, 0x05, 0x00, 0x04, 0x20},
	SHA384:    {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x02, 0x05, 0x00, 0x04, 0x30},
	SHA512:    {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x03, 0x05, 0x00, 0x04, 0x40},
	SHA3_256:  {0x30, 0x31, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x08, 0x05, 0x00, 0x04, 0x20},
	SHA3_384:  {0x30, 0x41, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x09, 0x05, 0x00, 0x04, 0x30},
	SHA3_512:  {0x30, 0x51, 0x30, 0x0d, 0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02, 0x0a, 0x05, 0x00, 0x04, 0x40},
	RIPEMD160: {0x30, 0x20, 0x30, 0x08, 0x06, 0x06, 0x28, 0xcf, 0x06, 0x03, 0x00, 0x31, 0x04, 0x14},
}

// identifyOrder fixes the scan order of the prefix table.
var identifyOrder = sortedKeys(digestInfoPrefixes)

// Lookup returns the method registered under name.
func Lookup(name string) (Method, error) {
	m, ok := methods[name]
	if !ok {
		return Method{}, errs.UnknownHash(name)
	}
	return m, nil
}

// Names returns the registered method names in sorted order.
func Names() []string {
	return sortedKeys(methods)
}

// Compute hashes msg with the named method.
func Compute(msg []byte, name string) ([]byte, error) {
	m, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	h := m.New()
	h.Write(msg)
	return h.Sum(nil), nil
}

// ComputeReader hashes everything r yields, reading fixed-size blocks.
func ComputeReader(r io.Reader, name string) ([]byte, error) {
	m, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errs.Invalid("reader must not be nil")
	}

	h := m.New()
	buf := make([]byte, readBlockSize)
	for {
		n, err := r.Read(buf)
		h.Write(buf[:n])
		if err == io.EOF {
			return h.Sum(nil), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// DigestInfoPrefix returns a copy of the DER prefix for name.
func DigestInfoPrefix(name string) ([]byte, error) {
	if _, err := Lookup(name); err != nil {
		return nil, err
	}
	prefix, ok := digestInfoPrefixes[name]
	if !ok {
		return nil, errs.Invalid("hash method %q has no DigestInfo encoding", name)
	}
	return bytes.Clone(prefix), nil
}

// DigestInfo returns prefix(name) || digest.
func DigestInfo(name string, digest []byte) ([]byte, error) {
	prefix, err := DigestInfoPrefix(name)
	if err != nil {
		return nil, err
	}
	return append(prefix, digest...), nil
}

// Identify finds the method whose prefix starts digestInfo and returns its
// name and the bytes after the prefix.
func Identify(digestInfo []byte) (name string, digest []byte, ok bool) {
	for _, name := range identifyOrder {
		prefix := digestInfoPrefixes[name]
		if bytes.HasPrefix(digestInfo, prefix) {
			return name, digestInfo[len(prefix):], true
		}
	}
	return "", nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
