package rsa

import (
	"crypto/subtle"
	"io"
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/core"
	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/internal/hashes"
	"github.com/vaultsandbox/rsa-go/internal/randnum"
	"github.com/vaultsandbox/rsa-go/transform"
)

// Block type markers.
const (
	blockTypeSign    = 0x01
	blockTypeEncrypt = 0x02
)

// Encrypt encrypts message with PKCS#1 v1.5 padding using crypto/rand.
//
// The message must be at most pub.Size()-11 bytes long. The ciphertext is
// exactly pub.Size() bytes long.
func Encrypt(message []byte, pub *PublicKey) ([]byte, error) {
	return EncryptWithRand(nil, message, pub)
}

// EncryptWithRand is Encrypt with an explicit source for the padding bytes.
// A nil rand uses crypto/rand.
func EncryptWithRand(rand io.Reader, message []byte, pub *PublicKey) ([]byte, error) {
	k := pub.Size()
	block, err := padForEncryption(rand, message, k)
	if err != nil {
		return nil, err
	}

	c, err := core.EncryptInt(transform.BytesToInt(block), pub.e, pub.n)
	if err != nil {
		return nil, err
	}
	return transform.IntToFixedBytes(c, k)
}

// Decrypt decrypts a PKCS#1 v1.5 ciphertext.
//
// Every failure returns ErrDecryption and nothing else, so callers cannot
// learn which part of the block was wrong.
func Decrypt(ciphertext []byte, priv *PrivateKey) ([]byte, error) {
	k := priv.Size()
	if len(ciphertext) != k || k < PaddingOverhead {
		return nil, ErrDecryption
	}

	c := transform.BytesToInt(ciphertext)
	if c.Cmp(priv.n) >= 0 {
		return nil, ErrDecryption
	}
	m, err := privateOp(c, priv)
	if err != nil {
		return nil, ErrDecryption
	}
	em, err := transform.IntToFixedBytes(m, k)
	if err != nil {
		return nil, ErrDecryption
	}

	return unpadEncryption(em)
}

// Sign hashes message with hashName and signs the digest.
func Sign(message []byte, priv *PrivateKey, hashName string) ([]byte, error) {
	digest, err := ComputeHash(message, hashName)
	if err != nil {
		return nil, err
	}
	return SignHash(digest, priv, hashName)
}

// SignHash signs a precomputed digest. hashName must name the method that
// produced it.
func SignHash(digest []byte, priv *PrivateKey, hashName string) ([]byte, error) {
	m, err := hashes.Lookup(hashName)
	if err != nil {
		return nil, err
	}
	if len(digest) != m.Size {
		return nil, errs.Invalid("%s digest must be %d bytes, got %d", hashName, m.Size, len(digest))
	}
	info, err := hashes.DigestInfo(hashName, digest)
	if err != nil {
		return nil, err
	}

	k := priv.Size()
	block, err := padForSigning(info, k)
	if err != nil {
		return nil, err
	}

	s, err := privateOp(transform.BytesToInt(block), priv)
	if err != nil {
		return nil, err
	}
	return transform.IntToFixedBytes(s, k)
}

// Verify checks that signature is a valid signature of message and returns
// the name of the hash method it was made with.
//
// Every failure returns ErrVerification.
func Verify(message, signature []byte, pub *PublicKey) (string, error) {
	em, err := openSignature(signature, pub)
	if err != nil {
		return "", err
	}
	info, err := parseSignatureBlock(em)
	if err != nil {
		return "", err
	}
	hashName, _, ok := hashes.Identify(info)
	if !ok {
		return "", ErrVerification
	}

	digest, err := ComputeHash(message, hashName)
	if err != nil {
		return "", ErrVerification
	}
	expectedInfo, err := hashes.DigestInfo(hashName, digest)
	if err != nil {
		return "", ErrVerification
	}
	expected, err := padForSigning(expectedInfo, len(em))
	if err != nil {
		return "", ErrVerification
	}

	if subtle.ConstantTimeCompare(expected, em) != 1 {
		return "", ErrVerification
	}
	return hashName, nil
}

// FindSignatureHash opens signature and returns the hash method named in it
// together with the embedded digest. It does not check the digest against
// any message.
func FindSignatureHash(signature []byte, pub *PublicKey) (string, []byte, error) {
	em, err := openSignature(signature, pub)
	if err != nil {
		return "", nil, err
	}
	info, err := parseSignatureBlock(em)
	if err != nil {
		return "", nil, err
	}

	hashName, digest, ok := hashes.Identify(info)
	if !ok {
		return "", nil, ErrVerification
	}
	m, err := hashes.Lookup(hashName)
	if err != nil || len(digest) != m.Size {
		return "", nil, ErrVerification
	}
	return hashName, digest, nil
}

// padForEncryption builds 00 02 PS 00 message, with PS random and nonzero.
func padForEncryption(rand io.Reader, message []byte, k int) ([]byte, error) {
	maxLen := k - PaddingOverhead
	if len(message) > maxLen {
		return nil, &OverflowError{What: "message", Size: len(message), Limit: max(maxLen, 0)}
	}

	psLen := k - len(message) - 3
	ps, err := randnum.NonZeroBytes(rand, psLen)
	if err != nil {
		return nil, err
	}

	block := make([]byte, k)
	block[1] = blockTypeEncrypt
	copy(block[2:], ps)
	copy(block[3+psLen:], message)
	return block, nil
}

// unpadEncryption checks the 00 02 PS 00 M layout and returns M. The scan
// runs over the whole block regardless of where it fails.
func unpadEncryption(em []byte) ([]byte, error) {
	firstByteIsZero := subtle.ConstantTimeByteEq(em[0], 0)
	secondByteIsTwo := subtle.ConstantTimeByteEq(em[1], blockTypeEncrypt)

	// lookingForIndex is 1 until the first zero byte after the header.
	lookingForIndex := 1
	index := 0
	for i := 2; i < len(em); i++ {
		equals0 := subtle.ConstantTimeByteEq(em[i], 0)
		index = subtle.ConstantTimeSelect(lookingForIndex&equals0, i, index)
		lookingForIndex = subtle.ConstantTimeSelect(equals0, 0, lookingForIndex)
	}

	validPS := subtle.ConstantTimeLessOrEq(2+MinPaddingSize, index)
	valid := firstByteIsZero & secondByteIsTwo & (^lookingForIndex & 1) & validPS
	if valid != 1 {
		return nil, ErrDecryption
	}
	return em[index+1:], nil
}

// padForSigning builds 00 01 FF.. 00 info.
func padForSigning(info []byte, k int) ([]byte, error) {
	maxLen := k - PaddingOverhead
	if len(info) > maxLen {
		return nil, &OverflowError{What: "digest", Size: len(info), Limit: max(maxLen, 0)}
	}

	psLen := k - len(info) - 3
	block := make([]byte, k)
	block[1] = blockTypeSign
	for i := 2; i < 2+psLen; i++ {
		block[i] = 0xff
	}
	copy(block[3+psLen:], info)
	return block, nil
}

// openSignature applies the public exponent and returns the k-byte block.
func openSignature(signature []byte, pub *PublicKey) ([]byte, error) {
	k := pub.Size()
	if len(signature) != k {
		return nil, ErrVerification
	}
	m, err := core.EncryptInt(transform.BytesToInt(signature), pub.e, pub.n)
	if err != nil {
		return nil, ErrVerification
	}
	em, err := transform.IntToFixedBytes(m, k)
	if err != nil {
		return nil, ErrVerification
	}
	return em, nil
}

// parseSignatureBlock checks the 00 01 FF.. 00 layout and returns the
// DigestInfo after it.
func parseSignatureBlock(em []byte) ([]byte, error) {
	if len(em) < PaddingOverhead || em[0] != 0 || em[1] != blockTypeSign {
		return nil, ErrVerification
	}
	i := 2
	for i < len(em) && em[i] == 0xff {
		i++
	}
	if i == len(em) || em[i] != 0 || i-2 < MinPaddingSize {
		return nil, ErrVerification
	}
	return em[i+1:], nil
}

// privateOp computes x^d mod n through the CRT, blinded with a fresh factor.
func privateOp(x *big.Int, priv *PrivateKey) (*big.Int, error) {
	r, rInv, err := core.BlindingFactor(nil, priv.n)
	if err != nil {
		return nil, err
	}
	y, err := core.DecryptCRT(core.Blind(x, r, priv.e, priv.n), priv.crtKey())
	if err != nil {
		return nil, err
	}
	return core.Unblind(y, rInv, priv.n), nil
}
