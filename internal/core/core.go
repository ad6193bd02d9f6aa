// Package core implements the raw RSA trapdoor on integers: the public and
// private exponentiations, the CRT fast path and message blinding.
package core

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/internal/randnum"
)

var one = big.NewInt(1)

// EncryptInt returns m^e mod n.
func EncryptInt(m, e, n *big.Int) (*big.Int, error) {
	if err := checkOperand(m, n); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(m, e, n), nil
}

// DecryptInt returns c^d mod n without the CRT shortcut.
func DecryptInt(c, d, n *big.Int) (*big.Int, error) {
	return EncryptInt(c, d, n)
}

// CRTKey carries the private values needed by DecryptCRT.
type CRTKey struct {
	N    *big.Int
	P    *big.Int
	Q    *big.Int
	Dp   *big.Int // d mod (p-1)
	Dq   *big.Int // d mod (q-1)
	Qinv *big.Int // q^-1 mod p
}

// DecryptCRT computes c^d mod n from the exponentiations modulo p and q,
// recombined with Garner's formula.
func DecryptCRT(c *big.Int, k *CRTKey) (*big.Int, error) {
	if err := checkOperand(c, k.N); err != nil {
		return nil, err
	}

	nbits := k.N.BitLen()
	pMod := saferith.ModulusFromBytes(k.P.Bytes())
	qMod := saferith.ModulusFromBytes(k.Q.Bytes())
	cNat := toNat(c)

	cp := new(saferith.Nat).Mod(cNat, pMod)
	cq := new(saferith.Nat).Mod(cNat, qMod)
	m1 := new(saferith.Nat).Exp(cp, toNat(k.Dp), pMod)
	m2 := new(saferith.Nat).Exp(cq, toNat(k.Dq), qMod)

	// h = qinv * (m1 - m2) mod p
	diff := new(saferith.Nat).ModSub(m1, new(saferith.Nat).Mod(m2, pMod), pMod)
	h := new(saferith.Nat).ModMul(diff, toNat(k.Qinv), pMod)

	// m = m2 + h*q, which is below n
	hq := new(saferith.Nat).Mul(h, toNat(k.Q), nbits)
	m := new(saferith.Nat).Add(hq, m2, nbits)

	return new(big.Int).SetBytes(m.Bytes()), nil
}

// BlindingFactor draws a random r in [1, n-1] coprime to n and returns r
// together with its inverse modulo n.
func BlindingFactor(rand io.Reader, n *big.Int) (r, rInv *big.Int, err error) {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return nil, nil, errs.Invalid("modulus too small for blinding")
	}

	max := new(big.Int).Sub(n, one)
	rInv = new(big.Int)
	for {
		r, err = randnum.RandInt(rand, max)
		if err != nil {
			return nil, nil, err
		}
		if rInv.ModInverse(r, n) != nil {
			return r, rInv, nil
		}
	}
}

// Blind returns x * r^e mod n.
func Blind(x, r, e, n *big.Int) *big.Int {
	b := new(big.Int).Exp(r, e, n)
	b.Mul(b, x)
	return b.Mod(b, n)
}

// Unblind returns y * rInv mod n.
func Unblind(y, rInv, n *big.Int) *big.Int {
	u := new(big.Int).Mul(y, rInv)
	return u.Mod(u, n)
}

func checkOperand(x, n *big.Int) error {
	if x == nil || x.Sign() < 0 {
		return errs.Invalid("operand must be a non-negative integer")
	}
	if x.Cmp(n) >= 0 {
		return &errs.OverflowError{
			What:  "integer",
			Size:  (x.BitLen() + 7) / 8,
			Limit: (n.BitLen() + 7) / 8,
		}
	}
	return nil
}

func toNat(x *big.Int) *saferith.Nat {
	return new(saferith.Nat).SetBytes(x.Bytes())
}
