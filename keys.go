package rsa

import (
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/core"
	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/transform"
)

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

// PublicKey is an RSA public key. It is immutable; accessors return copies.
type PublicKey struct {
	n *big.Int
	e *big.Int
}

// NewPublicKey builds a public key from its modulus and exponent.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, errs.Invalid("modulus must be positive")
	}
	if e == nil || e.Cmp(bigThree) < 0 {
		return nil, errs.Invalid("public exponent must be at least 3")
	}
	return &PublicKey{n: new(big.Int).Set(n), e: new(big.Int).Set(e)}, nil
}

// N returns the modulus.
func (k *PublicKey) N() *big.Int { return new(big.Int).Set(k.n) }

// E returns the public exponent.
func (k *PublicKey) E() *big.Int { return new(big.Int).Set(k.e) }

// Size returns the modulus length in bytes.
func (k *PublicKey) Size() int {
	return transform.CeilDiv(transform.BitSize(k.n), 8)
}

// Equal reports whether k and x hold the same values.
func (k *PublicKey) Equal(x *PublicKey) bool {
	if k == nil || x == nil {
		return k == x
	}
	return k.n.Cmp(x.n) == 0 && k.e.Cmp(x.e) == 0
}

// PrivateKey is an RSA private key together with its CRT values. It is
// immutable; accessors return copies.
type PrivateKey struct {
	n, e, d *big.Int
	p, q    *big.Int

	exp1 *big.Int // d mod (p-1)
	exp2 *big.Int // d mod (q-1)
	coef *big.Int // q^-1 mod p
}

// NewPrivateKey builds a private key from n, e, d and the two primes,
// deriving the CRT values. The key is validated before it is returned.
func NewPrivateKey(n, e, d, p, q *big.Int) (*PrivateKey, error) {
	for _, v := range []*big.Int{n, e, d, p, q} {
		if v == nil || v.Sign() <= 0 {
			return nil, errs.Invalid("key values must be positive")
		}
	}

	k, err := newPrivateKey(new(big.Int).Set(p), new(big.Int).Set(q), new(big.Int).Set(e), new(big.Int).Set(d))
	if err != nil {
		return nil, err
	}
	if k.n.Cmp(n) != 0 {
		return nil, errs.Invalid("modulus is not the product of p and q")
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// newPrivateKey derives n and the CRT values. p and q are owned by the key.
func newPrivateKey(p, q, e, d *big.Int) (*PrivateKey, error) {
	if p.Cmp(bigOne) <= 0 || q.Cmp(bigOne) <= 0 {
		return nil, errs.Invalid("primes must be greater than 1")
	}
	coef := new(big.Int).ModInverse(q, p)
	if coef == nil {
		return nil, errs.Invalid("p and q are not coprime")
	}

	p1 := new(big.Int).Sub(p, bigOne)
	q1 := new(big.Int).Sub(q, bigOne)
	return &PrivateKey{
		n:    new(big.Int).Mul(p, q),
		e:    e,
		d:    d,
		p:    p,
		q:    q,
		exp1: new(big.Int).Mod(d, p1),
		exp2: new(big.Int).Mod(d, q1),
		coef: coef,
	}, nil
}

func (k *PrivateKey) N() *big.Int    { return new(big.Int).Set(k.n) }
func (k *PrivateKey) E() *big.Int    { return new(big.Int).Set(k.e) }
func (k *PrivateKey) D() *big.Int    { return new(big.Int).Set(k.d) }
func (k *PrivateKey) P() *big.Int    { return new(big.Int).Set(k.p) }
func (k *PrivateKey) Q() *big.Int    { return new(big.Int).Set(k.q) }
func (k *PrivateKey) Exp1() *big.Int { return new(big.Int).Set(k.exp1) }
func (k *PrivateKey) Exp2() *big.Int { return new(big.Int).Set(k.exp2) }
func (k *PrivateKey) Coef() *big.Int { return new(big.Int).Set(k.coef) }

// Size returns the modulus length in bytes.
func (k *PrivateKey) Size() int {
	return transform.CeilDiv(transform.BitSize(k.n), 8)
}

// Public returns the public half of the key.
func (k *PrivateKey) Public() *PublicKey {
	return &PublicKey{n: new(big.Int).Set(k.n), e: new(big.Int).Set(k.e)}
}

// Equal reports whether k and x hold the same values.
func (k *PrivateKey) Equal(x *PrivateKey) bool {
	if k == nil || x == nil {
		return k == x
	}
	return k.n.Cmp(x.n) == 0 && k.e.Cmp(x.e) == 0 && k.d.Cmp(x.d) == 0 &&
		k.p.Cmp(x.p) == 0 && k.q.Cmp(x.q) == 0
}

// Validate checks n = p·q, p ≠ q, e·d ≡ 1 (mod lcm(p-1, q-1)) and the CRT
// values. It does not test p and q for primality.
func (k *PrivateKey) Validate() error {
	if k.p.Cmp(k.q) == 0 {
		return errs.Invalid("p and q must differ")
	}
	if new(big.Int).Mul(k.p, k.q).Cmp(k.n) != 0 {
		return errs.Invalid("modulus is not the product of p and q")
	}

	lambda := carmichael(k.p, k.q)
	ed := new(big.Int).Mul(k.e, k.d)
	if ed.Mod(ed, lambda).Cmp(bigOne) != 0 {
		return errs.Invalid("d is not the inverse of e")
	}

	p1 := new(big.Int).Sub(k.p, bigOne)
	q1 := new(big.Int).Sub(k.q, bigOne)
	if new(big.Int).Mod(k.d, p1).Cmp(k.exp1) != 0 || new(big.Int).Mod(k.d, q1).Cmp(k.exp2) != 0 {
		return errs.Invalid("CRT exponents do not match d")
	}
	qc := new(big.Int).Mul(k.q, k.coef)
	if qc.Mod(qc, k.p).Cmp(bigOne) != 0 {
		return errs.Invalid("CRT coefficient is not the inverse of q")
	}
	return nil
}

func (k *PrivateKey) crtKey() *core.CRTKey {
	return &core.CRTKey{N: k.n, P: k.p, Q: k.q, Dp: k.exp1, Dq: k.exp2, Qinv: k.coef}
}

// carmichael returns lcm(p-1, q-1).
func carmichael(p, q *big.Int) *big.Int {
	p1 := new(big.Int).Sub(p, bigOne)
	q1 := new(big.Int).Sub(q, bigOne)
	gcd := new(big.Int).GCD(nil, nil, p1, q1)
	l := new(big.Int).Mul(p1, q1)
	return l.Div(l, gcd)
}
