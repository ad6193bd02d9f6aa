package rsa

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/logging"
	"github.com/vaultsandbox/rsa-go/prime"
	"github.com/vaultsandbox/rsa-go/transform"
)

var errNotCoprime = errors.New("exponent is not coprime with the totient")

// keyParams are the checked inputs of NewKeys.
type keyParams struct {
	Bits     int `validate:"gte=16"`
	PoolSize int `validate:"gte=1"`
	Exponent int `validate:"gte=3"`
}

func (p keyParams) validate() error {
	if err := validator.New().Struct(p); err != nil {
		return errs.Invalid("key parameters: %v", err)
	}
	if p.Exponent%2 == 0 {
		return errs.Invalid("public exponent must be odd, got %d", p.Exponent)
	}
	return nil
}

// NewKeys generates an RSA key pair with an nbits-bit modulus.
//
// Primes are searched on the calling goroutine, or raced across
// WithPoolSize goroutines. Generation retries until it succeeds; ctx is the
// only bound on how long that takes.
func NewKeys(ctx context.Context, nbits int, opts ...KeyOption) (*PublicKey, *PrivateKey, error) {
	cfg := defaultKeyConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	params := keyParams{Bits: nbits, PoolSize: cfg.poolSize, Exponent: cfg.exponent}
	if err := params.validate(); err != nil {
		return nil, nil, err
	}

	log := logging.Logger()
	start := time.Now()
	gen := &prime.Generator{Rand: cfg.rand, Tester: cfg.tester}
	getPrime := func(bits int) (*big.Int, error) {
		if cfg.poolSize > 1 {
			return gen.GetParallel(ctx, bits, cfg.poolSize)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return gen.Get(bits)
	}

	e := big.NewInt(int64(cfg.exponent))
	for {
		p, q, err := findPQ(nbits, cfg.accurate, getPrime)
		if err != nil {
			return nil, nil, err
		}

		priv, err := keyFromPrimes(p, q, e)
		if errors.Is(err, errNotCoprime) {
			log.Debug("exponent shares a factor with the totient, regenerating primes", "bits", nbits)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		log.Debug("key pair generated",
			"bits", nbits,
			"pool_size", cfg.poolSize,
			"elapsed", time.Since(start))
		return priv.Public(), priv, nil
	}
}

// findPQ returns two distinct primes whose product has nbits bits when
// accurate is set. The larger prime comes first.
func findPQ(nbits int, accurate bool, getPrime func(int) (*big.Int, error)) (p, q *big.Int, err error) {
	// Spread the sizes a little so p and q are not too close together.
	half := nbits / 2
	pbits := half + nbits/32
	qbits := nbits - pbits

	if p, err = getPrime(pbits); err != nil {
		return nil, nil, err
	}
	if q, err = getPrime(qbits); err != nil {
		return nil, nil, err
	}

	changeP := false
	for !acceptable(p, q, nbits, accurate) {
		logging.Logger().Debug("prime pair rejected, regenerating", "change_p", changeP)
		if changeP {
			p, err = getPrime(pbits)
		} else {
			q, err = getPrime(qbits)
		}
		if err != nil {
			return nil, nil, err
		}
		changeP = !changeP
	}

	if p.Cmp(q) < 0 {
		p, q = q, p
	}
	return p, q, nil
}

func acceptable(p, q *big.Int, nbits int, accurate bool) bool {
	if p.Cmp(q) == 0 {
		return false
	}
	if !accurate {
		return true
	}
	return transform.BitSize(new(big.Int).Mul(p, q)) == nbits
}

// keyFromPrimes computes d = e^-1 mod lcm(p-1, q-1) and the CRT values.
func keyFromPrimes(p, q, e *big.Int) (*PrivateKey, error) {
	lambda := carmichael(p, q)
	if !prime.AreRelativelyPrime(e, lambda) {
		return nil, errNotCoprime
	}
	d := new(big.Int).ModInverse(e, lambda)
	return newPrivateKey(p, q, new(big.Int).Set(e), d)
}
