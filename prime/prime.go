// Package prime generates random primes for RSA keys.
//
// Candidates are random odd integers of the requested bit length with the
// top bit forced to one, so every result has exactly that many significant
// bits. Each candidate is checked by a pluggable [Tester]; the default is a
// native Miller-Rabin test whose round count scales with the candidate size.
//
// [Get] searches on the calling goroutine. [GetParallel] races several
// searches and returns the first prime found.
package prime

import (
	"io"
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/internal/randnum"
)

// MinBits is the smallest accepted prime size. Below it the search space
// holds too few primes of exactly that length and the loop can spin forever.
const MinBits = 4

// Generator draws prime candidates from Rand and checks them with Tester.
// The zero value uses crypto/rand and MillerRabin.
type Generator struct {
	Rand   io.Reader
	Tester Tester
}

// DefaultGenerator is used by the package-level functions.
var DefaultGenerator = &Generator{}

func (g *Generator) tester() Tester {
	if g.Tester != nil {
		return g.Tester
	}
	return MillerRabin{Rand: g.Rand}
}

// Get returns a prime of exactly nbits bits.
//
// The search retries until a prime is found. The only errors are an invalid
// size and a failing random source.
func (g *Generator) Get(nbits int) (*big.Int, error) {
	if err := checkBits(nbits); err != nil {
		return nil, err
	}

	tester := g.tester()
	for {
		candidate, err := randnum.ReadRandomOddInt(g.Rand, nbits)
		if err != nil {
			return nil, err
		}
		if tester.IsPrime(candidate) {
			return candidate, nil
		}
	}
}

// Get returns a prime of exactly nbits bits using the DefaultGenerator.
func Get(nbits int) (*big.Int, error) {
	return DefaultGenerator.Get(nbits)
}

// IsPrime reports whether n is probably prime using the default Miller-Rabin
// tester.
func IsPrime(n *big.Int) bool {
	return MillerRabin{}.IsPrime(n)
}

// AreRelativelyPrime reports whether gcd(a, b) == 1.
func AreRelativelyPrime(a, b *big.Int) bool {
	return new(big.Int).GCD(nil, nil, a, b).Cmp(big.NewInt(1)) == 0
}

func checkBits(nbits int) error {
	if nbits < MinBits {
		return errs.Invalid("prime size must be at least %d bits, got %d", MinBits, nbits)
	}
	return nil
}
