package prime

import (
	"io"
	"math/big"

	"github.com/vaultsandbox/rsa-go/internal/randnum"
)

// Tester decides whether a candidate is (probably) prime.
type Tester interface {
	IsPrime(n *big.Int) bool
}

// smallPrimes are used for trial division before any Miller-Rabin round.
var smallPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

// MillerRabin is a probabilistic Tester running Rounds rounds with random
// bases drawn from Rand. A zero Rounds picks the count from the candidate
// size, following the error bounds of FIPS 186-4 table C.3.
type MillerRabin struct {
	Rounds int
	Rand   io.Reader
}

// Rounds returns the number of Miller-Rabin rounds used for an nbits-bit
// candidate when no explicit count is configured.
func Rounds(nbits int) int {
	switch {
	case nbits >= 1536:
		return 3
	case nbits >= 1024:
		return 4
	case nbits >= 512:
		return 7
	default:
		// Smaller sizes are only used in tests and toy keys.
		return 10
	}
}

// IsPrime implements Tester.
func (mr MillerRabin) IsPrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if n.BitLen() <= 4 {
		switch n.Uint64() {
		case 2, 3, 5, 7, 11, 13:
			return true
		default:
			return false
		}
	}
	if n.Bit(0) == 0 {
		return false
	}

	var r, q big.Int
	for _, p := range smallPrimes {
		if n.IsUint64() && n.Uint64() == p {
			return true
		}
		if r.Mod(n, q.SetUint64(p)).Sign() == 0 {
			return false
		}
	}

	rounds := mr.Rounds
	if rounds <= 0 {
		rounds = Rounds(n.BitLen()) + 1
	}

	return mr.millerRabin(n, rounds)
}

func (mr MillerRabin) millerRabin(n *big.Int, rounds int) bool {
	one := big.NewInt(1)
	nm1 := new(big.Int).Sub(n, one)

	// n - 1 = 2^s * d with d odd
	s := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, s)

	// Bases are drawn from [2, n-2].
	span := new(big.Int).Sub(n, big.NewInt(3))
	x := new(big.Int)

	for i := 0; i < rounds; i++ {
		a, err := randnum.RandInt(mr.Rand, span)
		if err != nil {
			// Without randomness the test cannot vouch for n.
			return false
		}
		a.Add(a, one)

		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
			continue
		}

		witness := true
		for j := uint(1); j < s; j++ {
			x.Mul(x, x).Mod(x, n)
			if x.Cmp(one) == 0 {
				return false
			}
			if x.Cmp(nm1) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}

	return true
}
