package core

import (
	"errors"
	"math/big"
	"testing"

	"github.com/vaultsandbox/rsa-go/internal/errs"
	"github.com/vaultsandbox/rsa-go/prime"
)

// p=61, q=53, e=17, d = 17^-1 mod lcm(60, 52)
func smallKey() (*CRTKey, *big.Int, *big.Int) {
	return &CRTKey{
		N:    big.NewInt(3233),
		P:    big.NewInt(61),
		Q:    big.NewInt(53),
		Dp:   big.NewInt(53),
		Dq:   big.NewInt(49),
		Qinv: big.NewInt(38),
	}, big.NewInt(17), big.NewInt(413)
}

func genKey(t testing.TB, bits int) (*CRTKey, *big.Int, *big.Int) {
	t.Helper()
	e := big.NewInt(65537)
	for {
		p, err := prime.Get(bits)
		if err != nil {
			t.Fatal(err)
		}
		q, err := prime.Get(bits)
		if err != nil {
			t.Fatal(err)
		}
		if p.Cmp(q) == 0 {
			continue
		}
		p1 := new(big.Int).Sub(p, one)
		q1 := new(big.Int).Sub(q, one)
		gcd := new(big.Int).GCD(nil, nil, p1, q1)
		lambda := new(big.Int).Div(new(big.Int).Mul(p1, q1), gcd)
		d := new(big.Int).ModInverse(e, lambda)
		if d == nil {
			continue
		}
		return &CRTKey{
			N:    new(big.Int).Mul(p, q),
			P:    p,
			Q:    q,
			Dp:   new(big.Int).Mod(d, p1),
			Dq:   new(big.Int).Mod(d, q1),
			Qinv: new(big.Int).ModInverse(q, p),
		}, e, d
	}
}

func TestEncryptDecrypt_TextbookKey(t *testing.T) {
	k, e, d := smallKey()

	c, err := EncryptInt(big.NewInt(65), e, k.N)
	if err != nil {
		t.Fatalf("EncryptInt() error = %v", err)
	}
	if c.Int64() != 2790 {
		t.Errorf("EncryptInt(65) = %v, want 2790", c)
	}

	m, err := DecryptInt(c, d, k.N)
	if err != nil {
		t.Fatalf("DecryptInt() error = %v", err)
	}
	if m.Int64() != 65 {
		t.Errorf("DecryptInt() = %v, want 65", m)
	}
}

func TestDecryptCRT_MatchesDirect_Exhaustive(t *testing.T) {
	k, _, d := smallKey()

	for i := int64(0); i < k.N.Int64(); i++ {
		c := big.NewInt(i)
		want, _ := DecryptInt(c, d, k.N)
		got, err := DecryptCRT(c, k)
		if err != nil {
			t.Fatalf("DecryptCRT(%d) error = %v", i, err)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("DecryptCRT(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestDecryptCRT_MatchesDirect_Random(t *testing.T) {
	k, e, d := genKey(t, 256)

	for i := 0; i < 20; i++ {
		m, err := prime.Get(200)
		if err != nil {
			t.Fatal(err)
		}
		c, err := EncryptInt(m, e, k.N)
		if err != nil {
			t.Fatal(err)
		}

		direct, _ := DecryptInt(c, d, k.N)
		crt, err := DecryptCRT(c, k)
		if err != nil {
			t.Fatalf("DecryptCRT() error = %v", err)
		}
		if crt.Cmp(direct) != 0 || crt.Cmp(m) != 0 {
			t.Fatalf("round %d: crt=%v direct=%v want %v", i, crt, direct, m)
		}
	}
}

func TestOperandChecks(t *testing.T) {
	k, e, _ := smallKey()

	_, err := EncryptInt(big.NewInt(-1), e, k.N)
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("negative operand error = %v, want ErrInvalidInput", err)
	}

	_, err = EncryptInt(k.N, e, k.N)
	var overflow *errs.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("m == n error = %v, want *OverflowError", err)
	}
	if !errors.Is(err, errs.ErrOverflow) {
		t.Error("OverflowError should match ErrOverflow")
	}

	if _, err := DecryptCRT(big.NewInt(5000), k); !errors.Is(err, errs.ErrOverflow) {
		t.Errorf("DecryptCRT(c > n) error = %v, want ErrOverflow", err)
	}
}

func TestBlinding_RoundTrip(t *testing.T) {
	k, e, d := genKey(t, 128)
	x := big.NewInt(123456789)

	r, rInv, err := BlindingFactor(nil, k.N)
	if err != nil {
		t.Fatalf("BlindingFactor() error = %v", err)
	}
	if r.Sign() <= 0 || r.Cmp(k.N) >= 0 {
		t.Fatalf("r = %v out of range", r)
	}
	if check := new(big.Int).Mul(r, rInv); check.Mod(check, k.N).Cmp(one) != 0 {
		t.Fatal("rInv is not the inverse of r")
	}

	// (x * r^e)^d = x^d * r, so unblinding the private op leaves x^d.
	blinded := Blind(x, r, e, k.N)
	y, err := DecryptCRT(blinded, k)
	if err != nil {
		t.Fatal(err)
	}
	got := Unblind(y, rInv, k.N)
	want, _ := DecryptInt(x, d, k.N)
	if got.Cmp(want) != 0 {
		t.Errorf("unblinded = %v, want %v", got, want)
	}
}

func TestBlindingFactor_BadModulus(t *testing.T) {
	if _, _, err := BlindingFactor(nil, big.NewInt(1)); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("BlindingFactor(1) error = %v, want ErrInvalidInput", err)
	}
}

func BenchmarkDecryptCRT(b *testing.B) {
	k, e, _ := genKey(b, 512)
	c, _ := EncryptInt(big.NewInt(42), e, k.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DecryptCRT(c, k)
	}
}
