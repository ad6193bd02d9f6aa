package transform

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/vaultsandbox/rsa-go/internal/errs"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer literal %q", s)
	}
	return x
}

func TestIntToBytes(t *testing.T) {
	tests := []struct {
		name string
		x    *big.Int
		want []byte
	}{
		{"zero", big.NewInt(0), []byte{0x00}},
		{"one", big.NewInt(1), []byte{0x01}},
		{"255", big.NewInt(255), []byte{0xff}},
		{"256", big.NewInt(256), []byte{0x01, 0x00}},
		{"123456789", big.NewInt(123456789), []byte{0x07, 0x5b, 0xcd, 0x15}},
		{"8405007", big.NewInt(8405007), []byte{0x80, 0x40, 0x0f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntToBytes(tt.x)
			if err != nil {
				t.Fatalf("IntToBytes() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("IntToBytes() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestIntToBytes_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		x    *big.Int
	}{
		{"nil", nil},
		{"negative", big.NewInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IntToBytes(tt.x)
			if !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestIntToFixedBytes(t *testing.T) {
	got, err := IntToFixedBytes(big.NewInt(0x0102), 4)
	if err != nil {
		t.Fatalf("IntToFixedBytes() error = %v", err)
	}
	if want := []byte{0x00, 0x00, 0x01, 0x02}; !bytes.Equal(got, want) {
		t.Errorf("IntToFixedBytes() = %x, want %x", got, want)
	}

	got, err = IntToFixedBytes(big.NewInt(0), 3)
	if err != nil {
		t.Fatalf("IntToFixedBytes(0) error = %v", err)
	}
	if want := []byte{0, 0, 0}; !bytes.Equal(got, want) {
		t.Errorf("IntToFixedBytes(0) = %x, want %x", got, want)
	}
}

func TestIntToFixedBytes_Overflow(t *testing.T) {
	_, err := IntToFixedBytes(big.NewInt(0x010203), 2)
	if !errors.Is(err, errs.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}

	var oe *errs.OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("expected *OverflowError, got %T", err)
	}
	if oe.Size != 3 || oe.Limit != 2 {
		t.Errorf("OverflowError = %+v, want Size 3 Limit 2", oe)
	}
}

func TestBytesToInt(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want int64
	}{
		{"empty", nil, 0},
		{"all zero", []byte{0, 0, 0}, 0},
		{"leading zeros", []byte{0, 0, 1, 0}, 256},
		{"three bytes", []byte{128, 64, 15}, 8405007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesToInt(tt.buf); got.Int64() != tt.want {
				t.Errorf("BytesToInt() = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	values := []string{
		"0", "1", "127", "128", "65535", "65537",
		"340282366920938463463374607431768211455",
		"179769313486231590772930519078902473361797697894230657273430081157732675805500963132708477322407536021120113879871393357658789768814416622492847430639474124377767893424865485276302219601246094119453082952085005768838150682342462881473913110540827237163350510684586298239947245938479716304835356329624224137216",
	}

	for _, v := range values {
		x := mustInt(t, v)
		buf, err := IntToBytes(x)
		if err != nil {
			t.Fatalf("IntToBytes(%s) error = %v", v, err)
		}
		if got := BytesToInt(buf); got.Cmp(x) != 0 {
			t.Errorf("round trip of %s gave %s", v, got)
		}
	}
}

func TestBitSize(t *testing.T) {
	tests := []struct {
		x    int64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{255, 8},
		{256, 9},
		{1023, 10},
		{1024, 11},
		{1025, 11},
	}

	for _, tt := range tests {
		if got := BitSize(big.NewInt(tt.x)); got != tt.want {
			t.Errorf("BitSize(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}

	one := new(big.Int).Lsh(big.NewInt(1), 1023)
	if got := BitSize(one); got != 1024 {
		t.Errorf("BitSize(2^1023) = %d, want 1024", got)
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		x    int64
		want int
	}{
		{0, 1},
		{1, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
	}

	for _, tt := range tests {
		if got := ByteSize(big.NewInt(tt.x)); got != tt.want {
			t.Errorf("ByteSize(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct{ num, div, want int }{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{1024, 8, 128},
		{1025, 8, 129},
	}

	for _, tt := range tests {
		if got := CeilDiv(tt.num, tt.div); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.num, tt.div, got, tt.want)
		}
	}
}

func BenchmarkIntToFixedBytes(b *testing.B) {
	x := new(big.Int).Lsh(big.NewInt(1), 2047)
	for i := 0; i < b.N; i++ {
		if _, err := IntToFixedBytes(x, 256); err != nil {
			b.Fatal(err)
		}
	}
}
