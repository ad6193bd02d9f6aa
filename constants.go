package rsa

const (
	// DefaultExponent is the public exponent used by NewKeys unless
	// WithExponent overrides it.
	DefaultExponent = 65537

	// MinKeyBits is the smallest modulus size NewKeys accepts.
	MinKeyBits = 16

	// PaddingOverhead is the number of block bytes PKCS#1 v1.5 reserves for
	// the two marker bytes, the separator and the minimum padding string.
	PaddingOverhead = 3 + MinPaddingSize

	// MinPaddingSize is the shortest padding string a valid block carries.
	MinPaddingSize = 8
)
