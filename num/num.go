// Package num implements various utility functions regarding numeric types.
package num

import (
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// BitReverseInPlace reorders v into bit-reversal order in-place.
func BitReverseInPlace[T any](v []T) {
	var bit, j int
	for i := 1; i < len(v); i++ {
		bit = len(v) >> 1
		for j >= bit {
			j -= bit
			bit >>= 1
		}
		j += bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}

// Decompose returns the n least significant bits of x,
// where bit i of the output is the coefficient of 2^i.
// Bits of x above n are dropped. x must be non-negative.
func Decompose(x *big.Int, n uint) *bitset.BitSet {
	b := bitset.New(n)
	for i := uint(0); i < n; i++ {
		if x.Bit(int(i)) == 1 {
			b.Set(i)
		}
	}
	return b
}

// ParseHex parses an unsigned big-endian hexadecimal integer.
// Only hex digits are accepted: no sign, prefix or whitespace.
func ParseHex(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("empty hex integer")
	}

	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, errors.Errorf("invalid hex integer %q", s)
		}
	}

	x, ok := big.NewInt(0).SetString(s, 16)
	if !ok {
		return nil, errors.Errorf("invalid hex integer %q", s)
	}
	return x, nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
