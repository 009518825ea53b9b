package num_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/sp301415/dlog-snark/num"
	"github.com/stretchr/testify/assert"
)

func TestBitReverseInPlace(t *testing.T) {
	v := []int{0, 1, 2, 3, 4, 5, 6, 7}
	num.BitReverseInPlace(v)
	assert.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, v)

	num.BitReverseInPlace(v)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, v)
}

func TestDecompose(t *testing.T) {
	t.Run("LittleEndian", func(t *testing.T) {
		b := num.Decompose(big.NewInt(0b1101), 8)
		assert.True(t, b.Test(0))
		assert.False(t, b.Test(1))
		assert.True(t, b.Test(2))
		assert.True(t, b.Test(3))
		assert.Equal(t, uint(3), b.Count())
	})

	t.Run("Truncate", func(t *testing.T) {
		x := big.NewInt(0).Lsh(big.NewInt(1), 251)
		x.Add(x, big.NewInt(5))
		b := num.Decompose(x, 251)
		assert.True(t, b.Test(0))
		assert.True(t, b.Test(2))
		assert.False(t, b.Test(251))
		assert.Equal(t, uint(2), b.Count())
	})

	properties := gopter.NewProperties(nil)
	properties.Property("Decompose agrees with Bit", prop.ForAll(
		func(hi, lo uint64) bool {
			x := big.NewInt(0).SetUint64(hi)
			x.Lsh(x, 64).Or(x, big.NewInt(0).SetUint64(lo))
			b := num.Decompose(x, 128)
			for i := 0; i < 128; i++ {
				if b.Test(uint(i)) != (x.Bit(i) == 1) {
					return false
				}
			}
			return true
		},
		gen.UInt64(), gen.UInt64(),
	))
	properties.TestingRun(t)
}

func TestParseHex(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out int64
	}{
		{"1", 1},
		{"0", 0},
		{"ff", 255},
		{"FF", 255},
		{"00010", 16},
	} {
		x, err := num.ParseHex(tc.in)
		assert.NoError(t, err)
		assert.Zero(t, big.NewInt(tc.out).Cmp(x), tc.in)
	}

	for _, in := range []string{"", "0x", "0x10", "0X10", "xyz", "-1", "-0", "+5", " 5", "1 2", "1_0"} {
		_, err := num.ParseHex(in)
		assert.Error(t, err, in)
	}

	properties := gopter.NewProperties(nil)
	properties.Property("ParseHex inverts Text(16)", prop.ForAll(
		func(x uint64) bool {
			y, err := num.ParseHex(big.NewInt(0).SetUint64(x).Text(16))
			return err == nil && y.Uint64() == x
		},
		gen.UInt64(),
	))
	properties.TestingRun(t)
}
