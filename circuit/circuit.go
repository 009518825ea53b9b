// Package circuit defines the R1CS circuit proving knowledge of
// a discrete logarithm on BabyJubJub.
package circuit

import (
	"math/big"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bjj "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/sp301415/dlog-snark/num"
)

// NumBits is the bit length of the BabyJubJub subgroup order.
const NumBits = 251

// Circuit asserts that H = x * G, where x is given in bits.
//
// Public inputs are exposed as H.X, then H.Y.
type Circuit struct {
	Bits [NumBits]frontend.Variable `gnark:"scalar_bit,secret"`
	H    twistededwards.Point       `gnark:"h,public"`
}

// Define implements [frontend.Circuit].
func (c *Circuit) Define(api frontend.API) error {
	for i := range c.Bits {
		api.AssertIsBoolean(c.Bits[i])
	}

	h, err := FixedBaseMul(api, c.Bits[:])
	if err != nil {
		return err
	}

	api.AssertIsEqual(h.X, c.H.X)
	api.AssertIsEqual(h.Y, c.H.Y)
	return nil
}

// Coordinates of the proof generation key base G.
// G is the first point of prime order obtained by hashing to the curve
// with blake2s personalized by "Zcash_H_" over the empty message,
// and multiplying by the cofactor.
const (
	generatorX = "13978323010801024088031324702305856326563994702155163404394131316275879227594"
	generatorY = "11205789829039744642695361747911380855106304521648806371742599153306313921181"
)

var (
	generator     bjj.PointAffine
	generatorOnce sync.Once
)

// Generator returns the fixed base G.
func Generator() bjj.PointAffine {
	generatorOnce.Do(func() {
		if _, err := generator.X.SetString(generatorX); err != nil {
			panic(err)
		}
		if _, err := generator.Y.SetString(generatorY); err != nil {
			panic(err)
		}
	})
	return generator
}

// Order returns the order of G.
func Order() *big.Int {
	curve := bjj.GetEdwardsCurve()
	return big.NewInt(0).Set(&curve.Order)
}

// Assign returns a full assignment of the circuit.
// The witness bits are the NumBits least significant bits of x.
func Assign(x fr.Element, h bjj.PointAffine) *Circuit {
	c := &Circuit{}
	AssignBits(c, num.Decompose(x.BigInt(big.NewInt(0)), NumBits))
	c.H.X = h.X.BigInt(big.NewInt(0))
	c.H.Y = h.Y.BigInt(big.NewInt(0))
	return c
}

// AssignBits writes b into the witness bits of c.
func AssignBits(c *Circuit, b *bitset.BitSet) {
	for i := range c.Bits {
		if b.Test(uint(i)) {
			c.Bits[i] = 1
		} else {
			c.Bits[i] = 0
		}
	}
}
