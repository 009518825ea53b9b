package circuit

import (
	"math/big"
	"sync"

	bjj "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	tedwards "github.com/consensys/gnark-crypto/ecc/twistededwards"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/algebra/native/twistededwards"
	"github.com/pkg/errors"
)

// windowSize is the number of scalar bits consumed per table lookup.
const windowSize = 2

// Window is a precomputed table k * 4^j * G for k = 0, 1, 2, 3.
// Each entry is given as [X, Y].
type Window [1 << windowSize][2]*big.Int

var (
	table     []Window
	tableOnce sync.Once
)

func initTable() {
	g := Generator()
	nbWindows := (NumBits + windowSize - 1) / windowSize
	table = make([]Window, nbWindows)

	var base, acc bjj.PointAffine
	base.Set(&g)
	for j := range table {
		acc.X.SetZero()
		acc.Y.SetOne()
		for k := range table[j] {
			table[j][k] = [2]*big.Int{acc.X.BigInt(big.NewInt(0)), acc.Y.BigInt(big.NewInt(0))}
			acc.Add(&acc, &base)
		}
		// acc = 4 * base now.
		base.Set(&acc)
	}
}

// Table returns the precomputed fixed-base table.
// The returned slice must not be modified.
func Table() []Window {
	tableOnce.Do(initTable)
	return table
}

// FixedBaseMul computes k * G in-circuit, where k is given
// by its little-endian bits. Every bit must be boolean-constrained by the caller.
func FixedBaseMul(api frontend.API, bits []frontend.Variable) (twistededwards.Point, error) {
	windows := Table()
	if len(bits) == 0 || len(bits) > windowSize*len(windows) {
		return twistededwards.Point{}, errors.Errorf("scalar bit length %d out of range", len(bits))
	}

	curve, err := twistededwards.NewEdCurve(api, tedwards.BN254)
	if err != nil {
		return twistededwards.Point{}, errors.Wrap(err, "new edwards curve")
	}

	var acc twistededwards.Point
	for j := 0; windowSize*j < len(bits); j++ {
		w := windows[j]
		b := bits[windowSize*j:]

		var p twistededwards.Point
		if len(b) >= windowSize {
			p.X = api.Lookup2(b[0], b[1], w[0][0], w[1][0], w[2][0], w[3][0])
			p.Y = api.Lookup2(b[0], b[1], w[0][1], w[1][1], w[2][1], w[3][1])
		} else {
			p.X = api.Select(b[0], w[1][0], w[0][0])
			p.Y = api.Select(b[0], w[1][1], w[0][1])
		}

		if j == 0 {
			acc = p
			continue
		}
		acc = curve.Add(acc, p)
	}

	return acc, nil
}

// FixedBaseMulNative mirrors [FixedBaseMul] out of circuit using the same table.
func FixedBaseMulNative(k *big.Int) bjj.PointAffine {
	windows := Table()

	var acc, p bjj.PointAffine
	acc.X.SetZero()
	acc.Y.SetOne()
	for j := 0; windowSize*j < NumBits; j++ {
		d := k.Bit(windowSize*j) | k.Bit(windowSize*j+1)<<1
		if windowSize*j+1 >= NumBits {
			d = k.Bit(windowSize * j)
		}
		p.X.SetBigInt(windows[j][d][0])
		p.Y.SetBigInt(windows[j][d][1])
		acc.Add(&acc, &p)
	}
	return acc
}
