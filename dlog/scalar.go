package dlog

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bjj "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/pkg/errors"
	"github.com/sp301415/dlog-snark/circuit"
	"github.com/sp301415/dlog-snark/num"
)

// Scalar is a secret exponent projected into both fields.
type Scalar struct {
	// Fr is the circuit witness.
	Fr fr.Element
	// Fs is the exponent of the out-of-circuit multiplication, in [0, |Fs|).
	Fs *big.Int
}

// ParseScalar parses a hex-encoded exponent x with 0 <= x < |Fs|.
func ParseScalar(x string) (Scalar, error) {
	xInt, err := num.ParseHex(x)
	if err != nil {
		return Scalar{}, withKind(ErrInvalidEncoding, err, "parse x")
	}

	order := circuit.Order()
	if xInt.Cmp(order) >= 0 {
		return Scalar{}, errors.Wrapf(ErrScalarOutOfRange, "x should be less than %s", order.Text(16))
	}

	dec := xInt.Text(10)

	var s Scalar
	if _, err := s.Fr.SetString(dec); err != nil {
		return Scalar{}, withKind(ErrScalarUnparseable, err, "parse "+dec+" in Fr")
	}

	fs, ok := big.NewInt(0).SetString(dec, 10)
	if !ok || fs.Sign() < 0 || fs.Cmp(order) >= 0 {
		return Scalar{}, errors.Wrapf(ErrScalarUnparseable, "parse %s in Fs", dec)
	}
	s.Fs = fs

	if s.Fr.BigInt(big.NewInt(0)).Cmp(s.Fs) != 0 {
		return Scalar{}, errors.Wrapf(ErrScalarUnparseable, "%s does not round-trip through Fr", dec)
	}

	return s, nil
}

// Point returns x * G.
func (s Scalar) Point() bjj.PointAffine {
	g := circuit.Generator()
	var h bjj.PointAffine
	h.ScalarMultiplication(&g, s.Fs)
	return h
}
