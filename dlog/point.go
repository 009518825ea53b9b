package dlog

import (
	"bytes"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bjj "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/pkg/errors"
	"github.com/sp301415/dlog-snark/circuit"
)

// PointSize is the size of an encoded BabyJubJub point in bytes.
const PointSize = fr.Bytes

// signMask selects the sign bit of X in the last encoded byte.
const signMask = 0x80

// EncodePoint returns the compressed encoding of p:
// little-endian Y with the parity of X in the most significant bit.
func EncodePoint(p bjj.PointAffine) []byte {
	be := p.Y.Bytes()
	b := make([]byte, PointSize)
	for i := range b {
		b[i] = be[PointSize-1-i]
	}
	if isOdd(&p.X) {
		b[PointSize-1] |= signMask
	}
	return b
}

// DecodePoint decodes a point encoded by [EncodePoint].
// The point must be canonically encoded, on the curve,
// and in the prime-order subgroup.
func DecodePoint(data []byte) (bjj.PointAffine, error) {
	var p bjj.PointAffine
	if len(data) != PointSize {
		return p, errors.Wrapf(ErrInvalidEncoding, "point has %d bytes, expected %d", len(data), PointSize)
	}

	sign := data[PointSize-1]&signMask != 0
	be := make([]byte, PointSize)
	for i := range be {
		be[i] = data[PointSize-1-i]
	}
	be[0] &^= signMask

	if err := p.Y.SetBytesCanonical(be); err != nil {
		return p, withKind(ErrInvalidEncoding, err, "point y")
	}

	// a = -1: x^2 = (y^2 - 1) / (d y^2 + 1)
	curve := bjj.GetEdwardsCurve()
	var y2, num, den, one fr.Element
	one.SetOne()
	y2.Square(&p.Y)
	num.Sub(&y2, &one)
	den.Mul(&y2, &curve.D).Add(&den, &one)
	if den.IsZero() {
		return p, errors.Wrap(ErrInvalidEncoding, "point is not on curve")
	}
	num.Div(&num, &den)
	if p.X.Sqrt(&num) == nil {
		return p, errors.Wrap(ErrInvalidEncoding, "point is not on curve")
	}
	if isOdd(&p.X) != sign {
		p.X.Neg(&p.X)
	}

	if !p.IsOnCurve() {
		return p, errors.Wrap(ErrInvalidEncoding, "point is not on curve")
	}

	// x = 0 with the sign bit set.
	if !bytes.Equal(EncodePoint(p), data) {
		return p, errors.Wrap(ErrInvalidEncoding, "point is not canonically encoded")
	}

	var o bjj.PointAffine
	o.ScalarMultiplication(&p, circuit.Order())
	if !o.IsZero() {
		return p, errors.Wrap(ErrInvalidEncoding, "point is not in the prime-order subgroup")
	}

	return p, nil
}

func isOdd(x *fr.Element) bool {
	return x.Bits()[0]&1 == 1
}
