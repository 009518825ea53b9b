package groth16

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// FieldSampler samples uniform field elements from a byte stream.
type FieldSampler struct {
	r io.Reader

	buf     [fr.Bytes]byte
	msbMask byte
}

// NewFieldSampler creates a new FieldSampler reading from r.
func NewFieldSampler(r io.Reader) *FieldSampler {
	b := uint(fr.Bits % 8)
	if b == 0 {
		b = 8
	}

	return &FieldSampler{
		r:       r,
		msbMask: byte((1 << b) - 1),
	}
}

// SampleAssign samples a uniformly random field element and writes it to xOut.
func (s *FieldSampler) SampleAssign(xOut *fr.Element) error {
	for {
		if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
			return errors.Wrap(err, "read randomness")
		}

		s.buf[0] &= s.msbMask
		if err := xOut.SetBytesCanonical(s.buf[:]); err == nil {
			return nil
		}
	}
}

// SampleNonZeroAssign samples a uniformly random nonzero field element and writes it to xOut.
func (s *FieldSampler) SampleNonZeroAssign(xOut *fr.Element) error {
	for {
		if err := s.SampleAssign(xOut); err != nil {
			return err
		}
		if !xOut.IsZero() {
			return nil
		}
	}
}

func toBigInt(x *fr.Element) *big.Int {
	return x.BigInt(big.NewInt(0))
}
