package groth16

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/pkg/errors"
)

// decoder decodes untrusted bytes with subgroup checks enabled.
// Slice lengths are checked against the remaining input before allocation.
type decoder struct {
	r   *bytes.Reader
	dec *bn254.Decoder
}

func newDecoder(data []byte) *decoder {
	r := bytes.NewReader(data)
	return &decoder{
		r:   r,
		dec: bn254.NewDecoder(r),
	}
}

// decode decodes fixed-size values in order.
func (d *decoder) decode(v ...any) error {
	for i := range v {
		if err := d.dec.Decode(v[i]); err != nil {
			return err
		}
	}
	return nil
}

// decodeG1s decodes a length-prefixed slice of G1 points.
func (d *decoder) decodeG1s(v *[]bn254.G1Affine) error {
	if err := d.checkLen(bn254.SizeOfG1AffineCompressed); err != nil {
		return err
	}
	return d.dec.Decode(v)
}

// decodeG2s decodes a length-prefixed slice of G2 points.
func (d *decoder) decodeG2s(v *[]bn254.G2Affine) error {
	if err := d.checkLen(bn254.SizeOfG2AffineCompressed); err != nil {
		return err
	}
	return d.dec.Decode(v)
}

func (d *decoder) checkLen(elemSize int) error {
	rem := d.r.Len()
	if rem < 4 {
		return io.ErrUnexpectedEOF
	}

	var buf [4]byte
	if _, err := d.r.ReadAt(buf[:], d.r.Size()-int64(rem)); err != nil {
		return err
	}

	n := uint64(binary.BigEndian.Uint32(buf[:]))
	if n*uint64(elemSize) > uint64(rem-4) {
		return errors.Errorf("slice of length %d exceeds remaining %d bytes", n, rem-4)
	}
	return nil
}

// finish checks that the whole input was consumed.
func (d *decoder) finish() error {
	if d.r.Len() != 0 {
		return errors.Errorf("%d trailing bytes", d.r.Len())
	}
	return nil
}

// WriteTo implements the [io.WriterTo] interface.
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	enc := bn254.NewEncoder(w)
	for _, v := range []any{
		&vk.G1.Alpha,
		&vk.G2.Beta,
		&vk.G2.Gamma,
		&vk.G2.Delta,
		vk.G1.K,
	} {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

func (vk *VerifyingKey) decode(d *decoder) error {
	if err := d.decode(&vk.G1.Alpha, &vk.G2.Beta, &vk.G2.Gamma, &vk.G2.Delta); err != nil {
		return err
	}
	return d.decodeG1s(&vk.G1.K)
}

// WriteTo implements the [io.WriterTo] interface.
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	enc := bn254.NewEncoder(w)
	for _, v := range []any{
		&pk.Digest,
		&pk.G1.Alpha,
		&pk.G1.Beta,
		&pk.G1.Delta,
		pk.G1.A,
		pk.G1.B,
		pk.G1.Z,
		pk.G1.K,
		&pk.G2.Beta,
		&pk.G2.Delta,
		pk.G2.B,
	} {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

func (pk *ProvingKey) decode(d *decoder) error {
	if err := d.decode(&pk.Digest, &pk.G1.Alpha, &pk.G1.Beta, &pk.G1.Delta); err != nil {
		return err
	}
	for _, v := range []*[]bn254.G1Affine{&pk.G1.A, &pk.G1.B, &pk.G1.Z, &pk.G1.K} {
		if err := d.decodeG1s(v); err != nil {
			return err
		}
	}
	if err := d.decode(&pk.G2.Beta, &pk.G2.Delta); err != nil {
		return err
	}
	return d.decodeG2s(&pk.G2.B)
}

// WriteTo implements the [io.WriterTo] interface.
// The verifying key is written first.
func (p *Parameters) WriteTo(w io.Writer) (int64, error) {
	n, err := p.VerifyingKey.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := p.ProvingKey.WriteTo(w)
	return n + m, err
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (p *Parameters) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// Every point is checked to lie in the correct subgroup.
func (p *Parameters) UnmarshalBinary(data []byte) error {
	d := newDecoder(data)
	if err := p.VerifyingKey.decode(d); err != nil {
		return errors.Wrap(err, "decode verifying key")
	}
	if err := p.ProvingKey.decode(d); err != nil {
		return errors.Wrap(err, "decode proving key")
	}
	return d.finish()
}

// WriteTo implements the [io.WriterTo] interface.
func (pf *Proof) WriteTo(w io.Writer) (int64, error) {
	enc := bn254.NewEncoder(w)
	for _, v := range []any{&pf.Ar, &pf.Bs, &pf.Krs} {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (pf *Proof) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := pf.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// Every point is checked to lie in the correct subgroup.
func (pf *Proof) UnmarshalBinary(data []byte) error {
	d := newDecoder(data)
	if err := d.decode(&pf.Ar, &pf.Bs, &pf.Krs); err != nil {
		return errors.Wrap(err, "decode proof")
	}
	return d.finish()
}
