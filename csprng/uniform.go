package csprng

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// UniformSampler absorbs arbitrary data and squeezes uniform bytes.
// This uses blake2b as a underlying prng.
type UniformSampler struct {
	prngWriter blake2b.XOF
	prngReader blake2b.XOF
}

// NewUniformSampler creates a new UniformSampler, with user supplied key.
// key may be nil.
//
// Panics when blake2b initialization fails.
func NewUniformSampler(key []byte) *UniformSampler {
	prng, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		panic(err)
	}

	return &UniformSampler{
		prngWriter: prng,
		prngReader: prng.Clone(),
	}
}

// Read implements the [io.Reader] interface.
// Call Finalize before reading to include all written data.
func (s *UniformSampler) Read(p []byte) (n int, err error) {
	return s.prngReader.Read(p)
}

// Write implements the [io.Writer] interface.
func (s *UniformSampler) Write(p []byte) (n int, err error) {
	return s.prngWriter.Write(p)
}

// WriteUint64 writes x in little-endian order.
func (s *UniformSampler) WriteUint64(x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	if _, err := s.prngWriter.Write(b[:]); err != nil {
		panic(err)
	}
}

// Finalize finalizes the UniformSampler,
// So that it can read again.
func (s *UniformSampler) Finalize() {
	s.prngReader = s.prngWriter.Clone()
}
