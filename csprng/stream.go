package csprng

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// SeedWords is the number of 32-bit seed words consumed by StreamSampler.
// This equals the ChaCha20 key size in words.
const SeedWords = chacha20.KeySize / 4

// StreamSampler is a deterministic keystream.
// This uses ChaCha20 as a underlying prng.
type StreamSampler struct {
	prng *chacha20.Cipher
}

// NewStreamSampler creates a new StreamSampler keyed by seed.
// The first [SeedWords] words are used as a little-endian key,
// missing words are treated as zero and extra words are ignored.
// The nonce is fixed to zero.
//
// Panics when ChaCha20 initialization fails.
func NewStreamSampler(seed []uint32) *StreamSampler {
	key := make([]byte, chacha20.KeySize)
	for i := 0; i < SeedWords && i < len(seed); i++ {
		binary.LittleEndian.PutUint32(key[4*i:], seed[i])
	}

	nonce := make([]byte, chacha20.NonceSize)
	prng, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}

	return &StreamSampler{prng: prng}
}

// Read implements the [io.Reader] interface.
// It fills p with keystream bytes and never fails.
func (s *StreamSampler) Read(p []byte) (n int, err error) {
	clear(p)
	s.prng.XORKeyStream(p, p)
	return len(p), nil
}
