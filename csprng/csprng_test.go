package csprng_test

import (
	"io"
	"testing"

	"github.com/sp301415/dlog-snark/csprng"
	"github.com/stretchr/testify/assert"
)

func TestStreamSampler(t *testing.T) {
	next := func(s *csprng.StreamSampler) []byte {
		b := make([]byte, 64)
		_, err := io.ReadFull(s, b)
		assert.NoError(t, err)
		return b
	}

	t.Run("Deterministic", func(t *testing.T) {
		s0 := csprng.NewStreamSampler([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
		s1 := csprng.NewStreamSampler([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
		for i := 0; i < 256; i++ {
			assert.Equal(t, next(s0), next(s1))
		}
	})

	t.Run("ShortSeed", func(t *testing.T) {
		s0 := csprng.NewStreamSampler([]uint32{7})
		s1 := csprng.NewStreamSampler([]uint32{7, 0, 0, 0, 0, 0, 0, 0})
		assert.Equal(t, next(s0), next(s1))
	})

	t.Run("ExtraSeed", func(t *testing.T) {
		s0 := csprng.NewStreamSampler([]uint32{0, 0, 0, 0, 0, 0, 0, 0})
		s1 := csprng.NewStreamSampler([]uint32{0, 0, 0, 0, 0, 0, 0, 0, 9, 9})
		assert.Equal(t, next(s0), next(s1))
	})

	t.Run("DistinctSeed", func(t *testing.T) {
		s0 := csprng.NewStreamSampler([]uint32{0})
		s1 := csprng.NewStreamSampler([]uint32{1})
		assert.NotEqual(t, next(s0), next(s1))
	})

	t.Run("Read", func(t *testing.T) {
		s0 := csprng.NewStreamSampler(nil)
		s1 := csprng.NewStreamSampler(nil)

		b0 := make([]byte, 100)
		b1 := []byte("dirty buffer contents must not leak into the keystream output at all, ever, in any way, ok?")
		b1 = append(b1, make([]byte, 100-len(b1))...)
		_, err := io.ReadFull(s0, b0)
		assert.NoError(t, err)
		_, err = io.ReadFull(s1, b1)
		assert.NoError(t, err)
		assert.Equal(t, b0, b1)
	})
}

func TestUniformSampler(t *testing.T) {
	squeeze := func(s *csprng.UniformSampler) []byte {
		s.Finalize()
		out := make([]byte, 32)
		_, err := io.ReadFull(s, out)
		assert.NoError(t, err)
		return out
	}

	t.Run("Deterministic", func(t *testing.T) {
		s0 := csprng.NewUniformSampler(nil)
		s1 := csprng.NewUniformSampler(nil)
		s0.WriteUint64(42)
		s1.WriteUint64(42)
		assert.Equal(t, squeeze(s0), squeeze(s1))
	})

	t.Run("Absorb", func(t *testing.T) {
		s0 := csprng.NewUniformSampler(nil)
		s1 := csprng.NewUniformSampler(nil)
		s0.WriteUint64(1)
		s1.WriteUint64(2)
		assert.NotEqual(t, squeeze(s0), squeeze(s1))
	})
}
