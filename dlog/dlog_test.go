package dlog_test

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bjj "github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/pkg/errors"
	"github.com/sp301415/dlog-snark/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	order      = "60c89ce5c263405370a08b6d0302b0bab3eedb83920ee0a677297dc392126f1"
	orderMinus = "60c89ce5c263405370a08b6d0302b0bab3eedb83920ee0a677297dc392126f0"
)

var (
	zeroSeed = []uint32{0, 0, 0, 0, 0, 0, 0, 0}

	paramsOnce sync.Once
	params     string
	paramsErr  error
)

func testParams(t *testing.T) string {
	if testing.Short() {
		t.Skip("skipping proof generation in short mode")
	}

	paramsOnce.Do(func() {
		var res dlog.GenerateResult
		res, paramsErr = dlog.Generate(zeroSeed)
		params = res.Params
	})
	require.NoError(t, paramsErr)
	return params
}

func TestRoundTrip(t *testing.T) {
	params := testParams(t)

	for _, x := range []string{"1", "0", orderMinus} {
		t.Run("x="+x, func(t *testing.T) {
			pf, err := dlog.Prove(zeroSeed, params, x)
			require.NoError(t, err)

			res, err := dlog.Verify(params, pf.Proof, pf.H)
			require.NoError(t, err)
			assert.True(t, res.Result)
		})
	}

	t.Run("Generator", func(t *testing.T) {
		pf, err := dlog.Prove(zeroSeed, params, "1")
		require.NoError(t, err)
		assert.Equal(t, "9d928f284baf579ab0a1f9035a5f078457ec4a7b17159aa7369c64929540c618", pf.H)
	})

	t.Run("IndependentSeed", func(t *testing.T) {
		pf, err := dlog.Prove([]uint32{0xdeadbeef, 1, 2}, params, "abcdef")
		require.NoError(t, err)

		res, err := dlog.Verify(params, pf.Proof, pf.H)
		require.NoError(t, err)
		assert.True(t, res.Result)
	})
}

func TestWrongPoint(t *testing.T) {
	params := testParams(t)

	pf2, err := dlog.Prove(zeroSeed, params, "2")
	require.NoError(t, err)
	pf3, err := dlog.Prove(zeroSeed, params, "3")
	require.NoError(t, err)

	res, err := dlog.Verify(params, pf2.Proof, pf3.H)
	require.NoError(t, err)
	assert.False(t, res.Result)
}

func TestDeterminism(t *testing.T) {
	params := testParams(t)

	t.Run("Generate", func(t *testing.T) {
		res, err := dlog.Generate(zeroSeed)
		require.NoError(t, err)
		assert.Equal(t, params, res.Params)
		assert.Equal(t, strings.ToLower(res.Params), res.Params)
	})

	t.Run("DistinctSeed", func(t *testing.T) {
		res, err := dlog.Generate([]uint32{1})
		require.NoError(t, err)
		assert.NotEqual(t, params, res.Params)
	})

	t.Run("Prove", func(t *testing.T) {
		pf0, err := dlog.Prove(zeroSeed, params, "5")
		require.NoError(t, err)
		pf1, err := dlog.Prove(zeroSeed, params, "5")
		require.NoError(t, err)
		assert.Equal(t, pf0, pf1)
	})
}

func TestProveErrors(t *testing.T) {
	t.Run("MissingParameters", func(t *testing.T) {
		_, err := dlog.Prove(zeroSeed, "", "1")
		assert.True(t, errors.Is(err, dlog.ErrMissingParameters))
		assert.Equal(t, "Params are empty. Did you generate or load params?", err.Error())
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		_, err := dlog.Prove(zeroSeed, "not hex", "1")
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))

		_, err = dlog.Prove(zeroSeed, "00ff", "1")
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})

	params := testParams(t)

	t.Run("ScalarOutOfRange", func(t *testing.T) {
		for _, x := range []string{order, "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"} {
			_, err := dlog.Prove(zeroSeed, params, x)
			assert.True(t, errors.Is(err, dlog.ErrScalarOutOfRange))
			assert.Contains(t, err.Error(), order)
		}
	})

	t.Run("InvalidScalar", func(t *testing.T) {
		for _, x := range []string{"xyz", "0x5", "+5", "-0"} {
			_, err := dlog.Prove(zeroSeed, params, x)
			assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding), x)
		}
	})
}

func TestVerifyErrors(t *testing.T) {
	params := testParams(t)

	pf, err := dlog.Prove(zeroSeed, params, "1")
	require.NoError(t, err)

	t.Run("NonHexParams", func(t *testing.T) {
		_, err := dlog.Verify("zz"+params, pf.Proof, pf.H)
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})

	t.Run("TruncatedParams", func(t *testing.T) {
		_, err := dlog.Verify(params[:len(params)-2], pf.Proof, pf.H)
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})

	t.Run("TruncatedProof", func(t *testing.T) {
		_, err := dlog.Verify(params, pf.Proof[:len(pf.Proof)-2], pf.H)
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})

	t.Run("OffCurvePoint", func(t *testing.T) {
		_, err := dlog.Verify(params, pf.Proof, hex.EncodeToString(offCurveEncoding()))
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})

	t.Run("ShortPoint", func(t *testing.T) {
		_, err := dlog.Verify(params, pf.Proof, pf.H[2:])
		assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))
	})
}

func TestErrorCause(t *testing.T) {
	_, err := dlog.Verify("zz", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dlog.ErrInvalidEncoding))

	var hexErr hex.InvalidByteError
	require.True(t, errors.As(err, &hexErr))
	assert.Equal(t, hex.InvalidByteError('z'), hexErr)

	assert.Contains(t, err.Error(), "decode params")
	assert.Contains(t, fmt.Sprintf("%+v", err), "invalid encoding")
}

// offCurveEncoding returns the encoding of a y-coordinate
// for which no x satisfies the curve equation.
func offCurveEncoding() []byte {
	curve := bjj.GetEdwardsCurve()

	var y, num, den, one fr.Element
	one.SetOne()
	for y.SetUint64(2); ; y.Add(&y, &one) {
		num.Square(&y)
		den.Mul(&num, &curve.D)
		num.Sub(&one, &num)
		den.Sub(&curve.A, &den)
		num.Div(&num, &den)
		if num.Legendre() == -1 {
			break
		}
	}

	b := y.Bytes()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b[:]
}
