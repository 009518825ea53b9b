package groth16

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/pkg/errors"
)

// PrepareVerifyingKey precomputes the pairing-side values of vk.
func PrepareVerifyingKey(vk *VerifyingKey) (*PreparedVerifyingKey, error) {
	if len(vk.G1.K) == 0 {
		return nil, errors.New("verifying key has no public bases")
	}

	alphaBeta, err := bn254.Pair([]bn254.G1Affine{vk.G1.Alpha}, []bn254.G2Affine{vk.G2.Beta})
	if err != nil {
		return nil, errors.Wrap(err, "pair alpha beta")
	}

	pvk := &PreparedVerifyingKey{
		AlphaBeta: alphaBeta,
		K:         vk.G1.K,
	}
	pvk.GammaNeg.Neg(&vk.G2.Gamma)
	pvk.DeltaNeg.Neg(&vk.G2.Delta)
	return pvk, nil
}

// Verifier verifies proofs under a fixed [VerifyingKey].
type Verifier struct {
	PreparedVerifyingKey *PreparedVerifyingKey
}

// NewVerifier creates a new Verifier.
func NewVerifier(vk *VerifyingKey) (*Verifier, error) {
	pvk, err := PrepareVerifyingKey(vk)
	if err != nil {
		return nil, err
	}
	return &Verifier{PreparedVerifyingKey: pvk}, nil
}

// Verify checks proof against the public inputs, excluding the constant one.
// It returns false without error if the pairing check fails,
// and an error only if the inputs are malformed.
func (v *Verifier) Verify(proof *Proof, public []fr.Element) (bool, error) {
	pvk := v.PreparedVerifyingKey
	if len(public) != len(pvk.K)-1 {
		return false, errors.Errorf("got %d public inputs, expected %d", len(public), len(pvk.K)-1)
	}

	var kvk bn254.G1Jac
	if _, err := kvk.MultiExp(pvk.K[1:], public, ecc.MultiExpConfig{}); err != nil {
		return false, errors.Wrap(err, "msm public inputs")
	}
	kvk.AddMixed(&pvk.K[0])

	var kvkAff bn254.G1Affine
	kvkAff.FromJacobian(&kvk)

	res, err := bn254.Pair(
		[]bn254.G1Affine{proof.Ar, kvkAff, proof.Krs},
		[]bn254.G2Affine{proof.Bs, pvk.GammaNeg, pvk.DeltaNeg},
	)
	if err != nil {
		return false, errors.Wrap(err, "pair proof")
	}
	return res.Equal(&pvk.AlphaBeta), nil
}
