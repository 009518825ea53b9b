package groth16

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ProvingKey is the proving half of the Groth16 parameters.
type ProvingKey struct {
	// Digest is the [QAP] digest the key was generated for.
	Digest fr.Element

	G1 struct {
		Alpha, Beta, Delta bn254.G1Affine

		// A, B are indexed by wire.
		A, B []bn254.G1Affine
		// Z[k] = tau^k (tau^N - 1) / delta, for k < N - 1.
		Z []bn254.G1Affine
		// K[i] = (beta A_i + alpha B_i + C_i) / delta, for every non-public wire i.
		K []bn254.G1Affine
	}

	G2 struct {
		Beta, Delta bn254.G2Affine

		B []bn254.G2Affine
	}
}

// VerifyingKey is the verifying half of the Groth16 parameters.
type VerifyingKey struct {
	G1 struct {
		Alpha bn254.G1Affine

		// K[i] = (beta A_i + alpha B_i + C_i) / gamma, for every public wire i.
		K []bn254.G1Affine
	}

	G2 struct {
		Beta, Gamma, Delta bn254.G2Affine
	}
}

// NbPublicInputs returns the number of public inputs,
// excluding the constant one.
func (vk *VerifyingKey) NbPublicInputs() int {
	return len(vk.G1.K) - 1
}

// Parameters is a pair of keys generated together by [Setup].
type Parameters struct {
	VerifyingKey VerifyingKey
	ProvingKey   ProvingKey
}

// Proof is a Groth16 proof.
type Proof struct {
	Ar  bn254.G1Affine
	Bs  bn254.G2Affine
	Krs bn254.G1Affine
}

// PreparedVerifyingKey is a [VerifyingKey] with the pairing-side
// values precomputed.
type PreparedVerifyingKey struct {
	AlphaBeta bn254.GT

	GammaNeg bn254.G2Affine
	DeltaNeg bn254.G2Affine

	K []bn254.G1Affine
}
