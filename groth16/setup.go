package groth16

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	cs_bn254 "github.com/consensys/gnark/constraint/bn254"
)

// toxicWaste is the secret randomness of the setup.
type toxicWaste struct {
	tau, alpha, beta, gamma, delta fr.Element
}

func sampleToxicWaste(q *QAP, s *FieldSampler) (toxicWaste, error) {
	var tw toxicWaste

	// tau must lie outside the domain for the Lagrange basis to be defined.
	n := big.NewInt(0).SetUint64(q.Domain.Cardinality)
	var tauN fr.Element
	for {
		if err := s.SampleNonZeroAssign(&tw.tau); err != nil {
			return tw, err
		}
		if !tauN.Exp(tw.tau, n).IsOne() {
			break
		}
	}

	for _, x := range []*fr.Element{&tw.alpha, &tw.beta, &tw.gamma, &tw.delta} {
		if err := s.SampleNonZeroAssign(x); err != nil {
			return tw, err
		}
	}
	return tw, nil
}

// Setup generates Groth16 parameters for r, drawing all randomness from rng.
// The output is a deterministic function of r and the bytes read from rng.
func Setup(r *cs_bn254.R1CS, rng io.Reader) (*Parameters, error) {
	return SetupQAP(NewQAP(r), rng)
}

// SetupQAP is like [Setup], but takes an already flattened [QAP].
func SetupQAP(q *QAP, rng io.Reader) (*Parameters, error) {
	tw, err := sampleToxicWaste(q, NewFieldSampler(rng))
	if err != nil {
		return nil, err
	}

	a, b, c := q.EvaluateWires(q.Lagrange(tw.tau))

	var gammaInv, deltaInv fr.Element
	gammaInv.Inverse(&tw.gamma)
	deltaInv.Inverse(&tw.delta)

	kPub := make([]fr.Element, q.NbPublic)
	kPriv := make([]fr.Element, q.NbWires()-q.NbPublic)
	var tmp fr.Element
	for i := 0; i < q.NbWires(); i++ {
		var k fr.Element
		k.Mul(&tw.beta, &a[i])
		tmp.Mul(&tw.alpha, &b[i])
		k.Add(&k, &tmp).Add(&k, &c[i])

		if i < q.NbPublic {
			kPub[i].Mul(&k, &gammaInv)
		} else {
			kPriv[i-q.NbPublic].Mul(&k, &deltaInv)
		}
	}

	var one, zt fr.Element
	one.SetOne()
	z := make([]fr.Element, q.Domain.Cardinality-1)
	zt.Exp(tw.tau, big.NewInt(0).SetUint64(q.Domain.Cardinality))
	zt.Sub(&zt, &one).Mul(&zt, &deltaInv)
	for i := range z {
		z[i] = zt
		zt.Mul(&zt, &tw.tau)
	}

	_, _, g1, g2 := bn254.Generators()

	params := &Parameters{}
	pk := &params.ProvingKey
	vk := &params.VerifyingKey

	pk.Digest = q.Digest

	pk.G1.Alpha.ScalarMultiplication(&g1, toBigInt(&tw.alpha))
	pk.G1.Beta.ScalarMultiplication(&g1, toBigInt(&tw.beta))
	pk.G1.Delta.ScalarMultiplication(&g1, toBigInt(&tw.delta))
	pk.G1.A = bn254.BatchScalarMultiplicationG1(&g1, a)
	pk.G1.B = bn254.BatchScalarMultiplicationG1(&g1, b)
	pk.G1.Z = bn254.BatchScalarMultiplicationG1(&g1, z)
	pk.G1.K = bn254.BatchScalarMultiplicationG1(&g1, kPriv)

	pk.G2.Beta.ScalarMultiplication(&g2, toBigInt(&tw.beta))
	pk.G2.Delta.ScalarMultiplication(&g2, toBigInt(&tw.delta))
	pk.G2.B = bn254.BatchScalarMultiplicationG2(&g2, b)

	vk.G1.Alpha = pk.G1.Alpha
	vk.G1.K = bn254.BatchScalarMultiplicationG1(&g1, kPub)
	vk.G2.Beta = pk.G2.Beta
	vk.G2.Gamma.ScalarMultiplication(&g2, toBigInt(&tw.gamma))
	vk.G2.Delta = pk.G2.Delta

	return params, nil
}
