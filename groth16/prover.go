package groth16

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	cs_bn254 "github.com/consensys/gnark/constraint/bn254"
	"github.com/consensys/gnark/frontend"
	"github.com/pkg/errors"
)

// Prover proves a compiled circuit under a fixed [ProvingKey].
type Prover struct {
	ProvingKey *ProvingKey

	r1cs *cs_bn254.R1CS
	qap  *QAP
}

// NewProver creates a new Prover.
// It fails if pk was not generated for r.
func NewProver(r *cs_bn254.R1CS, pk *ProvingKey) (*Prover, error) {
	return NewProverQAP(r, NewQAP(r), pk)
}

// NewProverQAP is like [NewProver], but takes an already flattened [QAP] of r.
func NewProverQAP(r *cs_bn254.R1CS, q *QAP, pk *ProvingKey) (*Prover, error) {
	if !pk.Digest.Equal(&q.Digest) {
		return nil, errors.New("proving key does not match the constraint system")
	}

	nbWires := q.NbWires()
	switch {
	case len(pk.G1.A) != nbWires, len(pk.G1.B) != nbWires, len(pk.G2.B) != nbWires:
		return nil, errors.Errorf("proving key has wrong number of wire bases, expected %d", nbWires)
	case len(pk.G1.K) != nbWires-q.NbPublic:
		return nil, errors.Errorf("proving key has %d private bases, expected %d", len(pk.G1.K), nbWires-q.NbPublic)
	case uint64(len(pk.G1.Z)) != q.Domain.Cardinality-1:
		return nil, errors.Errorf("proving key has %d quotient bases, expected %d", len(pk.G1.Z), q.Domain.Cardinality-1)
	}

	return &Prover{
		ProvingKey: pk,

		r1cs: r,
		qap:  q,
	}, nil
}

// Prove proves the circuit in given assignment, drawing the blinding factors from rng.
func (p *Prover) Prove(assignment frontend.Circuit, rng io.Reader) (*Proof, error) {
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, errors.Wrap(err, "new witness")
	}

	sol, err := p.r1cs.Solve(w)
	if err != nil {
		return nil, errors.Wrap(err, "solve constraint system")
	}
	solution, ok := sol.(*cs_bn254.R1CSSolution)
	if !ok {
		return nil, errors.Errorf("unexpected solution %T", sol)
	}

	return p.ProveWires(solution.W, rng)
}

// ProveWires proves the circuit given the full wire assignment.
// The assignment is not checked against the constraints.
func (p *Prover) ProveWires(wires []fr.Element, rng io.Reader) (*Proof, error) {
	if len(wires) != p.qap.NbWires() {
		return nil, errors.Errorf("got %d wires, expected %d", len(wires), p.qap.NbWires())
	}

	var r, s fr.Element
	fs := NewFieldSampler(rng)
	if err := fs.SampleAssign(&r); err != nil {
		return nil, err
	}
	if err := fs.SampleAssign(&s); err != nil {
		return nil, err
	}

	h := p.qap.Quotient(p.qap.EvaluateRows(wires))

	pk := p.ProvingKey
	cfg := ecc.MultiExpConfig{}
	rBig, sBig := toBigInt(&r), toBigInt(&s)

	var tmp bn254.G1Affine

	// Ar = alpha + sum w_i A_i + r delta
	var ar bn254.G1Jac
	if _, err := ar.MultiExp(pk.G1.A, wires, cfg); err != nil {
		return nil, errors.Wrap(err, "msm A")
	}
	ar.AddMixed(&pk.G1.Alpha)
	ar.AddMixed(tmp.ScalarMultiplication(&pk.G1.Delta, rBig))

	// Bs = beta + sum w_i B_i + s delta, in both groups.
	var bs1 bn254.G1Jac
	if _, err := bs1.MultiExp(pk.G1.B, wires, cfg); err != nil {
		return nil, errors.Wrap(err, "msm B1")
	}
	bs1.AddMixed(&pk.G1.Beta)
	bs1.AddMixed(tmp.ScalarMultiplication(&pk.G1.Delta, sBig))

	var bs2 bn254.G2Jac
	var tmp2 bn254.G2Affine
	if _, err := bs2.MultiExp(pk.G2.B, wires, cfg); err != nil {
		return nil, errors.Wrap(err, "msm B2")
	}
	bs2.AddMixed(&pk.G2.Beta)
	bs2.AddMixed(tmp2.ScalarMultiplication(&pk.G2.Delta, sBig))

	// Krs = sum_priv w_i K_i + sum h_k Z_k + s Ar + r Bs - rs delta
	var krs, kz bn254.G1Jac
	if _, err := krs.MultiExp(pk.G1.K, wires[p.qap.NbPublic:], cfg); err != nil {
		return nil, errors.Wrap(err, "msm K")
	}
	if _, err := kz.MultiExp(pk.G1.Z, h, cfg); err != nil {
		return nil, errors.Wrap(err, "msm Z")
	}
	krs.AddAssign(&kz)

	var sAr, rBs bn254.G1Jac
	sAr.ScalarMultiplication(&ar, sBig)
	rBs.ScalarMultiplication(&bs1, rBig)
	krs.AddAssign(&sAr).AddAssign(&rBs)

	var rs fr.Element
	rs.Mul(&r, &s)
	krs.AddMixed(tmp.ScalarMultiplication(&pk.G1.Delta, toBigInt(rs.Neg(&rs))))

	proof := &Proof{}
	proof.Ar.FromJacobian(&ar)
	proof.Bs.FromJacobian(&bs2)
	proof.Krs.FromJacobian(&krs)
	return proof, nil
}
