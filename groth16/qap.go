// Package groth16 implements a seeded Groth16 proof system over BN254
// for constraint systems compiled by gnark.
package groth16

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
	"github.com/consensys/gnark/constraint"
	cs_bn254 "github.com/consensys/gnark/constraint/bn254"
	"github.com/sp301415/dlog-snark/csprng"
	"github.com/sp301415/dlog-snark/num"
)

// digestKey domain-separates the circuit digest.
var digestKey = []byte("dlog-snark/groth16/qap")

// Term is a single coefficient-wire product of a linear combination.
type Term struct {
	Wire  int
	Coeff fr.Element
}

// Row is a single rank-1 constraint L * R = O.
type Row struct {
	L, R, O []Term
}

// QAP is the quadratic arithmetic program of a compiled R1CS.
//
// Wires are ordered as public (including the constant one at index 0),
// secret, then internal. After the constraints of the R1CS,
// one row pub_i * 0 = 0 is appended per public wire
// so that public polynomials are linearly independent.
type QAP struct {
	Rows []Row

	NbPublic   int
	NbSecret   int
	NbInternal int

	Domain *fft.Domain

	// Digest binds keys to the exact shape of the constraint system.
	Digest fr.Element
}

// NewQAP flattens r into a QAP.
func NewQAP(r *cs_bn254.R1CS) *QAP {
	q := &QAP{
		NbPublic:   r.GetNbPublicVariables(),
		NbSecret:   r.GetNbSecretVariables(),
		NbInternal: r.GetNbInternalVariables(),
	}

	q.Rows = make([]Row, 0, r.GetNbConstraints()+q.NbPublic)
	it := r.GetR1CIterator()
	for c := it.Next(); c != nil; c = it.Next() {
		q.Rows = append(q.Rows, Row{
			L: toTerms(r, c.L),
			R: toTerms(r, c.R),
			O: toTerms(r, c.O),
		})
	}

	var one fr.Element
	one.SetOne()
	for i := 0; i < q.NbPublic; i++ {
		q.Rows = append(q.Rows, Row{L: []Term{{Wire: i, Coeff: one}}})
	}

	q.Domain = fft.NewDomain(uint64(len(q.Rows)))
	q.Digest = q.digest()

	return q
}

func toTerms(r *cs_bn254.R1CS, l constraint.LinearExpression) []Term {
	terms := make([]Term, len(l))
	for i, t := range l {
		terms[i] = Term{
			Wire:  t.WireID(),
			Coeff: r.Coefficients[t.CoeffID()],
		}
	}
	return terms
}

// NbWires returns the total number of wires.
func (q *QAP) NbWires() int {
	return q.NbPublic + q.NbSecret + q.NbInternal
}

func (q *QAP) digest() fr.Element {
	oracle := csprng.NewUniformSampler(digestKey)
	oracle.WriteUint64(uint64(q.NbPublic))
	oracle.WriteUint64(uint64(q.NbSecret))
	oracle.WriteUint64(uint64(q.NbInternal))
	oracle.WriteUint64(uint64(len(q.Rows)))

	writeTerms := func(terms []Term) {
		oracle.WriteUint64(uint64(len(terms)))
		for _, t := range terms {
			oracle.WriteUint64(uint64(t.Wire))
			b := t.Coeff.Bytes()
			if _, err := oracle.Write(b[:]); err != nil {
				panic(err)
			}
		}
	}
	for _, row := range q.Rows {
		writeTerms(row.L)
		writeTerms(row.R)
		writeTerms(row.O)
	}

	oracle.Finalize()
	buf := make([]byte, fr.Bytes)
	if _, err := io.ReadFull(oracle, buf); err != nil {
		panic(err)
	}

	var d fr.Element
	d.SetBytes(buf)
	return d
}

// Lagrange returns the Lagrange basis of the domain evaluated at tau.
// tau must not be in the domain.
//
// L_i(tau) = w^i (tau^N - 1) / (N (tau - w^i)).
func (q *QAP) Lagrange(tau fr.Element) []fr.Element {
	n := q.Domain.Cardinality

	omega := make([]fr.Element, n)
	den := make([]fr.Element, n)
	omega[0].SetOne()
	for i := uint64(0); i < n; i++ {
		if i > 0 {
			omega[i].Mul(&omega[i-1], &q.Domain.Generator)
		}
		den[i].Sub(&tau, &omega[i])
	}
	den = fr.BatchInvert(den)

	var c, one fr.Element
	one.SetOne()
	c.Exp(tau, big.NewInt(0).SetUint64(n))
	c.Sub(&c, &one).Mul(&c, &q.Domain.CardinalityInv)

	res := make([]fr.Element, n)
	for i := range res {
		res[i].Mul(&omega[i], &den[i]).Mul(&res[i], &c)
	}
	return res
}

// EvaluateWires returns the per-wire polynomials A, B, C evaluated
// through the given Lagrange evaluations.
func (q *QAP) EvaluateWires(lagrange []fr.Element) (a, b, c []fr.Element) {
	a = make([]fr.Element, q.NbWires())
	b = make([]fr.Element, q.NbWires())
	c = make([]fr.Element, q.NbWires())

	var tmp fr.Element
	accumulate := func(out []fr.Element, terms []Term, l *fr.Element) {
		for _, t := range terms {
			tmp.Mul(&t.Coeff, l)
			out[t.Wire].Add(&out[t.Wire], &tmp)
		}
	}
	for i, row := range q.Rows {
		accumulate(a, row.L, &lagrange[i])
		accumulate(b, row.R, &lagrange[i])
		accumulate(c, row.O, &lagrange[i])
	}
	return
}

// EvaluateRows returns the evaluations of L, R, O of every row
// on the wire assignment w, padded to the domain size.
func (q *QAP) EvaluateRows(w []fr.Element) (a, b, c []fr.Element) {
	n := q.Domain.Cardinality
	a = make([]fr.Element, n)
	b = make([]fr.Element, n)
	c = make([]fr.Element, n)

	var tmp fr.Element
	eval := func(terms []Term, out *fr.Element) {
		for _, t := range terms {
			tmp.Mul(&t.Coeff, &w[t.Wire])
			out.Add(out, &tmp)
		}
	}
	for i, row := range q.Rows {
		eval(row.L, &a[i])
		eval(row.R, &b[i])
		eval(row.O, &c[i])
	}
	return
}

// Quotient computes the coefficients of h = (A * B - C) / Z,
// where A, B, C are interpolated from the row evaluations and Z = X^N - 1.
// The inputs are consumed, and the output has N - 1 coefficients.
func (q *QAP) Quotient(a, b, c []fr.Element) []fr.Element {
	d := q.Domain

	d.FFTInverse(a, fft.DIF)
	d.FFTInverse(b, fft.DIF)
	d.FFTInverse(c, fft.DIF)

	d.FFT(a, fft.DIT, fft.OnCoset())
	d.FFT(b, fft.DIT, fft.OnCoset())
	d.FFT(c, fft.DIT, fft.OnCoset())

	// Z is constant on the coset: g^N - 1.
	var zInv, one fr.Element
	one.SetOne()
	zInv.Exp(d.FrMultiplicativeGen, big.NewInt(0).SetUint64(d.Cardinality))
	zInv.Sub(&zInv, &one).Inverse(&zInv)

	for i := range a {
		a[i].Mul(&a[i], &b[i]).Sub(&a[i], &c[i]).Mul(&a[i], &zInv)
	}

	d.FFTInverse(a, fft.DIF, fft.OnCoset())
	num.BitReverseInPlace(a)

	return a[:d.Cardinality-1]
}
