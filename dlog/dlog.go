// Package dlog proves knowledge of a discrete logarithm on BabyJubJub
// with Groth16 over BN254.
//
// Given a public point H, a proof shows that the prover knows x
// with H = x * G, without revealing x. All inputs and outputs are hex strings.
//
// Parameters are generated from a single seed. Anyone who knows
// the seed can forge proofs, so Generate is suitable for tests and demos only.
package dlog

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	cs_bn254 "github.com/consensys/gnark/constraint/bn254"
	"github.com/rs/zerolog"
	"github.com/sp301415/dlog-snark/circuit"
	"github.com/sp301415/dlog-snark/csprng"
	"github.com/sp301415/dlog-snark/groth16"
)

var logger = zerolog.Nop()

// SetLogger replaces the package logger, which discards everything by default.
// It must not be called concurrently with the operations.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// GenerateResult is the result of [Generate].
type GenerateResult struct {
	Params string `json:"params"`
}

// ProveResult is the result of [Prove].
type ProveResult struct {
	Proof string `json:"proof"`
	H     string `json:"h"`
}

// VerifyResult is the result of [Verify].
type VerifyResult struct {
	Result bool `json:"result"`
}

var (
	compiledR1CS *cs_bn254.R1CS
	compiledQAP  *groth16.QAP
	compileErr   error
	compileOnce  sync.Once
)

// compile returns the shared constraint system of the circuit.
func compile() (*cs_bn254.R1CS, *groth16.QAP, error) {
	compileOnce.Do(func() {
		r, err := circuit.Compile()
		if err != nil {
			compileErr = withKind(ErrCryptoBackend, err, "compile circuit")
			return
		}
		compiledR1CS = r
		compiledQAP = groth16.NewQAP(r)

		logger.Debug().
			Int("constraints", r.GetNbConstraints()).
			Int("wires", compiledQAP.NbWires()).
			Uint64("domain", compiledQAP.Domain.Cardinality).
			Msg("compiled circuit")
	})
	return compiledR1CS, compiledQAP, compileErr
}

// Generate generates the parameters of the circuit from seed.
// The output is a deterministic function of seed.
func Generate(seed []uint32) (GenerateResult, error) {
	now := time.Now()

	_, q, err := compile()
	if err != nil {
		return GenerateResult{}, err
	}

	params, err := groth16.SetupQAP(q, csprng.NewStreamSampler(seed))
	if err != nil {
		return GenerateResult{}, withKind(ErrCryptoBackend, err, "setup")
	}

	b, err := params.MarshalBinary()
	if err != nil {
		return GenerateResult{}, withKind(ErrSerializationIO, err, "write parameters")
	}

	logger.Debug().Int("bytes", len(b)).Dur("elapsed", time.Since(now)).Msg("generated parameters")
	return GenerateResult{Params: hex.EncodeToString(b)}, nil
}

// Prove proves knowledge of x for H = x * G, and returns the proof and H.
// x is a hex-encoded integer less than the BabyJubJub subgroup order.
// The output is a deterministic function of the inputs.
func Prove(seed []uint32, params, x string) (ProveResult, error) {
	now := time.Now()

	if params == "" {
		return ProveResult{}, ErrMissingParameters
	}

	p, err := decodeParameters(params)
	if err != nil {
		return ProveResult{}, err
	}

	rng := csprng.NewStreamSampler(seed)

	s, err := ParseScalar(x)
	if err != nil {
		return ProveResult{}, err
	}
	h := s.Point()

	r, q, err := compile()
	if err != nil {
		return ProveResult{}, err
	}

	prover, err := groth16.NewProverQAP(r, q, &p.ProvingKey)
	if err != nil {
		return ProveResult{}, withKind(ErrCryptoBackend, err, "load proving key")
	}

	proof, err := prover.Prove(circuit.Assign(s.Fr, h), rng)
	if err != nil {
		logger.Err(err).Msg("proof generation failed")
		return ProveResult{}, withKind(ErrCryptoBackend, err, "prove")
	}

	b, err := proof.MarshalBinary()
	if err != nil {
		return ProveResult{}, withKind(ErrSerializationIO, err, "write proof")
	}

	logger.Debug().Dur("elapsed", time.Since(now)).Msg("generated proof")
	return ProveResult{
		Proof: hex.EncodeToString(b),
		H:     hex.EncodeToString(EncodePoint(h)),
	}, nil
}

// Verify verifies proof against the public point h.
// A proof that fails the pairing check yields Result = false and no error.
// Malformed inputs yield an error wrapping [ErrInvalidEncoding].
func Verify(params, proof, h string) (VerifyResult, error) {
	p, err := decodeParameters(params)
	if err != nil {
		return VerifyResult{}, err
	}

	verifier, err := groth16.NewVerifier(&p.VerifyingKey)
	if err != nil {
		return VerifyResult{}, withKind(ErrCryptoBackend, err, "prepare verifying key")
	}

	hBytes, err := hex.DecodeString(h)
	if err != nil {
		return VerifyResult{}, withKind(ErrInvalidEncoding, err, "decode h")
	}
	hp, err := DecodePoint(hBytes)
	if err != nil {
		return VerifyResult{}, err
	}

	proofBytes, err := hex.DecodeString(proof)
	if err != nil {
		return VerifyResult{}, withKind(ErrInvalidEncoding, err, "decode proof")
	}
	var pf groth16.Proof
	if err := pf.UnmarshalBinary(proofBytes); err != nil {
		return VerifyResult{}, withKind(ErrInvalidEncoding, err, "unmarshal proof")
	}

	ok, err := verifier.Verify(&pf, []fr.Element{hp.X, hp.Y})
	if err != nil {
		return VerifyResult{}, withKind(ErrCryptoBackend, err, "verify proof")
	}

	logger.Debug().Bool("result", ok).Msg("verified proof")
	return VerifyResult{Result: ok}, nil
}

func decodeParameters(params string) (*groth16.Parameters, error) {
	b, err := hex.DecodeString(params)
	if err != nil {
		return nil, withKind(ErrInvalidEncoding, err, "decode params")
	}

	p := &groth16.Parameters{}
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, withKind(ErrInvalidEncoding, err, "unmarshal params")
	}
	return p, nil
}
