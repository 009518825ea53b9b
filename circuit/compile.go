package circuit

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	cs_bn254 "github.com/consensys/gnark/constraint/bn254"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/pkg/errors"
)

var (
	compiled    *cs_bn254.R1CS
	compileErr  error
	compileOnce sync.Once
)

// Compile compiles the empty [Circuit] into a BN254 R1CS.
// The circuit is compiled once per process, and every caller
// shares the same constraint system.
func Compile() (*cs_bn254.R1CS, error) {
	compileOnce.Do(func() {
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &Circuit{})
		if err != nil {
			compileErr = errors.Wrap(err, "compile circuit")
			return
		}

		r, ok := ccs.(*cs_bn254.R1CS)
		if !ok {
			compileErr = errors.Errorf("unexpected constraint system %T", ccs)
			return
		}
		compiled = r
	})
	return compiled, compileErr
}
