package dlog

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Error kinds returned by the operations of this package.
// Use errors.Is to classify an error.
var (
	// ErrInvalidEncoding is returned for malformed hex, truncated or
	// trailing bytes, and points outside the expected group.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrMissingParameters is returned by Prove when params is empty.
	ErrMissingParameters = errors.New("Params are empty. Did you generate or load params?")
	// ErrScalarOutOfRange is returned when x is not less than the subgroup order.
	ErrScalarOutOfRange = errors.New("scalar out of range")
	// ErrScalarUnparseable is returned when x cannot be projected into Fr or Fs.
	ErrScalarUnparseable = errors.New("scalar unparseable")
	// ErrCryptoBackend is returned when circuit synthesis, setup or proving fails.
	ErrCryptoBackend = errors.New("crypto backend failure")
	// ErrSerializationIO is returned when parameters or proofs cannot be written.
	ErrSerializationIO = errors.New("serialization failure")
)

// kindError classifies cause as one of the error kinds above.
// Both the kind and the cause are reachable through errors.Is and errors.As.
type kindError struct {
	kind  error
	cause error
}

// withKind wraps err with msg and classifies it as kind.
func withKind(kind, err error, msg string) error {
	return &kindError{
		kind:  kind,
		cause: errors.Wrap(err, msg),
	}
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// Format prints the stack of the cause with %+v.
func (e *kindError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.kind, e.cause)
		return
	}
	io.WriteString(s, e.Error())
}
