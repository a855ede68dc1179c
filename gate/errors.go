// SPDX-License-Identifier: MIT

package gate

import "errors"

var (
	// ErrArityMismatch is returned when a transformer is applied to, or built
	// from, operands with the wrong number of qubits.
	ErrArityMismatch = errors.New("gate: arity mismatch")

	// ErrInvalidMatrix is returned when a matrix is not square with side 2^inputs.
	ErrInvalidMatrix = errors.New("gate: matrix is not square 2^inputs")

	// ErrInvalidQubitCount is returned for non-positive qubit or control counts.
	ErrInvalidQubitCount = errors.New("gate: qubit count must be > 0")

	// ErrNilTransformer is returned when a nil Transformer is passed.
	ErrNilTransformer = errors.New("gate: nil transformer")
)
