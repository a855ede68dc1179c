// SPDX-License-Identifier: MIT

package circuit

import "errors"

// Sentinel errors. Context is attached with fmt.Errorf("%w") at the detection
// site; callers match with errors.Is.
var (
	// ErrDimensionMismatch is returned when an input vector does not encode
	// exactly Inputs() qubits, or a gate matrix does not fit its indices.
	ErrDimensionMismatch = errors.New("circuit: dimension mismatch")

	// ErrIndexOutOfRange is returned for a qubit index outside [0, Inputs()),
	// or for a timeline position that does not exist.
	ErrIndexOutOfRange = errors.New("circuit: index out of range")

	// ErrArityMismatch is returned when the number of indices differs from the
	// transformer's input count.
	ErrArityMismatch = errors.New("circuit: arity mismatch")

	// ErrOverlappingIndices is returned when an entry repeats an index or
	// shares a qubit with another entry at the same time step.
	ErrOverlappingIndices = errors.New("circuit: overlapping qubit indices")

	// ErrInvalidQubitCount is returned for circuits with fewer than one qubit.
	ErrInvalidQubitCount = errors.New("circuit: qubit count must be > 0")

	// ErrTooManyQubits is returned when a circuit exceeds its qubit limit.
	ErrTooManyQubits = errors.New("circuit: qubit limit exceeded")

	// ErrStepOutOfRange is returned for negative or inverted step ranges.
	ErrStepOutOfRange = errors.New("circuit: step out of range")

	// ErrCyclicCircuit is returned when a circuit would contain itself.
	ErrCyclicCircuit = errors.New("circuit: circuit cannot contain itself")
)
