// SPDX-License-Identifier: MIT

package algorithms

import "errors"

var (
	// ErrInvalidQubitCount is returned when a circuit would be built over too
	// few qubits (for example a Grover oracle with fewer than three inputs).
	ErrInvalidQubitCount = errors.New("algorithms: invalid qubit count")

	// ErrInvalidProbability is returned for an error probability outside (0, 1).
	ErrInvalidProbability = errors.New("algorithms: probability must be in (0, 1)")

	// ErrValueOutOfRange is returned when a value does not fit its bit width.
	ErrValueOutOfRange = errors.New("algorithms: value out of range")

	// ErrWidthMismatch is returned when a register is wider than the circuit
	// that should process it.
	ErrWidthMismatch = errors.New("algorithms: register width mismatch")
)
