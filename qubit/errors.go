// SPDX-License-Identifier: MIT

package qubit

import "errors"

var (
	// ErrInvalidShape is returned when a matrix is neither 2×1 nor 1×2.
	ErrInvalidShape = errors.New("qubit: matrix must be 2x1 or 1x2")

	// ErrNoQubits is returned when a tensor product over zero qubits is requested.
	ErrNoQubits = errors.New("qubit: no qubits given")
)
