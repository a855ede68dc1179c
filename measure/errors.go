// SPDX-License-Identifier: MIT

package measure

import "errors"

var (
	// ErrInvalidShape is returned when the input is not a single row or
	// column of 2^n amplitudes with n >= 1.
	ErrInvalidShape = errors.New("measure: input must be a 1x2^n or 2^nx1 matrix")

	// ErrIndexOutOfRange is returned for a qubit index outside [0, Qubits()).
	ErrIndexOutOfRange = errors.New("measure: qubit index out of range")
)
