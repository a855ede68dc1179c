// SPDX-License-Identifier: MIT

package register

import "errors"

var (
	// ErrIndexOutOfRange is returned for a qubit index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("register: index out of range")

	// ErrEmptyRegister is returned when an operation needs at least one qubit.
	ErrEmptyRegister = errors.New("register: register has no qubits")
)
