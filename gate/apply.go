// SPDX-License-Identifier: MIT

package gate

import (
	"fmt"

	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
)

// Apply multiplies t's matrix by input (a 2^n column vector or any
// compatible matrix).
//
// Errors:
//   - ErrNilTransformer, or matrix.ErrDimensionMismatch wrapped with t's name.
func Apply(t Transformer, input *matrix.Matrix, opts ...matrix.Option) (*matrix.Matrix, error) {
	if t == nil {
		return nil, ErrNilTransformer
	}
	out, err := matrix.Mul(t.Matrix(), input, opts...)
	if err != nil {
		return nil, fmt.Errorf("Apply(%s): %w", t.Name(), err)
	}
	return out, nil
}

// ApplyQubits applies t to the tensor product of qs (qs[0] most significant).
//
// Errors:
//   - ErrArityMismatch when len(qs) != t.Inputs().
func ApplyQubits(t Transformer, qs ...qubit.Qubit) (*matrix.Matrix, error) {
	if t == nil {
		return nil, ErrNilTransformer
	}
	if len(qs) != t.Inputs() {
		return nil, fmt.Errorf("ApplyQubits(%s): %d qubits for %d inputs: %w", t.Name(), len(qs), t.Inputs(), ErrArityMismatch)
	}
	v, err := qubit.Vector(qs...)
	if err != nil {
		return nil, err
	}
	return Apply(t, v)
}

// ApplyQubit applies a single-qubit transformer to q.
//
// Errors:
//   - ErrNilTransformer, ErrArityMismatch when unary is not single-qubit.
func ApplyQubit(unary Transformer, q qubit.Qubit) (qubit.Qubit, error) {
	if err := validUnary(unary); err != nil {
		return qubit.Qubit{}, err
	}
	out, err := Apply(unary, q.Matrix())
	if err != nil {
		return qubit.Qubit{}, err
	}
	return qubit.FromMatrix(out)
}
