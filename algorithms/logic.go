// SPDX-License-Identifier: MIT

// Package algorithms - logic and arithmetic operators.
//
// Qubit operators run the matching reversible gate and keep the most probable
// basis outcome of the target qubit; superposed inputs therefore collapse,
// ties drawn with the WithSource randomness. Register operators pad the
// shorter operand with leading zeros and work qubit by qubit, the arithmetic
// ones from the least significant qubit with a carried qubit.

package algorithms

import (
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// lastOf runs qs through t and returns the last qubit of the most probable outcome.
func lastOf(t gate.Transformer, src qubit.Source, qs ...qubit.Qubit) (qubit.Qubit, error) {
	v, err := gate.ApplyQubits(t, qs...)
	if err != nil {
		return qubit.Qubit{}, err
	}
	m, err := measure.New(v, measure.WithSource(src))
	if err != nil {
		return qubit.Qubit{}, err
	}
	bits, _ := m.MostProbableQubits()
	return bits[len(bits)-1], nil
}

// Xor returns a ⊕ b through a CNOT.
func Xor(a, b qubit.Qubit, opts ...Option) (qubit.Qubit, error) {
	return lastOf(gate.ControlledNot(), gatherOptions(opts...).src, a, b)
}

// Not returns X·q. The qubit is not measured.
func Not(q qubit.Qubit) (qubit.Qubit, error) {
	return gate.ApplyQubit(gate.PauliX(), q)
}

// And returns a ∧ b through a Toffoli onto |0>.
func And(a, b qubit.Qubit, opts ...Option) (qubit.Qubit, error) {
	return lastOf(gate.Toffoli(), gatherOptions(opts...).src, a, b, qubit.Zero)
}

// Or returns a ∨ b as ¬(¬a ∧ ¬b): a Toffoli on the negated inputs onto |1>.
func Or(a, b qubit.Qubit, opts ...Option) (qubit.Qubit, error) {
	na, err := Not(a)
	if err != nil {
		return qubit.Qubit{}, err
	}
	nb, err := Not(b)
	if err != nil {
		return qubit.Qubit{}, err
	}
	return lastOf(gate.Toffoli(), gatherOptions(opts...).src, na, nb, qubit.One)
}

// pairwise pads a and b to the same width and applies op qubit by qubit.
func pairwise(a, b register.Register, op func(x, y qubit.Qubit) (qubit.Qubit, error)) (register.Register, error) {
	n := max(a.Len(), b.Len())
	xs, ys := pad(a, n).Qubits(), pad(b, n).Qubits()
	out := make([]qubit.Qubit, n)
	for k := range out {
		q, err := op(xs[k], ys[k])
		if err != nil {
			return register.Register{}, err
		}
		out[k] = q
	}
	return register.New(out...), nil
}

// RegisterAnd returns the qubit-wise And of a and b.
func RegisterAnd(a, b register.Register, opts ...Option) (register.Register, error) {
	return pairwise(a, b, func(x, y qubit.Qubit) (qubit.Qubit, error) { return And(x, y, opts...) })
}

// RegisterOr returns the qubit-wise Or of a and b.
func RegisterOr(a, b register.Register, opts ...Option) (register.Register, error) {
	return pairwise(a, b, func(x, y qubit.Qubit) (qubit.Qubit, error) { return Or(x, y, opts...) })
}

// RegisterXor returns the qubit-wise Xor of a and b.
func RegisterXor(a, b register.Register, opts ...Option) (register.Register, error) {
	return pairwise(a, b, func(x, y qubit.Qubit) (qubit.Qubit, error) { return Xor(x, y, opts...) })
}

// RegisterNot negates every qubit of r.
func RegisterNot(r register.Register) (register.Register, error) {
	qs := r.Qubits()
	for k, q := range qs {
		nq, err := Not(q)
		if err != nil {
			return register.Register{}, err
		}
		qs[k] = nq
	}
	return register.New(qs...), nil
}

// Add returns a + b over max(len)+1 qubits, the carry first.
func Add(a, b register.Register, opts ...Option) (register.Register, error) {
	full, err := NewFullAdder(opts...)
	if err != nil {
		return register.Register{}, err
	}
	n := max(a.Len(), b.Len())
	xs, ys := pad(a, n).Qubits(), pad(b, n).Qubits()
	out := make([]qubit.Qubit, n)
	carry := qubit.Zero
	for k := n - 1; k >= 0; k-- {
		if out[k], carry, err = full.Add(xs[k], ys[k], carry); err != nil {
			return register.Register{}, err
		}
	}
	return register.New(carry).Append(register.New(out...)), nil
}

// Subtract returns a - b modulo 2^max(len); the final borrow is dropped.
func Subtract(a, b register.Register, opts ...Option) (register.Register, error) {
	full, err := NewFullSubtractor(opts...)
	if err != nil {
		return register.Register{}, err
	}
	n := max(a.Len(), b.Len())
	xs, ys := pad(a, n).Qubits(), pad(b, n).Qubits()
	out := make([]qubit.Qubit, n)
	borrow := qubit.Zero
	for k := n - 1; k >= 0; k-- {
		if out[k], borrow, err = full.Subtract(xs[k], ys[k], borrow); err != nil {
			return register.Register{}, err
		}
	}
	return register.New(out...), nil
}

// Increment returns r + 1 modulo 2^Len().
//
// Errors:
//   - ErrInvalidQubitCount for an empty register.
func Increment(r register.Register, opts ...Option) (register.Register, error) {
	inc, err := NewIncrementer(r.Len(), opts...)
	if err != nil {
		return register.Register{}, err
	}
	return inc.Increment(r)
}

// Decrement returns r - 1 modulo 2^Len().
//
// Errors:
//   - ErrInvalidQubitCount for an empty register.
func Decrement(r register.Register, opts ...Option) (register.Register, error) {
	dec, err := NewDecrementer(r.Len(), opts...)
	if err != nil {
		return register.Register{}, err
	}
	return dec.Decrement(r)
}
