// SPDX-License-Identifier: MIT

package algorithms

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
)

// Flip returns "|Flip-n|", which reverses the order of n qubits: qubit k is
// swapped with qubit n-1-k at time 0.
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func Flip(n int, opts ...Option) (*circuit.Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("Flip(%d): %w", n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	c, err := o.newCircuit(fmt.Sprintf("|Flip-%d|", n), n)
	if err != nil {
		return nil, err
	}
	for k := 0; k < n/2; k++ {
		if err = c.Append(gate.Swap(), 0, k, n-k-1); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// QFT returns the circuit form of the n-qubit quantum Fourier transform,
// "|QuFT-n|", or of its inverse "|InvQuFT-n|".
//
// Layout, one entry per time step:
//  1. For each qubit k: H on k, then for p = 1..n-k-1 a controlled
//     PhaseShift(±π/2^p) with qubit k+p as control and k as target.
//  2. A nested Flip over all qubits.
//
// The inverse negates every phase; since every other gate is real, the
// product is the complex conjugate of the forward transform, which for the
// symmetric Fourier matrix is its inverse. The total matrix equals
// gate.QFT(n, inverse).
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func QFT(n int, inverse bool, opts ...Option) (*circuit.Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("QFT(%d): %w", n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	name, sign := fmt.Sprintf("|QuFT-%d|", n), 1.0
	if inverse {
		name, sign = fmt.Sprintf("|InvQuFT-%d|", n), -1.0
	}
	c, err := o.newCircuit(name, n)
	if err != nil {
		return nil, err
	}

	h := gate.Hadamard()
	t := 0
	for k := 0; k < n; k++ {
		if err = c.Append(h, t, k); err != nil {
			return nil, err
		}
		t++
		for p := 1; p < n-k; p++ {
			cp, err := gate.Controlled(gate.PhaseShift(sign * math.Pi / float64(uint64(1)<<p)))
			if err != nil {
				return nil, err
			}
			if err = c.Append(cp, t, k+p, k); err != nil {
				return nil, err
			}
			t++
		}
	}

	flip, err := Flip(n, opts...)
	if err != nil {
		return nil, err
	}
	if err = c.Append(flip, t, span(0, n)...); err != nil {
		return nil, err
	}
	return c, nil
}
