// SPDX-License-Identifier: MIT

// Package algorithms - reversible arithmetic.
//
// Implementation:
//   - The incrementer flips qubit i when every less significant qubit is 1,
//     from the most significant qubit down, then flips the last qubit.
//   - The decrementer is the inverse timeline of the incrementer.
//   - Half and full blocks follow the Toffoli/CNOT constructions; the ripple
//     Adder and Subtractor chain full blocks from the least significant bit,
//     each carry landing on the qubit the next block reads as its carry in.
//
// Complexity: Increment on n qubits applies n lifted entries over 2^n
// amplitudes; Adder(n) runs n blocks over 2^(3n+1) amplitudes.

package algorithms

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// bitsFor returns ⌈log2(modulus)⌉.
func bitsFor(modulus uint64) int {
	return int(math.Ceil(math.Log2(float64(modulus))))
}

// Incrementer adds one modulo 2^n.
type Incrementer struct {
	*circuit.Circuit
	src qubit.Source
}

// NewIncrementer returns "|Inc-n|".
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func NewIncrementer(n int, opts ...Option) (*Incrementer, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewIncrementer(%d): %w", n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	c, err := incrementer(n, o)
	if err != nil {
		return nil, err
	}
	return &Incrementer{Circuit: c, src: o.src}, nil
}

// NewIncrementerModulus returns the incrementer over ⌈log2(modulus)⌉ qubits.
//
// Errors:
//   - ErrInvalidQubitCount when modulus < 2.
func NewIncrementerModulus(modulus uint64, opts ...Option) (*Incrementer, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("NewIncrementerModulus(%d): %w", modulus, ErrInvalidQubitCount)
	}
	return NewIncrementer(bitsFor(modulus), opts...)
}

func incrementer(n int, o options) (*circuit.Circuit, error) {
	c, err := o.newCircuit(fmt.Sprintf("|Inc-%d|", n), n)
	if err != nil {
		return nil, err
	}
	t := 0
	for i := 0; i < n-1; i++ {
		g, err := gate.MultiControlled(n-1-i, gate.PauliX())
		if err != nil {
			return nil, err
		}
		// controls n-1 … i+1, target i
		indices := make([]int, 0, n-i)
		for k := n - 1; k >= i; k-- {
			indices = append(indices, k)
		}
		if err = c.Append(g, t, indices...); err != nil {
			return nil, err
		}
		t++
	}
	if err = c.Append(gate.PauliX(), t, n-1); err != nil {
		return nil, err
	}
	return c, nil
}

// Increment returns r + 1 mod 2^n, collapsed to its most probable value.
//
// Errors:
//   - circuit.ErrDimensionMismatch when r does not have n qubits.
func (inc *Incrementer) Increment(r register.Register) (register.Register, error) {
	return r.Transformed(inc.Circuit, inc.src)
}

// Decrementer subtracts one modulo 2^n.
type Decrementer struct {
	*circuit.Circuit
	src qubit.Source
}

// NewDecrementer returns "|Dec-n|", the inverse of "|Inc-n|".
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func NewDecrementer(n int, opts ...Option) (*Decrementer, error) {
	if n < 1 {
		return nil, fmt.Errorf("NewDecrementer(%d): %w", n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	inc, err := incrementer(n, o)
	if err != nil {
		return nil, err
	}
	inv, err := circuit.Inverse(inc, o.circuitOptions()...)
	if err != nil {
		return nil, err
	}
	c, err := retitle(inv, fmt.Sprintf("|Dec-%d|", n), o)
	if err != nil {
		return nil, err
	}
	return &Decrementer{Circuit: c, src: o.src}, nil
}

// NewDecrementerModulus returns the decrementer over ⌈log2(modulus)⌉ qubits.
//
// Errors:
//   - ErrInvalidQubitCount when modulus < 2.
func NewDecrementerModulus(modulus uint64, opts ...Option) (*Decrementer, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("NewDecrementerModulus(%d): %w", modulus, ErrInvalidQubitCount)
	}
	return NewDecrementer(bitsFor(modulus), opts...)
}

// Decrement returns r - 1 mod 2^n, collapsed to its most probable value.
//
// Errors:
//   - circuit.ErrDimensionMismatch when r does not have n qubits.
func (dec *Decrementer) Decrement(r register.Register) (register.Register, error) {
	return r.Transformed(dec.Circuit, dec.src)
}

// HalfAdder is "|Half2Adder|" over (a, b, 0): Toffoli then CNOT leaves
// a⊕b on qubit 1 and the carry on qubit 2.
type HalfAdder struct {
	*circuit.Circuit
	src qubit.Source
}

// NewHalfAdder returns the half adder.
func NewHalfAdder(opts ...Option) (*HalfAdder, error) {
	o := gatherOptions(opts...)
	c, err := o.newCircuit("|Half2Adder|", 3)
	if err != nil {
		return nil, err
	}
	err = c.AppendAll(
		circuit.Scheduled{Transformer: gate.Toffoli(), Time: 0, Indices: []int{0, 1, 2}},
		circuit.Scheduled{Transformer: gate.ControlledNot(), Time: 1, Indices: []int{0, 1}},
	)
	if err != nil {
		return nil, err
	}
	return &HalfAdder{Circuit: c, src: o.src}, nil
}

// Add returns the sum bit and the carry of a + b.
func (h *HalfAdder) Add(a, b qubit.Qubit) (sum, carry qubit.Qubit, err error) {
	bits, _, err := readout(h.Circuit, h.src, a, b, qubit.Zero)
	if err != nil {
		return qubit.Qubit{}, qubit.Qubit{}, err
	}
	return bits[1], bits[2], nil
}

// HalfSubtractor is "|Half2Sub|" over (a, b, 0): a⊕b on qubit 1 and the
// borrow ¬a∧b on qubit 2. Qubit 0 is restored.
type HalfSubtractor struct {
	*circuit.Circuit
	src qubit.Source
}

// NewHalfSubtractor returns the half subtractor.
func NewHalfSubtractor(opts ...Option) (*HalfSubtractor, error) {
	o := gatherOptions(opts...)
	c, err := halfSubtractor(o)
	if err != nil {
		return nil, err
	}
	return &HalfSubtractor{Circuit: c, src: o.src}, nil
}

func halfSubtractor(o options) (*circuit.Circuit, error) {
	c, err := o.newCircuit("|Half2Sub|", 3)
	if err != nil {
		return nil, err
	}
	x := gate.PauliX()
	err = c.AppendAll(
		circuit.Scheduled{Transformer: gate.ControlledNot(), Time: 0, Indices: []int{0, 1}},
		circuit.Scheduled{Transformer: x, Time: 1, Indices: []int{0}},
		circuit.Scheduled{Transformer: gate.Toffoli(), Time: 2, Indices: []int{0, 1, 2}},
		circuit.Scheduled{Transformer: x, Time: 3, Indices: []int{0}},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Subtract returns the difference bit and the borrow of a - b.
func (h *HalfSubtractor) Subtract(a, b qubit.Qubit) (diff, borrow qubit.Qubit, err error) {
	bits, _, err := readout(h.Circuit, h.src, a, b, qubit.Zero)
	if err != nil {
		return qubit.Qubit{}, qubit.Qubit{}, err
	}
	return bits[1], bits[2], nil
}

// FullAdder is "|Full2Adder|" over (a, b, carry in, 0): the sum lands on
// qubit 2 and the carry out on qubit 3.
type FullAdder struct {
	*circuit.Circuit
	src qubit.Source
}

// NewFullAdder returns the full adder.
func NewFullAdder(opts ...Option) (*FullAdder, error) {
	o := gatherOptions(opts...)
	c, err := fullAdder(o)
	if err != nil {
		return nil, err
	}
	return &FullAdder{Circuit: c, src: o.src}, nil
}

func fullAdder(o options) (*circuit.Circuit, error) {
	c, err := o.newCircuit("|Full2Adder|", 4)
	if err != nil {
		return nil, err
	}
	tof, cnot := gate.Toffoli(), gate.ControlledNot()
	err = c.AppendAll(
		circuit.Scheduled{Transformer: tof, Time: 0, Indices: []int{1, 2, 3}},
		circuit.Scheduled{Transformer: cnot, Time: 1, Indices: []int{1, 2}},
		circuit.Scheduled{Transformer: tof, Time: 2, Indices: []int{0, 2, 3}},
		circuit.Scheduled{Transformer: cnot, Time: 3, Indices: []int{0, 2}},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Add returns the sum bit and the carry out of a + b + carry.
func (f *FullAdder) Add(a, b, carry qubit.Qubit) (sum, carryOut qubit.Qubit, err error) {
	bits, _, err := readout(f.Circuit, f.src, a, b, carry, qubit.Zero)
	if err != nil {
		return qubit.Qubit{}, qubit.Qubit{}, err
	}
	return bits[2], bits[3], nil
}

// FullSubtractor is "|Full2Sub|" over (a, b, borrow in, 0): two half
// subtractors, the difference on qubit 2 and the borrow out on qubit 3.
type FullSubtractor struct {
	*circuit.Circuit
	src qubit.Source
}

// NewFullSubtractor returns the full subtractor.
func NewFullSubtractor(opts ...Option) (*FullSubtractor, error) {
	o := gatherOptions(opts...)
	c, err := fullSubtractor(o)
	if err != nil {
		return nil, err
	}
	return &FullSubtractor{Circuit: c, src: o.src}, nil
}

func fullSubtractor(o options) (*circuit.Circuit, error) {
	half, err := halfSubtractor(o)
	if err != nil {
		return nil, err
	}
	c, err := o.newCircuit("|Full2Sub|", 4)
	if err != nil {
		return nil, err
	}
	err = c.AppendAll(
		circuit.Scheduled{Transformer: half, Time: 0, Indices: []int{0, 1, 3}},
		circuit.Scheduled{Transformer: half, Time: 1, Indices: []int{1, 2, 3}},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Subtract returns the difference bit and the borrow out of a - b - borrow.
func (f *FullSubtractor) Subtract(a, b, borrow qubit.Qubit) (diff, borrowOut qubit.Qubit, err error) {
	bits, _, err := readout(f.Circuit, f.src, a, b, borrow, qubit.Zero)
	if err != nil {
		return qubit.Qubit{}, qubit.Qubit{}, err
	}
	return bits[2], bits[3], nil
}

// Ripple is an n-bit adder or subtractor over 3n+1 qubits laid out as
// a (n), b (n) and a chain s (n+1). Bit k runs a full block on
// [k, n+k, 2n+k+1, 2n+k] from the least significant bit up, so s[n] is the
// carry (or borrow) in, s[1..n] the result and s[0] the carry (or borrow) out.
type Ripple struct {
	*circuit.Circuit
	bits int
	src  qubit.Source
}

// NewAdder returns "|Adder-n|".
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func NewAdder(n int, opts ...Option) (*Ripple, error) {
	return newRipple("Adder", n, fullAdder, opts)
}

// NewAdderModulus returns the adder over ⌈log2(modulus)⌉ bits.
//
// Errors:
//   - ErrInvalidQubitCount when modulus < 2.
func NewAdderModulus(modulus uint64, opts ...Option) (*Ripple, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("NewAdderModulus(%d): %w", modulus, ErrInvalidQubitCount)
	}
	return NewAdder(bitsFor(modulus), opts...)
}

// NewSubtractor returns "|Sub-n|".
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func NewSubtractor(n int, opts ...Option) (*Ripple, error) {
	return newRipple("Sub", n, fullSubtractor, opts)
}

// NewSubtractorModulus returns the subtractor over ⌈log2(modulus)⌉ bits.
//
// Errors:
//   - ErrInvalidQubitCount when modulus < 2.
func NewSubtractorModulus(modulus uint64, opts ...Option) (*Ripple, error) {
	if modulus < 2 {
		return nil, fmt.Errorf("NewSubtractorModulus(%d): %w", modulus, ErrInvalidQubitCount)
	}
	return NewSubtractor(bitsFor(modulus), opts...)
}

func newRipple(kind string, n int, block func(options) (*circuit.Circuit, error), opts []Option) (*Ripple, error) {
	if n < 1 {
		return nil, fmt.Errorf("New%s(%d): %w", kind, n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	full, err := block(o)
	if err != nil {
		return nil, err
	}
	c, err := o.newCircuit(fmt.Sprintf("|%s-%d|", kind, n), 3*n+1)
	if err != nil {
		return nil, err
	}
	for t, k := 0, n-1; k >= 0; t, k = t+1, k-1 {
		if err = c.Append(full, t, k, n+k, 2*n+k+1, 2*n+k); err != nil {
			return nil, err
		}
	}
	return &Ripple{Circuit: c, bits: n, src: o.src}, nil
}

// Bits returns the operand width n.
func (r *Ripple) Bits() int { return r.bits }

// Apply runs a and b (each padded with leading zeros to Bits()) with the
// given carry or borrow in. It returns the n-bit result and the carry or
// borrow out.
//
// Errors:
//   - ErrWidthMismatch when a or b is wider than Bits().
func (r *Ripple) Apply(a, b register.Register, in qubit.Qubit) (register.Register, qubit.Qubit, error) {
	n := r.bits
	if a.Len() > n || b.Len() > n {
		return register.Register{}, qubit.Qubit{}, fmt.Errorf("%s: %d and %d qubits, want at most %d: %w",
			r.Name(), a.Len(), b.Len(), n, ErrWidthMismatch)
	}
	qs := pad(a, n).Append(pad(b, n)).Append(register.Zeros(n)).Append(register.New(in)).Qubits()
	bits, _, err := readout(r.Circuit, r.src, qs...)
	if err != nil {
		return register.Register{}, qubit.Qubit{}, err
	}
	return register.New(bits[2*n+1:]...), bits[2*n], nil
}
