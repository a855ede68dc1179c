// SPDX-License-Identifier: MIT

// Package qubit - the Qubit value.
//
// Probabilities are snapped: a squared magnitude within the machine-epsilon
// policy of 0 or 1 is reported as exactly 0 or 1, so basis states measure
// deterministically even after long chains of products.

package qubit

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/katalvlaran/qsim/matrix"
)

// Qubit is a pair of amplitudes over the computational basis {|0>, |1>}.
type Qubit struct {
	ground  complex128
	excited complex128
}

var (
	// Zero is the basis state |0>.
	Zero = Qubit{ground: 1}
	// One is the basis state |1>.
	One = Qubit{excited: 1}
)

// New returns a qubit with the given amplitudes. Normalization is not enforced.
func New(ground, excited complex128) Qubit {
	return Qubit{ground: ground, excited: excited}
}

// FromBit returns One when bit is true and Zero otherwise.
func FromBit(bit bool) Qubit {
	if bit {
		return One
	}
	return Zero
}

// FromMatrix reads a qubit from a 2×1 column or a 1×2 row.
//
// Errors:
//   - ErrInvalidShape for any other shape.
func FromMatrix(m *matrix.Matrix) (Qubit, error) {
	if m == nil {
		return Qubit{}, ErrInvalidShape
	}
	switch {
	case m.Rows() == 2 && m.Cols() == 1, m.Rows() == 1 && m.Cols() == 2:
		data := m.Data()
		return Qubit{ground: data[0], excited: data[1]}, nil
	default:
		return Qubit{}, fmt.Errorf("FromMatrix(%dx%d): %w", m.Rows(), m.Cols(), ErrInvalidShape)
	}
}

// GroundAmplitude returns the |0> amplitude.
func (q Qubit) GroundAmplitude() complex128 { return q.ground }

// ExcitedAmplitude returns the |1> amplitude.
func (q Qubit) ExcitedAmplitude() complex128 { return q.excited }

// snap maps a probability close to 0 or 1 onto the exact value.
func snap(p float64) float64 {
	switch {
	case matrix.AlmostOne(p):
		return 1
	case matrix.AlmostZero(p):
		return 0
	default:
		return p
	}
}

// GroundProbability returns |ground|², snapped to 0 or 1 when within epsilon.
func (q Qubit) GroundProbability() float64 {
	a := cmplx.Abs(q.ground)
	return snap(a * a)
}

// ExcitedProbability returns |excited|², snapped to 0 or 1 when within epsilon.
func (q Qubit) ExcitedProbability() float64 {
	a := cmplx.Abs(q.excited)
	return snap(a * a)
}

// isPure reports the outcome for a qubit that is exactly a basis state up to phase.
func (q Qubit) isPure() (Outcome, bool) {
	g, e := cmplx.Abs(q.ground), cmplx.Abs(q.excited)
	switch {
	case matrix.AlmostOne(e) && matrix.AlmostZero(g):
		return Excited, true
	case matrix.AlmostOne(g) && matrix.AlmostZero(e):
		return Grounded, true
	default:
		return Undefined, false
	}
}

// IsNormalized reports whether the probabilities add up to 1 within epsilon.
func (q Qubit) IsNormalized() bool {
	if _, ok := q.isPure(); ok {
		return true
	}
	return matrix.AlmostOne(q.GroundProbability() + q.ExcitedProbability())
}

// Peek samples a measurement outcome without collapsing the qubit.
//
// Behavior highlights:
//   - Unnormalized qubits yield Undefined.
//   - Basis states (up to phase) yield their outcome with probability 1.
//   - Equal probabilities are decided by a fair coin; otherwise src.Float64() < P(|0>)
//     selects Grounded.
func (q Qubit) Peek(src Source) State {
	if !q.IsNormalized() {
		return State{Outcome: Undefined}
	}
	if o, ok := q.isPure(); ok {
		return State{Outcome: o, Probability: 1}
	}

	gp, ep := q.GroundProbability(), q.ExcitedProbability()
	if matrix.AlmostOne(gp) {
		return State{Outcome: Grounded, Probability: 1}
	}
	if matrix.AlmostOne(ep) {
		return State{Outcome: Excited, Probability: 1}
	}

	threshold := gp
	if matrix.AlmostEqual(gp, ep) {
		threshold = 0.5
	}
	if OrGlobal(src).Float64() < threshold {
		return State{Outcome: Grounded, Probability: gp}
	}

	return State{Outcome: Excited, Probability: ep}
}

// Measure samples an outcome like Peek and collapses the qubit onto it.
// An Undefined outcome leaves the qubit untouched.
func (q *Qubit) Measure(src Source) State {
	s := q.Peek(src)
	switch s.Outcome {
	case Grounded:
		*q = Zero
	case Excited:
		*q = One
	}
	return s
}

// Matrix returns the 2×1 column (ground, excited).
func (q Qubit) Matrix() *matrix.Matrix {
	m, _ := matrix.Vector(q.ground, q.excited)
	return m
}

// Vector returns the tensor product of qs as a 2^n×1 column; qs[0] is the most
// significant qubit.
//
// Errors:
//   - ErrNoQubits when qs is empty.
func Vector(qs ...Qubit) (*matrix.Matrix, error) {
	if len(qs) == 0 {
		return nil, ErrNoQubits
	}
	acc := qs[0].Matrix()
	for _, q := range qs[1:] {
		next, err := matrix.Tensor(acc, q.Matrix())
		if err != nil {
			return nil, err
		}
		acc = next
	}

	return acc, nil
}

// Equal compares the magnitudes of both amplitudes; global and relative phases
// are ignored.
func (q Qubit) Equal(other Qubit) bool {
	return matrix.AlmostEqualAbs(q.ground, other.ground) && matrix.AlmostEqualAbs(q.excited, other.excited)
}

// String renders the qubit in ket notation: "|0>", "|1>" or "(a)|0> + (b)|1>".
func (q Qubit) String() string {
	var sb strings.Builder
	sep := " + "
	switch q.ground {
	case 1:
		sb.WriteString("|0>")
	case 0:
		sep = ""
	default:
		fmt.Fprintf(&sb, "%v|0>", q.ground)
	}
	switch q.excited {
	case 1:
		sb.WriteString(sep + "|1>")
	case 0:
	default:
		fmt.Fprintf(&sb, "%s%v|1>", sep, q.excited)
	}
	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}
