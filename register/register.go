// SPDX-License-Identifier: MIT

package register

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
)

// Register is an ordered list of qubits, qubit 0 most significant.
type Register struct {
	qs []qubit.Qubit
}

// New returns a register holding a copy of qs.
func New(qs ...qubit.Qubit) Register {
	return Register{qs: slices.Clone(qs)}
}

// FromNumber encodes n in binary over max(bit length of n, minQubits)
// qubits. Zero has a bit length of one.
func FromNumber(n uint64, minQubits int) Register {
	size := max(bits.Len64(n), 1, minQubits)
	qs := make([]qubit.Qubit, size)
	for i := range qs {
		qs[i] = qubit.FromBit(n>>(size-1-i)&1 == 1)
	}
	return Register{qs: qs}
}

// Zeros returns |0…0> over n qubits.
func Zeros(n int) Register {
	qs := make([]qubit.Qubit, max(n, 0))
	for i := range qs {
		qs[i] = qubit.Zero
	}
	return Register{qs: qs}
}

// Hadamard returns n qubits in the uniform superposition (|0>+|1>)/√2 each,
// so every basis state of the register is equally likely.
func Hadamard(n int) Register {
	h := complex(math.Sqrt(0.5), 0)
	qs := make([]qubit.Qubit, max(n, 0))
	for i := range qs {
		qs[i] = qubit.New(h, h)
	}
	return Register{qs: qs}
}

// Len returns the number of qubits.
func (r Register) Len() int { return len(r.qs) }

// States returns 2^Len(), the number of basis states the register spans.
func (r Register) States() uint64 { return 1 << uint(len(r.qs)) }

// Qubit returns qubit i.
//
// Errors:
//   - ErrIndexOutOfRange for i outside [0, Len()).
func (r Register) Qubit(i int) (qubit.Qubit, error) {
	if i < 0 || i >= len(r.qs) {
		return qubit.Qubit{}, fmt.Errorf("Qubit(%d): %w", i, ErrIndexOutOfRange)
	}
	return r.qs[i], nil
}

// Qubits returns a copy of the qubits.
func (r Register) Qubits() []qubit.Qubit { return slices.Clone(r.qs) }

// With returns a copy of r with qubit i replaced by q.
//
// Errors:
//   - ErrIndexOutOfRange for i outside [0, Len()).
func (r Register) With(i int, q qubit.Qubit) (Register, error) {
	if i < 0 || i >= len(r.qs) {
		return Register{}, fmt.Errorf("With(%d): %w", i, ErrIndexOutOfRange)
	}
	qs := slices.Clone(r.qs)
	qs[i] = q
	return Register{qs: qs}, nil
}

// Append returns r followed by other.
func (r Register) Append(other Register) Register {
	return Register{qs: slices.Concat(r.qs, other.qs)}
}

// Amplitude returns the amplitude of basis state s: the product of each
// qubit's amplitude for its bit of s.
func (r Register) Amplitude(s uint64) complex128 {
	n := len(r.qs)
	amp := complex(1, 0)
	for i, q := range r.qs {
		if s>>(n-1-i)&1 == 1 {
			amp *= q.ExcitedAmplitude()
		} else {
			amp *= q.GroundAmplitude()
		}
	}
	return amp
}

// Matrix returns the 2^n×1 joint state vector.
//
// Errors:
//   - ErrEmptyRegister for a register without qubits.
func (r Register) Matrix() (*matrix.Matrix, error) {
	if len(r.qs) == 0 {
		return nil, ErrEmptyRegister
	}
	return qubit.Vector(r.qs...)
}

// classical returns the bit string of a register whose qubits all carry an
// amplitude of exactly 1 on one basis state.
func (r Register) classical() (string, bool) {
	var sb strings.Builder
	for _, q := range r.qs {
		switch {
		case q.GroundAmplitude() == 1:
			sb.WriteByte('0')
		case q.ExcitedAmplitude() == 1:
			sb.WriteByte('1')
		default:
			return "", false
		}
	}
	return sb.String(), true
}

// Measure returns the probabilistic map of the register's outcomes. A
// register of basis qubits short-circuits to its bit string with
// probability 1; any other register goes through measure.Measurer.
//
// Errors:
//   - ErrEmptyRegister for a register without qubits.
func (r Register) Measure(src qubit.Source) (map[string]float64, error) {
	if len(r.qs) == 0 {
		return nil, ErrEmptyRegister
	}
	if key, ok := r.classical(); ok {
		return map[string]float64{key: 1}, nil
	}
	v, err := r.Matrix()
	if err != nil {
		return nil, err
	}
	m, err := measure.New(v, measure.WithSource(src))
	if err != nil {
		return nil, err
	}
	return m.ProbabilisticMap(false), nil
}

// MostProbableIntegerValue measures the register and returns the most
// probable outcome as an integer, qubit 0 most significant. Maxima equal
// under matrix.AlmostEqual are decided by src over the outcomes in sorted order.
//
// Errors:
//   - ErrEmptyRegister for a register without qubits.
func (r Register) MostProbableIntegerValue(src qubit.Source) (uint64, error) {
	probs, err := r.Measure(src)
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(probs))
	top := math.Inf(-1)
	for k, p := range probs {
		keys = append(keys, k)
		top = max(top, p)
	}
	slices.Sort(keys)
	keys = slices.DeleteFunc(keys, func(k string) bool { return !matrix.AlmostEqual(probs[k], top) })
	key := keys[0]
	if len(keys) > 1 {
		key = keys[qubit.OrGlobal(src).Intn(len(keys))]
	}
	return strconv.ParseUint(key, 2, 64)
}

// TransformedVector applies c step by step to the register and returns the
// resulting amplitude vector without collapsing it.
//
// Errors:
//   - ErrEmptyRegister, or circuit.ErrDimensionMismatch when c.Inputs() != Len().
func (r Register) TransformedVector(c *circuit.Circuit) (*matrix.Matrix, error) {
	v, err := r.Matrix()
	if err != nil {
		return nil, err
	}
	return c.Transform(v)
}

// Transformed multiplies the register by the cached operator of c and
// collapses the result onto its most probable basis state (ties drawn with
// src). The result keeps r's qubit count. Repeated calls on one circuit reuse
// its total matrix.
//
// Errors:
//   - ErrEmptyRegister, or circuit.ErrDimensionMismatch when c.Inputs() != Len().
//   - Errors from (*circuit.Circuit).Operator.
func (r Register) Transformed(c *circuit.Circuit, src qubit.Source) (Register, error) {
	v, err := r.Matrix()
	if err != nil {
		return Register{}, err
	}
	if c.Inputs() != len(r.qs) {
		return Register{}, fmt.Errorf("Transformed(%s): %d qubits for %d inputs: %w",
			c.Name(), len(r.qs), c.Inputs(), circuit.ErrDimensionMismatch)
	}
	u, err := c.Operator()
	if err != nil {
		return Register{}, err
	}
	out, err := matrix.Mul(u, v)
	if err != nil {
		return Register{}, err
	}
	m, err := measure.New(out, measure.WithSource(src))
	if err != nil {
		return Register{}, err
	}
	n, _ := m.MostProbableIntegerValue()
	return FromNumber(n, len(r.qs)), nil
}

// Equal reports whether both registers hold qubit-wise equal qubits.
func (r Register) Equal(other Register) bool {
	return slices.EqualFunc(r.qs, other.qs, qubit.Qubit.Equal)
}

// String lists the basis states with a non-zero amplitude, one per line:
// "|01>" for amplitude 1, "(a)|01>" otherwise.
func (r Register) String() string {
	var sb strings.Builder
	n := len(r.qs)
	for s := uint64(0); s < r.States() && n > 0; s++ {
		amp := r.Amplitude(s)
		if cmplx.Abs(amp) <= matrix.Epsilon {
			continue
		}
		key := measure.Key(s, n)
		if amp == 1 {
			fmt.Fprintf(&sb, "|%s>\n", key)
		} else {
			fmt.Fprintf(&sb, "%v|%s>\n", amp, key)
		}
	}
	return sb.String()
}
