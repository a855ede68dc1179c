// SPDX-License-Identifier: MIT

// Package gate - derived gates.
//
// Implementation notes:
//   - Controlled lifts place the target matrix in the lower-right block of an
//     identity twice its size; k controls repeat the doubling k times.
//   - Compiled multiplies operand matrices left to right (m1·m2·…·mk).
//   - QFT entries are computed from (i·j mod N) to keep large exponents exact.

package gate

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/qsim/matrix"
)

// controlledMatrix returns the 2n×2n identity with m in its lower-right block.
func controlledMatrix(m *matrix.Matrix) *matrix.Matrix {
	size := m.Rows()
	out := identity(2 * size)
	if err := out.SetBlock(size, size, m); err != nil {
		panic(err) // block always fits
	}
	return out
}

// validUnary checks that t is a non-nil single-qubit transformer.
func validUnary(t Transformer) error {
	if t == nil {
		return ErrNilTransformer
	}
	if t.Inputs() != 1 {
		return fmt.Errorf("%s has %d inputs, want 1: %w", t.Name(), t.Inputs(), ErrArityMismatch)
	}
	return nil
}

// Controlled returns "|C-x|": qubit 0 controls unary on qubit 1.
//
// Errors:
//   - ErrNilTransformer, ErrArityMismatch when unary is not single-qubit.
func Controlled(unary Transformer) (*Gate, error) {
	if err := validUnary(unary); err != nil {
		return nil, err
	}
	return &Gate{
		kind:     KindControlled,
		name:     "|C-" + TrimName(unary.Name()) + "|",
		m:        controlledMatrix(unary.Matrix()),
		inputs:   2,
		outputs:  2,
		base:     unary,
		controls: 1,
	}, nil
}

// ControlledControlled returns "|CC-x|": qubits 0 and 1 control unary on qubit 2.
//
// Errors:
//   - ErrNilTransformer, ErrArityMismatch when unary is not single-qubit.
func ControlledControlled(unary Transformer) (*Gate, error) {
	if err := validUnary(unary); err != nil {
		return nil, err
	}
	return &Gate{
		kind:     KindControlled,
		name:     "|CC-" + TrimName(unary.Name()) + "|",
		m:        controlledMatrix(controlledMatrix(unary.Matrix())),
		inputs:   3,
		outputs:  3,
		base:     unary,
		controls: 2,
	}, nil
}

// MultiControlled returns a gate where the first k qubits control target on
// the remaining target.Inputs() qubits. The name repeats "C-" k times.
//
// Errors:
//   - ErrNilTransformer, ErrInvalidQubitCount when k < 1.
//
// Complexity: O(4^(k+target.Inputs())) cells in the worst case.
func MultiControlled(k int, target Transformer) (*Gate, error) {
	if target == nil {
		return nil, ErrNilTransformer
	}
	if k < 1 {
		return nil, fmt.Errorf("MultiControlled(%d): %w", k, ErrInvalidQubitCount)
	}
	m := target.Matrix()
	for i := 0; i < k; i++ {
		m = controlledMatrix(m)
	}
	return &Gate{
		kind:     KindMultiControlled,
		name:     "|" + strings.Repeat("C-", k) + TrimName(target.Name()) + "|",
		m:        m,
		inputs:   k + target.Inputs(),
		outputs:  k + target.Outputs(),
		base:     target,
		controls: k,
	}, nil
}

// Compiled returns "|name|" whose matrix is the product of the operands'
// matrices in the given order. ok is false when gates is empty, when the
// operands disagree on arity, or when their matrices cannot be multiplied.
func Compiled(name string, gates ...Transformer) (g *Gate, ok bool) {
	if len(gates) == 0 || gates[0] == nil {
		return nil, false
	}
	in, out := gates[0].Inputs(), gates[0].Outputs()
	m := gates[0].Matrix()
	for _, t := range gates[1:] {
		if t == nil || t.Inputs() != in || t.Outputs() != out {
			return nil, false
		}
		next, err := matrix.Mul(m, t.Matrix())
		if err != nil {
			return nil, false
		}
		m = next
	}
	return &Gate{
		kind:    KindCompiled,
		name:    "|" + name + "|",
		m:       m,
		inputs:  in,
		outputs: out,
		parts:   append([]Transformer(nil), gates...),
	}, true
}

// Powered returns "|(x)^e|" with matrix t^e; e == 0 yields the identity.
//
// Errors:
//   - ErrNilTransformer, or matrix.ErrNonSquare for a malformed transformer.
func Powered(t Transformer, e uint) (*Gate, error) {
	if t == nil {
		return nil, ErrNilTransformer
	}
	m, err := matrix.Pow(t.Matrix(), e)
	if err != nil {
		return nil, fmt.Errorf("Powered(%s): %w", t.Name(), err)
	}
	return &Gate{
		kind:     KindPowered,
		name:     fmt.Sprintf("|(%s)^%d|", TrimName(t.Name()), e),
		m:        m,
		inputs:   t.Inputs(),
		outputs:  t.Outputs(),
		base:     t,
		exponent: e,
	}, nil
}

// Universal wraps an arbitrary square matrix of side 2^inputs under the given
// name, used verbatim. The matrix is copied.
//
// Errors:
//   - ErrInvalidQubitCount when inputs or outputs < 1.
//   - ErrInvalidMatrix when m is nil or not 2^inputs square.
func Universal(name string, m *matrix.Matrix, inputs, outputs int) (*Gate, error) {
	if inputs < 1 || outputs < 1 {
		return nil, fmt.Errorf("Universal(%s): %w", name, ErrInvalidQubitCount)
	}
	if m == nil || m.Rows() != m.Cols() || log2(m.Rows()) != inputs {
		return nil, fmt.Errorf("Universal(%s): %w", name, ErrInvalidMatrix)
	}
	return &Gate{kind: KindUniversal, name: name, m: m.Clone(), inputs: inputs, outputs: outputs}, nil
}

// QFT returns the n-qubit quantum Fourier transform "|QuFT-n|", or its
// inverse "|InvQuFT-n|". Entry (i, j) is ω^(i·j)/√N with N = 2^n and
// ω = e^(±2πi/N).
//
// Errors:
//   - ErrInvalidQubitCount when n < 1.
func QFT(n int, inverse bool) (*Gate, error) {
	if n < 1 {
		return nil, fmt.Errorf("QFT(%d): %w", n, ErrInvalidQubitCount)
	}
	size := 1 << n
	sign, name := 1.0, fmt.Sprintf("|QuFT-%d|", n)
	if inverse {
		sign, name = -1.0, fmt.Sprintf("|InvQuFT-%d|", n)
	}
	norm := complex(1/math.Sqrt(float64(size)), 0)
	data := make([]complex128, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			phase := sign * 2 * math.Pi * float64((i*j)%size) / float64(size)
			data[i*size+j] = expi(phase) * norm
		}
	}
	m, err := matrix.FromSlice(size, size, data)
	if err != nil {
		return nil, err
	}
	return &Gate{kind: KindFourier, name: name, m: m, inputs: n, outputs: n, params: []float64{sign}}, nil
}

// Adjoint returns the conjugate transpose of t. Hermitian transformers are
// returned unchanged and the adjoint of an Adjoint gate is its base; any other
// transformer yields "|x†|". Adjoint panics on a nil t.
func Adjoint(t Transformer) Transformer {
	if g, ok := t.(*Gate); ok && g.kind == KindAdjoint {
		return g.base
	}
	m := t.Matrix()
	if matrix.IsHermitian(m) {
		return t
	}
	adj, _ := matrix.Adjoint(m)
	return &Gate{
		kind:    KindAdjoint,
		name:    "|" + TrimName(t.Name()) + "†|",
		m:       adj,
		inputs:  t.Inputs(),
		outputs: t.Outputs(),
		base:    t,
	}
}
