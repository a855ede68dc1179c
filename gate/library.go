// SPDX-License-Identifier: MIT

// Package gate - fixed and parameterized gate library.
//
// Every constructor returns a fresh *Gate; gates are immutable after
// construction, so callers may share them between circuits.

package gate

import (
	"fmt"
	"math"
	"math/cmplx"
)

var sqrtHalf = complex(math.Sqrt(0.5), 0)

// fixed wraps a constant matrix as a Fixed gate.
func fixed(name string, inputs int, rows [][]complex128) *Gate {
	return &Gate{kind: KindFixed, name: name, m: square(rows), inputs: inputs, outputs: inputs}
}

// Hadamard returns "|H|" = √½·[[1, 1], [1, -1]].
func Hadamard() *Gate {
	return fixed("|H|", 1, [][]complex128{
		{sqrtHalf, sqrtHalf},
		{sqrtHalf, -sqrtHalf},
	})
}

// SqrtNot returns "|√NOT|" = √½·[[1, -1], [1, 1]].
func SqrtNot() *Gate {
	return fixed("|√NOT|", 1, [][]complex128{
		{sqrtHalf, -sqrtHalf},
		{sqrtHalf, sqrtHalf},
	})
}

// PauliX returns the NOT gate "|X|".
func PauliX() *Gate {
	return fixed("|X|", 1, [][]complex128{
		{0, 1},
		{1, 0},
	})
}

// PauliY returns "|Y|" = [[0, -i], [i, 0]].
func PauliY() *Gate {
	return fixed("|Y|", 1, [][]complex128{
		{0, -1i},
		{1i, 0},
	})
}

// PauliZ returns "|Z|" = diag(1, -1).
func PauliZ() *Gate {
	return fixed("|Z|", 1, [][]complex128{
		{1, 0},
		{0, -1},
	})
}

// Swap exchanges two qubits.
func Swap() *Gate {
	return fixed("|Swap|", 2, [][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})
}

// SqrtSwap returns "|√Swap|"; applying it twice equals Swap.
func SqrtSwap() *Gate {
	p, n := complex(0.5, 0.5), complex(0.5, -0.5)
	return fixed("|√Swap|", 2, [][]complex128{
		{1, 0, 0, 0},
		{0, p, n, 0},
		{0, n, p, 0},
		{0, 0, 0, 1},
	})
}

// ControlledNot returns "|C-NOT|": qubit 0 controls a NOT on qubit 1.
func ControlledNot() *Gate {
	return fixed("|C-NOT|", 2, [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
}

// Toffoli returns "|CC-NOT|": qubits 0 and 1 control a NOT on qubit 2.
func Toffoli() *Gate {
	m := identity(8)
	_ = m.Set(6, 6, 0)
	_ = m.Set(7, 7, 0)
	_ = m.Set(6, 7, 1)
	_ = m.Set(7, 6, 1)
	return &Gate{kind: KindFixed, name: "|CC-NOT|", m: m, inputs: 3, outputs: 3}
}

// Fredkin returns "|C-SWAP|": qubit 0 controls a swap of qubits 1 and 2.
func Fredkin() *Gate {
	m := identity(8)
	_ = m.Set(5, 5, 0)
	_ = m.Set(6, 6, 0)
	_ = m.Set(5, 6, 1)
	_ = m.Set(6, 5, 1)
	return &Gate{kind: KindFixed, name: "|C-SWAP|", m: m, inputs: 3, outputs: 3}
}

// MagicBasis returns "|Magic|", the change of basis to the Bell "magic" basis.
func MagicBasis() *Gate {
	one, i := sqrtHalf, 1i*sqrtHalf
	return fixed("|Magic|", 2, [][]complex128{
		{one, 0, 0, i},
		{0, i, one, 0},
		{0, i, -one, 0},
		{one, 0, 0, -i},
	})
}

// Setter returns "|0|" (grounded) or "|1|", which maps any basis input onto
// the chosen basis state. The matrix is not unitary.
func Setter(grounded bool) *Gate {
	if grounded {
		return fixed("|0|", 1, [][]complex128{{1, 1}, {0, 0}})
	}
	return fixed("|1|", 1, [][]complex128{{0, 0}, {1, 1}})
}

// parameterized wraps an angle-built matrix.
func parameterized(name string, inputs int, params []float64, rows [][]complex128) *Gate {
	g := fixed(name, inputs, rows)
	g.kind = KindParameterized
	g.params = params
	return g
}

// expi returns e^{iθ}.
func expi(theta float64) complex128 { return cmplx.Exp(complex(0, theta)) }

// PhaseShift returns "|PhShift θ|" = diag(1, e^{iθ}).
func PhaseShift(theta float64) *Gate {
	return parameterized(fmt.Sprintf("|PhShift %.2f|", theta), 1, []float64{theta}, [][]complex128{
		{1, 0},
		{0, expi(theta)},
	})
}

// Phase returns "|Ph θ|" = e^{iθ}·I, a global phase.
func Phase(theta float64) *Gate {
	e := expi(theta)
	return parameterized(fmt.Sprintf("|Ph %.2f|", theta), 1, []float64{theta}, [][]complex128{
		{e, 0},
		{0, e},
	})
}

// RotationX returns "|Rx θ|" = [[cos θ/2, -i sin θ/2], [-i sin θ/2, cos θ/2]].
func RotationX(theta float64) *Gate {
	c, s := complex(math.Cos(theta/2), 0), complex(0, -math.Sin(theta/2))
	return parameterized(fmt.Sprintf("|Rx %.2f|", theta), 1, []float64{theta}, [][]complex128{
		{c, s},
		{s, c},
	})
}

// RotationY returns "|Ry θ|" = [[cos θ/2, -sin θ/2], [sin θ/2, cos θ/2]].
func RotationY(theta float64) *Gate {
	c, s := complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
	return parameterized(fmt.Sprintf("|Ry %.2f|", theta), 1, []float64{theta}, [][]complex128{
		{c, -s},
		{s, c},
	})
}

// RotationZ returns "|Rz θ|" = diag(e^{-iθ/2}, e^{iθ/2}).
func RotationZ(theta float64) *Gate {
	return parameterized(fmt.Sprintf("|Rz %.2f|", theta), 1, []float64{theta}, [][]complex128{
		{expi(-theta / 2), 0},
		{0, expi(theta / 2)},
	})
}

// KrausCirac returns the two-qubit canonical gate "|N(a,b,c)|".
func KrausCirac(a, b, c float64) *Gate {
	eic, emic := expi(c), expi(-c)
	d0, o0 := eic*complex(math.Cos(a-b), 0), 1i*eic*complex(math.Sin(a-b), 0)
	d1, o1 := emic*complex(math.Cos(a+b), 0), 1i*emic*complex(math.Sin(a+b), 0)
	name := fmt.Sprintf("|N(%.2f,%.2f,%.2f)|", a, b, c)
	return parameterized(name, 2, []float64{a, b, c}, [][]complex128{
		{d0, 0, 0, o0},
		{0, d1, o1, 0},
		{0, o1, d1, 0},
		{o0, 0, 0, d0},
	})
}
