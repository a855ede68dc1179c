// SPDX-License-Identifier: MIT

package gate

import (
	"strings"

	"github.com/katalvlaran/qsim/matrix"
)

// Transformer is a named unitary acting on Inputs() qubits.
// Matrix returns a copy; callers may mutate it freely.
type Transformer interface {
	Name() string
	Matrix() *matrix.Matrix
	Inputs() int
	Outputs() int
}

// Kind tags the variant of a *Gate.
type Kind int

const (
	// KindFixed gates have a constant matrix (H, X, CNOT, ...).
	KindFixed Kind = iota
	// KindParameterized gates are built from real angles (phase shifts, rotations).
	KindParameterized
	// KindControlled gates lift a unary gate with one or two control qubits.
	KindControlled
	// KindMultiControlled gates lift any transformer with k control qubits.
	KindMultiControlled
	// KindCompiled gates are the product of several same-arity transformers.
	KindCompiled
	// KindPowered gates raise a transformer to a non-negative integer power.
	KindPowered
	// KindUniversal gates wrap an arbitrary caller-supplied matrix.
	KindUniversal
	// KindFourier gates are the quantum Fourier transform or its inverse.
	KindFourier
	// KindAdjoint gates are the conjugate transpose of another transformer.
	KindAdjoint
)

var kindNames = [...]string{"fixed", "parameterized", "controlled", "multi-controlled", "compiled", "powered", "universal", "fourier", "adjoint"}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Gate is the concrete Transformer for every library gate.
// Only the fields relevant to the gate's Kind are populated.
type Gate struct {
	kind     Kind
	name     string
	m        *matrix.Matrix
	inputs   int
	outputs  int
	params   []float64     // Parameterized
	base     Transformer   // Controlled, MultiControlled, Powered, Adjoint
	parts    []Transformer // Compiled
	controls int           // Controlled, MultiControlled
	exponent uint          // Powered
}

var _ Transformer = (*Gate)(nil)

// Name returns the "|NAME|" identifier.
func (g *Gate) Name() string { return g.name }

// Matrix returns a copy of the transformation matrix.
func (g *Gate) Matrix() *matrix.Matrix { return g.m.Clone() }

// Inputs returns the number of qubits the gate acts on.
func (g *Gate) Inputs() int { return g.inputs }

// Outputs returns the number of qubits the gate produces.
func (g *Gate) Outputs() int { return g.outputs }

// Kind returns the gate variant.
func (g *Gate) Kind() Kind { return g.kind }

// Params returns a copy of the real parameters of a Parameterized gate.
func (g *Gate) Params() []float64 { return append([]float64(nil), g.params...) }

// Base returns the transformer a derived gate was built from, or nil.
func (g *Gate) Base() Transformer { return g.base }

// Parts returns the operands of a Compiled gate.
func (g *Gate) Parts() []Transformer { return append([]Transformer(nil), g.parts...) }

// Controls returns the number of control qubits of a controlled gate.
func (g *Gate) Controls() int { return g.controls }

// Exponent returns the power of a Powered gate.
func (g *Gate) Exponent() uint { return g.exponent }

// String implements fmt.Stringer.
func (g *Gate) String() string { return g.name }

// TrimName strips the surrounding '|' delimiters from a transformer name.
func TrimName(name string) string { return strings.Trim(name, "|") }

// SameName reports whether a and b carry the same name, the identity used
// across the simulator and by serialization.
func SameName(a, b Transformer) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

// square builds a fixed matrix from a literal grid; the grids in this package
// are constants, so a shape error is a programming bug.
func square(rows [][]complex128) *matrix.Matrix {
	m, err := matrix.FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// identity returns the sparse n×n identity for n > 0.
func identity(n int) *matrix.Matrix {
	m, err := matrix.Identity(n)
	if err != nil {
		panic(err)
	}
	return m
}

// log2 returns k when n == 2^k, or -1.
func log2(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return -1
	}
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
