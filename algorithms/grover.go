// SPDX-License-Identifier: MIT

package algorithms

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// Grover is the amplitude amplification circuit for an oracle over n qubits:
// n-1 search qubits followed by one ancilla the oracle flips for marked
// inputs.
type Grover struct {
	*circuit.Circuit
	oracle     gate.Transformer
	iterations int
	src        qubit.Source
}

// NewOracle returns "|Oracle-v|" over bits+1 qubits: it flips the last qubit
// exactly when the first bits qubits encode marked (qubit 0 most significant).
//
// Errors:
//   - ErrInvalidQubitCount when bits < 2.
//   - ErrValueOutOfRange when marked does not fit in bits.
func NewOracle(marked uint64, bits int, opts ...Option) (*circuit.Circuit, error) {
	if bits < 2 || bits > 62 {
		return nil, fmt.Errorf("NewOracle(%d): %w", bits, ErrInvalidQubitCount)
	}
	if marked >= 1<<uint(bits) {
		return nil, fmt.Errorf("NewOracle(%d, %d): %w", marked, bits, ErrValueOutOfRange)
	}
	o := gatherOptions(opts...)
	c, err := o.newCircuit(fmt.Sprintf("|Oracle-%d|", marked), bits+1)
	if err != nil {
		return nil, err
	}
	mcx, err := gate.MultiControlled(bits, gate.PauliX())
	if err != nil {
		return nil, err
	}

	var zeros []int
	for i := 0; i < bits; i++ {
		if marked>>(bits-1-i)&1 == 0 {
			zeros = append(zeros, i)
		}
	}
	for _, i := range zeros {
		if err = c.Append(gate.PauliX(), 0, i); err != nil {
			return nil, err
		}
	}
	if err = c.Append(mcx, 1, span(0, bits+1)...); err != nil {
		return nil, err
	}
	for _, i := range zeros {
		if err = c.Append(gate.PauliX(), 2, i); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// diffusion returns the inversion about the mean over n qubits:
// H, X, a multi-controlled Z, X, H.
func diffusion(n int, o options) (*circuit.Circuit, error) {
	c, err := o.newCircuit(fmt.Sprintf("|Grov-%d|", n), n)
	if err != nil {
		return nil, err
	}
	cz, err := gate.MultiControlled(n-1, gate.PauliZ())
	if err != nil {
		return nil, err
	}
	h, x := gate.Hadamard(), gate.PauliX()
	for i := 0; i < n; i++ {
		err = c.AppendAll(
			circuit.Scheduled{Transformer: h, Time: 0, Indices: []int{i}},
			circuit.Scheduled{Transformer: x, Time: 1, Indices: []int{i}},
			circuit.Scheduled{Transformer: x, Time: 3, Indices: []int{i}},
			circuit.Scheduled{Transformer: h, Time: 4, Indices: []int{i}},
		)
		if err != nil {
			return nil, err
		}
	}
	if err = c.Append(cz, 2, span(0, n)...); err != nil {
		return nil, err
	}
	return c, nil
}

// NewGrover returns "|Grover-m name|" for an oracle over n = m+1 qubits.
//
// Layout:
//  1. H on every qubit.
//  2. ⌈√n⌉ iterations of the oracle on every qubit followed by the diffusion
//     sub-circuit on the m search qubits.
//  3. H and then X on the ancilla, which returns it to |0> when the
//     evaluation starts from |0…01>.
//
// Errors:
//   - gate.ErrNilTransformer for a nil oracle.
//   - ErrInvalidQubitCount when the oracle has fewer than three inputs.
func NewGrover(oracle gate.Transformer, opts ...Option) (*Grover, error) {
	if oracle == nil {
		return nil, gate.ErrNilTransformer
	}
	n := oracle.Inputs()
	if n < 3 {
		return nil, fmt.Errorf("NewGrover(%s): %d inputs: %w", oracle.Name(), n, ErrInvalidQubitCount)
	}
	o := gatherOptions(opts...)
	name := fmt.Sprintf("|Grover-%d %s|", n-1, gate.TrimName(oracle.Name()))
	c, err := o.newCircuit(name, n)
	if err != nil {
		return nil, err
	}
	diff, err := diffusion(n-1, o)
	if err != nil {
		return nil, err
	}

	h := gate.Hadamard()
	for i := 0; i < n; i++ {
		if err = c.Append(h, 0, i); err != nil {
			return nil, err
		}
	}
	iterations := int(math.Ceil(math.Sqrt(float64(n))))
	t := 0
	for k := 0; k < iterations; k++ {
		t++
		if err = c.Append(oracle, t, span(0, n)...); err != nil {
			return nil, err
		}
		t++
		if err = c.Append(diff, t, span(0, n-1)...); err != nil {
			return nil, err
		}
	}
	if err = c.Append(h, t+1, n-1); err != nil {
		return nil, err
	}
	if err = c.Append(gate.PauliX(), t+2, n-1); err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("component", "algorithms").
		Str("circuit", name).
		Int("iterations", iterations).
		Msg("grover circuit built")

	return &Grover{Circuit: c, oracle: oracle, iterations: iterations, src: o.src}, nil
}

// Oracle returns the oracle the circuit was built for.
func (g *Grover) Oracle() gate.Transformer { return g.oracle }

// Iterations returns the number of oracle/diffusion rounds.
func (g *Grover) Iterations() int { return g.iterations }

// Evaluate runs the circuit on |0…01> and returns the output vector.
func (g *Grover) Evaluate() (*matrix.Matrix, error) {
	n := g.Inputs()
	return register.FromNumber(1, n).TransformedVector(g.Circuit)
}

// Search evaluates the circuit and returns the most probable value of the
// search qubits (the ancilla dropped) with its probability.
func (g *Grover) Search() (uint64, float64, error) {
	v, err := g.Evaluate()
	if err != nil {
		return 0, 0, err
	}
	m, err := measure.New(v, measure.WithSource(g.src))
	if err != nil {
		return 0, 0, err
	}
	value, p := m.MostProbableIntegerValue()
	return value >> 1, p, nil
}
