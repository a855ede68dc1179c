// SPDX-License-Identifier: MIT

package algorithms

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// PhaseEstimation estimates the eigenphase φ of an operator U, where
// U|ψ> = e^{2πiφ}|ψ>, on t precision qubits placed before the operator's
// own qubits.
type PhaseEstimation struct {
	*circuit.Circuit
	precision int
	src       qubit.Source
}

// PrecisionQubits returns bits + ⌈log2(2 + 1/(2·errProb))⌉, the number of
// qubits that yields bits correct bits with probability at least 1-errProb.
func PrecisionQubits(bits int, errProb float64) int {
	return bits + int(math.Ceil(math.Log2(2+1/(2*errProb))))
}

// NewPhaseEstimation returns "|PhaseEstimation-x t-Precision|" for op.
//
// Layout:
//  1. H on each of the t precision qubits.
//  2. Precision qubit k controls U^(2^(t-1-k)) on the operator qubits. The
//     controlled powers are precomputed into Universal gates "|C-x^p|".
//  3. The inverse Fourier transform gate on the precision qubits.
//
// Errors:
//   - gate.ErrNilTransformer for a nil op.
//   - ErrInvalidQubitCount when bits < 1.
//   - ErrInvalidProbability when errProb is not in (0, 1).
func NewPhaseEstimation(op gate.Transformer, bits int, errProb float64, opts ...Option) (*PhaseEstimation, error) {
	if op == nil {
		return nil, gate.ErrNilTransformer
	}
	if bits < 1 {
		return nil, fmt.Errorf("NewPhaseEstimation(%d bits): %w", bits, ErrInvalidQubitCount)
	}
	if !(errProb > 0 && errProb < 1) {
		return nil, fmt.Errorf("NewPhaseEstimation(%g): %w", errProb, ErrInvalidProbability)
	}
	o := gatherOptions(opts...)
	t, m := PrecisionQubits(bits, errProb), op.Inputs()
	base := gate.TrimName(op.Name())
	c, err := o.newCircuit(fmt.Sprintf("|PhaseEstimation-%s %d-Precision|", base, t), t+m)
	if err != nil {
		return nil, err
	}

	h := gate.Hadamard()
	for k := 0; k < t; k++ {
		if err = c.Append(h, 0, k); err != nil {
			return nil, err
		}
	}

	cu, err := gate.MultiControlled(1, op)
	if err != nil {
		return nil, err
	}
	targets := span(t, m)
	for k := 0; k < t; k++ {
		power := uint(1) << uint(t-1-k)
		pm, err := matrix.Pow(cu.Matrix(), power, o.mopts...)
		if err != nil {
			return nil, err
		}
		g, err := gate.Universal(fmt.Sprintf("|C-%s^%d|", base, power), pm, cu.Inputs(), cu.Outputs())
		if err != nil {
			return nil, err
		}
		if err = c.Append(g, k+1, append([]int{k}, targets...)...); err != nil {
			return nil, err
		}
	}

	iqft, err := gate.QFT(t, true)
	if err != nil {
		return nil, err
	}
	if err = c.Append(iqft, t+1, span(0, t)...); err != nil {
		return nil, err
	}
	return &PhaseEstimation{Circuit: c, precision: t, src: o.src}, nil
}

// Precision returns the number of precision qubits t.
func (pe *PhaseEstimation) Precision() int { return pe.precision }

// EstimatePhase runs the circuit with the precision qubits at |0…0> and the
// operator qubits at input. It returns y/2^t for the most probable precision
// reading y, together with the probability of reading y, summed over every
// state of the operator qubits.
//
// Errors:
//   - circuit.ErrDimensionMismatch when input does not match the operator.
func (pe *PhaseEstimation) EstimatePhase(input register.Register) (phase, probability float64, err error) {
	v, err := register.Zeros(pe.precision).Append(input).Matrix()
	if err != nil {
		return 0, 0, err
	}
	return pe.EstimatePhaseVector(v)
}

// EstimatePhaseVector is EstimatePhase for a full input vector over every
// qubit of the circuit, precision qubits first. An operator input spread over
// several eigenvectors is read through the marginal of the precision qubits;
// equal marginals are drawn with the configured source.
//
// Errors:
//   - circuit.ErrDimensionMismatch for a vector of the wrong size.
func (pe *PhaseEstimation) EstimatePhaseVector(input *matrix.Matrix) (phase, probability float64, err error) {
	out, err := pe.Transform(input)
	if err != nil {
		return 0, 0, err
	}
	ms, err := measure.New(out, measure.WithSource(pe.src))
	if err != nil {
		return 0, 0, err
	}

	readings := make(map[string]float64)
	for key, p := range ms.ProbabilisticMap(false) {
		readings[key[:pe.precision]] += p
	}
	keys := make([]string, 0, len(readings))
	for k, p := range readings {
		keys = append(keys, k)
		probability = max(probability, p)
	}
	if len(keys) == 0 {
		return 0, 0, nil
	}
	slices.Sort(keys)
	keys = slices.DeleteFunc(keys, func(k string) bool { return !matrix.AlmostEqual(readings[k], probability) })
	key := keys[0]
	if len(keys) > 1 {
		key = keys[qubit.OrGlobal(pe.src).Intn(len(keys))]
	}
	y, err := strconv.ParseUint(key, 2, 64)
	if err != nil {
		return 0, 0, err
	}
	return float64(y) / float64(uint64(1)<<uint(pe.precision)), readings[key], nil
}
