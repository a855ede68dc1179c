// SPDX-License-Identifier: MIT

// Package measure - probabilistic map and most-probable outcomes.
//
// Implementation:
//   - The amplitudes are copied once at construction; every query reads them.
//   - Keys are iterated in sorted order wherever the result depends on order
//     (tie breaks, amplitude listings), never in map order.
//
// Complexity: O(2^n) per ProbabilisticMap, O(2^n · n) for marginals.

package measure

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
)

const (
	// snapOne and snapZero clean round-off after the first pass.
	snapOne  = 0.999999999999
	snapZero = 0.000000000001
)

// Amplitude pairs a basis state with its amplitude and probability.
type Amplitude struct {
	State       string
	Amplitude   complex128
	Probability float64
}

// Measurer reads outcomes from a fixed amplitude vector.
type Measurer struct {
	amps   []complex128
	qubits int
	src    qubit.Source
}

// New copies input, a 1×2^n row or a 2^n×1 column.
//
// Errors:
//   - ErrInvalidShape for nil input, a full matrix or a length that is not
//     a power of two greater than one.
func New(input *matrix.Matrix, opts ...Option) (*Measurer, error) {
	if input == nil || (input.Rows() != 1 && input.Cols() != 1) {
		return nil, ErrInvalidShape
	}
	size := input.Len()
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("New: %d amplitudes: %w", size, ErrInvalidShape)
	}
	m := &Measurer{amps: input.Data()}
	for s := size; s > 1; s >>= 1 {
		m.qubits++
	}
	for _, fn := range opts {
		if fn != nil {
			fn(m)
		}
	}

	return m, nil
}

// Qubits returns the number of qubits encoded by the vector.
func (m *Measurer) Qubits() int { return m.qubits }

// Key returns the n-bit label of basis state k, most significant bit first.
func Key(k uint64, n int) string {
	s := strconv.FormatUint(k, 2)
	if len(s) >= n {
		return s
	}
	pad := make([]byte, n-len(s))
	for i := range pad {
		pad[i] = '0'
	}
	return string(pad) + s
}

// probability returns |a|².
func probability(a complex128) float64 {
	r := cmplx.Abs(a)
	return r * r
}

// ProbabilisticMap returns the probability of every possible outcome.
//
// Behavior highlights:
//   - An outcome with probability ≈ 1 returns alone unless includeImpossible
//     is set.
//   - Outcomes with probability ≈ 0 are left out unless includeImpossible is
//     set, in which case they map to 0.
//   - After the first pass, values above 0.999999999999 snap to 1 and values
//     below 1e-12 snap to 0.
func (m *Measurer) ProbabilisticMap(includeImpossible bool) map[string]float64 {
	out := make(map[string]float64)
	for k, a := range m.amps {
		key := Key(uint64(k), m.qubits)
		p := probability(a)
		switch {
		case p > 0 && matrix.AlmostOne(p):
			if !includeImpossible {
				return map[string]float64{key: 1}
			}
			out[key] = 1
		case p > 0 && !matrix.AlmostZero(p):
			out[key] = p
		case includeImpossible:
			out[key] = 0
		}
	}

	if len(out) == 1 && !includeImpossible {
		for key, p := range out {
			if p >= snapOne {
				out[key] = 1
			}
		}
		return out
	}
	if includeImpossible {
		for key, p := range out {
			switch {
			case p >= snapOne && p < 1:
				out[key] = 1
			case p <= snapZero && p > 0:
				out[key] = 0
			}
		}
	}

	return out
}

// TotalProbability returns the sum of |a|² over every amplitude; 1 for a
// normalized state.
func (m *Measurer) TotalProbability() float64 {
	ps := make([]float64, len(m.amps))
	for k, a := range m.amps {
		ps[k] = probability(a)
	}
	return floats.Sum(ps)
}

// sortedKeys returns the keys of probs in ascending order.
func sortedKeys(probs map[string]float64) []string {
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// pick returns one of the most probable keys, drawing among ties with the
// configured source, plus the maximum probability. ok is false for an empty map.
func (m *Measurer) pick(probs map[string]float64) (key string, top float64, ok bool) {
	if len(probs) == 0 {
		return "", 0, false
	}
	keys := sortedKeys(probs)
	top = math.Inf(-1)
	for _, k := range keys {
		if probs[k] > top {
			top = probs[k]
		}
	}
	ties := keys[:0:0]
	for _, k := range keys {
		if matrix.AlmostEqual(probs[k], top) {
			ties = append(ties, k)
		}
	}
	if len(ties) == 1 {
		return ties[0], top, true
	}
	return ties[qubit.OrGlobal(m.src).Intn(len(ties))], top, true
}

// marginal sums the probabilities of every key whose character at pos is bit.
func marginal(probs map[string]float64, pos int, bit byte) float64 {
	var ps []float64
	for _, k := range sortedKeys(probs) {
		if k[pos] == bit {
			ps = append(ps, probs[k])
		}
	}
	return floats.Sum(ps)
}

// stateOf converts one key character into a State with its marginal probability.
func stateOf(probs map[string]float64, key string, pos int) qubit.State {
	outcome := qubit.Grounded
	if key[pos] == '1' {
		outcome = qubit.Excited
	}
	return qubit.State{Outcome: outcome, Probability: marginal(probs, pos, key[pos])}
}

// MostProbableStates returns the per-qubit states of the most probable
// outcome in register order (index 0 first), each with its marginal
// probability, and the joint probability of that outcome. An all-zero vector
// yields (nil, 0).
func (m *Measurer) MostProbableStates() ([]qubit.State, float64) {
	probs := m.ProbabilisticMap(false)
	key, top, ok := m.pick(probs)
	if !ok {
		return nil, 0
	}
	states := make([]qubit.State, len(key))
	for i := range key {
		states[i] = stateOf(probs, key, i)
	}
	return states, top
}

// MostProbableQubits returns the most probable outcome as basis qubits in
// register order, with its probability.
func (m *Measurer) MostProbableQubits() ([]qubit.Qubit, float64) {
	states, p := m.MostProbableStates()
	qs := make([]qubit.Qubit, len(states))
	for i, s := range states {
		qs[i] = qubit.FromBit(s.Outcome == qubit.Excited)
	}
	return qs, p
}

// MostProbableIntegerValue returns the most probable outcome read as an
// unsigned integer (qubit 0 most significant), with its probability.
func (m *Measurer) MostProbableIntegerValue() (uint64, float64) {
	key, p, ok := m.pick(m.ProbabilisticMap(false))
	if !ok {
		return 0, 0
	}
	v, err := strconv.ParseUint(key, 2, 64)
	if err != nil {
		panic(err) // keys are binary strings of at most 64 digits
	}
	return v, p
}

// MostProbableState returns the state of qubit index within the most
// probable outcome, with its marginal probability.
//
// Errors:
//   - ErrIndexOutOfRange for index outside [0, Qubits()).
func (m *Measurer) MostProbableState(index int) (qubit.State, error) {
	if index < 0 || index >= m.qubits {
		return qubit.State{}, fmt.Errorf("MostProbableState(%d): %w", index, ErrIndexOutOfRange)
	}
	probs := m.ProbabilisticMap(false)
	key, _, ok := m.pick(probs)
	if !ok {
		return qubit.State{Outcome: qubit.Undefined}, nil
	}
	return stateOf(probs, key, index), nil
}

// EntangledQubits reduces the state to one qubit per position: alpha sums the
// amplitudes of the basis states with that qubit at 0, beta those with 1, and
// the pair is normalized. A zero pair yields (√½, √½).
func (m *Measurer) EntangledQubits() []qubit.Qubit {
	out := make([]qubit.Qubit, m.qubits)
	for q := 0; q < m.qubits; q++ {
		shift := uint(m.qubits - 1 - q)
		var alpha, beta complex128
		for k, a := range m.amps {
			if (k>>shift)&1 == 0 {
				alpha += a
			} else {
				beta += a
			}
		}
		norm := math.Hypot(cmplx.Abs(alpha), cmplx.Abs(beta))
		if norm == 0 {
			h := complex(math.Sqrt(0.5), 0)
			out[q] = qubit.New(h, h)
			continue
		}
		n := complex(norm, 0)
		out[q] = qubit.New(alpha/n, beta/n)
	}
	return out
}

// AmplitudesMap lists every outcome of ProbabilisticMap(false) with its raw
// amplitude, sorted by state.
func (m *Measurer) AmplitudesMap() []Amplitude {
	probs := m.ProbabilisticMap(false)
	out := make([]Amplitude, 0, len(probs))
	for k, a := range m.amps {
		key := Key(uint64(k), m.qubits)
		if p, ok := probs[key]; ok {
			out = append(out, Amplitude{State: key, Amplitude: a, Probability: p})
		}
	}
	return out
}

// MostProbableAmplitude returns the entry of AmplitudesMap with the highest
// probability; the first one wins a tie. ok is false for an all-zero vector.
func (m *Measurer) MostProbableAmplitude() (Amplitude, bool) {
	list := m.AmplitudesMap()
	if len(list) == 0 {
		return Amplitude{}, false
	}
	best := list[0]
	for _, a := range list[1:] {
		if a.Probability > best.Probability {
			best = a
		}
	}
	return best, true
}
