// SPDX-License-Identifier: MIT

package qubit

import "fmt"

// Outcome is the classical result of measuring one qubit.
type Outcome int

const (
	// Undefined is reported for qubits whose amplitudes are not normalized.
	Undefined Outcome = iota
	// Grounded means the qubit was observed in |0>.
	Grounded
	// Excited means the qubit was observed in |1>.
	Excited
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Grounded:
		return "grounded"
	case Excited:
		return "excited"
	default:
		return "undefined"
	}
}

// State is a measurement outcome together with the probability it had.
// Probability is meaningless when Outcome is Undefined.
type State struct {
	Outcome     Outcome
	Probability float64
}

// Bit returns '0' for Grounded, '1' for Excited and '?' otherwise.
func (s State) Bit() byte {
	switch s.Outcome {
	case Grounded:
		return '0'
	case Excited:
		return '1'
	default:
		return '?'
	}
}

// String implements fmt.Stringer, e.g. "grounded(0.5)".
func (s State) String() string {
	if s.Outcome == Undefined {
		return s.Outcome.String()
	}
	return fmt.Sprintf("%s(%g)", s.Outcome, s.Probability)
}
