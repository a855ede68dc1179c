// SPDX-License-Identifier: MIT

package algorithms

import (
	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
)

// SwapCircuit returns "|Swap|" as three alternating CNOTs.
func SwapCircuit(opts ...Option) (*circuit.Circuit, error) {
	o := gatherOptions(opts...)
	c, err := o.newCircuit("|Swap|", 2)
	if err != nil {
		return nil, err
	}
	cnot := gate.ControlledNot()
	err = c.AppendAll(
		circuit.Scheduled{Transformer: cnot, Time: 0, Indices: []int{0, 1}},
		circuit.Scheduled{Transformer: cnot, Time: 1, Indices: []int{1, 0}},
		circuit.Scheduled{Transformer: cnot, Time: 2, Indices: []int{0, 1}},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PauliXCircuit returns "|X|" as H·Z·H.
func PauliXCircuit(opts ...Option) (*circuit.Circuit, error) {
	return conjugated("|X|", gate.PauliZ(), opts)
}

// PauliZCircuit returns "|Z|" as H·X·H.
func PauliZCircuit(opts ...Option) (*circuit.Circuit, error) {
	return conjugated("|Z|", gate.PauliX(), opts)
}

// conjugated wraps inner between two Hadamards on one qubit.
func conjugated(name string, inner gate.Transformer, opts []Option) (*circuit.Circuit, error) {
	o := gatherOptions(opts...)
	c, err := o.newCircuit(name, 1)
	if err != nil {
		return nil, err
	}
	h := gate.Hadamard()
	err = c.AppendAll(
		circuit.Scheduled{Transformer: h, Time: 0, Indices: []int{0}},
		circuit.Scheduled{Transformer: inner, Time: 1, Indices: []int{0}},
		circuit.Scheduled{Transformer: h, Time: 2, Indices: []int{0}},
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
