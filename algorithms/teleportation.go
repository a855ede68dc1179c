// SPDX-License-Identifier: MIT

package algorithms

import (
	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// Teleportation is "|TEL|": qubit 0 is sent to qubit 2 through a Bell pair
// on qubits 1 and 2, with both corrections applied as controlled gates
// instead of classical measurements. Qubits 0 and 1 end at |0>.
type Teleportation struct {
	*circuit.Circuit
}

// NewTeleportation returns the teleportation circuit.
func NewTeleportation(opts ...Option) (*Teleportation, error) {
	o := gatherOptions(opts...)
	c, err := o.newCircuit("|TEL|", 3)
	if err != nil {
		return nil, err
	}
	cz, err := gate.Controlled(gate.PauliZ())
	if err != nil {
		return nil, err
	}
	h, cnot := gate.Hadamard(), gate.ControlledNot()
	err = c.AppendAll(
		circuit.Scheduled{Transformer: h, Time: 0, Indices: []int{1}},
		circuit.Scheduled{Transformer: cnot, Time: 1, Indices: []int{1, 2}},
		circuit.Scheduled{Transformer: cnot, Time: 2, Indices: []int{0, 1}},
		circuit.Scheduled{Transformer: h, Time: 3, Indices: []int{0}},
		circuit.Scheduled{Transformer: cnot, Time: 4, Indices: []int{1, 2}},
		circuit.Scheduled{Transformer: cz, Time: 5, Indices: []int{0, 2}},
		circuit.Scheduled{Transformer: h, Time: 6, Indices: []int{0}},
		circuit.Scheduled{Transformer: h, Time: 6, Indices: []int{1}},
	)
	if err != nil {
		return nil, err
	}
	return &Teleportation{Circuit: c}, nil
}

// Teleport runs (q, |0>, |0>) through the circuit and returns the output vector.
func (tel *Teleportation) Teleport(q qubit.Qubit) (*matrix.Matrix, error) {
	return register.New(q, qubit.Zero, qubit.Zero).TransformedVector(tel.Circuit)
}

// Received teleports q and returns the reduced state of qubit 2.
func (tel *Teleportation) Received(q qubit.Qubit) (qubit.Qubit, error) {
	v, err := tel.Teleport(q)
	if err != nil {
		return qubit.Qubit{}, err
	}
	m, err := measure.New(v)
	if err != nil {
		return qubit.Qubit{}, err
	}
	return m.EntangledQubits()[2], nil
}
