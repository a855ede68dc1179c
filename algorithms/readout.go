// SPDX-License-Identifier: MIT

package algorithms

import (
	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// readout runs qs through c and returns the most probable outcome as basis
// qubits (register order) with its probability.
func readout(c *circuit.Circuit, src qubit.Source, qs ...qubit.Qubit) ([]qubit.Qubit, float64, error) {
	v, err := register.New(qs...).TransformedVector(c)
	if err != nil {
		return nil, 0, err
	}
	m, err := measure.New(v, measure.WithSource(src))
	if err != nil {
		return nil, 0, err
	}
	bits, p := m.MostProbableQubits()
	return bits, p, nil
}

// retitle copies the timeline of src into a new circuit called name.
func retitle(src *circuit.Circuit, name string, o options) (*circuit.Circuit, error) {
	c, err := o.newCircuit(name, src.Inputs())
	if err != nil {
		return nil, err
	}
	var all []circuit.Scheduled
	for _, t := range src.Times() {
		for _, e := range src.Entries(t) {
			all = append(all, circuit.Scheduled{Transformer: e.Transformer, Time: t, Indices: e.Indices})
		}
	}
	if err = c.AppendAll(all...); err != nil {
		return nil, err
	}
	return c, nil
}

// span returns [from, from+n).
func span(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}
	return out
}

// pad prepends zeros to r until it holds n qubits.
func pad(r register.Register, n int) register.Register {
	if r.Len() >= n {
		return r
	}
	return register.Zeros(n - r.Len()).Append(r)
}
