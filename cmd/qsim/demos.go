// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/qsim/algorithms"
	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

// demo is a bundled circuit with the input it is meant to run on.
type demo struct {
	about  string
	build  func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error)
	answer func(value uint64) string
}

var demos = map[string]demo{
	"grover7": {
		about: "Grover search for 7 over four qubits plus an ancilla",
		build: func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error) {
			oracle, err := algorithms.NewOracle(7, 4, opts...)
			if err != nil {
				return nil, register.Register{}, err
			}
			g, err := algorithms.NewGrover(oracle, opts...)
			if err != nil {
				return nil, register.Register{}, err
			}
			return g.Circuit, register.FromNumber(1, g.Inputs()), nil
		},
		answer: func(v uint64) string { return fmt.Sprintf("marked value %d", v>>1) },
	},
	"qft4": {
		about: "quantum Fourier transform of |0101>",
		build: func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error) {
			c, err := algorithms.QFT(4, false, opts...)
			return c, register.FromNumber(5, 4), err
		},
	},
	"teleport": {
		about: "teleports 0.6|0> + 0.8|1> from qubit 0 to qubit 2",
		build: func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error) {
			tel, err := algorithms.NewTeleportation(opts...)
			if err != nil {
				return nil, register.Register{}, err
			}
			return tel.Circuit, register.New(qubit.New(0.6, 0.8), qubit.Zero, qubit.Zero), nil
		},
	},
	"incrementer5": {
		about: "adds one to 13 modulo 32",
		build: func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error) {
			inc, err := algorithms.NewIncrementer(5, opts...)
			if err != nil {
				return nil, register.Register{}, err
			}
			return inc.Circuit, register.FromNumber(13, 5), nil
		},
	},
	"adder2": {
		about: "ripple-carry sum of 2 and 3 on 2-bit operands",
		build: func(opts ...algorithms.Option) (*circuit.Circuit, register.Register, error) {
			add, err := algorithms.NewAdder(2, opts...)
			if err != nil {
				return nil, register.Register{}, err
			}
			// a, b, two work qubits, carry in
			in := register.FromNumber(2, 2).Append(register.FromNumber(3, 2)).Append(register.Zeros(3))
			return add.Circuit, in, nil
		},
		answer: func(v uint64) string { return fmt.Sprintf("sum %d", v&7) },
	},
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
