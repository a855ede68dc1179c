// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/qsim/gate"
)

// library lists the fixed gates reachable by name from the command line.
var library = map[string]func() *gate.Gate{
	"H":        gate.Hadamard,
	"X":        gate.PauliX,
	"Y":        gate.PauliY,
	"Z":        gate.PauliZ,
	"SQRTNOT":  gate.SqrtNot,
	"SWAP":     gate.Swap,
	"SQRTSWAP": gate.SqrtSwap,
	"CNOT":     gate.ControlledNot,
	"TOFFOLI":  gate.Toffoli,
	"FREDKIN":  gate.Fredkin,
	"MAGIC":    gate.MagicBasis,
}

func lookupGate(name string) (gate.Transformer, error) {
	if name == "" {
		return nil, fmt.Errorf("truth: give a GATE or --circuit")
	}
	mk, ok := library[strings.ToUpper(name)]
	if !ok {
		names := make([]string, 0, len(library))
		for n := range library {
			names = append(names, n)
		}
		slices.Sort(names)
		return nil, fmt.Errorf("unknown gate %q, try one of %s", name, strings.Join(names, ", "))
	}
	return mk(), nil
}
