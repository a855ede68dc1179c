// SPDX-License-Identifier: MIT

// Command qsim runs, inspects and exports quantum circuits.
//
//	qsim run --circuit grover.json --input 1
//	qsim demo grover7 --export yaml > grover.yaml
//	qsim truth CNOT
//	qsim show --circuit grover.yaml
//
// Settings come from the environment (QSIM_*), optionally through a .env file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "qsim:", err)
		os.Exit(1)
	}
}
