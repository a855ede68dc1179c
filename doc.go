// Package qsim is a state-vector quantum circuit simulator: build circuits
// from gates, run registers through them and read the outcome probabilities.
//
// 🚀 What is qsim?
//
//	A small, thread-safe library that brings together:
//		• Complex matrices with a sparse/dense split and BLAS-backed products
//		• Qubits and registers (qubit 0 is the most significant bit)
//		• A gate library: Pauli, Hadamard, phase, rotations, controlled and
//		  multi-controlled lifts, Fourier, universal and adjoint gates
//		• Circuits: timelines of gates and nested circuits, cached operators,
//		  partial transforms, flattening and inversion
//		• Measurement: probabilistic maps, most probable states, entanglement
//		• Algorithms: QFT, Grover, phase estimation, teleportation, arithmetic
//		• Serialization to JSON, YAML and MessagePack
//
// Packages:
//
//	matrix/      complex amplitude matrices, Mul/Tensor/Pow/Adjoint
//	qubit/       Qubit, State and the randomness Source
//	register/    Register values and their vector form
//	gate/        the Transformer contract and the gate library
//	circuit/     Circuit timelines and their evaluation
//	measure/     Measurer over output vectors
//	algorithms/  circuits built from the packages above
//	analyzer/    truth tables and Bloch coordinates
//	codec/       circuit documents and their encodings
//	config/      QSIM_* environment settings for the command line
//	cmd/qsim/    the command line
//
// Quick example (a Bell pair):
//
//	c, _ := circuit.New("|Bell|", 2)
//	_ = c.Append(gate.Hadamard(), 0, 0)
//	_ = c.Append(gate.ControlledNot(), 1, 0, 1)
//	out, _ := register.Zeros(2).TransformedVector(c)
//	m, _ := measure.New(out)
//	m.ProbabilisticMap(false) // map[00:0.5 11:0.5]
//
//	go get github.com/katalvlaran/qsim
package qsim
