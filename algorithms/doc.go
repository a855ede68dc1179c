// Package algorithms builds well-known quantum circuits on top of the circuit
// package and wraps them with the classical helpers that feed registers in
// and read the most probable answer out.
//
// It provides:
//
//   - Basic circuits
//     – Flip: reverses qubit order with swaps
//     – QFT: quantum Fourier transform (and its inverse) from H and
//     controlled phase shifts
//
//   - Search and estimation
//     – Grover: amplitude amplification for an oracle circuit
//     – PhaseEstimation: eigenphase of an operator to t bits
//
//   - Arithmetic
//     – Incrementer / Decrementer modulo 2^n
//     – HalfAdder, HalfSubtractor, FullAdder, FullSubtractor
//     – Adder / Subtractor: ripple chains over 3n+1 qubits
//
//   - Communication
//     – Teleportation: the deferred-measurement teleportation circuit
//
//   - Gate implementations: Swap, Pauli-X and Pauli-Z built from other gates
//
//   - Logic operators on qubits and registers (Xor, Not, And, Or, Add,
//     Subtract, Increment, Decrement)
//
// Every constructor accepts Options: WithSource seeds the tie breaks of the
// measuring helpers, WithLogger and WithMatrixOptions are forwarded to every
// circuit the constructor builds.
//
// Qubit 0 is the most significant bit everywhere, as in the register package.
package algorithms
