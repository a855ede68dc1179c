// Package qubit defines the single-qubit value, its measurement outcome and
// the randomness source every measuring operation in qsim draws from.
//
// A Qubit is a pair of complex amplitudes (ground |0>, excited |1>). It is a
// plain value: Peek never mutates, Measure collapses the receiver in place.
//
// Randomness is injected through Source. NewSource builds a deterministic
// generator for reproducible runs; a nil Source selects the process-global
// generator of math/rand.
package qubit
