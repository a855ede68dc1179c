// Package register implements the quantum register: an ordered list of
// qubits whose joint state is the tensor product of its members.
//
// Qubit 0 is the most significant factor, so the register built from the
// number 6 over three qubits is |110>, and basis state k of the register's
// vector is labelled by the binary digits of k, qubit 0 first.
//
// Registers are values. Every method returns a new Register and never
// mutates the receiver. Transformed applies a circuit and collapses the
// result onto its most probable basis state; callers that need the quantum
// state after a circuit should use TransformedVector instead.
package register
