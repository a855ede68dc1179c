// Package gate defines the Transformer capability shared by gates and circuits,
// and the library of quantum gates built on it.
//
// A Transformer is anything with a name, a square unitary matrix of size
// 2^Inputs() and an arity. *Gate is the closed set of gate variants (Kind):
// fixed gates, parameterized rotations and phases, controlled and
// multi-controlled lifts, compiled products, integer powers, arbitrary
// ("universal") matrices, the quantum Fourier transform and adjoints.
// *circuit.Circuit is the other implementation.
//
// Gate names follow the "|NAME|" convention; derived gates embed the trimmed
// name of their base (e.g. "|C-NOT|", "|CC-H|", "|(X)^3|"). Names are the
// identity used by serialization, so two transformers with the same name are
// considered the same operator.
package gate
