// Package circuit implements quantum circuits: a timeline of transformers
// scheduled at integer time steps over a fixed number of qubits.
//
// Overview:
//
//   - A Circuit maps each time step to an ordered list of entries
//     (transformer, target qubit indices). Entries at the same time step must
//     act on disjoint qubits; Append rejects overlaps.
//   - Every entry is lifted to the full 2^n space by Expand (qubit 0 is the
//     most significant bit) and the total operator is the product of the
//     lifted matrices in ascending time order.
//   - A Circuit is itself a gate.Transformer, so circuits nest inside other
//     circuits to any depth and expand exactly like primitive gates.
//
// Evaluation:
//
//   - TotalMatrix is computed lazily and cached; any timeline mutation drops
//     the cache.
//   - Transform and TransformRange apply the lifted steps directly to a state
//     vector without materializing the total operator, which is the cheap path
//     for partial evolutions.
//
// Composition helpers:
//
//   - AllTransformers flattens nested circuits into their distinct leaf
//     transformers (by name), the gate dictionary used by the codec package.
//   - Inverse reverses the timeline and replaces each leaf by its adjoint.
//   - Equal compares name, arity and the total operators approximately.
//
// Error handling (sentinel errors):
//
//   - ErrArityMismatch, ErrIndexOutOfRange, ErrOverlappingIndices: Append.
//   - ErrDimensionMismatch: Transform inputs of the wrong size.
//   - ErrStepOutOfRange: TransformRange bounds.
//   - ErrInvalidQubitCount, ErrTooManyQubits: New.
//   - ErrCyclicCircuit: a circuit appended into itself, directly or not.
//
// Concurrency:
//
//   - A Circuit is safe for concurrent use; one mutex guards the timeline and
//     the cached operator. Evaluation of large circuits holds the lock for the
//     duration of the product.
//
// Logging:
//
//   - WithLogger injects a zerolog.Logger (component=circuit). Cache drops,
//     total-matrix computations and partial transforms are logged at debug
//     level. The default logger discards everything.
package circuit
