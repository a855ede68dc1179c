// Package analyzer inspects transformers and qubits without building a
// circuit around them.
//
//   - TruthTable runs every basis input of a transformer and records the
//     probabilistic map of each output, keyed by the input's bit string.
//   - Bloch returns the Bloch-sphere coordinates of a single qubit.
//
// Truth tables grow as 4^n in the transformer width; rows are computed
// concurrently, bounded by WithWorkers.
package analyzer
