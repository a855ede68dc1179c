// Package matrix implements the complex amplitude matrix used by every other
// qsim package.
//
// A Matrix stores complex128 cells in one of two layouts:
//
//   - sparse: a default value plus a map of exceptions (offset i*cols+j),
//     used for identities, expanded gates and other mostly-constant operators;
//   - dense: a flat row-major buffer, used for state vectors and the results
//     of BLAS products.
//
// Both layouts expose the same accessors (At/Set, AtRaw/SetRaw, Row/Col) and
// take part in the same operations: Mul, Tensor, Pow, Transpose, Adjoint,
// Scale. Mul picks a sparse row-parallel kernel (golang.org/x/sync/errgroup)
// when both operands are sparse enough, a row-scatter kernel for a sparse
// operator times a dense vector, and gonum's cblas128 Gemm otherwise.
//
// Approximate comparisons (AlmostEqual, Equal, AllClose) live here as well so
// qubits, circuits and the measurer share one numeric policy.
package matrix
