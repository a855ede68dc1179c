// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels used by the simulator:
// multiplication, Kronecker (tensor) product, integer powers, transpose,
// conjugate transpose and scalar scaling. All functions perform fail-fast
// validation and return wrapped sentinels on dimension mismatches.
//
// Notes:
//   - Mul dispatches between a sparse row-parallel kernel and cblas128.Gemm.
//   - Operands are never mutated; every kernel allocates its result.

package matrix

import (
	"fmt"
	"math/cmplx"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTensor    = "Tensor"
	opPow       = "Pow"
	opTranspose = "Transpose"
	opAdjoint   = "Adjoint"
	opScale     = "Scale"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// entry is one stored cell of a row bucket: column index and value.
type entry struct {
	idx int
	v   complex128
}

// Mul returns the matrix product a×b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: take the sparse kernel when both operands are sparse, the product of
//     their defaults is zero and at least one of them is filled at or under the
//     sparse ratio.
//   - Stage 3: a zero-default sparse a under the ratio times a dense b runs the
//     row-scatter kernel into a dense result (lifted gate × state vector).
//   - Stage 4: otherwise run cblas128.Gemm on dense views.
//
// Behavior highlights:
//   - Sparse results are recompressed; dense results stay dense.
//   - Summation order is fixed (ascending inner index) on both paths.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Sparse: O(nnz(a)·nnz per row of b) with up to Workers goroutines.
//   - Dense: O(r·k·c).
func Mul(a, b *Matrix, opts ...Option) (*Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	o := gatherOptions(opts...)
	if !o.denseOnly {
		switch {
		case useSparseKernel(a, b, o.sparseRatio):
			return mulSparse(a, b, o), nil
		case a.sparse && a.def == 0 && !b.sparse && a.FillRatio() <= o.sparseRatio:
			return mulSparseDense(a, b, o), nil
		}
	}

	return mulDense(a, b), nil
}

// useSparseKernel reports whether the sparse product is applicable and worthwhile.
func useSparseKernel(a, b *Matrix, ratio float64) bool {
	if !a.sparse || !b.sparse || a.def*b.def != 0 {
		return false
	}
	return a.FillRatio() <= ratio || b.FillRatio() <= ratio
}

// general exposes m as a cblas128 row-major view. Dense storage is shared, sparse
// storage is materialized.
func general(m *Matrix) cblas128.General {
	data := m.dense
	if m.sparse {
		data = m.Data()
	}
	return cblas128.General{Rows: m.r, Cols: m.c, Stride: m.c, Data: data}
}

// mulDense computes a×b with the BLAS level-3 kernel.
func mulDense(a, b *Matrix) *Matrix {
	out := newDense(a.r, b.c)
	c := cblas128.General{Rows: a.r, Cols: b.c, Stride: b.c, Data: out.dense}
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, general(a), general(b), 0, c)

	return out
}

// bucketRows groups the exceptions of a zero-default sparse matrix by row,
// each bucket sorted by column.
func bucketRows(m *Matrix) [][]entry {
	rows := make([][]entry, m.r)
	for k, v := range m.cells {
		i := k / m.c
		rows[i] = append(rows[i], entry{idx: k % m.c, v: v})
	}
	for _, row := range rows {
		slices.SortFunc(row, func(x, y entry) int { return x.idx - y.idx })
	}

	return rows
}

// collect turns a column accumulator into a sorted entry list without zeros.
func collect(acc map[int]complex128) []entry {
	out := make([]entry, 0, len(acc))
	for j, v := range acc {
		if v != 0 {
			out = append(out, entry{idx: j, v: v})
		}
	}
	slices.SortFunc(out, func(x, y entry) int { return x.idx - y.idx })

	return out
}

// mulSparse computes a×b for sparse operands whose defaults multiply to zero.
// Every output row is independent, so rows fan out over an errgroup bounded
// by the configured worker count.
func mulSparse(a, b *Matrix, o Options) *Matrix {
	ca, cb := a.c, b.c
	var kernel func(i int) []entry

	switch {
	case a.def == 0 && b.def == 0:
		aRows, bRows := bucketRows(a), bucketRows(b)
		kernel = func(i int) []entry {
			if len(aRows[i]) == 0 {
				return nil
			}
			acc := make(map[int]complex128)
			for _, ak := range aRows[i] {
				for _, bj := range bRows[ak.idx] {
					acc[bj.idx] += ak.v * bj.v
				}
			}
			return collect(acc)
		}
	case b.def == 0:
		// a has a non-zero default: every a(i,k) contributes through b's exceptions.
		bRows := bucketRows(b)
		kernel = func(i int) []entry {
			acc := make(map[int]complex128)
			for k := 0; k < ca; k++ {
				av := a.at(i*ca + k)
				if av == 0 {
					continue
				}
				for _, bj := range bRows[k] {
					acc[bj.idx] += av * bj.v
				}
			}
			return collect(acc)
		}
	default:
		// a.def == 0 and b has a non-zero default: a's exceptions scale whole rows of b.
		aRows := bucketRows(a)
		kernel = func(i int) []entry {
			if len(aRows[i]) == 0 {
				return nil
			}
			acc := make([]complex128, cb)
			for _, ak := range aRows[i] {
				base := ak.idx * cb
				for j := 0; j < cb; j++ {
					acc[j] += ak.v * b.at(base+j)
				}
			}
			out := make([]entry, 0, cb)
			for j, v := range acc {
				if v != 0 {
					out = append(out, entry{idx: j, v: v})
				}
			}
			return out
		}
	}

	rows := make([][]entry, a.r)
	forEachRow(a.r, o, func(i int) { rows[i] = kernel(i) })

	out := newSparse(a.r, cb, 0)
	for i, row := range rows {
		for _, e := range row {
			out.cells[i*cb+e.idx] = e.v
		}
	}
	out.recompress()

	return out
}

// mulSparseDense computes a×b for a zero-default sparse a and a dense b. Each
// stored a(i,k) adds a scaled row k of b into row i of the dense result.
func mulSparseDense(a, b *Matrix, o Options) *Matrix {
	cb := b.c
	aRows := bucketRows(a)
	out := newDense(a.r, cb)
	forEachRow(a.r, o, func(i int) {
		dst := out.dense[i*cb : (i+1)*cb]
		for _, ak := range aRows[i] {
			src := b.dense[ak.idx*cb : (ak.idx+1)*cb]
			for j, v := range src {
				dst[j] += ak.v * v
			}
		}
	})

	return out
}

// forEachRow runs fn for every row index, fanning out over an errgroup bounded
// by the worker count once the matrix is tall enough. fn must only write state
// owned by its row.
func forEachRow(rows int, o Options, fn func(i int)) {
	if o.workers <= 1 || rows < parallelRowThreshold {
		for i := 0; i < rows; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < rows; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() // row kernels never fail
}

// Tensor returns the Kronecker product a⊗b: cell ((ia·rb+ib), (ja·cb+jb)) = a(ia,ja)·b(ib,jb).
//
// Behavior highlights:
//   - Two zero-default sparse operands produce a sparse result in O(nnz(a)·nnz(b)).
//   - Any other combination produces a dense result.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Tensor").
func Tensor(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opTensor, ErrNilMatrix)
	}
	rows, cols := a.r*b.r, a.c*b.c

	if a.sparse && b.sparse && a.def == 0 && b.def == 0 {
		out := newSparse(rows, cols, 0)
		for ka, va := range a.cells {
			ia, ja := ka/a.c, ka%a.c
			for kb, vb := range b.cells {
				ib, jb := kb/b.c, kb%b.c
				if p := va * vb; p != 0 {
					out.cells[(ia*b.r+ib)*cols+ja*b.c+jb] = p
				}
			}
		}
		return out, nil
	}

	out := newDense(rows, cols)
	for ia := 0; ia < a.r; ia++ {
		for ja := 0; ja < a.c; ja++ {
			va := a.at(ia*a.c + ja)
			if va == 0 {
				continue
			}
			for ib := 0; ib < b.r; ib++ {
				row := (ia*b.r + ib) * cols
				for jb := 0; jb < b.c; jb++ {
					out.dense[row+ja*b.c+jb] = va * b.at(ib*b.c+jb)
				}
			}
		}
	}

	return out, nil
}

// Pow returns m^e by square-and-multiply. Pow(m, 0) is the identity.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare (wrapped with "Pow").
//
// Complexity: O(log e) products.
func Pow(m *Matrix, e uint, opts ...Option) (*Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opPow, err)
	}
	result, _ := Identity(m.r)
	base := m.Clone()
	var err error
	for e > 0 {
		if e&1 == 1 {
			if result, err = Mul(result, base, opts...); err != nil {
				return nil, matrixErrorf(opPow, err)
			}
		}
		e >>= 1
		if e > 0 {
			if base, err = Mul(base, base, opts...); err != nil {
				return nil, matrixErrorf(opPow, err)
			}
		}
	}

	return result, nil
}

// Transpose returns mᵀ preserving the layout.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Transpose").
func Transpose(m *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	return transpose(m, false), nil
}

// Adjoint returns the conjugate transpose m†.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Adjoint").
func Adjoint(m *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAdjoint, err)
	}
	return transpose(m, true), nil
}

// transpose implements Transpose and Adjoint; conj selects complex conjugation.
func transpose(m *Matrix, conj bool) *Matrix {
	f := func(v complex128) complex128 { return v }
	if conj {
		f = cmplx.Conj
	}
	if m.sparse {
		out := newSparse(m.c, m.r, f(m.def))
		for k, v := range m.cells {
			i, j := k/m.c, k%m.c
			out.cells[j*m.r+i] = f(v)
		}
		return out
	}
	out := newDense(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.dense[j*m.r+i] = f(m.dense[i*m.c+j])
		}
	}

	return out
}

// Scale returns alpha·m preserving the layout.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Scale").
func Scale(m *Matrix, alpha complex128) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if m.sparse {
		out := newSparse(m.r, m.c, m.def*alpha)
		for k, v := range m.cells {
			out.set(k, v*alpha)
		}
		return out, nil
	}
	out := newDense(m.r, m.c)
	for k, v := range m.dense {
		out.dense[k] = v * alpha
	}

	return out, nil
}
