// Package matrix_test contains unit tests for the linear-algebra kernels.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qsim/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

// sparseBand builds an n×n zero-default sparse matrix with a diagonal and one super-diagonal.
func sparseBand(t testing.TB, n int) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(n, n, 0)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, m.Set(i, i, complex(float64(i+1), 0.5)))
		if i+1 < n {
			require.NoError(t, m.Set(i, i+1, complex(0, -float64(i))))
		}
	}
	return m
}

// requireClose asserts AllClose within tol.
func requireClose(t *testing.T, want, got *matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%s\ngot\n%s", want, got)
}

// TestMul_DimensionMismatch ensures incompatible shapes are rejected.
func TestMul_DimensionMismatch(t *testing.T) {
	a := mustDense(t, 2, 3)
	b := mustDense(t, 2, 3)
	_, err := matrix.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // 3 != 2

	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul_Small checks a hand-computed complex product on the dense path.
func TestMul_Small(t *testing.T) {
	a := mustRows(t, [][]complex128{{1, 1i}, {0, 2}})
	b := mustRows(t, [][]complex128{{1i, 0}, {1, 1}})
	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]complex128{{2i, 1i}, {2, 2}}), got)
}

// TestMul_SparseMatchesDense cross-checks the sparse kernel against the BLAS path.
func TestMul_SparseMatchesDense(t *testing.T) {
	for _, n := range []int{8, 128} { // 128 crosses the parallel threshold
		a := sparseBand(t, n)
		b, err := matrix.Transpose(sparseBand(t, n))
		require.NoError(t, err)

		sparse, err := matrix.Mul(a, b, matrix.WithSparseRatio(1), matrix.WithWorkers(4))
		require.NoError(t, err)
		require.True(t, sparse.IsSparse()) // sparse path keeps the layout

		dense, err := matrix.Mul(a, b, matrix.WithDenseOnly())
		require.NoError(t, err)
		require.False(t, dense.IsSparse()) // BLAS path is dense

		requireClose(t, dense, sparse)
	}
}

// TestMul_SparseNonZeroDefault covers the kernels where exactly one default is non-zero.
func TestMul_SparseNonZeroDefault(t *testing.T) {
	a := sparseBand(t, 4)
	b, err := matrix.New(4, 4, 2)
	require.NoError(t, err)
	require.NoError(t, b.Set(0, 3, 1i))
	require.NoError(t, b.Set(2, 1, -1))

	for _, pair := range [][2]*matrix.Matrix{{a, b}, {b, a}} {
		sparse, err := matrix.Mul(pair[0], pair[1], matrix.WithSparseRatio(1))
		require.NoError(t, err)
		dense, err := matrix.Mul(pair[0], pair[1], matrix.WithDenseOnly())
		require.NoError(t, err)
		requireClose(t, dense, sparse)
	}
}

// TestMul_SparseTimesDense covers the row-scatter kernel used for state vectors.
func TestMul_SparseTimesDense(t *testing.T) {
	for _, n := range []int{16, 128} {
		a := sparseBand(t, n)
		data := make([]complex128, n)
		for i := range data {
			data[i] = complex(float64(i), -1)
		}
		v, err := matrix.Vector(data...)
		require.NoError(t, err)

		fast, err := matrix.Mul(a, v, matrix.WithSparseRatio(0.5), matrix.WithWorkers(3))
		require.NoError(t, err)
		require.False(t, fast.IsSparse())

		slow, err := matrix.Mul(a, v, matrix.WithDenseOnly())
		require.NoError(t, err)
		requireClose(t, slow, fast)
	}
}

// TestMul_IdentityKeepsSparse verifies products of identities stay compact.
func TestMul_IdentityKeepsSparse(t *testing.T) {
	id, err := matrix.Identity(64)
	require.NoError(t, err)
	got, err := matrix.Mul(id, id)
	require.NoError(t, err)
	require.True(t, got.IsSparse())
	require.Equal(t, 64, got.Stored())
	require.True(t, matrix.Equal(id, got))
}

// TestPow verifies square-and-multiply for odd, even and zero exponents.
func TestPow(t *testing.T) {
	m := mustRows(t, [][]complex128{{1, 2}, {3, 4}})

	p3, err := matrix.Pow(m, 3)
	require.NoError(t, err)
	require.Equal(t, mustRows(t, [][]complex128{{37, 54}, {81, 118}}).Data(), p3.Data())

	p2, err := matrix.Pow(m, 2)
	require.NoError(t, err)
	require.Equal(t, mustRows(t, [][]complex128{{7, 10}, {15, 22}}).Data(), p2.Data())

	p0, err := matrix.Pow(m, 0)
	require.NoError(t, err)
	id, _ := matrix.Identity(2)
	require.True(t, matrix.Equal(id, p0))

	_, err = matrix.Pow(mustDense(t, 2, 3), 2)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestPow_MatchesIteratedMul compares square-and-multiply with e-fold products.
func TestPow_MatchesIteratedMul(t *testing.T) {
	operands := []struct {
		name string
		m    *matrix.Matrix
	}{
		{"dense", mustRows(t, [][]complex128{{1, 2i}, {0.5 - 1i, -3}})},
		{"sparse band", sparseBand(t, 6)},
		{"rotation", mustRows(t, [][]complex128{
			{complex(math.Cos(0.3), 0), complex(-math.Sin(0.3), 0)},
			{complex(math.Sin(0.3), 0), complex(math.Cos(0.3), 0)},
		})},
	}
	for _, op := range operands {
		for _, e := range []uint{0, 1, 2, 3, 7} {
			for _, opts := range [][]matrix.Option{nil, {matrix.WithDenseOnly()}} {
				want, err := matrix.Identity(op.m.Rows())
				require.NoError(t, err)
				for i := uint(0); i < e; i++ {
					want, err = matrix.Mul(want, op.m, opts...)
					require.NoError(t, err)
				}
				got, err := matrix.Pow(op.m, e, opts...)
				require.NoError(t, err)
				ok, err := matrix.AllClose(got, want, 1e-9, 1e-9)
				require.NoError(t, err)
				require.Truef(t, ok, "%s^%d (dense only: %t)", op.name, e, opts != nil)
			}
		}
	}
}

// TestTensor verifies the Kronecker layout on dense and sparse operands.
func TestTensor(t *testing.T) {
	a := mustRows(t, [][]complex128{{1, 2}, {3, 4}})
	id, _ := matrix.Identity(2)

	got, err := matrix.Tensor(a, id)
	require.NoError(t, err)
	want := mustRows(t, [][]complex128{
		{1, 0, 2, 0},
		{0, 1, 0, 2},
		{3, 0, 4, 0},
		{0, 3, 0, 4},
	})
	require.Equal(t, want.Data(), got.Data())

	ii, err := matrix.Tensor(id, id)
	require.NoError(t, err)
	id4, _ := matrix.Identity(4)
	require.True(t, ii.IsSparse())
	require.True(t, matrix.Equal(id4, ii))

	// column vectors: |0> ⊗ |1> = |01>
	zero, _ := matrix.Vector(1, 0)
	one, _ := matrix.Vector(0, 1)
	v, err := matrix.Tensor(zero, one)
	require.NoError(t, err)
	require.Equal(t, []complex128{0, 1, 0, 0}, v.Data())
}

// TestTransposeAdjoint verifies shape swap and conjugation on both layouts.
func TestTransposeAdjoint(t *testing.T) {
	m := mustRows(t, [][]complex128{{1, 2i, 3}, {4, 5, 6 - 1i}})
	for _, in := range []*matrix.Matrix{m, m.Compressed()} {
		tr, err := matrix.Transpose(in)
		require.NoError(t, err)
		require.Equal(t, 3, tr.Rows())
		require.Equal(t, 2, tr.Cols())
		v, _ := tr.At(1, 0)
		require.Equal(t, 2i, v)

		adj, err := matrix.Adjoint(in)
		require.NoError(t, err)
		v, _ = adj.At(1, 0)
		require.Equal(t, -2i, v)
		v, _ = adj.At(2, 1)
		require.Equal(t, 6+1i, v)
	}
}

// TestScale verifies scaling keeps the sparse default consistent.
func TestScale(t *testing.T) {
	m, err := matrix.New(2, 2, 1)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 1, 2))

	s, err := matrix.Scale(m, 1i)
	require.NoError(t, err)
	require.Equal(t, 1i, s.Default())
	require.Equal(t, []complex128{1i, 2i, 1i, 1i}, s.Data())

	half, err := matrix.Scale(mustRows(t, [][]complex128{{2, 4}}), 0.5)
	require.NoError(t, err)
	require.Equal(t, []complex128{1, 2}, half.Data())
}

// TestAlmostEqual covers the relative epsilon policy.
func TestAlmostEqual(t *testing.T) {
	require.True(t, matrix.AlmostEqual(1, 1))
	require.True(t, matrix.AlmostEqual(1, 1+matrix.Epsilon))
	require.True(t, matrix.AlmostEqual(0, 1e-17))
	require.False(t, matrix.AlmostEqual(0, 1e-15))
	require.False(t, matrix.AlmostEqual(1, -1))
	require.False(t, matrix.AlmostEqual(1, 1.001))
	require.True(t, matrix.AlmostOne(math.Sqrt(0.5)*math.Sqrt(2)))
	require.True(t, matrix.AlmostZero(math.Cos(math.Pi/2)))

	require.True(t, matrix.AlmostEqualComplex(complex(0.5, -0.5), complex(0.5, -0.5)))
	require.False(t, matrix.AlmostEqualComplex(1, -1))
	require.True(t, matrix.AlmostEqualAbs(1, -1)) // same magnitude
}

// TestAllClose_ShapeMismatch ensures AllClose reports incompatible shapes.
func TestAllClose_ShapeMismatch(t *testing.T) {
	_, err := matrix.AllClose(mustDense(t, 2, 2), mustDense(t, 2, 3), tol, tol)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestIsHermitian distinguishes Hermitian from non-Hermitian operators.
func TestIsHermitian(t *testing.T) {
	require.True(t, matrix.IsHermitian(mustRows(t, [][]complex128{{0, -1i}, {1i, 0}})))
	require.False(t, matrix.IsHermitian(mustRows(t, [][]complex128{{0, 1}, {0, 0}})))
	require.False(t, matrix.IsHermitian(mustDense(t, 1, 2)))
}

// TestOptions_Panics ensures option constructors reject nonsensical values.
func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { matrix.WithWorkers(0) })
	require.Panics(t, func() { matrix.WithSparseRatio(-0.1) })
	require.Panics(t, func() { matrix.WithSparseRatio(math.NaN()) })
	require.NotPanics(t, func() { matrix.WithSparseRatio(1) })
}
