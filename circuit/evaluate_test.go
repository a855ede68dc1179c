package circuit_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
)

const tol = 1e-12

// requireClose asserts AllClose within tol.
func requireClose(t *testing.T, want, got *matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%s\ngot\n%s", want, got)
}

// basis returns |k> over n qubits as a column.
func basis(t testing.TB, n, k int) *matrix.Matrix {
	t.Helper()
	qs := make([]qubit.Qubit, n)
	for i := range qs {
		qs[i] = qubit.FromBit(k>>(n-1-i)&1 == 1)
	}
	v, err := qubit.Vector(qs...)
	require.NoError(t, err)
	return v
}

// TestExpand_MatchesTensor compares a lifted single-qubit gate with I⊗H⊗I.
func TestExpand_MatchesTensor(t *testing.T) {
	id, err := matrix.Identity(2)
	require.NoError(t, err)
	h := gate.Hadamard().Matrix()

	left, err := matrix.Tensor(id, h)
	require.NoError(t, err)
	want, err := matrix.Tensor(left, id)
	require.NoError(t, err)

	got, err := circuit.Expand(3, h, []int{1})
	require.NoError(t, err)
	require.True(t, got.IsSparse())
	requireClose(t, want, got)
}

// bruteExpand builds the lifted operator cell by cell: entry (i, j) is the gate
// entry read off the targeted bits when every other bit of i and j agrees.
func bruteExpand(t *testing.T, n int, g *matrix.Matrix, indices []int) *matrix.Matrix {
	t.Helper()
	dim := 1 << n
	mask := 0
	for _, q := range indices {
		mask |= 1 << (n - 1 - q)
	}
	gateIndex := func(x int) int {
		s := 0
		for _, q := range indices {
			s = s<<1 | (x>>(n-1-q))&1
		}
		return s
	}
	out, err := matrix.NewDense(dim, dim, 0)
	require.NoError(t, err)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			if i&^mask != j&^mask {
				continue
			}
			v, err := g.At(gateIndex(i), gateIndex(j))
			require.NoError(t, err)
			require.NoError(t, out.Set(i, j, v))
		}
	}
	return out
}

// TestExpand_MatchesBruteForce lifts random gates onto random index subsets.
func TestExpand_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 5; n++ {
		for trial := 0; trial < 12; trial++ {
			k := 1 + rng.Intn(min(n, 3))
			indices := rng.Perm(n)[:k]
			data := make([]complex128, 1<<(2*k))
			for i := range data {
				data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
			}
			g, err := matrix.FromSlice(1<<k, 1<<k, data)
			require.NoError(t, err)

			got, err := circuit.Expand(n, g, indices)
			require.NoError(t, err)
			requireClose(t, bruteExpand(t, n, g, indices), got)
		}
	}
}

// TestExpand_ReversedControl lifts CNOT with qubit 2 as control and qubit 0 as target.
func TestExpand_ReversedControl(t *testing.T) {
	got, err := circuit.Expand(3, gate.ControlledNot().Matrix(), []int{2, 0})
	require.NoError(t, err)

	want, err := matrix.New(8, 8, 0)
	require.NoError(t, err)
	for j := 0; j < 8; j++ {
		ctrl := j & 1 // qubit 2 is bit 0
		require.NoError(t, want.Set(j^(ctrl<<2), j, 1))
	}
	requireClose(t, want, got)
}

// TestExpand_FullWidth keeps an n-qubit gate on identity order unchanged.
func TestExpand_FullWidth(t *testing.T) {
	tof := gate.Toffoli().Matrix()
	got, err := circuit.Expand(3, tof, []int{0, 1, 2})
	require.NoError(t, err)
	requireClose(t, tof, got)
}

// TestExpand_Errors covers the validation paths.
func TestExpand_Errors(t *testing.T) {
	h := gate.Hadamard().Matrix()
	_, err := circuit.Expand(0, h, []int{0})
	require.ErrorIs(t, err, circuit.ErrInvalidQubitCount)
	_, err = circuit.Expand(2, h, []int{0, 1})
	require.ErrorIs(t, err, circuit.ErrDimensionMismatch)
	_, err = circuit.Expand(2, h, []int{2})
	require.ErrorIs(t, err, circuit.ErrIndexOutOfRange)
	_, err = circuit.Expand(2, gate.Swap().Matrix(), []int{1, 1})
	require.ErrorIs(t, err, circuit.ErrOverlappingIndices)
}

// TestTransform_SimpleCircuit runs |01> through Y⊗Y, Swap and two phase shifts.
func TestTransform_SimpleCircuit(t *testing.T) {
	c := simpleCircuit(t)
	got, err := c.Transform(basis(t, 2, 1))
	require.NoError(t, err)
	require.Equal(t, 4, got.Rows())
	require.Equal(t, 1, got.Cols())

	want, err := matrix.Vector(0, complex(math.Cos(math.Pi/4), math.Sin(math.Pi/4)), 0, 0)
	require.NoError(t, err)
	requireClose(t, want, got)
}

// TestTransform_MatchesTotalMatrix compares vector evolution with U·x.
func TestTransform_MatchesTotalMatrix(t *testing.T) {
	c := simpleCircuit(t)
	for k := 0; k < 4; k++ {
		x := basis(t, 2, k)
		got, err := c.Transform(x)
		require.NoError(t, err)
		want, err := matrix.Mul(c.TotalMatrix(), x)
		require.NoError(t, err)
		requireClose(t, want, got)
	}
}

// TestTransform_RowInputAndErrors covers transposition and size checks.
func TestTransform_RowInputAndErrors(t *testing.T) {
	c := simpleCircuit(t)
	col := basis(t, 2, 1)
	row, err := matrix.Transpose(col)
	require.NoError(t, err)

	fromRow, err := c.Transform(row)
	require.NoError(t, err)
	fromCol, err := c.Transform(col)
	require.NoError(t, err)
	requireClose(t, fromCol, fromRow)

	_, err = c.Transform(basis(t, 3, 0))
	require.ErrorIs(t, err, circuit.ErrDimensionMismatch)
	_, err = c.Transform(nil)
	require.ErrorIs(t, err, circuit.ErrDimensionMismatch)
	square, err := matrix.Identity(4)
	require.NoError(t, err)
	_, err = c.Transform(square)
	require.ErrorIs(t, err, circuit.ErrDimensionMismatch)
}

// TestTransformRange applies prefixes and suffixes of the timeline.
func TestTransformRange(t *testing.T) {
	c := simpleCircuit(t)
	x := basis(t, 2, 1)

	afterY, err := c.TransformRange(0, 0, x)
	require.NoError(t, err)
	requireClose(t, basis(t, 2, 2), afterY) // (i)(-i)|10>

	rest, err := c.TransformRange(1, 10, afterY)
	require.NoError(t, err)
	all, err := c.Transform(x)
	require.NoError(t, err)
	requireClose(t, all, rest)

	_, err = c.TransformRange(-1, 0, x)
	require.ErrorIs(t, err, circuit.ErrStepOutOfRange)
	_, err = c.TransformRange(2, 1, x)
	require.ErrorIs(t, err, circuit.ErrStepOutOfRange)
}

// TestTotalMatrix_EmptyIsIdentity checks the empty product.
func TestTotalMatrix_EmptyIsIdentity(t *testing.T) {
	c := mustCircuit(t, "|empty|", 3)
	id, err := matrix.Identity(8)
	require.NoError(t, err)
	require.True(t, matrix.Equal(id, c.TotalMatrix()))

	x := basis(t, 3, 5)
	got, err := c.Transform(x)
	require.NoError(t, err)
	requireClose(t, x, got)
}

// TestTotalMatrix_InvertedCNOT checks H⊗H · CNOT · H⊗H swaps control and target.
func TestTotalMatrix_InvertedCNOT(t *testing.T) {
	c := mustCircuit(t, "|InvCNOT|", 2)
	require.NoError(t, c.AppendAll(
		circuit.Scheduled{Transformer: gate.Hadamard(), Time: 0, Indices: []int{0}},
		circuit.Scheduled{Transformer: gate.Hadamard(), Time: 0, Indices: []int{1}},
		circuit.Scheduled{Transformer: gate.ControlledNot(), Time: 1, Indices: []int{0, 1}},
		circuit.Scheduled{Transformer: gate.Hadamard(), Time: 2, Indices: []int{0}},
		circuit.Scheduled{Transformer: gate.Hadamard(), Time: 2, Indices: []int{1}},
	))
	want, err := circuit.Expand(2, gate.ControlledNot().Matrix(), []int{1, 0})
	require.NoError(t, err)
	requireClose(t, want, c.TotalMatrix())
}

// TestTotalMatrix_CacheInvalidation verifies mutations are observed and logged.
func TestTotalMatrix_CacheInvalidation(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := mustCircuit(t, "|c|", 1, circuit.WithLogger(logger))

	require.NoError(t, c.Append(gate.PauliX(), 0, 0))
	requireClose(t, gate.PauliX().Matrix(), c.TotalMatrix())

	require.NoError(t, c.Append(gate.PauliZ(), 1, 0))
	want, err := matrix.Mul(gate.PauliZ().Matrix(), gate.PauliX().Matrix())
	require.NoError(t, err)
	requireClose(t, want, c.TotalMatrix())

	out := buf.String()
	require.Contains(t, out, `"component":"circuit"`)
	require.Contains(t, out, `"message":"cache invalidated"`)
	require.Contains(t, out, `"message":"total matrix computed"`)
}

// TestTotalMatrix_NestedMutation observes edits to a circuit after it was nested.
func TestTotalMatrix_NestedMutation(t *testing.T) {
	sub := mustCircuit(t, "|sub|", 1)
	parent := mustCircuit(t, "|parent|", 1)
	require.NoError(t, parent.Append(sub, 0, 0))
	id, err := matrix.Identity(2)
	require.NoError(t, err)
	requireClose(t, id, parent.TotalMatrix())

	require.NoError(t, sub.Append(gate.PauliX(), 0, 0))
	x := basis(t, 1, 0)
	stepwise, err := parent.Transform(x)
	require.NoError(t, err)
	whole, err := matrix.Mul(parent.TotalMatrix(), x)
	require.NoError(t, err)
	requireClose(t, basis(t, 1, 1), stepwise)
	requireClose(t, stepwise, whole)

	// two levels down
	top := mustCircuit(t, "|top|", 2)
	require.NoError(t, top.Append(parent, 0, 1))
	requireClose(t, gate.PauliX().Matrix(), parent.TotalMatrix())
	before := top.TotalMatrix()
	require.NoError(t, sub.Append(gate.PauliZ(), 1, 0))
	after := top.TotalMatrix()
	require.False(t, matrix.Equal(before, after))
	want, err := circuit.Expand(2, sub.TotalMatrix(), []int{1})
	require.NoError(t, err)
	requireClose(t, want, after)
}

// TestCircuit_Nested expands a nested circuit like a primitive gate.
func TestCircuit_Nested(t *testing.T) {
	inner := mustCircuit(t, "|HX|", 1)
	require.NoError(t, inner.Append(gate.Hadamard(), 0, 0))
	require.NoError(t, inner.Append(gate.PauliX(), 1, 0))

	outer := mustCircuit(t, "|outer|", 2)
	require.NoError(t, outer.Append(inner, 0, 1))
	require.NoError(t, outer.Append(gate.ControlledNot(), 1, 1, 0))

	flat := mustCircuit(t, "|flat|", 2)
	require.NoError(t, flat.Append(gate.Hadamard(), 0, 1))
	require.NoError(t, flat.Append(gate.PauliX(), 1, 1))
	require.NoError(t, flat.Append(gate.ControlledNot(), 2, 1, 0))

	requireClose(t, flat.TotalMatrix(), outer.TotalMatrix())

	names := make([]string, 0)
	for _, tr := range outer.AllTransformers() {
		names = append(names, tr.Name())
	}
	require.Equal(t, []string{"|H|", "|X|", "|C-NOT|"}, names)
}

// TestAllTransformers_Dedup keeps the first transformer per name.
func TestAllTransformers_Dedup(t *testing.T) {
	c := simpleCircuit(t)
	names := make([]string, 0)
	for _, tr := range c.AllTransformers() {
		names = append(names, tr.Name())
	}
	require.Equal(t, []string{"|Y|", "|Swap|", "|PhShift 0.79|"}, names)
}

// TestInverse_UndoesCircuit checks C⁻¹·C = I, including nested circuits.
func TestInverse_UndoesCircuit(t *testing.T) {
	inner := mustCircuit(t, "|inner|", 2)
	require.NoError(t, inner.Append(gate.Hadamard(), 0, 0))
	require.NoError(t, inner.Append(gate.ControlledNot(), 1, 0, 1))
	require.NoError(t, inner.Append(gate.RotationY(0.3), 2, 1))

	c := simpleCircuit(t)
	require.NoError(t, c.Append(inner, 5, 0, 1))
	require.NoError(t, c.Append(gate.SqrtNot(), 6, 1))

	inv, err := circuit.Inverse(c)
	require.NoError(t, err)
	require.Equal(t, "|InvTest|", inv.Name())
	require.Equal(t, c.GateCount(), inv.GateCount())

	prod, err := matrix.Mul(inv.TotalMatrix(), c.TotalMatrix())
	require.NoError(t, err)
	id, err := matrix.Identity(4)
	require.NoError(t, err)
	requireClose(t, id, prod)

	empty, err := circuit.Inverse(mustCircuit(t, "|e|", 1))
	require.NoError(t, err)
	require.Zero(t, empty.GateCount())
}

// TestEqual compares name, arity and operator.
func TestEqual(t *testing.T) {
	a, b := simpleCircuit(t), simpleCircuit(t)
	require.True(t, circuit.Equal(a, b))
	require.True(t, circuit.Equal(nil, nil))
	require.False(t, circuit.Equal(a, nil))

	require.NoError(t, b.Append(gate.PauliZ(), 3, 0))
	require.False(t, circuit.Equal(a, b))

	other := mustCircuit(t, "|Other|", 2)
	require.False(t, circuit.Equal(a, other))
}
