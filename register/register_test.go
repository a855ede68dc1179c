package register_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsim/circuit"
	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/measure"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/katalvlaran/qsim/register"
)

const tol = 1e-12

// cnotCircuit wraps ControlledNot(control=0, target=1) in a two-qubit circuit.
func cnotCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New("|CNOT|", 2)
	require.NoError(t, err)
	require.NoError(t, c.Append(gate.ControlledNot(), 0, 0, 1))
	return c
}

// TestFromNumber_BitLength sizes registers by bit length and minimum.
func TestFromNumber_BitLength(t *testing.T) {
	cases := []struct {
		n    uint64
		min  int
		want []qubit.Qubit
	}{
		{0, 0, []qubit.Qubit{qubit.Zero}},
		{1, 0, []qubit.Qubit{qubit.One}},
		{6, 0, []qubit.Qubit{qubit.One, qubit.One, qubit.Zero}},
		{7, 0, []qubit.Qubit{qubit.One, qubit.One, qubit.One}},
		{8, 0, []qubit.Qubit{qubit.One, qubit.Zero, qubit.Zero, qubit.Zero}},
		{2, 4, []qubit.Qubit{qubit.Zero, qubit.Zero, qubit.One, qubit.Zero}},
	}
	for _, tc := range cases {
		r := register.FromNumber(tc.n, tc.min)
		require.Equal(t, tc.want, r.Qubits(), "n=%d min=%d", tc.n, tc.min)
	}
}

// TestRegister_Accessors covers Len, States, Qubit, With and Append.
func TestRegister_Accessors(t *testing.T) {
	r := register.Zeros(3)
	require.Equal(t, 3, r.Len())
	require.Equal(t, uint64(8), r.States())

	q, err := r.Qubit(2)
	require.NoError(t, err)
	require.Equal(t, qubit.Zero, q)
	_, err = r.Qubit(3)
	require.ErrorIs(t, err, register.ErrIndexOutOfRange)

	r2, err := r.With(0, qubit.One)
	require.NoError(t, err)
	require.Equal(t, qubit.Zero, r.Qubits()[0]) // receiver untouched
	require.Equal(t, qubit.One, r2.Qubits()[0])
	_, err = r.With(-1, qubit.One)
	require.ErrorIs(t, err, register.ErrIndexOutOfRange)

	joined := r2.Append(register.FromNumber(1, 0))
	require.Equal(t, 4, joined.Len())
	require.True(t, joined.Equal(register.FromNumber(9, 4)))

	_, err = register.New().Matrix()
	require.ErrorIs(t, err, register.ErrEmptyRegister)
}

// TestAmplitude_MatchesVector compares per-state products with the tensor vector.
func TestAmplitude_MatchesVector(t *testing.T) {
	r := register.New(qubit.New(0.6, 0.8), qubit.New(0, 1i), qubit.New(complex(math.Sqrt(0.5), 0), complex(-math.Sqrt(0.5), 0)))
	v, err := r.Matrix()
	require.NoError(t, err)
	for s := uint64(0); s < r.States(); s++ {
		got, err := v.At(int(s), 0)
		require.NoError(t, err)
		require.InDelta(t, real(got), real(r.Amplitude(s)), tol)
		require.InDelta(t, imag(got), imag(r.Amplitude(s)), tol)
	}
}

// TestMeasure_ClassicalFastPath returns the bit string directly.
func TestMeasure_ClassicalFastPath(t *testing.T) {
	probs, err := register.FromNumber(5, 4).Measure(nil)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"0101": 1}, probs)

	v, err := register.FromNumber(5, 4).MostProbableIntegerValue(nil)
	require.NoError(t, err)
	require.Equal(t, uint64(5), v)
}

// TestMeasure_Hadamard spreads probability evenly over every state.
func TestMeasure_Hadamard(t *testing.T) {
	probs, err := register.Hadamard(3).Measure(nil)
	require.NoError(t, err)
	require.Len(t, probs, 8)
	for _, p := range probs {
		require.InDelta(t, 0.125, p, tol)
	}

	src := qubit.NewSource(11)
	v, err := register.Hadamard(3).MostProbableIntegerValue(src)
	require.NoError(t, err)
	require.Less(t, v, uint64(8))
}

// TestMostProbableIntegerValue_NearTies treats probabilities one rounding
// step apart as a tie, exactly like measure.Measurer.
func TestMostProbableIntegerValue_NearTies(t *testing.T) {
	a := math.Sqrt(0.5)
	b := math.Nextafter(a, 1)
	r := register.New(qubit.New(complex(a, 0), complex(b, 0)))
	v, err := r.Matrix()
	require.NoError(t, err)

	seen := map[uint64]bool{}
	for seed := int64(1); seed <= 32; seed++ {
		got, err := r.MostProbableIntegerValue(qubit.NewSource(seed))
		require.NoError(t, err)
		m, err := measure.New(v, measure.WithSource(qubit.NewSource(seed)))
		require.NoError(t, err)
		want, _ := m.MostProbableIntegerValue()
		require.Equal(t, want, got, "seed %d", seed)
		seen[got] = true
	}
	require.Len(t, seen, 2)
}

// TestTransformed_ReusesOperator multiplies by one cached total matrix.
func TestTransformed_ReusesOperator(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c, err := circuit.New("|CNOT|", 2, circuit.WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, c.Append(gate.ControlledNot(), 0, 0, 1))

	for k := uint64(0); k < 4; k++ {
		out, err := register.FromNumber(k, 2).Transformed(c, nil)
		require.NoError(t, err)
		v, err := register.FromNumber(k, 2).TransformedVector(c)
		require.NoError(t, err)
		m, err := measure.New(v)
		require.NoError(t, err)
		want, _ := m.MostProbableIntegerValue()
		require.True(t, out.Equal(register.FromNumber(want, 2)), "k=%d", k)
	}
	require.Equal(t, 1, strings.Count(buf.String(), `"message":"total matrix computed"`))
}

// TestTransformed_ControlledNot checks |01> -> |01> and |11> -> |10>.
func TestTransformed_ControlledNot(t *testing.T) {
	c := cnotCircuit(t)

	out, err := register.FromNumber(1, 2).Transformed(c, nil)
	require.NoError(t, err)
	require.True(t, out.Equal(register.FromNumber(1, 2)))

	out, err = register.FromNumber(3, 2).Transformed(c, nil)
	require.NoError(t, err)
	require.True(t, out.Equal(register.FromNumber(2, 2)))
	require.Equal(t, 2, out.Len()) // keeps the width

	_, err = register.Zeros(3).Transformed(c, nil)
	require.ErrorIs(t, err, circuit.ErrDimensionMismatch)
}

// TestTransformedVector keeps the superposition.
func TestTransformedVector(t *testing.T) {
	c := cnotCircuit(t)
	h := complex(math.Sqrt(0.5), 0)
	r := register.New(qubit.New(h, h), qubit.Zero)

	v, err := r.TransformedVector(c)
	require.NoError(t, err)
	want := []complex128{h, 0, 0, h} // Bell pair
	for k, w := range want {
		got, err := v.At(k, 0)
		require.NoError(t, err)
		require.InDelta(t, real(w), real(got), tol)
	}
}

// TestString lists non-zero states.
func TestString(t *testing.T) {
	require.Equal(t, "|10>\n", register.FromNumber(2, 2).String())
	require.Equal(t, "", register.New().String())
}
