package qubit_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/stretchr/testify/require"
)

var sqrtHalf = complex(math.Sqrt(0.5), 0)

// TestFromMatrix_Shapes verifies column and row inputs and rejects anything else.
func TestFromMatrix_Shapes(t *testing.T) {
	col, _ := matrix.Vector(0, 1)
	q, err := qubit.FromMatrix(col)
	require.NoError(t, err)
	require.Equal(t, qubit.One, q)

	row, _ := matrix.FromRows([][]complex128{{1, 0}})
	q, err = qubit.FromMatrix(row)
	require.NoError(t, err)
	require.Equal(t, qubit.Zero, q)

	bad, _ := matrix.Vector(1, 0, 0)
	_, err = qubit.FromMatrix(bad)
	require.ErrorIs(t, err, qubit.ErrInvalidShape)
}

// TestProbabilities_Snap verifies probabilities are snapped near 0 and 1.
func TestProbabilities_Snap(t *testing.T) {
	q := qubit.New(sqrtHalf*sqrtHalf*2, complex(1e-9, 0))
	require.Equal(t, 1.0, q.GroundProbability()) // 1.0000000000000002 snaps to 1
	require.Equal(t, 0.0, q.ExcitedProbability())     // 1e-18 snaps to 0

	h := qubit.New(sqrtHalf, sqrtHalf)
	require.InDelta(t, 0.5, h.GroundProbability(), 1e-15)
	require.True(t, h.IsNormalized())

	require.False(t, qubit.New(1, 1).IsNormalized())
	require.True(t, qubit.New(0, 1i).IsNormalized()) // phase is irrelevant
}

// TestPeek_BasisStates verifies deterministic outcomes for basis states.
func TestPeek_BasisStates(t *testing.T) {
	src := qubit.NewSource(7)

	s := qubit.Zero.Peek(src)
	require.Equal(t, qubit.Grounded, s.Outcome)
	require.Equal(t, 1.0, s.Probability)

	s = qubit.New(0, -1).Peek(src)
	require.Equal(t, qubit.Excited, s.Outcome)
	require.Equal(t, 1.0, s.Probability)

	s = qubit.New(2, 0).Peek(src)
	require.Equal(t, qubit.Undefined, s.Outcome)
	require.Equal(t, byte('?'), s.Bit())
}

// TestMeasure_Collapses verifies that measuring a superposition collapses it.
func TestMeasure_Collapses(t *testing.T) {
	src := qubit.NewSource(42)
	grounded, excited := 0, 0
	for i := 0; i < 2000; i++ {
		q := qubit.New(sqrtHalf, sqrtHalf)
		s := q.Measure(src)
		require.InDelta(t, 0.5, s.Probability, 1e-15)
		switch s.Outcome {
		case qubit.Grounded:
			require.Equal(t, qubit.Zero, q)
			grounded++
		case qubit.Excited:
			require.Equal(t, qubit.One, q)
			excited++
		default:
			t.Fatalf("unexpected outcome %v", s)
		}
	}
	require.InDelta(t, 1000, grounded, 150) // fair coin
	require.Equal(t, 2000, grounded+excited)
}

// TestPeek_Biased verifies the ground probability drives the outcome.
func TestPeek_Biased(t *testing.T) {
	q := qubit.New(complex(math.Sqrt(0.9), 0), complex(math.Sqrt(0.1), 0))
	src := qubit.NewSource(3)
	grounded := 0
	for i := 0; i < 5000; i++ {
		if q.Peek(src).Outcome == qubit.Grounded {
			grounded++
		}
	}
	require.InDelta(t, 4500, grounded, 200)
}

// TestNewSource_Deterministic verifies seeded sources repeat and seed 0 has a fixed default.
func TestNewSource_Deterministic(t *testing.T) {
	a, b := qubit.NewSource(11), qubit.NewSource(11)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
	require.Equal(t, qubit.NewSource(0).Int63(), qubit.NewSource(1).Int63())

	d1 := qubit.DeriveSource(qubit.NewSource(5), 1)
	d2 := qubit.DeriveSource(qubit.NewSource(5), 2)
	require.NotEqual(t, d1.Int63(), d2.Int63()) // distinct streams
}

// TestVector_Tensor verifies qubit 0 is the most significant position.
func TestVector_Tensor(t *testing.T) {
	v, err := qubit.Vector(qubit.One, qubit.Zero)
	require.NoError(t, err)
	require.Equal(t, []complex128{0, 0, 1, 0}, v.Data()) // |10> = index 2

	_, err = qubit.Vector()
	require.ErrorIs(t, err, qubit.ErrNoQubits)
}

// TestEqual_IgnoresPhase verifies magnitude-based equality.
func TestEqual_IgnoresPhase(t *testing.T) {
	require.True(t, qubit.New(sqrtHalf, sqrtHalf).Equal(qubit.New(sqrtHalf, -sqrtHalf)))
	require.False(t, qubit.Zero.Equal(qubit.One))
}

// TestString renders basis states and superpositions.
func TestString(t *testing.T) {
	require.Equal(t, "|0>", qubit.Zero.String())
	require.Equal(t, "|1>", qubit.One.String())
	require.Equal(t, "|0> + |1>", qubit.New(1, 1).String())
	require.Equal(t, "(0+1i)|1>", qubit.New(0, 1i).String())
	require.Equal(t, "grounded(1)", qubit.State{Outcome: qubit.Grounded, Probability: 1}.String())
}
