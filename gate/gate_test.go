package gate_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qsim/gate"
	"github.com/katalvlaran/qsim/matrix"
	"github.com/katalvlaran/qsim/qubit"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func requireClose(t *testing.T, want, got *matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, tol, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%s\ngot\n%s", want, got)
}

func apply(t *testing.T, g gate.Transformer, q qubit.Qubit) qubit.Qubit {
	t.Helper()
	out, err := gate.ApplyQubit(g, q)
	require.NoError(t, err)
	return out
}

// TestLibrary_Shapes verifies names, arity and matrix sizes of the fixed gates.
func TestLibrary_Shapes(t *testing.T) {
	cases := []struct {
		g      *gate.Gate
		name   string
		inputs int
	}{
		{gate.Hadamard(), "|H|", 1},
		{gate.SqrtNot(), "|√NOT|", 1},
		{gate.PauliX(), "|X|", 1},
		{gate.PauliY(), "|Y|", 1},
		{gate.PauliZ(), "|Z|", 1},
		{gate.Swap(), "|Swap|", 2},
		{gate.SqrtSwap(), "|√Swap|", 2},
		{gate.ControlledNot(), "|C-NOT|", 2},
		{gate.Toffoli(), "|CC-NOT|", 3},
		{gate.Fredkin(), "|C-SWAP|", 3},
		{gate.MagicBasis(), "|Magic|", 2},
		{gate.Setter(true), "|0|", 1},
		{gate.Setter(false), "|1|", 1},
		{gate.PhaseShift(math.Pi / 4), "|PhShift 0.79|", 1},
		{gate.Phase(math.Pi), "|Ph 3.14|", 1},
		{gate.RotationX(1), "|Rx 1.00|", 1},
		{gate.RotationY(-1), "|Ry -1.00|", 1},
		{gate.RotationZ(0.5), "|Rz 0.50|", 1},
		{gate.KrausCirac(0.1, 0.2, 0.3), "|N(0.10,0.20,0.30)|", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.g.Name())
			require.Equal(t, tc.inputs, tc.g.Inputs())
			require.Equal(t, tc.inputs, tc.g.Outputs())
			m := tc.g.Matrix()
			require.Equal(t, 1<<tc.inputs, m.Rows())
			require.Equal(t, 1<<tc.inputs, m.Cols())
		})
	}
}

// TestMatrix_ReturnsCopy ensures callers cannot mutate a gate through Matrix().
func TestMatrix_ReturnsCopy(t *testing.T) {
	x := gate.PauliX()
	m := x.Matrix()
	require.NoError(t, m.Set(0, 0, 5))
	v, err := x.Matrix().At(0, 0)
	require.NoError(t, err)
	require.Equal(t, complex(0, 0), v)
}

// TestSetter_ForcesState verifies both setters map any basis input onto their state.
func TestSetter_ForcesState(t *testing.T) {
	for _, q := range []qubit.Qubit{qubit.Zero, qubit.One} {
		require.True(t, apply(t, gate.Setter(true), q).Equal(qubit.Zero))
		require.True(t, apply(t, gate.Setter(false), q).Equal(qubit.One))
	}
}

// TestSqrtNot_Twice verifies √NOT·√NOT acts as NOT up to phase.
func TestSqrtNot_Twice(t *testing.T) {
	q := qubit.New(1i, 0)
	half := apply(t, gate.SqrtNot(), q)
	require.InDelta(t, half.GroundProbability(), half.ExcitedProbability(), tol)
	full := apply(t, gate.SqrtNot(), half)
	require.Equal(t, 1.0, full.ExcitedProbability())
}

// TestCompiled_MatchesChain verifies a compiled HZH equals chained application, which is X.
func TestCompiled_MatchesChain(t *testing.T) {
	q := qubit.New(1i, 0)
	chain := apply(t, gate.Hadamard(), apply(t, gate.PauliZ(), apply(t, gate.Hadamard(), q)))

	hzh, ok := gate.Compiled("HZH", gate.Hadamard(), gate.PauliZ(), gate.Hadamard())
	require.True(t, ok)
	require.Equal(t, "|HZH|", hzh.Name())
	require.Equal(t, gate.KindCompiled, hzh.Kind())
	requireClose(t, chain.Matrix(), mustApply(t, hzh, q.Matrix()))
	requireClose(t, gate.PauliX().Matrix(), hzh.Matrix())

	_, ok = gate.Compiled("bad", gate.Hadamard(), gate.Swap())
	require.False(t, ok) // arity differs
	_, ok = gate.Compiled("empty")
	require.False(t, ok)
}

// TestSqrtSwap_Twice verifies √Swap·√Swap = Swap.
func TestSqrtSwap_Twice(t *testing.T) {
	twice, ok := gate.Compiled("√Swap+√Swap", gate.SqrtSwap(), gate.SqrtSwap())
	require.True(t, ok)
	in, err := qubit.Vector(qubit.Zero, qubit.New(0, 1i))
	require.NoError(t, err)
	requireClose(t, mustApply(t, gate.Swap(), in), mustApply(t, twice, in))
}

// TestPhase_PiEqualsZ verifies Z and a global phase of π agree on |1> up to phase.
func TestPhase_PiEqualsZ(t *testing.T) {
	q := qubit.New(0, 1i)
	require.True(t, apply(t, gate.PauliZ(), q).Equal(apply(t, gate.Phase(math.Pi), q)))
}

// TestPauliX_ClassicalNot verifies X flips basis states.
func TestPauliX_ClassicalNot(t *testing.T) {
	once := apply(t, gate.PauliX(), qubit.New(0, 1i))
	require.Equal(t, 1.0, once.GroundProbability())
	twice := apply(t, gate.PauliX(), once)
	require.Equal(t, 1.0, twice.ExcitedProbability())
}

// TestControlled_MatchesMultiControlled verifies the two lifting paths agree.
func TestControlled_MatchesMultiControlled(t *testing.T) {
	cc, err := gate.ControlledControlled(gate.PauliZ())
	require.NoError(t, err)
	mc, err := gate.MultiControlled(2, gate.PauliZ())
	require.NoError(t, err)
	require.Equal(t, "|CC-Z|", cc.Name())
	require.Equal(t, "|C-C-Z|", mc.Name())
	require.Equal(t, 3, mc.Inputs())
	requireClose(t, cc.Matrix(), mc.Matrix())

	ch, err := gate.Controlled(gate.Hadamard())
	require.NoError(t, err)
	mh, err := gate.MultiControlled(1, gate.Hadamard())
	require.NoError(t, err)
	require.Equal(t, "|C-H|", ch.Name())
	requireClose(t, ch.Matrix(), mh.Matrix())

	cnot, err := gate.Controlled(gate.PauliX())
	require.NoError(t, err)
	requireClose(t, gate.ControlledNot().Matrix(), cnot.Matrix())

	tof, err := gate.MultiControlled(2, gate.PauliX())
	require.NoError(t, err)
	requireClose(t, gate.Toffoli().Matrix(), tof.Matrix())

	_, err = gate.Controlled(gate.Swap())
	require.ErrorIs(t, err, gate.ErrArityMismatch)
	_, err = gate.MultiControlled(0, gate.PauliX())
	require.ErrorIs(t, err, gate.ErrInvalidQubitCount)
}

// TestPowered verifies integer powers and naming.
func TestPowered(t *testing.T) {
	x3, err := gate.Powered(gate.PauliX(), 3)
	require.NoError(t, err)
	require.Equal(t, "|(X)^3|", x3.Name())
	requireClose(t, gate.PauliX().Matrix(), x3.Matrix())

	x0, err := gate.Powered(gate.PauliX(), 0)
	require.NoError(t, err)
	id, _ := matrix.Identity(2)
	requireClose(t, id, x0.Matrix())

	s8, err := gate.Powered(gate.PhaseShift(math.Pi/4), 8)
	require.NoError(t, err)
	requireClose(t, id, s8.Matrix()) // e^{2πi} = 1
}

// TestUniversal_Validation verifies matrix and arity checks.
func TestUniversal_Validation(t *testing.T) {
	id, _ := matrix.Identity(4)
	u, err := gate.Universal("|U|", id, 2, 2)
	require.NoError(t, err)
	require.Equal(t, "|U|", u.Name())
	require.Equal(t, gate.KindUniversal, u.Kind())

	_, err = gate.Universal("|U|", id, 3, 3)
	require.ErrorIs(t, err, gate.ErrInvalidMatrix)

	rect, _ := matrix.New(4, 2, 0)
	_, err = gate.Universal("|U|", rect, 2, 2)
	require.ErrorIs(t, err, gate.ErrInvalidMatrix)

	_, err = gate.Universal("|U|", id, 0, 2)
	require.ErrorIs(t, err, gate.ErrInvalidQubitCount)
}

// TestQFT verifies the Fourier matrix is unitary and its inverse undoes it.
func TestQFT(t *testing.T) {
	f, err := gate.QFT(3, false)
	require.NoError(t, err)
	inv, err := gate.QFT(3, true)
	require.NoError(t, err)
	require.Equal(t, "|QuFT-3|", f.Name())
	require.Equal(t, "|InvQuFT-3|", inv.Name())

	prod, err := matrix.Mul(inv.Matrix(), f.Matrix())
	require.NoError(t, err)
	id, _ := matrix.Identity(8)
	requireClose(t, id, prod)

	one, err := gate.QFT(1, false)
	require.NoError(t, err)
	requireClose(t, gate.Hadamard().Matrix(), one.Matrix()) // QFT on one qubit is H

	_, err = gate.QFT(0, false)
	require.ErrorIs(t, err, gate.ErrInvalidQubitCount)
}

// TestAdjoint verifies Hermitian shortcuts, conjugation and double adjoint.
func TestAdjoint(t *testing.T) {
	h := gate.Hadamard()
	require.Same(t, h, gate.Adjoint(h)) // H is Hermitian

	s := gate.PhaseShift(math.Pi / 2)
	sd := gate.Adjoint(s)
	require.Equal(t, "|PhShift 1.57†|", sd.Name())
	requireClose(t, gate.PhaseShift(-math.Pi/2).Matrix(), sd.Matrix())
	require.Same(t, s, gate.Adjoint(sd))

	prod, err := matrix.Mul(sd.Matrix(), s.Matrix())
	require.NoError(t, err)
	id, _ := matrix.Identity(2)
	requireClose(t, id, prod)
}

// TestKrausCirac_Unitary verifies N(a,b,c)·N(a,b,c)† = I.
func TestKrausCirac_Unitary(t *testing.T) {
	n := gate.KrausCirac(0.3, -0.7, 1.1)
	adj, err := matrix.Adjoint(n.Matrix())
	require.NoError(t, err)
	prod, err := matrix.Mul(n.Matrix(), adj)
	require.NoError(t, err)
	id, _ := matrix.Identity(4)
	requireClose(t, id, prod)
	require.Equal(t, []float64{0.3, -0.7, 1.1}, n.Params())
}

// TestApplyQubits_Arity verifies arity validation on application.
func TestApplyQubits_Arity(t *testing.T) {
	_, err := gate.ApplyQubits(gate.ControlledNot(), qubit.Zero)
	require.ErrorIs(t, err, gate.ErrArityMismatch)

	out, err := gate.ApplyQubits(gate.ControlledNot(), qubit.One, qubit.Zero)
	require.NoError(t, err)
	require.Equal(t, []complex128{0, 0, 0, 1}, out.Data()) // |10> -> |11>

	_, err = gate.ApplyQubit(gate.Swap(), qubit.Zero)
	require.ErrorIs(t, err, gate.ErrArityMismatch)
}

// TestSameName compares transformers by name only.
func TestSameName(t *testing.T) {
	require.True(t, gate.SameName(gate.PauliX(), gate.PauliX()))
	require.False(t, gate.SameName(gate.PauliX(), gate.PauliZ()))
	require.Equal(t, "NOT", gate.TrimName("|NOT|"))
}

func mustApply(t *testing.T, g gate.Transformer, in *matrix.Matrix) *matrix.Matrix {
	t.Helper()
	out, err := gate.Apply(g, in)
	require.NoError(t, err)
	return out
}
