// SPDX-License-Identifier: MIT

// Package matrix - approximate comparison policy.
//
// Two flavours coexist:
//   - AlmostEqual and friends: a relative test at machine epsilon, used by the
//     simulator to snap probabilities to exactly 0 or 1.
//   - AllClose: explicit rtol/atol, used by tests and by callers comparing the
//     results of long product chains.

package matrix

import (
	"math"
	"math/cmplx"
)

// Epsilon is the float64 machine epsilon, 2^-52.
const Epsilon = 0x1p-52

// AlmostEqual reports whether a and b are equal within a relative machine-epsilon policy.
//
// Implementation:
//   - Exact equality short-circuits.
//   - When either side is zero the other must be below Epsilon in magnitude.
//   - Otherwise signs must match and |a-b| / |a+b| must stay under 2·Epsilon.
func AlmostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	if b == 0 {
		return math.Abs(a) < Epsilon
	}
	if a == 0 {
		return math.Abs(b) < Epsilon
	}
	if math.Signbit(a) != math.Signbit(b) {
		return false
	}
	return math.Abs((a-b)/(a+b)) < 2*Epsilon
}

// AlmostEqualComplex compares real and imaginary parts with AlmostEqual.
func AlmostEqualComplex(a, b complex128) bool {
	return AlmostEqual(real(a), real(b)) && AlmostEqual(imag(a), imag(b))
}

// AlmostEqualAbs compares the magnitudes of a and b with AlmostEqual.
// Amplitudes that differ only by a phase compare equal.
func AlmostEqualAbs(a, b complex128) bool {
	return AlmostEqual(cmplx.Abs(a), cmplx.Abs(b))
}

// AlmostZero reports whether |x| < Epsilon.
func AlmostZero(x float64) bool { return AlmostEqual(x, 0) }

// AlmostOne reports whether x is within the relative epsilon policy of 1.
func AlmostOne(x float64) bool { return AlmostEqual(x, 1) }

// Equal reports whether a and b have the same shape and every pair of cells
// is AlmostEqualComplex. Nil matrices are equal only to each other.
//
// Complexity: O(r*c).
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for k, n := 0, a.r*a.c; k < n; k++ {
		if !AlmostEqualComplex(a.at(k), b.at(k)) {
			return false
		}
	}

	return true
}

// AllClose reports whether |a-b| <= atol + rtol·|b| holds for every cell.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with the validator tag).
//
// Complexity: O(r*c).
func AllClose(a, b *Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, err
	}
	for k, n := 0, a.r*a.c; k < n; k++ {
		x, y := a.at(k), b.at(k)
		if cmplx.Abs(x-y) > atol+rtol*cmplx.Abs(y) {
			return false, nil
		}
	}

	return true, nil
}

// IsHermitian reports whether m is square and equal to its conjugate transpose.
func IsHermitian(m *Matrix) bool {
	if m == nil || m.r != m.c {
		return false
	}
	for i := 0; i < m.r; i++ {
		for j := i; j < m.c; j++ {
			if !AlmostEqualComplex(m.at(i*m.c+j), cmplx.Conj(m.at(j*m.c+i))) {
				return false
			}
		}
	}

	return true
}
