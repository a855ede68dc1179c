// SPDX-License-Identifier: MIT

// Package circuit - lifting a k-qubit operator to the full register.
//
// Implementation:
//   - Gate bit b (b = 0 is the least significant bit of the gate index) maps to
//     register bit position n-1-indices[k-1-b], so indices[0] drives the most
//     significant gate bit and qubit 0 is the most significant register bit.
//   - For every row i, the gate row i* is read off the targeted bits of i; every
//     gate column j* is scattered back onto the targeted bits while the other
//     bits of i are kept, which enforces identity on untouched qubits.
//   - The result is sparse with default 0 and at most 2^n·2^k stored cells.
//
// Complexity: O(2^n · 2^k · k) time, O(2^n · 2^k) memory.

package circuit

import (
	"fmt"

	"github.com/katalvlaran/qsim/matrix"
)

// Expand returns the 2^n×2^n operator applying g to the qubits listed in
// indices of an n-qubit register and the identity to every other qubit.
//
// Errors:
//   - ErrInvalidQubitCount if n < 1.
//   - ErrIndexOutOfRange, ErrOverlappingIndices for bad indices.
//   - ErrDimensionMismatch if g is not square with side 2^len(indices).
func Expand(n int, g *matrix.Matrix, indices []int) (*matrix.Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("Expand(%d): %w", n, ErrInvalidQubitCount)
	}
	k := len(indices)
	if g == nil || k == 0 || k > n || g.Rows() != 1<<k || g.Cols() != 1<<k {
		return nil, fmt.Errorf("Expand(%d, %v): %w", n, indices, ErrDimensionMismatch)
	}

	pos := make([]uint, k)
	var mask int
	for b := 0; b < k; b++ {
		idx := indices[k-1-b]
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("Expand(%d): index %d: %w", n, idx, ErrIndexOutOfRange)
		}
		pos[b] = uint(n - 1 - idx)
		if mask&(1<<pos[b]) != 0 {
			return nil, fmt.Errorf("Expand(%d, %v): %w", n, indices, ErrOverlappingIndices)
		}
		mask |= 1 << pos[b]
	}

	gs := 1 << k
	scatter := make([]int, gs) // gate index -> register bits
	for js := 0; js < gs; js++ {
		for b, p := range pos {
			scatter[js] |= ((js >> b) & 1) << p
		}
	}

	gd := g.Data()
	size := 1 << n
	out, err := matrix.New(size, size, 0)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		is := 0
		for b, p := range pos {
			is |= ((i >> p) & 1) << b
		}
		base := i &^ mask
		row := gd[is*gs : (is+1)*gs]
		for js, v := range row {
			if v == 0 {
				continue
			}
			if err := out.Set(i, base|scatter[js], v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
