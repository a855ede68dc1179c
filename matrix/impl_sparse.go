// SPDX-License-Identifier: MIT

// Package matrix - layout conversion and the default-value heuristic.
//
// A sparse matrix is worth keeping only while its exceptions stay a minority.
// recompress re-elects the most frequent value as the default once more than
// half of the cells are stored explicitly, which keeps constant-heavy operators
// (all-ones, phase-filled) compact as well as mostly-zero ones.

package matrix

// Compressed returns a sparse copy of m with the most frequent value as default.
//
// Complexity: O(r*c) for dense input, O(stored) for sparse input.
func (m *Matrix) Compressed() *Matrix {
	if m.sparse {
		out := m.Clone()
		out.recompress()
		return out
	}
	out := newSparse(m.r, m.c, 0)
	for k, v := range m.dense {
		if v != 0 {
			out.cells[k] = v
		}
	}
	out.recompress()

	return out
}

// Uncompressed returns a dense copy of m.
//
// Complexity: O(r*c).
func (m *Matrix) Uncompressed() *Matrix {
	return &Matrix{r: m.r, c: m.c, dense: m.Data()}
}

// FillRatio returns stored exceptions divided by cells; 1 for dense matrices.
func (m *Matrix) FillRatio() float64 {
	if !m.sparse {
		return 1
	}
	return float64(len(m.cells)) / float64(m.r*m.c)
}

// recompress picks a new default when exceptions exceed half of the cells.
// Ties between candidate defaults keep the current default, then prefer the
// lexicographically smaller (real, imag) pair so the outcome is deterministic.
func (m *Matrix) recompress() {
	total := m.r * m.c
	if !m.sparse || 2*len(m.cells) <= total {
		return
	}

	counts := make(map[complex128]int, len(m.cells))
	for _, v := range m.cells {
		counts[v]++
	}
	best, bestCount := m.def, total-len(m.cells)
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v != m.def && best != m.def && lessComplex(v, best)) {
			best, bestCount = v, n
		}
	}
	if best == m.def {
		return
	}

	cells := make(map[int]complex128, total-bestCount)
	for k := 0; k < total; k++ {
		if v := m.at(k); v != best {
			cells[k] = v
		}
	}
	m.def, m.cells = best, cells
}

// lessComplex orders complex numbers by real part, then imaginary part.
func lessComplex(a, b complex128) bool {
	if real(a) != real(b) {
		return real(a) < real(b)
	}
	return imag(a) < imag(b)
}
