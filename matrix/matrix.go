// SPDX-License-Identifier: MIT

// Package matrix - storage (sparse or dense row-major) & safe accessors.
//
// Purpose:
//   - Provide one complex matrix type with two layouts behind the same surface.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders; map iteration is never observable).
//
// AI-Hints:
//   - Identity and New build sparse matrices; FromRows/FromSlice/NewDense/Vector build dense ones.
//   - Use Compressed()/Uncompressed() to switch layouts explicitly.
//   - Hot loops inside the package use the unexported at/set helpers on flat offsets.
//
// Complexity quicksheet:
//   - New/Identity: O(n) for the diagonal; NewDense: O(r*c); At/Set: O(1) (map or slice);
//     Clone: O(stored).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxAtRaw  = "AtRaw"
	ctxSetRaw = "SetRaw"
	ctxRow    = "Row"
	ctxCol    = "Col"
	ctxSetRow = "SetRow"
	ctxSetCol = "SetCol"
	ctxBlock  = "SetBlock"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// cellErrorf wraps an error with a uniform Matrix context and callsite indices.
func cellErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Matrix.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is a rows×cols grid of complex amplitudes.
//   - r,c hold dimensions (rows, cols).
//   - sparse selects the layout: def+cells when true, dense when false.
//   - cells holds exceptions from def keyed by flat offset i*c + j.
//   - dense is a flat buffer of length r*c in row-major order.
type Matrix struct {
	r, c   int                // row and column counts (> 0)
	sparse bool               // layout selector
	def    complex128         // sparse: value of every cell missing from cells
	cells  map[int]complex128 // sparse: exceptions, never equal to def
	dense  []complex128       // dense: row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Matrix)(nil)

// New creates an r×c sparse matrix where every cell equals fill.
//
// Errors:
//   - ErrBadShape if rows<=0 or cols<=0.
//
// Complexity: O(1).
func New(rows, cols int, fill complex128) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return newSparse(rows, cols, fill), nil
}

// NewDense creates an r×c dense matrix where every cell equals fill.
//
// Errors:
//   - ErrBadShape if rows<=0 or cols<=0.
//
// Complexity: O(r*c).
func NewDense(rows, cols int, fill complex128) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}
	m := newDense(rows, cols)
	if fill != 0 {
		for k := range m.dense {
			m.dense[k] = fill
		}
	}

	return m, nil
}

// FromRows builds a dense matrix from a grid of rows.
// Every row must have the same non-zero length.
//
// Errors:
//   - ErrBadShape for an empty or ragged grid.
//
// Complexity: O(r*c).
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	cols := len(rows[0])
	m := newDense(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, want %d: %w", i, len(row), cols, ErrBadShape)
		}
		copy(m.dense[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// FromSlice builds a dense rows×cols matrix from row-major data (copied).
//
// Errors:
//   - ErrBadShape if rows<=0, cols<=0 or len(data) != rows*cols.
func FromSlice(rows, cols int, data []complex128) (*Matrix, error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, ErrBadShape
	}
	m := newDense(rows, cols)
	copy(m.dense, data)

	return m, nil
}

// Identity returns the sparse n×n identity matrix.
//
// Errors:
//   - ErrBadShape if n<=0.
//
// Complexity: O(n).
func Identity(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrBadShape
	}
	m := newSparse(n, n, 0)
	for i := 0; i < n; i++ {
		m.cells[i*n+i] = 1
	}

	return m, nil
}

// Vector returns a dense column matrix holding values.
//
// Errors:
//   - ErrBadShape if values is empty.
func Vector(values ...complex128) (*Matrix, error) {
	return FromSlice(len(values), 1, values)
}

// newSparse allocates a sparse matrix without validation (internal use).
func newSparse(rows, cols int, def complex128) *Matrix {
	return &Matrix{r: rows, c: cols, sparse: true, def: def, cells: make(map[int]complex128)}
}

// newDense allocates a zero dense matrix without validation (internal use).
func newDense(rows, cols int) *Matrix {
	return &Matrix{r: rows, c: cols, dense: make([]complex128, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.c }

// Len returns the number of cells (rows*cols).
func (m *Matrix) Len() int { return m.r * m.c }

// IsSparse reports whether m uses the default+exceptions layout.
func (m *Matrix) IsSparse() bool { return m.sparse }

// Stored returns the number of explicitly stored cells: exceptions for a
// sparse matrix, every cell for a dense one.
func (m *Matrix) Stored() int {
	if m.sparse {
		return len(m.cells)
	}
	return len(m.dense)
}

// Default returns the implicit value of a sparse matrix (0 for dense matrices).
func (m *Matrix) Default() complex128 {
	if m.sparse {
		return m.def
	}
	return 0
}

// at reads a flat offset without bounds checks.
func (m *Matrix) at(k int) complex128 {
	if !m.sparse {
		return m.dense[k]
	}
	if v, ok := m.cells[k]; ok {
		return v
	}
	return m.def
}

// set writes a flat offset without bounds checks.
// On sparse storage, writing the default removes the exception.
func (m *Matrix) set(k int, v complex128) {
	if !m.sparse {
		m.dense[k] = v
		return
	}
	if v == m.def {
		delete(m.cells, k)
		return
	}
	m.cells[k] = v
}

// At returns the value at (row, col).
//
// Errors:
//   - ErrOutOfRange if row or col is outside the matrix.
func (m *Matrix) At(row, col int) (complex128, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, cellErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	return m.at(row*m.c + col), nil
}

// Set writes v at (row, col).
//
// Errors:
//   - ErrOutOfRange if row or col is outside the matrix.
func (m *Matrix) Set(row, col int, v complex128) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return cellErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	m.set(row*m.c+col, v)

	return nil
}

// AtRaw returns the value at flat row-major offset k.
func (m *Matrix) AtRaw(k int) (complex128, error) {
	if k < 0 || k >= m.r*m.c {
		return 0, cellErrorf(ctxAtRaw, k/m.c, k%m.c, ErrOutOfRange)
	}
	return m.at(k), nil
}

// SetRaw writes v at flat row-major offset k.
func (m *Matrix) SetRaw(k int, v complex128) error {
	if k < 0 || k >= m.r*m.c {
		return cellErrorf(ctxSetRaw, k/m.c, k%m.c, ErrOutOfRange)
	}
	m.set(k, v)

	return nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]complex128, error) {
	if i < 0 || i >= m.r {
		return nil, cellErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]complex128, m.c)
	for j := range out {
		out[j] = m.at(i*m.c + j)
	}

	return out, nil
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) ([]complex128, error) {
	if j < 0 || j >= m.c {
		return nil, cellErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]complex128, m.r)
	for i := range out {
		out[i] = m.at(i*m.c + j)
	}

	return out, nil
}

// SetRow overwrites row i with values.
//
// Errors:
//   - ErrOutOfRange for a bad row, ErrDimensionMismatch when len(values) != Cols().
func (m *Matrix) SetRow(i int, values []complex128) error {
	if i < 0 || i >= m.r {
		return cellErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if len(values) != m.c {
		return cellErrorf(ctxSetRow, i, 0, ErrDimensionMismatch)
	}
	for j, v := range values {
		m.set(i*m.c+j, v)
	}

	return nil
}

// SetCol overwrites column j with values.
//
// Errors:
//   - ErrOutOfRange for a bad column, ErrDimensionMismatch when len(values) != Rows().
func (m *Matrix) SetCol(j int, values []complex128) error {
	if j < 0 || j >= m.c {
		return cellErrorf(ctxSetCol, 0, j, ErrOutOfRange)
	}
	if len(values) != m.r {
		return cellErrorf(ctxSetCol, 0, j, ErrDimensionMismatch)
	}
	for i, v := range values {
		m.set(i*m.c+j, v)
	}

	return nil
}

// SetBlock copies src into m with its top-left corner at (row, col).
//
// Errors:
//   - ErrNilMatrix for a nil src, ErrOutOfRange when the block does not fit.
//
// Complexity: O(src.Rows()*src.Cols()).
func (m *Matrix) SetBlock(row, col int, src *Matrix) error {
	if src == nil {
		return cellErrorf(ctxBlock, row, col, ErrNilMatrix)
	}
	if row < 0 || col < 0 || row+src.r > m.r || col+src.c > m.c {
		return cellErrorf(ctxBlock, row, col, ErrOutOfRange)
	}
	for i := 0; i < src.r; i++ {
		for j := 0; j < src.c; j++ {
			m.set((row+i)*m.c+col+j, src.at(i*src.c+j))
		}
	}

	return nil
}

// Data returns a flat row-major copy of every cell.
//
// Complexity: O(r*c).
func (m *Matrix) Data() []complex128 {
	out := make([]complex128, m.r*m.c)
	if !m.sparse {
		copy(out, m.dense)
		return out
	}
	if m.def != 0 {
		for k := range out {
			out[k] = m.def
		}
	}
	for k, v := range m.cells {
		out[k] = v
	}

	return out
}

// Clone returns a deep copy preserving the layout.
//
// Complexity: O(stored).
func (m *Matrix) Clone() *Matrix {
	if !m.sparse {
		out := newDense(m.r, m.c)
		copy(out.dense, m.dense)
		return out
	}
	out := newSparse(m.r, m.c, m.def)
	for k, v := range m.cells {
		out.cells[k] = v
	}

	return out
}

// String renders the matrix row by row, e.g. "[(1+0i), (0+0i)]\n".
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%v", m.at(i*m.c+j))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
