// Package tensor provides the dense 2D float32 matrix used by every layer.
package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// Matrix is a dense row-major 2D matrix of float32.
// Cell (row, col) lives at data[row*width + col].
// Arithmetic never mutates its operands; Set, AddInPlace and Reset are the
// only in-place writes.
type Matrix struct {
	width  int
	height int
	data   []float32
}

// Zero creates a width×height matrix with every cell set to 0.
func Zero(width, height int) *Matrix {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("tensor.Zero: negative dimensions %dx%d", width, height))
	}
	return &Matrix{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

// Fill creates a width×height matrix by calling gen once per cell in
// row-major order.
func Fill(width, height int, gen func(row, col int) float32) *Matrix {
	m := Zero(width, height)
	for row := 0; row < height; row++ {
		base := row * width
		for col := 0; col < width; col++ {
			m.data[base+col] = gen(row, col)
		}
	}
	return m
}

// Column creates a single-column matrix whose height is len(values).
func Column(values ...float32) *Matrix {
	m := Zero(1, len(values))
	copy(m.data, values)
	return m
}

// FromRows creates a matrix from a slice of equally sized rows.
func FromRows(rows [][]float32) *Matrix {
	if len(rows) == 0 {
		return Zero(0, 0)
	}
	width := len(rows[0])
	m := Zero(width, len(rows))
	for r, row := range rows {
		if len(row) != width {
			panic(fmt.Sprintf("tensor.FromRows: row %d has %d values, want %d", r, len(row), width))
		}
		copy(m.data[r*width:], row)
	}
	return m
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	c := Zero(m.width, m.height)
	copy(c.data, m.data)
	return c
}

// Dims returns (width, height).
func (m *Matrix) Dims() (int, int) {
	return m.width, m.height
}

// Width returns the number of columns.
func (m *Matrix) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *Matrix) Height() int {
	return m.height
}

// Len returns the number of cells.
func (m *Matrix) Len() int {
	return len(m.data)
}

// index maps (row, col) to the flat offset without bounds checks.
func (m *Matrix) index(row, col int) int {
	return row*m.width + col
}

func (m *Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// Get returns the value at (row, col) and false when the coordinates fall
// outside the matrix.
func (m *Matrix) Get(row, col int) (float32, bool) {
	if !m.inBounds(row, col) {
		return 0, false
	}
	return m.data[m.index(row, col)], true
}

// At returns the value at (row, col). It panics when out of bounds.
func (m *Matrix) At(row, col int) float32 {
	if !m.inBounds(row, col) {
		panic(fmt.Sprintf("Matrix.At: (%d, %d) out of bounds for %dx%d", row, col, m.width, m.height))
	}
	return m.data[m.index(row, col)]
}

// Set writes v at (row, col). It panics when out of bounds.
func (m *Matrix) Set(row, col int, v float32) {
	if !m.inBounds(row, col) {
		panic(fmt.Sprintf("Matrix.Set: (%d, %d) out of bounds for %dx%d", row, col, m.width, m.height))
	}
	m.data[m.index(row, col)] = v
}

// Mapped applies f to every cell and returns the result.
func (m *Matrix) Mapped(f func(float32) float32) *Matrix {
	out := Zero(m.width, m.height)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Transposed returns a height×width matrix with out(i, j) = m(j, i).
func (m *Matrix) Transposed() *Matrix {
	out := Zero(m.height, m.width)
	for row := 0; row < m.height; row++ {
		base := row * m.width
		for col := 0; col < m.width; col++ {
			out.data[col*m.height+row] = m.data[base+col]
		}
	}
	return out
}

// Rows returns one contiguous view per row, in row order.
// The views share storage with m and must not be written to.
func (m *Matrix) Rows() [][]float32 {
	rows := make([][]float32, m.height)
	for row := range rows {
		start := row * m.width
		end := start + m.width
		rows[row] = m.data[start:end:end]
	}
	return rows
}

// Cells calls fn for every cell in row-major order.
func (m *Matrix) Cells(fn func(row, col int, v float32)) {
	for i, v := range m.data {
		fn(i/m.width, i%m.width, v)
	}
}

func (m *Matrix) mustMatch(op string, o *Matrix) {
	if m.width != o.width || m.height != o.height {
		panic(fmt.Sprintf("Matrix.%s: dimension mismatch %dx%d vs %dx%d", op, m.width, m.height, o.width, o.height))
	}
}

// vector views the flat storage as a blas32 vector.
func (m *Matrix) vector() blas32.Vector {
	return blas32.Vector{N: len(m.data), Inc: 1, Data: m.data}
}

// Add returns m + o. Both operands must have identical dimensions.
func (m *Matrix) Add(o *Matrix) *Matrix {
	m.mustMatch("Add", o)
	out := m.Clone()
	blas32.Axpy(1, o.vector(), out.vector())
	return out
}

// Sub returns m - o. Both operands must have identical dimensions.
func (m *Matrix) Sub(o *Matrix) *Matrix {
	m.mustMatch("Sub", o)
	out := m.Clone()
	blas32.Axpy(-1, o.vector(), out.vector())
	return out
}

// MulElem returns the Hadamard (cell-by-cell) product of m and o.
func (m *Matrix) MulElem(o *Matrix) *Matrix {
	m.mustMatch("MulElem", o)
	out := Zero(m.width, m.height)
	for i, v := range m.data {
		out.data[i] = v * o.data[i]
	}
	return out
}

// AddInPlace adds o into m cell by cell. It panics unless dims are identical.
func (m *Matrix) AddInPlace(o *Matrix) {
	m.mustMatch("AddInPlace", o)
	blas32.Axpy(1, o.vector(), m.vector())
}

// Reset sets every cell of m to 0, keeping its storage.
func (m *Matrix) Reset() {
	clear(m.data)
}

// Scale returns s·m.
func (m *Matrix) Scale(s float32) *Matrix {
	out := m.Clone()
	blas32.Scal(s, out.vector())
	return out
}

// ScaleBy returns s·m, the scalar-first form of Matrix.Scale.
func ScaleBy(s float32, m *Matrix) *Matrix {
	return m.Scale(s)
}

// Mul returns the matrix product m·o. It panics unless m.Width() == o.Height().
// The result is o.Width() wide and m.Height() high.
func (m *Matrix) Mul(o *Matrix) *Matrix {
	if m.width != o.height {
		panic(fmt.Sprintf("Matrix.Mul: inner dimensions differ (%dx%d · %dx%d)", m.width, m.height, o.width, o.height))
	}
	return gemm(blas.NoTrans, blas.NoTrans, m, o)
}

// MulTransA returns mᵀ·o without materializing the transpose.
func (m *Matrix) MulTransA(o *Matrix) *Matrix {
	if m.height != o.height {
		panic(fmt.Sprintf("Matrix.MulTransA: inner dimensions differ (%dx%d)ᵀ · %dx%d", m.width, m.height, o.width, o.height))
	}
	return gemm(blas.Trans, blas.NoTrans, m, o)
}

// MulTransB returns m·oᵀ without materializing the transpose.
func (m *Matrix) MulTransB(o *Matrix) *Matrix {
	if m.width != o.width {
		panic(fmt.Sprintf("Matrix.MulTransB: inner dimensions differ %dx%d · (%dx%d)ᵀ", m.width, m.height, o.width, o.height))
	}
	return gemm(blas.NoTrans, blas.Trans, m, o)
}

// gemm computes op(a)·op(b) into a fresh matrix. Shapes are checked by the callers.
func gemm(tA, tB blas.Transpose, a, b *Matrix) *Matrix {
	rows, inner := a.height, a.width
	if tA == blas.Trans {
		rows, inner = a.width, a.height
	}
	cols := b.width
	if tB == blas.Trans {
		cols = b.height
	}

	out := Zero(cols, rows)
	if rows == 0 || cols == 0 || inner == 0 {
		return out
	}
	blas32.Gemm(tA, tB, 1, a.general(), b.general(), 0, out.general())
	return out
}

func (m *Matrix) general() blas32.General {
	return blas32.General{Rows: m.height, Cols: m.width, Stride: m.width, Data: m.data}
}

// AddRowVector adds the 1×width row v to every row of m.
func (m *Matrix) AddRowVector(v *Matrix) *Matrix {
	if v.height != 1 || v.width != m.width {
		panic(fmt.Sprintf("Matrix.AddRowVector: want 1x%d row, got %dx%d", m.width, v.width, v.height))
	}
	out := m.Clone()
	for row := 0; row < m.height; row++ {
		base := row * m.width
		for col, b := range v.data {
			out.data[base+col] += b
		}
	}
	return out
}

// SumRows collapses the rows of m into a single 1×width row of column sums.
func (m *Matrix) SumRows() *Matrix {
	out := Zero(m.width, 1)
	if m.width == 0 {
		return out
	}
	acc := out.vector()
	for _, row := range m.Rows() {
		blas32.Axpy(1, blas32.Vector{N: m.width, Inc: 1, Data: row}, acc)
	}
	return out
}

// Sum returns the sum of all cells.
func (m *Matrix) Sum() float32 {
	var sum float32
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// Equal reports whether m and o have the same dimensions and cells.
// A NaN cell never equals anything, including another NaN.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.EqualApprox(o, 0)
}

// EqualApprox reports whether m and o have the same dimensions and every
// pair of cells differs by at most tol. NaN cells never match.
func (m *Matrix) EqualApprox(o *Matrix, tol float32) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i, v := range m.data {
		if v == o.data[i] {
			continue
		}
		d := v - o.data[i]
		if math32.IsNaN(d) || d > tol || d < -tol {
			return false
		}
	}
	return true
}

// String formats m row by row, e.g. [[1 2] [3 4]].
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for r, row := range m.Rows() {
		if r > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('[')
		for c, v := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}
