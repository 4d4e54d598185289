package mfcc

import "github.com/x448/float16"

// Matrix is a dense row-major matrix. Rows created by this package share one
// backing slice, so Flatten on them is a cheap copy.
type Matrix [][]float64

// NewMatrix allocates a zeroed rows × cols matrix.
func NewMatrix(rows, cols int) Matrix {
	backing := make([]float64, rows*cols)
	m := make(Matrix, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of columns, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Flatten copies the matrix into a single row-major slice.
func (m Matrix) Flatten() []float64 {
	cols := m.Cols()
	flat := make([]float64, len(m)*cols)
	for i, row := range m {
		copy(flat[i*cols:], row)
	}
	return flat
}

// TimeAxis returns the start time in seconds of every row when rows are
// frames taken every frameStride seconds.
func (m Matrix) TimeAxis(frameStride float64) []float64 {
	axis := make([]float64, len(m))
	for i := range axis {
		axis[i] = float64(i) * frameStride
	}
	return axis
}

// Float16 returns the row-major IEEE 754 half-precision bit patterns of m.
func (m Matrix) Float16() []uint16 {
	flat := m.Flatten()
	out := make([]uint16, len(flat))
	for i, v := range flat {
		out[i] = float16.Fromfloat32(float32(v)).Bits()
	}
	return out
}
