// Package matrix provides the small dense matrix used by the gate network.
//
// A Matrix is a flat, row-major buffer of float64s. Operations either mutate
// the receiver in place or write into a caller supplied destination whose
// shape must already match the result; nothing in the arithmetic paths
// allocates.
package matrix

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Matrix is a row-major dense matrix. Element (i, j) lives at
// data[i*stride+j]. Every matrix constructed by this package is compact, so
// stride always equals cols.
type Matrix struct {
	rows, cols int
	stride     int
	data       []float64
}

// New returns a zero-filled rows×cols matrix. It panics on negative
// dimensions.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimensions %dx%d", rows, cols))
	}
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: cols,
		data:   make([]float64, rows*cols),
	}
}

// FromSlice wraps data as a rows×cols matrix. The slice is used as the
// backing buffer, not copied.
func FromSlice(rows, cols int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, shapeErrorf("negative dimensions %dx%d", rows, cols)
	}
	if len(data) < rows*cols {
		return nil, shapeErrorf("buffer of %d cannot back a %dx%d matrix", len(data), rows, cols)
	}
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: cols,
		data:   data,
	}, nil
}

func (m *Matrix) Rows() int   { return m.rows }
func (m *Matrix) Cols() int   { return m.cols }
func (m *Matrix) Stride() int { return m.stride }

// Shape returns (rows, cols).
func (m *Matrix) Shape() (rows, cols int) { return m.rows, m.cols }

// Data returns the backing buffer.
func (m *Matrix) Data() []float64 { return m.data }

// At returns element (i, j). Like a slice index, it panics when out of bounds.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.stride+j] }

// Set sets element (i, j) to v.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.stride+j] = v }

// Row returns a new 1×cols matrix holding a copy of row i.
func (m *Matrix) Row(i int) (*Matrix, error) {
	if i < 0 || i >= m.rows {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "row %d of %d", i, m.rows)
	}
	retVal := New(1, m.cols)
	start := i * m.stride
	copy(retVal.data, m.data[start:start+m.cols])
	return retVal, nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	retVal := New(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		copy(retVal.data[i*retVal.stride:], m.data[i*m.stride:i*m.stride+m.cols])
	}
	return retVal
}

// Copy copies the values of src into dst. The two never share a buffer
// afterwards.
func Copy(dst, src *Matrix) error {
	if dst.rows != src.rows || dst.cols != src.cols {
		return shapeErrorf("copy %dx%d into %dx%d", src.rows, src.cols, dst.rows, dst.cols)
	}
	if dst == src {
		return nil
	}
	for i := 0; i < src.rows; i++ {
		copy(dst.data[i*dst.stride:i*dst.stride+dst.cols], src.data[i*src.stride:i*src.stride+src.cols])
	}
	return nil
}

// Equal reports whether a and b have the same shape and elements.
func Equal(a, b *Matrix) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			if a.At(i, j) != b.At(i, j) {
				return false
			}
		}
	}
	return true
}

// String formats the matrix one row per line.
//
//	⎡0 0⎤
//	⎣0 1⎦
func (m *Matrix) String() string {
	var buf bytes.Buffer
	for i := 0; i < m.rows; i++ {
		l, r := "⎢", "⎥"
		switch {
		case m.rows == 1:
			l, r = "[", "]"
		case i == 0:
			l, r = "⎡", "⎤"
		case i == m.rows-1:
			l, r = "⎣", "⎦"
		}
		buf.WriteString(l)
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%v", m.At(i, j))
		}
		buf.WriteString(r)
		if i < m.rows-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}
