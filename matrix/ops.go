package matrix

import (
	"math"
	"math/rand"
)

// Fill sets every element of m to v.
func (m *Matrix) Fill(v float64) {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.data[i*m.stride+j] = v
		}
	}
}

// Randomize draws every element uniformly from [low, high) using r.
func (m *Matrix) Randomize(r *rand.Rand, low, high float64) {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.data[i*m.stride+j] = low + r.Float64()*(high-low)
		}
	}
}

// Sum adds other into dst elementwise.
func Sum(dst, other *Matrix) error {
	if dst.rows != other.rows || dst.cols != other.cols {
		return shapeErrorf("sum %dx%d into %dx%d", other.rows, other.cols, dst.rows, dst.cols)
	}
	for i := 0; i < dst.rows; i++ {
		for j := 0; j < dst.cols; j++ {
			dst.data[i*dst.stride+j] += other.data[i*other.stride+j]
		}
	}
	return nil
}

// Mul computes the dense product a·b into dst, which must already be
// a.rows×b.cols. dst must not alias a or b.
func Mul(dst, a, b *Matrix) error {
	if a.cols != b.rows {
		return shapeErrorf("mul inner dimensions %dx%d · %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	if dst.rows != a.rows || dst.cols != b.cols {
		return shapeErrorf("mul result is %dx%d, dst is %dx%d", a.rows, b.cols, dst.rows, dst.cols)
	}
	n := a.cols
	for i := 0; i < dst.rows; i++ {
		for j := 0; j < dst.cols; j++ {
			var acc float64
			for k := 0; k < n; k++ {
				acc += a.data[i*a.stride+k] * b.data[k*b.stride+j]
			}
			dst.data[i*dst.stride+j] = acc
		}
	}
	return nil
}

// Sigmoid applies the logistic function to every element of m.
func (m *Matrix) Sigmoid() {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			m.data[i*m.stride+j] = Sigmoid(m.data[i*m.stride+j])
		}
	}
}

// Sigmoid is 1/(1+e^-x).
func Sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
