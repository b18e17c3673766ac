package matrix

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Dense returns a rows×cols float64 *tensor.Dense holding a copy of m.
func (m *Matrix) Dense() *tensor.Dense {
	c := m.Clone()
	return tensor.New(tensor.WithShape(m.rows, m.cols), tensor.WithBacking(c.data))
}

// FromDense copies a 2D float64 tensor into a new Matrix. Views are read
// element by element, so a sliced tensor is fine.
func FromDense(t *tensor.Dense) (*Matrix, error) {
	shp := t.Shape()
	if shp.Dims() != 2 {
		return nil, shapeErrorf("expected a matrix, got shape %v", shp)
	}
	if t.Dtype() != tensor.Float64 {
		return nil, errors.Errorf("matrix: expected Float64 tensor, got %v", t.Dtype())
	}
	retVal := New(shp[0], shp[1])
	for i := 0; i < shp[0]; i++ {
		for j := 0; j < shp[1]; j++ {
			v, err := t.At(i, j)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			retVal.Set(i, j, v.(float64))
		}
	}
	return retVal, nil
}
