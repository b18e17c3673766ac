package gate

import (
	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
)

// Loss is the squared error of the gate's output summed over output columns
// and averaged over the rows of ti. Each row of ti is run forward in turn, so
// X, A1 and A2 are left holding the last row's pass.
func (g *Gate) Loss(ti, to *matrix.Matrix) (float64, error) {
	if ti.Rows() != to.Rows() || to.Cols() != g.A2.Cols() {
		return 0, errors.Wrapf(matrix.ErrShapeMismatch, "loss: %d input rows, %dx%d targets, %d outputs", ti.Rows(), to.Rows(), to.Cols(), g.A2.Cols())
	}
	var retVal float64
	for i := 0; i < ti.Rows(); i++ {
		row, err := ti.Row(i)
		if err != nil {
			return 0, err
		}
		if err = matrix.Copy(g.X, row); err != nil {
			return 0, errors.WithMessage(err, "loss")
		}
		if err = g.Forward(); err != nil {
			return 0, errors.WithMessage(err, "loss")
		}
		for j := 0; j < to.Cols(); j++ {
			d := g.A2.At(0, j) - to.At(i, j)
			retVal += d * d
		}
	}
	return retVal / float64(ti.Rows()), nil
}

// FiniteDiff estimates ∂loss/∂p for every trainable parameter p with a
// forward difference, (loss(p+eps) - loss(p)) / eps, and writes it into the
// matching element of grad. Every parameter is restored to its exact value
// before returning. eps must be non-zero.
func (g *Gate) FiniteDiff(grad *Gate, eps float64, ti, to *matrix.Matrix) error {
	if err := sameShape(g, grad); err != nil {
		return errors.WithMessage(err, "finite diff")
	}
	base, err := g.Loss(ti, to)
	if err != nil {
		return errors.WithMessage(err, "finite diff")
	}

	gradParams := grad.Params()
	for n, p := range g.Params() {
		dp := gradParams[n]
		for i := 0; i < p.Rows(); i++ {
			for j := 0; j < p.Cols(); j++ {
				saved := p.At(i, j)
				p.Set(i, j, saved+eps)
				l, err := g.Loss(ti, to)
				p.Set(i, j, saved)
				if err != nil {
					return errors.WithMessage(err, "finite diff")
				}
				dp.Set(i, j, (l-base)/eps)
			}
		}
	}
	return nil
}

// Learn takes one gradient descent step, p -= grad·rate, on every trainable
// parameter.
func (g *Gate) Learn(grad *Gate, rate float64) error {
	if err := sameShape(g, grad); err != nil {
		return errors.WithMessage(err, "learn")
	}
	gradParams := grad.Params()
	for n, p := range g.Params() {
		dp := gradParams[n]
		for i := 0; i < p.Rows(); i++ {
			for j := 0; j < p.Cols(); j++ {
				p.Set(i, j, p.At(i, j)-dp.At(i, j)*rate)
			}
		}
	}
	return nil
}

func sameShape(a, b *Gate) error {
	pa, pb := a.Params(), b.Params()
	for i := range pa {
		ar, ac := pa[i].Shape()
		br, bc := pb[i].Shape()
		if ar != br || ac != bc {
			return errors.Wrapf(matrix.ErrShapeMismatch, "parameter %d is %dx%d and %dx%d", i, ar, ac, br, bc)
		}
	}
	return nil
}
