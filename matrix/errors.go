package matrix

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is returned when the operands of an operation do not
	// have compatible dimensions.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrIndexOutOfRange is returned when a row index is outside [0, rows).
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
)

func shapeErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrShapeMismatch, format, args...)
}
