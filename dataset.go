package xorgate

import (
	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
)

// ErrRecordWidth is returned when an interleaved sample buffer is not a whole
// number of records.
var ErrRecordWidth = errors.New("xorgate: samples are not a whole number of records")

// XOR is the truth table of exclusive or, one "a, b, a^b" record per row.
var XOR = []float64{
	0, 0, 0,
	0, 1, 1,
	1, 0, 1,
	1, 1, 0,
}

// Split separates an interleaved sample buffer, where each record holds
// inputs values followed by outputs values, into an input matrix and a target
// matrix with one row per record.
func Split(samples []float64, inputs, outputs int) (ti, to *matrix.Matrix, err error) {
	step := inputs + outputs
	if inputs < 1 || outputs < 1 {
		return nil, nil, errors.Errorf("xorgate: cannot split %d inputs and %d outputs", inputs, outputs)
	}
	if len(samples) == 0 || len(samples)%step != 0 {
		return nil, nil, errors.Wrapf(ErrRecordWidth, "%d samples, record width %d", len(samples), step)
	}
	rows := len(samples) / step

	if ti, err = matrix.FromSlice(rows, inputs, matrix.SliceStrided(samples, rows, inputs, step, 0)); err != nil {
		return nil, nil, err
	}
	if to, err = matrix.FromSlice(rows, outputs, matrix.SliceStrided(samples, rows, outputs, step, inputs)); err != nil {
		return nil, nil, err
	}
	return ti, to, nil
}
