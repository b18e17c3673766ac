package matrix

// SliceStrided extracts fixed-width records from an interleaved buffer. It
// reads cols values starting at start, then moves the read cursor on by step
// before the next row, producing a compact rows×cols buffer. Positions that
// fall past the end of buf are left as zero.
//
// With buf = {0,0,0, 0,1,1, 1,0,1, 1,1,0} and step 3, cols=2/start=0 yields
// the input columns and cols=1/start=2 yields the output column.
func SliceStrided(buf []float64, rows, cols, step, start int) []float64 {
	retVal := make([]float64, rows*cols)
	cursor := start
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if idx := cursor + j; idx >= 0 && idx < len(buf) {
				retVal[i*cols+j] = buf[idx]
			}
		}
		cursor += step
	}
	return retVal
}
