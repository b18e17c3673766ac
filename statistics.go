package xorgate

import (
	"encoding/csv"
	"os"
	"strconv"
)

// Statistics is the loss curve recorded during training.
type Statistics struct {
	Iterations []int
	Losses     []float64
}

func makeStatistics() Statistics {
	return Statistics{
		Iterations: make([]int, 0, 64),
		Losses:     make([]float64, 0, 64),
	}
}

func (s *Statistics) update(iteration int, loss float64) {
	s.Iterations = append(s.Iterations, iteration)
	s.Losses = append(s.Losses, loss)
}

// Dump writes the loss curve as CSV with an "iteration,loss" header.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"iteration", "loss"}); err != nil {
		return err
	}
	records := make([][]string, 0, len(s.Iterations))
	for i, it := range s.Iterations {
		records = append(records, []string{
			strconv.Itoa(it),
			strconv.FormatFloat(s.Losses[i], 'f', 6, 64),
		})
	}
	return w.WriteAll(records)
}
