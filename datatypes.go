package xorgate

import (
	"github.com/gorgonia/xorgate/gate"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Name   string
	NNConf gate.Config

	Rate       float64 // learning rate
	Epsilon    float64 // finite difference step
	Iterations int     // training iterations, always run in full

	// initial parameters are drawn from [Low, High)
	Low, High float64
	Seed      int64

	LogEvery      int // 0 disables progress logging
	SnapshotEvery int // 0 only snapshots the final state

	// extensions
	OutputEncoder OutputEncoder
	Logger        *logrus.Logger
}

// DefaultConfig trains the 2-2-1 XOR gate.
func DefaultConfig() Config {
	return Config{
		Name:       "XOR",
		NNConf:     gate.DefaultConf(),
		Rate:       1e-1,
		Epsilon:    1e-1,
		Iterations: 50 * 1000,
		Low:        0,
		High:       1,
		Seed:       1,
		LogEvery:   5000,
	}
}

func (conf Config) IsValid() bool {
	return conf.NNConf.IsValid() &&
		conf.Rate > 0 &&
		conf.Epsilon != 0 &&
		conf.Iterations >= 1 &&
		conf.Low < conf.High &&
		conf.LogEvery >= 0 &&
		conf.SnapshotEvery >= 0
}

// OutputEncoder encodes training snapshots as whatever.
//
// An example OutputEncoder is the gif Encoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(s Snapshot) error
	Flush() error
}

// Snapshot is the state of training handed to an OutputEncoder. Gate is the
// live model; encoders may run it forward but must not change its parameters.
type Snapshot struct {
	Name      string
	Iteration int
	Loss      float64
	Gate      *gate.Gate
}
