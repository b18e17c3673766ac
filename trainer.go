// Package xorgate trains a two layer sigmoid gate on a small truth table
// using finite-difference gradients and plain gradient descent.
package xorgate

import (
	"fmt"
	"math/rand"

	"github.com/gorgonia/xorgate/gate"
	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Trainer is the top level structure and the entry point of the API.
// It owns the model gate and the same-shaped gate that accumulates its
// finite-difference gradient, and runs the fixed training loop over them.
type Trainer struct {
	Statistics

	// state
	model     *gate.Gate
	grad      *gate.Gate
	r         *rand.Rand
	iteration int

	// config
	conf   Config
	logger *logrus.Logger

	// io
	outEnc OutputEncoder
}

// New creates a Trainer with a randomly initialized model. It panics if conf
// is not valid.
func New(conf Config) *Trainer {
	if !conf.IsValid() {
		panic(fmt.Sprintf("Config %+v is not valid. Unable to proceed", conf))
	}
	if conf.Name == "" {
		conf.Name = "UNNAMED"
	}

	retVal := &Trainer{
		Statistics: makeStatistics(),
		model:      gate.New(conf.NNConf),
		grad:       gate.New(conf.NNConf),
		r:          rand.New(rand.NewSource(conf.Seed)),
		conf:       conf,
		logger:     conf.Logger,
		outEnc:     conf.OutputEncoder,
	}
	if retVal.logger == nil {
		retVal.logger = logrus.StandardLogger()
	}
	retVal.model.Randomize(retVal.r, conf.Low, conf.High)
	return retVal
}

// Gate returns the model being trained.
func (t *Trainer) Gate() *gate.Gate { return t.model }

// Gradient returns the gradient estimated by the last training iteration.
func (t *Trainer) Gradient() *gate.Gate { return t.grad }

// Iteration returns the number of completed training iterations.
func (t *Trainer) Iteration() int { return t.iteration }

// Learn runs the configured number of iterations of gradient estimation
// followed by a descent step. There is no early stopping.
func (t *Trainer) Learn(ti, to *matrix.Matrix) error {
	conf := t.conf
	log := t.logger.WithFields(logrus.Fields{
		"name":       conf.Name,
		"iterations": conf.Iterations,
	})
	log.WithFields(logrus.Fields{
		"rate":    conf.Rate,
		"epsilon": conf.Epsilon,
		"params":  conf.NNConf.ParamCount(),
		"rows":    ti.Rows(),
	}).Info("Training")

	for i := 0; i < conf.Iterations; i++ {
		if err := t.model.FiniteDiff(t.grad, conf.Epsilon, ti, to); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("iteration %d", t.iteration))
		}
		if err := t.model.Learn(t.grad, conf.Rate); err != nil {
			return errors.WithMessage(err, fmt.Sprintf("iteration %d", t.iteration))
		}
		t.iteration++

		logNow := conf.LogEvery > 0 && t.iteration%conf.LogEvery == 0
		snapNow := conf.SnapshotEvery > 0 && t.iteration%conf.SnapshotEvery == 0
		if !logNow && !snapNow {
			continue
		}
		loss, err := t.model.Loss(ti, to)
		if err != nil {
			return err
		}
		if logNow {
			t.update(t.iteration, loss)
			log.WithFields(logrus.Fields{"iteration": t.iteration, "loss": loss}).Debug("Progress")
		}
		if snapNow {
			if err := t.encode(loss); err != nil {
				return err
			}
		}
	}

	loss, err := t.model.Loss(ti, to)
	if err != nil {
		return err
	}
	if n := len(t.Iterations); n == 0 || t.Iterations[n-1] != t.iteration {
		t.update(t.iteration, loss)
	}
	if conf.SnapshotEvery == 0 || t.iteration%conf.SnapshotEvery != 0 {
		if err := t.encode(loss); err != nil {
			return err
		}
	}
	log.WithField("loss", loss).Info("Trained")
	return nil
}

func (t *Trainer) encode(loss float64) error {
	if t.outEnc == nil {
		return nil
	}
	s := Snapshot{
		Name:      t.conf.Name,
		Iteration: t.iteration,
		Loss:      loss,
		Gate:      t.model,
	}
	return errors.WithMessage(t.outEnc.Encode(s), "output encoder")
}

// Loss is the model's mean squared error over the dataset.
func (t *Trainer) Loss(ti, to *matrix.Matrix) (float64, error) { return t.model.Loss(ti, to) }

// Infer runs a single input row through the model and returns a copy of its
// output activations.
func (t *Trainer) Infer(input []float64) ([]float64, error) {
	x, err := matrix.FromSlice(1, len(input), input)
	if err != nil {
		return nil, err
	}
	if err = matrix.Copy(t.model.X, x); err != nil {
		return nil, errors.WithMessage(err, "infer")
	}
	if err = t.model.Forward(); err != nil {
		return nil, errors.WithMessage(err, "infer")
	}
	return t.model.A2.Clone().Data(), nil
}
