// Package gate implements a two layer sigmoid network trained with
// finite-difference gradient estimates.
//
// A Gate is used in two roles: as the live model, and as a same-shaped
// accumulator for the per-parameter gradient. The accumulator is never run
// forward.
package gate

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
)

// Gate is the network
//
//	A1 = σ(X·W1 + B1)
//	A2 = σ(A1·W2 + B2)
//
// A Gate exclusively owns its matrices. X, A1 and A2 are overwritten by every
// forward pass.
type Gate struct {
	Config

	X *matrix.Matrix // 1×Inputs

	W1 *matrix.Matrix // Inputs×Hidden
	B1 *matrix.Matrix // 1×Hidden
	A1 *matrix.Matrix // 1×Hidden

	W2 *matrix.Matrix // Hidden×Outputs
	B2 *matrix.Matrix // 1×Outputs
	A2 *matrix.Matrix // 1×Outputs
}

// New returns a zeroed gate. It panics if conf is not valid.
func New(conf Config) *Gate {
	if !conf.IsValid() {
		panic(fmt.Sprintf("gate: invalid config %+v", conf))
	}
	return &Gate{
		Config: conf,
		X:      matrix.New(1, conf.Inputs),
		W1:     matrix.New(conf.Inputs, conf.Hidden),
		B1:     matrix.New(1, conf.Hidden),
		A1:     matrix.New(1, conf.Hidden),
		W2:     matrix.New(conf.Hidden, conf.Outputs),
		B2:     matrix.New(1, conf.Outputs),
		A2:     matrix.New(1, conf.Outputs),
	}
}

// Params returns the trainable matrices in a fixed order: W1, B1, W2, B2.
func (g *Gate) Params() []*matrix.Matrix {
	return []*matrix.Matrix{g.W1, g.B1, g.W2, g.B2}
}

// Randomize draws every trainable parameter uniformly from [low, high).
func (g *Gate) Randomize(r *rand.Rand, low, high float64) {
	for _, p := range g.Params() {
		p.Randomize(r, low, high)
	}
}

// Forward runs X through both layers, leaving the activations in A1 and A2.
func (g *Gate) Forward() error {
	var m maebe
	m.do(func() error { return matrix.Mul(g.A1, g.X, g.W1) })
	m.do(func() error { return matrix.Sum(g.A1, g.B1) })
	if m.err != nil {
		return errors.WithMessage(m.err, "hidden layer")
	}
	g.A1.Sigmoid()

	m.do(func() error { return matrix.Mul(g.A2, g.A1, g.W2) })
	m.do(func() error { return matrix.Sum(g.A2, g.B2) })
	if m.err != nil {
		return errors.WithMessage(m.err, "output layer")
	}
	g.A2.Sigmoid()
	return nil
}

func (g *Gate) String() string {
	var buf bytes.Buffer
	for _, nm := range g.named() {
		fmt.Fprintf(&buf, "%s =\n%v\n", nm.name, nm.Matrix)
	}
	return buf.String()
}

type namedMatrix struct {
	name string
	*matrix.Matrix
}

func (g *Gate) named() []namedMatrix {
	return []namedMatrix{
		{"x", g.X},
		{"w1", g.W1}, {"b1", g.B1}, {"a1", g.A1},
		{"w2", g.W2}, {"b2", g.B2}, {"a2", g.A2},
	}
}

// maebe short circuits a sequence of fallible matrix ops on the first error.
type maebe struct {
	err error
}

func (m *maebe) do(f func() error) {
	if m.err != nil {
		return
	}
	m.err = f()
}
