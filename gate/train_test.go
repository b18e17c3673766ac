package gate

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/gorgonia/xorgate/matrix"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	G "gorgonia.org/gorgonia"
)

var xorTable = []float64{
	0, 0, 0,
	0, 1, 1,
	1, 0, 1,
	1, 1, 0,
}

func xorData(t *testing.T) (ti, to *matrix.Matrix) {
	t.Helper()
	var err error
	ti, err = matrix.FromSlice(4, 2, matrix.SliceStrided(xorTable, 4, 2, 3, 0))
	require.NoError(t, err)
	to, err = matrix.FromSlice(4, 1, matrix.SliceStrided(xorTable, 4, 1, 3, 2))
	require.NoError(t, err)
	return ti, to
}

func randomGate(seed int64) *Gate {
	g := New(DefaultConf())
	g.Randomize(rand.New(rand.NewSource(seed)), 0, 1)
	return g
}

// flatten returns the trainable parameters in Params order.
func flatten(g *Gate) []float64 {
	var retVal []float64
	for _, p := range g.Params() {
		retVal = append(retVal, p.Clone().Data()...)
	}
	return retVal
}

func unflatten(g *Gate, xs []float64) {
	for _, p := range g.Params() {
		n := copy(p.Data(), xs)
		xs = xs[n:]
	}
}

func TestLoss(t *testing.T) {
	ti, to := xorData(t)
	for seed := int64(0); seed < 10; seed++ {
		g := randomGate(seed)
		l, err := g.Loss(ti, to)
		require.NoError(t, err)
		assert.True(t, l >= 0, "seed %d: negative loss %v", seed, l)
		// σ is in (0, 1) and targets are bits, so each squared error is below 1
		assert.True(t, l < 1, "seed %d: loss %v", seed, l)
	}
}

func TestLossKnown(t *testing.T) {
	ti, to := xorData(t)
	g := New(DefaultConf())
	// every output is σ(0) = 0.5, so every row contributes 0.25
	l, err := g.Loss(ti, to)
	require.NoError(t, err)
	assert.Equal(t, 0.25, l)

	// X is left holding the last row
	assert.Equal(t, []float64{1, 1}, g.X.Data())
}

func TestLossZeroOnPerfectTargets(t *testing.T) {
	ti, _ := xorData(t)
	g := randomGate(11)

	// targets are what the gate already predicts
	to := matrix.New(ti.Rows(), 1)
	for i := 0; i < ti.Rows(); i++ {
		row, err := ti.Row(i)
		require.NoError(t, err)
		require.NoError(t, matrix.Copy(g.X, row))
		require.NoError(t, g.Forward())
		to.Set(i, 0, g.A2.At(0, 0))
	}

	l, err := g.Loss(ti, to)
	require.NoError(t, err)
	assert.Equal(t, 0.0, l)
}

func TestLossNotNormalisedByOutputs(t *testing.T) {
	conf := Config{Inputs: 1, Hidden: 1, Outputs: 2}
	g := New(conf)
	ti := matrix.New(2, 1)
	to := matrix.New(2, 2)
	// zero targets against outputs of 0.5: 2 columns × 0.25, averaged over 2 rows
	l, err := g.Loss(ti, to)
	require.NoError(t, err)
	assert.Equal(t, 0.5, l)
}

func TestLossShapeMismatch(t *testing.T) {
	ti, to := xorData(t)
	g := New(DefaultConf())

	_, err := g.Loss(ti, matrix.New(3, 1))
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch), "rows: got %v", err)

	_, err = g.Loss(ti, matrix.New(4, 2))
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch), "cols: got %v", err)

	_, err = g.Loss(matrix.New(4, 3), to)
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch), "input width: got %v", err)
}

func TestFiniteDiffRestoresParams(t *testing.T) {
	ti, to := xorData(t)
	g := randomGate(5)
	grad := New(DefaultConf())
	before := flatten(g)

	require.NoError(t, g.FiniteDiff(grad, 0.1, ti, to))
	assert.Equal(t, before, flatten(g), "parameters must be restored exactly")

	// deterministic
	first := flatten(grad)
	require.NoError(t, g.FiniteDiff(grad, 0.1, ti, to))
	assert.Equal(t, first, flatten(grad))
}

func TestFiniteDiffMatchesGonum(t *testing.T) {
	ti, to := xorData(t)
	for _, eps := range []float64{0.1, 1e-3} {
		t.Run(fmt.Sprintf("eps=%v", eps), func(t *testing.T) {
			g := randomGate(21)
			grad := New(DefaultConf())
			require.NoError(t, g.FiniteDiff(grad, eps, ti, to))

			scratch := New(DefaultConf())
			loss := func(xs []float64) float64 {
				unflatten(scratch, xs)
				l, err := scratch.Loss(ti, to)
				if err != nil {
					panic(err)
				}
				return l
			}
			want := fd.Gradient(nil, loss, flatten(g), &fd.Settings{
				Formula: fd.Forward,
				Step:    eps,
			})
			assert.InDeltaSlice(t, want, flatten(grad), 1e-12)
		})
	}
}

// symbolicGradient builds the same network in gorgonia and returns the
// analytic gradient of the loss in Params order.
func symbolicGradient(t *testing.T, g *Gate, ti, to *matrix.Matrix) []float64 {
	t.Helper()
	eg := G.NewGraph()
	param := func(m *matrix.Matrix, name string) *G.Node {
		return G.NewMatrix(eg, G.Float64, G.WithShape(m.Rows(), m.Cols()), G.WithName(name), G.WithValue(m.Dense()))
	}
	w1, b1 := param(g.W1, "w1"), param(g.B1, "b1")
	w2, b2 := param(g.W2, "w2"), param(g.B2, "b2")

	var cost *G.Node
	for i := 0; i < ti.Rows(); i++ {
		xi, err := ti.Row(i)
		require.NoError(t, err)
		yi, err := to.Row(i)
		require.NoError(t, err)
		x := param(xi, fmt.Sprintf("x%d", i))
		y := param(yi, fmt.Sprintf("y%d", i))

		h := G.Must(G.Sigmoid(G.Must(G.Add(G.Must(G.Mul(x, w1)), b1))))
		out := G.Must(G.Sigmoid(G.Must(G.Add(G.Must(G.Mul(h, w2)), b2))))
		se := G.Must(G.Sum(G.Must(G.Square(G.Must(G.Sub(out, y))))))
		if cost == nil {
			cost = se
			continue
		}
		cost = G.Must(G.Add(cost, se))
	}
	cost = G.Must(G.Div(cost, G.NewConstant(float64(ti.Rows()))))

	_, err := G.Grad(cost, w1, b1, w2, b2)
	require.NoError(t, err)
	vm := G.NewTapeMachine(eg, G.BindDualValues(w1, b1, w2, b2))
	defer vm.Close()
	require.NoError(t, vm.RunAll())

	var retVal []float64
	for _, n := range []*G.Node{w1, b1, w2, b2} {
		gv, err := n.Grad()
		require.NoError(t, err)
		retVal = append(retVal, gv.Data().([]float64)...)
	}
	return retVal
}

func TestFiniteDiffApproximatesSymbolicGradient(t *testing.T) {
	ti, to := xorData(t)
	g := randomGate(8)
	grad := New(DefaultConf())
	require.NoError(t, g.FiniteDiff(grad, 1e-6, ti, to))

	want := symbolicGradient(t, g, ti, to)
	assert.InDeltaSlice(t, want, flatten(grad), 1e-4)
}

func TestLearn(t *testing.T) {
	g := randomGate(2)
	grad := New(DefaultConf())
	for i, p := range grad.Params() {
		p.Fill(float64(i + 1))
	}
	before := flatten(g)
	require.NoError(t, g.Learn(grad, 0.5))

	after := flatten(g)
	gs := flatten(grad)
	for i := range before {
		assert.Equal(t, before[i]-gs[i]*0.5, after[i], "param %d", i)
	}
	// the gradient is read only
	assert.Equal(t, gs, flatten(grad))
}

func TestGradientShapeMismatch(t *testing.T) {
	ti, to := xorData(t)
	g := randomGate(2)
	grad := New(Config{Inputs: 2, Hidden: 3, Outputs: 1})

	err := g.Learn(grad, 0.1)
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch), "learn: got %v", err)
	err = g.FiniteDiff(grad, 0.1, ti, to)
	assert.True(t, errors.Is(err, matrix.ErrShapeMismatch), "finite diff: got %v", err)
}

func TestDescent(t *testing.T) {
	ti, to := xorData(t)
	g := randomGate(1234)
	grad := New(DefaultConf())

	start, err := g.Loss(ti, to)
	require.NoError(t, err)
	prev := start
	var increases int
	for i := 0; i < 100; i++ {
		require.NoError(t, g.FiniteDiff(grad, 1e-4, ti, to))
		require.NoError(t, g.Learn(grad, 0.1))
		l, err := g.Loss(ti, to)
		require.NoError(t, err)
		if l > prev {
			increases++
		}
		prev = l
	}
	assert.True(t, prev < start, "loss went from %v to %v", start, prev)
	assert.True(t, increases <= 5, "loss increased on %d of 100 steps", increases)
}

func TestXOR(t *testing.T) {
	if testing.Short() {
		t.Skip("trains for 50k iterations")
	}
	ti, to := xorData(t)

	// a 2-2-1 sigmoid net can settle in a local minimum from an unlucky start,
	// so try a handful of seeds.
	for seed := int64(1); seed <= 10; seed++ {
		g := randomGate(seed)
		grad := New(DefaultConf())
		for i := 0; i < 50*1000; i++ {
			require.NoError(t, g.FiniteDiff(grad, 1e-1, ti, to))
			require.NoError(t, g.Learn(grad, 1e-1))
		}
		l, err := g.Loss(ti, to)
		require.NoError(t, err)
		if l >= 0.05 {
			t.Logf("seed %d: stuck at loss %v", seed, l)
			continue
		}

		var misses int
		for i := 0; i < ti.Rows(); i++ {
			row, err := ti.Row(i)
			require.NoError(t, err)
			require.NoError(t, matrix.Copy(g.X, row))
			require.NoError(t, g.Forward())
			if d := math.Abs(g.A2.At(0, 0) - to.At(i, 0)); d > 0.2 {
				t.Logf("seed %d: %v ^ %v is off by %v", seed, row.At(0, 0), row.At(0, 1), d)
				misses++
			}
		}
		if misses == 0 {
			t.Logf("seed %d converged to loss %v", seed, l)
			return
		}
	}
	t.Fatal("no seed converged to loss < 0.05")
}
