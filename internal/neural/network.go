// Package neural provides the small feed-forward network used as a jump predictor.
package neural

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
)

// NumInputs is the observation width: (dy, dx).
const NumInputs = 2

// Adam hyperparameters.
const (
	beta1   = 0.9
	beta2   = 0.999
	epsilon = 1e-8
)

// Network is a 2-H-1 dense network: sigmoid hidden layer, linear output,
// trained on mean squared error with full-batch Adam.
type Network struct {
	w1 *mat.Dense    // hidden x inputs
	b1 *mat.VecDense // hidden
	w2 *mat.VecDense // hidden -> output weights
	b2 []float64     // single output bias, a slice so Adam can update it in place

	epochs int
	lr     float64
	opt    *adam
}

// New creates a randomly initialized network.
func New(rng *rand.Rand, hidden, epochs int, lr float64) *Network {
	if hidden < 1 {
		hidden = 1
	}

	// Xavier initialization
	scale1 := math.Sqrt(2.0 / float64(NumInputs))
	scale2 := math.Sqrt(2.0 / float64(hidden))

	w1 := make([]float64, hidden*NumInputs)
	for i := range w1 {
		w1[i] = rng.NormFloat64() * scale1
	}
	w2 := make([]float64, hidden)
	for i := range w2 {
		w2[i] = rng.NormFloat64() * scale2
	}

	n := &Network{
		w1:     mat.NewDense(hidden, NumInputs, w1),
		b1:     mat.NewVecDense(hidden, nil),
		w2:     mat.NewVecDense(hidden, w2),
		b2:     []float64{0},
		epochs: epochs,
		lr:     lr,
	}
	n.opt = newAdam(n.params(), lr)
	return n
}

// Factory returns a constructor for networks shaped by the config.
// Each call draws fresh weights from rng.
func Factory(rng *rand.Rand, cfg config.NetworkConfig) func() agent.Predictor {
	return func() agent.Predictor {
		return New(rng, cfg.Hidden, cfg.Epochs, cfg.LearningRate)
	}
}

// Hidden returns the hidden layer width.
func (n *Network) Hidden() int {
	r, _ := n.w1.Dims()
	return r
}

// Predict implements agent.Predictor.
func (n *Network) Predict(input [2]float64) float64 {
	x := mat.NewVecDense(NumInputs, []float64{input[0], input[1]})

	var h mat.VecDense
	h.MulVec(n.w1, x)
	h.AddVec(&h, n.b1)
	for i := 0; i < h.Len(); i++ {
		h.SetVec(i, sigmoid(h.AtVec(i)))
	}

	return mat.Dot(n.w2, &h) + n.b2[0]
}

// Train implements agent.Predictor.
func (n *Network) Train(samples []agent.Sample) {
	if len(samples) == 0 || n.epochs <= 0 {
		return
	}
	x, y := batch(samples)
	for epoch := 0; epoch < n.epochs; epoch++ {
		n.opt.step(n.params(), n.gradients(x, y))
	}
}

// Loss returns the mean squared error over samples.
func (n *Network) Loss(samples []agent.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		d := n.Predict(s.Input) - s.Label
		sum += d * d
	}
	return sum / float64(len(samples))
}

// params returns views of every trainable parameter, in a fixed order.
func (n *Network) params() [][]float64 {
	return [][]float64{
		n.w1.RawMatrix().Data,
		n.b1.RawVector().Data,
		n.w2.RawVector().Data,
		n.b2,
	}
}

// gradients runs one forward/backward pass over the batch.
// Returned slices line up with params().
func (n *Network) gradients(x *mat.Dense, y *mat.VecDense) [][]float64 {
	m, _ := x.Dims()
	hidden := n.Hidden()

	// Forward: H = sigmoid(X W1^T + b1), out = H w2 + b2
	var h mat.Dense
	h.Mul(x, n.w1.T())
	h.Apply(func(_, j int, v float64) float64 {
		return sigmoid(v + n.b1.AtVec(j))
	}, &h)

	var out mat.VecDense
	out.MulVec(&h, n.w2)

	// dLoss/dOut = 2/m * (out + b2 - y)
	dOut := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		dOut.SetVec(i, 2/float64(m)*(out.AtVec(i)+n.b2[0]-y.AtVec(i)))
	}

	var dW2 mat.VecDense
	dW2.MulVec(h.T(), dOut)
	dB2 := mat.Sum(dOut)

	// dZ1 = (dOut w2^T) * H * (1 - H)
	var dZ1 mat.Dense
	dZ1.Outer(1, dOut, n.w2)
	dZ1.Apply(func(i, j int, v float64) float64 {
		a := h.At(i, j)
		return v * a * (1 - a)
	}, &dZ1)

	var dW1 mat.Dense
	dW1.Mul(dZ1.T(), x)

	dB1 := make([]float64, hidden)
	for j := 0; j < hidden; j++ {
		dB1[j] = mat.Sum(dZ1.ColView(j))
	}

	return [][]float64{
		dW1.RawMatrix().Data,
		dB1,
		dW2.RawVector().Data,
		{dB2},
	}
}

// batch packs samples into an input matrix and a label vector.
func batch(samples []agent.Sample) (*mat.Dense, *mat.VecDense) {
	x := mat.NewDense(len(samples), NumInputs, nil)
	y := mat.NewVecDense(len(samples), nil)
	for i, s := range samples {
		x.SetRow(i, s.Input[:])
		y.SetVec(i, s.Label)
	}
	return x, y
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// adam keeps first and second moment estimates for each parameter slice.
type adam struct {
	lr   float64
	t    int
	m, v [][]float64
}

func newAdam(params [][]float64, lr float64) *adam {
	a := &adam{
		lr: lr,
		m:  make([][]float64, len(params)),
		v:  make([][]float64, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float64, len(p))
		a.v[i] = make([]float64, len(p))
	}
	return a
}

func (a *adam) step(params, grads [][]float64) {
	a.t++
	c1 := 1 - math.Pow(beta1, float64(a.t))
	c2 := 1 - math.Pow(beta2, float64(a.t))

	for i, p := range params {
		for j := range p {
			g := grads[i][j]
			a.m[i][j] = beta1*a.m[i][j] + (1-beta1)*g
			a.v[i][j] = beta2*a.v[i][j] + (1-beta2)*g*g
			p[j] -= a.lr * (a.m[i][j] / c1) / (math.Sqrt(a.v[i][j]/c2) + epsilon)
		}
	}
}
