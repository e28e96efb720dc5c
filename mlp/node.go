package mlp

import (
	"math"
	"math/rand"
)

// Kind tags which variant of computation a Node performs. spec §9 calls
// for a tagged-variant node shape rather than a type-per-kind hierarchy
// with dynamic dispatch, since the graph is small, fixed at construction,
// and walked linearly — a single concrete Node type with a Kind field
// keeps forward/backward next to the data they operate on.
type Kind int

const (
	// Affine computes Out = W*In + B.
	Affine Kind = iota
	// LeakyReLU computes Out[i] = In[i] if In[i] > 0 else Alpha*In[i].
	LeakyReLU
	// Head splits its input into policy logits (softmax) and a value
	// logit (sigmoid, shifted by ValueSigmoidBias), matching spec §4.8's
	// combined softmax+sigmoid output layer.
	Head
)

// ValueSigmoidBias is subtracted from the raw value logit before the
// sigmoid so that a freshly initialized network (whose affine weights
// start near zero, see NewAffine) outputs a value near zero rather than
// 0.5 — spec §9's "near-zero value head init" requirement.
const ValueSigmoidBias = 10.0

// Node is one layer of the computation graph. In and Out are the edges it
// reads from and writes to; the gradient buffers of In are where Backward
// accumulates the upstream gradient.
type Node struct {
	Kind Kind
	In   *Edge
	Out  *Edge

	// Affine-only.
	W     [][]float64 // Out-width rows, In-width columns.
	B     []float64
	WGrad [][]float64
	BGrad []float64

	// LeakyReLU-only.
	Alpha float64

	// Head-only: NumActions is the policy width; Out has NumActions+1
	// entries (policy logits' softmax, followed by the value).
	NumActions int
}

// initScale is the spread of the near-zero uniform initializer spec §4.8
// requires for every weight and bias: 0.001*(U(0,1)-0.5).
const initScale = 0.001

func initValue(r *rand.Rand) float64 {
	return initScale * (r.Float64() - 0.5)
}

// NewAffine builds a fully-connected layer mapping inWidth to outWidth,
// with every weight and bias drawn independently from the same near-zero
// uniform range (spec §4.8), so training starts deep in the network's
// linear regime.
func NewAffine(inWidth, outWidth int, r *rand.Rand) *Node {
	w := make([][]float64, outWidth)
	wg := make([][]float64, outWidth)
	b := make([]float64, outWidth)
	for i := range w {
		w[i] = make([]float64, inWidth)
		wg[i] = make([]float64, inWidth)
		for j := range w[i] {
			w[i][j] = initValue(r)
		}
		b[i] = initValue(r)
	}
	return &Node{
		Kind:  Affine,
		In:    NewEdge(inWidth),
		Out:   NewEdge(outWidth),
		W:     w,
		B:     b,
		WGrad: wg,
		BGrad: make([]float64, outWidth),
	}
}

// NewLeakyReLU builds an elementwise leaky-ReLU layer of the given width.
func NewLeakyReLU(width int, alpha float64) *Node {
	return &Node{
		Kind:  LeakyReLU,
		In:    NewEdge(width),
		Out:   NewEdge(width),
		Alpha: alpha,
	}
}

// NewHead builds the combined policy/value output layer. In must have
// numActions+1 entries (policy logits followed by the raw value logit);
// Out has the same width (softmax probabilities followed by the sigmoid
// value).
func NewHead(numActions int) *Node {
	width := numActions + 1
	return &Node{
		Kind:       Head,
		In:         NewEdge(width),
		Out:        NewEdge(width),
		NumActions: numActions,
	}
}

// Forward computes n.Out.Value from n.In.Value.
func (n *Node) Forward() {
	switch n.Kind {
	case Affine:
		for i := range n.W {
			sum := n.B[i]
			row := n.W[i]
			for j, x := range n.In.Value {
				sum += row[j] * x
			}
			n.Out.Value[i] = sum
		}
	case LeakyReLU:
		for i, x := range n.In.Value {
			if x > 0 {
				n.Out.Value[i] = x
			} else {
				n.Out.Value[i] = n.Alpha * x
			}
		}
	case Head:
		n.forwardHead()
	}
}

func (n *Node) forwardHead() {
	logits := n.In.Value[:n.NumActions]
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	probs := n.Out.Value[:n.NumActions]
	for i, v := range logits {
		e := math.Exp(v - maxLogit)
		probs[i] = e
		sum += e
	}
	for i := range probs {
		probs[i] /= sum
	}

	valueRaw := n.In.Value[n.NumActions] - ValueSigmoidBias
	n.Out.Value[n.NumActions] = 1 / (1 + math.Exp(-valueRaw))
}

// Backward propagates n.Out.Grad into n.In.Grad (accumulating, so callers
// must ZeroGrad before a fresh pass) and, for Affine, accumulates into
// WGrad/BGrad.
func (n *Node) Backward() {
	switch n.Kind {
	case Affine:
		n.backwardAffine()
	case LeakyReLU:
		for i, x := range n.In.Value {
			slope := 1.0
			if x <= 0 {
				slope = n.Alpha
			}
			n.In.Grad[i] += n.Out.Grad[i] * slope
		}
	case Head:
		// The Head node's gradient is seeded directly by the loss
		// functions in train.go (softmax cross-entropy and the
		// squared-log-ratio value loss both have closed-form input-logit
		// gradients that skip the Out.Grad intermediate) — Backward is a
		// no-op here.
	}
}

func (n *Node) backwardAffine() {
	for i, row := range n.W {
		g := n.Out.Grad[i]
		if g == 0 {
			continue
		}
		n.BGrad[i] += g
		wg := n.WGrad[i]
		for j, x := range n.In.Value {
			wg[j] += g * x
			n.In.Grad[j] += g * row[j]
		}
	}
}

// ZeroParamGrad clears WGrad/BGrad for an Affine node.
func (n *Node) ZeroParamGrad() {
	if n.Kind != Affine {
		return
	}
	for i := range n.WGrad {
		for j := range n.WGrad[i] {
			n.WGrad[i][j] = 0
		}
	}
	for i := range n.BGrad {
		n.BGrad[i] = 0
	}
}

// weightDecay is the L2 decay coefficient (spec §4.8's lambda) applied to
// every weight and bias on each update, via the (1-2*lambda*stepSize)
// multiplicative factor standard for L2-regularized gradient descent.
const weightDecay = 0.002

// ApplyGradient performs one gradient-descent step on an Affine node's
// parameters with the given step size, including L2 weight decay.
func (n *Node) ApplyGradient(stepSize float64) {
	if n.Kind != Affine {
		return
	}
	decay := 1 - 2*weightDecay*stepSize
	for i := range n.W {
		for j := range n.W[i] {
			n.W[i][j] = n.W[i][j]*decay - stepSize*n.WGrad[i][j]
		}
		n.B[i] = n.B[i]*decay - stepSize*n.BGrad[i]
	}
}
