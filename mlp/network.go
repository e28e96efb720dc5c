package mlp

import (
	"fmt"
	"math"
	"math/rand"
)

const leakyAlpha = 0.01

// Network is the full policy/value graph: two hidden affine+leaky-ReLU
// blocks feeding a combined softmax/sigmoid head.
type Network struct {
	layers []*Node
	head   *Node
}

// New builds a fresh network for the given input width (game.NumFeatures)
// and output action count (game.NumActions), seeded from r. Both hidden
// layers are sized at 2*numActions (spec §4.8), so the network scales with
// the action catalogue rather than a fixed width.
func New(inputWidth, numActions int, r *rand.Rand) *Network {
	hiddenWidth := 2 * numActions
	a1 := NewAffine(inputWidth, hiddenWidth, r)
	r1 := NewLeakyReLU(hiddenWidth, leakyAlpha)
	a2 := NewAffine(hiddenWidth, hiddenWidth, r)
	r2 := NewLeakyReLU(hiddenWidth, leakyAlpha)
	a3 := NewAffine(hiddenWidth, numActions+1, r)
	head := NewHead(numActions)

	wireSequential(a1, r1, a2, r2, a3, head)

	return &Network{
		layers: []*Node{a1, r1, a2, r2, a3},
		head:   head,
	}
}

// wireSequential shares each node's Out edge as the next node's In edge,
// so a single Forward/Backward walk threads values through without
// copying.
func wireSequential(nodes ...*Node) {
	for i := 0; i+1 < len(nodes); i++ {
		nodes[i+1].In = nodes[i].Out
	}
}

// Predict runs the forward pass and returns the policy distribution over
// actions and the scalar value estimate.
func (net *Network) Predict(features []float64) (policy []float64, value float64) {
	copy(net.layers[0].In.Value, features)
	for _, n := range net.layers {
		n.Forward()
	}
	net.head.Forward()

	probs := net.head.Out.Value[:net.head.NumActions]

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		panic(fmt.Sprintf("mlp: softmax output does not sum to 1 (got %v)", sum))
	}

	out := make([]float64, net.head.NumActions)
	copy(out, probs)
	return out, net.head.Out.Value[net.head.NumActions]
}

// zeroGradients clears every node's input gradient and, for affine nodes,
// the parameter gradients, ahead of a fresh backward pass.
func (net *Network) zeroGradients() {
	for _, n := range net.layers {
		n.In.ZeroGrad()
		n.ZeroParamGrad()
	}
	net.head.In.ZeroGrad()
}

// applyGradients performs one gradient-descent step across every affine
// layer's parameters.
func (net *Network) applyGradients(stepSize float64) {
	for _, n := range net.layers {
		n.ApplyGradient(stepSize)
	}
}
