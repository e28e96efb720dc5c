// Package mlp implements the bespoke computation graph the self-play
// driver trains from scratch: a small feed-forward network with a
// combined policy/value head, forward and backward passes written by
// hand (spec §4.8/§9 — no corpus repo trains an in-process net; the only
// neural-net dependency in the pack, yalue/onnxruntime_go, serves
// inference against an already-trained ONNX file, so there is nothing to
// reuse for training itself).
package mlp

// Edge is a value vector flowing between nodes, paired with the gradient
// that backward passes accumulate into it. Grounded on the teacher's
// preference for small, explicit structs over generic tensor types
// (game.GameState, game.Snake) — the graph's wiring is the one place this
// codebase needs tensor-like data, and an Edge is the smallest shape that
// covers it.
type Edge struct {
	Value []float64
	Grad  []float64
}

// NewEdge allocates an Edge of the given width with a zeroed gradient.
func NewEdge(width int) *Edge {
	return &Edge{Value: make([]float64, width), Grad: make([]float64, width)}
}

// ZeroGrad clears the gradient buffer in place, ready for the next
// backward pass. Values are left untouched.
func (e *Edge) ZeroGrad() {
	for i := range e.Grad {
		e.Grad[i] = 0
	}
}
