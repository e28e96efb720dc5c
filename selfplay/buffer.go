// Package selfplay drives the outer training loop: play a game guided by
// MCTS, backfill the terminal score into every step's example, feed a
// minibatch to the network. Grounded on executor/selfplay/worker.go's
// PlayGameWithOptions loop and archive2train/main.go's train-after-play
// sequencing.
package selfplay

import (
	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

// Example is one training row: a state's feature vector, the MCTS visit
// policy observed there, and the terminal score eventually backed up into
// it (spec §3.6).
type Example struct {
	Features     [game.NumFeatures]float64
	PolicyTarget []float64 // length game.NumActions
	Value        float64
}

// BufferCap is the FIFO training buffer's capacity (spec §3.6).
const BufferCap = 10000

// Buffer is a fixed-capacity FIFO of training examples. Grounded on
// executor/selfplay/worker.go's append-then-trim row accumulation,
// generalized from "trim once per game" to "evict from the front once
// over the cap."
type Buffer struct {
	examples []Example
}

// NewBuffer returns an empty buffer pre-sized to BufferCap.
func NewBuffer() *Buffer {
	return &Buffer{examples: make([]Example, 0, BufferCap)}
}

// Add appends examples, evicting the oldest entries if the buffer would
// exceed BufferCap.
func (b *Buffer) Add(examples ...Example) {
	b.examples = append(b.examples, examples...)
	if over := len(b.examples) - BufferCap; over > 0 {
		b.examples = b.examples[over:]
	}
}

// Len reports the current number of stored examples.
func (b *Buffer) Len() int {
	return len(b.examples)
}

// Sample draws n examples uniformly at random with replacement, the way
// a minibatch is drawn from a replay buffer.
func (b *Buffer) Sample(n int, src *rng.Source) []Example {
	out := make([]Example, n)
	for i := range out {
		out[i] = b.examples[src.Intn(len(b.examples))]
	}
	return out
}
