package selfplay

import (
	"math/rand"
	"testing"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mlp"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

func smallNetwork() *mlp.Network {
	r := rand.New(rand.NewSource(21))
	return mlp.New(game.NumFeatures, int(game.NumActions), r)
}

func TestPlayEpisodeTerminatesAndBackfillsValue(t *testing.T) {
	params := game.DefaultParams
	net := smallNetwork()
	src := rng.NewSeeded(1)

	examples := PlayEpisode(&params, net, src)
	if len(examples) == 0 {
		t.Fatal("expected at least one example from a played episode")
	}
	v := examples[0].Value
	for i, ex := range examples {
		if ex.Value != v {
			t.Fatalf("example %d has value %v, want %v (backfilled uniformly)", i, ex.Value, v)
		}
		if v < 0 || v > 1 {
			t.Fatalf("backfilled value %v out of [0,1] range", v)
		}
	}
}

func TestBufferEvictsOldestOverCapacity(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < BufferCap+50; i++ {
		b.Add(Example{Value: float64(i)})
	}
	if b.Len() != BufferCap {
		t.Fatalf("Len() = %d, want %d", b.Len(), BufferCap)
	}
}

func TestRunIterationAccumulatesExamples(t *testing.T) {
	params := game.DefaultParams
	net := smallNetwork()
	src := rng.NewSeeded(2)
	buf := NewBuffer()

	for i := 0; i < 3; i++ {
		RunIteration(&params, net, buf, src)
	}
	if buf.Len() == 0 {
		t.Fatal("expected buffer to accumulate examples across iterations")
	}
}
