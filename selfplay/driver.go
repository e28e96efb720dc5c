package selfplay

import (
	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mcts"
	"github.com/hantaoyin/ffxiv-crafting-mcts/mlp"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rules"
)

// Driver constants (spec §4.10): SimulateCount simulations feed each move
// decision, InvTemp sharpens the visit-count policy target, StepSize is
// the network's gradient-descent learning rate, and BatchSize is the
// minibatch drawn from the replay buffer once per iteration.
const (
	SimulateCount = 10000
	InvTemp       = 1.5
	StepSize      = 1e-5
	BatchSize     = 100
)

// PlayEpisode plays one full craft to completion, running a fresh MCTS
// search at every move, and returns one training Example per move with
// the terminal score backfilled into every example's Value field — the
// single-player analogue of executor/selfplay/worker.go's per-turn
// archive rows plus end-of-game value backfill.
//
// Two distinct distributions come out of each search (spec §4.9):
// mcts.PolicyTarget is the floored, full-action-space label stored for
// training, while mcts.Select is the raw visit-count sample over legal
// actions only that actually decides the move played. A resignation from
// Select (every legal action unvisited, or none legal at all) ends the
// episode in place rather than stepping into an undefined move; the
// terminal score of the resulting non-terminal state is 0, the same
// failure signal a durability-out loss would produce.
func PlayEpisode(params *game.CraftParams, net *mlp.Network, src *rng.Source) []Example {
	state := game.NewInitial(params)
	var examples []Example

	for !state.IsTerminal() {
		legal := rules.LegalActions(state)

		table := mcts.Search(state, net, SimulateCount, src)
		target := mcts.PolicyTarget(table, state, legal, InvTemp)

		examples = append(examples, Example{
			Features:     state.Features(),
			PolicyTarget: target,
		})

		action, resign := mcts.Select(table, state, legal, InvTemp, src)
		if resign {
			break
		}
		state = rules.Step(state, action, src)
	}

	score := rules.Score(state)
	for i := range examples {
		examples[i].Value = score
	}
	return examples
}

// RunIteration plays one self-play episode, appends its examples to buf,
// and — once the buffer holds at least one full minibatch — trains net on
// a freshly sampled minibatch. Returns the number of moves played.
func RunIteration(params *game.CraftParams, net *mlp.Network, buf *Buffer, src *rng.Source) int {
	examples := PlayEpisode(params, net, src)
	buf.Add(examples...)

	if buf.Len() >= BatchSize {
		batch := buf.Sample(BatchSize, src)
		for _, ex := range batch {
			net.Train(ex.Features[:], ex.PolicyTarget, ex.Value, StepSize)
		}
	}
	return len(examples)
}
