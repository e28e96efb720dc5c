package mcts

import (
	"math"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
)

// policyFloor is the literal weight spec §4.9's set_target substitutes for
// any action that is invalid or was never visited by the search, standing
// in for N_i^invTemp rather than being a post-normalization clamp.
const policyFloor = 0.1

// PolicyTarget converts the transposition table's visit counts at state
// into a training target over the full NumActions-wide action space
// (spec §4.9's set_target: it iterates over every action, valid or not,
// not just the legal subset). A legal action with at least one visit
// gets weight N_i^invTemp; every invalid action and every unvisited legal
// action gets the literal weight policyFloor instead. The whole array is
// then normalized in a single pass — there is no second,
// floor-then-renormalize step.
func PolicyTarget(t *Table, state *game.State, legal []game.Action, invTemp float64) []float64 {
	legalSet := make(map[game.Action]bool, len(legal))
	for _, a := range legal {
		legalSet[a] = true
	}

	h := state.Hash()
	weights := make([]float64, game.NumActions)
	var sum float64
	for a := game.Action(0); a < game.NumActions; a++ {
		w := policyFloor
		if legalSet[a] {
			if n := float64(t.edge(h, a).n); n > 0 {
				w = math.Pow(n, invTemp)
			}
		}
		weights[a] = w
		sum += w
	}

	out := make([]float64, game.NumActions)
	for a := range out {
		out[a] = weights[a] / sum
	}
	return out
}
