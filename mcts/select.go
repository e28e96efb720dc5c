package mcts

import (
	"math"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

// Select picks the move actually played during self-play (spec §4.9's
// select(s,β)): a sample over legal actions only, weighted by raw visit
// count N_i^invTemp — distinct from PolicyTarget, which floors and covers
// the full action space for the training label. If every legal action's
// weight is zero (including the case of no legal actions at all), resign
// is true and action is the zero value; callers end the episode rather
// than stepping into an undefined move.
func Select(t *Table, state *game.State, legal []game.Action, invTemp float64, src *rng.Source) (action game.Action, resign bool) {
	if len(legal) == 0 {
		return 0, true
	}

	h := state.Hash()
	weights := make([]float64, len(legal))
	var sum float64
	for i, a := range legal {
		n := float64(t.edge(h, a).n)
		w := math.Pow(n, invTemp)
		weights[i] = w
		sum += w
	}
	if sum <= 0 {
		return 0, true
	}

	u := src.Uniform() * sum
	var cum float64
	for i, a := range legal {
		cum += weights[i]
		if u < cum {
			return a, false
		}
	}
	return legal[len(legal)-1], false
}
