package rules

import (
	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

// conditionTransition gives the probability of moving from each condition
// into Good, Excellent, and Poor; whatever probability remains is Normal
// (spec §4.5). Excellent is always followed by Poor with certainty, and
// Good and Poor always revert to Normal; only the Normal row is random.
type conditionTransition struct {
	good, excellent, poor float64
}

var transitions = map[game.Condition]conditionTransition{
	// Excellent is intentionally never sampled from Normal.
	game.Normal:    {good: 0.25, excellent: 0, poor: 0},
	game.Good:      {good: 0, excellent: 0, poor: 0},
	game.Excellent: {good: 0, excellent: 0, poor: 1},
	// Poor always reverts to Normal deterministically.
	game.Poor: {good: 0, excellent: 0, poor: 0},
}

// NextCondition draws the following turn's condition given the current
// one, following the weighted-coin-flip pattern of the teacher's
// applyFoodRules (spec §4.5: roll once, consult cumulative buckets in a
// fixed order). Grounded on rules/food.go's explicit *rand.Rand threading,
// now via rng.Source.
func NextCondition(current game.Condition, src *rng.Source) game.Condition {
	t, ok := transitions[current]
	if !ok {
		t = transitions[game.Normal]
	}
	u := src.Uniform()
	switch {
	case u < t.excellent:
		return game.Excellent
	case u < t.excellent+t.good:
		return game.Good
	case u < t.excellent+t.good+t.poor:
		return game.Poor
	default:
		return game.Normal
	}
}
