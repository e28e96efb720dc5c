package rules

import "github.com/hantaoyin/ffxiv-crafting-mcts/game"

// Score returns the terminal training signal for a finished craft: the
// fraction of max quality achieved on success, or 0 on failure (spec
// §4.7/§4.8). Undefined on a non-terminal state. Grounded on
// rules/rules.go's GetResult, which plays the same role (a terminal-only
// scalar the search backs up), generalized from a fixed win/loss value to
// the continuous quality fraction this domain needs.
func Score(s *game.State) float64 {
	if !s.IsSuccess() {
		return 0
	}
	if s.Params.MaxQuality <= 0 {
		return 0
	}
	frac := float64(s.Quality) / float64(s.Params.MaxQuality)
	if frac > 1 {
		frac = 1
	}
	return frac
}
