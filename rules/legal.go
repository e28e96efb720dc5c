// Package rules implements legality checking, execution, and condition
// dynamics for crafting states. It mirrors the teacher's split: game.State
// carries no behaviour, rules operates on it through free functions taking
// *game.State, following the GetLegalMoves/NextState style of the
// teacher's rules/rules.go.
package rules

import "github.com/hantaoyin/ffxiv-crafting-mcts/game"

// CanExecute reports whether action can legally be executed from state
// (spec §4.2's can_execute): in range, in the supported set, CP-affordable,
// and passing every action-specific precondition (condition gating, buff
// counters, inner-quiet thresholds).
func CanExecute(s *game.State, a game.Action) bool {
	if s.IsTerminal() {
		return false
	}
	if a < 0 || a >= game.NumActions {
		return false
	}
	if !game.Actions[a].Supported {
		return false
	}
	row := game.Actions[a]

	cost := effectiveCPCost(s, a, row)
	if s.CP+cost < 0 {
		return false
	}

	switch a {
	case game.MuscleMemory, game.Reflect:
		if s.Buff[game.BuffFirstStep] == 0 {
			return false
		}
	}

	switch a {
	case game.IntensiveSynthesis, game.PreciseTouch:
		if s.Condition != game.Good && s.Condition != game.Excellent {
			return false
		}
	case game.TricksOfTheTrade:
		if s.Condition != game.Good && s.Condition != game.Excellent {
			return false
		}
	}

	switch a {
	case game.ByregotsBlessing:
		if s.InnerQuiet <= 1 {
			return false
		}
	case game.PrudentTouch:
		if s.Buff[game.BuffWasteNot] > 0 || s.Buff[game.BuffWasteNotII] > 0 {
			return false
		}
	case game.FinalAppraisal:
		if s.Buff[game.BuffFinalAppraisal] > 0 {
			return false
		}
	case game.InnerQuietAction:
		if s.InnerQuiet != 0 {
			return false
		}
	case game.Innovation:
		if s.Buff[game.BuffInnovation] > 0 {
			return false
		}
	}

	return true
}

// IsActionValid reports whether action is currently legal per CanExecute
// and would not force the craft into a failed terminal even in its best
// (guaranteed-success) case (spec §4.3).
func IsActionValid(s *game.State, a game.Action) bool {
	if !CanExecute(s, a) {
		return false
	}
	return !wouldForceFailure(s, a)
}

// wouldForceFailure reports whether executing a, even assuming it
// succeeds, deterministically ends the craft in failure (durability
// exhausted with progress short of complete). Success is forced here
// because every component of the simulation that can fail a craft
// outright — durability loss — is itself independent of the success
// roll, so simulating the best case is enough to detect a forced loss.
func wouldForceFailure(s *game.State, a game.Action) bool {
	ns := Execute(s, a, true)
	return ns.IsTerminal() && !ns.IsSuccess()
}

// LegalActions returns every currently-valid supported action, in table
// order. Grounded on rules/rules.go's GetLegalMoves shape (collect into a
// slice, single pass over the fixed catalogue).
func LegalActions(s *game.State) []game.Action {
	out := make([]game.Action, 0, game.NumActions)
	for a := game.Action(0); a < game.NumActions; a++ {
		if IsActionValid(s, a) {
			out = append(out, a)
		}
	}
	return out
}

// effectiveCPCost returns the action's table CP delta unmodified for every
// action; Tricks of the Trade's Good/Excellent gate is checked in CanExecute.
func effectiveCPCost(s *game.State, a game.Action, row game.ActionRow) int16 {
	return row.DCP
}
