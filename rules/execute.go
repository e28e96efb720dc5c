package rules

import (
	"fmt"

	"github.com/hantaoyin/ffxiv-crafting-mcts/game"
	"github.com/hantaoyin/ffxiv-crafting-mcts/rng"
)

// buffDuration is the number of turns a buff lasts once applied, counting
// the turn it was applied on (spec §4.4). Buffs not listed here are never
// set by an action and only ever read.
var buffDuration = map[game.Buff]uint8{
	game.BuffGreatStrides:   3,
	game.BuffInnovation:     4,
	game.BuffManipulation:   8,
	game.BuffWasteNot:       4,
	game.BuffWasteNotII:     8,
	game.BuffIngenuity:      5,
	game.BuffFinalAppraisal: 5,
	game.BuffMuscleMemory:   5,
	game.BuffObserve:        1,
}

// touchFamily increments InnerQuiet by one on success, up to the cap.
// PreciseTouch and PreparatoryTouch grant two instead (see their own branch
// in applyQuality).
var touchFamily = map[game.Action]bool{
	game.BasicTouch:        true,
	game.StandardTouch:     true,
	game.HastyTouch:        true,
	game.FocusedTouch:      true,
	game.PrudentTouch:      true,
	game.DelicateSynthesis: true, // Open Question (a): follows the touch branch
	game.Reflect:           true,
}

// doubleTouchFamily increments InnerQuiet by two on success, up to the cap.
var doubleTouchFamily = map[game.Action]bool{
	game.PreciseTouch:     true,
	game.PreparatoryTouch: true,
}

const maxInnerQuiet = 11

// Execute deterministically applies action to state given a success roll
// (caller decides success via rng.Bernoulli beforehand — see Step). Clones
// rather than mutating in place, following rules/rules.go's NextState
// idiom. Panics (via game.State.CheckInvariants) if the result violates an
// invariant — this is a programmer error, not a gameplay outcome (spec
// §7).
func Execute(s *game.State, a game.Action, success bool) *game.State {
	if !CanExecute(s, a) {
		panic(fmt.Sprintf("rules.Execute: action %d not legal for state %s", a, s))
	}
	ns := s.Clone()
	row := game.Actions[a]

	// The Observe window is one action wide: whatever this action is, it
	// consumes the pending flag. Observe itself re-sets it below, in
	// applySideEffects, if it succeeds.
	ns.Buff[game.BuffObserve] = 0

	applyCPCost(ns, a, row)

	if success {
		applyProgress(ns, a, row)
		applyQuality(ns, a, row)
		applySideEffects(ns, a)
	} else if a == game.PatientTouch {
		// Failure-only effect: inner quiet is halved, rounding up.
		ns.InnerQuiet = (ns.InnerQuiet + 1) / 2
	}

	applyDurability(ns, a, row)
	applyManipulationRegen(ns, s, a)
	tickBuffs(ns)
	ns.Buff[game.BuffFirstStep] = 0

	if ns.Durability < 0 {
		ns.Durability = 0
	}

	ns.CheckInvariants()
	return ns
}

// Step performs one full turn: rolls success for action against its table
// percentage, executes it, and advances the condition Markov chain for the
// next turn (spec §4.4/§4.5). It is the entry point MCTS simulation and
// self-play both call.
func Step(s *game.State, a game.Action, src *rng.Source) *game.State {
	row := game.Actions[a]
	// Spec §4.6: an Observe taken the turn before pins the next Focused
	// Synthesis/Touch to guaranteed success.
	pinned := s.Buff[game.BuffObserve] > 0 && (a == game.FocusedSynthesis || a == game.FocusedTouch)
	success := pinned || src.Bernoulli(float64(row.SuccessPercent)/100)
	ns := Execute(s, a, success)
	if !ns.IsTerminal() {
		ns.Condition = NextCondition(ns.Condition, src)
	}
	return ns
}

func applyCPCost(s *game.State, a game.Action, row game.ActionRow) {
	s.CP += row.DCP
	if s.CP > s.Params.MaxCP {
		s.CP = s.Params.MaxCP
	}
}

func applyProgress(s *game.State, a game.Action, row game.ActionRow) {
	if !row.HasProgress() {
		return
	}
	base := s.Params.BaseProgress
	if s.Buff[game.BuffIngenuity] > 0 {
		base = s.Params.IngenuityProgress
	}
	delta := int16(base * float64(row.EfficiencyPercent) / 100)

	if s.Buff[game.BuffFinalAppraisal] > 0 && s.Progress+delta >= s.Params.MaxProgress {
		// Open Question (b): Final Appraisal caps progress at max-1 and is
		// consumed even if the uncapped result would have landed exactly
		// on the boundary.
		s.Progress = s.Params.MaxProgress - 1
		s.Buff[game.BuffFinalAppraisal] = 0
		return
	}

	s.Progress += delta
	if s.Progress > s.Params.MaxProgress {
		s.Progress = s.Params.MaxProgress
	}
}

func applyQuality(s *game.State, a game.Action, row game.ActionRow) {
	if !row.HasQuality() {
		return
	}

	efficiency := float64(row.EfficiencyPercent) / 100
	if a == game.ByregotsBlessing {
		// Byregot's Blessing folds inner quiet into its own efficiency
		// term (1.0 + 0.2*(iq-1)), on top of the generic control bonus
		// every quality action uses below.
		efficiency = 1.0 + 0.2*(float64(s.InnerQuiet)-1)
	}

	coef := s.Params.BaseQualityCoef
	if s.Buff[game.BuffIngenuity] > 0 {
		coef = s.Params.IngenuityQualityCoef
	}

	// Control term (spec §4.4 step 3): inner quiet scales control up to
	// base_control+3000, and control itself feeds a diminishing-returns
	// quality multiplier.
	iqBonus := float64(s.InnerQuiet) - 1
	if iqBonus < 0 {
		iqBonus = 0
	}
	control := float64(s.Params.BaseControl) * (1 + 0.2*iqBonus)
	if maxControl := float64(s.Params.BaseControl) + 3000; control > maxControl {
		control = maxControl
	}
	controlMultiplier := 1 + 0.01*control*(1+0.0001*control)

	conditionMultiplier := s.Condition.QualityFactor()

	buffMultiplier := 1.0
	if s.Buff[game.BuffInnovation] > 0 {
		buffMultiplier *= 1.2
	}
	if s.Buff[game.BuffGreatStrides] > 0 {
		buffMultiplier *= 2.0
		s.Buff[game.BuffGreatStrides] = 0
	}

	delta := int16(coef * efficiency * controlMultiplier * conditionMultiplier * buffMultiplier)
	s.Quality += delta
	if s.Quality > s.Params.MaxQuality {
		s.Quality = s.Params.MaxQuality
	}

	if a == game.ByregotsBlessing {
		s.InnerQuiet = 0
		return
	}
	if doubleTouchFamily[a] {
		iq := int(s.InnerQuiet) + 2
		if iq > maxInnerQuiet {
			iq = maxInnerQuiet
		}
		s.InnerQuiet = uint8(iq)
		return
	}
	if touchFamily[a] {
		if s.InnerQuiet < maxInnerQuiet {
			s.InnerQuiet++
		}
	}
}

func applySideEffects(s *game.State, a game.Action) {
	switch a {
	case game.InnerQuietAction:
		if s.InnerQuiet < maxInnerQuiet {
			s.InnerQuiet++
		}
	case game.PatientTouch:
		// Patient Touch carries no quality flag, so its success effect on
		// inner quiet lives here rather than in applyQuality.
		iq := int(s.InnerQuiet) * 2
		if iq > maxInnerQuiet {
			iq = maxInnerQuiet
		}
		s.InnerQuiet = uint8(iq)
	case game.MastersMend:
		s.Durability += 30
		if s.Durability > s.Params.MaxDurability {
			s.Durability = s.Params.MaxDurability
		}
	case game.Manipulation:
		s.Buff[game.BuffManipulation] = buffDuration[game.BuffManipulation]
	case game.WasteNot:
		s.Buff[game.BuffWasteNot] = buffDuration[game.BuffWasteNot]
	case game.WasteNotII:
		s.Buff[game.BuffWasteNotII] = buffDuration[game.BuffWasteNotII]
	case game.Innovation:
		s.Buff[game.BuffInnovation] = buffDuration[game.BuffInnovation]
	case game.GreatStrides:
		s.Buff[game.BuffGreatStrides] = buffDuration[game.BuffGreatStrides]
	case game.Ingenuity:
		s.Buff[game.BuffIngenuity] = buffDuration[game.BuffIngenuity]
	case game.FinalAppraisal:
		s.Buff[game.BuffFinalAppraisal] = buffDuration[game.BuffFinalAppraisal]
	case game.MuscleMemory:
		s.Buff[game.BuffMuscleMemory] = buffDuration[game.BuffMuscleMemory]
	case game.Observe:
		s.Buff[game.BuffObserve] = buffDuration[game.BuffObserve]
	}
}

func applyDurability(s *game.State, a game.Action, row game.ActionRow) {
	loss := row.DDurability
	if loss >= 0 {
		return
	}
	if s.Buff[game.BuffWasteNot] > 0 || s.Buff[game.BuffWasteNotII] > 0 {
		// Prudent Touch, the one action whose cost is not a multiple of 10,
		// is illegal while either buff is active, so the halved cost keeps
		// durability a multiple of 5.
		loss = loss / 2
	}
	s.Durability += loss
}

// applyManipulationRegen restores 5 durability, clamped to MaxDurability,
// when Manipulation was already active entering the turn and the action
// taken was not Manipulation itself (spec §4.4 step 5). prev is the state
// the turn started from, so the check is unaffected by whatever this turn's
// applySideEffects just did to ns's own counter.
func applyManipulationRegen(ns, prev *game.State, a game.Action) {
	if a == game.Manipulation || prev.Buff[game.BuffManipulation] == 0 {
		return
	}
	ns.Durability += 5
	if ns.Durability > ns.Params.MaxDurability {
		ns.Durability = ns.Params.MaxDurability
	}
}

func tickBuffs(s *game.State) {
	for b := game.Buff(0); b < game.NumBuffs; b++ {
		if b == game.BuffFirstStep || b == game.BuffObserve {
			// FirstStep is cleared explicitly once consumed; BuffObserve's
			// one-action window is consumed explicitly at the top of
			// Execute instead of decaying via the generic countdown.
			continue
		}
		if s.Buff[b] > 0 {
			s.Buff[b]--
		}
	}
}
