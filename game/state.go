package game

import "fmt"

// CraftParams are the immutable per-run constants derived from a
// recipe+character pair (spec §3.2). They are compiled-in for the
// canonical build but may be loaded from a config file — see cmd/train's
// loadParams.
type CraftParams struct {
	MaxCP                int16
	MaxDurability        int16 // <= 120
	BaseControl          int32
	MaxProgress          int16
	MaxQuality           int16
	BaseProgress         float64
	IngenuityProgress    float64
	BaseQualityCoef      float64
	IngenuityQualityCoef float64
}

// DefaultParams is the compiled-in recipe/character pair used when no
// config file is given.
var DefaultParams = CraftParams{
	MaxCP:                500,
	MaxDurability:         80,
	BaseControl:           2000,
	MaxProgress:           3000,
	MaxQuality:            8000,
	BaseProgress:          100,
	IngenuityProgress:     130,
	BaseQualityCoef:       40,
	IngenuityQualityCoef:  52,
}

// State is the mutable crafting state (spec §3.3). Once terminal it is
// frozen: callers must not call Execute/Step on it again.
type State struct {
	Params *CraftParams

	CP         int16
	Progress   int16
	Quality    int16
	Durability int16
	InnerQuiet uint8
	Condition  Condition
	Buff       [NumBuffs]uint8
}

// NewInitial returns the opening state for a fresh craft: all resources
// full, InnerQuiet inactive, Normal condition, only the FirstStep
// pseudo-status active.
func NewInitial(params *CraftParams) *State {
	s := &State{
		Params:     params,
		CP:         params.MaxCP,
		Progress:   0,
		Quality:    0,
		Durability: params.MaxDurability,
		InnerQuiet: 0,
		Condition:  Normal,
	}
	s.Buff[BuffFirstStep] = 1
	return s
}

// Clone performs a deep copy of the state (Params is shared, not copied —
// it is immutable for the run). Mirrors the teacher's GameState.Clone.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// IsTerminal reports whether the craft has ended: success (progress has
// met the target) or failure (durability has been exhausted).
func (s *State) IsTerminal() bool {
	return s.Progress >= s.Params.MaxProgress || s.Durability <= 0
}

// IsSuccess reports whether a terminal state ended in success. Undefined
// on a non-terminal state.
func (s *State) IsSuccess() bool {
	return s.Progress >= s.Params.MaxProgress
}

// Equal implements the equality relation of spec §3.4: two non-terminal
// states are equal iff every scalar and buff counter matches; two terminal
// states are equal iff both terminal and Quality matches (a deliberate
// coarsening preserved from the spec — see DESIGN.md and the mcts package).
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	sTerm, oTerm := s.IsTerminal(), o.IsTerminal()
	if sTerm != oTerm {
		return false
	}
	if sTerm {
		return s.Quality == o.Quality
	}
	if s.CP != o.CP || s.Progress != o.Progress || s.Quality != o.Quality ||
		s.Durability != o.Durability || s.InnerQuiet != o.InnerQuiet || s.Condition != o.Condition {
		return false
	}
	return s.Buff == o.Buff
}

// String renders a human-readable dump for diagnostic panics, in the style
// of the teacher's dumpState test helpers.
func (s *State) String() string {
	if s == nil {
		return "<nil state>"
	}
	return fmt.Sprintf(
		"CP=%d Progress=%d/%d Quality=%d/%d Durability=%d InnerQuiet=%d Condition=%v Buff=%v",
		s.CP, s.Progress, s.Params.MaxProgress, s.Quality, s.Params.MaxQuality,
		s.Durability, s.InnerQuiet, s.Condition, s.Buff,
	)
}

// CheckInvariants panics with a full state dump if any non-terminal
// invariant from spec §3.3/§8 is violated. Callers invoke this after
// executing an action, mirroring the spec's "programmer errors abort the
// process" error model (spec §7).
func (s *State) CheckInvariants() {
	if s.IsTerminal() {
		return
	}
	if s.CP < 0 || s.CP > s.Params.MaxCP {
		panic(fmt.Sprintf("invariant violated: cp out of range: %s", s))
	}
	if s.Durability <= 0 || s.Durability > s.Params.MaxDurability {
		panic(fmt.Sprintf("invariant violated: durability out of range for non-terminal state: %s", s))
	}
	if s.Durability%5 != 0 {
		panic(fmt.Sprintf("invariant violated: durability not divisible by 5: %s", s))
	}
	if s.Progress >= s.Params.MaxProgress {
		panic(fmt.Sprintf("invariant violated: progress at/above max for non-terminal state: %s", s))
	}
	if s.InnerQuiet > 11 {
		panic(fmt.Sprintf("invariant violated: inner quiet out of range: %s", s))
	}
	for _, b := range s.Buff {
		if b >= 1<<buffBitWidth {
			panic(fmt.Sprintf("invariant violated: buff counter exceeds bit budget: %s", s))
		}
	}
}
