// Package game defines the core crafting-simulation types: the action and
// status-effect catalogues, craft parameters, and the mutable State they
// operate on.
//
// These types carry no control flow — legality, execution, and scoring live
// in package rules. This mirrors the teacher's split between state shape
// (game) and state transitions (rules).
package game

// Action identifies one of the fixed catalogue of crafting actions.
type Action int

const (
	BasicSynthesis Action = iota
	BasicTouch
	ByregotsBlessing
	CarefulSynthesis
	DelicateSynthesis
	FinalAppraisal
	FocusedSynthesis
	FocusedTouch
	GreatStrides
	HastyTouch
	Ingenuity
	InnerQuietAction
	Innovation
	IntensiveSynthesis
	Manipulation
	MastersMend
	MuscleMemory
	Observe
	PatientTouch
	PreciseTouch
	PreparatoryTouch
	PrudentTouch
	RapidSynthesis
	Reflect
	StandardTouch
	TricksOfTheTrade
	WasteNot
	WasteNotII
	Reuse // defined in the table, never in the supported set
	NumActions
)

// ActionFlag marks whether an action grants progress, quality, or neither.
type ActionFlag uint8

const (
	FlagProgress ActionFlag = 1 << 0
	FlagQuality  ActionFlag = 1 << 1
)

// ActionRow is one immutable row of the action table (spec §4.1).
type ActionRow struct {
	Name              string
	DCP               int16 // negative cost, positive refund
	DDurability       int16 // usually negative
	SuccessPercent    int16 // 0..100
	EfficiencyPercent int16
	Flags             ActionFlag
	Supported         bool
}

func (r ActionRow) HasProgress() bool { return r.Flags&FlagProgress != 0 }
func (r ActionRow) HasQuality() bool  { return r.Flags&FlagQuality != 0 }

// Actions is the static, O(1)-indexed action table for the canonical
// instantiation: 29 actions (28 supported, Reuse blacklisted).
var Actions = [NumActions]ActionRow{
	BasicSynthesis: {
		Name: "Basic Synthesis", DCP: 0, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 120, Flags: FlagProgress, Supported: true,
	},
	BasicTouch: {
		Name: "Basic Touch", DCP: -18, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 100, Flags: FlagQuality, Supported: true,
	},
	ByregotsBlessing: {
		Name: "Byregot's Blessing", DCP: -24, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 100, Flags: FlagQuality, Supported: true,
	},
	CarefulSynthesis: {
		Name: "Careful Synthesis", DCP: -7, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 150, Flags: FlagProgress, Supported: true,
	},
	DelicateSynthesis: {
		Name: "Delicate Synthesis", DCP: -32, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 100, Flags: FlagProgress | FlagQuality, Supported: true,
	},
	FinalAppraisal: {
		Name: "Final Appraisal", DCP: -1, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	FocusedSynthesis: {
		Name: "Focused Synthesis", DCP: -5, DDurability: -10,
		SuccessPercent: 50, EfficiencyPercent: 200, Flags: FlagProgress, Supported: true,
	},
	FocusedTouch: {
		Name: "Focused Touch", DCP: -18, DDurability: -10,
		SuccessPercent: 50, EfficiencyPercent: 150, Flags: FlagQuality, Supported: true,
	},
	GreatStrides: {
		Name: "Great Strides", DCP: -32, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	HastyTouch: {
		Name: "Hasty Touch", DCP: 0, DDurability: -10,
		SuccessPercent: 60, EfficiencyPercent: 100, Flags: FlagQuality, Supported: true,
	},
	Ingenuity: {
		Name: "Ingenuity", DCP: -24, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	InnerQuietAction: {
		Name: "Inner Quiet", DCP: -18, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	Innovation: {
		Name: "Innovation", DCP: -18, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	IntensiveSynthesis: {
		Name: "Intensive Synthesis", DCP: -6, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 400, Flags: FlagProgress, Supported: true,
	},
	Manipulation: {
		Name: "Manipulation", DCP: -96, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	MastersMend: {
		Name: "Master's Mend", DCP: -88, DDurability: 30,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	MuscleMemory: {
		Name: "Muscle Memory", DCP: -6, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 300, Flags: FlagProgress, Supported: true,
	},
	Observe: {
		Name: "Observe", DCP: -7, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	PatientTouch: {
		Name: "Patient Touch", DCP: -4, DDurability: -10,
		SuccessPercent: 50, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	PreciseTouch: {
		Name: "Precise Touch", DCP: -18, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 150, Flags: FlagQuality, Supported: true,
	},
	PreparatoryTouch: {
		Name: "Preparatory Touch", DCP: -40, DDurability: -20,
		SuccessPercent: 100, EfficiencyPercent: 200, Flags: FlagQuality, Supported: true,
	},
	PrudentTouch: {
		Name: "Prudent Touch", DCP: -25, DDurability: -5,
		SuccessPercent: 100, EfficiencyPercent: 100, Flags: FlagQuality, Supported: true,
	},
	RapidSynthesis: {
		Name: "Rapid Synthesis", DCP: 0, DDurability: -10,
		SuccessPercent: 50, EfficiencyPercent: 500, Flags: FlagProgress, Supported: true,
	},
	Reflect: {
		Name: "Reflect", DCP: -6, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 100, Flags: FlagQuality, Supported: true,
	},
	StandardTouch: {
		Name: "Standard Touch", DCP: -32, DDurability: -10,
		SuccessPercent: 100, EfficiencyPercent: 125, Flags: FlagQuality, Supported: true,
	},
	TricksOfTheTrade: {
		Name: "Tricks of the Trade", DCP: 20, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	WasteNot: {
		Name: "Waste Not", DCP: -56, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	WasteNotII: {
		Name: "Waste Not II", DCP: -98, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: true,
	},
	Reuse: {
		Name: "Reuse", DCP: 0, DDurability: 0,
		SuccessPercent: 100, EfficiencyPercent: 0, Flags: 0, Supported: false,
	},
}

// Buff identifies one of the fixed catalogue of timed status effects, plus
// the FirstStep pseudo-status used to gate opening-only actions.
type Buff int

const (
	BuffGreatStrides Buff = iota
	BuffInnovation
	BuffManipulation
	BuffMuscleMemory
	BuffWasteNot
	BuffWasteNotII
	BuffIngenuity
	BuffObserve
	BuffFinalAppraisal
	BuffFirstStep
	NumBuffs
)

// buffBitWidth is the bit budget each buff counter is packed into when
// hashing (spec §3.4). The longest-lived buff (Waste Not II) counts to 8.
const buffBitWidth = 4

// Condition is the four-valued weather-like modifier on the current turn.
type Condition uint8

const (
	Normal Condition = iota
	Good
	Excellent
	Poor
)

// QualityFactor is the quality multiplier for each condition (spec §4.4).
func (c Condition) QualityFactor() float64 {
	switch c {
	case Good:
		return 1.5
	case Excellent:
		return 4.0
	case Poor:
		return 0.5
	default:
		return 1.0
	}
}
