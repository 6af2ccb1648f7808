// Package problem defines the scheduling problem's input model and
// validates it before any constraint solving is attempted.
package problem

import "github.com/candidateflow/interviewsched/timeline"

// DurationSpec is a closed, tagged union: a panel's duration is given
// either as a plain integer number of minutes or as a textual duration
// string (see timeline.ParseDuration).
type DurationSpec interface {
	isDurationSpec()
}

// Minutes is a DurationSpec given as an integer number of minutes.
type Minutes int

func (Minutes) isDurationSpec() {}

// Text is a DurationSpec given as a textual duration string, e.g.
// "1h30min".
type Text string

func (Text) isDurationSpec() {}

// Window is a half-open slot interval [Start, End).
type Window struct {
	Start int
	End   int
}

// PositionKind distinguishes the three forms a PositionConstraint can
// take.
type PositionKind int

const (
	// PositionFirst pins a panel to start no later than every other
	// panel for the same candidate.
	PositionFirst PositionKind = iota
	// PositionLast pins a panel to start no earlier than the end of
	// every other panel for the same candidate.
	PositionLast
	// PositionIndex pins a panel to have exactly Index other panels of
	// the same candidate complete before it begins.
	PositionIndex
)

// PositionConstraint is a single panel's position pin.
type PositionConstraint struct {
	Kind PositionKind
	// Index is only meaningful when Kind == PositionIndex.
	Index int
}

// First returns a PositionConstraint pinning a panel to be first.
func First() PositionConstraint { return PositionConstraint{Kind: PositionFirst} }

// Last returns a PositionConstraint pinning a panel to be last.
func Last() PositionConstraint { return PositionConstraint{Kind: PositionLast} }

// AtIndex returns a PositionConstraint pinning a panel to have exactly
// k other panels complete before it begins.
func AtIndex(k int) PositionConstraint { return PositionConstraint{Kind: PositionIndex, Index: k} }

// RawProblem is the structured input to the scheduler, the strongly
// typed equivalent of the semi-structured document an adapter
// deserializes its own config format into. See spec.md section 6.
type RawProblem struct {
	// NumCandidates is the number of candidates to schedule. Must be
	// >= 1.
	NumCandidates int

	// Panels maps panel name to its duration.
	Panels map[string]DurationSpec

	// Order is the preferred panel order (a soft constraint). May be
	// empty or cover only a subset of Panels.
	Order []string

	// Availabilities maps panel name to its ordered, non-overlapping
	// availability windows, in slots.
	Availabilities map[string][]Window

	// SharedPanels lists panels exempt from the per-panel no-overlap
	// rule: multiple candidates may occupy them at once (e.g. a group
	// lunch). See SPEC_FULL.md section D(i).
	SharedPanels []string

	// PositionConstraints maps panel name to its position pin.
	PositionConstraints map[string]PositionConstraint

	// PanelConflicts is a set of panel groups sharing an external
	// resource; no two sessions across a group's panels, across any
	// candidates, may overlap.
	PanelConflicts [][]string

	// Day shape. Validate replaces zero values: SlotsPerDay and
	// SlotDurationMinutes take timeline.Default()'s values, a 00:00
	// start becomes timeline.Default()'s 08:30, a 00:00 end is derived
	// from the start plus the day's length, and a zero MaxGapMinutes
	// becomes 15, so a zero-minute gap bound cannot be expressed.
	SlotsPerDay         int
	MaxGapMinutes       int
	StartHour           int
	StartMinute         int
	EndHour             int
	EndMinute           int
	SlotDurationMinutes int
}

// applyDefaults returns a copy of p with zero-valued day-shape fields
// replaced by the spec's documented defaults (08:30-17:00, 34 slots of
// 15 minutes, a 15-minute max gap).
func (p RawProblem) applyDefaults() RawProblem {
	def := timeline.Default()
	if p.SlotsPerDay == 0 {
		p.SlotsPerDay = def.Slots
	}
	if p.SlotDurationMinutes == 0 {
		p.SlotDurationMinutes = def.SlotMinutes
	}
	if p.StartHour == 0 && p.StartMinute == 0 {
		p.StartHour, p.StartMinute = def.StartHour, def.StartMinute
	}
	if p.EndHour == 0 && p.EndMinute == 0 {
		// Derive from the (now-defaulted) start time and day length,
		// rather than hardcoding 17:00, so a caller who customizes
		// SlotsPerDay/SlotDurationMinutes without also specifying
		// EndHour/EndMinute doesn't get a day shape that contradicts
		// itself.
		totalMinutes := p.StartMinute + p.SlotsPerDay*p.SlotDurationMinutes
		p.EndHour = p.StartHour + totalMinutes/60
		p.EndMinute = totalMinutes % 60
	}
	if p.MaxGapMinutes == 0 {
		p.MaxGapMinutes = 15
	}
	return p
}

// PanelDef is a validated panel: a name and a fixed duration in slots.
type PanelDef struct {
	Name     string
	Duration int
}

// ResolvedPositionPin is a PositionConstraint resolved to a panel
// index.
type ResolvedPositionPin struct {
	PanelIndex int
	Kind       PositionKind
	Index      int
}

// Validated is a well-formed scheduling problem, immutable once
// constructed by Validate. All panel references have been resolved to
// dense integer indices into Panels.
type Validated struct {
	NumCandidates int

	Panels     []PanelDef
	PanelIndex map[string]int

	// Order is the preferred order, as panel indices.
	Order []int

	// Availabilities[p] is panel p's windows, in slots.
	Availabilities [][]Window

	// SharedPanelSet holds the indices of panels exempt from per-panel
	// no-overlap.
	SharedPanelSet map[int]bool

	// PositionPins holds every pinned panel's resolved constraint.
	PositionPins []ResolvedPositionPin

	// ConflictGroups[i] is a resource-conflict group, as panel
	// indices.
	ConflictGroups [][]int

	Timeline      timeline.Config
	MaxGapSlots   int
}
