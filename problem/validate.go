package problem

import (
	"fmt"
	"sort"

	"github.com/candidateflow/interviewsched/timeline"
)

// Validate checks a RawProblem for internal consistency (spec.md
// section 4.2) and, if it passes, returns an immutable Validated
// problem. It never checks feasibility; that is the solver's job.
func Validate(raw RawProblem) (*Validated, error) {
	raw = raw.applyDefaults()

	if raw.NumCandidates < 1 {
		return nil, newValidationError(BadCandidateCount, "", "num_candidates must be >= 1")
	}

	cfg := timeline.Config{
		Slots:       raw.SlotsPerDay,
		SlotMinutes: raw.SlotDurationMinutes,
		StartHour:   raw.StartHour,
		StartMinute: raw.StartMinute,
	}

	// end_time is part of the external interface (spec.md section 6)
	// but the day's actual length is driven by SlotsPerDay *
	// SlotDurationMinutes; the two must agree, or a caller's EndHour/
	// EndMinute silently lies about where the day stops.
	totalMinutes := raw.StartMinute + raw.SlotsPerDay*raw.SlotDurationMinutes
	wantEndHour := raw.StartHour + totalMinutes/60
	wantEndMinute := totalMinutes % 60
	if raw.EndHour != wantEndHour || raw.EndMinute != wantEndMinute {
		return nil, newValidationError(BadDayShape, "",
			fmt.Sprintf("end_time %02d:%02d does not match start %02d:%02d plus %d slots of %d minutes (expected %02d:%02d)",
				raw.EndHour, raw.EndMinute, raw.StartHour, raw.StartMinute, raw.SlotsPerDay, raw.SlotDurationMinutes,
				wantEndHour, wantEndMinute))
	}

	panelNames := make([]string, 0, len(raw.Panels))
	for name := range raw.Panels {
		panelNames = append(panelNames, name)
	}
	sort.Strings(panelNames)

	panelIndex := make(map[string]int, len(panelNames))
	panels := make([]PanelDef, 0, len(panelNames))
	for i, name := range panelNames {
		spec := raw.Panels[name]
		minutes, err := durationMinutes(spec)
		if err != nil {
			return nil, newValidationError(BadDuration, name, err.Error())
		}
		slots, err := cfg.DurationSlots(minutes)
		if err != nil {
			return nil, newValidationError(BadDuration, name, err.Error())
		}
		panelIndex[name] = i
		panels = append(panels, PanelDef{Name: name, Duration: slots})
	}

	// Every panel in order appears in panels.
	order := make([]int, 0, len(raw.Order))
	for _, name := range raw.Order {
		idx, ok := panelIndex[name]
		if !ok {
			return nil, newValidationError(UnknownPanelInOrder, name, "not a declared panel")
		}
		order = append(order, idx)
	}

	// Every panel has at least one availability window, and every
	// window is well-formed.
	availabilities := make([][]Window, len(panels))
	for name, idx := range panelIndex {
		windows := raw.Availabilities[name]
		if len(windows) == 0 {
			return nil, newValidationError(MissingAvailability, name, "no availability windows declared")
		}
		for _, w := range windows {
			if w.Start < 0 || w.Start >= w.End || w.End > raw.SlotsPerDay {
				return nil, newValidationError(BadWindow, name,
					fmt.Sprintf("window [%d, %d) invalid for a %d-slot day", w.Start, w.End, raw.SlotsPerDay))
			}
		}
		sorted := append([]Window(nil), windows...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Start < sorted[i-1].End {
				return nil, newValidationError(BadWindow, name, "availability windows overlap")
			}
		}
		availabilities[idx] = sorted
	}

	// Shared-panel set.
	sharedSet := make(map[int]bool, len(raw.SharedPanels))
	for _, name := range raw.SharedPanels {
		idx, ok := panelIndex[name]
		if !ok {
			return nil, newValidationError(UnknownSharedPanel, name, "not a declared panel")
		}
		sharedSet[idx] = true
	}

	// Position constraints.
	pins := make([]ResolvedPositionPin, 0, len(raw.PositionConstraints))
	pinNames := make([]string, 0, len(raw.PositionConstraints))
	for name := range raw.PositionConstraints {
		pinNames = append(pinNames, name)
	}
	sort.Strings(pinNames)

	firstCount, lastCount := 0, 0
	for _, name := range pinNames {
		pc := raw.PositionConstraints[name]
		idx, ok := panelIndex[name]
		if !ok {
			return nil, newValidationError(UnknownPinnedPanel, name, "not a declared panel")
		}
		switch pc.Kind {
		case PositionFirst:
			firstCount++
		case PositionLast:
			lastCount++
		case PositionIndex:
			if pc.Index < 0 || pc.Index >= len(panels) {
				return nil, newValidationError(BadPosition, name,
					fmt.Sprintf("index %d out of range [0, %d)", pc.Index, len(panels)))
			}
		default:
			return nil, newValidationError(BadPosition, name, "unknown position kind")
		}
		pins = append(pins, ResolvedPositionPin{PanelIndex: idx, Kind: pc.Kind, Index: pc.Index})
	}
	if firstCount > 1 {
		return nil, newValidationError(BadPosition, "", "more than one panel pinned first")
	}
	if lastCount > 1 {
		return nil, newValidationError(BadPosition, "", "more than one panel pinned last")
	}
	// A panel pinned to index 0 structurally contradicts a different
	// panel pinned first; symmetrically for the last index.
	for _, pin := range pins {
		if pin.Kind != PositionIndex {
			continue
		}
		if pin.Index == 0 && firstCount > 0 {
			return nil, newValidationError(BadPosition, panels[pin.PanelIndex].Name,
				"index 0 contradicts another panel pinned first")
		}
		if pin.Index == len(panels)-1 && lastCount > 0 {
			return nil, newValidationError(BadPosition, panels[pin.PanelIndex].Name,
				"last index contradicts another panel pinned last")
		}
	}

	// Conflict groups.
	conflictGroups := make([][]int, 0, len(raw.PanelConflicts))
	for i, group := range raw.PanelConflicts {
		if len(group) < 2 {
			return nil, newValidationError(BadConflictGroup, "",
				fmt.Sprintf("conflict group %d must contain at least 2 panels", i))
		}
		seen := make(map[int]bool, len(group))
		indices := make([]int, 0, len(group))
		for _, name := range group {
			idx, ok := panelIndex[name]
			if !ok {
				return nil, newValidationError(BadConflictGroup, name,
					fmt.Sprintf("conflict group %d references unknown panel", i))
			}
			if seen[idx] {
				return nil, newValidationError(BadConflictGroup, name,
					fmt.Sprintf("conflict group %d contains a duplicate panel", i))
			}
			seen[idx] = true
			indices = append(indices, idx)
		}
		conflictGroups = append(conflictGroups, indices)
	}

	maxGapSlots := raw.MaxGapMinutes / raw.SlotDurationMinutes

	return &Validated{
		NumCandidates:  raw.NumCandidates,
		Panels:         panels,
		PanelIndex:     panelIndex,
		Order:          order,
		Availabilities: availabilities,
		SharedPanelSet: sharedSet,
		PositionPins:   pins,
		ConflictGroups: conflictGroups,
		Timeline:       cfg,
		MaxGapSlots:    maxGapSlots,
	}, nil
}

func durationMinutes(spec DurationSpec) (int, error) {
	switch v := spec.(type) {
	case Minutes:
		if v <= 0 {
			return 0, fmt.Errorf("must be positive")
		}
		return int(v), nil
	case Text:
		return timeline.ParseDuration(string(v))
	default:
		return 0, fmt.Errorf("unsupported duration spec type %T", spec)
	}
}
