package solve

import (
	"fmt"

	"github.com/candidateflow/interviewsched/problem"
)

// Status is the solver driver's outcome, always returned as a value,
// never as an error (spec.md section 7: solve outcomes are always a
// status).
type Status int

const (
	Optimal Status = iota
	Feasible
	Infeasible
	Unknown
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// SolverError reports that the underlying CP-SAT engine malfunctioned
// (e.g. an unexpected internal status, or a model the builder itself
// rejected) rather than produced a normal Infeasible/Unknown outcome.
type SolverError struct {
	RawStatus string
	Err       error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("cp-sat solver error (status %s): %v", e.RawStatus, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

// Session is one scheduled (candidate, panel) occurrence, decoded and
// formatted for a caller.
type Session struct {
	Panel            string
	StartTime        string
	EndTime          string
	StartSlot        int
	EndSlot          int
	DurationMinutes  int
	GapBeforeMinutes *int // nil for a candidate's first session.
}

// CandidateSchedule is one candidate's sessions, sorted by start.
type CandidateSchedule []Session

// SolutionSummary is the adapter-facing digest of a solve (spec.md
// section 6).
type SolutionSummary struct {
	Status                string
	OrderBreaks           int
	DayEndsAt             string
	MaxGapEnforcedMinutes int
}

// Solution is a dense (candidate, panel) -> start slot assignment,
// plus enough of the originating problem to decode it into
// caller-facing shapes.
type Solution struct {
	problem *problem.Validated
	starts  [][]int // [candidate][panelIndex] -> start slot
	breaks  int
}

// NewSolution builds a Solution directly from a start-slot assignment,
// without going through a CP-SAT search. decode uses this for
// solver output; render and other adapters can use it directly when
// they already have an assignment in hand (e.g. from a stored or
// externally produced schedule).
func NewSolution(p *problem.Validated, starts [][]int, orderBreaks int) *Solution {
	return &Solution{problem: p, starts: starts, breaks: orderBreaks}
}

// StartSlot returns candidate c's start slot for panel index p.
func (s *Solution) StartSlot(candidate, panelIndex int) int {
	return s.starts[candidate][panelIndex]
}

// CandidateSchedule decodes one candidate's sessions, sorted by
// start, with each session's preceding gap in minutes (the first
// session has none).
func (s *Solution) CandidateSchedule(candidate int) CandidateSchedule {
	p := s.problem
	sessions := make(CandidateSchedule, len(p.Panels))
	for pi, panel := range p.Panels {
		startSlot := s.starts[candidate][pi]
		endSlot := startSlot + panel.Duration
		sh, sm, _ := p.Timeline.FromSlot(startSlot)
		eh, em, _ := p.Timeline.FromSlot(endSlot)
		sessions[pi] = Session{
			Panel:           panel.Name,
			StartTime:       fmt.Sprintf("%02d:%02d", sh, sm),
			EndTime:         fmt.Sprintf("%02d:%02d", eh, em),
			StartSlot:       startSlot,
			EndSlot:         endSlot,
			DurationMinutes: panel.Duration * p.Timeline.SlotMinutes,
		}
	}
	sortSessionsByStart(sessions)
	for i := 1; i < len(sessions); i++ {
		gapSlots := sessions[i].StartSlot - sessions[i-1].EndSlot
		gapMinutes := gapSlots * p.Timeline.SlotMinutes
		sessions[i].GapBeforeMinutes = &gapMinutes
	}
	return sessions
}

func sortSessionsByStart(sessions CandidateSchedule) {
	for i := 1; i < len(sessions); i++ {
		for j := i; j > 0 && sessions[j].StartSlot < sessions[j-1].StartSlot; j-- {
			sessions[j], sessions[j-1] = sessions[j-1], sessions[j]
		}
	}
}

// Makespan is the largest session-end slot across every scheduled
// session.
func (s *Solution) Makespan() int {
	max := 0
	for c := range s.starts {
		for pi, panel := range s.problem.Panels {
			end := s.starts[c][pi] + panel.Duration
			if end > max {
				max = end
			}
		}
	}
	return max
}

// Summary builds the adapter-facing SolutionSummary.
func (s *Solution) Summary(status Status) SolutionSummary {
	makespan := s.Makespan()
	h, m, _ := s.problem.Timeline.FromSlot(makespan)
	return SolutionSummary{
		Status:                status.String(),
		OrderBreaks:           s.breaks,
		DayEndsAt:             fmt.Sprintf("%02d:%02d", h, m),
		MaxGapEnforcedMinutes: s.problem.MaxGapSlots * s.problem.Timeline.SlotMinutes,
	}
}

// Problem exposes the validated problem a Solution was decoded
// against, for adapters (like render.CSV) that need panel/slot
// metadata alongside the assignment.
func (s *Solution) Problem() *problem.Validated { return s.problem }

// Result is what Driver.Solve returns: a status, and a Solution only
// when one was found.
type Result struct {
	Status   Status
	Solution *Solution
}
