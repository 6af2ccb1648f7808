package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/candidateflow/interviewsched/problem"
	"github.com/candidateflow/interviewsched/solve"
)

func durationsA() map[string]problem.DurationSpec {
	return map[string]problem.DurationSpec{
		"Director":     problem.Minutes(15),
		"Competencies": problem.Minutes(60),
		"Customers":    problem.Minutes(60),
		"HR":           problem.Minutes(45),
		"Lunch":        problem.Minutes(60),
		"Team":         problem.Minutes(45),
		"Goodbye":      problem.Minutes(30),
	}
}

func availabilitiesA() map[string][]problem.Window {
	return map[string][]problem.Window{
		"Director":     {{Start: 0, End: 6}},
		"Competencies": {{Start: 0, End: 10}, {Start: 14, End: 22}, {Start: 30, End: 34}},
		"Customers":    {{Start: 0, End: 22}},
		"HR":           {{Start: 0, End: 34}},
		"Team":         {{Start: 0, End: 34}},
		"Goodbye":      {{Start: 0, End: 34}},
		"Lunch":        {{Start: 13, End: 20}},
	}
}

func baselineRawA() problem.RawProblem {
	return problem.RawProblem{
		NumCandidates:  3,
		Panels:         durationsA(),
		Availabilities: availabilitiesA(),
		Order:          []string{"Director", "Competencies", "Customers", "Lunch", "Team", "HR", "Goodbye"},
		SharedPanels:   []string{"Lunch"},
		MaxGapMinutes:  15,
	}
}

// (A) Baseline three-candidate day: every candidate covers all seven
// panels, with gaps never exceeding the bound.
func TestBaselineThreeCandidateDay(t *testing.T) {
	s, err := New(baselineRawA())
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.Contains(t, []solve.Status{solve.Optimal, solve.Feasible}, result.Status)
	require.NotNil(t, result.Solution)

	for c := 0; c < 3; c++ {
		sched := result.Solution.CandidateSchedule(c)
		require.Len(t, sched, 7)
		for i, session := range sched {
			if i == 0 {
				require.Nil(t, session.GapBeforeMinutes)
				continue
			}
			require.NotNil(t, session.GapBeforeMinutes)
			require.LessOrEqual(t, *session.GapBeforeMinutes, 15)
			require.GreaterOrEqual(t, *session.GapBeforeMinutes, 0)
		}
	}
}

// (B) Pinning Goodbye last, with Team and Goodbye sharing a resource
// conflict group, must keep Goodbye at the end of every candidate's
// day.
func TestPositionPinForcesGoodbyeLast(t *testing.T) {
	raw := baselineRawA()
	raw.PositionConstraints = map[string]problem.PositionConstraint{
		"Goodbye": problem.Last(),
	}
	raw.PanelConflicts = [][]string{{"Team", "Goodbye"}}

	s, err := New(raw)
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.NotNil(t, result.Solution)

	for c := 0; c < 3; c++ {
		sched := result.Solution.CandidateSchedule(c)
		last := sched[len(sched)-1]
		require.Equal(t, "Goodbye", last.Panel)
	}
}

// (C) A zero-minute max gap over the baseline's tight availability
// windows has no feasible assignment for three candidates.
func TestZeroGapIsInfeasible(t *testing.T) {
	raw := baselineRawA()
	raw.MaxGapMinutes = 0

	s, err := New(raw)
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solve.Infeasible, result.Status)
	require.Nil(t, result.Solution)
}

// (D) A single panel with an empty preferred order trivially solves
// to optimal with zero order breaks.
func TestTrivialSinglePanelOrder(t *testing.T) {
	raw := problem.RawProblem{
		NumCandidates: 1,
		Panels: map[string]problem.DurationSpec{
			"Intro": problem.Minutes(30),
		},
		Availabilities: map[string][]problem.Window{
			"Intro": {{Start: 0, End: 4}},
		},
	}

	s, err := New(raw)
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solve.Optimal, result.Status)

	summary := result.Solution.Summary(result.Status)
	require.Equal(t, 0, summary.OrderBreaks)
}

// (E) A's earlier availability window is preferred over its later one
// because taking the later window would force B out of range under a
// zero-minute gap.
func TestWindowSelectionPrefersFeasibleWindow(t *testing.T) {
	raw := problem.RawProblem{
		NumCandidates: 1,
		Panels: map[string]problem.DurationSpec{
			"A": problem.Minutes(30),
			"B": problem.Minutes(30),
		},
		Availabilities: map[string][]problem.Window{
			"A": {{Start: 0, End: 2}, {Start: 10, End: 12}},
			"B": {{Start: 0, End: 12}},
		},
		Order:         []string{"A", "B"},
		MaxGapMinutes: 0,
	}

	s, err := New(raw)
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.NotNil(t, result.Solution)

	sched := result.Solution.CandidateSchedule(0)
	require.Equal(t, "A", sched[0].Panel)
	require.Equal(t, 0, sched[0].StartSlot)
	require.Equal(t, "B", sched[1].Panel)
	require.Equal(t, 2, sched[1].StartSlot)
}

// (F) An integer position pin requires exactly that many other panels
// to complete before the pinned panel begins.
func TestIntegerPositionPin(t *testing.T) {
	panels := map[string]problem.DurationSpec{
		"W": problem.Minutes(15),
		"X": problem.Minutes(15),
		"Y": problem.Minutes(15),
		"Z": problem.Minutes(15),
	}
	fullDay := []problem.Window{{Start: 0, End: 34}}
	raw := problem.RawProblem{
		NumCandidates: 1,
		Panels:        panels,
		Availabilities: map[string][]problem.Window{
			"W": fullDay, "X": fullDay, "Y": fullDay, "Z": fullDay,
		},
		PositionConstraints: map[string]problem.PositionConstraint{
			"X": problem.AtIndex(2),
		},
	}

	s, err := New(raw)
	require.NoError(t, err)

	result, err := s.Solve()
	require.NoError(t, err)
	require.NotNil(t, result.Solution)

	sched := result.Solution.CandidateSchedule(0)
	var xIndex int
	for i, session := range sched {
		if session.Panel == "X" {
			xIndex = i
		}
	}
	require.Equal(t, 2, xIndex)
}
