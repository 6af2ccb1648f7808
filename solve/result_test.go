package solve

import (
	"testing"

	"github.com/k0kubun/pp"

	"github.com/candidateflow/interviewsched/problem"
)

func oneCandidateTwoPanelSolution() *Solution {
	raw := problem.RawProblem{
		NumCandidates: 1,
		Panels: map[string]problem.DurationSpec{
			"Intro":  problem.Minutes(30),
			"Coding": problem.Minutes(45),
		},
		Availabilities: map[string][]problem.Window{
			"Intro":  {{Start: 0, End: 34}},
			"Coding": {{Start: 0, End: 34}},
		},
	}
	v, err := problem.Validate(raw)
	if err != nil {
		panic(err)
	}
	// Validate sorts panels by name, so index 0 is Coding and index 1 is
	// Intro: Intro at slot 0 (30 min = 2 slots), Coding at slot 2.
	return NewSolution(v, [][]int{{2, 0}}, 0)
}

func TestCandidateScheduleSortsAndComputesGap(t *testing.T) {
	sol := oneCandidateTwoPanelSolution()
	sched := sol.CandidateSchedule(0)
	if len(sched) != 2 {
		t.Fatalf("len(sched) = %d, want 2", len(sched))
	}
	if sched[0].Panel != "Intro" || sched[1].Panel != "Coding" {
		t.Error("unexpected session order:", pp.Sprint(sched))
	}
	if sched[0].GapBeforeMinutes != nil {
		t.Errorf("first session GapBeforeMinutes = %v, want nil", *sched[0].GapBeforeMinutes)
	}
	if sched[1].GapBeforeMinutes == nil || *sched[1].GapBeforeMinutes != 0 {
		t.Errorf("second session gap = %v, want 0", sched[1].GapBeforeMinutes)
	}
}

func TestMakespanAndSummary(t *testing.T) {
	sol := oneCandidateTwoPanelSolution()
	if got := sol.Makespan(); got != 5 {
		t.Errorf("Makespan() = %d, want 5", got)
	}
	summary := sol.Summary(Optimal)
	if summary.Status != "Optimal" {
		t.Errorf("Status = %q, want Optimal", summary.Status)
	}
	if summary.OrderBreaks != 0 {
		t.Errorf("OrderBreaks = %d, want 0", summary.OrderBreaks)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		Optimal:    "Optimal",
		Feasible:   "Feasible",
		Infeasible: "Infeasible",
		Unknown:    "Unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
