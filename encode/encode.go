// Package encode translates a validated scheduling problem into a
// CP-SAT model: integer start-time variables, interval variables,
// disjunctive availability, chain-of-follows gap constraints, position
// pinning, resource-conflict no-overlap, order-violation indicators,
// and the hierarchical objective described in spec.md section 4.3.
package encode

import (
	"github.com/candidateflow/interviewsched/internal/cpsat"
	"github.com/candidateflow/interviewsched/problem"
)

// objectiveBreakWeight (B in spec.md) guarantees that any reduction in
// order breaks outweighs any increase in makespan representable in
// the domain: B = (S+1) * 1000.
func objectiveBreakWeight(slotsPerDay int) int64 {
	return int64(slotsPerDay+1) * 1000
}

// Variables holds every decision variable the encoder created, keyed
// the way the solver driver needs to decode them back into a
// Solution.
type Variables struct {
	// Starts[c][p] is candidate c's start slot for panel p.
	Starts [][]cpsat.IntVar
	// Intervals[c][p] is the corresponding session interval.
	Intervals [][]cpsat.IntervalVar
	// Breaks[c][i] indicates the preferred order's i-th consecutive
	// pair is violated for candidate c.
	Breaks [][]cpsat.BoolVar
	// NumBreaks sums all of Breaks.
	NumBreaks cpsat.IntVar
	// Makespan is the largest session end slot across all sessions.
	Makespan cpsat.IntVar
}

// Encoded is a CP-SAT model built from a *problem.Validated, ready to
// hand to the solver driver.
type Encoded struct {
	Model   *cpsat.Model
	Vars    Variables
	Problem *problem.Validated
}

// Encode builds the full CP-SAT formulation for p.
func Encode(p *problem.Validated) *Encoded {
	m := cpsat.NewModel()
	numPanels := len(p.Panels)

	starts := make([][]cpsat.IntVar, p.NumCandidates)
	intervals := make([][]cpsat.IntervalVar, p.NumCandidates)
	for c := 0; c < p.NumCandidates; c++ {
		starts[c] = make([]cpsat.IntVar, numPanels)
		intervals[c] = make([]cpsat.IntervalVar, numPanels)
		for pi, panel := range p.Panels {
			start := m.NewIntVarFromDomain(cpsat.Domain(0, int64(p.Timeline.Slots-panel.Duration)))
			starts[c][pi] = start
			intervals[c][pi] = m.NewFixedSizeIntervalVar(start, int64(panel.Duration))
		}
	}

	addNoOverlapConstraints(m, p, intervals)
	addAvailabilityConstraints(m, p, starts)
	addGapChainConstraints(m, p, starts)
	addPositionConstraints(m, p, starts)
	breakVars := addOrderPreferenceConstraints(m, p, starts)

	numBreaks := addNumBreaks(m, breakVars)
	makespan := addMakespan(m, p, starts)
	addObjective(m, p, numBreaks, makespan)

	return &Encoded{
		Model: m,
		Vars: Variables{
			Starts:    starts,
			Intervals: intervals,
			Breaks:    breakVars,
			NumBreaks: numBreaks,
			Makespan:  makespan,
		},
		Problem: p,
	}
}

func addNoOverlapConstraints(m *cpsat.Model, p *problem.Validated, intervals [][]cpsat.IntervalVar) {
	// Each candidate's own sessions never overlap.
	for c := 0; c < p.NumCandidates; c++ {
		m.AddNoOverlap(intervals[c]...)
	}

	// Each panel outside the shared-panel set sees at most one
	// candidate at a time.
	for pi := range p.Panels {
		if p.SharedPanelSet[pi] {
			continue
		}
		perPanel := make([]cpsat.IntervalVar, p.NumCandidates)
		for c := 0; c < p.NumCandidates; c++ {
			perPanel[c] = intervals[c][pi]
		}
		m.AddNoOverlap(perPanel...)
	}

	// Every session across a resource-conflict group, across all
	// candidates, is pairwise disjoint.
	for _, group := range p.ConflictGroups {
		grouped := make([]cpsat.IntervalVar, 0, len(group)*p.NumCandidates)
		for _, pi := range group {
			for c := 0; c < p.NumCandidates; c++ {
				grouped = append(grouped, intervals[c][pi])
			}
		}
		m.AddNoOverlap(grouped...)
	}
}

func addAvailabilityConstraints(m *cpsat.Model, p *problem.Validated, starts [][]cpsat.IntVar) {
	for c := 0; c < p.NumCandidates; c++ {
		for pi, panel := range p.Panels {
			windows := p.Availabilities[pi]
			options := make([]cpsat.BoolVar, len(windows))
			for wi, w := range windows {
				opt := m.NewBoolVar()
				options[wi] = opt
				m.AddGreaterOrEqual(starts[c][pi], cpsat.Constant(int64(w.Start))).OnlyEnforceIf(opt)
				// start + duration <= hi  <=>  start <= hi - duration.
				m.AddLessOrEqual(starts[c][pi], cpsat.Constant(int64(w.End-panel.Duration))).OnlyEnforceIf(opt)
			}
			cpsat.AddExactlyOne(m, toLiterals(options))
		}
	}
}

// addGapChainConstraints encodes, per candidate, a Hamiltonian path
// over the panels via "follows" edges (spec.md section 4.3's gap/chain
// topology). The edge booleans themselves are scoped to this
// function; nothing outside constraint-building needs them once the
// chain is enforced.
func addGapChainConstraints(m *cpsat.Model, p *problem.Validated, starts [][]cpsat.IntVar) {
	numPanels := len(p.Panels)

	for c := 0; c < p.NumCandidates; c++ {
		follows := make([][]cpsat.BoolVar, numPanels)
		for i := range follows {
			follows[i] = make([]cpsat.BoolVar, numPanels)
		}
		for p1 := 0; p1 < numPanels; p1++ {
			for p2 := 0; p2 < numPanels; p2++ {
				if p1 == p2 {
					continue
				}
				follows[p1][p2] = m.NewBoolVar()
			}
		}

		for p1 := 0; p1 < numPanels; p1++ {
			d1 := int64(p.Panels[p1].Duration)
			for p2 := 0; p2 < numPanels; p2++ {
				if p1 == p2 {
					continue
				}
				fv := follows[p1][p2]

				// p2 starts at or after p1 ends.
				m.AddGreaterOrEqual(cpsat.Diff(starts[c][p2], starts[c][p1]), cpsat.Constant(d1)).OnlyEnforceIf(fv)
				// the hard gap bound.
				m.AddLessOrEqual(cpsat.Diff(starts[c][p2], starts[c][p1]), cpsat.Constant(d1+int64(p.MaxGapSlots))).OnlyEnforceIf(fv)

				// nothing starts strictly between p1's end and p2's start.
				for p3 := 0; p3 < numPanels; p3++ {
					if p3 == p1 || p3 == p2 {
						continue
					}
					before := m.NewBoolVar()
					after := m.NewBoolVar()
					m.AddLessThan(cpsat.Diff(starts[c][p3], starts[c][p1]), cpsat.Constant(d1)).OnlyEnforceIf(fv, before)
					m.AddGreaterOrEqual(starts[c][p3], starts[c][p2]).OnlyEnforceIf(fv, after)
					m.AddBoolOr(before, after).OnlyEnforceIf(fv)
				}
			}
		}

		// At most one predecessor, at most one successor.
		for p0 := 0; p0 < numPanels; p0++ {
			incoming := make([]cpsat.BoolVar, 0, numPanels-1)
			outgoing := make([]cpsat.BoolVar, 0, numPanels-1)
			for other := 0; other < numPanels; other++ {
				if other == p0 {
					continue
				}
				incoming = append(incoming, follows[other][p0])
				outgoing = append(outgoing, follows[p0][other])
			}
			m.AddLessOrEqual(cpsat.Sum(incoming...), cpsat.Constant(1))
			m.AddLessOrEqual(cpsat.Sum(outgoing...), cpsat.Constant(1))
		}

		// Exactly |P|-1 follows edges: a single chain covering every
		// panel.
		all := make([]cpsat.BoolVar, 0, numPanels*(numPanels-1))
		for p1 := 0; p1 < numPanels; p1++ {
			for p2 := 0; p2 < numPanels; p2++ {
				if p1 != p2 {
					all = append(all, follows[p1][p2])
				}
			}
		}
		m.AddEquality(cpsat.Sum(all...), cpsat.Constant(int64(numPanels-1)))
	}
}

func addPositionConstraints(m *cpsat.Model, p *problem.Validated, starts [][]cpsat.IntVar) {
	numPanels := len(p.Panels)
	for c := 0; c < p.NumCandidates; c++ {
		for _, pin := range p.PositionPins {
			switch pin.Kind {
			case problem.PositionFirst:
				for other := 0; other < numPanels; other++ {
					if other == pin.PanelIndex {
						continue
					}
					m.AddLessOrEqual(starts[c][pin.PanelIndex], starts[c][other])
				}
			case problem.PositionLast:
				for other := 0; other < numPanels; other++ {
					if other == pin.PanelIndex {
						continue
					}
					dOther := int64(p.Panels[other].Duration)
					m.AddGreaterOrEqual(cpsat.Diff(starts[c][pin.PanelIndex], starts[c][other]), cpsat.Constant(dOther))
				}
			case problem.PositionIndex:
				precedes := make([]cpsat.BoolVar, 0, numPanels-1)
				for other := 0; other < numPanels; other++ {
					if other == pin.PanelIndex {
						continue
					}
					dOther := int64(p.Panels[other].Duration)
					pv := m.NewBoolVar()
					// pv  =>  other ends at or before pin starts.
					m.AddLessOrEqual(cpsat.Diff(starts[c][other], starts[c][pin.PanelIndex]), cpsat.Constant(-dOther)).OnlyEnforceIf(pv)
					// !pv =>  pin starts before other ends.
					m.AddLessThan(cpsat.Diff(starts[c][pin.PanelIndex], starts[c][other]), cpsat.Constant(dOther)).OnlyEnforceIf(pv.Not())
					precedes = append(precedes, pv)
				}
				m.AddEquality(cpsat.Sum(precedes...), cpsat.Constant(int64(pin.Index)))
			}
		}
	}
}

func addOrderPreferenceConstraints(m *cpsat.Model, p *problem.Validated, starts [][]cpsat.IntVar) [][]cpsat.BoolVar {
	breakVars := make([][]cpsat.BoolVar, p.NumCandidates)
	if len(p.Order) < 2 {
		for c := range breakVars {
			breakVars[c] = nil
		}
		return breakVars
	}

	for c := 0; c < p.NumCandidates; c++ {
		pairs := make([]cpsat.BoolVar, 0, len(p.Order)-1)
		for i := 0; i+1 < len(p.Order); i++ {
			q1, q2 := p.Order[i], p.Order[i+1]
			d1 := int64(p.Panels[q1].Duration)
			d2 := int64(p.Panels[q2].Duration)

			brk := m.NewBoolVar()
			// order preserved: q1 ends before q2 starts.
			m.AddGreaterOrEqual(cpsat.Diff(starts[c][q2], starts[c][q1]), cpsat.Constant(d1)).OnlyEnforceIf(brk.Not())
			// order violated: q2 ends before q1 starts.
			m.AddGreaterOrEqual(cpsat.Diff(starts[c][q1], starts[c][q2]), cpsat.Constant(d2)).OnlyEnforceIf(brk)

			pairs = append(pairs, brk)
		}
		breakVars[c] = pairs
	}
	return breakVars
}

func addNumBreaks(m *cpsat.Model, breakVars [][]cpsat.BoolVar) cpsat.IntVar {
	total := 0
	for _, pairs := range breakVars {
		total += len(pairs)
	}
	numBreaks := m.NewIntVarFromDomain(cpsat.Domain(0, int64(total)))
	all := make([]cpsat.BoolVar, 0, total)
	for _, pairs := range breakVars {
		all = append(all, pairs...)
	}
	m.AddEquality(numBreaks, cpsat.Sum(all...))
	return numBreaks
}

func addMakespan(m *cpsat.Model, p *problem.Validated, starts [][]cpsat.IntVar) cpsat.IntVar {
	makespan := m.NewIntVarFromDomain(cpsat.Domain(0, int64(p.Timeline.Slots)))
	for c := 0; c < p.NumCandidates; c++ {
		for pi, panel := range p.Panels {
			m.AddGreaterOrEqual(cpsat.Diff(makespan, starts[c][pi]), cpsat.Constant(int64(panel.Duration)))
		}
	}
	return makespan
}

func addObjective(m *cpsat.Model, p *problem.Validated, numBreaks, makespan cpsat.IntVar) {
	weight := objectiveBreakWeight(p.Timeline.Slots)
	objective := cpsat.NewLinearExpr().AddTerm(numBreaks, weight).AddTerm(makespan, 1)
	m.Minimize(objective)
}

func toLiterals(vars []cpsat.BoolVar) []cpsat.Literal {
	lits := make([]cpsat.Literal, len(vars))
	for i, v := range vars {
		lits[i] = v
	}
	return lits
}
