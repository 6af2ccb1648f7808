// Package solve drives a single CP-SAT search over an encoded problem
// and decodes the raw variable assignment into caller-facing shapes.
// It is the module's equivalent of the teacher's Run loop: Driver.Solve
// plays the role meeting-scheduler's genetic-algorithm runner played,
// but hands off the actual search to internal/cpsat instead of
// iterating generations itself.
package solve

import (
	"time"

	"go.uber.org/zap"

	"github.com/candidateflow/interviewsched/encode"
	"github.com/candidateflow/interviewsched/internal/cpsat"
	"github.com/candidateflow/interviewsched/internal/obslog"
)

// Options configures a single Driver.Solve call.
type Options struct {
	// MaxWallTime bounds the search. Zero means no bound.
	MaxWallTime time.Duration
	// Seed pins the solver's random seed, if non-nil, for reproducible
	// runs over the same input (spec.md section 5).
	Seed *int64
	// NumWorkers bounds internal search parallelism. Zero leaves the
	// solver's default.
	NumWorkers int
	// Logger receives phase events. The zero value (obslog.Nop()) logs
	// nothing.
	Logger obslog.Logger
}

// Driver runs CP-SAT searches and decodes their results.
type Driver struct {
	opts Options
}

// New builds a Driver with the given Options.
func New(opts Options) *Driver {
	return &Driver{opts: opts}
}

// Solve runs a single search over enc and returns its outcome.
func (d *Driver) Solve(enc *encode.Encoded) (*Result, error) {
	d.opts.Logger.Info("encoding constraints",
		zap.Int("candidates", enc.Problem.NumCandidates),
		zap.Int("panels", len(enc.Problem.Panels)),
	)

	d.opts.Logger.Info("solving",
		zap.Duration("max_wall_time", d.opts.MaxWallTime),
	)

	response, rawStatus, err := cpsat.Solve(enc.Model, cpsat.SolveOptions{
		MaxWallTime: d.opts.MaxWallTime,
		Seed:        d.opts.Seed,
		NumWorkers:  d.opts.NumWorkers,
	})
	if err != nil {
		return nil, &SolverError{RawStatus: rawStatus.String(), Err: err}
	}

	status := statusFromCPSat(rawStatus)
	d.opts.Logger.Info("solve finished", zap.String("status", status.String()))

	if status == Infeasible || status == Unknown {
		return &Result{Status: status}, nil
	}

	return &Result{
		Status:   status,
		Solution: decode(enc, response),
	}, nil
}

// SolveDistinct runs up to n searches, each forbidding every
// assignment already found (internal/cpsat.AddNoGood), stopping early
// if the model becomes infeasible. It never mutates enc between calls
// except by accumulating no-good clauses on its model, matching
// spec.md section 9's enumeration note.
func (d *Driver) SolveDistinct(enc *encode.Encoded, n int) ([]*Result, error) {
	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		result, err := d.Solve(enc)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		if result.Status == Infeasible || result.Status == Unknown {
			break
		}
		forbidCurrentAssignment(enc, result.Solution)
	}
	return results, nil
}

func forbidCurrentAssignment(enc *encode.Encoded, sol *Solution) {
	lits := make([]cpsat.Literal, 0, enc.Problem.NumCandidates*len(enc.Problem.Panels))
	for c := 0; c < enc.Problem.NumCandidates; c++ {
		for pi := range enc.Problem.Panels {
			startVar := enc.Vars.Starts[c][pi]
			value := cpsat.Constant(int64(sol.StartSlot(c, pi)))

			matchesThisSolve := enc.Model.NewBoolVar()
			enc.Model.AddEquality(startVar, value).OnlyEnforceIf(matchesThisSolve)
			enc.Model.AddNotEqual(startVar, value).OnlyEnforceIf(matchesThisSolve.Not())
			lits = append(lits, matchesThisSolve)
		}
	}
	cpsat.AddNoGood(enc.Model, lits)
}

func statusFromCPSat(s cpsat.Status) Status {
	switch s {
	case cpsat.StatusOptimal:
		return Optimal
	case cpsat.StatusFeasible:
		return Feasible
	case cpsat.StatusInfeasible:
		return Infeasible
	default:
		return Unknown
	}
}

func decode(enc *encode.Encoded, response *cpsat.Response) *Solution {
	p := enc.Problem
	starts := make([][]int, p.NumCandidates)
	for c := 0; c < p.NumCandidates; c++ {
		starts[c] = make([]int, len(p.Panels))
		for pi := range p.Panels {
			starts[c][pi] = int(cpsat.IntValue(response, enc.Vars.Starts[c][pi]))
		}
	}

	breaks := 0
	for _, pairs := range enc.Vars.Breaks {
		for _, b := range pairs {
			if cpsat.BoolValue(response, b) {
				breaks++
			}
		}
	}

	return NewSolution(p, starts, breaks)
}
