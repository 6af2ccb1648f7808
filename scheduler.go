// Package scheduler schedules a day of candidate interviews across a
// fixed set of panels.
//
// Given a set of panels (with durations and per-panel availability
// windows), a number of candidates to run through them, and an
// optional preferred panel order, Scheduler finds an assignment of
// start times that respects every panel's availability, never
// double-books a panel or a shared resource, keeps each candidate's
// gaps between sessions under a configurable bound, and honors any
// pinned panel positions - while minimizing how often the preferred
// order is broken, then the length of the overall day.
//
// Unlike its predecessor, which searched for a schedule heuristically
// with a genetic algorithm, this package formulates the problem as a
// CP-SAT constraint model (github.com/google/or-tools) and lets an
// exact solver find - and prove - an optimal assignment.
package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/candidateflow/interviewsched/encode"
	"github.com/candidateflow/interviewsched/internal/obslog"
	"github.com/candidateflow/interviewsched/problem"
	"github.com/candidateflow/interviewsched/render"
	"github.com/candidateflow/interviewsched/solve"
)

// DefaultMaxWallTime bounds a single solve when no Config overrides
// it.
var DefaultMaxWallTime = 30 * time.Second

// Config is an optional configuration option for a Scheduler.
type Config func(*Scheduler)

// MaxWallTime bounds how long a single solve may run before the
// solver returns its best answer so far.
func MaxWallTime(d time.Duration) Config {
	return func(s *Scheduler) { s.maxWallTime = d }
}

// RandomSeed pins the solver's internal random seed, making repeated
// solves over the same problem reproducible.
func RandomSeed(seed int64) Config {
	return func(s *Scheduler) { s.seed = &seed }
}

// NumWorkers bounds the solver's internal search parallelism.
func NumWorkers(n int) Config {
	return func(s *Scheduler) { s.numWorkers = n }
}

// WithLogger attaches a *zap.Logger that receives phase events
// ("encoding constraints", "solving", "solve finished"). Without this
// option, a Scheduler logs nothing.
func WithLogger(z *zap.Logger) Config {
	return func(s *Scheduler) { s.logger = obslog.New(z) }
}

// Scheduler schedules interview days for a validated problem.
type Scheduler struct {
	problem *problem.Validated

	maxWallTime time.Duration
	seed        *int64
	numWorkers  int
	logger      obslog.Logger
}

// New validates raw and builds a Scheduler for it. Validation happens
// immediately, so a caller learns about a malformed problem before
// paying for any solver setup.
func New(raw problem.RawProblem, options ...Config) (*Scheduler, error) {
	validated, err := problem.Validate(raw)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		problem:     validated,
		maxWallTime: DefaultMaxWallTime,
		logger:      obslog.Nop(),
	}
	for _, o := range options {
		o(s)
	}
	return s, nil
}

// Solve runs a single search for this Scheduler's problem.
func (s *Scheduler) Solve() (*solve.Result, error) {
	enc := encode.Encode(s.problem)
	driver := solve.New(solve.Options{
		MaxWallTime: s.maxWallTime,
		Seed:        s.seed,
		NumWorkers:  s.numWorkers,
		Logger:      s.logger,
	})
	return driver.Solve(enc)
}

// SolveDistinct runs up to n searches, each forbidding every
// assignment already found, useful for presenting a candidate set of
// alternative schedules rather than a single answer.
func (s *Scheduler) SolveDistinct(n int) ([]*solve.Result, error) {
	enc := encode.Encode(s.problem)
	driver := solve.New(solve.Options{
		MaxWallTime: s.maxWallTime,
		Seed:        s.seed,
		NumWorkers:  s.numWorkers,
		Logger:      s.logger,
	})
	return driver.SolveDistinct(enc, n)
}

// ExportCSV renders a solution as a time-by-slot, candidate-by-column
// CSV grid, with date captioning the header's first cell.
func ExportCSV(sol *solve.Solution, date string) (string, error) {
	return render.CSV(sol, date)
}
