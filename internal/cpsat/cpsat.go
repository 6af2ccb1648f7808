// Package cpsat is a thin seam around the vendored CP-SAT bindings
// (github.com/google/or-tools/ortools/sat/go/cpmodel), the same kind
// of single adapter area the teacher keeps its own third-party solver
// glue in (eaopt's Genome methods all live on one type). encode and
// solve talk to this package in domain terms; the raw builder calls
// live here and nowhere else.
package cpsat

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
)

type (
	// Model is the CP-SAT model under construction.
	Model = cpmodel.Builder
	// IntVar is an integer decision variable.
	IntVar = cpmodel.IntVar
	// BoolVar is a boolean decision variable.
	BoolVar = cpmodel.BoolVar
	// IntervalVar is a (start, size, end) interval over an IntVar
	// timeline, used in no-overlap constraints.
	IntervalVar = cpmodel.IntervalVar
	// Literal is a BoolVar or its negation, accepted by
	// OnlyEnforceIf/AddBoolOr/AddImplication.
	Literal = cpmodel.Literal
	// Response is a solved (or partially solved) model's result.
	Response = cmpb.CpSolverResponse
)

// NewModel starts a new, empty CP-SAT model.
func NewModel() *Model {
	return cpmodel.NewCpModelBuilder()
}

// Domain wraps cpmodel.NewDomain for callers that don't want to
// import cpmodel directly.
func Domain(lo, hi int64) cpmodel.Domain {
	return cpmodel.NewDomain(lo, hi)
}

// LinearExpr is a sum of weighted IntVar/BoolVar terms plus a
// constant, used wherever a constraint needs to compare more than one
// variable (e.g. "end of p1 <= start of p2").
type LinearExpr = cpmodel.LinearExpr

// NewLinearExpr starts an empty linear expression.
func NewLinearExpr() *LinearExpr {
	return cpmodel.NewLinearExpr()
}

// Constant returns a LinearExpr holding a fixed value, for comparing a
// variable sum against a plain number.
func Constant(v int64) *LinearExpr {
	return cpmodel.NewConstant(v)
}

// Diff builds the linear expression a - b, the shape every "gap"-style
// constraint in encode reduces to.
func Diff(a, b IntVar) *LinearExpr {
	return NewLinearExpr().AddTerm(a, 1).AddTerm(b, -1)
}

// Sum builds the linear expression that adds every BoolVar in vars
// (coefficient 1 each).
func Sum(vars ...BoolVar) *LinearExpr {
	expr := NewLinearExpr()
	for _, v := range vars {
		expr.AddTerm(v, 1)
	}
	return expr
}

// Status mirrors the subset of cmpb.CpSolverStatus this module cares
// about, without requiring every caller to import the proto package.
type Status int

const (
	StatusUnknown Status = iota
	StatusModelInvalid
	StatusFeasible
	StatusInfeasible
	StatusOptimal
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

func statusFromProto(s cmpb.CpSolverStatus) Status {
	switch s {
	case cmpb.CpSolverStatus_OPTIMAL:
		return StatusOptimal
	case cmpb.CpSolverStatus_FEASIBLE:
		return StatusFeasible
	case cmpb.CpSolverStatus_INFEASIBLE:
		return StatusInfeasible
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return StatusModelInvalid
	default:
		return StatusUnknown
	}
}

// SolveOptions configures a single CP-SAT search.
type SolveOptions struct {
	// MaxWallTime bounds how long the search may run.
	MaxWallTime time.Duration
	// Seed, if non-nil, pins the solver's random seed for
	// reproducibility across runs of the same input (spec.md section
	// 5).
	Seed *int64
	// NumWorkers, if > 0, bounds the number of search threads CP-SAT
	// spawns internally. Zero leaves it at the solver's default.
	NumWorkers int
}

// Solve compiles model and runs CP-SAT search under opts, returning
// the raw solver response and a high-level Status. A non-nil error
// indicates the solver itself malfunctioned (out of memory, an
// unexpected internal status) rather than a normal Infeasible/Unknown
// outcome.
func Solve(model *Model, opts SolveOptions) (*Response, Status, error) {
	compiled, err := model.Model()
	if err != nil {
		return nil, StatusUnknown, fmt.Errorf("cpsat: compile model: %w", err)
	}

	params := &sppb.SatParameters{}
	if opts.MaxWallTime > 0 {
		seconds := opts.MaxWallTime.Seconds()
		params.MaxTimeInSeconds = &seconds
	}
	if opts.Seed != nil {
		seed := int32(*opts.Seed)
		params.RandomSeed = &seed
	}
	if opts.NumWorkers > 0 {
		workers := int32(opts.NumWorkers)
		params.NumWorkers = &workers
	}

	response, err := cpmodel.SolveCpModelWithSatParameters(compiled, params)
	if err != nil {
		return nil, StatusUnknown, fmt.Errorf("cpsat: solve: %w", err)
	}

	status := statusFromProto(response.GetStatus())
	if status == StatusModelInvalid {
		return response, status, fmt.Errorf("cpsat: model rejected by solver: %s", response.GetStatus())
	}
	if status == StatusUnknown && response.GetStatus() != cmpb.CpSolverStatus_UNKNOWN {
		return response, StatusUnknown, fmt.Errorf("cpsat: unexpected solver status %s", response.GetStatus())
	}
	return response, status, nil
}

// IntValue reads a solved IntVar's value out of a Response.
func IntValue(response *Response, v IntVar) int64 {
	return cpmodel.SolutionIntegerValue(response, v)
}

// BoolValue reads a solved BoolVar's value out of a Response.
func BoolValue(response *Response, v BoolVar) bool {
	return cpmodel.SolutionBooleanValue(response, v)
}

// AddExactlyOne constrains exactly one of lits to be true. Neither
// pack sample exercises a dedicated "exactly one" builder method, so
// this is built from the primitives both samples do show: AddBoolOr
// for "at least one true", plus a pairwise AddBoolOr over each pair's
// negation for "at most one true".
func AddExactlyOne(model *Model, lits []Literal) {
	model.AddBoolOr(lits...)
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			model.AddBoolOr(lits[i].Not(), lits[j].Not())
		}
	}
}

// AddNoGood forbids the exact combination of assignments captured by
// lits from reoccurring in a subsequent solve over the same model
// (spec.md section 9's "lazy no-goods" note for enumerating distinct
// solutions: at least one of lits must differ next time).
func AddNoGood(model *Model, lits []Literal) {
	negated := make([]Literal, len(lits))
	for i, l := range lits {
		negated[i] = l.Not()
	}
	model.AddBoolOr(negated...)
}
