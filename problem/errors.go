package problem

import "fmt"

// ErrorKind identifies which of spec.md section 4.2's checks failed.
type ErrorKind string

const (
	BadTime             ErrorKind = "BadTime"
	BadDuration         ErrorKind = "BadDuration"
	BadWindow           ErrorKind = "BadWindow"
	UnknownPanelInOrder ErrorKind = "UnknownPanelInOrder"
	MissingAvailability ErrorKind = "MissingAvailability"
	UnknownPinnedPanel  ErrorKind = "UnknownPinnedPanel"
	BadPosition         ErrorKind = "BadPosition"
	BadConflictGroup    ErrorKind = "BadConflictGroup"
	UnknownSharedPanel  ErrorKind = "UnknownSharedPanel"
	BadCandidateCount   ErrorKind = "BadCandidateCount"
	BadDayShape         ErrorKind = "BadDayShape"
)

// ValidationError reports a single well-formedness failure detected by
// Validate. The core never attempts a partial solve after one of
// these; the caller must fix the input.
type ValidationError struct {
	Kind   ErrorKind
	Panel  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Panel == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: panel %q: %s", e.Kind, e.Panel, e.Detail)
}

func newValidationError(kind ErrorKind, panel, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Panel: panel, Detail: detail}
}
