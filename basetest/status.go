package basetest

import (
	"fmt"

	"github.com/webtest-harness/webtest/framework/ldtest"
)

// Status is the outcome of a test as seen by teardown.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusSkipped
	// StatusOther is any outcome the runner reports that is none of the above.
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusSkipped:
		return "skipped"
	case StatusOther:
		return "other"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what the runner reports about a finished test.
type Result struct {
	Status Status
	Errors []error
}

// StatusFromScope maps an ldtest outcome to a Status.
func StatusFromScope(s ldtest.TestStatus) Status {
	switch s {
	case ldtest.StatusPassed:
		return StatusSuccess
	case ldtest.StatusFailed:
		return StatusFailure
	case ldtest.StatusSkipped:
		return StatusSkipped
	default:
		return StatusOther
	}
}

// ResultFromScope captures the current outcome of an ldtest scope. Called from a function
// registered with Defer, it sees the final outcome.
func ResultFromScope(t *ldtest.T) Result {
	return Result{Status: StatusFromScope(t.Status()), Errors: t.Errors()}
}
