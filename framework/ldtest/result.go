package ldtest

import (
	"fmt"
	"strings"
)

// TestStatus is the outcome of a single test scope.
type TestStatus int

const (
	StatusPassed TestStatus = iota
	StatusFailed
	StatusSkipped
)

func (s TestStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("TestStatus(%d)", int(s))
	}
}

type Results struct {
	Tests               []TestResult
	Failures            []TestResult
	NonCriticalFailures []TestResult
}

type TestResult struct {
	TestID      TestID
	Status      TestStatus
	Errors      []error
	NonCritical bool
	Explanation string
}

// OK returns true if there were no failures other than non-critical ones.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with name appended; the original is not modified.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
