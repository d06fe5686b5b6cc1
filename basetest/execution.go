package basetest

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/webtest-harness/webtest/framework/helpers"
	"github.com/webtest-harness/webtest/logging"
)

// ErrUninitializedContext is returned by Execution accessors once the execution has ended, or
// if it never finished beginning.
var ErrUninitializedContext = errors.New("uninitialized execution context: no active test execution")

// Summary lines written by End.
const (
	passedMessage     = "Test Passed"
	failedMessage     = "Test Failed"
	skippedMessage    = "Test was skipped"
	unexpectedMessage = "Test had an unexpected result."
)

type executionRecord struct {
	name    string
	lock    sync.Mutex
	logger  logging.Logger
	setting logging.LoggingEnabled
	ending  atomic.Bool

	// ownEntry is the ledger entry last written by this execution, as long as nothing else has
	// written to the entry since; otherwise nil.
	ownEntry *ledgerEntry
}

func (r *executionRecord) wroteEntry(previous, stored *ledgerEntry, replacesAll bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if replacesAll || previous == nil || previous == r.ownEntry {
		r.ownEntry = stored
	} else {
		r.ownEntry = nil
	}
}

func (r *executionRecord) ownLedgerEntry() *ledgerEntry {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.ownEntry
}

func (r *executionRecord) snapshot() (logging.Logger, logging.LoggingEnabled) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.logger, r.setting
}

// Execution is the handle for one running test. Handles are cheap; any number of them may
// refer to the same execution.
type Execution struct {
	id          ExecutionID
	name        string
	coordinator *Coordinator
}

// ID returns the identifier that Coordinator.Lookup accepts.
func (e *Execution) ID() ExecutionID { return e.id }

// Name returns the fully qualified test name.
func (e *Execution) Name() string { return e.name }

func (e *Execution) record() (*executionRecord, error) {
	v, ok := e.coordinator.records.Load(e.id)
	if !ok {
		return nil, ErrUninitializedContext
	}
	return v.(*executionRecord), nil
}

// Logger returns the logger chosen by BeginTest, or the one set with SetLogger.
func (e *Execution) Logger() (logging.Logger, error) {
	rec, err := e.record()
	if err != nil {
		return nil, err
	}
	logger, _ := rec.snapshot()
	return logger, nil
}

// SetLogger replaces the execution's logger. Log-file cleanup in End applies to the new logger.
func (e *Execution) SetLogger(logger logging.Logger) error {
	if logger == nil {
		return errors.New("logger must not be nil")
	}
	rec, err := e.record()
	if err != nil {
		return err
	}
	rec.lock.Lock()
	rec.logger = logger
	rec.lock.Unlock()
	return nil
}

// LoggingSetting returns the setting resolved for this execution by BeginTest, or the one set
// with SetLoggingSetting.
func (e *Execution) LoggingSetting() (logging.LoggingEnabled, error) {
	rec, err := e.record()
	if err != nil {
		return 0, err
	}
	_, setting := rec.snapshot()
	return setting, nil
}

// SetLoggingSetting overrides the logging setting for this execution only. It does not change
// the logger that was already chosen, but it does change whether End deletes the log file.
func (e *Execution) SetLoggingSetting(setting logging.LoggingEnabled) error {
	rec, err := e.record()
	if err != nil {
		return err
	}
	rec.lock.Lock()
	rec.setting = setting
	rec.lock.Unlock()
	return nil
}

// LoggedExceptions returns the messages recorded for this test; the slice is empty, not nil,
// if there are none.
func (e *Execution) LoggedExceptions() ([]string, error) {
	if _, err := e.record(); err != nil {
		return nil, err
	}
	if messages, ok := e.coordinator.config.ledger.Get(e.name); ok {
		return messages, nil
	}
	return []string{}, nil
}

// SetLoggedExceptions replaces the messages recorded for this test.
func (e *Execution) SetLoggedExceptions(messages []string) error {
	rec, err := e.record()
	if err != nil {
		return err
	}
	stored := e.coordinator.config.ledger.set(e.name, messages)
	rec.wroteEntry(nil, stored, true)
	return nil
}

// RecordException adds message to this test's ledger entry and writes it to the test log as an
// error.
func (e *Execution) RecordException(message string) error {
	rec, err := e.record()
	if err != nil {
		return err
	}
	previous, stored := e.coordinator.config.ledger.append(e.name, message)
	rec.wroteEntry(previous, stored, false)
	e.TryToLog(logging.Error, "%s", message)
	return nil
}

// RequireNoLoggedExceptions fails t, reporting every recorded message, if this test has
// recorded any exceptions.
func (e *Execution) RequireNoLoggedExceptions(t helpers.TestContext) {
	messages, err := e.LoggedExceptions()
	if err != nil {
		t.Errorf("%s", err)
		t.FailNow()
		return
	}
	if len(messages) == 0 {
		return
	}
	for _, m := range messages {
		t.Errorf("logged exception: %s", m)
	}
	t.FailNow()
}

// TryToLog writes a message to the test's logger without ever failing. If the message cannot be
// written, it is printed to the console along with the reason, and false is returned. Error
// messages written to a file-backed logger are also printed to the console.
func (e *Execution) TryToLog(messageType logging.MessageType, message string, args ...interface{}) bool {
	console := e.coordinator.config.console
	formatted := logging.SafeFormat(message, args...)

	logger, err := e.Logger()
	if err == nil {
		err = callSafely(func() error { return logger.LogMessage(messageType, "%s", formatted) })
	}
	if err != nil {
		fmt.Fprintf(console, "%s\nLogging failed because: %s\n", formatted, err)
		return false
	}

	if messageType == logging.Error {
		if _, ok := logger.(logging.FileBacked); ok {
			fmt.Fprintln(console, formatted)
		}
	}
	return true
}

// End tears the execution down. It never panics and never fails; every problem along the way
// is logged as a warning and the remaining steps still run. Only the first call has any effect.
func (e *Execution) End(result Result) {
	c := e.coordinator
	rec, err := e.record()
	if err != nil || !rec.ending.CompareAndSwap(false, true) {
		c.config.diagnostics.Warnf("End called for execution %d (%s) which is not active", e.id, e.name)
		return
	}

	if err := callSafely(func() error { return c.hooks.BeforeTeardownLogging(e, result) }); err != nil {
		e.TryToLog(logging.Warning, "Failed before logging teardown because: %s", err.Error())
	}

	e.logSummary(result.Status)

	if err := callSafely(func() error { return e.cleanupLogFile(rec, result.Status) }); err != nil {
		e.TryToLog(logging.Warning, "Failed to cleanup log files because: %s", err.Error())
	}

	c.release(e.id, e.name)
	c.config.diagnostics.Debugf("Ended execution %d for %s (%s)", e.id, e.name, result.Status)
}

func (e *Execution) logSummary(status Status) {
	switch status {
	case StatusSuccess:
		e.TryToLog(logging.Success, passedMessage)
	case StatusFailure:
		e.TryToLog(logging.Error, failedMessage)
	case StatusSkipped:
		e.TryToLog(logging.Information, skippedMessage)
	default:
		e.TryToLog(logging.Warning, unexpectedMessage)
	}
}

// cleanupLogFile deletes the log file of a passing test when logs are only kept for failures.
func (e *Execution) cleanupLogFile(rec *executionRecord, status Status) error {
	logger, setting := rec.snapshot()
	fileLogger, ok := logger.(logging.FileBacked)
	if !ok || status != StatusSuccess || setting != logging.EnabledOnFail {
		return nil
	}
	if err := e.coordinator.config.removeFile(fileLogger.FilePath()); err != nil {
		return err
	}
	e.coordinator.config.diagnostics.Debugf("Removed log file %s", fileLogger.FilePath())
	return nil
}
