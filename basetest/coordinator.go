package basetest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"

	"github.com/webtest-harness/webtest/framework/helpers"
	"github.com/webtest-harness/webtest/logging"
)

// LoggingProvider supplies the logging setting and creates persistent loggers.
// *logging.Provider implements it.
type LoggingProvider interface {
	LoggingEnabledSetting() logging.LoggingEnabled
	Logger(name string) (logging.Logger, error)
}

// ExecutionID identifies an Execution within its Coordinator.
type ExecutionID uint64

// Coordinator creates and tears down test executions. It is safe for concurrent use.
type Coordinator struct {
	provider LoggingProvider
	hooks    Hooks
	config   coordinatorConfig
	records  sync.Map // ExecutionID -> *executionRecord
	lastID   atomic.Uint64
}

type coordinatorConfig struct {
	console      io.Writer
	consoleLevel logging.MessageType
	now          func() time.Time
	diagnostics  ldlog.Loggers
	ledger       *ExceptionLedger
	removeFile   func(path string) error
}

// Option configures a Coordinator.
type Option = helpers.ConfigOptionFunc[coordinatorConfig]

// WithConsole sets the stream used for logging fallbacks, for copies of error messages written
// to log files, and for console-only loggers. The default is standard output.
func WithConsole(w io.Writer) Option {
	return func(c *coordinatorConfig) error {
		if w == nil {
			return errors.New("console writer must not be nil")
		}
		c.console = w
		return nil
	}
}

// WithConsoleLevel sets the level of the console-only logger used when logging is disabled.
// The default is Information.
func WithConsoleLevel(level logging.MessageType) Option {
	return func(c *coordinatorConfig) error {
		c.consoleLevel = level
		return nil
	}
}

// WithClock sets the time source used for log names.
func WithClock(now func() time.Time) Option {
	return func(c *coordinatorConfig) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		c.now = now
		return nil
	}
}

// WithDiagnostics sets where the coordinator reports on its own activity. By default this
// output is disabled.
func WithDiagnostics(loggers ldlog.Loggers) Option {
	return func(c *coordinatorConfig) error {
		c.diagnostics = loggers
		return nil
	}
}

// WithLedger makes the coordinator use an existing ledger, so that several coordinators can
// share one. By default each coordinator has its own.
//
// Entries are keyed by test name, so executions of the same test share an entry, and ending
// any of them removes it.
func WithLedger(ledger *ExceptionLedger) Option {
	return func(c *coordinatorConfig) error {
		if ledger == nil {
			return errors.New("ledger must not be nil")
		}
		c.ledger = ledger
		return nil
	}
}

// WithFileRemover replaces os.Remove for deleting log files.
func WithFileRemover(remove func(path string) error) Option {
	return func(c *coordinatorConfig) error {
		if remove == nil {
			return errors.New("file remover must not be nil")
		}
		c.removeFile = remove
		return nil
	}
}

// NewCoordinator creates a Coordinator. Both provider and hooks are required.
func NewCoordinator(provider LoggingProvider, hooks Hooks, options ...Option) (*Coordinator, error) {
	if provider == nil {
		return nil, errors.New("logging provider must not be nil")
	}
	if hooks == nil {
		return nil, errors.New("hooks must not be nil")
	}
	config := coordinatorConfig{
		console:      os.Stdout,
		consoleLevel: logging.Information,
		now:          time.Now,
		diagnostics:  ldlog.NewDisabledLoggers(),
		removeFile:   os.Remove,
	}
	if err := helpers.ApplyOptions(&config, options...); err != nil {
		return nil, err
	}
	if config.ledger == nil {
		config.ledger = NewExceptionLedger()
	}
	config.console = &syncWriter{w: config.console}
	return &Coordinator{provider: provider, hooks: hooks, config: config}, nil
}

// BeginTest starts an execution for the given test. It resolves the logging setting, creates
// the logger (console-only if logging is disabled, otherwise a persistent logger named after
// the test and the current UTC time) and then runs the AfterLoggerReady hook.
//
// An error from the logging provider or from the hook is returned and no execution is left
// behind.
func (c *Coordinator) BeginTest(declaringType, method string) (*Execution, error) {
	name := QualifiedName(declaringType, method)
	rec := &executionRecord{
		name:    name,
		setting: c.provider.LoggingEnabledSetting(),
	}

	if rec.setting == logging.EnabledNever {
		rec.logger = logging.NewConsoleLogger(c.config.consoleLevel, c.config.console)
	} else {
		logName := logging.SafeFormat("%s - %s", name, logNameTimestamp(c.config.now()))
		logger, err := c.provider.Logger(logName)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger for %s: %w", name, err)
		}
		if logger == nil {
			return nil, fmt.Errorf("logging provider returned no logger for %s", name)
		}
		rec.logger = logger
	}

	exec := &Execution{id: ExecutionID(c.lastID.Add(1)), name: name, coordinator: c}
	c.records.Store(exec.id, rec)
	c.config.diagnostics.Debugf("Began execution %d for %s (logging %s)", exec.id, name, rec.setting)

	if err := callSafely(func() error { return c.hooks.AfterLoggerReady(exec) }); err != nil {
		// Only drop ledger messages that this execution alone wrote; with a shared ledger another
		// execution of the same test may be using the entry.
		if own := rec.ownLedgerEntry(); own != nil {
			c.config.ledger.removeIfCurrent(name, own)
		}
		c.records.Delete(exec.id)
		return nil, fmt.Errorf("post-logger setup failed for %s: %w", name, err)
	}
	return exec, nil
}

// Lookup returns the active execution with the given ID.
func (c *Coordinator) Lookup(id ExecutionID) (*Execution, error) {
	v, ok := c.records.Load(id)
	if !ok {
		return nil, ErrUninitializedContext
	}
	return &Execution{id: id, name: v.(*executionRecord).name, coordinator: c}, nil
}

// Ledger returns the exception ledger used by this coordinator's executions.
func (c *Coordinator) Ledger() *ExceptionLedger {
	return c.config.ledger
}

// Active returns the number of executions that have begun and not yet ended.
func (c *Coordinator) Active() int {
	n := 0
	c.records.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

func (c *Coordinator) release(id ExecutionID, name string) {
	c.config.ledger.Remove(name)
	c.records.Delete(id)
}

func logNameTimestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%06d", t.Format("2006-01-02-15-04-05"), t.Nanosecond()/int(time.Microsecond))
}

// callSafely turns a panic in fn into an error.
func callSafely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

type syncWriter struct {
	lock sync.Mutex
	w    io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.w.Write(p)
}
