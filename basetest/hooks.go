package basetest

// Hooks are the suite-specific steps of the lifecycle.
type Hooks interface {
	// AfterLoggerReady runs at the end of BeginTest, once the execution has its logger. An
	// error aborts BeginTest.
	AfterLoggerReady(exec *Execution) error

	// BeforeTeardownLogging runs first in Execution.End. An error or panic is logged as a
	// warning and teardown continues.
	BeforeTeardownLogging(exec *Execution, result Result) error
}

// HookFuncs implements Hooks with optional functions; a nil function does nothing.
type HookFuncs struct {
	OnAfterLoggerReady      func(exec *Execution) error
	OnBeforeTeardownLogging func(exec *Execution, result Result) error
}

func (h HookFuncs) AfterLoggerReady(exec *Execution) error {
	if h.OnAfterLoggerReady == nil {
		return nil
	}
	return h.OnAfterLoggerReady(exec)
}

func (h HookFuncs) BeforeTeardownLogging(exec *Execution, result Result) error {
	if h.OnBeforeTeardownLogging == nil {
		return nil
	}
	return h.OnBeforeTeardownLogging(exec, result)
}
