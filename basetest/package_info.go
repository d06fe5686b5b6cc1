// Package basetest coordinates the lifecycle of individual browser tests.
//
// A Coordinator is shared by all tests of a suite. BeginTest gives each test its own Execution,
// which owns the test's logger and logging setting; no two executions share state, so tests may
// run concurrently on different goroutines. Execution.End runs a fixed teardown sequence that
// never fails: the suite's pre-teardown hook, one summary log line for the result, removal of
// the log file when logs are only kept for failures, and removal of the test's entry in the
// exception ledger.
//
// Logging from the lifecycle itself is best-effort. If the test's logger cannot write a message,
// the message goes to the console instead; logging problems never fail a test.
package basetest
