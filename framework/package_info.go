// Package framework contains shared infrastructure for the browser test harness: the debug
// Logger interface used by test scopes, and the capturing logger that records a scope's output
// so it can be reported when the test finishes.
//
// The general model is:
//
// 1. Tests run inside ldtest scopes, which behave much like Go's testing.T but are driven as
// regular application code.
//
// 2. The basetest package attaches a lifecycle to each scope: a per-test logger, a teardown
// sequence that always runs, and a ledger of exceptions recorded by the test body.
//
// 3. Domain helpers such as uifind operate on browser objects and know nothing about the
// lifecycle.
package framework
