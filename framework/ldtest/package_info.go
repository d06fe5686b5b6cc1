// Package ldtest runs test scopes the way Go's testing package does, but as ordinary application
// code: a browser suite can be started from its own binary, filtered by test ID, and reported to
// the console or a JUnit file. Each scope's final status is visible to its deferred cleanups,
// which is where per-test logging is torn down.
package ldtest
