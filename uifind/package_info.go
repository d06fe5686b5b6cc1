// Package uifind looks up page elements through a playwright-go search root.
//
// Every lookup either fails with a NotFoundError when nothing matches, or quietly returns an
// absent result; a Finder throws by default, and ThrowOnMissing(false) returns one that doesn't.
package uifind
