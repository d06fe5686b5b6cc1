// Package internal holds functions that the ldtest tests need to see in a stack trace as
// belonging to a package other than ldtest.
package internal

// RunAction calls action.
func RunAction(action func()) {
	action()
}
