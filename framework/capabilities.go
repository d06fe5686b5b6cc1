package framework

// Capabilities is a list of strings naming optional features of the environment the tests run
// against, for instance "headless" or "firefox". Suites use them to skip tests that cannot run.
type Capabilities []string

// Has returns true if the specified string appears in the list.
func (cs Capabilities) Has(name string) bool {
	for _, c := range cs {
		if c == name {
			return true
		}
	}
	return false
}
