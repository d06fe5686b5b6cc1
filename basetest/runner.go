package basetest

import (
	"github.com/webtest-harness/webtest/framework/ldtest"
)

// RunTest runs action as a subtest of t named after method, inside its own execution. The
// execution is ended when the subtest exits, with the subtest's final status, whether it
// passed, failed, panicked or was skipped. If the execution cannot begin, the subtest fails
// without running action.
func (c *Coordinator) RunTest(
	t *ldtest.T,
	declaringType string,
	method string,
	action func(t *ldtest.T, exec *Execution),
) {
	t.Run(method, func(t1 *ldtest.T) {
		exec, err := c.BeginTest(declaringType, method)
		if err != nil {
			t1.Errorf("test setup failed: %s", err)
			t1.FailNow()
		}
		t1.Defer(func() { exec.End(ResultFromScope(t1)) })
		t1.Debug("Logging for %s (execution %d)", exec.Name(), exec.ID())
		action(t1, exec)
	})
}
