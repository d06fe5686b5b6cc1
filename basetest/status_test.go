package basetest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webtest-harness/webtest/framework/ldtest"
)

func TestStatusFromScope(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusFromScope(ldtest.StatusPassed))
	assert.Equal(t, StatusFailure, StatusFromScope(ldtest.StatusFailed))
	assert.Equal(t, StatusSkipped, StatusFromScope(ldtest.StatusSkipped))
	assert.Equal(t, StatusOther, StatusFromScope(ldtest.TestStatus(99)))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "failure", StatusFailure.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "other", StatusOther.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}

func TestResultFromScope(t *testing.T) {
	var passed, failed Result
	ldtest.Run(ldtest.TestConfiguration{}, func(ldt *ldtest.T) {
		ldt.Run("passes", func(ldt1 *ldtest.T) {
			ldt1.Defer(func() { passed = ResultFromScope(ldt1) })
		})
		ldt.Run("fails", func(ldt1 *ldtest.T) {
			ldt1.Defer(func() { failed = ResultFromScope(ldt1) })
			ldt1.Errorf("%s", errors.New("wrong total"))
		})
	})

	assert.Equal(t, Result{Status: StatusSuccess}, passed)
	assert.Equal(t, StatusFailure, failed.Status)
	assert.Len(t, failed.Errors, 1)
}
