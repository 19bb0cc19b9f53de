package execution

import (
	"time"

	"wptr/internal/domain"
)

// Timeouts is the per-test timeout pair: Long applies to variations the
// manifest marks as long-running, Default to everything else.
type Timeouts struct {
	Default time.Duration
	Long    time.Duration
}

// TimeoutsFor returns the timeout budget. Continuous integration raises
// both values to the long one.
func TimeoutsFor(ci bool) Timeouts {
	t := Timeouts{Default: time.Minute, Long: 4 * time.Minute}
	if ci {
		t.Default = t.Long
	}
	return t
}

// For picks the effective timeout for one test.
func (t Timeouts) For(test domain.TestToRun) time.Duration {
	if test.LongTimeout() {
		return t.Long
	}
	return t.Default
}

// ProgressFunc receives each case as the harness reports it. A nil
// function disables live reporting.
type ProgressFunc func(domain.TestCaseResult)

// TestRunner executes one test file in the runtime under test. A timeout
// is a terminal-but-normal outcome with a non-zero status, never an
// error.
type TestRunner interface {
	RunSingleTest(test domain.TestToRun, progress ProgressFunc, timeouts Timeouts) domain.TestResult
}
