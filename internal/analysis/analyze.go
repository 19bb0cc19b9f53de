// Package analysis classifies test results against the expectation
// baseline. Everything here is pure: results in, counts and names out.
package analysis

import (
	"wptr/internal/domain"
)

// FileAnalysis is the per-file case classification.
//
// FailedCount folds in genuine failures and expected failures that
// passed instead, since both mean the file diverges from the baseline;
// PassedCount + FailedCount + ExpectedFailedAndFailedCount always equals
// TotalCount.
type FileAnalysis struct {
	Failed                       []string // cases failing against a pass expectation
	ExpectedFailedButPassed      []string // cases passing against a fail expectation
	ExpectedFailedAndFailedCount int      // cases failing exactly as the baseline says
	PassedCount                  int
	FailedCount                  int
	TotalCount                   int
}

// Analyze classifies every case of one result against the file's
// expectation.
func Analyze(result domain.TestResult, exp domain.Expectation) FileAnalysis {
	var a FileAnalysis
	for _, c := range result.Cases {
		expectFail := exp.ExpectFail(c.Name)
		switch {
		case c.Passed && !expectFail:
			a.PassedCount++
		case c.Passed && expectFail:
			a.ExpectedFailedButPassed = append(a.ExpectedFailedButPassed, c.Name)
			a.FailedCount++
		case !c.Passed && !expectFail:
			a.Failed = append(a.Failed, c.Name)
			a.FailedCount++
		default:
			a.ExpectedFailedAndFailedCount++
		}
	}
	a.TotalCount = len(result.Cases)
	return a
}

// FileStatus is the per-file outcome independent of case classification.
type FileStatus string

const (
	StatusOK    FileStatus = "OK"    // clean harness run, no divergence
	StatusFail  FileStatus = "FAIL"  // clean harness run, diverging cases
	StatusCrash FileStatus = "CRASH" // non-zero exit status, timeouts included
	StatusError FileStatus = "ERROR" // harness never reported or reported an error
)

// StatusOf derives the file status. A crash or error overrides any case
// data.
func StatusOf(result domain.TestResult, a FileAnalysis) FileStatus {
	switch {
	case result.Status != 0:
		return StatusCrash
	case result.HarnessStatus == nil:
		return StatusError
	case result.HarnessStatus.Status != 0:
		return StatusError
	case len(a.Failed) > 0 || len(a.ExpectedFailedButPassed) > 0:
		return StatusFail
	default:
		return StatusOK
	}
}

// FileOutcome bundles one completed test with its classification.
type FileOutcome struct {
	Test     domain.TestToRun
	Result   domain.TestResult
	Analysis FileAnalysis
	Status   FileStatus
}

// Diverged reports whether the file needs baseline attention. A crash or
// timeout of a file whose whole expectation is false is the expected
// outcome, not a divergence.
func (f *FileOutcome) Diverged() bool {
	if !f.Result.Harnessed() {
		return !f.Test.Expectation.WholeFileFails()
	}
	return len(f.Analysis.Failed) > 0 || len(f.Analysis.ExpectedFailedButPassed) > 0
}

// RunAnalysis aggregates a whole run.
type RunAnalysis struct {
	Files            []FileOutcome
	TotalCases       int
	PassedCases      int
	FailedCases      int
	ExpectedFailures int
	DivergedFiles    []string // files needing baseline attention
}

// Aggregate classifies every completed test and folds up run statistics.
func Aggregate(completed []domain.CompletedTest) RunAnalysis {
	var run RunAnalysis
	for _, ct := range completed {
		a := Analyze(ct.Result, ct.Test.Expectation)
		outcome := FileOutcome{
			Test:     ct.Test,
			Result:   ct.Result,
			Analysis: a,
			Status:   StatusOf(ct.Result, a),
		}
		run.TotalCases += a.TotalCount
		run.PassedCases += a.PassedCount
		run.FailedCases += a.FailedCount
		run.ExpectedFailures += a.ExpectedFailedAndFailedCount
		if !ct.Result.Harnessed() && ct.Test.Expectation.WholeFileFails() {
			run.ExpectedFailures++
		}
		if outcome.Diverged() {
			run.DivergedFiles = append(run.DivergedFiles, ct.Test.Path)
		}
		run.Files = append(run.Files, outcome)
	}
	return run
}

// ExitCode is 0 only when no file diverged from the baseline.
func (r *RunAnalysis) ExitCode() int {
	if len(r.DivergedFiles) > 0 {
		return 1
	}
	return 0
}
