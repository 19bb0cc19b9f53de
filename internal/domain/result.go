package domain

import "time"

// TestCaseResult is one named assertion reported by the harness inside a
// single test file.
type TestCaseResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// HarnessStatus is the harness-reported summary for a whole file,
// distinct from the process exit status.
type HarnessStatus struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
}

// TestResult is the outcome of executing one test file in the runtime
// under test. A nil HarnessStatus together with Status == 0 means the
// event loop ran out of tasks before the harness reported.
type TestResult struct {
	Status        int              // Process exit status, 0 is a clean exit
	HarnessStatus *HarnessStatus   // nil when the harness never reported
	Cases         []TestCaseResult // Per-case results in harness order
	Stderr        string
	Duration      time.Duration
}

// Harnessed reports whether the file exited cleanly with a harness report.
func (r *TestResult) Harnessed() bool {
	return r.Status == 0 && r.HarnessStatus != nil
}

// CompletedTest pairs a scheduled test with its result. Append order
// across buckets is undefined; order within a bucket matches discovery.
type CompletedTest struct {
	Test   TestToRun
	Result TestResult
}
