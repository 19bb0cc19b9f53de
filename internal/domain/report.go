package domain

// WptReport is the wptreport-shaped JSON document emitted with --wptreport.
type WptReport struct {
	RunInfo   RunInfo           `json:"run_info"`
	TimeStart int64             `json:"time_start"`
	TimeEnd   int64             `json:"time_end"`
	Results   []WptReportResult `json:"results"`
}

// RunInfo carries run metadata in the report header.
type RunInfo struct {
	RunID    string `json:"run_id"`
	Product  string `json:"product"`
	Revision string `json:"revision,omitempty"`
	OS       string `json:"os"`
	Arch     string `json:"arch"`
}

// WptReportResult is one file entry in the report.
type WptReportResult struct {
	Test              string             `json:"test"`
	Subtests          []WptReportSubtest `json:"subtests"`
	Status            string             `json:"status"`
	Message           string             `json:"message,omitempty"`
	Duration          int64              `json:"duration"`
	Expected          string             `json:"expected,omitempty"`
	KnownIntermittent []string           `json:"known_intermittent"`
}

// WptReportSubtest is one case entry under a file.
type WptReportSubtest struct {
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	Message           string   `json:"message,omitempty"`
	Expected          string   `json:"expected,omitempty"`
	KnownIntermittent []string `json:"known_intermittent"`
}

// RunSummaryMeta contains aggregate statistics about a run, persisted with
// --json and rendered by the console formatter.
type RunSummaryMeta struct {
	TotalFiles       int     `json:"total_files"`
	PassedFiles      int     `json:"passed_files"`
	FailedFiles      int     `json:"failed_files"`
	TotalCases       int     `json:"total_cases"`
	PassedCases      int     `json:"passed_cases"`
	FailedCases      int     `json:"failed_cases"`
	ExpectedFailures int     `json:"expected_failures"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Workers          int     `json:"workers"`
	Timestamp        string  `json:"timestamp"`
}

// CaseFailure records one divergent case for the summary file and the
// interactive viewer.
type CaseFailure struct {
	CaseName string `json:"case_name"`
	FilePath string `json:"file_path"`
	Message  string `json:"message,omitempty"`
	Stack    string `json:"stack,omitempty"`
	// ExpectedToFail marks baseline-expected failures that passed instead.
	ExpectedToFail bool `json:"expected_to_fail,omitempty"`
	Resolved       bool `json:"resolved,omitempty"`
}

// RunSummary is the complete machine-readable summary for one run.
type RunSummary struct {
	Meta    RunSummaryMeta `json:"meta"`
	Details []CaseFailure  `json:"details"`
}
