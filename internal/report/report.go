// Package report renders run statistics into the wptreport-shaped JSON
// document and the machine-readable run summary.
package report

import (
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"wptr/internal/analysis"
	"wptr/internal/domain"
)

// EventLoopExhaustedMessage is reported when a file exits cleanly without
// the harness ever reporting.
const EventLoopExhaustedMessage = "the event loop ran out of tasks during the test"

// Generator builds report documents for one run.
type Generator struct {
	product string
}

// NewGenerator creates a Generator naming the runtime under test.
func NewGenerator(product string) *Generator {
	return &Generator{product: product}
}

// FileMessage is the overall message for one file: the harness message,
// else trimmed stderr, else the event-loop marker for a clean exit
// without a harness report.
func FileMessage(result domain.TestResult) string {
	if result.HarnessStatus != nil && result.HarnessStatus.Message != "" {
		return result.HarnessStatus.Message
	}
	if s := strings.TrimSpace(result.Stderr); s != "" {
		return s
	}
	if result.Status == 0 && result.HarnessStatus == nil {
		return EventLoopExhaustedMessage
	}
	return ""
}

// WptReport renders the structured per-run report.
func (g *Generator) WptReport(run analysis.RunAnalysis, start, end time.Time) domain.WptReport {
	report := domain.WptReport{
		RunInfo: domain.RunInfo{
			RunID:   uuid.NewString(),
			Product: g.product,
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		},
		TimeStart: start.UnixMilli(),
		TimeEnd:   end.UnixMilli(),
		Results:   []domain.WptReportResult{},
	}

	for _, file := range run.Files {
		entry := domain.WptReportResult{
			Test:              file.Test.URL,
			Subtests:          []domain.WptReportSubtest{},
			Status:            string(file.Status),
			Message:           FileMessage(file.Result),
			Duration:          file.Result.Duration.Milliseconds(),
			KnownIntermittent: []string{},
		}
		if expected := expectedFileStatus(file.Test.Expectation); expected != entry.Status {
			entry.Expected = expected
		}
		for _, c := range file.Result.Cases {
			sub := domain.WptReportSubtest{
				Name:              c.Name,
				Status:            caseStatus(c.Passed),
				Message:           c.Message,
				KnownIntermittent: []string{},
			}
			if expected := caseStatus(!file.Test.Expectation.ExpectFail(c.Name)); expected != sub.Status {
				sub.Expected = expected
			}
			entry.Subtests = append(entry.Subtests, sub)
		}
		report.Results = append(report.Results, entry)
	}
	return report
}

// Summary builds the machine-readable summary persisted with --json and
// consumed by the interactive failure viewer.
func (g *Generator) Summary(run analysis.RunAnalysis, duration time.Duration, workers int) domain.RunSummary {
	passedFiles := 0
	for _, file := range run.Files {
		if !file.Diverged() {
			passedFiles++
		}
	}
	summary := domain.RunSummary{
		Meta: domain.RunSummaryMeta{
			TotalFiles:       len(run.Files),
			PassedFiles:      passedFiles,
			FailedFiles:      len(run.DivergedFiles),
			TotalCases:       run.TotalCases,
			PassedCases:      run.PassedCases,
			FailedCases:      run.FailedCases,
			ExpectedFailures: run.ExpectedFailures,
			Duration:         duration.String(),
			DurationSeconds:  duration.Seconds(),
			Workers:          workers,
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Details: []domain.CaseFailure{},
	}

	for _, file := range run.Files {
		if !file.Diverged() {
			continue
		}
		if !file.Result.Harnessed() {
			summary.Details = append(summary.Details, domain.CaseFailure{
				CaseName: string(file.Status),
				FilePath: file.Test.Path,
				Message:  FileMessage(file.Result),
			})
			continue
		}
		for _, c := range file.Result.Cases {
			switch {
			case !c.Passed && !file.Test.Expectation.ExpectFail(c.Name):
				summary.Details = append(summary.Details, domain.CaseFailure{
					CaseName: c.Name,
					FilePath: file.Test.Path,
					Message:  c.Message,
					Stack:    c.Stack,
				})
			case c.Passed && file.Test.Expectation.ExpectFail(c.Name):
				summary.Details = append(summary.Details, domain.CaseFailure{
					CaseName:       c.Name,
					FilePath:       file.Test.Path,
					Message:        "expected to fail but passed",
					ExpectedToFail: true,
				})
			}
		}
	}
	return summary
}

func caseStatus(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func expectedFileStatus(exp domain.Expectation) string {
	if exp.WholeFileFails() {
		return string(analysis.StatusFail)
	}
	return string(analysis.StatusOK)
}
