package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wptr/internal/analysis"
	"wptr/internal/config"
	"wptr/internal/execution"
	"wptr/internal/report"
	"wptr/internal/storage"
	"wptr/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	executor  *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	executor *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		executor:  executor,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireRuntime(rc.config); err != nil {
		return err
	}
	tests, _, err := discoverTests(rc.config, rc.storage)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests to run")
		return nil
	}

	rc.executor.SetProgress(ui.NewProgressBar(len(tests)))

	timeStart := time.Now()
	completed, duration, err := rc.executor.Execute(tests)
	if err != nil {
		return err
	}
	timeEnd := time.Now()

	run := analysis.Aggregate(completed)
	for _, file := range run.Files {
		rc.formatter.PrintFileResult(file)
	}

	workers := rc.config.Workers(len(tests))
	generator := report.NewGenerator(filepath.Base(rc.config.RuntimeBin))
	summary := generator.Summary(run, duration, workers)
	if err := rc.storage.SaveSummary(&summary); err != nil {
		return fmt.Errorf("save run summary: %w", err)
	}
	if rc.config.Flags.WptReport != "" {
		wptReport := generator.WptReport(run, timeStart, timeEnd)
		if err := rc.storage.SaveWptReport(rc.config.Flags.WptReport, &wptReport); err != nil {
			return fmt.Errorf("save wptreport: %w", err)
		}
	}

	rc.formatter.PrintSummary(run, summary.Meta)

	if run.ExitCode() != 0 {
		return fmt.Errorf("%d file(s) diverged from the expectation baseline", len(run.DivergedFiles))
	}
	return nil
}
