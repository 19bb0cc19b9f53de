package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wptr/internal/analysis"
	"wptr/internal/config"
	"wptr/internal/execution"
	"wptr/internal/expectation"
	"wptr/internal/report"
	"wptr/internal/storage"
	"wptr/internal/ui"
)

// UpdateCommand handles the update command
type UpdateCommand struct {
	config    *config.Config
	executor  *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewUpdateCommand creates a new UpdateCommand
func NewUpdateCommand(
	cfg *config.Config,
	executor *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
) *UpdateCommand {
	return &UpdateCommand{
		config:    cfg,
		executor:  executor,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the applicable tests and rewrites the baseline from the
// observed outcomes. Unlike run, a divergence is not an error here: it
// is exactly what gets folded back into the baseline.
func (uc *UpdateCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := requireRuntime(uc.config); err != nil {
		return err
	}
	tests, tree, err := discoverTests(uc.config, uc.storage)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests to run")
		return nil
	}

	uc.executor.SetProgress(ui.NewProgressBar(len(tests)))

	completed, duration, err := uc.executor.Execute(tests)
	if err != nil {
		return err
	}

	run := analysis.Aggregate(completed)
	for _, file := range run.Files {
		uc.formatter.PrintFileResult(file)
	}

	tree = expectation.Update(tree, completed)
	if err := uc.storage.SaveExpectation(tree); err != nil {
		return fmt.Errorf("save expectation baseline: %w", err)
	}

	workers := uc.config.Workers(len(tests))
	generator := report.NewGenerator(filepath.Base(uc.config.RuntimeBin))
	summary := generator.Summary(run, duration, workers)
	if err := uc.storage.SaveSummary(&summary); err != nil {
		return fmt.Errorf("save run summary: %w", err)
	}

	uc.formatter.PrintSummary(run, summary.Meta)
	color.Green("✓ baseline updated: %s", uc.config.GetExpectationPath())
	return nil
}
