package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wptr/internal/config"
	"wptr/internal/storage"
	"wptr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	tests, _, err := discoverTests(lc.config, lc.storage)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}
	lc.formatter.PrintTestList(tests, lc.config.Flags.Expectations)
	return nil
}
