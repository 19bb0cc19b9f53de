package commands

import (
	"github.com/spf13/cobra"

	"wptr/internal/config"
	"wptr/internal/storage"
	"wptr/internal/ui"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, st storage.Storage, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := vc.storage.LoadSummary()
	if err != nil {
		return err
	}
	return vc.viewer.View(summary)
}
