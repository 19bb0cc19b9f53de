package commands

import (
	"wptr/internal/cli"
	"wptr/internal/config"
	"wptr/internal/execution"
	"wptr/internal/storage"
	"wptr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Setup  *SetupCommand
	Run    *RunCommand
	Update *UpdateCommand
	List   *ListCommand
	View   *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewRunner(cfg)
	scheduler := execution.NewSuiteScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Setup:  NewSetupCommand(cfg),
		Run:    NewRunCommand(cfg, executor, jsonStorage, formatter),
		Update: NewUpdateCommand(cfg, executor, jsonStorage, formatter),
		List:   NewListCommand(cfg, jsonStorage, formatter),
		View:   NewViewCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	apply := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags(args)
		if flags.Parallel > 0 {
			cfg.Parallel = flags.Parallel
		}
		return nil
	}

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Check the test environment",
		Long:  "Verify the runtime binary, the hosts file entries and the manifest and baseline files",
		RunE:  c.Setup.Execute,
	}
	rootCmd.AddCommand(setupCmd)

	runCmd := &cobra.Command{
		Use:     "run [path-prefix...]",
		Short:   "Run tests against the expectation baseline",
		Long:    "Discover and execute the applicable tests and report any divergence from the baseline; exits 1 when anything diverges",
		Args:    cobra.ArbitraryArgs,
		RunE:    c.Run.Execute,
		PreRunE: apply,
	}
	runCmd.Flags().IntVarP(&flags.Parallel, "parallel", "p", 0, "Number of concurrent workers (default: hardware concurrency)")
	runCmd.Flags().StringVar(&flags.JSONFile, "json", "", "Write the machine-readable run summary to this file")
	runCmd.Flags().StringVar(&flags.WptReport, "wptreport", "", "Write a wptreport-shaped JSON file to this path")
	runCmd.Flags().BoolVar(&flags.NoIgnore, "no-ignore", false, "Run tests the baseline marks as ignored")
	runCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress ok lines in the console output")
	rootCmd.AddCommand(runCmd)

	updateCmd := &cobra.Command{
		Use:     "update [path-prefix...]",
		Short:   "Rewrite the expectation baseline from a fresh run",
		Long:    "Execute the applicable tests and rewrite the baseline to match the observed outcomes",
		Args:    cobra.ArbitraryArgs,
		RunE:    c.Update.Execute,
		PreRunE: apply,
	}
	updateCmd.Flags().IntVarP(&flags.Parallel, "parallel", "p", 0, "Number of concurrent workers (default: hardware concurrency)")
	updateCmd.Flags().StringVar(&flags.JSONFile, "json", "", "Write the machine-readable run summary to this file")
	updateCmd.Flags().BoolVar(&flags.NoIgnore, "no-ignore", false, "Run tests the baseline marks as ignored")
	updateCmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress ok lines in the console output")
	rootCmd.AddCommand(updateCmd)

	listCmd := &cobra.Command{
		Use:     "list [path-prefix...]",
		Short:   "List discovered tests",
		Long:    "Walk the manifest and the baseline and list the tests a run would execute",
		Args:    cobra.ArbitraryArgs,
		RunE:    c.List.Execute,
		PreRunE: apply,
	}
	listCmd.Flags().BoolVarP(&flags.Expectations, "expectations", "e", false, "Show the expectation next to each test")
	listCmd.Flags().BoolVar(&flags.NoIgnore, "no-ignore", false, "List tests the baseline marks as ignored")
	rootCmd.AddCommand(listCmd)

	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Browse the last run's failures interactively",
		RunE:    c.View.Execute,
		PreRunE: apply,
	}
	rootCmd.AddCommand(viewCmd)
}
