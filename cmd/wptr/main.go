package main

import (
	"fmt"
	"os"

	"wptr/internal/cli"
	"wptr/internal/cli/commands"
	"wptr/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "wptr",
		Short:   "Web Platform Tests conformance orchestrator",
		Long:    `Runs Web Platform Tests against a JavaScript runtime, compares the outcomes to a checked-in expectation baseline, and reports divergence or rewrites the baseline.`,
		Version: version,
	}

	cfg, err := config.Load(config.Flags{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
