package commands

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wptr/internal/config"
)

const hostsFile = "/etc/hosts"

// SetupCommand handles the setup command
type SetupCommand struct {
	config *config.Config
}

// NewSetupCommand creates a new SetupCommand
func NewSetupCommand(cfg *config.Config) *SetupCommand {
	return &SetupCommand{config: cfg}
}

// Execute checks the environment: runtime binary, hosts entries, and the
// manifest and baseline files.
func (sc *SetupCommand) Execute(cmd *cobra.Command, args []string) error {
	var problems []string

	if sc.config.RuntimeBin == "" {
		problems = append(problems, "no runtime binary configured (runtime_bin / WPTR_RUNTIME)")
		color.Red("✗ runtime binary not configured")
	} else if path, err := exec.LookPath(sc.config.RuntimeBin); err != nil {
		problems = append(problems, fmt.Sprintf("runtime binary %q not found", sc.config.RuntimeBin))
		color.Red("✗ runtime binary %q not found", sc.config.RuntimeBin)
	} else {
		color.Green("✓ runtime binary: %s", path)
	}

	if missing := missingHostEntries(); len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("%d hosts entries missing", len(missing)))
		color.Red("✗ missing %s entries:", hostsFile)
		for _, host := range missing {
			fmt.Printf("    127.0.0.1 %s\n", host)
		}
	} else {
		color.Green("✓ hosts entries present")
	}

	for _, check := range []struct{ label, path string }{
		{"manifest", sc.config.GetManifestPath()},
		{"expectation baseline", sc.config.GetExpectationPath()},
	} {
		if _, err := os.Stat(check.path); err != nil {
			problems = append(problems, fmt.Sprintf("%s missing at %s", check.label, check.path))
			color.Red("✗ %s missing: %s", check.label, check.path)
		} else {
			color.Green("✓ %s: %s", check.label, check.path)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("environment not ready: %s", strings.Join(problems, "; "))
	}
	color.Green("\n✓ environment ready")
	return nil
}

// missingHostEntries returns the web-platform.test hostnames absent from
// the hosts file. An unreadable hosts file reports all of them missing.
func missingHostEntries() []string {
	data, err := os.ReadFile(hostsFile)
	if err != nil {
		return config.TestHostnames
	}
	content := string(data)
	var missing []string
	for _, host := range config.TestHostnames {
		if !strings.Contains(content, host) {
			missing = append(missing, host)
		}
	}
	return missing
}
