package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the orchestrator
type Config struct {
	// Paths
	WptRoot         string `yaml:"wpt_root"`
	ManifestPath    string `yaml:"manifest_path"`
	ExpectationPath string `yaml:"expectation_path"`

	// Runtime under test
	RuntimeBin    string `yaml:"runtime_bin"`
	HarnessScript string `yaml:"harness_script"`

	// Execution settings; Parallel == 0 means derive from hardware
	Parallel int `yaml:"parallel"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags shared across commands
type Flags struct {
	Parallel     int
	JSONFile     string
	WptReport    string
	NoIgnore     bool
	Quiet        bool
	Expectations bool
	Filters      []string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		WptRoot:         DefaultWptRoot,
		ManifestPath:    "",
		ExpectationPath: DefaultExpectationPath,
	}
}

// Load creates a config from defaults, .env, the optional YAML config
// file and flags, in increasing precedence.
func Load(flags Flags) (*Config, error) {
	// A missing .env is fine; explicit env wins over file values below.
	_ = godotenv.Load()

	cfg := New()

	if data, err := os.ReadFile(DefaultConfigFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("WPTR_ROOT"); v != "" {
		cfg.WptRoot = v
	}
	if v := os.Getenv("WPTR_RUNTIME"); v != "" {
		cfg.RuntimeBin = v
	}
	if v := os.Getenv("WPTR_EXPECTATION"); v != "" {
		cfg.ExpectationPath = v
	}
	if v := os.Getenv("WPTR_HARNESS"); v != "" {
		cfg.HarnessScript = v
	}

	cfg.Flags = flags
	if flags.Parallel > 0 {
		cfg.Parallel = flags.Parallel
	}
	return cfg, nil
}

// GetManifestPath returns the manifest path, defaulting to the manifest
// file inside the WPT root.
func (c *Config) GetManifestPath() string {
	if c.ManifestPath != "" {
		return c.ManifestPath
	}
	return filepath.Join(c.WptRoot, DefaultManifestFile)
}

// GetExpectationPath returns the expectation baseline path as an absolute
// path so run and update always read/write the same file regardless of cwd.
func (c *Config) GetExpectationPath() string {
	if abs, err := filepath.Abs(c.ExpectationPath); err == nil {
		return abs
	}
	return c.ExpectationPath
}

// GetSummaryPath returns the run summary path (--json overrides the
// default), absolute so run and view always use the same file.
func (c *Config) GetSummaryPath() string {
	p := DefaultSummaryPath
	if c.Flags.JSONFile != "" {
		p = c.Flags.JSONFile
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHarnessScript returns the harness entry script path.
func (c *Config) GetHarnessScript() string {
	if c.HarnessScript != "" {
		return c.HarnessScript
	}
	return DefaultHarnessScript
}

// Workers returns the effective worker-pool width for a run of the given
// size: 1 when fewer than two tests or no multi-core parallelism is
// available, otherwise the hardware concurrency, unless overridden.
func (c *Config) Workers(testCount int) int {
	if c.Parallel > 0 {
		return c.Parallel
	}
	if testCount < 2 || runtime.NumCPU() < 2 {
		return 1
	}
	return runtime.NumCPU()
}

// InCI reports whether the process runs in a continuous-integration
// context, where all timeouts are raised to the long value.
func (c *Config) InCI() bool {
	return os.Getenv("CI") != ""
}
