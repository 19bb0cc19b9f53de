package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfig_GetManifestPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "defaults to manifest inside wpt root",
			config:   &Config{WptRoot: "./wpt"},
			expected: filepath.Join("./wpt", DefaultManifestFile),
		},
		{
			name:     "explicit manifest path wins",
			config:   &Config{WptRoot: "./wpt", ManifestPath: "/tmp/manifest.json"},
			expected: "/tmp/manifest.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.GetManifestPath(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestConfig_Workers(t *testing.T) {
	cfg := New()

	t.Run("override wins", func(t *testing.T) {
		cfg.Parallel = 3
		if got := cfg.Workers(100); got != 3 {
			t.Errorf("expected 3, got %d", got)
		}
		cfg.Parallel = 0
	})

	t.Run("single test runs sequentially", func(t *testing.T) {
		if got := cfg.Workers(1); got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})

	t.Run("many tests use hardware concurrency", func(t *testing.T) {
		want := runtime.NumCPU()
		if want < 2 {
			want = 1
		}
		if got := cfg.Workers(100); got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	})
}

func TestConfig_GetSummaryPath(t *testing.T) {
	cfg := New()
	def := cfg.GetSummaryPath()
	if !filepath.IsAbs(def) {
		t.Errorf("summary path must be absolute, got %s", def)
	}

	cfg.Flags.JSONFile = "/tmp/out.json"
	if got := cfg.GetSummaryPath(); got != "/tmp/out.json" {
		t.Errorf("expected flag override, got %s", got)
	}
}

func TestConfig_GetHarnessScript(t *testing.T) {
	cfg := New()
	if got := cfg.GetHarnessScript(); got != DefaultHarnessScript {
		t.Errorf("expected default %s, got %s", DefaultHarnessScript, got)
	}
	cfg.HarnessScript = "./custom.js"
	if got := cfg.GetHarnessScript(); got != "./custom.js" {
		t.Errorf("expected override, got %s", got)
	}
}

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.WptRoot != DefaultWptRoot {
		t.Errorf("expected WptRoot %s, got %s", DefaultWptRoot, cfg.WptRoot)
	}
	if cfg.ExpectationPath != DefaultExpectationPath {
		t.Errorf("expected ExpectationPath %s, got %s", DefaultExpectationPath, cfg.ExpectationPath)
	}
	if cfg.Parallel != 0 {
		t.Errorf("expected automatic parallelism by default, got %d", cfg.Parallel)
	}
}
