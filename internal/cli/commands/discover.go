package commands

import (
	"fmt"

	"wptr/internal/config"
	"wptr/internal/discovery"
	"wptr/internal/domain"
	"wptr/internal/expectation"
	"wptr/internal/manifest"
	"wptr/internal/storage"
)

// discoverTests loads the manifest and the baseline and runs discovery
// plus the baseline integrity check. Shared by run, update and list.
func discoverTests(cfg *config.Config, st storage.Storage) ([]domain.TestToRun, *expectation.Tree, error) {
	man, err := manifest.Load(cfg.GetManifestPath())
	if err != nil {
		return nil, nil, err
	}
	tree, err := st.LoadExpectation()
	if err != nil {
		return nil, nil, err
	}

	walker := discovery.NewWalker(cfg.Flags.NoIgnore)
	filter := discovery.NewFilter(cfg.Flags.Filters)
	tests, err := walker.Discover(man, tree, filter)
	if err != nil {
		return nil, nil, err
	}
	if err := discovery.AssertExpectationsCovered(tree, tests, filter, cfg.Flags.NoIgnore); err != nil {
		return nil, nil, err
	}
	return tests, tree, nil
}

// requireRuntime fails fast when no runtime binary is configured.
func requireRuntime(cfg *config.Config) error {
	if cfg.RuntimeBin == "" {
		return fmt.Errorf("no runtime binary configured: set runtime_bin in %s or WPTR_RUNTIME in the environment", config.DefaultConfigFile)
	}
	return nil
}
