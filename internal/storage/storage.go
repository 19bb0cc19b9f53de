package storage

import (
	"wptr/internal/config"
	"wptr/internal/domain"
	"wptr/internal/expectation"
)

// Storage persists the expectation baseline and run artifacts.
type Storage interface {
	LoadExpectation() (*expectation.Tree, error)
	SaveExpectation(tree *expectation.Tree) error
	LoadSummary() (*domain.RunSummary, error)
	SaveSummary(summary *domain.RunSummary) error
	SaveWptReport(path string, report *domain.WptReport) error
}

// JSONStorage stores everything as JSON files at the configured paths.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage over the config's paths.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
