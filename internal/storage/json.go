package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"wptr/internal/domain"
	"wptr/internal/expectation"
)

// LoadExpectation reads the baseline tree.
func (s *JSONStorage) LoadExpectation() (*expectation.Tree, error) {
	path := s.cfg.GetExpectationPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expectation file: %w", err)
	}
	tree := &expectation.Tree{}
	if err := json.Unmarshal(data, tree); err != nil {
		return nil, fmt.Errorf("parse expectation file: %w", err)
	}
	if tree.Kind() != expectation.KindNode {
		return nil, fmt.Errorf("expectation root must be an object")
	}
	return tree, nil
}

// SaveExpectation rewrites the baseline atomically, holding a file lock
// so concurrent update runs cannot clobber each other.
func (s *JSONStorage) SaveExpectation(tree *expectation.Tree) error {
	path := s.cfg.GetExpectationPath()

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock expectation file: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal expectation tree: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, data)
}

// LoadSummary reads the last run summary.
func (s *JSONStorage) LoadSummary() (*domain.RunSummary, error) {
	data, err := os.ReadFile(s.cfg.GetSummaryPath())
	if err != nil {
		return nil, fmt.Errorf("read summary file: %w", err)
	}
	var summary domain.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse summary file: %w", err)
	}
	return &summary, nil
}

// SaveSummary writes the run summary for --json consumers and the
// interactive viewer.
func (s *JSONStorage) SaveSummary(summary *domain.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return writeAtomic(s.cfg.GetSummaryPath(), data)
}

// SaveWptReport writes the wptreport-shaped document.
func (s *JSONStorage) SaveWptReport(path string, report *domain.WptReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeAtomic(path, data)
}

// writeAtomic writes via a temp file plus rename so readers never see a
// torn file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
