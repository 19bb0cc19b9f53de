package domain

// TestToRun describes one runnable testharness variation discovered from
// the manifest. Values are created once during discovery and are not
// modified afterwards.
type TestToRun struct {
	Path        string         // Canonical slash-separated path, starts with '/'
	URL         string         // Fully resolved request target
	Options     map[string]any // Variation options from the manifest
	Expectation Expectation    // Pass/fail expectation for this file
}

// Expectation is the per-file expectation reaching a runnable test:
// either the whole file passes/fails uniformly, or a named set of cases
// is expected to fail while the rest pass.
type Expectation struct {
	Pass      bool
	FailCases []string // Non-nil means "these cases fail, others pass"
}

// ExpectFail reports whether the named case is expected to fail.
func (e Expectation) ExpectFail(name string) bool {
	if e.FailCases == nil {
		return !e.Pass
	}
	for _, c := range e.FailCases {
		if c == name {
			return true
		}
	}
	return false
}

// WholeFileFails reports whether the entire file is expected to fail,
// in which case even a crash or timeout matches the baseline.
func (e Expectation) WholeFileFails() bool {
	return e.FailCases == nil && !e.Pass
}

// LongTimeout reports whether the variation's manifest options mark it as
// long-running.
func (t *TestToRun) LongTimeout() bool {
	v, ok := t.Options["timeout"]
	return ok && v == "long"
}
