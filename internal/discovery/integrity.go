package discovery

import (
	"fmt"
	"strings"

	"wptr/internal/domain"
	"wptr/internal/expectation"
)

// AssertExpectationsCovered verifies that every baseline leaf passing the
// filter has a corresponding discovered test. A stale baseline entry is a
// configuration error that aborts the run before anything executes.
func AssertExpectationsCovered(root *expectation.Tree, tests []domain.TestToRun, filter *Filter, includeIgnored bool) error {
	have := make(map[string]struct{}, len(tests))
	for _, t := range tests {
		have[t.Path] = struct{}{}
	}

	var missing []string
	for _, leaf := range root.Leaves(includeIgnored) {
		if !filter.Matches(leaf) {
			continue
		}
		if _, ok := have[leaf]; !ok {
			missing = append(missing, leaf)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("expectations without a matching test:\n  %s", strings.Join(missing, "\n  "))
	}
	return nil
}
