package execution

import (
	"strings"

	"wptr/internal/domain"
)

// Bucket groups tests sharing a top-level suite category. Buckets, not
// individual tests, are the unit of concurrent scheduling: unrelated
// suites running interleaved proved flakier than the load imbalance
// costs.
type Bucket struct {
	Key   string
	Tests []domain.TestToRun
}

// Scheduler partitions a flat test list into schedulable buckets.
type Scheduler interface {
	Partition(tests []domain.TestToRun) []Bucket
}

// SuiteScheduler buckets by the first path segment, keeping discovery
// order within a bucket and first-appearance order across buckets.
type SuiteScheduler struct{}

// NewSuiteScheduler creates a new SuiteScheduler
func NewSuiteScheduler() *SuiteScheduler {
	return &SuiteScheduler{}
}

// Partition groups the tests into a set partition of the input: every
// test lands in exactly one bucket.
func (s *SuiteScheduler) Partition(tests []domain.TestToRun) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, t := range tests {
		key := suiteKey(t.Path)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Tests = append(buckets[i].Tests, t)
	}
	return buckets
}

func suiteKey(path string) string {
	rel := strings.TrimPrefix(path, "/")
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return rel
}
