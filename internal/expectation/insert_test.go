package expectation

import (
	"encoding/json"
	"testing"

	"wptr/internal/domain"
)

func TestInsert(t *testing.T) {
	tests := []struct {
		name  string
		start string
		path  string
		value *Tree
		want  string
	}{
		{
			name:  "into empty tree",
			start: `{}`,
			path:  "/a/x.any.html",
			value: Pass(true),
			want:  `{"a":{"x.any.html":true}}`,
		},
		{
			name:  "overwrite existing leaf",
			start: `{"a":{"x.any.html":false}}`,
			path:  "/a/x.any.html",
			value: FailCases([]string{"c1"}),
			want:  `{"a":{"x.any.html":["c1"]}}`,
		},
		{
			name:  "boolean intermediate replaced by node",
			start: `{"a":true}`,
			path:  "/a/x.any.html",
			value: Pass(true),
			want:  `{"a":{"x.any.html":true}}`,
		},
		{
			name:  "siblings preserved",
			start: `{"a":{"y.any.html":false}}`,
			path:  "/a/x.any.html",
			value: Pass(true),
			want:  `{"a":{"x.any.html":true,"y.any.html":false}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.start)
			tree = Insert(tree, tt.path, tt.value)
			got, err := json.Marshal(tree)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFromResult(t *testing.T) {
	harnessOK := &domain.HarnessStatus{Status: 0}

	tests := []struct {
		name   string
		result domain.TestResult
		want   string
	}{
		{
			name: "all passed",
			result: domain.TestResult{HarnessStatus: harnessOK, Cases: []domain.TestCaseResult{
				{Name: "c1", Passed: true},
				{Name: "c2", Passed: true},
			}},
			want: `true`,
		},
		{
			name: "mixed keeps failing names in case order",
			result: domain.TestResult{HarnessStatus: harnessOK, Cases: []domain.TestCaseResult{
				{Name: "c2", Passed: false},
				{Name: "c1", Passed: true},
				{Name: "c0", Passed: false},
			}},
			want: `["c2","c0"]`,
		},
		{
			name: "all failed",
			result: domain.TestResult{HarnessStatus: harnessOK, Cases: []domain.TestCaseResult{
				{Name: "c1", Passed: false},
			}},
			want: `false`,
		},
		{
			name:   "crash",
			result: domain.TestResult{Status: 2, Cases: []domain.TestCaseResult{{Name: "c1", Passed: true}}},
			want:   `false`,
		},
		{
			name:   "event loop exhausted",
			result: domain.TestResult{Status: 0, HarnessStatus: nil},
			want:   `false`,
		},
		{
			name:   "no cases with clean harness",
			result: domain.TestResult{HarnessStatus: harnessOK},
			want:   `true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(FromResult(tt.result))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	run := []domain.CompletedTest{
		{
			Test: domain.TestToRun{Path: "/a/x.any.html"},
			Result: domain.TestResult{HarnessStatus: &domain.HarnessStatus{}, Cases: []domain.TestCaseResult{
				{Name: "c1", Passed: false},
				{Name: "c2", Passed: true},
			}},
		},
		{
			Test:   domain.TestToRun{Path: "/a/y.any.html"},
			Result: domain.TestResult{Status: 2},
		},
		{
			Test: domain.TestToRun{Path: "/b/z.any.html"},
			Result: domain.TestResult{HarnessStatus: &domain.HarnessStatus{}, Cases: []domain.TestCaseResult{
				{Name: "c1", Passed: true},
			}},
		},
	}

	tree := mustParse(t, `{"a":{"x.any.html":true},"stale":{"w.any.html":false}}`)

	once := Update(tree, run)
	first, err := json.MarshalIndent(once, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	twice := Update(once, run)
	second, err := json.MarshalIndent(twice, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("update not idempotent:\n%s\n%s", first, second)
	}

	// Untouched subtrees survive the rewrite.
	if once.Child("stale") == nil {
		t.Error("unrelated entries must be preserved")
	}
	want := `{"a":{"x.any.html":["c1"],"y.any.html":false},"b":{"z.any.html":true},"stale":{"w.any.html":false}}`
	got, _ := json.Marshal(once)
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
