package discovery

import (
	"encoding/json"
	"reflect"
	"testing"

	"wptr/internal/expectation"
	"wptr/internal/manifest"
)

func parseManifest(t *testing.T, data string) *manifest.Entry {
	t.Helper()
	var root manifest.Entry
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return &root
}

func parseExpectation(t *testing.T, data string) *expectation.Tree {
	t.Helper()
	tree := &expectation.Tree{}
	if err := json.Unmarshal([]byte(data), tree); err != nil {
		t.Fatalf("parse expectation: %v", err)
	}
	return tree
}

func discoveredPaths(t *testing.T, man, exp string, ignoreOverride bool, filters []string) []string {
	t.Helper()
	tests, err := NewWalker(ignoreOverride).Discover(
		parseManifest(t, man), parseExpectation(t, exp), NewFilter(filters))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var paths []string
	for _, test := range tests {
		paths = append(paths, test.Path)
	}
	return paths
}

const simpleManifest = `{
	"a": {
		"x.any.js": [
			"meta",
			["a/x.any.html", {}]
		]
	}
}`

func TestWalker_Discover(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		exp      string
		override bool
		filters  []string
		want     []string
	}{
		{
			name:     "expectation true yields one test",
			manifest: simpleManifest,
			exp:      `{"a": {"x.any.html": true}}`,
			want:     []string{"/a/x.any.html"},
		},
		{
			name:     "missing expectation silently excludes",
			manifest: simpleManifest,
			exp:      `{"a": {}}`,
			want:     nil,
		},
		{
			name:     "boolean expectation propagates to descendants",
			manifest: `{"a": {"sub": {"x.any.js": ["meta", ["a/sub/x.any.html", {}]]}}}`,
			exp:      `{"a": false}`,
			want:     []string{"/a/sub/x.any.html"},
		},
		{
			name:     "ignore marker excludes by default",
			manifest: simpleManifest,
			exp:      `{"a": {"x.any.html": {"ignore": true}}}`,
			want:     nil,
		},
		{
			name:     "empty paths skipped",
			manifest: `{"a": {"x.any.js": ["meta", [null, {}], ["a/x.any.html", {}]]}}`,
			exp:      `{"a": {"x.any.html": true}}`,
			want:     []string{"/a/x.any.html"},
		},
		{
			name: "only testharness kinds are runnable",
			manifest: `{"a": {
				"x.any.js": ["meta", ["a/x.any.html", {}]],
				"r.html": ["meta", ["a/r-ref.html", {}]]
			}}`,
			exp:  `{"a": {"x.any.html": true, "r-ref.html": true}}`,
			want: []string{"/a/x.any.html"},
		},
		{
			name: "unsupported server features excluded",
			manifest: `{"a": {
				"x.any.js": ["meta", ["a/x.h2.any.html", {}]],
				"y.any.js": ["meta", ["a/y-chunked.any.html", {}]],
				"z.any.js": ["meta", ["a/z.any.html", {}]]
			}}`,
			exp:  `{"a": {"x.h2.any.html": true, "y-chunked.any.html": true, "z.any.html": true}}`,
			want: []string{"/a/z.any.html"},
		},
		{
			name: "prefix filter",
			manifest: `{
				"a": {"x.any.js": ["meta", ["a/x.any.html", {}]]},
				"b": {"y.any.js": ["meta", ["b/y.any.html", {}]]}
			}`,
			exp:     `{"a": {"x.any.html": true}, "b": {"y.any.html": true}}`,
			filters: []string{"b/"},
			want:    []string{"/b/y.any.html"},
		},
		{
			name:     "query variants keyed with search part",
			manifest: `{"a": {"x.any.js": ["meta", ["a/x.any.html?module", {}]]}}`,
			exp:      `{"a": {"x.any.html?module": true}}`,
			want:     []string{"/a/x.any.html?module"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := discoveredPaths(t, tt.manifest, tt.exp, tt.override, tt.filters)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWalker_IgnoreOverride(t *testing.T) {
	man := simpleManifest
	exp := `{"a": {"x.any.html": {"ignore": true}}}`

	if got := discoveredPaths(t, man, exp, false, nil); got != nil {
		t.Errorf("ignored test discovered without override: %v", got)
	}

	// With the override an ignore-only marker still has no boolean or
	// array payload, which is a configuration error at the leaf.
	_, err := NewWalker(true).Discover(parseManifest(t, man), parseExpectation(t, exp), NewFilter(nil))
	if err == nil {
		t.Error("expected configuration error for marker-only leaf under override")
	}
}

func TestWalker_IgnoredFolderSkipsSubtree(t *testing.T) {
	man := `{"a": {"x.any.js": ["meta", ["a/x.any.html", {}]]}}`
	exp := `{"a": {"ignore": true, "x.any.html": true}}`

	if got := discoveredPaths(t, man, exp, false, nil); got != nil {
		t.Errorf("tests under an ignored folder discovered: %v", got)
	}
	want := []string{"/a/x.any.html"}
	if got := discoveredPaths(t, man, exp, true, nil); !reflect.DeepEqual(got, want) {
		t.Errorf("override should discover %v, got %v", want, got)
	}
}

func TestWalker_MalformedLeafFailsFast(t *testing.T) {
	man := simpleManifest
	exp := `{"a": {"x.any.html": {"nested": true}}}`

	_, err := NewWalker(false).Discover(parseManifest(t, man), parseExpectation(t, exp), NewFilter(nil))
	if err == nil {
		t.Error("expected configuration error for object-valued leaf")
	}
}

func TestWalker_CarriesOptionsAndExpectation(t *testing.T) {
	man := `{"a": {"x.any.js": ["meta", ["a/x.any.html", {"timeout": "long"}]]}}`
	exp := `{"a": {"x.any.html": ["case1"]}}`

	tests, err := NewWalker(false).Discover(parseManifest(t, man), parseExpectation(t, exp), NewFilter(nil))
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(tests) != 1 {
		t.Fatalf("expected 1 test, got %d", len(tests))
	}
	test := tests[0]
	if test.URL != "http://web-platform.test:8000/a/x.any.html" {
		t.Errorf("unexpected url %q", test.URL)
	}
	if !test.LongTimeout() {
		t.Error("timeout option lost")
	}
	if !reflect.DeepEqual(test.Expectation.FailCases, []string{"case1"}) {
		t.Errorf("unexpected expectation %+v", test.Expectation)
	}
}
