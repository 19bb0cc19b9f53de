// Package discovery pairs the manifest with the expectation baseline and
// turns qualifying variations into a flat list of runnable tests.
package discovery

import (
	"fmt"
	"net/url"
	"strings"

	"wptr/internal/config"
	"wptr/internal/domain"
	"wptr/internal/expectation"
	"wptr/internal/manifest"
)

// runnableSuffixes is the fixed whitelist of testharness file kinds this
// orchestrator can execute.
var runnableSuffixes = []string{
	".any.html",
	".any.worker.html",
	".window.html",
	".worker.html",
}

// unsupportedMarkers excludes variations whose path signals a server
// capability the orchestrator does not provide.
var unsupportedMarkers = []string{
	".h2.", // needs an HTTP/2 server
	"chunked",
}

// Walker discovers runnable tests by walking the manifest and the
// expectation baseline in lockstep.
type Walker struct {
	ignoreOverride bool
	base           *url.URL
}

// NewWalker creates a Walker. With ignoreOverride set, ignore-marked
// baseline entries are discovered instead of skipped.
func NewWalker(ignoreOverride bool) *Walker {
	base, err := url.Parse(config.TestOrigin)
	if err != nil {
		panic(err)
	}
	return &Walker{ignoreOverride: ignoreOverride, base: base}
}

// Discover emits one TestToRun per manifest variation that is runnable,
// has an expectation entry, and passes the filter. A malformed
// expectation leaf is a configuration error and fails the whole
// discovery.
func (w *Walker) Discover(man *manifest.Entry, exp *expectation.Tree, filter *Filter) ([]domain.TestToRun, error) {
	var tests []domain.TestToRun
	if err := w.walk(man, exp, filter, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (w *Walker) walk(folder *manifest.Entry, exp *expectation.Tree, filter *Filter, out *[]domain.TestToRun) error {
	for _, key := range folder.Keys() {
		child := folder.Folder[key]
		if child.IsFolder() {
			childExp := expectation.Resolve(exp, key)
			if childExp.Ignored() && !w.ignoreOverride {
				continue
			}
			if err := w.walk(child, childExp, filter, out); err != nil {
				return err
			}
			continue
		}
		for _, v := range child.Variations {
			test, ok, err := w.resolveVariation(v, exp, filter)
			if err != nil {
				return err
			}
			if ok {
				*out = append(*out, test)
			}
		}
	}
	return nil
}

// resolveVariation applies the per-variation policy: runnability, the
// expectation lookup, ignore markers, and the path filter.
func (w *Walker) resolveVariation(v manifest.Variation, exp *expectation.Tree, filter *Filter) (domain.TestToRun, bool, error) {
	none := domain.TestToRun{}
	if v.Path == "" {
		return none, false, nil
	}
	ref, err := url.Parse(v.Path)
	if err != nil {
		return none, false, nil
	}
	target := w.base.ResolveReference(ref)

	if !runnable(target.Path) {
		return none, false, nil
	}
	for _, marker := range unsupportedMarkers {
		if strings.Contains(target.Path, marker) {
			return none, false, nil
		}
	}

	finalPath := target.Path
	if target.RawQuery != "" {
		finalPath += "?" + target.RawQuery
	}
	segments := strings.Split(finalPath, "/")
	finalKey := segments[len(segments)-1]

	leaf := expectation.Resolve(exp, finalKey)
	if leaf == nil {
		// No baseline entry: excluded here, caught later by the
		// integrity check if the asymmetry matters.
		return none, false, nil
	}
	if leaf.Ignored() && !w.ignoreOverride {
		return none, false, nil
	}
	fileExp, ok := leaf.FileExpectation()
	if !ok {
		return none, false, fmt.Errorf("malformed expectation for %s: must be a boolean or an array of strings", finalPath)
	}
	if !filter.Matches(finalPath) {
		return none, false, nil
	}
	return domain.TestToRun{
		Path:        finalPath,
		URL:         target.String(),
		Options:     v.Options,
		Expectation: fileExp,
	}, true, nil
}

func runnable(pathname string) bool {
	for _, suffix := range runnableSuffixes {
		if strings.HasSuffix(pathname, suffix) {
			return true
		}
	}
	return false
}
