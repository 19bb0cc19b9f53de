package expectation

import (
	"strings"

	"wptr/internal/domain"
)

// Insert sets the expectation at the slash-separated path and returns the
// updated tree. Intermediate segments that are not already grouping nodes
// are replaced with empty nodes before descending. This is the single
// mutation point of update mode.
func Insert(tree *Tree, path string, value *Tree) *Tree {
	segments := splitPath(path)
	if tree == nil || tree.kind != KindNode {
		tree = NewNode()
	}
	if len(segments) == 0 {
		return tree
	}
	node := tree
	for _, segment := range segments[:len(segments)-1] {
		child := node.children[segment]
		if child == nil || child.kind != KindNode {
			child = NewNode()
			node.children[segment] = child
		}
		node = child
	}
	node.children[segments[len(segments)-1]] = value
	return tree
}

// FromResult computes the fresh expectation for one executed file:
// everything passed with a clean harness exit is true, a mix of passing
// and failing cases is the failing case names in harness order, anything
// else (crash, timeout, or nothing passing) is false.
func FromResult(result domain.TestResult) *Tree {
	var failed []string
	passed := 0
	for _, c := range result.Cases {
		if c.Passed {
			passed++
		} else {
			failed = append(failed, c.Name)
		}
	}
	switch {
	case result.Harnessed() && len(failed) == 0:
		return Pass(true)
	case result.Harnessed() && passed > 0:
		return FailCases(failed)
	default:
		return Pass(false)
	}
}

// Update rewrites the baseline from a run's outcomes, one Insert per
// distinct file path. Running it twice over an unchanged run yields an
// identical tree.
func Update(tree *Tree, completed []domain.CompletedTest) *Tree {
	for _, ct := range completed {
		tree = Insert(tree, ct.Test.Path, FromResult(ct.Result))
	}
	return tree
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
