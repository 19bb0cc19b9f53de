package expectation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"wptr/internal/domain"
)

// Kind discriminates the expectation tagged union.
type Kind int

const (
	// KindPass is a boolean leaf: the whole file or subtree uniformly
	// passes (true) or fails (false).
	KindPass Kind = iota
	// KindFailCases is an array leaf: the named cases are expected to
	// fail, all others to pass.
	KindFailCases
	// KindNode is a directory-shaped grouping of child expectations.
	KindNode
)

// Tree is one node of the expectation baseline. The JSON form is the
// checked-in baseline itself: booleans and string arrays are leaves,
// objects are nodes, and a node may carry a reserved "ignore" marker
// meaning "skip this subtree unless overridden".
type Tree struct {
	kind      Kind
	pass      bool
	failCases []string
	children  map[string]*Tree
	ignore    bool
}

// Pass returns a boolean leaf.
func Pass(v bool) *Tree {
	return &Tree{kind: KindPass, pass: v}
}

// FailCases returns an array leaf listing the cases expected to fail.
func FailCases(names []string) *Tree {
	return &Tree{kind: KindFailCases, failCases: names}
}

// NewNode returns an empty grouping node.
func NewNode() *Tree {
	return &Tree{kind: KindNode, children: map[string]*Tree{}}
}

// Kind returns the node's position in the tagged union.
func (t *Tree) Kind() Kind { return t.kind }

// Ignored reports whether the node carries the ignore marker.
func (t *Tree) Ignored() bool { return t != nil && t.kind == KindNode && t.ignore }

// SetIgnore marks a node as ignored.
func (t *Tree) SetIgnore(v bool) { t.ignore = v }

// Child returns the named child of a grouping node, nil otherwise.
func (t *Tree) Child(key string) *Tree {
	if t == nil || t.kind != KindNode {
		return nil
	}
	return t.children[key]
}

// SetChild sets the named child of a grouping node.
func (t *Tree) SetChild(key string, child *Tree) {
	t.children[key] = child
}

// Keys returns the node's child keys in sorted order.
func (t *Tree) Keys() []string {
	keys := make([]string, 0, len(t.children))
	for k := range t.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve is the total resolution function from an ambient parent
// expectation and a child key to the child's expectation: leaf parents
// propagate unchanged to all descendants, grouping nodes index by key.
// A nil result means no expectation exists for the key.
func Resolve(parent *Tree, key string) *Tree {
	if parent == nil {
		return nil
	}
	if parent.kind != KindNode {
		return parent
	}
	return parent.children[key]
}

// FileExpectation converts a leaf into the per-file expectation consumed
// by the scheduler. ok is false for grouping nodes, which never apply to
// a runnable file directly.
func (t *Tree) FileExpectation() (domain.Expectation, bool) {
	switch t.kind {
	case KindPass:
		return domain.Expectation{Pass: t.pass}, true
	case KindFailCases:
		cases := make([]string, len(t.failCases))
		copy(cases, t.failCases)
		return domain.Expectation{FailCases: cases}, true
	default:
		return domain.Expectation{}, false
	}
}

// Leaves returns the full slash-joined path of every boolean or array
// leaf in the tree. Subtrees under an ignore marker are skipped unless
// includeIgnored is set; the marker key itself is never a path segment.
func (t *Tree) Leaves(includeIgnored bool) []string {
	var paths []string
	var walk func(node *Tree, prefix string)
	walk = func(node *Tree, prefix string) {
		if node.Ignored() && !includeIgnored {
			return
		}
		for _, key := range node.Keys() {
			child := node.children[key]
			path := prefix + "/" + key
			if child.kind == KindNode {
				walk(child, path)
			} else {
				paths = append(paths, path)
			}
		}
	}
	if t != nil && t.kind == KindNode {
		walk(t, "")
	}
	return paths
}

// MarshalJSON renders the baseline deterministically: map keys sort, so
// repeated updates against an unchanged runtime are byte-identical.
func (t *Tree) MarshalJSON() ([]byte, error) {
	switch t.kind {
	case KindPass:
		return json.Marshal(t.pass)
	case KindFailCases:
		cases := t.failCases
		if cases == nil {
			cases = []string{}
		}
		return json.Marshal(cases)
	default:
		obj := make(map[string]json.RawMessage, len(t.children)+1)
		if t.ignore {
			obj["ignore"] = json.RawMessage("true")
		}
		for k, child := range t.children {
			data, err := child.MarshalJSON()
			if err != nil {
				return nil, err
			}
			obj[k] = data
		}
		return json.Marshal(obj)
	}
}

// UnmarshalJSON parses the baseline's JSON form back into the union.
func (t *Tree) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "true" || trimmed == "false":
		t.kind = KindPass
		t.pass = trimmed == "true"
		return nil
	case strings.HasPrefix(trimmed, "["):
		var cases []string
		if err := json.Unmarshal(data, &cases); err != nil {
			return fmt.Errorf("expectation array leaf: %w", err)
		}
		t.kind = KindFailCases
		t.failCases = cases
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("expectation node: %w", err)
		}
		t.kind = KindNode
		t.children = make(map[string]*Tree, len(raw))
		for key, value := range raw {
			if key == "ignore" {
				var ignore bool
				if err := json.Unmarshal(value, &ignore); err != nil {
					return fmt.Errorf("ignore marker: %w", err)
				}
				t.ignore = ignore
				continue
			}
			child := &Tree{}
			if err := child.UnmarshalJSON(value); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			t.children[key] = child
		}
		return nil
	default:
		return fmt.Errorf("expectation leaf must be a boolean, array or object, got %s", trimmed)
	}
}
