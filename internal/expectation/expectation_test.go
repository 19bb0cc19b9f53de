package expectation

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, data string) *Tree {
	t.Helper()
	tree := &Tree{}
	if err := json.Unmarshal([]byte(data), tree); err != nil {
		t.Fatalf("parse %s: %v", data, err)
	}
	return tree
}

func TestTree_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind Kind
	}{
		{name: "boolean leaf", data: `true`, kind: KindPass},
		{name: "array leaf", data: `["case1","case2"]`, kind: KindFailCases},
		{name: "node", data: `{"a": true}`, kind: KindNode},
		{name: "ignore node", data: `{"ignore": true}`, kind: KindNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.data)
			if tree.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, tree.Kind())
			}
		})
	}
}

func TestTree_UnmarshalJSON_Invalid(t *testing.T) {
	tree := &Tree{}
	if err := json.Unmarshal([]byte(`"not-a-leaf"`), tree); err == nil {
		t.Error("expected error for string leaf")
	}
}

func TestTree_MarshalRoundTrip(t *testing.T) {
	data := `{"dom":{"nodes":{"x.any.html":["case1"],"y.any.html":true},"ignore":false},"fetch":{"ignore":true},"url":false}`
	tree := mustParse(t, data)

	out, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again := mustParse(t, string(out))
	out2, err := json.Marshal(again)
	if err != nil {
		t.Fatalf("remarshal: %v", err)
	}
	if string(out) != string(out2) {
		t.Errorf("marshal not deterministic:\n%s\n%s", out, out2)
	}
}

func TestTree_IgnoreMarkerSurvivesRoundTrip(t *testing.T) {
	tree := mustParse(t, `{"a": {"ignore": true}}`)
	if !tree.Child("a").Ignored() {
		t.Fatal("ignore marker lost on parse")
	}
	out, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !mustParse(t, string(out)).Child("a").Ignored() {
		t.Error("ignore marker lost on round trip")
	}
}

func TestResolve(t *testing.T) {
	tree := mustParse(t, `{"a": {"x.any.html": true}, "b": false, "c": ["case1"]}`)

	tests := []struct {
		name   string
		parent *Tree
		key    string
		want   *Tree
	}{
		{name: "node indexes by key", parent: tree, key: "a", want: tree.Child("a")},
		{name: "missing key", parent: tree, key: "nope", want: nil},
		{name: "boolean propagates", parent: tree.Child("b"), key: "anything", want: tree.Child("b")},
		{name: "array propagates", parent: tree.Child("c"), key: "anything", want: tree.Child("c")},
		{name: "nil parent", parent: nil, key: "a", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.parent, tt.key); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTree_FileExpectation(t *testing.T) {
	tree := mustParse(t, `{"a": true, "b": ["c1"], "c": {"d": true}}`)

	if exp, ok := tree.Child("a").FileExpectation(); !ok || !exp.Pass || exp.FailCases != nil {
		t.Errorf("boolean leaf: got %+v ok=%v", exp, ok)
	}
	if exp, ok := tree.Child("b").FileExpectation(); !ok || !reflect.DeepEqual(exp.FailCases, []string{"c1"}) {
		t.Errorf("array leaf: got %+v ok=%v", exp, ok)
	}
	if _, ok := tree.Child("c").FileExpectation(); ok {
		t.Error("node must not convert to a file expectation")
	}
}

func TestTree_Leaves(t *testing.T) {
	tree := mustParse(t, `{
		"a": {"x.any.html": true, "y.any.html": ["c1"]},
		"b": {"ignore": true, "z.any.html": false},
		"c": false
	}`)

	got := tree.Leaves(false)
	want := []string{"/a/x.any.html", "/a/y.any.html", "/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = tree.Leaves(true)
	want = []string{"/a/x.any.html", "/a/y.any.html", "/b/z.any.html", "/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("with ignored: expected %v, got %v", want, got)
	}
}
