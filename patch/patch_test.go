package patch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flattree/tree"
)

func TestApply(t *testing.T) {
	doc := tree.FromPairs(
		"b", 1,
		"a", tree.FromPairs("y", 2, "x", 3),
		int64(7), "seven",
		"s", []any{tree.FromPairs("q", 1, "p", 2)},
	)
	ops := `[
		{"op": "replace", "path": "/a/x", "value": 4},
		{"op": "add", "path": "/c", "value": [1]},
		{"op": "remove", "path": "/b"},
		{"op": "add", "path": "/s/0/o", "value": "n"}
	]`
	got, err := Apply(doc, []byte(ops))
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs(
		"a", tree.FromPairs("y", int64(2), "x", int64(4)),
		int64(7), "seven",
		"s", []any{tree.FromPairs("q", int64(1), "p", int64(2), "o", "n")},
		"c", []any{int64(1)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyErrors(t *testing.T) {
	doc := tree.FromPairs("a", 1)
	tests := []struct {
		name string
		ops  string
	}{
		{name: "not json", ops: `[{`},
		{name: "missing path", ops: `[{"op": "remove", "path": "/nope"}]`},
		{name: "failed test", ops: `[{"op": "test", "path": "/a", "value": 2}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(doc, []byte(tt.ops)); !errors.Is(err, ErrPatch) {
				t.Errorf("Apply error = %v, want ErrPatch", err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	doc := tree.FromPairs("z", 1, "b", tree.FromPairs("c", 2, "a", 0))
	got, err := Merge(doc, []byte(`{"b": {"c": null, "d": 3}}`))
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs("z", int64(1), "b", tree.FromPairs("a", int64(0), "d", int64(3)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestReorder(t *testing.T) {
	orig := tree.FromPairs(true, 1, "m", tree.FromPairs("2", "x", "1", "y"))
	res := tree.FromPairs("m", tree.FromPairs("1", "y", "2", "x"), "true", 1)
	want := tree.FromPairs(true, 1, "m", tree.FromPairs("2", "x", "1", "y"))
	if diff := cmp.Diff(want, Reorder(orig, res)); diff != "" {
		t.Errorf("Reorder mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeClashingKeys(t *testing.T) {
	doc := tree.FromPairs(int64(1), "int", "1", "str")
	got, err := Merge(doc, []byte(`{"'1'": "new"}`))
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs(int64(1), "int", "1", "new")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}
