package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flattree/tree"
)

func TestSelect(t *testing.T) {
	doc := tree.FromPairs(
		"a", []any{tree.FromPairs("b", 1), tree.FromPairs("b", 2, "c", "x")},
		int64(1), "one",
		nil, true,
	)
	tests := []struct {
		expr string
		want []any
	}{
		{expr: "$.a[*].b", want: []any{float64(1), float64(2)}},
		{expr: "$.a[1].c", want: []any{"x"}},
		{expr: "$.a[?@.b > 1].c", want: []any{"x"}},
		{expr: "$['1']", want: []any{"one"}},
		{expr: "$['null']", want: []any{true}},
		{expr: "$.missing", want: []any{}},
		{expr: "$..c", want: []any{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Select(doc, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff := cmp.Diff(tt.want, []any(got)); diff != "" {
				t.Errorf("Select mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectErrors(t *testing.T) {
	if _, err := Select(tree.NewMap(), "$["); !errors.Is(err, ErrQuery) {
		t.Errorf("expected ErrQuery, got %v", err)
	}
	if _, err := Select(tree.NewMap(), "a.b"); !errors.Is(err, ErrQuery) {
		t.Errorf("expected ErrQuery for missing root, got %v", err)
	}
}

func TestPlain(t *testing.T) {
	got, err := Plain(tree.FromPairs("k", []any{int64(1), tree.NewMap()}))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"k": []any{float64(1), map[string]any{}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plain mismatch (-want +got):\n%s", diff)
	}
}
