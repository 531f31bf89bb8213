package flattree

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

func TestFlatRoundTrip(t *testing.T) {
	v := tree.FromPairs(
		"a", tree.FromPairs("b", 1, "c", []any{true, nil}),
		"x.y", "dot",
		int64(5), "five",
		"5", "str5",
		"e", tree.NewMap(),
	)
	ft, err := New(v)
	if err != nil {
		t.Fatal(err)
	}
	wantFlat := tree.FromPairs(
		"a.b", 1,
		"a.c[0]", true,
		"a.c[1]", nil,
		"'x.y'", "dot",
		"5", "five",
		"'5'", "str5",
		"e", tree.NewMap(),
	)
	flat := ft.Flat()
	if diff := cmp.Diff(wantFlat, flat); diff != "" {
		t.Errorf("Flat mismatch (-want +got):\n%s", diff)
	}
	back, err := FromFlat(flat)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(v, back.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	if len(back.Shadow()) != 0 {
		t.Errorf("unexpected shadow %v", back.Shadow())
	}
}

func TestRootScalar(t *testing.T) {
	ft, err := New("s")
	if err != nil {
		t.Fatal(err)
	}
	if got := ft.FlatValue(); got != "s" {
		t.Errorf("FlatValue() = %v, want s", got)
	}
	if diff := cmp.Diff(tree.FromPairs(nil, "s"), ft.Flat()); diff != "" {
		t.Errorf("Flat mismatch (-want +got):\n%s", diff)
	}
	if v, ok := ft.GetPath(fpath.Path{}); !ok || v != "s" {
		t.Errorf("GetPath(root) = %v, %t", v, ok)
	}
	if n := len(slices.Collect(ft.Paths())); n != 0 {
		t.Errorf("root leaf has no path string, got %d paths", n)
	}
	for _, flat := range []any{"s", tree.FromPairs(nil, "s")} {
		back, err := FromFlat(flat)
		if err != nil {
			t.Fatal(err)
		}
		if got := back.Tree(); got != "s" {
			t.Errorf("FromFlat(%v).Tree() = %v", flat, got)
		}
	}
}

func TestEmptyFlat(t *testing.T) {
	ft, err := FromFlat(tree.NewMap())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tree.NewMap(), ft.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	if ft.Len() != 0 {
		t.Errorf("Len() = %d", ft.Len())
	}
}

func TestFromFlatConflicts(t *testing.T) {
	flat := tree.FromPairs("a", 1, "a.b", 2, "'a'", 3, "c[0]", 4, "c.d", 5)
	ft, err := FromFlat(flat)
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs("a", 1, "c", []any{4})
	if diff := cmp.Diff(want, ft.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	wantShadow := []tree.Leaf{
		{Path: fpath.Path{fpath.Field("a"), fpath.Field("b")}, Value: 2},
		{Path: fpath.Path{fpath.Field("a")}, Value: 3},
		{Path: fpath.Path{fpath.Field("c"), fpath.Field("d")}, Value: 5},
	}
	if diff := cmp.Diff(wantShadow, ft.Shadow()); diff != "" {
		t.Errorf("Shadow mismatch (-want +got):\n%s", diff)
	}
	if got := len(ft.Crown()) + len(ft.Shadow()); got != ft.Len() {
		t.Errorf("crown+shadow = %d, want %d", got, ft.Len())
	}
	// "a" and "'a'" are the same path: the first leaf wins.
	if v, ok := ft.Get("'a'"); !ok || v != 1 {
		t.Errorf("Get('a') = %v, %t", v, ok)
	}
	if diff := cmp.Diff(tree.FromPairs("a", 1, "a.b", 2, "c[0]", 4, "c.d", 5), ft.Flat()); diff != "" {
		t.Errorf("Flat mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFlatBadIndex(t *testing.T) {
	ft, err := FromFlat(tree.FromPairs("a", 1, "b[x]", 2, "b", 3))
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs("a", 1, "b", []any{})
	if diff := cmp.Diff(want, ft.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	wantShadow := []tree.Leaf{
		{Path: fpath.Decode("b[x]", ft.Symbols()), Value: 2},
		{Path: fpath.Path{fpath.Field("b")}, Value: 3},
	}
	if diff := cmp.Diff(wantShadow, ft.Shadow()); diff != "" {
		t.Errorf("Shadow mismatch (-want +got):\n%s", diff)
	}
}

func TestFromFlatGoMap(t *testing.T) {
	ft, err := FromFlat(map[string]any{"b": 2, "a[0]": 1})
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs("a", []any{1}, "b", 2)
	if diff := cmp.Diff(want, ft.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	ft, err := New(tree.FromPairs("a", tree.FromPairs("b", []any{"x", "y"}), "true", 1, true, 2))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{path: "a.b[1]", want: "y", ok: true},
		{path: "'a'.'b'[0]", want: "x", ok: true},
		{path: "'true'", want: 1, ok: true},
		{path: "true", want: 2, ok: true},
		{path: "a.b", ok: false},
		{path: "a.b[2]", ok: false},
		{path: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ft.Get(tt.path)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Get(%q) = %v, %t, want %v, %t", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	ft, err := New(tree.FromPairs("a", 1, "b", []any{2, tree.FromPairs("c d", 3)}))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b[0]", "b[1].c d"}
	if diff := cmp.Diff(want, slices.Collect(ft.Paths())); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
}

func TestSettings(t *testing.T) {
	settings := symbols.Settings{Separator: "/", Brackets: "<>", Quotes: `"`}
	v := tree.FromPairs("a", []any{tree.FromPairs("b/c", 1, "d.e", 2)})
	ft, err := New(v, WithSettings(settings))
	if err != nil {
		t.Fatal(err)
	}
	want := tree.FromPairs(`a<0>/"b/c"`, 1, "a<0>/d.e", 2)
	if diff := cmp.Diff(want, ft.Flat()); diff != "" {
		t.Errorf("Flat mismatch (-want +got):\n%s", diff)
	}
	back, err := FromFlat(ft.Flat(), WithSettings(settings))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(v, back.Tree()); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBadSettings(t *testing.T) {
	bad := []Option{
		WithSettings(symbols.Settings{Separator: "..", Brackets: "[]", Quotes: "'"}),
		WithSettings(symbols.Settings{Separator: "[", Brackets: "[]", Quotes: "'"}),
		WithSymbols(symbols.Symbols{Sep: '1', LBracket: '[', RBracket: ']', LQuote: '\'', RQuote: '\''}),
	}
	for i, opt := range bad {
		if _, err := New(tree.NewMap(), opt); !errors.Is(err, symbols.ErrBadSettings) {
			t.Errorf("%d: New error = %v, want ErrBadSettings", i, err)
		}
		if _, err := FromFlat(tree.NewMap(), opt); !errors.Is(err, symbols.ErrBadSettings) {
			t.Errorf("%d: FromFlat error = %v, want ErrBadSettings", i, err)
		}
	}
}

func TestMergePrecedence(t *testing.T) {
	a := tree.FromPairs("a", 1)
	b := tree.FromPairs("a", 2)
	_, res := Merge(symbols.Default(), a, b)
	if diff := cmp.Diff(tree.FromPairs("a", 1), res.Tree); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	wantShadow := []tree.Leaf{{Path: fpath.Path{fpath.Field("a")}, Value: 2}}
	if diff := cmp.Diff(wantShadow, res.Shadow); diff != "" {
		t.Errorf("Shadow mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFlatTrees(t *testing.T) {
	first, err := FromFlat(tree.FromPairs("x", 1, "x.y", 2))
	if err != nil {
		t.Fatal(err)
	}
	second := tree.FromPairs("x", tree.FromPairs("y", 3), "z", []any{4})
	merged, res := first.Merge(second)

	want := tree.FromPairs("x", 1, "z", []any{4})
	if diff := cmp.Diff(want, res.Tree); diff != "" {
		t.Errorf("Tree mismatch (-want +got):\n%s", diff)
	}
	// first's shadow comes before second's leaves.
	wantShadow := []tree.Leaf{
		{Path: fpath.Path{fpath.Field("x"), fpath.Field("y")}, Value: 2},
		{Path: fpath.Path{fpath.Field("x"), fpath.Field("y")}, Value: 3},
	}
	if diff := cmp.Diff(wantShadow, res.Shadow); diff != "" {
		t.Errorf("Shadow mismatch (-want +got):\n%s", diff)
	}
	if merged.Build() != res {
		t.Error("merged tree should carry the merge result")
	}
	rebuilt, err := FromLeaves(merged.Leaves())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Tree, rebuilt.Tree()); diff != "" {
		t.Errorf("rebuilt Tree mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Shadow, rebuilt.Shadow()); diff != "" {
		t.Errorf("rebuilt Shadow mismatch (-want +got):\n%s", diff)
	}
}
