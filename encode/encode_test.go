package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/format"
	"github.com/signadot/flattree/parse"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

func TestEncodeJSON(t *testing.T) {
	v := tree.FromPairs(
		"z", int64(1),
		"a", []any{true, nil, "<s>"},
		int64(4), tree.NewMap(),
		nil, []any{},
	)
	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{
			name:   "compact",
			indent: 0,
			want:   `{"z":1,"a":[true,null,"<s>"],"4":{},"null":[]}` + "\n",
		},
		{
			name:   "indented",
			indent: 2,
			want: `{
  "z": 1,
  "a": [
    true,
    null,
    "<s>"
  ],
  "4": {},
  "null": []
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(v, buf, EncodeFormat(format.JSONFormat), EncodeIndent(tt.indent)); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Encode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeDistinctKeys(t *testing.T) {
	v := tree.FromPairs(int64(1), "int", "1", "str", nil, "n", "null", "s")
	got := MustString(v)
	want := `{"1":"int","'1'":"str","null":"n","'null'":"s"}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
	back, err := parse.Parse([]byte(got), parse.ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if n := back.(*tree.Map).Len(); n != 4 {
		t.Errorf("decoded %d keys, want 4", n)
	}
}

func TestEncodeScalars(t *testing.T) {
	for _, v := range []any{"s", int64(-3), 2.5, false, nil} {
		got := MustString(v)
		back, err := parse.Parse([]byte(got), parse.ParseJSON())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(v, back); diff != "" {
			t.Errorf("scalar %v mismatch (-want +got):\n%s", v, diff)
		}
	}
	if err := Encode(math.NaN(), &bytes.Buffer{}); !errors.Is(err, ErrEncoding) {
		t.Errorf("expected ErrEncoding, got %v", err)
	}
}

func TestEncodeYAML(t *testing.T) {
	v := tree.FromPairs(
		"b", int64(1),
		"a", tree.FromPairs("y", []any{"x", int64(2)}, "c", nil),
	)
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "b: 1\na:\n") {
		t.Errorf("unexpected yaml prefix:\n%s", buf.String())
	}
	back, err := parse.Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(v, back); diff != "" {
		t.Errorf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestList(t *testing.T) {
	v := tree.FromPairs("a", []any{int64(1), tree.NewMap()}, "b.c", "x")
	ft, err := flattree.New(v)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := List(buf, ft.Leaves(), ft.Symbols()); err != nil {
		t.Fatal(err)
	}
	want := "a[0] = 1\na[1] = {}\n'b.c' = \"x\"\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	root, err := flattree.New("s")
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := List(buf, root.Leaves(), symbols.Default()); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "$ = \"s\"\n" {
		t.Errorf("root List = %q", got)
	}
}

func TestColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	colors := NewColors()
	got := colors.Color(StringType, ValueColor, "100%")
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "100%") {
		t.Errorf("expected colored output, got %q", got)
	}
	if got := colors.Get(StringType, ColorAttr(99))("x"); got != "x" {
		t.Errorf("default color should be identity, got %q", got)
	}

	buf := bytes.NewBuffer(nil)
	if err := Encode([]any{int64(1)}, buf, EncodeIndent(0), EncodeColors(colors)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected colored JSON, got %q", buf.String())
	}
	buf.Reset()
	if err := Encode([]any{int64(1)}, buf, EncodeIndent(0), EncodeColors(nil)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "[1]\n" {
		t.Errorf("uncolored JSON = %q", got)
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		v    any
		want Type
	}{
		{nil, NullType},
		{true, BoolType},
		{int64(1), NumberType},
		{1.5, NumberType},
		{"s", StringType},
		{tree.NewMap(), ObjectType},
		{[]any{}, ArrayType},
	}
	for _, tt := range tests {
		if got := TypeOf(tt.v); got != tt.want {
			t.Errorf("TypeOf(%v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}
