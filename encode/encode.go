package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/signadot/flattree/format"
	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

var ErrEncoding = errors.New("encoding error")

var defaultSymbols = symbols.Default()

type EncState struct {
	depth, indent int

	format format.Format

	Color func(Type, ColorAttr, string) string
}

// Encode writes v followed by a newline.
func Encode(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.YAMLFormat:
		return encodeYAML(v, w, es)
	case format.JSONFormat:
		if err := encodeJSON(v, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	}
	return fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
}

// MustString encodes v as single line JSON and panics on error.
func MustString(v any) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(v, buf, EncodeIndent(0)); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}

func encodeYAML(v any, w io.Writer, es *EncState) error {
	var yopts []yaml.EncodeOption
	if es.indent > 0 {
		yopts = append(yopts, yaml.Indent(es.indent))
	}
	d, err := yaml.MarshalWithOptions(ToYAML(v), yopts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts *tree.Map values to yaml.MapSlice, which the YAML
// encoder writes in order.
func ToYAML(v any) any {
	switch x := v.(type) {
	case *tree.Map:
		res := make(yaml.MapSlice, 0, x.Len())
		for k, elt := range x.All() {
			res = append(res, yaml.MapItem{Key: k, Value: ToYAML(elt)})
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i, elt := range x {
			res[i] = ToYAML(elt)
		}
		return res
	}
	return v
}

func encodeJSON(v any, w io.Writer, es *EncState) error {
	switch x := v.(type) {
	case *tree.Map:
		if x.Len() == 0 {
			return writeColored(w, es, ObjectType, ValueColor, "{}")
		}
		if err := writeColored(w, es, ObjectType, SepColor, "{"); err != nil {
			return err
		}
		es.depth++
		keys := x.KeyTexts(defaultSymbols)
		i := 0
		for _, elt := range x.All() {
			if i > 0 {
				if err := writeColored(w, es, ObjectType, SepColor, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			kd, err := marshal(keys[i])
			i++
			if err != nil {
				return err
			}
			if err := writeColored(w, es, ObjectType, FieldColor, string(kd)); err != nil {
				return err
			}
			colon := ":"
			if es.indent > 0 {
				colon = ": "
			}
			if err := writeColored(w, es, ObjectType, SepColor, colon); err != nil {
				return err
			}
			if err := encodeJSON(elt, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeColored(w, es, ObjectType, SepColor, "}")
	case []any:
		if len(x) == 0 {
			return writeColored(w, es, ArrayType, ValueColor, "[]")
		}
		if err := writeColored(w, es, ArrayType, SepColor, "["); err != nil {
			return err
		}
		es.depth++
		for i, elt := range x {
			if i > 0 {
				if err := writeColored(w, es, ArrayType, SepColor, ","); err != nil {
					return err
				}
			}
			if err := writeNL(w, es); err != nil {
				return err
			}
			if err := encodeJSON(elt, w, es); err != nil {
				return err
			}
		}
		es.depth--
		if err := writeNL(w, es); err != nil {
			return err
		}
		return writeColored(w, es, ArrayType, SepColor, "]")
	}
	d, err := marshal(v)
	if err != nil {
		return err
	}
	return writeColored(w, es, TypeOf(v), ValueColor, string(d))
}

// marshal encodes a scalar without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// List writes one "path = value" line per leaf.  Values are single line
// JSON; the root is written as "$".
func List(w io.Writer, leaves iter.Seq[tree.Leaf], s symbols.Symbols, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	es.indent = 0
	for leaf := range leaves {
		path, ok := fpath.Encode(leaf.Path, s)
		if !ok {
			path = "$"
		}
		if err := writeColored(w, es, TypeOf(leaf.Value), PathColor, path); err != nil {
			return err
		}
		if err := writeColored(w, es, TypeOf(leaf.Value), SepColor, " = "); err != nil {
			return err
		}
		if err := encodeJSON(leaf.Value, w, es); err != nil {
			return err
		}
		if err := writeString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeNL(w io.Writer, es *EncState) error {
	if es.indent == 0 {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeColored(w io.Writer, es *EncState, t Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
