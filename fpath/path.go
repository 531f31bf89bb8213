package fpath

import (
	"slices"
	"strings"

	"github.com/signadot/flattree/debug"
	"github.com/signadot/flattree/symbols"
)

// Path is a sequence of keys from the root.  The empty path denotes the
// root itself.
type Path []Key

// Append returns a new path with ks appended to p.  p is not modified.
func (p Path) Append(ks ...Key) Path {
	res := make(Path, 0, len(p)+len(ks))
	res = append(res, p...)
	return append(res, ks...)
}

func (p Path) Equal(o Path) bool {
	return slices.EqualFunc(p, o, Key.Equal)
}

// String encodes p with the default symbols.  The root is "$".
func (p Path) String() string {
	res, ok := Encode(p, symbols.Default())
	if !ok {
		return "$"
	}
	return res
}

// Encode encodes p as a single path string.  For the root (empty path)
// it returns false: the root has no path string.
//
// Examples, with the default symbols:
//   - [Field("a"), Field("b")] → "a.b"
//   - [Field("a"), Index(0), Field("b")] → "a[0].b"
//   - [Index(0), Index(1)] → "[0][1]"
//   - [Field("x.y"), Field(1)] → "'x.y'.1"
func Encode(p Path, s symbols.Symbols) (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString(EncodeKey(p[0], s))
	for _, k := range p[1:] {
		enc := EncodeKey(k, s)
		if !strings.HasPrefix(enc, string(s.LBracket)) {
			b.WriteRune(s.Sep)
		}
		b.WriteString(enc)
	}
	return b.String(), true
}

// Decode splits a path string into keys.  Decode is total: every
// string decodes to some path, and only placing the path in a tree can
// fail.
//
// Outside quotes, the separator ends a segment and a left bracket
// starts one (except as the first character, where there is nothing to
// end).  Inside quotes every character belongs to the segment; a doubled
// closing quote stays inside the quotes.
func Decode(text string, s symbols.Symbols) Path {
	var (
		res    Path
		buf    strings.Builder
		quoted bool
	)
	flush := func() {
		res = append(res, DecodeKey(buf.String(), s))
		buf.Reset()
	}
	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if quoted {
			if r == s.RQuote {
				if i+1 < len(rs) && rs[i+1] == s.RQuote {
					buf.WriteRune(r)
					buf.WriteRune(r)
					i++
					continue
				}
				quoted = false
			}
			buf.WriteRune(r)
			continue
		}
		switch r {
		case s.LQuote:
			quoted = true
		case s.Sep:
			flush()
			continue
		case s.LBracket:
			if i > 0 {
				flush()
			}
		}
		buf.WriteRune(r)
	}
	flush()
	if debug.Decode() {
		debug.Logf("decoded %q into %d keys\n", text, len(res))
	}
	return res
}

// DecodeAny decodes v if it is a string.  Any other value, nil
// included, denotes the root.
func DecodeAny(v any, s symbols.Symbols) Path {
	text, ok := v.(string)
	if !ok {
		return Path{}
	}
	return Decode(text, s)
}
