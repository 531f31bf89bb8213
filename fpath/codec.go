package fpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/flattree/symbols"
)

// literals maps the reserved words to the field values they denote.
var literals = map[string]any{
	"null":  nil,
	"true":  true,
	"false": false,
}

// IsLiteral reports whether s is one of the reserved words "null",
// "true" or "false".
func IsLiteral(s string) bool {
	_, ok := literals[s]
	return ok
}

// EncodeKey encodes a single key.
//
//   - Index(3) → "[3]"
//   - Field("a") → "a"
//   - Field("a.b") → "'a.b'"
//   - Field("42") → "'42'", Field(42) → "42"
//   - Field("true") → "'true'", Field(true) → "true"
//   - Field("it's") → "'it''s'"
func EncodeKey(k Key, s symbols.Symbols) string {
	if k.Kind == IndexKind {
		var b strings.Builder
		b.WriteRune(s.LBracket)
		if k.Text != "" {
			b.WriteString(k.Text)
		} else {
			b.WriteString(strconv.Itoa(k.Index))
		}
		b.WriteRune(s.RBracket)
		return b.String()
	}
	switch x := k.Field.(type) {
	case string:
		if NeedsQuote(x, s) {
			return Quote(x, s)
		}
		return x
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

// NeedsQuote reports whether the field name v must be quoted: when it
// reads as an integer, is a reserved word, or contains any symbol.
func NeedsQuote(v string, s symbols.Symbols) bool {
	if isInteger(v) || IsLiteral(v) {
		return true
	}
	return strings.ContainsFunc(v, s.Special)
}

// Quote wraps v in quotes, doubling the closing quote and, when the
// quotes differ, the opening quote.
func Quote(v string, s symbols.Symbols) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteRune(s.LQuote)
	for _, r := range v {
		switch r {
		case s.RQuote:
			b.WriteRune(r)
		case s.LQuote:
			// distinct from RQuote here
			b.WriteRune(r)
		}
		b.WriteRune(r)
	}
	b.WriteRune(s.RQuote)
	return b.String()
}

// Unquote reverses Quote on the text between the quotes.
func Unquote(v string, s symbols.Symbols) string {
	rq := string(s.RQuote)
	v = strings.ReplaceAll(v, rq+rq, rq)
	if s.LQuote != s.RQuote {
		lq := string(s.LQuote)
		v = strings.ReplaceAll(v, lq+lq, lq)
	}
	return v
}

// DecodeKey decodes a single encoded key.  It never fails: text which is
// not a well formed index key decodes to an invalid index key, and
// anything else is a field.
func DecodeKey(text string, s symbols.Symbols) Key {
	if isInteger(text) {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// out of range for int64
			return Field(text)
		}
		return Field(i)
	}
	if inner, ok := delimited(text, s.LBracket, s.RBracket); ok {
		return indexText(inner)
	}
	if inner, ok := delimited(text, s.LQuote, s.RQuote); ok {
		return Field(Unquote(inner, s))
	}
	if v, ok := literals[text]; ok {
		return Field(v)
	}
	return Field(text)
}

// delimited returns the text between open and close when text has more
// than 2 runes and starts and ends with them.
func delimited(text string, open, close rune) (string, bool) {
	if utf8.RuneCountInString(text) <= 2 {
		return "", false
	}
	first, fn := utf8.DecodeRuneInString(text)
	last, ln := utf8.DecodeLastRuneInString(text)
	if first != open || last != close {
		return "", false
	}
	return text[fn : len(text)-ln], true
}

// isInteger reports whether v is a decimal integer: digits with an
// optional leading minus.
func isInteger(v string) bool {
	if strings.HasPrefix(v, "-") {
		v = v[1:]
	}
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}
