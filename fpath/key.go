package fpath

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/signadot/flattree/symbols"
)

type Kind int

const (
	FieldKind Kind = iota
	IndexKind
)

func (k Kind) String() string {
	switch k {
	case FieldKind:
		return "field"
	case IndexKind:
		return "index"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

// Key is one typed path segment.
//
// An IndexKind key addresses an element of a sequence, a FieldKind key a
// value of a mapping.  Index keys decoded from text which is not a
// non-negative integer are invalid: they have Index -1 and keep the text
// in Text.
type Key struct {
	Kind  Kind
	Index int
	Text  string
	Field any
}

// Index returns a sequence key.
func Index(i int) Key {
	return Key{Kind: IndexKind, Index: i}
}

// Field returns a mapping key.  Integers of any Go integer type are
// normalized to int64.
func Field(v any) Key {
	return Key{Kind: FieldKind, Field: NormalizeField(v)}
}

func indexText(text string) Key {
	i, err := strconv.Atoi(text)
	if err != nil || i < 0 {
		return Key{Kind: IndexKind, Index: -1, Text: text}
	}
	return Index(i)
}

// NormalizeField maps integer values to int64 and leaves every other
// value unchanged.  Unsigned values that do not fit in an int64 are left
// unchanged as well.
func NormalizeField(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x)
		}
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
	}
	return v
}

func (k Key) IsIndex() bool { return k.Kind == IndexKind }
func (k Key) IsField() bool { return k.Kind == FieldKind }

// Valid reports whether k can be placed in a tree.  Index keys must be
// non-negative, fields must be a string, int64, bool or nil.
func (k Key) Valid() bool {
	switch k.Kind {
	case IndexKind:
		return k.Index >= 0 && k.Text == ""
	case FieldKind:
		switch k.Field.(type) {
		case nil, string, int64, bool:
			return true
		}
	}
	return false
}

// Value returns the native key: the index for an index key, the field
// value for a field key.
func (k Key) Value() any {
	if k.Kind == IndexKind {
		return k.Index
	}
	return k.Field
}

func (k Key) Equal(o Key) bool {
	if k.Kind != o.Kind {
		return false
	}
	if k.Kind == IndexKind {
		return k.Index == o.Index && k.Text == o.Text
	}
	if k.Valid() && o.Valid() {
		return k.Field == o.Field
	}
	return reflect.DeepEqual(k.Field, o.Field)
}

func (k Key) String() string {
	return EncodeKey(k, symbols.Default())
}
