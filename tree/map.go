package tree

import (
	"bytes"
	"encoding/json"
	"iter"
	"reflect"
	"slices"

	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
)

// Map is a mapping which keeps its keys in insertion order.
//
// Keys must be comparable.  Integer keys are normalized to int64, so
// that Set(1, v) and Set(int64(1), v) address the same entry.
type Map struct {
	keys   []any
	values map[any]any
}

func NewMap() *Map {
	return &Map{values: map[any]any{}}
}

// FromPairs builds a Map from alternating keys and values.  It panics on
// an odd number of arguments.
func FromPairs(kvs ...any) *Map {
	if len(kvs)%2 != 0 {
		panic("tree.FromPairs: odd number of arguments")
	}
	m := NewMap()
	for i := 0; i < len(kvs); i += 2 {
		m.Set(kvs[i], kvs[i+1])
	}
	return m
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set sets the value for k.  A new key is added at the end; an
// existing key keeps its position.
func (m *Map) Set(k, v any) {
	if m.values == nil {
		m.values = map[any]any{}
	}
	k = fpath.NormalizeField(k)
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *Map) Get(k any) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[fpath.NormalizeField(k)]
	return v, ok
}

func (m *Map) Has(k any) bool {
	_, ok := m.Get(k)
	return ok
}

// Delete removes k, reporting whether it was present.
func (m *Map) Delete(k any) bool {
	if m == nil {
		return false
	}
	k = fpath.NormalizeField(k)
	if _, ok := m.values[k]; !ok {
		return false
	}
	delete(m.values, k)
	i := slices.Index(m.keys, k)
	m.keys = slices.Delete(m.keys, i, i+1)
	return true
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []any {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over the entries in order.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Equal reports whether m and o have the same keys in the same order
// with Equal values.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	if m.Len() == 0 {
		return true
	}
	for i, k := range m.keys {
		if o.keys[i] != k {
			return false
		}
		if !Equal(m.values[k], o.values[k]) {
			return false
		}
	}
	return true
}

// Equal compares nested structures, respecting Map key order.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case *Map:
		y, ok := b.(*Map)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// KeyTexts returns the text of each key, in order, for use as JSON
// object keys.  String keys are written as they are and other keys in
// their path encoding ("null", "true", "42").  When a string key reads as
// the encoding of another key of m, as "1" does next to 1, every key is
// written in its path encoding so that the texts stay distinct.
func (m *Map) KeyTexts(s symbols.Symbols) []string {
	encodeAll := false
	for _, k := range m.Keys() {
		ks, ok := k.(string)
		if !ok {
			continue
		}
		dk := fpath.DecodeKey(ks, s)
		if _, str := dk.Field.(string); dk.IsField() && !str && m.Has(dk.Field) {
			encodeAll = true
			break
		}
	}
	res := make([]string, 0, m.Len())
	for _, k := range m.Keys() {
		ks, ok := k.(string)
		if encodeAll || !ok {
			ks = fpath.EncodeKey(fpath.Field(k), s)
		}
		res = append(res, ks)
	}
	return res
}

// MarshalJSON writes the entries in order, with keys from KeyTexts.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')
	for i, ks := range m.KeyTexts(defaultSymbols) {
		if i > 0 {
			buf.WriteByte(',')
		}
		kd, err := json.Marshal(ks)
		if err != nil {
			return nil, err
		}
		buf.Write(kd)
		buf.WriteByte(':')
		vd, err := json.Marshal(m.values[m.keys[i]])
		if err != nil {
			return nil, err
		}
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
