package tree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
)

var defaultSymbols = symbols.Default()

// Leaf is a terminal value with its path from the root.  The value is a
// scalar or an empty Map, []any or map[string]any.
type Leaf struct {
	Path  fpath.Path
	Value any
}

func (l Leaf) String() string {
	return fmt.Sprintf("%s=%v", l.Path, l.Value)
}

// Leaves enumerates the leaves of v depth first, in preorder.  *Map
// entries are visited in insertion order, []any by index and
// map[string]any by sorted key.  Empty containers are leaves and so is
// a root scalar, with the empty path.
//
// Each yielded path is a fresh slice owned by the caller.
func Leaves(v any) iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		walk(fpath.Path{}, v, yield)
	}
}

// Collect returns the leaves of v as a slice.
func Collect(v any) []Leaf {
	return slices.Collect(Leaves(v))
}

func walk(p fpath.Path, v any, yield func(Leaf) bool) bool {
	switch x := v.(type) {
	case *Map:
		if x.Len() == 0 {
			break
		}
		for k, child := range x.All() {
			if !walk(p.Append(fpath.Field(k)), child, yield) {
				return false
			}
		}
		return true
	case []any:
		if len(x) == 0 {
			break
		}
		for i, child := range x {
			if !walk(p.Append(fpath.Index(i)), child, yield) {
				return false
			}
		}
		return true
	case map[string]any:
		if len(x) == 0 {
			break
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !walk(p.Append(fpath.Field(k)), x[k], yield) {
				return false
			}
		}
		return true
	}
	return yield(Leaf{Path: p, Value: v})
}

// Concat chains leaf sequences in argument order.
func Concat(seqs ...iter.Seq[Leaf]) iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		for _, seq := range seqs {
			for l := range seq {
				if !yield(l) {
					return
				}
			}
		}
	}
}
