package libdiff

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/tree"
)

type Kind int

const (
	Added Kind = iota
	Removed
	Changed
	Moved
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	case Moved:
		return "moved"
	default:
		return "<invalid>"
	}
}

// Change is a difference at one path.  Path is "$" for the root.
type Change struct {
	Path string
	Kind Kind
	From any
	To   any
}

// Diff compares the flat representations of from and to.  Paths are
// encoded with the symbols of each side and compared as keys, so both
// sides should use the same symbols.
func Diff(from, to *flattree.FlatTree) []Change {
	fromFlat, toFlat := from.Flat(), to.Flat()
	keyMap := map[any]rune{}
	runeMap := map[rune]any{}
	fromRunes := mapKeysTo(keyMap, runeMap, fromFlat)
	toRunes := mapKeysTo(keyMap, runeMap, toFlat)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	var res []Change
	removed := map[any]int{}
	added := map[any]int{}
	for i := range diffs {
		diff := &diffs[i]
		for _, r := range diff.Text {
			k := runeMap[r]
			switch diff.Type {
			case diffpatch.DiffDelete:
				removed[k] = len(res)
				v, _ := fromFlat.Get(k)
				res = append(res, Change{Path: pathOf(k), Kind: Removed, From: v})
			case diffpatch.DiffInsert:
				added[k] = len(res)
				v, _ := toFlat.Get(k)
				res = append(res, Change{Path: pathOf(k), Kind: Added, To: v})
			case diffpatch.DiffEqual:
				fv, _ := fromFlat.Get(k)
				tv, _ := toFlat.Get(k)
				if !tree.Equal(fv, tv) {
					res = append(res, Change{Path: pathOf(k), Kind: Changed, From: fv, To: tv})
				}
			}
		}
	}
	return pairMoves(res, removed, added)
}

// pairMoves folds a removal and an addition of the same path into one
// change at the position of the addition.
func pairMoves(changes []Change, removed, added map[any]int) []Change {
	drop := map[int]bool{}
	for k, ri := range removed {
		ai, ok := added[k]
		if !ok {
			continue
		}
		c := &changes[ai]
		c.From = changes[ri].From
		if tree.Equal(c.From, c.To) {
			c.Kind = Moved
		} else {
			c.Kind = Changed
		}
		drop[ri] = true
	}
	if len(drop) == 0 {
		return changes
	}
	res := make([]Change, 0, len(changes)-len(drop))
	for i := range changes {
		if !drop[i] {
			res = append(res, changes[i])
		}
	}
	return res
}

func pathOf(k any) string {
	s, ok := k.(string)
	if !ok {
		return fpath.Path{}.String()
	}
	return s
}

func mapKeysTo(m map[any]rune, im map[rune]any, flat *tree.Map) []rune {
	rs := make([]rune, 0, flat.Len())
	for k := range flat.All() {
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			if r >= 0xD800 {
				// skip surrogates, which do not survive conversion
				// to string.
				r += 0x800
			}
			m[k] = r
			im[r] = k
		}
		rs = append(rs, r)
	}
	return rs
}
