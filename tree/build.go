package tree

import (
	"iter"
	"slices"

	"github.com/signadot/flattree/debug"
)

// Result is the outcome of building a tree from leaves.
type Result struct {
	// Tree is the reconstructed structure: a *Map, a []any, or the
	// value of a root scalar.
	Tree any
	// Crown holds the leaves placed in Tree, in input order.
	Crown []Leaf
	// Shadow holds the leaves which could not be placed, in input order.
	Shadow []Leaf
}

// Leaves yields the crown followed by the shadow.
func (r *Result) Leaves() iter.Seq[Leaf] {
	return Concat(slices.Values(r.Crown), slices.Values(r.Shadow))
}

// Build reconstructs a nested structure from leaves.
//
// The kind of the root, and of every branch below it, is decided by the
// first leaf that reaches it.  A leaf which conflicts with what is
// already built (a field key in a sequence, an index key in a mapping,
// an invalid key, a path through or onto an existing value) is not an
// error: it goes to the shadow and the build goes on.
//
// A first leaf with the empty path makes the tree that leaf's value, and
// every following leaf goes to the shadow.  No leaves at all build an
// empty *Map.
func Build(leaves iter.Seq[Leaf]) *Result {
	res := &Result{}
	var (
		root    *branch
		started bool
	)
	for leaf := range leaves {
		if !started {
			started = true
			if len(leaf.Path) == 0 {
				res.Tree = leaf.Value
				res.Crown = append(res.Crown, leaf)
				continue
			}
			root = newBranch(leaf.Path[0].Kind)
		}
		if root != nil && root.place(leaf.Path, leaf.Value) {
			res.Crown = append(res.Crown, leaf)
			continue
		}
		if debug.Build() {
			debug.Logf("shadowing leaf at %s\n", leaf.Path)
		}
		res.Shadow = append(res.Shadow, leaf)
	}
	switch {
	case root != nil:
		res.Tree = root.render()
	case !started:
		res.Tree = NewMap()
	}
	return res
}

// BuildSlice is Build over a slice of leaves.
func BuildSlice(leaves []Leaf) *Result {
	return Build(slices.Values(leaves))
}

// Merge builds one tree from the concatenation of the sources.  Earlier
// sources take precedence: a leaf conflicting with one from an earlier
// source goes to the shadow.
func Merge(sources ...iter.Seq[Leaf]) *Result {
	if debug.Merge() {
		debug.Logf("merging %d sources\n", len(sources))
	}
	return Build(Concat(sources...))
}
