// Package flattree converts nested mappings and sequences to flat maps
// keyed by path strings, and back.
//
//	ft, err := flattree.New(v)
//	flat := ft.Flat() // {"a.b": 1, "a.c[0]": true, ...}
//
//	ft, err = flattree.FromFlat(flat)
//	v = ft.Tree()
//
// Converting back never fails on structural conflicts.  Leaves which
// cannot be placed in the tree are kept in the shadow, see Shadow.
package flattree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

// FlatTree is a sequence of leaves indexed by path.  It is the common
// form of a nested structure and of its flat representation.
type FlatTree struct {
	syms   symbols.Symbols
	leaves []tree.Leaf
	// index maps encoded paths to the position of the first leaf with
	// that path.
	index map[string]int
	// root is the position of the first leaf with the empty path, or -1.
	root   int
	result *tree.Result
}

type options struct {
	syms symbols.Symbols
	err  error
}

type Option func(*options)

// WithSettings sets the symbols from settings.  Malformed settings make
// the constructor fail with an error wrapping symbols.ErrBadSettings.
func WithSettings(s symbols.Settings) Option {
	return func(o *options) {
		o.syms, o.err = s.Symbols()
	}
}

func WithSymbols(s symbols.Symbols) Option {
	return func(o *options) {
		o.syms, o.err = s, s.Validate()
	}
}

func makeOptions(opts []Option) (*options, error) {
	o := &options{syms: symbols.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.err != nil {
		return nil, o.err
	}
	return o, nil
}

// New enumerates the leaves of the nested structure v.
func New(v any, opts ...Option) (*FlatTree, error) {
	return FromLeaves(tree.Leaves(v), opts...)
}

// FromFlat reads a flat representation.  flat is either a *tree.Map or
// map[string]any whose string keys are path strings, or any other value,
// which is then the value of the root.  In a *tree.Map, a key which is
// not a string (nil in particular) denotes the root.
//
// map[string]any entries are read in sorted key order.
func FromFlat(flat any, opts ...Option) (*FlatTree, error) {
	o, err := makeOptions(opts)
	if err != nil {
		return nil, err
	}
	var leaves []tree.Leaf
	switch m := flat.(type) {
	case *tree.Map:
		leaves = make([]tree.Leaf, 0, m.Len())
		for k, v := range m.All() {
			leaves = append(leaves, tree.Leaf{Path: fpath.DecodeAny(k, o.syms), Value: v})
		}
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		leaves = make([]tree.Leaf, 0, len(m))
		for _, k := range keys {
			leaves = append(leaves, tree.Leaf{Path: fpath.Decode(k, o.syms), Value: m[k]})
		}
	default:
		leaves = []tree.Leaf{{Path: fpath.Path{}, Value: flat}}
	}
	return newFlatTree(o.syms, leaves), nil
}

// FromLeaves collects leaves as they are.
func FromLeaves(leaves iter.Seq[tree.Leaf], opts ...Option) (*FlatTree, error) {
	o, err := makeOptions(opts)
	if err != nil {
		return nil, err
	}
	return newFlatTree(o.syms, slices.Collect(leaves)), nil
}

func newFlatTree(syms symbols.Symbols, leaves []tree.Leaf) *FlatTree {
	ft := &FlatTree{
		syms:   syms,
		leaves: leaves,
		index:  make(map[string]int, len(leaves)),
		root:   -1,
	}
	for i, leaf := range leaves {
		key, ok := fpath.Encode(leaf.Path, syms)
		if !ok {
			if ft.root == -1 {
				ft.root = i
			}
			continue
		}
		if _, present := ft.index[key]; !present {
			ft.index[key] = i
		}
	}
	return ft
}

func (ft *FlatTree) Symbols() symbols.Symbols { return ft.syms }

// Len is the number of leaves, duplicates included.
func (ft *FlatTree) Len() int { return len(ft.leaves) }

// Leaves yields the leaves in order.
func (ft *FlatTree) Leaves() iter.Seq[tree.Leaf] {
	return slices.Values(ft.leaves)
}

// Paths yields the encoded path of every leaf in order.  Leaves at the
// root have no path string and are skipped.
func (ft *FlatTree) Paths() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, leaf := range ft.leaves {
			key, ok := fpath.Encode(leaf.Path, ft.syms)
			if !ok {
				continue
			}
			if !yield(key) {
				return
			}
		}
	}
}

// Get returns the value of the first leaf whose path decodes to the
// same keys as path.  "a.'b'" and "a.b" find the same leaf.
func (ft *FlatTree) Get(path string) (any, bool) {
	return ft.GetPath(fpath.Decode(path, ft.syms))
}

// GetPath returns the value of the first leaf at p.  The empty path
// looks up the root.
func (ft *FlatTree) GetPath(p fpath.Path) (any, bool) {
	i := ft.lookup(p)
	if i < 0 {
		return nil, false
	}
	return ft.leaves[i].Value, true
}

func (ft *FlatTree) lookup(p fpath.Path) int {
	key, ok := fpath.Encode(p, ft.syms)
	if !ok {
		return ft.root
	}
	i, ok := ft.index[key]
	if !ok {
		return -1
	}
	return i
}

// Flat returns the flat representation: a map from path strings to leaf
// values, in leaf order.  A root leaf has the key nil.  When several
// leaves share a path, the first one is kept.
func (ft *FlatTree) Flat() *tree.Map {
	res := tree.NewMap()
	for _, leaf := range ft.leaves {
		var key any
		if enc, ok := fpath.Encode(leaf.Path, ft.syms); ok {
			key = enc
		}
		if res.Has(key) {
			continue
		}
		res.Set(key, leaf.Value)
	}
	return res
}

// FlatValue is Flat, except that when the first leaf is at the root
// the tree is that leaf's value, which is returned bare.  FromFlat reads
// either form back.
func (ft *FlatTree) FlatValue() any {
	if len(ft.leaves) > 0 && len(ft.leaves[0].Path) == 0 {
		return ft.leaves[0].Value
	}
	return ft.Flat()
}

// Build reconstructs the nested structure.  The result is computed once
// and shared by later calls.
func (ft *FlatTree) Build() *tree.Result {
	if ft.result == nil {
		ft.result = tree.BuildSlice(ft.leaves)
	}
	return ft.result
}

func (ft *FlatTree) Tree() any { return ft.Build().Tree }

func (ft *FlatTree) Crown() []tree.Leaf { return ft.Build().Crown }

// Shadow returns the leaves which could not be placed in Tree.
func (ft *FlatTree) Shadow() []tree.Leaf { return ft.Build().Shadow }

// Merge merges ft with sources, ft first.
func (ft *FlatTree) Merge(sources ...any) (*FlatTree, *tree.Result) {
	return Merge(ft.syms, append([]any{ft}, sources...)...)
}

// Merge builds one tree from all the sources.  Earlier sources win: a
// leaf in conflict with a leaf of an earlier source ends up in the
// shadow.
//
// A *FlatTree source contributes its crown followed by its shadow.  Any
// other source is a nested structure whose leaves are enumerated.
//
// The returned FlatTree holds the crown then the shadow of the result,
// so that building it gives the same result again.
func Merge(syms symbols.Symbols, sources ...any) (*FlatTree, *tree.Result) {
	seqs := make([]iter.Seq[tree.Leaf], 0, len(sources))
	for _, src := range sources {
		seqs = append(seqs, sourceLeaves(src))
	}
	res := tree.Merge(seqs...)
	ft := newFlatTree(syms, slices.Collect(res.Leaves()))
	ft.result = res
	return ft, res
}

func sourceLeaves(src any) iter.Seq[tree.Leaf] {
	if ft, ok := src.(*FlatTree); ok {
		return ft.Build().Leaves()
	}
	return tree.Leaves(src)
}

func (ft *FlatTree) String() string {
	return fmt.Sprintf("flattree(%d leaves, %d paths)", len(ft.leaves), len(ft.index))
}
