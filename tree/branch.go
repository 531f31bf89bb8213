package tree

import (
	"slices"

	"github.com/signadot/flattree/fpath"
)

// branch is an interior node under construction.  Its kind is fixed
// when it is created: a FieldKind branch takes field keys and renders
// to a *Map, an IndexKind branch takes index keys and renders to []any.
type branch struct {
	kind     fpath.Kind
	keys     []any
	children map[any]any
}

func newBranch(kind fpath.Kind) *branch {
	return &branch{kind: kind, children: map[any]any{}}
}

func (b *branch) accepts(k fpath.Key) bool {
	return k.Kind == b.kind && k.Valid()
}

func (b *branch) set(k, v any) {
	b.keys = append(b.keys, k)
	b.children[k] = v
}

// place stores v at p below b.  It reports false when p cannot be
// placed: a key of the wrong kind or an invalid key, a path through a
// terminal value, or a terminal key which is already taken.  Branches
// created on the way down to the failing key are kept.
func (b *branch) place(p fpath.Path, v any) bool {
	if len(p) == 0 {
		return false
	}
	cur := b
	last := len(p) - 1
	for i, k := range p {
		if !cur.accepts(k) {
			return false
		}
		key := k.Value()
		child, exists := cur.children[key]
		if i == last {
			if exists {
				return false
			}
			cur.set(key, v)
			return true
		}
		if !exists {
			// the next key decides the kind of the new branch
			next := newBranch(p[i+1].Kind)
			cur.set(key, next)
			cur = next
			continue
		}
		next, ok := child.(*branch)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

func (b *branch) render() any {
	if b.kind == fpath.IndexKind {
		idxs := make([]int, 0, len(b.keys))
		for _, k := range b.keys {
			idxs = append(idxs, k.(int))
		}
		slices.Sort(idxs)
		res := make([]any, 0, len(idxs))
		for _, i := range idxs {
			res = append(res, renderChild(b.children[i]))
		}
		return res
	}
	m := NewMap()
	for _, k := range b.keys {
		m.Set(k, renderChild(b.children[k]))
	}
	return m
}

func renderChild(v any) any {
	if b, ok := v.(*branch); ok {
		return b.render()
	}
	return v
}
