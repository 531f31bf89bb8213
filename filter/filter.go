// Package filter selects leaves with boolean expressions.
//
// Expressions use the expr language (https://expr-lang.org) and see
// each leaf through the variables
//
//	path   the encoded path, "" for the root
//	keys   the key values, ints for indexes
//	depth  len(keys)
//	value  the leaf value
//	root   whether the leaf is at the root
//
// For example `depth > 1 && value == nil` or `path startsWith "spec."`.
// The function getenv(name) reads the environment.
package filter

import (
	"errors"
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/flattree"
	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

var ErrFilter = errors.New("filter error")

type Env struct {
	Path  string `expr:"path"`
	Keys  []any  `expr:"keys"`
	Depth int    `expr:"depth"`
	Value any    `expr:"value"`
	Root  bool   `expr:"root"`
}

// NewEnv describes leaf to an expression.
func NewEnv(leaf tree.Leaf, s symbols.Symbols) Env {
	path, ok := fpath.Encode(leaf.Path, s)
	keys := make([]any, len(leaf.Path))
	for i, k := range leaf.Path {
		keys[i] = k.Value()
	}
	return Env{
		Path:  path,
		Keys:  keys,
		Depth: len(keys),
		Value: leaf.Value,
		Root:  !ok,
	}
}

type Filter struct {
	src string
	prg *vm.Program
}

func Compile(src string) (*Filter, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: error compiling %q: %w", ErrFilter, src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func (f *Filter) String() string { return f.src }

// Match reports whether leaf satisfies the expression.
func (f *Filter) Match(leaf tree.Leaf, s symbols.Symbols) (bool, error) {
	res, err := expr.Run(f.prg, NewEnv(leaf, s))
	if err != nil {
		return false, fmt.Errorf("%w: error evaluating %q at %s: %w", ErrFilter, f.src, leaf.Path, err)
	}
	ok, _ := res.(bool)
	return ok, nil
}

// Apply returns the leaves of ft which match, in order.
func (f *Filter) Apply(ft *flattree.FlatTree) ([]tree.Leaf, error) {
	var res []tree.Leaf
	for leaf := range ft.Leaves() {
		ok, err := f.Match(leaf, ft.Symbols())
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, leaf)
		}
	}
	return res, nil
}
