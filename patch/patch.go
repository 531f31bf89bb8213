// Package patch applies JSON patches (RFC 6902) and JSON merge patches
// (RFC 7386) to nested structures.
//
// Patching goes through JSON, which loses the order of mapping keys and
// the type of keys which are not strings.  Both are restored for the
// mappings which were present before patching; new keys follow the old
// ones.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/flattree/debug"
	"github.com/signadot/flattree/parse"
	"github.com/signadot/flattree/symbols"
	"github.com/signadot/flattree/tree"
)

var ErrPatch = errors.New("patch error")

var defaultSymbols = symbols.Default()

// Apply applies the RFC 6902 patch in patchJSON to doc.
func Apply(doc any, patchJSON []byte) (any, error) {
	ops, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	if debug.Patch() {
		debug.Logf("applying %d patch operations\n", len(ops))
	}
	return viaJSON(doc, ops.Apply)
}

// Merge applies the RFC 7386 merge patch in mergeJSON to doc.
func Merge(doc any, mergeJSON []byte) (any, error) {
	if debug.Patch() {
		debug.Logf("applying merge patch %s\n", mergeJSON)
	}
	return viaJSON(doc, func(d []byte) ([]byte, error) {
		return jsonpatch.MergePatch(d, mergeJSON)
	})
}

func viaJSON(doc any, f func([]byte) ([]byte, error)) (any, error) {
	d, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	out, err := f(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	res, err := parse.Parse(out, parse.ParseJSON())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return Reorder(doc, res), nil
}

// Reorder returns res with the key order and key types of orig, where
// orig has a mapping at the same place.  res keys are matched to orig
// keys by their JSON names.
func Reorder(orig, res any) any {
	switch r := res.(type) {
	case *tree.Map:
		o, ok := orig.(*tree.Map)
		if !ok {
			return res
		}
		out := tree.NewMap()
		seen := map[string]bool{}
		names := o.KeyTexts(defaultSymbols)
		i := 0
		for k, ov := range o.All() {
			name := names[i]
			i++
			rv, ok := r.Get(name)
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			out.Set(k, Reorder(ov, rv))
		}
		for k, rv := range r.All() {
			if name, _ := k.(string); seen[name] {
				continue
			}
			out.Set(k, rv)
		}
		return out
	case []any:
		o, ok := orig.([]any)
		if !ok {
			return res
		}
		for i := range r {
			if i < len(o) {
				r[i] = Reorder(o[i], r[i])
			}
		}
		return r
	}
	return res
}
