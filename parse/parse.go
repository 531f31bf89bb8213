// Package parse reads JSON and YAML documents into nested structures
// which keep the order of mapping keys.
//
// Mappings become *tree.Map, sequences []any, integers int64 when they
// fit.  Both formats go through the YAML decoder; JSON input is checked
// to be JSON first, so that YAML syntax is rejected in JSON mode.
package parse

import (
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/signadot/flattree/format"
	"github.com/signadot/flattree/fpath"
	"github.com/signadot/flattree/tree"
)

// Parse decodes a single document.  The format defaults to YAML.
func Parse(data []byte, opts ...ParseOption) (any, error) {
	o := &parseOpts{format: format.YAMLFormat}
	for _, opt := range opts {
		opt(o)
	}
	if o.format == format.JSONFormat && !json.Valid(data) {
		return nil, ErrNotJSON
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, yaml.FormatError(err, false, true))
	}
	return Normalize(v), nil
}

// Normalize converts values produced by the YAML decoder: ordered
// mappings become *tree.Map and integers become int64.
func Normalize(v any) any {
	switch x := v.(type) {
	case yaml.MapSlice:
		m := tree.NewMap()
		for _, item := range x {
			m.Set(fpath.NormalizeField(item.Key), Normalize(item.Value))
		}
		return m
	case []any:
		res := make([]any, len(x))
		for i, elt := range x {
			res[i] = Normalize(elt)
		}
		return res
	case map[string]any:
		// only seen without ordered maps; Leaves sorts these anyway.
		res := make(map[string]any, len(x))
		for k, elt := range x {
			res[k] = Normalize(elt)
		}
		return res
	}
	return fpath.NormalizeField(v)
}
