// Package query selects values from nested structures with JSONPath
// (RFC 9535) expressions.
package query

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

var ErrQuery = errors.New("query error")

// Select evaluates expr against v.  Ordered mappings are seen as JSON
// objects, so that keys which are not strings are matched by their path
// encoding: FromPairs(1, "x") answers "$['1']".
//
// Results are plain JSON values: map[string]any, []any, float64, string,
// bool and nil.
func Select(v any, expr string) ([]any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrQuery, expr, err)
	}
	data, err := Plain(v)
	if err != nil {
		return nil, err
	}
	return path.Select(data), nil
}

// Plain converts v to the values encoding/json decodes JSON into.
func Plain(v any) (any, error) {
	d, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return res, nil
}
