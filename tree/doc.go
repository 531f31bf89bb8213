// Package tree converts between nested structures and leaf sequences.
//
// A nested structure is built from *Map (ordered mappings), []any
// (sequences) and scalars.  Leaves enumerates its leaves, Build puts
// leaves back together:
//
//	res := tree.Build(tree.Leaves(v))
//	// res.Tree is equal to v, res.Shadow is empty
//
// Build is tolerant: leaves which cannot be placed are kept aside in
// Result.Shadow rather than reported as errors.
package tree
