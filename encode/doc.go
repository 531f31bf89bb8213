// Package encode writes nested structures as JSON or YAML, and leaves
// as "path = value" listings.
//
//	err := encode.Encode(v, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
//	// one line per leaf, colored
//	err = encode.List(os.Stdout, ft.Leaves(), ft.Symbols(), encode.EncodeColors(encode.NewColors()))
//
// JSON output follows the key order of *tree.Map.  Mapping keys which
// are not strings are written in their path encoding ("null", "true",
// "42").
package encode
