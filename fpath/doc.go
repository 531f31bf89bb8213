// Package fpath encodes paths into nested structures as single strings.
//
// A path is a sequence of typed keys: index keys address sequence
// elements and field keys address mapping values.  With the default
// symbols:
//
//	"users[0].name"     // Field("users"), Index(0), Field("name")
//	"[1][0]"            // Index(1), Index(0)
//	"'a.b'.'42'.42"     // Field("a.b"), Field("42"), Field(int64(42))
//	"'null'.null"       // Field("null"), Field(nil)
//
// Field names which are all digits, are one of the reserved words
// null/true/false, or contain any symbol are quoted; inside quotes the
// closing quote is doubled.  Index keys are self delimiting and are never
// preceded by the separator.
//
// # Usage
//
//	s := symbols.Default()
//	p := fpath.Decode("a[0].b", s)
//	text, ok := fpath.Encode(p, s) // "a[0].b", true
//
// Decoding never fails.  Whether the decoded keys can be placed in a tree
// is decided when building one, see package tree.
package fpath
