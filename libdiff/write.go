package libdiff

import (
	"fmt"
	"io"

	"github.com/signadot/flattree/encode"
)

// Write writes one line per change:
//
//	+ path = value
//	- path = value
//	~ path = from -> to
//	> path = value
//
// colors may be nil.
func Write(w io.Writer, changes []Change, colors *encode.Colors) error {
	paint := func(t encode.Type, a encode.ColorAttr, s string) string {
		if colors == nil {
			return s
		}
		return colors.Color(t, a, s)
	}
	for _, c := range changes {
		var line string
		switch c.Kind {
		case Added:
			line = paint(encode.TypeOf(c.To), encode.InsertColor, "+ "+c.Path+" = "+encode.MustString(c.To))
		case Removed:
			line = paint(encode.TypeOf(c.From), encode.DeleteColor, "- "+c.Path+" = "+encode.MustString(c.From))
		case Changed:
			line = "~ " + paint(encode.TypeOf(c.To), encode.PathColor, c.Path) + " = " +
				paint(encode.TypeOf(c.From), encode.DeleteColor, encode.MustString(c.From)) + " -> " +
				paint(encode.TypeOf(c.To), encode.InsertColor, encode.MustString(c.To))
		case Moved:
			line = "> " + paint(encode.TypeOf(c.To), encode.PathColor, c.Path) + " = " + encode.MustString(c.To)
		default:
			return fmt.Errorf("unknown change kind %d", int(c.Kind))
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
