package encode

import "github.com/signadot/flattree/tree"

// Type classifies values for coloring.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ObjectType
	ArrayType
)

func Types() []Type {
	return []Type{NullType, BoolType, NumberType, StringType, ObjectType, ArrayType}
}

func (t Type) String() string {
	switch t {
	case NullType:
		return "Null"
	case BoolType:
		return "Bool"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case ObjectType:
		return "Object"
	case ArrayType:
		return "Array"
	default:
		return "<invalid>"
	}
}

func TypeOf(v any) Type {
	switch v.(type) {
	case nil:
		return NullType
	case bool:
		return BoolType
	case string:
		return StringType
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return NumberType
	case *tree.Map, map[string]any:
		return ObjectType
	case []any:
		return ArrayType
	}
	return StringType
}
