package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindUnknown
	KindVoid
	KindNever
	KindNull
	KindUndefined
	KindString
	KindNumber
	KindBoolean
	KindBigInt
	KindSymbol
	KindLiteral
	KindArray
	KindTuple
	KindObject
	KindUnion
	KindIntersection
	KindFunc
	KindEnum
	KindEnumMember
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindBigInt:
		return "bigint"
	case KindSymbol:
		return "symbol"
	case KindLiteral:
		return "literal"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindObject:
		return "object"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindFunc:
		return "function"
	case KindEnum:
		return "enum"
	case KindEnumMember:
		return "enum member"
	case KindTypeParam:
		return "type parameter"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Elem carries the element type for arrays and
// the owning enum for enum members; Payload indexes the side table of the
// kind (or the member index for enum members).
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

// IsPrimitive reports whether k is one of the primitive value kinds.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindNull, KindUndefined, KindString, KindNumber, KindBoolean, KindBigInt, KindSymbol:
		return true
	default:
		return false
	}
}
