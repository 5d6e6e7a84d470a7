package types

import (
	"fmt"
	"strconv"
)

// LiteralInfo stores the constant value of a literal type. Base is the
// primitive the literal widens to.
type LiteralInfo struct {
	Base TypeID
	Num  float64
	Str  string
	Bool bool
}

// StringLit interns the literal type for a string constant.
func (in *Interner) StringLit(value string) TypeID {
	key := "lit:s:" + value
	return in.internKeyed(key, func() TypeID {
		slot := appendSlot(&in.literals, LiteralInfo{Base: in.builtins.String, Str: value}, "literal")
		return in.internRaw(Type{Kind: KindLiteral, Elem: in.builtins.String, Payload: slot})
	})
}

// NumberLit interns the literal type for a numeric constant.
func (in *Interner) NumberLit(value float64) TypeID {
	key := "lit:n:" + strconv.FormatFloat(value, 'g', -1, 64)
	return in.internKeyed(key, func() TypeID {
		slot := appendSlot(&in.literals, LiteralInfo{Base: in.builtins.Number, Num: value}, "literal")
		return in.internRaw(Type{Kind: KindLiteral, Elem: in.builtins.Number, Payload: slot})
	})
}

// BoolLit interns the literal type for true or false.
func (in *Interner) BoolLit(value bool) TypeID {
	key := "lit:b:false"
	if value {
		key = "lit:b:true"
	}
	return in.internKeyed(key, func() TypeID {
		slot := appendSlot(&in.literals, LiteralInfo{Base: in.builtins.Boolean, Bool: value}, "literal")
		return in.internRaw(Type{Kind: KindLiteral, Elem: in.builtins.Boolean, Payload: slot})
	})
}

// LiteralInfo returns the constant value metadata for a literal TypeID.
func (in *Interner) LiteralInfo(id TypeID) (*LiteralInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindLiteral {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.literals) {
		return nil, false
	}
	return &in.literals[tt.Payload], true
}

// Label renders the constant the way it appears in source.
func (li *LiteralInfo) Label(in *Interner) string {
	switch in.Kind(li.Base) {
	case KindString:
		return fmt.Sprintf("%q", li.Str)
	case KindBoolean:
		if li.Bool {
			return "true"
		}
		return "false"
	default:
		return strconv.FormatFloat(li.Num, 'g', -1, 64)
	}
}
