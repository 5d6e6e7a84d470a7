package types

import (
	"strings"
)

// Label returns a user-friendly rendering of a TypeID for diagnostics.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if in == nil || id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}

	switch tt.Kind {
	case KindAny, KindUnknown, KindVoid, KindNever, KindNull, KindUndefined,
		KindString, KindNumber, KindBoolean, KindBigInt, KindSymbol:
		return tt.Kind.String()

	case KindLiteral:
		li, lok := in.LiteralInfo(id)
		if !lok {
			return "?"
		}
		return li.Label(in)

	case KindArray:
		elem := labelDepth(in, tt.Elem, depth+1)
		if needsParens(in.Kind(tt.Elem)) {
			return "(" + elem + ")[]"
		}
		return elem + "[]"

	case KindTuple:
		info, iok := in.TupleInfo(id)
		if !iok {
			return "[?]"
		}
		parts := make([]string, len(info.Elems))
		for i, e := range info.Elems {
			parts[i] = labelDepth(in, e, depth+1)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case KindObject:
		info, iok := in.ObjectInfo(id)
		if !iok {
			return "{?}"
		}
		if len(info.Props) == 0 {
			return "{}"
		}
		parts := make([]string, len(info.Props))
		for i, p := range info.Props {
			var b strings.Builder
			if p.Readonly {
				b.WriteString("readonly ")
			}
			b.WriteString(p.Name)
			if p.Optional {
				b.WriteByte('?')
			}
			b.WriteString(": ")
			b.WriteString(labelDepth(in, p.Type, depth+1))
			parts[i] = b.String()
		}
		return "{ " + strings.Join(parts, ", ") + " }"

	case KindUnion:
		info, iok := in.UnionInfo(id)
		if !iok {
			return "?"
		}
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			parts[i] = labelDepth(in, m, depth+1)
		}
		return strings.Join(parts, " | ")

	case KindIntersection:
		info, iok := in.IntersectionInfo(id)
		if !iok {
			return "?"
		}
		parts := make([]string, len(info.Members))
		for i, m := range info.Members {
			p := labelDepth(in, m, depth+1)
			if in.Kind(m) == KindUnion {
				p = "(" + p + ")"
			}
			parts[i] = p
		}
		return strings.Join(parts, " & ")

	case KindFunc:
		info, iok := in.FuncInfo(id)
		if !iok {
			return "(?) => ?"
		}
		parts := make([]string, len(info.Params))
		for i, p := range info.Params {
			parts[i] = labelDepth(in, p, depth+1)
		}
		return "(" + strings.Join(parts, ", ") + ") => " + labelDepth(in, info.Result, depth+1)

	case KindEnum:
		info, iok := in.EnumInfo(id)
		if !iok {
			return "?"
		}
		return info.Name

	case KindEnumMember:
		enum, member, mok := in.EnumMemberInfo(id)
		if !mok {
			return "?"
		}
		return labelDepth(in, enum, depth+1) + "." + member.Name

	case KindTypeParam:
		info, iok := in.ParamInfo(id)
		if !iok {
			return "?"
		}
		return info.Name

	default:
		return "?"
	}
}

// needsParens reports whether an array element label must be parenthesized.
func needsParens(k Kind) bool {
	switch k {
	case KindUnion, KindIntersection, KindFunc:
		return true
	default:
		return false
	}
}
