package sema

import "prism/internal/types"

type assignPair struct {
	src, dst types.TypeID
}

// Assignable reports whether src can be assigned to dst. Recursion through
// self-referential types is co-inductive: a pair seen again is assumed to
// hold.
func (c *checker) Assignable(src, dst types.TypeID) bool {
	return c.assignable(src, dst, make(map[assignPair]bool))
}

func (c *checker) assignable(src, dst types.TypeID, seen map[assignPair]bool) bool {
	// structural interning makes identity reflexivity
	if src == dst {
		return true
	}
	// already-diagnosed types do not cascade
	if src == types.NoTypeID || dst == types.NoTypeID {
		return true
	}

	sk := c.types.Kind(src)
	dk := c.types.Kind(dst)

	if dk == types.KindAny || dk == types.KindUnknown {
		return true
	}
	if sk == types.KindAny {
		return true
	}
	if sk == types.KindNever {
		return true
	}

	pair := assignPair{src: src, dst: dst}
	if seen[pair] {
		return true
	}
	seen[pair] = true

	// a union source needs every member to fit
	if sk == types.KindUnion {
		info, _ := c.types.UnionInfo(src)
		for _, m := range info.Members {
			if !c.assignable(m, dst, seen) {
				return false
			}
		}
		return true
	}
	// a union target needs some member to fit
	if dk == types.KindUnion {
		info, _ := c.types.UnionInfo(dst)
		for _, m := range info.Members {
			if c.assignable(src, m, seen) {
				return true
			}
		}
		return false
	}
	// an intersection target needs all members
	if dk == types.KindIntersection {
		info, _ := c.types.IntersectionInfo(dst)
		for _, m := range info.Members {
			if !c.assignable(src, m, seen) {
				return false
			}
		}
		return true
	}
	// a type-variable target unfolds through its constraint; this is how
	// alias backedges are compared co-inductively
	if dk == types.KindTypeParam {
		info, _ := c.types.ParamInfo(dst)
		if info != nil && info.Constraint != types.NoTypeID {
			return c.assignable(src, info.Constraint, seen)
		}
		return false
	}

	// an intersection source needs some member
	if sk == types.KindIntersection {
		info, _ := c.types.IntersectionInfo(src)
		for _, m := range info.Members {
			if c.assignable(m, dst, seen) {
				return true
			}
		}
		return false
	}

	switch sk {
	case types.KindLiteral:
		// a literal goes wherever its widened primitive goes
		li, _ := c.types.LiteralInfo(src)
		return c.assignable(li.Base, dst, seen)

	case types.KindEnumMember:
		// members are assignable to their enum, nothing else
		enum, _, ok := c.types.EnumMemberInfo(src)
		return ok && enum == dst

	case types.KindTypeParam:
		// an unsubstituted parameter fits wherever its constraint fits
		info, _ := c.types.ParamInfo(src)
		if info != nil && info.Constraint != types.NoTypeID {
			return c.assignable(info.Constraint, dst, seen)
		}
		return false

	case types.KindArray:
		if dk != types.KindArray {
			return false
		}
		return c.assignable(c.types.ArrayElem(src), c.types.ArrayElem(dst), seen)

	case types.KindTuple:
		if dk != types.KindTuple {
			return false
		}
		si, _ := c.types.TupleInfo(src)
		di, _ := c.types.TupleInfo(dst)
		if len(si.Elems) != len(di.Elems) {
			return false
		}
		for i := range si.Elems {
			if !c.assignable(si.Elems[i], di.Elems[i], seen) {
				return false
			}
		}
		return true

	case types.KindObject:
		if dk != types.KindObject {
			return false
		}
		return c.objectAssignable(src, dst, seen)

	case types.KindFunc:
		if dk != types.KindFunc {
			return false
		}
		si, _ := c.types.FuncInfo(src)
		di, _ := c.types.FuncInfo(dst)
		if len(si.Params) != len(di.Params) {
			return false
		}
		// parameters are contravariant, the result is covariant
		for i := range si.Params {
			if !c.assignable(di.Params[i], si.Params[i], seen) {
				return false
			}
		}
		return c.assignable(si.Result, di.Result, seen)

	default:
		// primitives and enums are reflexive only, handled by identity above
		return false
	}
}

// objectAssignable implements width subtyping: every required property of the
// target must exist on the source with an assignable type; optional target
// properties, when present, must be assignable; extra source properties are
// allowed.
func (c *checker) objectAssignable(src, dst types.TypeID, seen map[assignPair]bool) bool {
	si, _ := c.types.ObjectInfo(src)
	di, _ := c.types.ObjectInfo(dst)

	for _, dp := range di.Props {
		sp, ok := si.Prop(dp.Name)
		if !ok {
			if dp.Optional {
				continue
			}
			return false
		}
		if !c.assignable(sp.Type, dp.Type, seen) {
			return false
		}
	}
	return true
}
