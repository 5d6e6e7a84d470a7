package sema

import (
	"prism/internal/ast"
	"prism/internal/types"
)

// evalCond evaluates `Check extends Extends ? True : False`. Infer variables
// declared in the extends clause are captured by structural matching against
// the check type and scoped to the true branch; in the false branch they are
// bound as unresolved so uses report a diagnostic.
func (c *checker) evalCond(e *ast.CondType) types.TypeID {
	if !c.enter(e.Sp) {
		return types.NoTypeID
	}
	defer c.leave()

	checkT := c.evalType(e.Check)
	inferNames := collectInferNames(e.Extends)

	if len(inferNames) == 0 {
		extT := c.evalType(e.Extends)
		if c.Assignable(checkT, extT) {
			return c.evalType(e.True)
		}
		return c.evalType(e.False)
	}

	bindings := make(map[string]types.TypeID, len(inferNames))
	if c.matchInfer(checkT, e.Extends, bindings) {
		child := c.env.Child()
		for _, name := range inferNames {
			t, bound := bindings[name]
			if !bound {
				// matched without reaching the capture site
				t = c.types.Builtins().Unknown
			}
			child.BindTypeVar(name, t)
		}
		return c.withEnv(child, func() types.TypeID { return c.evalType(e.True) })
	}

	child := c.env.Child()
	for _, name := range inferNames {
		child.BindTypeVar(name, types.NoTypeID) // unresolved marker
	}
	return c.withEnv(child, func() types.TypeID { return c.evalType(e.False) })
}

// matchInfer structurally matches src against the extends pattern, binding
// infer variables along the way. Multiple captures of the same variable are
// unioned.
func (c *checker) matchInfer(src types.TypeID, pat ast.TypeExpr, bindings map[string]types.TypeID) bool {
	b := c.types.Builtins()

	switch pt := pat.(type) {
	case *ast.InferType:
		name := pt.Name.Name
		if prev, ok := bindings[name]; ok {
			bindings[name] = c.types.Union([]types.TypeID{prev, src})
		} else {
			bindings[name] = src
		}
		return true

	case *ast.ParenType:
		return c.matchInfer(src, pt.Inner, bindings)

	case *ast.ArrayType:
		if c.types.Kind(src) == types.KindAny {
			return c.matchInfer(b.Any, pt.Elem, bindings)
		}
		elem := c.types.ArrayElem(src)
		if elem == types.NoTypeID {
			return false
		}
		return c.matchInfer(elem, pt.Elem, bindings)

	case *ast.TupleType:
		if c.types.Kind(src) == types.KindAny {
			for _, el := range pt.Elems {
				if !c.matchInfer(b.Any, el, bindings) {
					return false
				}
			}
			return true
		}
		info, ok := c.types.TupleInfo(src)
		if !ok || len(info.Elems) != len(pt.Elems) {
			return false
		}
		for i, el := range pt.Elems {
			if !c.matchInfer(info.Elems[i], el, bindings) {
				return false
			}
		}
		return true

	case *ast.ObjectType:
		if c.types.Kind(src) == types.KindAny {
			for _, p := range pt.Props {
				if !c.matchInfer(b.Any, p.Type, bindings) {
					return false
				}
			}
			return true
		}
		info, ok := c.types.ObjectInfo(src)
		if !ok {
			return false
		}
		for _, p := range pt.Props {
			sp, found := info.Prop(p.Name.Name)
			if !found {
				return false
			}
			if !c.matchInfer(sp.Type, p.Type, bindings) {
				return false
			}
		}
		return true

	case *ast.FuncType:
		if c.types.Kind(src) == types.KindAny {
			for _, p := range pt.Params {
				if !c.matchInfer(b.Any, p, bindings) {
					return false
				}
			}
			return c.matchInfer(b.Any, pt.Result, bindings)
		}
		info, ok := c.types.FuncInfo(src)
		if !ok || len(info.Params) != len(pt.Params) {
			return false
		}
		for i, p := range pt.Params {
			if !c.matchInfer(info.Params[i], p, bindings) {
				return false
			}
		}
		return c.matchInfer(info.Result, pt.Result, bindings)

	case *ast.UnionType:
		// first alternative that matches wins; bindings from failed attempts
		// are discarded
		for _, alt := range pt.Members {
			trial := cloneBindings(bindings)
			if c.matchInfer(src, alt, trial) {
				for k, v := range trial {
					bindings[k] = v
				}
				return true
			}
		}
		return false

	case *ast.IntersectionType:
		for _, m := range pt.Members {
			if !c.matchInfer(src, m, bindings) {
				return false
			}
		}
		return true

	default:
		// no captures below this point: fall back to assignability
		return c.Assignable(src, c.evalType(pat))
	}
}

// collectInferNames gathers infer variables declared in an extends clause,
// in source order. Nested conditionals introduce their own scopes and are
// not descended into.
func collectInferNames(e ast.TypeExpr) []string {
	var names []string
	seen := make(map[string]bool)

	var walk func(e ast.TypeExpr)
	walk = func(e ast.TypeExpr) {
		switch t := e.(type) {
		case *ast.InferType:
			if !seen[t.Name.Name] {
				seen[t.Name.Name] = true
				names = append(names, t.Name.Name)
			}
		case *ast.ParenType:
			walk(t.Inner)
		case *ast.ArrayType:
			walk(t.Elem)
		case *ast.TupleType:
			for _, el := range t.Elems {
				walk(el)
			}
		case *ast.ObjectType:
			for _, p := range t.Props {
				walk(p.Type)
			}
		case *ast.FuncType:
			for _, p := range t.Params {
				walk(p)
			}
			walk(t.Result)
		case *ast.UnionType:
			for _, m := range t.Members {
				walk(m)
			}
		case *ast.IntersectionType:
			for _, m := range t.Members {
				walk(m)
			}
		case *ast.KeyofType:
			walk(t.Operand)
		case *ast.IndexedAccessType:
			walk(t.Base)
			walk(t.Index)
		case *ast.Instantiation:
			for _, a := range t.Args {
				walk(a)
			}
		case *ast.MappedType:
			walk(t.Constraint)
			walk(t.Value)
		}
	}
	walk(e)
	return names
}

func cloneBindings(m map[string]types.TypeID) map[string]types.TypeID {
	out := make(map[string]types.TypeID, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
