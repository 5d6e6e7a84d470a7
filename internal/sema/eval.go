package sema

import (
	"fmt"
	"sort"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/source"
	"prism/internal/types"
)

// enter tracks type expansion depth. Returns false once the limit is crossed;
// the limit diagnostic is reported once per statement.
func (c *checker) enter(sp source.Span) bool {
	if c.depth >= c.maxDepth {
		if !c.depthHit {
			c.depthHit = true
			c.report(diag.SemaRecursionLimit, sp,
				fmt.Sprintf("type expansion exceeded the depth limit of %d", c.maxDepth))
		}
		return false
	}
	c.depth++
	return true
}

func (c *checker) leave() {
	c.depth--
}

// withEnv runs fn with env installed as the current scope.
func (c *checker) withEnv(env *Env, fn func() types.TypeID) types.TypeID {
	old := c.env
	c.env = env
	t := fn()
	c.env = old
	return t
}

// evalType resolves a type expression to an interned TypeID. Errors are
// reported through the checker and yield NoTypeID, which downstream checks
// treat as already-diagnosed.
func (c *checker) evalType(expr ast.TypeExpr) types.TypeID {
	switch e := expr.(type) {
	case *ast.NameRef:
		return c.resolveName(e)

	case *ast.LiteralType:
		return c.evalLiteral(e)

	case *ast.ArrayType:
		return c.types.Array(c.evalType(e.Elem))

	case *ast.TupleType:
		elems := make([]types.TypeID, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = c.evalType(el)
		}
		return c.types.Tuple(elems)

	case *ast.ObjectType:
		props := make([]types.Prop, len(e.Props))
		for i, p := range e.Props {
			props[i] = types.Prop{
				Name:     p.Name.Name,
				Type:     c.evalType(p.Type),
				Optional: p.Optional,
				Readonly: p.Readonly,
			}
		}
		return c.types.Object(props)

	case *ast.UnionType:
		members := make([]types.TypeID, len(e.Members))
		for i, m := range e.Members {
			members[i] = c.evalType(m)
		}
		return c.types.Union(members)

	case *ast.IntersectionType:
		members := make([]types.TypeID, len(e.Members))
		for i, m := range e.Members {
			members[i] = c.evalType(m)
		}
		return c.types.Intersection(members)

	case *ast.FuncType:
		params := make([]types.TypeID, len(e.Params))
		for i, p := range e.Params {
			params[i] = c.evalType(p)
		}
		return c.types.Func(params, c.evalType(e.Result))

	case *ast.ParenType:
		return c.evalType(e.Inner)

	case *ast.Instantiation:
		return c.evalInstantiation(e)

	case *ast.KeyofType:
		return c.keyof(c.evalType(e.Operand))

	case *ast.IndexedAccessType:
		base := c.evalType(e.Base)
		index := c.evalType(e.Index)
		return c.indexedAccess(base, index, e.Index.Span())

	case *ast.CondType:
		return c.evalCond(e)

	case *ast.MappedType:
		return c.evalMapped(e)

	case *ast.InferType:
		c.report(diag.SemaUnresolvedInference, e.Sp,
			fmt.Sprintf("'infer %s' is only allowed in the extends clause of a conditional type", e.Name.Name))
		return types.NoTypeID

	case *ast.MemberType:
		return c.evalEnumMember(e)

	default:
		return types.NoTypeID
	}
}

func (c *checker) evalLiteral(e *ast.LiteralType) types.TypeID {
	switch e.Kind {
	case ast.LitString:
		return c.types.StringLit(e.Text)
	case ast.LitBool:
		return c.types.BoolLit(e.Bool)
	default:
		return c.types.NumberLit(e.Num)
	}
}

// resolveName resolves a bare name in type position: type variables shadow
// aliases and enums, which shadow the builtin primitive names.
func (c *checker) resolveName(e *ast.NameRef) types.TypeID {
	if t, ok := c.env.LookupTypeVar(e.Name); ok {
		if t == types.NoTypeID {
			// bound as an unresolved infer capture in a false branch
			c.report(diag.SemaUnresolvedInference, e.Sp,
				fmt.Sprintf("'%s' is an infer variable that was not resolved in this branch", e.Name))
			return types.NoTypeID
		}
		return t
	}
	if a, ok := c.env.LookupAlias(e.Name); ok {
		if a.IsGeneric() {
			c.report(diag.SemaTypeArityMismatch, e.Sp,
				fmt.Sprintf("generic type '%s' requires %d type argument(s)", a.Name, len(a.Params)))
			return types.NoTypeID
		}
		return c.resolveAlias(a, e.Sp)
	}
	if t, ok := c.env.LookupEnum(e.Name); ok {
		return t
	}
	if t, ok := c.builtinNamed(e.Name); ok {
		return t
	}
	c.report(diag.SemaUnresolvedSymbol, e.Sp, fmt.Sprintf("unresolved name '%s'", e.Name))
	return types.NoTypeID
}

func (c *checker) builtinNamed(name string) (types.TypeID, bool) {
	b := c.types.Builtins()
	switch name {
	case "any":
		return b.Any, true
	case "unknown":
		return b.Unknown, true
	case "void":
		return b.Void, true
	case "never":
		return b.Never, true
	case "null":
		return b.Null, true
	case "undefined":
		return b.Undefined, true
	case "string":
		return b.String, true
	case "number":
		return b.Number, true
	case "boolean":
		return b.Boolean, true
	case "bigint":
		return b.BigInt, true
	case "symbol":
		return b.Symbol, true
	default:
		return types.NoTypeID, false
	}
}

// resolveAlias evaluates a non-generic alias body, caching the result.
// A self-reference inside the body resolves to a placeholder type variable;
// once the body is evaluated the placeholder's constraint is patched to the
// result, so assignability can unfold the backedge co-inductively.
func (c *checker) resolveAlias(a *Alias, sp source.Span) types.TypeID {
	if a.evaluated {
		return a.Resolved
	}
	if a.resolving {
		if a.placeholder == types.NoTypeID {
			a.placeholder = c.types.RegisterTypeParam(a.Name, types.NoTypeID)
		}
		return a.placeholder
	}

	a.resolving = true
	t := c.evalType(a.Body)
	a.resolving = false
	a.evaluated = true

	if a.placeholder != types.NoTypeID {
		if t == a.placeholder {
			// the alias reduces to itself with no structure in between
			c.report(diag.SemaRecursionLimit, sp,
				fmt.Sprintf("type '%s' circularly references itself", a.Name))
			a.Resolved = types.NoTypeID
			return a.Resolved
		}
		c.types.SetParamConstraint(a.placeholder, t)
	}
	a.Resolved = t
	return t
}

// evalInstantiation applies a generic alias to type arguments.
func (c *checker) evalInstantiation(e *ast.Instantiation) types.TypeID {
	a, ok := c.env.LookupAlias(e.Name.Name)
	if !ok {
		if _, isEnum := c.env.LookupEnum(e.Name.Name); isEnum {
			c.report(diag.SemaTypeArityMismatch, e.Name.Sp,
				fmt.Sprintf("'%s' is not generic", e.Name.Name))
			return types.NoTypeID
		}
		if _, isBuiltin := c.builtinNamed(e.Name.Name); isBuiltin {
			c.report(diag.SemaTypeArityMismatch, e.Name.Sp,
				fmt.Sprintf("'%s' is not generic", e.Name.Name))
			return types.NoTypeID
		}
		c.report(diag.SemaUnresolvedSymbol, e.Name.Sp,
			fmt.Sprintf("unresolved name '%s'", e.Name.Name))
		return types.NoTypeID
	}
	if len(e.Args) != len(a.Params) {
		c.report(diag.SemaTypeArityMismatch, e.Sp,
			fmt.Sprintf("wrong number of type arguments for '%s': got %d, want %d",
				a.Name, len(e.Args), len(a.Params)))
		return types.NoTypeID
	}

	// Arguments are substituted before the body is evaluated. Constraints of
	// later parameters may refer to earlier ones.
	child := c.env.Child()
	for i, p := range a.Params {
		arg := c.evalType(e.Args[i])
		if p.Constraint != nil {
			cons := c.withEnv(child, func() types.TypeID { return c.evalType(p.Constraint) })
			if !c.Assignable(arg, cons) {
				c.report(diag.SemaNotAssignable, e.Args[i].Span(),
					fmt.Sprintf("type '%s' does not satisfy the constraint '%s' of '%s'",
						types.Label(c.types, arg), types.Label(c.types, cons), p.Name.Name))
			}
		}
		child.BindTypeVar(p.Name.Name, arg)
	}

	if !c.enter(e.Sp) {
		return types.NoTypeID
	}
	defer c.leave()
	return c.withEnv(child, func() types.TypeID { return c.evalType(a.Body) })
}

// keyof computes the key set of a type as a union of string literals.
func (c *checker) keyof(operand types.TypeID) types.TypeID {
	b := c.types.Builtins()
	switch c.types.Kind(operand) {
	case types.KindAny:
		return b.String

	case types.KindObject:
		info, _ := c.types.ObjectInfo(operand)
		if len(info.Props) == 0 {
			return b.Never
		}
		keys := make([]types.TypeID, len(info.Props))
		for i, p := range info.Props {
			keys[i] = c.types.StringLit(p.Name)
		}
		return c.types.Union(keys)

	case types.KindIntersection:
		// keys of an intersection are the union of the member key sets
		info, _ := c.types.IntersectionInfo(operand)
		keys := make([]types.TypeID, 0, len(info.Members))
		for _, m := range info.Members {
			keys = append(keys, c.keyof(m))
		}
		return c.types.Union(keys)

	case types.KindUnion:
		// only keys common to every member are safe to index with
		info, _ := c.types.UnionInfo(operand)
		common := map[string]int{}
		for _, m := range info.Members {
			mi, ok := c.types.ObjectInfo(m)
			if !ok {
				return b.Never
			}
			for _, p := range mi.Props {
				common[p.Name]++
			}
		}
		var names []string
		for name, count := range common {
			if count == len(info.Members) {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return b.Never
		}
		// map iteration order must not leak into member order
		sort.Strings(names)
		keys := make([]types.TypeID, len(names))
		for i, name := range names {
			keys[i] = c.types.StringLit(name)
		}
		return c.types.Union(keys)

	default:
		return b.Never
	}
}

// indexedAccess resolves T[K].
func (c *checker) indexedAccess(base, index types.TypeID, sp source.Span) types.TypeID {
	if base == types.NoTypeID || index == types.NoTypeID {
		return types.NoTypeID
	}
	b := c.types.Builtins()

	if c.types.Kind(base) == types.KindAny {
		return b.Any
	}

	// distribute over union indices and union bases
	if info, ok := c.types.UnionInfo(index); ok {
		parts := make([]types.TypeID, len(info.Members))
		for i, m := range info.Members {
			parts[i] = c.indexedAccess(base, m, sp)
		}
		return c.types.Union(parts)
	}
	if info, ok := c.types.UnionInfo(base); ok {
		parts := make([]types.TypeID, len(info.Members))
		for i, m := range info.Members {
			parts[i] = c.indexedAccess(m, index, sp)
		}
		return c.types.Union(parts)
	}

	switch c.types.Kind(base) {
	case types.KindObject:
		info, _ := c.types.ObjectInfo(base)
		li, isLit := c.types.LiteralInfo(index)
		if !isLit || c.types.Kind(li.Base) != types.KindString {
			c.report(diag.SemaUnknownProperty, sp,
				fmt.Sprintf("type '%s' cannot be used to index type '%s'",
					types.Label(c.types, index), types.Label(c.types, base)))
			return types.NoTypeID
		}
		prop, ok := info.Prop(li.Str)
		if !ok {
			c.report(diag.SemaUnknownProperty, sp,
				fmt.Sprintf("property '%s' does not exist on type '%s'",
					li.Str, types.Label(c.types, base)))
			return types.NoTypeID
		}
		return prop.Type

	case types.KindTuple:
		info, _ := c.types.TupleInfo(base)
		if index == b.Number {
			return c.types.Union(info.Elems)
		}
		li, isLit := c.types.LiteralInfo(index)
		if !isLit || c.types.Kind(li.Base) != types.KindNumber {
			c.report(diag.SemaUnknownProperty, sp,
				fmt.Sprintf("type '%s' cannot be used to index type '%s'",
					types.Label(c.types, index), types.Label(c.types, base)))
			return types.NoTypeID
		}
		i := int(li.Num)
		if float64(i) != li.Num || i < 0 || i >= len(info.Elems) {
			c.report(diag.SemaUnknownProperty, sp,
				fmt.Sprintf("tuple type '%s' has no element at index %s",
					types.Label(c.types, base), li.Label(c.types)))
			return types.NoTypeID
		}
		return info.Elems[i]

	case types.KindArray:
		li, isLit := c.types.LiteralInfo(index)
		if index == b.Number || (isLit && c.types.Kind(li.Base) == types.KindNumber) {
			return c.types.ArrayElem(base)
		}
		c.report(diag.SemaUnknownProperty, sp,
			fmt.Sprintf("type '%s' cannot be used to index type '%s'",
				types.Label(c.types, index), types.Label(c.types, base)))
		return types.NoTypeID

	default:
		c.report(diag.SemaNotAnObject, sp,
			fmt.Sprintf("type '%s' cannot be indexed", types.Label(c.types, base)))
		return types.NoTypeID
	}
}

// evalEnumMember resolves Color.Red to the member's nominal type.
func (c *checker) evalEnumMember(e *ast.MemberType) types.TypeID {
	enumID, ok := c.env.LookupEnum(e.Base.Name)
	if !ok {
		c.report(diag.SemaUnresolvedSymbol, e.Base.Sp,
			fmt.Sprintf("'%s' is not an enum in scope", e.Base.Name))
		return types.NoTypeID
	}
	info, _ := c.types.EnumInfo(enumID)
	_, idx, found := info.Member(e.Member.Name)
	if !found {
		c.report(diag.SemaUnknownProperty, e.Member.Sp,
			fmt.Sprintf("enum '%s' has no member '%s'", info.Name, e.Member.Name))
		return types.NoTypeID
	}
	return c.types.EnumMember(enumID, idx)
}

// evalMapped expands `{ [K in E]: V }` into a concrete object shape.
func (c *checker) evalMapped(e *ast.MappedType) types.TypeID {
	if !c.enter(e.Sp) {
		return types.NoTypeID
	}
	defer c.leave()

	// A constraint of the form `keyof X` makes the mapping homomorphic: the
	// optional and readonly flags of X's properties carry over.
	var srcObj *types.ObjectInfo
	var keySet types.TypeID
	if kf, ok := unwrapParens(e.Constraint).(*ast.KeyofType); ok {
		operand := c.evalType(kf.Operand)
		if info, isObj := c.types.ObjectInfo(operand); isObj {
			srcObj = info
		}
		keySet = c.keyof(operand)
	} else {
		keySet = c.evalType(e.Constraint)
	}

	keys, ok := c.stringKeys(keySet)
	if !ok {
		c.report(diag.SemaBadMappedKey, e.Constraint.Span(),
			fmt.Sprintf("mapped type key set must be string literals, got '%s'",
				types.Label(c.types, keySet)))
		return types.NoTypeID
	}

	props := make([]types.Prop, 0, len(keys))
	for _, key := range keys {
		child := c.env.Child()
		child.BindTypeVar(e.Key.Name, c.types.StringLit(key))
		valT := c.withEnv(child, func() types.TypeID { return c.evalType(e.Value) })

		optional, readonly := false, false
		if srcObj != nil {
			if p, found := srcObj.Prop(key); found {
				optional, readonly = p.Optional, p.Readonly
			}
		}
		switch e.Optional {
		case ast.ModAdd:
			optional = true
		case ast.ModRemove:
			optional = false
		}
		switch e.Readonly {
		case ast.ModAdd:
			readonly = true
		case ast.ModRemove:
			readonly = false
		}

		props = append(props, types.Prop{
			Name:     key,
			Type:     valT,
			Optional: optional,
			Readonly: readonly,
		})
	}
	return c.types.Object(props)
}

// stringKeys flattens a key set type into string keys. Never yields an empty
// set; anything besides string literals fails.
func (c *checker) stringKeys(keySet types.TypeID) ([]string, bool) {
	if c.types.Kind(keySet) == types.KindNever {
		return nil, true
	}
	single := func(id types.TypeID) (string, bool) {
		li, ok := c.types.LiteralInfo(id)
		if !ok || c.types.Kind(li.Base) != types.KindString {
			return "", false
		}
		return li.Str, true
	}
	if info, ok := c.types.UnionInfo(keySet); ok {
		keys := make([]string, 0, len(info.Members))
		for _, m := range info.Members {
			k, kok := single(m)
			if !kok {
				return nil, false
			}
			keys = append(keys, k)
		}
		return keys, true
	}
	k, ok := single(keySet)
	if !ok {
		return nil, false
	}
	return []string{k}, true
}

func unwrapParens(e ast.TypeExpr) ast.TypeExpr {
	for {
		p, ok := e.(*ast.ParenType)
		if !ok {
			return e
		}
		e = p.Inner
	}
}
