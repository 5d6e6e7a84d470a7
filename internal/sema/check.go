package sema

import (
	"fmt"
	"math"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/source"
	"prism/internal/types"
)

// DefaultMaxDepth bounds type expansion when no configuration overrides it.
const DefaultMaxDepth = 64

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Types    *types.Interner
	MaxDepth int
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	Types *types.Interner
	Env   *Env
}

// Check type-checks a parsed file: declarations populate the environment,
// assignments, deletes, and asserts are verified against it.
func Check(file *ast.File, opts Options) Result {
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	c := checker{
		types:    in,
		reporter: opts.Reporter,
		env:      NewEnv(),
		maxDepth: maxDepth,
	}
	if file != nil {
		for _, stmt := range file.Stmts {
			c.checkStmt(stmt)
		}
	}
	return Result{Types: in, Env: c.env}
}

type checker struct {
	types    *types.Interner
	reporter diag.Reporter
	env      *Env
	maxDepth int
	depth    int
	depthHit bool // E3004 already reported for the current statement
}

func (c *checker) report(code diag.Code, sp source.Span, msg string) {
	if c.reporter != nil {
		c.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (c *checker) checkStmt(stmt ast.Stmt) {
	c.depth = 0
	c.depthHit = false

	switch st := stmt.(type) {
	case *ast.TypeDecl:
		c.checkTypeDecl(st)
	case *ast.EnumDecl:
		c.checkEnumDecl(st)
	case *ast.LetDecl:
		c.checkLetDecl(st)
	case *ast.AssignStmt:
		c.checkAssign(st)
	case *ast.DeleteStmt:
		c.checkDelete(st)
	case *ast.AssertStmt:
		c.checkAssert(st)
	case *ast.BadStmt:
		// parser already reported
	}
}

func (c *checker) checkTypeDecl(st *ast.TypeDecl) {
	alias := &Alias{
		Name:   st.Name.Name,
		Params: st.Params,
		Body:   st.Body,
		Decl:   st.Sp,
	}
	if !c.env.DefineAlias(alias) {
		c.report(diag.SemaDuplicateSymbol, st.Name.Sp,
			fmt.Sprintf("duplicate declaration of '%s'", st.Name.Name))
		return
	}
	if alias.IsGeneric() {
		// Generic bodies are checked at each instantiation.
		return
	}
	// Evaluate eagerly so errors surface at the declaration site; the result
	// is cached for use sites.
	alias.Resolved = c.resolveAlias(alias, st.Name.Sp)
}

func (c *checker) checkEnumDecl(st *ast.EnumDecl) {
	enumID := c.types.RegisterEnum(st.Name.Name, st.Sp)
	if !c.env.DefineEnum(st.Name.Name, enumID) {
		c.report(diag.SemaDuplicateSymbol, st.Name.Sp,
			fmt.Sprintf("duplicate declaration of '%s'", st.Name.Name))
		return
	}

	// Draft state: members are assigned values in declaration order, either
	// from an explicit integer literal or previous value plus one.
	members := make([]types.EnumMemberInfo, 0, len(st.Members))
	seen := make(map[string]bool, len(st.Members))
	next := float64(0)
	for _, m := range st.Members {
		if seen[m.Name.Name] {
			c.report(diag.SemaDuplicateSymbol, m.Name.Sp,
				fmt.Sprintf("duplicate enum member '%s'", m.Name.Name))
			continue
		}
		seen[m.Name.Name] = true

		value := next
		if m.Value != nil {
			value = m.Value.Num
			if value != math.Trunc(value) || math.IsInf(value, 0) {
				c.report(diag.SemaEnumBadValue, m.Value.Sp,
					fmt.Sprintf("enum member value must be an integer, got %s", m.Value.Text))
				value = next
			}
		}
		members = append(members, types.EnumMemberInfo{
			Name:  m.Name.Name,
			Value: value,
			Span:  m.Sp,
		})
		next = value + 1
	}

	// Sealed: the member list is immutable from here on.
	c.types.SealEnum(enumID, members)
}

func (c *checker) checkLetDecl(st *ast.LetDecl) {
	t := c.evalType(st.Type)
	if !c.env.DefineValue(st.Name.Name, t) {
		c.report(diag.SemaDuplicateSymbol, st.Name.Sp,
			fmt.Sprintf("duplicate declaration of '%s'", st.Name.Name))
	}
}

func (c *checker) checkAssign(st *ast.AssignStmt) {
	dst, ok := c.env.LookupValue(st.Target.Name)
	if !ok {
		c.report(diag.SemaUnresolvedSymbol, st.Target.Sp,
			fmt.Sprintf("unresolved name '%s'", st.Target.Name))
		return
	}
	src := c.evalValueExpr(st.Value)
	if !c.Assignable(src, dst) {
		c.report(diag.SemaNotAssignable, st.Sp,
			fmt.Sprintf("type '%s' is not assignable to type '%s'",
				types.Label(c.types, src), types.Label(c.types, dst)))
	}
}

// evalValueExpr types the right-hand side of an assignment: a value binding,
// an enum member, or a literal.
func (c *checker) evalValueExpr(expr ast.TypeExpr) types.TypeID {
	switch e := expr.(type) {
	case *ast.NameRef:
		if t, ok := c.env.LookupValue(e.Name); ok {
			return t
		}
		c.report(diag.SemaUnresolvedSymbol, e.Sp, fmt.Sprintf("unresolved name '%s'", e.Name))
		return types.NoTypeID
	case *ast.MemberType, *ast.LiteralType:
		return c.evalType(expr)
	default:
		c.report(diag.SemaUnresolvedSymbol, expr.Span(), "expected a name or literal")
		return types.NoTypeID
	}
}

func (c *checker) checkDelete(st *ast.DeleteStmt) {
	target, ok := c.env.LookupValue(st.Target.Name)
	if !ok {
		c.report(diag.SemaUnresolvedSymbol, st.Target.Sp,
			fmt.Sprintf("unresolved name '%s'", st.Target.Name))
		return
	}

	info, ok := c.types.ObjectInfo(target)
	if !ok {
		c.report(diag.SemaNotAnObject, st.Target.Sp,
			fmt.Sprintf("cannot delete a property from type '%s'", types.Label(c.types, target)))
		return
	}

	prop, ok := info.Prop(st.Prop.Name)
	if !ok {
		c.report(diag.SemaUnknownProperty, st.Prop.Sp,
			fmt.Sprintf("property '%s' does not exist on type '%s'",
				st.Prop.Name, types.Label(c.types, target)))
		return
	}
	if !prop.Optional {
		c.report(diag.SemaIllegalDelete, st.Prop.Sp,
			fmt.Sprintf("cannot delete required property '%s'", st.Prop.Name))
		return
	}

	// The binding is narrowed to the shape without the deleted property.
	rest := make([]types.Prop, 0, len(info.Props)-1)
	for _, p := range info.Props {
		if p.Name != st.Prop.Name {
			rest = append(rest, p)
		}
	}
	c.env.RebindValue(st.Target.Name, c.types.Object(rest))
}

func (c *checker) checkAssert(st *ast.AssertStmt) {
	left := c.evalType(st.Left)
	right := c.evalType(st.Right)

	switch st.Op {
	case ast.AssertSubtype:
		if !c.Assignable(left, right) {
			c.report(diag.SemaNotAssignable, st.Sp,
				fmt.Sprintf("assertion failed: '%s' is not assignable to '%s'",
					types.Label(c.types, left), types.Label(c.types, right)))
		}
	case ast.AssertEqual:
		if !c.Assignable(left, right) || !c.Assignable(right, left) {
			c.report(diag.SemaNotAssignable, st.Sp,
				fmt.Sprintf("assertion failed: '%s' does not equal '%s'",
					types.Label(c.types, left), types.Label(c.types, right)))
		}
	}
}
