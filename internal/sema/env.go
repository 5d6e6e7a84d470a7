package sema

import (
	"prism/internal/ast"
	"prism/internal/source"
	"prism/internal/types"
)

// Alias is a declared type alias. Generic aliases are expanded at each use
// site; non-generic aliases cache their resolved type after the first
// evaluation.
type Alias struct {
	Name     string
	Params   []ast.TypeParam
	Body     ast.TypeExpr
	Decl     source.Span
	Resolved types.TypeID // cache for non-generic aliases

	evaluated   bool
	resolving   bool
	placeholder types.TypeID // backedge for self-referential aliases
}

// IsGeneric reports whether the alias takes type parameters.
func (a *Alias) IsGeneric() bool {
	return len(a.Params) > 0
}

// Env is a lexically scoped binding table. Separate namespaces hold value
// bindings, type aliases, enums, and in-scope type variables (generic
// parameters, mapped-type keys, infer bindings).
type Env struct {
	parent *Env

	values  map[string]types.TypeID
	aliases map[string]*Alias
	enums   map[string]types.TypeID
	tvars   map[string]types.TypeID
}

// NewEnv creates a root environment.
func NewEnv() *Env {
	return &Env{
		values:  make(map[string]types.TypeID),
		aliases: make(map[string]*Alias),
		enums:   make(map[string]types.TypeID),
		tvars:   make(map[string]types.TypeID),
	}
}

// Child creates a nested scope. Lookups fall through to the parent; new
// definitions stay local.
func (e *Env) Child() *Env {
	return &Env{
		parent:  e,
		values:  make(map[string]types.TypeID),
		aliases: make(map[string]*Alias),
		enums:   make(map[string]types.TypeID),
		tvars:   make(map[string]types.TypeID),
	}
}

// DefineValue binds a value name in the current scope. Returns false when the
// name is already bound here.
func (e *Env) DefineValue(name string, t types.TypeID) bool {
	if _, ok := e.values[name]; ok {
		return false
	}
	e.values[name] = t
	return true
}

// LookupValue resolves a value binding through the scope chain.
func (e *Env) LookupValue(name string) (types.TypeID, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.values[name]; ok {
			return t, true
		}
	}
	return types.NoTypeID, false
}

// RebindValue updates an existing value binding in the scope that defines it.
// Returns false when the name is unbound.
func (e *Env) RebindValue(name string, t types.TypeID) bool {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.values[name]; ok {
			s.values[name] = t
			return true
		}
	}
	return false
}

// DefineAlias registers a type alias in the current scope.
func (e *Env) DefineAlias(a *Alias) bool {
	if e.typeNameTaken(a.Name) {
		return false
	}
	e.aliases[a.Name] = a
	return true
}

// LookupAlias resolves an alias through the scope chain.
func (e *Env) LookupAlias(name string) (*Alias, bool) {
	for s := e; s != nil; s = s.parent {
		if a, ok := s.aliases[name]; ok {
			return a, true
		}
	}
	return nil, false
}

// DefineEnum registers an enum type in the current scope.
func (e *Env) DefineEnum(name string, t types.TypeID) bool {
	if e.typeNameTaken(name) {
		return false
	}
	e.enums[name] = t
	return true
}

// LookupEnum resolves an enum through the scope chain.
func (e *Env) LookupEnum(name string) (types.TypeID, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.enums[name]; ok {
			return t, true
		}
	}
	return types.NoTypeID, false
}

// BindTypeVar binds a type variable (generic parameter, mapped-type key, or
// infer capture) in the current scope, shadowing outer bindings.
func (e *Env) BindTypeVar(name string, t types.TypeID) {
	e.tvars[name] = t
}

// LookupTypeVar resolves a type variable through the scope chain.
func (e *Env) LookupTypeVar(name string) (types.TypeID, bool) {
	for s := e; s != nil; s = s.parent {
		if t, ok := s.tvars[name]; ok {
			return t, true
		}
	}
	return types.NoTypeID, false
}

// typeNameTaken reports whether name is already a type-level symbol in this
// scope. Aliases and enums share a namespace.
func (e *Env) typeNameTaken(name string) bool {
	if _, ok := e.aliases[name]; ok {
		return true
	}
	_, ok := e.enums[name]
	return ok
}
