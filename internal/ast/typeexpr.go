package ast

import "prism/internal/source"

// NameRef is a bare name in type position: a primitive, an alias, an enum, a
// type parameter, or (in value contexts) a value binding.
type NameRef struct {
	Sp   source.Span
	Name string
}

// LitKind classifies literal types.
type LitKind uint8

const (
	// LitNumber is a numeric literal such as `42`.
	LitNumber LitKind = iota
	// LitString is a string literal such as `"s"`.
	LitString
	// LitBool is `true` or `false`.
	LitBool
)

// LiteralType is a literal used as a type: `"s"`, `42`, `true`.
type LiteralType struct {
	Sp   source.Span
	Kind LitKind
	Text string  // literal text as written, without string quotes
	Num  float64 // valid when Kind == LitNumber
	Bool bool    // valid when Kind == LitBool
}

// ArrayType is `Elem[]`.
type ArrayType struct {
	Sp   source.Span
	Elem TypeExpr
}

// TupleType is `[E0, E1, ...]`.
type TupleType struct {
	Sp    source.Span
	Elems []TypeExpr
}

// ObjectProp is one property in an object shape.
type ObjectProp struct {
	Sp       source.Span
	Name     Ident
	Type     TypeExpr
	Optional bool // `name?: T`
	Readonly bool // `readonly name: T`
}

func (p ObjectProp) Span() source.Span { return p.Sp }

// ObjectType is `{ a: T, b?: U, readonly c: V }`.
type ObjectType struct {
	Sp    source.Span
	Props []ObjectProp
}

// UnionType is `A | B | ...`, flattened left to right by the parser.
type UnionType struct {
	Sp      source.Span
	Members []TypeExpr
}

// IntersectionType is `A & B & ...`, flattened left to right by the parser.
type IntersectionType struct {
	Sp      source.Span
	Members []TypeExpr
}

// FuncType is `(P0, P1) => R`.
type FuncType struct {
	Sp     source.Span
	Params []TypeExpr
	Result TypeExpr
}

// Instantiation is a generic application `Name<A0, A1>`.
type Instantiation struct {
	Sp   source.Span
	Name Ident
	Args []TypeExpr
}

// KeyofType is `keyof Operand`.
type KeyofType struct {
	Sp      source.Span
	Operand TypeExpr
}

// IndexedAccessType is `Base[Index]`.
type IndexedAccessType struct {
	Sp    source.Span
	Base  TypeExpr
	Index TypeExpr
}

// CondType is `Check extends Extends ? True : False`.
type CondType struct {
	Sp      source.Span
	Check   TypeExpr
	Extends TypeExpr
	True    TypeExpr
	False   TypeExpr
}

// InferType is `infer Name` inside the extends clause of a conditional.
type InferType struct {
	Sp   source.Span
	Name Ident
}

// Modifier is a mapped-type modifier state: inherited, added, or removed.
type Modifier int8

const (
	// ModKeep leaves the flag as it is on the source property.
	ModKeep Modifier = 0
	// ModAdd sets the flag (`readonly`, `?`, or their explicit `+` forms).
	ModAdd Modifier = 1
	// ModRemove clears the flag (`-readonly`, `-?`).
	ModRemove Modifier = -1
)

// MappedType is `{ [Key in Constraint]: Value }` with optional modifiers.
type MappedType struct {
	Sp         source.Span
	Key        Ident
	Constraint TypeExpr
	Value      TypeExpr
	Readonly   Modifier
	Optional   Modifier
}

// MemberType is an enum member reference `Base.Member`.
type MemberType struct {
	Sp     source.Span
	Base   Ident
	Member Ident
}

// ParenType is a parenthesized type expression, kept so spans and printing
// reflect the source.
type ParenType struct {
	Sp    source.Span
	Inner TypeExpr
}

func (t *NameRef) Span() source.Span           { return t.Sp }
func (t *LiteralType) Span() source.Span       { return t.Sp }
func (t *ArrayType) Span() source.Span         { return t.Sp }
func (t *TupleType) Span() source.Span         { return t.Sp }
func (t *ObjectType) Span() source.Span        { return t.Sp }
func (t *UnionType) Span() source.Span         { return t.Sp }
func (t *IntersectionType) Span() source.Span  { return t.Sp }
func (t *FuncType) Span() source.Span          { return t.Sp }
func (t *Instantiation) Span() source.Span     { return t.Sp }
func (t *KeyofType) Span() source.Span         { return t.Sp }
func (t *IndexedAccessType) Span() source.Span { return t.Sp }
func (t *CondType) Span() source.Span          { return t.Sp }
func (t *InferType) Span() source.Span         { return t.Sp }
func (t *MappedType) Span() source.Span        { return t.Sp }
func (t *MemberType) Span() source.Span        { return t.Sp }
func (t *ParenType) Span() source.Span         { return t.Sp }

func (*NameRef) typeExprNode()           {}
func (*LiteralType) typeExprNode()       {}
func (*ArrayType) typeExprNode()         {}
func (*TupleType) typeExprNode()         {}
func (*ObjectType) typeExprNode()        {}
func (*UnionType) typeExprNode()         {}
func (*IntersectionType) typeExprNode()  {}
func (*FuncType) typeExprNode()          {}
func (*Instantiation) typeExprNode()     {}
func (*KeyofType) typeExprNode()         {}
func (*IndexedAccessType) typeExprNode() {}
func (*CondType) typeExprNode()          {}
func (*InferType) typeExprNode()         {}
func (*MappedType) typeExprNode()        {}
func (*MemberType) typeExprNode()        {}
func (*ParenType) typeExprNode()         {}
