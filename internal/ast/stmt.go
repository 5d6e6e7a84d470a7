package ast

import "prism/internal/source"

// TypeDecl is `type Name<Params> = Body`.
type TypeDecl struct {
	Sp     source.Span
	Name   Ident
	Params []TypeParam
	Body   TypeExpr
}

// TypeParam is a declared type parameter, optionally constrained with
// `extends`.
type TypeParam struct {
	Sp         source.Span
	Name       Ident
	Constraint TypeExpr // nil when unconstrained
}

func (p TypeParam) Span() source.Span { return p.Sp }

// EnumDecl is `enum Name { Members }`.
type EnumDecl struct {
	Sp      source.Span
	Name    Ident
	Members []EnumMember
}

// EnumMember is one enum member, with an optional explicit value.
type EnumMember struct {
	Sp    source.Span
	Name  Ident
	Value *LiteralType // nil when the value is auto-assigned
}

func (m EnumMember) Span() source.Span { return m.Sp }

// LetDecl is `let name: Type`.
type LetDecl struct {
	Sp   source.Span
	Name Ident
	Type TypeExpr
}

// AssignStmt is `target = value`. The value is a name referring to another
// binding or a literal.
type AssignStmt struct {
	Sp     source.Span
	Target Ident
	Value  TypeExpr
}

// DeleteStmt is `delete target.prop`.
type DeleteStmt struct {
	Sp     source.Span
	Target Ident
	Prop   Ident
}

// AssertOp distinguishes the two assertion forms.
type AssertOp uint8

const (
	// AssertSubtype is `assert A <: B`.
	AssertSubtype AssertOp = iota
	// AssertEqual is `assert A == B`.
	AssertEqual
)

func (op AssertOp) String() string {
	if op == AssertEqual {
		return "=="
	}
	return "<:"
}

// AssertStmt is `assert Left <: Right` or `assert Left == Right`.
type AssertStmt struct {
	Sp    source.Span
	Left  TypeExpr
	Op    AssertOp
	Right TypeExpr
}

// BadStmt is a placeholder for a statement the parser could not recover into
// a real node. The parser has already reported a diagnostic for it.
type BadStmt struct {
	Sp source.Span
}

func (s *TypeDecl) Span() source.Span   { return s.Sp }
func (s *EnumDecl) Span() source.Span   { return s.Sp }
func (s *LetDecl) Span() source.Span    { return s.Sp }
func (s *AssignStmt) Span() source.Span { return s.Sp }
func (s *DeleteStmt) Span() source.Span { return s.Sp }
func (s *AssertStmt) Span() source.Span { return s.Sp }
func (s *BadStmt) Span() source.Span    { return s.Sp }

func (*TypeDecl) stmtNode()   {}
func (*EnumDecl) stmtNode()   {}
func (*LetDecl) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*DeleteStmt) stmtNode() {}
func (*AssertStmt) stmtNode() {}
func (*BadStmt) stmtNode()    {}
