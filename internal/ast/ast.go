package ast

import "prism/internal/source"

// Node is the common interface of all syntax tree nodes.
type Node interface {
	Span() source.Span
}

// Stmt is a top-level statement: a declaration or a check statement.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is a type-level expression.
type TypeExpr interface {
	Node
	typeExprNode()
}

// File is the root of the tree for a single source file.
type File struct {
	FileID source.FileID
	Stmts  []Stmt
}

// Span covers the whole file from the first to the last statement.
func (f *File) Span() source.Span {
	if len(f.Stmts) == 0 {
		return source.Span{File: f.FileID}
	}
	return f.Stmts[0].Span().Cover(f.Stmts[len(f.Stmts)-1].Span())
}

// Ident is an identifier occurrence.
type Ident struct {
	Sp   source.Span
	Name string
}

func (i Ident) Span() source.Span { return i.Sp }
