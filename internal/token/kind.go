package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwType represents the 'type' keyword.
	KwType // type
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwDelete represents the 'delete' keyword.
	KwDelete // delete
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwKeyof represents the 'keyof' keyword.
	KwKeyof // keyof
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwInfer represents the 'infer' keyword.
	KwInfer // infer
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwReadonly represents the 'readonly' keyword.
	KwReadonly // readonly
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// NumberLit represents a numeric literal.
	NumberLit
	// StringLit represents a double-quoted string literal.
	StringLit

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Lt represents '<'.
	Lt
	// Gt represents '>'.
	Gt
	// Comma represents ','.
	Comma
	// Colon represents ':'.
	Colon
	// Semicolon represents ';'.
	Semicolon
	// Question represents '?'.
	Question
	// Pipe represents '|'.
	Pipe
	// Amp represents '&'.
	Amp
	// Assign represents '='.
	Assign
	// EqEq represents '=='.
	EqEq
	// FatArrow represents '=>'.
	FatArrow
	// Dot represents '.'.
	Dot
	// Minus represents '-' (mapped-type modifier removal, negative numbers).
	Minus
	// Plus represents '+' (explicit mapped-type modifier addition).
	Plus
	// Subtype represents '<:' in assert statements.
	Subtype
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case KwType:
		return "type"
	case KwEnum:
		return "enum"
	case KwLet:
		return "let"
	case KwDelete:
		return "delete"
	case KwAssert:
		return "assert"
	case KwKeyof:
		return "keyof"
	case KwExtends:
		return "extends"
	case KwInfer:
		return "infer"
	case KwIn:
		return "in"
	case KwReadonly:
		return "readonly"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	case NumberLit:
		return "NumberLit"
	case StringLit:
		return "StringLit"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Comma:
		return ","
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Question:
		return "?"
	case Pipe:
		return "|"
	case Amp:
		return "&"
	case Assign:
		return "="
	case EqEq:
		return "=="
	case FatArrow:
		return "=>"
	case Dot:
		return "."
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Subtype:
		return "<:"
	default:
		return "Kind(?)"
	}
}
