package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. The numeric space is partitioned by
// phase: 1xxx lexical, 2xxx syntactic, 3xxx semantic, 4xxx IO/driver.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic.
	SynUnexpectedToken    Code = 2001
	SynExpectType         Code = 2002
	SynExpectIdentifier   Code = 2003
	SynUnclosedDelimiter  Code = 2004
	SynDuplicateProperty  Code = 2005
	SynExpectColon        Code = 2006
	SynExpectStatement    Code = 2007
	SynBadEnumMember      Code = 2008
	SynBadMappedType      Code = 2009
	SynTrailingTokens     Code = 2010

	// Semantic.
	SemaNotAssignable       Code = 3001
	SemaUnknownProperty     Code = 3002
	SemaIllegalDelete       Code = 3003
	SemaRecursionLimit      Code = 3004
	SemaUnresolvedInference Code = 3005
	SemaDuplicateSymbol     Code = 3006
	SemaUnresolvedSymbol    Code = 3007
	SemaTypeArityMismatch   Code = 3008
	SemaNotAnObject         Code = 3009
	SemaEnumBadValue        Code = 3010
	SemaBadMappedKey        Code = 3011

	// IO / driver.
	IOFileNotFound Code = 4001
	IOReadError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",

	SynUnexpectedToken:   "unexpected token",
	SynExpectType:        "type expression expected",
	SynExpectIdentifier:  "identifier expected",
	SynUnclosedDelimiter: "unclosed delimiter",
	SynDuplicateProperty: "duplicate property name",
	SynExpectColon:       "':' expected",
	SynExpectStatement:   "statement expected",
	SynBadEnumMember:     "invalid enum member",
	SynBadMappedType:     "invalid mapped type",
	SynTrailingTokens:    "trailing tokens after statement",

	SemaNotAssignable:       "type is not assignable",
	SemaUnknownProperty:     "unknown property",
	SemaIllegalDelete:       "cannot delete required property",
	SemaRecursionLimit:      "type expansion depth exceeded",
	SemaUnresolvedInference: "unresolved 'infer' type variable",
	SemaDuplicateSymbol:     "duplicate declaration",
	SemaUnresolvedSymbol:    "unresolved name",
	SemaTypeArityMismatch:   "wrong number of type arguments",
	SemaNotAnObject:         "object type expected",
	SemaEnumBadValue:        "invalid enum member value",
	SemaBadMappedKey:        "mapped type key set must be string literals",

	IOFileNotFound: "file not found",
	IOReadError:    "failed to read file",
}

// ID returns the stable short identifier used in golden files and CLI output.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable short description for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
