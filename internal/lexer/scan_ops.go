package lexer

import (
	"fmt"

	"prism/internal/diag"
	"prism/internal/token"
)

// scanOperatorOrPunct scans punctuation and operators, longest match first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '<':
		if lx.cursor.Eat(':') {
			return emit(token.Subtype)
		}
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '?':
		return emit(token.Question)
	case '|':
		return emit(token.Pipe)
	case '&':
		return emit(token.Amp)
	case '=':
		if lx.cursor.Eat('=') {
			return emit(token.EqEq)
		}
		if lx.cursor.Eat('>') {
			return emit(token.FatArrow)
		}
		return emit(token.Assign)
	case '.':
		return emit(token.Dot)
	case '-':
		return emit(token.Minus)
	case '+':
		return emit(token.Plus)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", rune(b)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}
