package parser

import (
	"strings"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/source"
	"prism/internal/token"
)

// parseType parses a full type expression. Conditionals bind loosest:
// `A | B extends C ? X : Y` is `(A | B) extends C ? X : Y`.
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	check, ok := p.parseUnionType()
	if !ok {
		return nil, false
	}
	if !p.at(token.KwExtends) {
		return check, true
	}
	p.advance()

	extends, ok := p.parseUnionType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Question, diag.SynUnexpectedToken, "expected '?' in conditional type"); !ok {
		return nil, false
	}
	trueBranch, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional type"); !ok {
		return nil, false
	}
	falseBranch, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &ast.CondType{
		Sp:      check.Span().Cover(p.lastSpan),
		Check:   check,
		Extends: extends,
		True:    trueBranch,
		False:   falseBranch,
	}, true
}

func (p *Parser) parseUnionType() (ast.TypeExpr, bool) {
	first, ok := p.parseIntersectionType()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}

	members := []ast.TypeExpr{first}
	for p.at(token.Pipe) {
		p.advance()
		next, ok := p.parseIntersectionType()
		if !ok {
			return nil, false
		}
		members = append(members, next)
	}
	return &ast.UnionType{
		Sp:      first.Span().Cover(p.lastSpan),
		Members: members,
	}, true
}

func (p *Parser) parseIntersectionType() (ast.TypeExpr, bool) {
	first, ok := p.parsePrefixType()
	if !ok {
		return nil, false
	}
	if !p.at(token.Amp) {
		return first, true
	}

	members := []ast.TypeExpr{first}
	for p.at(token.Amp) {
		p.advance()
		next, ok := p.parsePrefixType()
		if !ok {
			return nil, false
		}
		members = append(members, next)
	}
	return &ast.IntersectionType{
		Sp:      first.Span().Cover(p.lastSpan),
		Members: members,
	}, true
}

// parsePrefixType handles the prefix operators keyof and infer.
func (p *Parser) parsePrefixType() (ast.TypeExpr, bool) {
	switch p.lx.Peek().Kind {
	case token.KwKeyof:
		kw := p.advance()
		operand, ok := p.parsePrefixType()
		if !ok {
			return nil, false
		}
		return &ast.KeyofType{
			Sp:      kw.Span.Cover(operand.Span()),
			Operand: operand,
		}, true

	case token.KwInfer:
		kw := p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		return &ast.InferType{
			Sp:   kw.Span.Cover(name.Sp),
			Name: name,
		}, true

	default:
		return p.parsePostfixType()
	}
}

// parsePostfixType parses a primary type followed by any number of `[]`
// (array) or `[T]` (indexed access) suffixes.
func (p *Parser) parsePostfixType() (ast.TypeExpr, bool) {
	t, ok := p.parsePrimaryType()
	if !ok {
		return nil, false
	}

	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.RBracket) {
			close := p.advance()
			t = &ast.ArrayType{Sp: t.Span().Cover(close.Span), Elem: t}
			continue
		}

		index, ok := p.parseType()
		if !ok {
			return nil, false
		}
		close, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close indexed access")
		if !ok {
			return nil, false
		}
		t = &ast.IndexedAccessType{Sp: t.Span().Cover(close.Span), Base: t, Index: index}
	}
	return t, true
}

func (p *Parser) parsePrimaryType() (ast.TypeExpr, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		return p.parseNameOrApplication()

	case token.StringLit:
		tok := p.advance()
		return &ast.LiteralType{Sp: tok.Span, Kind: ast.LitString, Text: unquote(tok.Text)}, true

	case token.NumberLit, token.Minus:
		lit, ok := p.parseNumberLiteral()
		if !ok {
			p.err(diag.SynExpectType, "expected a type expression")
			return nil, false
		}
		return lit, true

	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.LiteralType{
			Sp:   tok.Span,
			Kind: ast.LitBool,
			Text: tok.Text,
			Bool: tok.Kind == token.KwTrue,
		}, true

	case token.LParen:
		return p.parseParenOrFuncType()

	case token.LBracket:
		return p.parseTupleType()

	case token.LBrace:
		return p.parseObjectOrMappedType()

	default:
		p.err(diag.SynExpectType, "expected a type expression, got '"+p.lx.Peek().Text+"'")
		return nil, false
	}
}

// parseNameOrApplication parses `Name`, `Name<Args>`, or `Name.Member`.
func (p *Parser) parseNameOrApplication() (ast.TypeExpr, bool) {
	tok := p.advance()
	name := ast.Ident{Sp: tok.Span, Name: tok.Text}

	switch p.lx.Peek().Kind {
	case token.Lt:
		p.advance()
		var args []ast.TypeExpr
		for {
			arg, ok := p.parseType()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		close, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type argument list")
		if !ok {
			return nil, false
		}
		return &ast.Instantiation{
			Sp:   tok.Span.Cover(close.Span),
			Name: name,
			Args: args,
		}, true

	case token.Dot:
		p.advance()
		member, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		return &ast.MemberType{
			Sp:     tok.Span.Cover(member.Sp),
			Base:   name,
			Member: member,
		}, true

	default:
		return &ast.NameRef{Sp: tok.Span, Name: tok.Text}, true
	}
}

// parseParenOrFuncType disambiguates `(T)` from `(A, B) => R` after '('.
func (p *Parser) parseParenOrFuncType() (ast.TypeExpr, bool) {
	open := p.advance()

	if p.at(token.RParen) {
		p.advance()
		return p.parseFuncResult(open.Span, nil)
	}

	first, ok := p.parseType()
	if !ok {
		return nil, false
	}

	if p.at(token.Comma) {
		params := []ast.TypeExpr{first}
		for p.at(token.Comma) {
			p.advance()
			next, ok := p.parseType()
			if !ok {
				return nil, false
			}
			params = append(params, next)
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"); !ok {
			return nil, false
		}
		return p.parseFuncResult(open.Span, params)
	}

	close, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')'")
	if !ok {
		return nil, false
	}
	if p.at(token.FatArrow) {
		return p.parseFuncResult(open.Span, []ast.TypeExpr{first})
	}
	return &ast.ParenType{Sp: open.Span.Cover(close.Span), Inner: first}, true
}

// parseFuncResult finishes a function type once the parameter list is closed.
func (p *Parser) parseFuncResult(start source.Span, params []ast.TypeExpr) (ast.TypeExpr, bool) {
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after parameter list"); !ok {
		return nil, false
	}
	result, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &ast.FuncType{
		Sp:     start.Cover(p.lastSpan),
		Params: params,
		Result: result,
	}, true
}

// parseTupleType parses `[T, U, ...]`.
func (p *Parser) parseTupleType() (ast.TypeExpr, bool) {
	open := p.advance()

	var elems []ast.TypeExpr
	if !p.at(token.RBracket) {
		for {
			elem, ok := p.parseType()
			if !ok {
				return nil, false
			}
			elems = append(elems, elem)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	close, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close tuple type")
	if !ok {
		return nil, false
	}
	return &ast.TupleType{Sp: open.Span.Cover(close.Span), Elems: elems}, true
}

// parseObjectOrMappedType disambiguates an object shape from a mapped type
// after '{'. A mapped type starts with '[', optionally preceded by a
// readonly modifier.
func (p *Parser) parseObjectOrMappedType() (ast.TypeExpr, bool) {
	open := p.advance()

	switch p.lx.Peek().Kind {
	case token.Plus, token.Minus:
		mod := ast.ModAdd
		if p.at(token.Minus) {
			mod = ast.ModRemove
		}
		p.advance()
		if _, ok := p.expect(token.KwReadonly, diag.SynBadMappedType, "expected 'readonly' after modifier sign"); !ok {
			return nil, false
		}
		return p.parseMappedType(open.Span, mod)

	case token.KwReadonly:
		p.advance()
		if p.at(token.LBracket) {
			return p.parseMappedType(open.Span, ast.ModAdd)
		}
		// Object shape whose first property is readonly; the keyword was
		// consumed during disambiguation.
		return p.parseObjectType(open.Span, true)

	case token.LBracket:
		return p.parseMappedType(open.Span, ast.ModKeep)

	default:
		return p.parseObjectType(open.Span, false)
	}
}

// parseObjectType parses the property list of `{ a: T, b?: U, readonly c: V }`.
func (p *Parser) parseObjectType(start source.Span, firstReadonly bool) (ast.TypeExpr, bool) {
	var props []ast.ObjectProp
	seen := make(map[string]bool)

	first := true
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		prop, ok := p.parseObjectProp(first && firstReadonly)
		if !ok {
			return nil, false
		}
		if seen[prop.Name.Name] {
			p.report(diag.SynDuplicateProperty, diag.SevError, prop.Name.Sp,
				"duplicate property '"+prop.Name.Name+"'")
			return nil, false
		}
		seen[prop.Name.Name] = true
		props = append(props, prop)
		first = false

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	close, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close object type")
	if !ok {
		return nil, false
	}
	return &ast.ObjectType{Sp: start.Cover(close.Span), Props: props}, true
}

func (p *Parser) parseObjectProp(readonlyConsumed bool) (ast.ObjectProp, bool) {
	start := p.lx.Peek().Span
	readonly := readonlyConsumed
	if !readonly && p.at(token.KwReadonly) {
		p.advance()
		readonly = true
	}

	name, ok := p.parseIdent()
	if !ok {
		return ast.ObjectProp{}, false
	}

	optional := false
	if p.at(token.Question) {
		p.advance()
		optional = true
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
		return ast.ObjectProp{}, false
	}
	typ, ok := p.parseType()
	if !ok {
		return ast.ObjectProp{}, false
	}

	if readonlyConsumed {
		// The span of the already-consumed readonly keyword is lost; start at
		// the name instead.
		start = name.Sp
	}
	return ast.ObjectProp{
		Sp:       start.Cover(p.lastSpan),
		Name:     name,
		Type:     typ,
		Optional: optional,
		Readonly: readonly,
	}, true
}

// parseMappedType parses `[K in E]` and the rest of a mapped type. The
// opening brace and any readonly modifier were consumed by the caller.
func (p *Parser) parseMappedType(start source.Span, readonly ast.Modifier) (ast.TypeExpr, bool) {
	if _, ok := p.expect(token.LBracket, diag.SynBadMappedType, "expected '[' in mapped type"); !ok {
		return nil, false
	}
	key, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynBadMappedType, "expected 'in' after mapped type key"); !ok {
		return nil, false
	}
	constraint, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in mapped type"); !ok {
		return nil, false
	}

	optional := ast.ModKeep
	switch p.lx.Peek().Kind {
	case token.Question:
		p.advance()
		optional = ast.ModAdd
	case token.Plus, token.Minus:
		if p.at(token.Minus) {
			optional = ast.ModRemove
		} else {
			optional = ast.ModAdd
		}
		p.advance()
		if _, ok := p.expect(token.Question, diag.SynBadMappedType, "expected '?' after modifier sign"); !ok {
			return nil, false
		}
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in mapped type"); !ok {
		return nil, false
	}
	value, ok := p.parseType()
	if !ok {
		return nil, false
	}
	close, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close mapped type")
	if !ok {
		return nil, false
	}

	return &ast.MappedType{
		Sp:         start.Cover(close.Span),
		Key:        key,
		Constraint: constraint,
		Value:      value,
		Readonly:   readonly,
		Optional:   optional,
	}, true
}

// unquote strips the surrounding quotes from a string literal and resolves
// the escapes the lexer accepted.
func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' {
		end := len(text)
		if text[end-1] == '"' {
			end--
		}
		text = text[1:end]
	}
	if !strings.ContainsRune(text, '\\') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			b.WriteByte(c)
			continue
		}
		i++
		switch text[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
