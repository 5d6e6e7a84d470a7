package parser

import (
	"strconv"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/token"
)

// parseStmt dispatches on the first token of a statement.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	p.skipSemis()
	if p.at(token.EOF) {
		return &ast.BadStmt{Sp: p.diagnosticSpan()}, false
	}

	switch p.lx.Peek().Kind {
	case token.KwType:
		return p.parseTypeDecl()
	case token.KwEnum:
		return p.parseEnumDecl()
	case token.KwLet:
		return p.parseLetDecl()
	case token.KwDelete:
		return p.parseDeleteStmt()
	case token.KwAssert:
		return p.parseAssertStmt()
	case token.Ident:
		return p.parseAssignStmt()
	default:
		p.err(diag.SynExpectStatement, "expected a declaration or check statement, got '"+p.lx.Peek().Text+"'")
		return nil, false
	}
}

// parseTypeDecl parses `type Name<Params> = Body`.
func (p *Parser) parseTypeDecl() (ast.Stmt, bool) {
	kw := p.advance()

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}

	var params []ast.TypeParam
	if p.at(token.Lt) {
		params, ok = p.parseTypeParams()
		if !ok {
			return nil, false
		}
	}

	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type declaration"); !ok {
		return nil, false
	}

	body, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &ast.TypeDecl{
		Sp:     kw.Span.Cover(p.lastSpan),
		Name:   name,
		Params: params,
		Body:   body,
	}, true
}

// parseTypeParams parses `<T, U extends C>` after a type name.
func (p *Parser) parseTypeParams() ([]ast.TypeParam, bool) {
	p.advance() // '<'

	var params []ast.TypeParam
	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		param := ast.TypeParam{Sp: name.Sp, Name: name}

		if p.at(token.KwExtends) {
			p.advance()
			constraint, ok := p.parseType()
			if !ok {
				return nil, false
			}
			param.Constraint = constraint
			param.Sp = name.Sp.Cover(p.lastSpan)
		}
		params = append(params, param)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseEnumDecl parses `enum Name { A, B = 5 }`.
func (p *Parser) parseEnumDecl() (ast.Stmt, bool) {
	kw := p.advance()

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return nil, false
	}

	var members []ast.EnumMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseEnumMember()
		if !ok {
			return nil, false
		}
		members = append(members, member)

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum body"); !ok {
		return nil, false
	}

	return &ast.EnumDecl{
		Sp:      kw.Span.Cover(p.lastSpan),
		Name:    name,
		Members: members,
	}, true
}

func (p *Parser) parseEnumMember() (ast.EnumMember, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return ast.EnumMember{}, false
	}
	member := ast.EnumMember{Sp: name.Sp, Name: name}

	if p.at(token.Assign) {
		p.advance()
		value, ok := p.parseNumberLiteral()
		if !ok {
			p.err(diag.SynBadEnumMember, "enum member value must be a numeric literal")
			return ast.EnumMember{}, false
		}
		member.Value = value
		member.Sp = name.Sp.Cover(p.lastSpan)
	}
	return member, true
}

// parseNumberLiteral parses an optionally negated numeric literal.
func (p *Parser) parseNumberLiteral() (*ast.LiteralType, bool) {
	start := p.lx.Peek().Span
	neg := false
	if p.at(token.Minus) {
		p.advance()
		neg = true
	}
	if !p.at(token.NumberLit) {
		return nil, false
	}
	tok := p.advance()

	num, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		p.report(diag.SynBadEnumMember, diag.SevError, tok.Span, "cannot parse numeric literal '"+tok.Text+"'")
		return nil, false
	}
	text := tok.Text
	if neg {
		num = -num
		text = "-" + text
	}
	return &ast.LiteralType{
		Sp:   start.Cover(tok.Span),
		Kind: ast.LitNumber,
		Text: text,
		Num:  num,
	}, true
}

// parseLetDecl parses `let name: Type`.
func (p *Parser) parseLetDecl() (ast.Stmt, bool) {
	kw := p.advance()

	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after binding name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &ast.LetDecl{
		Sp:   kw.Span.Cover(p.lastSpan),
		Name: name,
		Type: typ,
	}, true
}

// parseDeleteStmt parses `delete target.prop`.
func (p *Parser) parseDeleteStmt() (ast.Stmt, bool) {
	kw := p.advance()

	target, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Dot, diag.SynUnexpectedToken, "expected '.' after delete target"); !ok {
		return nil, false
	}
	prop, ok := p.parseIdent()
	if !ok {
		return nil, false
	}

	return &ast.DeleteStmt{
		Sp:     kw.Span.Cover(p.lastSpan),
		Target: target,
		Prop:   prop,
	}, true
}

// parseAssertStmt parses `assert A <: B` or `assert A == B`.
func (p *Parser) parseAssertStmt() (ast.Stmt, bool) {
	kw := p.advance()

	left, ok := p.parseType()
	if !ok {
		return nil, false
	}

	var op ast.AssertOp
	switch {
	case p.at(token.Subtype):
		p.advance()
		op = ast.AssertSubtype
	case p.at(token.EqEq):
		p.advance()
		op = ast.AssertEqual
	default:
		p.err(diag.SynUnexpectedToken, "expected '<:' or '==' in assert statement")
		return nil, false
	}

	right, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &ast.AssertStmt{
		Sp:    kw.Span.Cover(p.lastSpan),
		Left:  left,
		Op:    op,
		Right: right,
	}, true
}

// parseAssignStmt parses `target = value` where value is a name, an enum
// member reference, or a literal.
func (p *Parser) parseAssignStmt() (ast.Stmt, bool) {
	target, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after name"); !ok {
		return nil, false
	}
	value, ok := p.parseValueExpr()
	if !ok {
		return nil, false
	}

	return &ast.AssignStmt{
		Sp:     target.Sp.Cover(p.lastSpan),
		Target: target,
		Value:  value,
	}, true
}

// parseValueExpr parses the right-hand side of an assignment.
func (p *Parser) parseValueExpr() (ast.TypeExpr, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		name := p.advance()
		if p.at(token.Dot) {
			p.advance()
			member, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			return &ast.MemberType{
				Sp:     name.Span.Cover(member.Sp),
				Base:   ast.Ident{Sp: name.Span, Name: name.Text},
				Member: member,
			}, true
		}
		return &ast.NameRef{Sp: name.Span, Name: name.Text}, true

	case token.NumberLit, token.Minus:
		return p.parseNumberLiteral()

	case token.StringLit:
		tok := p.advance()
		return &ast.LiteralType{
			Sp:   tok.Span,
			Kind: ast.LitString,
			Text: unquote(tok.Text),
		}, true

	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.LiteralType{
			Sp:   tok.Span,
			Kind: ast.LitBool,
			Text: tok.Text,
			Bool: tok.Kind == token.KwTrue,
		}, true

	default:
		p.err(diag.SynUnexpectedToken, "expected a name or literal after '='")
		return nil, false
	}
}
