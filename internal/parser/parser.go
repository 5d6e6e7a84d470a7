package parser

import (
	"slices"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/lexer"
	"prism/internal/source"
	"prism/internal/token"
)

// Options controls error reporting during a parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result carries the parsed file and the bag the reporter filled, when the
// reporter was a BagReporter.
type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds the state for parsing one file.
type Parser struct {
	lx       *lexer.Lexer
	file     source.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses a single file using an already constructed lexer.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		file: file.ID,
		opts: opts,
	}

	out := &ast.File{FileID: file.ID}
	for !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncTop()
			continue
		}
		out.Stmts = append(out.Stmts, stmt)
	}

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: out, Bag: bag}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan picks the best span for an error at the current position.
// At EOF the span collapses to the point just past the last consumed token.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code with msg.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// parseIdent expects an identifier and returns it as an ast.Ident.
func (p *Parser) parseIdent() (ast.Ident, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.Ident{Sp: tok.Span, Name: tok.Text}, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got '"+p.lx.Peek().Text+"'")
	return ast.Ident{Sp: p.diagnosticSpan()}, false
}

// resyncTop skips tokens until the next statement starter or a semicolon.
func (p *Parser) resyncTop() {
	for {
		if p.at(token.EOF) || isStmtStarter(p.lx.Peek().Kind) {
			return
		}
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}

func isStmtStarter(k token.Kind) bool {
	switch k {
	case token.KwType, token.KwEnum, token.KwLet, token.KwDelete, token.KwAssert:
		return true
	default:
		return false
	}
}

// skipSemis consumes optional statement terminators.
func (p *Parser) skipSemis() {
	for p.at(token.Semicolon) {
		p.advance()
	}
}
