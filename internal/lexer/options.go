package lexer

import (
	"prism/internal/diag"
	"prism/internal/source"
)

// Options configure a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics; nil means errors are dropped
	// (lexing still continues).
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
