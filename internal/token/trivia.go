package token

import "prism/internal/source"

// TriviaKind classifies non-semantic lexemes attached to tokens.
type TriviaKind uint8

const (
	// TriviaSpace covers runs of spaces and tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline covers line breaks.
	TriviaNewline
	// TriviaLineComment covers '//' comments up to end of line.
	TriviaLineComment
	// TriviaBlockComment covers '/* ... */' comments.
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "Unknown"
	}
}

// Trivia is a single non-semantic lexeme preceding a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
