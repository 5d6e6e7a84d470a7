// Package token defines lexical token kinds and trivia for the Prism checker.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Built-in type names (string, number, any, never, ...) are identifiers.
//     They are recognized by the semantic layer, not the lexer.
package token
