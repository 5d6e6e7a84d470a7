package diag

import (
	"prism/internal/source"
)

// Note is a secondary span/message attached to a diagnostic for context.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding produced by a checker phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
