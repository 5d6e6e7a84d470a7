package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"prism/internal/diag"
	"prism/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// (call bag.Sort() beforehand for stable output) and prints for each:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline for the primary span,
// surrounding context lines when requested, and notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for i := range bag.Items() {
		p.diagnostic(&bag.Items()[i])
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}

func (p *prettyPrinter) diagnostic(d *diag.Diagnostic) {
	file := p.fs.Get(d.Primary.File)
	start, end := p.fs.Resolve(d.Primary)
	path := formatPath(file, p.fs, p.opts.PathMode)

	sev := p.paint(severityColor(d.Severity), d.Severity.String())
	code := p.paint(color.New(color.Bold), d.Code.ID())
	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	p.sourceWindow(file, d.Primary, start, end, d.Severity)

	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			nf := p.fs.Get(note.Span.File)
			nstart, nend := p.fs.Resolve(note.Span)
			npath := formatPath(nf, p.fs, p.opts.PathMode)
			label := p.paint(color.New(color.FgBlue, color.Bold), "note")
			fmt.Fprintf(p.w, "%s:%d:%d: %s: %s\n", npath, nstart.Line, nstart.Col, label, note.Msg)
			p.sourceWindow(nf, note.Span, nstart, nend, diag.SevInfo)
		}
	}
}

// sourceWindow prints the primary line with its underline, plus up to
// opts.Context lines of context on each side.
func (p *prettyPrinter) sourceWindow(f *source.File, span source.Span, start, end source.LineCol, sev diag.Severity) {
	line := f.GetLine(start.Line)
	if line == "" && start.Line != 1 {
		return
	}

	ctx := uint32(0)
	if p.opts.Context > 0 {
		ctx = uint32(p.opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	gutter := len(fmt.Sprintf("%d", start.Line+ctx))

	for n := first; n < start.Line; n++ {
		fmt.Fprintf(p.w, "  %*d | %s\n", gutter, n, expandTabs(f.GetLine(n)))
	}

	fmt.Fprintf(p.w, "  %*d | %s\n", gutter, start.Line, expandTabs(line))
	fmt.Fprintf(p.w, "  %*s | %s\n", gutter, "", p.underline(line, start, end, sev))

	for n := start.Line + 1; n <= start.Line+ctx; n++ {
		text := f.GetLine(n)
		if text == "" {
			break
		}
		fmt.Fprintf(p.w, "  %*d | %s\n", gutter, n, expandTabs(text))
	}
}

// underline builds the ^~~~ marker, aligned by display width so wide runes
// and tabs keep the caret under the right column.
func (p *prettyPrinter) underline(line string, start, end source.LineCol, sev diag.Severity) string {
	runes := []rune(line)
	col := int(start.Col) - 1
	if col > len(runes) {
		col = len(runes)
	}

	pad := displayWidth(runes[:col])

	length := 1
	if end.Line == start.Line && end.Col > start.Col {
		to := int(end.Col) - 1
		if to > len(runes) {
			to = len(runes)
		}
		length = displayWidth(runes[col:to])
		if length < 1 {
			length = 1
		}
	}

	marker := "^" + strings.Repeat("~", length-1)
	return strings.Repeat(" ", pad) + p.paint(severityColor(sev), marker)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func displayWidth(runes []rune) int {
	w := 0
	for _, r := range runes {
		if r == '\t' {
			w += 4
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
