package diagfmt

import (
	"strings"
	"testing"

	"prism/internal/diag"
	"prism/internal/source"
)

func demoBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.pr", []byte("let s: string\ns = missing\n"))

	bag := diag.NewBag(16)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemaUnresolvedSymbol,
		Message:  "unresolved name 'missing'",
		Primary:  source.Span{File: id, Start: 18, End: 25},
		Notes: []diag.Note{{
			Span: source.Span{File: id, Start: 4, End: 5},
			Msg:  "'s' is declared here",
		}},
	})
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	wantLines := []string{
		"demo.pr:2:5: ERROR SEM3007: unresolved name 'missing'",
		"  2 | s = missing",
		"  ^~~~~~~",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains ANSI escapes:\n%s", out)
	}
	if strings.Contains(out, "declared here") {
		t.Errorf("notes shown without ShowNotes:\n%s", out)
	}
}

func TestPrettyNotesAndContext(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, Context: 1})
	out := sb.String()

	if !strings.Contains(out, "demo.pr:1:5: note: 's' is declared here") {
		t.Errorf("note line missing:\n%s", out)
	}
	// one context line above the primary
	if !strings.Contains(out, "  1 | let s: string") {
		t.Errorf("context line missing:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(sb.String(), "\x1b[") {
		t.Errorf("color output has no ANSI escapes:\n%s", sb.String())
	}
}

func TestUnderlineAlignment(t *testing.T) {
	p := prettyPrinter{}
	got := p.underline("s = missing", source.LineCol{Line: 2, Col: 5}, source.LineCol{Line: 2, Col: 12}, diag.SevError)
	if got != "    ^~~~~~~" {
		t.Errorf("underline = %q", got)
	}

	// single-column span still gets a caret
	got = p.underline("x", source.LineCol{Line: 1, Col: 1}, source.LineCol{Line: 1, Col: 1}, diag.SevError)
	if got != "^" {
		t.Errorf("underline = %q", got)
	}
}
