package diag

import (
	"testing"

	"prism/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagCapacity(t *testing.T) {
	b := NewBag(2)

	if !b.Add(NewError(SemaNotAssignable, span(0, 0, 1), "one")) {
		t.Fatal("first Add rejected")
	}
	if !b.Add(NewError(SemaNotAssignable, span(0, 1, 2), "two")) {
		t.Fatal("second Add rejected")
	}
	if b.Add(NewError(SemaNotAssignable, span(0, 2, 3), "three")) {
		t.Error("expected third Add to be dropped")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevInfo, UnknownCode, span(0, 0, 0), "info"))

	if b.HasErrors() || b.HasWarnings() {
		t.Error("info-only bag should have no errors or warnings")
	}

	b.Add(New(SevWarning, SynUnexpectedToken, span(0, 0, 0), "warn"))
	if !b.HasWarnings() {
		t.Error("expected HasWarnings")
	}
	if b.HasErrors() {
		t.Error("did not expect HasErrors")
	}

	b.Add(NewError(SemaNotAssignable, span(0, 0, 0), "err"))
	if !b.HasErrors() {
		t.Error("expected HasErrors")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SemaUnknownProperty, span(0, 10, 12), "later"))
	b.Add(NewError(SemaNotAssignable, span(0, 2, 4), "earlier"))
	b.Add(New(SevWarning, SynUnexpectedToken, span(0, 2, 4), "same span, lower severity"))

	b.Sort()

	items := b.Items()
	if items[0].Message != "earlier" {
		t.Errorf("items[0] = %q", items[0].Message)
	}
	// Error sorts before warning at the same span.
	if items[0].Severity != SevError || items[1].Severity != SevWarning {
		t.Errorf("severity order wrong: %v, %v", items[0].Severity, items[1].Severity)
	}
	if items[2].Message != "later" {
		t.Errorf("items[2] = %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SemaNotAssignable, span(0, 0, 4), "dup"))
	b.Add(NewError(SemaNotAssignable, span(0, 0, 4), "dup"))
	b.Add(NewError(SemaNotAssignable, span(0, 5, 6), "other span"))

	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after Dedup = %d, want 2", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	r.Report(SemaNotAssignable, SevError, span(0, 0, 4), "dup", nil)
	r.Report(SemaNotAssignable, SevError, span(0, 0, 4), "dup", nil)
	r.Report(SemaNotAssignable, SevError, span(0, 0, 4), "different message", nil)

	if bag.Len() != 2 {
		t.Errorf("bag.Len = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{SemaNotAssignable, "SEM3001"},
		{IOFileNotFound, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/base")
	id := fs.AddVirtual("demo.pr", []byte("let x: string\nx = y\n"))

	diags := []Diagnostic{
		NewError(SemaUnresolvedSymbol, source.Span{File: id, Start: 18, End: 19}, "unresolved name 'y'"),
		NewError(SemaNotAssignable, source.Span{File: id, Start: 14, End: 15}, "cannot assign"),
	}

	got := FormatGoldenDiagnostics(diags, fs, false)
	want := "error SEM3001 demo.pr:2:1 cannot assign\n" +
		"error SEM3007 demo.pr:2:5 unresolved name 'y'"
	if got != want {
		t.Errorf("golden output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
