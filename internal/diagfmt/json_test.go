package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONOutput(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, sb.String())
	}

	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3007" || d.Severity != "ERROR" {
		t.Errorf("code/severity = %s/%s", d.Code, d.Severity)
	}
	if d.Location.File != "demo.pr" || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "'s' is declared here" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONOmitsNotesAndPositionsByDefault(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	if err := JSON(&sb, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	raw := sb.String()
	if strings.Contains(raw, "notes") || strings.Contains(raw, "start_line") {
		t.Errorf("default output leaks optional fields:\n%s", raw)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := demoBag(t)
	bag.Merge(bag) // duplicate the single entry

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("count = %d, want 1", out.Count)
	}
}

func TestShortFormat(t *testing.T) {
	bag, fs := demoBag(t)

	var sb strings.Builder
	Short(&sb, bag, fs, false)
	want := "error SEM3007 demo.pr:2:5 unresolved name 'missing'\n"
	if sb.String() != want {
		t.Errorf("short output:\ngot:  %q\nwant: %q", sb.String(), want)
	}
}
