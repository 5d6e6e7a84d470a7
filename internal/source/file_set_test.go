package source

import (
	"testing"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("a.pr", []byte("type A = string\n"))
	id2 := fs.AddVirtual("b.pr", []byte("type B = number\n"))

	if id1 == id2 {
		t.Fatalf("expected distinct FileIDs, got %d twice", id1)
	}
	if fs.Get(id1).Path != "a.pr" || fs.Get(id2).Path != "b.pr" {
		t.Errorf("paths not preserved: %q, %q", fs.Get(id1).Path, fs.Get(id2).Path)
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.pr", []byte("version 1"), 0)
	id2 := fs.Add("test.pr", []byte("version 2"), 0)

	if id1 == id2 {
		t.Fatal("expected a fresh FileID for the second Add")
	}
	latest, ok := fs.GetLatest("test.pr")
	if !ok {
		t.Fatal("expected file to be indexed")
	}
	if latest != id2 {
		t.Errorf("GetLatest = %d, want %d", latest, id2)
	}
}

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.pr", []byte("type A = string\ntype B = number\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"middle of first line", 5, LineCol{Line: 1, Col: 6}},
		{"newline belongs to line one", 15, LineCol{Line: 1, Col: 16}},
		{"start of second line", 16, LineCol{Line: 2, Col: 1}},
		{"middle of second line", 21, LineCol{Line: 2, Col: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.pr", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if (start != LineCol{Line: 1, Col: 1}) {
		t.Errorf("start = %+v, want 1:1", start)
	}
	if (end != LineCol{Line: 1, Col: 2}) {
		t.Errorf("end = %+v, want 1:2", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.pr", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed {
		t.Fatal("expected changes")
	}
	if string(out) != "a\nb\rc\n" {
		t.Errorf("normalizeCRLF = %q", string(out))
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed {
		t.Error("expected no changes for plain content")
	}
	if string(out) != "plain" {
		t.Errorf("content altered: %q", string(out))
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Errorf("removeBOM = %q, had=%v", string(out), had)
	}

	out, had = removeBOM([]byte("xy"))
	if had || string(out) != "xy" {
		t.Errorf("short content mangled: %q, had=%v", string(out), had)
	}
}
