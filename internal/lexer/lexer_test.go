package lexer

import (
	"testing"

	"prism/internal/diag"
	"prism/internal/source"
	"prism/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pr", []byte(src))
	bag := diag.NewBag(32)
	toks := Tokenize(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks, bag := tokenize(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", src, bag.Items())
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q token %d: got %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestTokenizeStatements(t *testing.T) {
	expectKinds(t, "type Point = { x: number }",
		token.KwType, token.Ident, token.Assign, token.LBrace,
		token.Ident, token.Colon, token.Ident, token.RBrace)

	expectKinds(t, "enum Color { Red, Green = 5 }",
		token.KwEnum, token.Ident, token.LBrace, token.Ident, token.Comma,
		token.Ident, token.Assign, token.NumberLit, token.RBrace)

	expectKinds(t, "let x: string", token.KwLet, token.Ident, token.Colon, token.Ident)

	expectKinds(t, "delete p.x", token.KwDelete, token.Ident, token.Dot, token.Ident)
}

func TestTokenizeOperators(t *testing.T) {
	expectKinds(t, "assert A <: B", token.KwAssert, token.Ident, token.Subtype, token.Ident)
	expectKinds(t, "assert A == B", token.KwAssert, token.Ident, token.EqEq, token.Ident)
	expectKinds(t, "A < B > C", token.Ident, token.Lt, token.Ident, token.Gt, token.Ident)
	expectKinds(t, "(A, B) => C",
		token.LParen, token.Ident, token.Comma, token.Ident, token.RParen,
		token.FatArrow, token.Ident)
	expectKinds(t, "A | B & C", token.Ident, token.Pipe, token.Ident, token.Amp, token.Ident)
	expectKinds(t, "-? +?", token.Minus, token.Question, token.Plus, token.Question)
}

func TestTokenizeKeywords(t *testing.T) {
	expectKinds(t, "keyof T extends infer R ? true : false",
		token.KwKeyof, token.Ident, token.KwExtends, token.KwInfer, token.Ident,
		token.Question, token.KwTrue, token.Colon, token.KwFalse)

	expectKinds(t, "readonly in", token.KwReadonly, token.KwIn)

	// Builtin type names are plain identifiers.
	expectKinds(t, "string number never", token.Ident, token.Ident, token.Ident)
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.25", "3.25"},
		{"1e9", "1e9"},
		{"2.5e-3", "2.5e-3"},
		{"1_000", "1_000"},
	}
	for _, tt := range tests {
		toks, bag := tokenize(t, tt.src)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics %v", tt.src, bag.Items())
			continue
		}
		if toks[0].Kind != token.NumberLit || toks[0].Text != tt.text {
			t.Errorf("%q: got %v %q", tt.src, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestTokenizeBadNumbers(t *testing.T) {
	for _, src := range []string{"1x", "3foo", "1e", "1e+"} {
		_, bag := tokenize(t, src)
		if !bag.HasErrors() {
			t.Errorf("%q: expected LexBadNumber", src)
			continue
		}
		if bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: got code %v", src, bag.Items()[0].Code)
		}
	}
}

func TestTokenizeStrings(t *testing.T) {
	toks, bag := tokenize(t, `"hello" "with \"escape\""`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Text != `"hello"` {
		t.Errorf("first string: %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.StringLit || toks[1].Text != `"with \"escape\""` {
		t.Errorf("second string: %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	for _, src := range []string{`"open`, "\"line\nbreak\""} {
		_, bag := tokenize(t, src)
		found := false
		for _, d := range bag.Items() {
			if d.Code == diag.LexUnterminatedString {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: expected LexUnterminatedString, got %v", src, bag.Items())
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, bag := tokenize(t, "// line comment\ntype /* block */ T = string")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	got := kinds(toks)
	want := []token.Kind{token.KwType, token.Ident, token.Assign, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Leading trivia on the first token includes the line comment.
	hasComment := false
	for _, tr := range toks[0].Leading {
		if tr.Kind == token.TriviaLineComment {
			hasComment = true
		}
	}
	if !hasComment {
		t.Error("expected line comment in leading trivia")
	}
}

func TestTokenizeNestedBlockComment(t *testing.T) {
	_, bag := tokenize(t, "/* outer /* inner */ still outer */ type")
	if bag.HasErrors() {
		t.Fatalf("nested block comment should lex cleanly: %v", bag.Items())
	}

	_, bag = tokenize(t, "/* never closed")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedBlockComment {
			found = true
		}
	}
	if !found {
		t.Error("expected LexUnterminatedBlockComment")
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	_, bag := tokenize(t, "let @ x")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("expected LexUnknownChar, got %v", bag.Items())
	}
}

func TestTokenizeUnicodeIdent(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"let café: string", "café"},    // ASCII start, Unicode continuation
		{"let Δx: string", "Δx"},        // Unicode start, ASCII continuation
		{"let naïveté2: string", "naïveté2"},
		{"let приветmir: string", "приветmir"},
	}
	for _, tc := range cases {
		toks, bag := tokenize(t, tc.src)
		if bag.HasErrors() {
			t.Fatalf("%s: unexpected diagnostics: %v", tc.src, bag.Items())
		}
		if toks[1].Kind != token.Ident || toks[1].Text != tc.want {
			t.Errorf("%s: got %v %q, want Ident %q", tc.src, toks[1].Kind, toks[1].Text, tc.want)
		}
		if toks[2].Kind != token.Colon {
			t.Errorf("%s: identifier split, next token is %v %q", tc.src, toks[2].Kind, toks[2].Text)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pr", []byte("type T"))
	lx := New(fs.Get(id), Options{})

	p1 := lx.Peek()
	p2 := lx.Peek()
	if p1.Kind != p2.Kind || p1.Span != p2.Span {
		t.Fatal("Peek is not idempotent")
	}
	n := lx.Next()
	if n.Kind != p1.Kind {
		t.Fatal("Next after Peek returned a different token")
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("expected Ident after 'type'")
	}
}

func TestSpansCoverSource(t *testing.T) {
	src := "let name: string"
	toks, _ := tokenize(t, src)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		if int(tok.Span.End) > len(src) || tok.Span.Start > tok.Span.End {
			t.Fatalf("bad span %v for %q", tok.Span, tok.Text)
		}
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span text %q != token text %q", got, tok.Text)
		}
	}
}
