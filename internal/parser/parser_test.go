package parser

import (
	"strings"
	"testing"

	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/lexer"
	"prism/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pr", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := ParseFile(file, lx, Options{Reporter: reporter})
	return res.File, bag
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "type alias object",
			src:  "type Point = { x: number, y: number }",
			want: `TypeDecl Point
  Object
    Prop x
      Name number
    Prop y
      Name number
`,
		},
		{
			name: "generic alias",
			src:  "type Pair<T, U> = { first: T, second: U }",
			want: `TypeDecl Pair<T, U>
  Object
    Prop first
      Name T
    Prop second
      Name U
`,
		},
		{
			name: "constrained parameter",
			src:  "type Get<T extends string> = T",
			want: `TypeDecl Get<T>
  Constraint T
    Name string
  Name T
`,
		},
		{
			name: "conditional with infer",
			src:  "type Elem<T> = T extends (infer E)[] ? E : never",
			want: `TypeDecl Elem<T>
  Cond
    Name T
    Extends
      Array
        Infer E
    Then
      Name E
    Else
      Name never
`,
		},
		{
			name: "union and intersection precedence",
			src:  "type T = A & B | C",
			want: `TypeDecl T
  Union
    Intersection
      Name A
      Name B
    Name C
`,
		},
		{
			name: "keyof and indexed access",
			src:  "type K = keyof Point[\"x\"]",
			want: `TypeDecl K
  Keyof
    Index
      Name Point
      Literal "x"
`,
		},
		{
			name: "function type",
			src:  "type F = (string, number) => boolean",
			want: `TypeDecl F
  Func
    Param
      Name string
    Param
      Name number
    Result
      Name boolean
`,
		},
		{
			name: "single param function needs arrow after paren",
			src:  "type F = (string) => void",
			want: `TypeDecl F
  Func
    Param
      Name string
    Result
      Name void
`,
		},
		{
			name: "tuple",
			src:  "type T = [string, number]",
			want: `TypeDecl T
  Tuple
    Name string
    Name number
`,
		},
		{
			name: "mapped type with modifiers",
			src:  "type RO<T> = { readonly [K in keyof T]?: T[K] }",
			want: `TypeDecl RO<T>
  Mapped [K in ...] +readonly +?
    Keyof
      Name T
    Index
      Name T
      Name K
`,
		},
		{
			name: "mapped type removing modifiers",
			src:  "type RW<T> = { -readonly [K in keyof T]-?: T[K] }",
			want: `TypeDecl RW<T>
  Mapped [K in ...] -readonly -?
    Keyof
      Name T
    Index
      Name T
      Name K
`,
		},
		{
			name: "enum with explicit values",
			src:  "enum Color { Red, Green = 5, Blue }",
			want: `EnumDecl Color
  Member Red
  Member Green = 5
  Member Blue
`,
		},
		{
			name: "let and assignment",
			src:  "let p: Point\np = q",
			want: `LetDecl p
  Name Point
Assign p
  Name q
`,
		},
		{
			name: "assignment from enum member",
			src:  "c = Color.Red",
			want: `Assign c
  Member Color.Red
`,
		},
		{
			name: "delete statement",
			src:  "delete p.x",
			want: `Delete p.x
`,
		},
		{
			name: "assert forms",
			src:  "assert Point <: { x: number }\nassert IsString<string> == true",
			want: `Assert <:
  Name Point
  Object
    Prop x
      Name number
Assert ==
  Apply IsString
    Name string
  Literal true
`,
		},
		{
			name: "readonly object property",
			src:  "type T = { readonly a: string, b?: number }",
			want: `TypeDecl T
  Object
    Prop readonly a
      Name string
    Prop b?
      Name number
`,
		},
		{
			name: "negative literal type",
			src:  "type T = -1 | 0 | 1",
			want: `TypeDecl T
  Union
    Literal -1
    Literal 0
    Literal 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, bag := parseSource(t, tt.src)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			got := ast.Dump(file)
			if got != tt.want {
				t.Errorf("dump mismatch:\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing type after equals", "type T =", diag.SynExpectType},
		{"missing identifier", "type = string", diag.SynExpectIdentifier},
		{"unclosed generic args", "type T = Pair<A, B", diag.SynUnclosedDelimiter},
		{"unclosed object", "type T = { a: string", diag.SynUnclosedDelimiter},
		{"duplicate property", "type T = { a: string, a: number }", diag.SynDuplicateProperty},
		{"missing colon in let", "let x string", diag.SynExpectColon},
		{"bad enum value", "enum E { A = \"s\" }", diag.SynBadEnumMember},
		{"bad assert operator", "assert A = B", diag.SynUnexpectedToken},
		{"statement expected", "| string", diag.SynExpectStatement},
		{"bad mapped modifier", "type T = { -foo [K in E]: V }", diag.SynBadMappedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatal("expected a parse error")
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected code %s in %v", tt.code.ID(), bag.Items())
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	src := "type = broken\nlet x: string\n"
	file, bag := parseSource(t, src)

	if !bag.HasErrors() {
		t.Fatal("expected an error for the broken declaration")
	}
	if len(file.Stmts) != 1 {
		t.Fatalf("expected 1 recovered statement, got %d", len(file.Stmts))
	}
	if _, ok := file.Stmts[0].(*ast.LetDecl); !ok {
		t.Errorf("recovered statement is %T, want *ast.LetDecl", file.Stmts[0])
	}
}

func TestParseMaxErrors(t *testing.T) {
	bagCap := 64
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.pr", []byte("type = 1\ntype = 2\ntype = 3\n"))
	file := fs.Get(id)

	bag := diag.NewBag(bagCap)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	ParseFile(file, lx, Options{Reporter: reporter, MaxErrors: 2})

	if bag.Len() > 2 {
		t.Errorf("bag has %d diagnostics, want at most 2", bag.Len())
	}
}

func TestParseSemicolonsOptional(t *testing.T) {
	withSemis := "let a: string;\nlet b: number;\n"
	without := "let a: string\nlet b: number\n"

	f1, bag1 := parseSource(t, withSemis)
	f2, bag2 := parseSource(t, without)
	if bag1.HasErrors() || bag2.HasErrors() {
		t.Fatalf("unexpected errors: %v / %v", bag1.Items(), bag2.Items())
	}
	if ast.Dump(f1) != ast.Dump(f2) {
		t.Error("semicolon and newline separated files should parse identically")
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"plain"`, "plain"},
		{`"with \"quotes\""`, `with "quotes"`},
		{`"tab\there"`, "tab\there"},
		{`"back\\slash"`, `back\slash`},
	}
	for _, tt := range tests {
		if got := unquote(tt.in); got != tt.want {
			t.Errorf("unquote(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDumpStability(t *testing.T) {
	src := "type T = { a: (string, number) => boolean[] }"
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	d1 := ast.Dump(file)
	d2 := ast.Dump(file)
	if d1 != d2 {
		t.Error("Dump is not deterministic")
	}
	if !strings.Contains(d1, "Func") || !strings.Contains(d1, "Array") {
		t.Errorf("dump missing expected nodes:\n%s", d1)
	}
}
