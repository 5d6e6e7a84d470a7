package driver

import (
	"prism/internal/ast"
	"prism/internal/diag"
	"prism/internal/lexer"
	"prism/internal/parser"
	"prism/internal/source"
)

// ParseResult carries the syntax tree of one file.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Bag     *diag.Bag
}

// Parse loads and parses a single file without running the checker.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(file, lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: uint(maxDiagnostics),
	})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		AST:     parsed.File,
		Bag:     bag,
	}, nil
}
