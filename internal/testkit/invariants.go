package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"prism/internal/ast"
	"prism/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every statement span is non-empty and within file content bounds
// 2) statement spans belong to the file that was parsed
// 3) file.Span() covers the union of statement spans (if any exist)
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	if f.FileID != sf.ID {
		return fmt.Errorf("ast file id mismatch: got=%d want=%d", f.FileID, sf.ID)
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var union source.Span
	var haveStmt bool
	for i, stmt := range f.Stmts {
		sp := stmt.Span()
		if sp.End <= sp.Start {
			return fmt.Errorf("stmt %d has empty span: %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("stmt %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("stmt %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if !haveStmt {
			union = sp
			haveStmt = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveStmt {
		fileSpan := f.Span()
		if union.Start < fileSpan.Start || union.End > fileSpan.End {
			return fmt.Errorf("file span %v does not cover union of statements %v", fileSpan, union)
		}
	}
	return nil
}
