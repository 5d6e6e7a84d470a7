package diagfmt

import (
	"fmt"
	"io"

	"prism/internal/diag"
	"prism/internal/source"
)

// Short writes the stable one-line-per-diagnostic format used by golden tests
// and scripting consumers.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) {
	out := diag.FormatGoldenDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return
	}
	fmt.Fprintln(w, out)
}
