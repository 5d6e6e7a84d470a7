package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/ast"
	"prism/internal/diagfmt"
	"prism/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pr",
	Short: "Parse a prism source file and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	if err := ast.Fprint(os.Stdout, result.AST); err != nil {
		return err
	}

	if result.Bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("parse failed")
	}
	return nil
}
