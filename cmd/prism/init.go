package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"prism/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new prism project",
	Long: `Initialize a new prism project by creating a project manifest (prism.toml)
and an example source file (main.pr). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, "prism.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(project.StarterManifest), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.pr")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(exampleSource()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.pr: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized prism project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - prism.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - main.pr\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - main.pr (existing)\n")
	}
	return nil
}

func exampleSource() string {
	return `// Prism example: structural subtyping in action.
// Run 'prism check main.pr' to verify the assertions below.

type Point = { x: number, y: number }
type Labeled = Point & { label: string }

// width subtyping: the labeled point can stand in for a plain one
assert Labeled <: Point

type Keys = keyof Point
assert Keys == "x" | "y"

enum Color { Red, Green = 5, Blue }
let favorite: Color
favorite = Color.Blue

type Elem<T> = T extends (infer E)[] ? E : never
assert Elem<string[]> == string
`
}
