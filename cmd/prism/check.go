package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prism/internal/diag"
	"prism/internal/diagfmt"
	"prism/internal/driver"
	"prism/internal/project"
	"prism/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.pr|directory",
	Short: "Type-check prism source files",
	Long: `Check runs the lexer, parser, and type checker over a file or over every
*.pr file under a directory. Directory runs execute in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().String("stages", "all", "pipeline stages to run (lex|parse|all)")
	checkCmd.Flags().Int("max-depth", 0, "type expansion depth limit (0 uses prism.toml or the default)")
	checkCmd.Flags().Int("jobs", 0, "parallel workers for directory checks (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-warnings", false, "drop warning diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("no-cache", false, "bypass the on-disk result cache")
	checkCmd.Flags().Bool("ui", false, "interactive progress display for directory checks")
}

type checkSettings struct {
	format   string
	stages   driver.Stages
	opts     driver.CheckOptions
	policy   warningPolicy
	useUI    bool
	colorize bool
}

type warningPolicy struct {
	drop    bool
	asError bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot stat %q: %w", target, err)
	}

	settings, err := resolveCheckSettings(cmd, target, st.IsDir())
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []*driver.CheckResult
	)
	if st.IsDir() {
		fs, results, err = runDirectoryCheck(cmd.Context(), target, settings)
	} else {
		var res *driver.CheckResult
		fs, res, err = driver.Check(target, settings.opts)
		if res != nil {
			results = []*driver.CheckResult{res}
		}
	}
	if err != nil {
		return err
	}

	merged := diag.NewBag(settings.opts.MaxDiagnostics)
	for _, res := range results {
		merged.Merge(res.Bag)
	}
	applyWarningPolicy(merged, settings.policy)
	merged.Sort()

	if err := emitDiagnostics(cmd, merged, fs, settings); err != nil {
		return err
	}

	if merged.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("check failed")
	}
	return nil
}

func resolveCheckSettings(cmd *cobra.Command, target string, isDir bool) (checkSettings, error) {
	var s checkSettings

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty", "json", "short":
		s.format = format
	default:
		return s, fmt.Errorf("unknown format: %s", format)
	}

	stages, _ := cmd.Flags().GetString("stages")
	switch stages {
	case "lex":
		s.stages = driver.StageLex
	case "parse":
		s.stages = driver.StageLex | driver.StageParse
	case "all":
		s.stages = driver.StagesAll
	default:
		return s, fmt.Errorf("unknown stages: %s", stages)
	}

	startDir := target
	if !isDir {
		startDir = "."
	}
	cfg := project.DefaultConfig()
	if manifest, ok, err := project.LoadManifest(startDir); err != nil {
		return s, err
	} else if ok {
		cfg = manifest.Config
	}

	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	jobs, _ := cmd.Flags().GetInt("jobs")

	s.policy.drop = cfg.Check.NoWarnings
	s.policy.asError = cfg.Check.WarningsAsErrors
	if cmd.Flags().Changed("no-warnings") {
		s.policy.drop, _ = cmd.Flags().GetBool("no-warnings")
	}
	if cmd.Flags().Changed("warnings-as-errors") {
		s.policy.asError, _ = cmd.Flags().GetBool("warnings-as-errors")
	}

	s.opts = driver.CheckOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		MaxDepth:       maxDepth,
		Jobs:           jobs,
		Stages:         s.stages,
		Config:         cfg,
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	if cfg.Cache.Enabled && !noCache {
		cache, err := driver.OpenDiskCache("prism", cfg.Cache.Dir)
		if err == nil {
			s.opts.Cache = cache
		}
		// a broken cache dir silently degrades to uncached checks
	}

	s.useUI, _ = cmd.Flags().GetBool("ui")
	s.colorize = useColor(cmd, os.Stdout)
	return s, nil
}

// applyWarningPolicy rewrites severities in place per the configured policy.
func applyWarningPolicy(bag *diag.Bag, policy warningPolicy) {
	if !policy.drop && !policy.asError {
		return
	}
	items := bag.Items()
	kept := items[:0]
	for _, d := range items {
		if d.Severity == diag.SevWarning {
			if policy.drop {
				continue
			}
			d.Severity = diag.SevError
		}
		kept = append(kept, d)
	}
	bag.Truncate(len(kept))
}

func emitDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, s checkSettings) error {
	switch s.format {
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	case "short":
		diagfmt.Short(os.Stdout, bag, fs, false)
		return nil
	default:
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     s.colorize,
			Context:   2,
			ShowNotes: true,
		})
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet && !bag.HasErrors() {
			fmt.Fprintln(os.Stdout, "no type errors")
		}
		return nil
	}
}

func runDirectoryCheck(ctx context.Context, dir string, s checkSettings) (*source.FileSet, []*driver.CheckResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.useUI {
		return runCheckWithUI(ctx, dir, s.opts)
	}
	return driver.CheckDir(ctx, dir, s.opts, nil)
}
