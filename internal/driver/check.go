package driver

import (
	"prism/internal/diag"
	"prism/internal/lexer"
	"prism/internal/parser"
	"prism/internal/project"
	"prism/internal/sema"
	"prism/internal/source"
	"prism/internal/token"
	"prism/internal/types"
)

// Stages selects which phases of a check run.
type Stages uint8

const (
	StageLex Stages = 1 << iota
	StageParse
	StageSema
)

// StagesAll runs the full pipeline.
const StagesAll = StageLex | StageParse | StageSema

// CheckOptions configure a check run.
type CheckOptions struct {
	MaxDiagnostics int
	MaxDepth       int
	Jobs           int
	Stages         Stages
	Cache          *DiskCache
	Config         project.Config
}

func (o *CheckOptions) normalize() {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = o.Config.Check.MaxDepth
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = sema.DefaultMaxDepth
	}
	if o.Stages == 0 {
		o.Stages = StagesAll
	}
}

// CheckResult is the outcome of checking a single file.
type CheckResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	Types     *types.Interner
	Env       *sema.Env
	FromCache bool
}

// HasErrors reports whether the run produced error diagnostics.
func (r *CheckResult) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// Check loads and checks a single file.
func Check(path string, opts CheckOptions) (*source.FileSet, *CheckResult, error) {
	opts.normalize()

	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}

	res := checkLoaded(fs, fileID, path, &opts)
	return fs, res, nil
}

// checkLoaded runs the pipeline over an already loaded file, consulting the
// disk cache first.
func checkLoaded(fs *source.FileSet, fileID source.FileID, path string, opts *CheckOptions) *CheckResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &CheckResult{Path: path, FileID: fileID, Bag: bag}

	key := cacheKey(file, opts)
	if opts.Cache != nil && opts.Stages == StagesAll {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			restoreDiagnostics(bag, &payload, fileID)
			res.FromCache = true
			return res
		}
	}

	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	if opts.Stages == StageLex {
		drain(lx)
		return res
	}

	parsed := parser.ParseFile(file, lx, parser.Options{
		Reporter:  reporter,
		MaxErrors: uint(opts.MaxDiagnostics),
	})

	if opts.Stages&StageSema != 0 {
		out := sema.Check(parsed.File, sema.Options{
			Reporter: reporter,
			MaxDepth: opts.MaxDepth,
		})
		res.Types = out.Types
		res.Env = out.Env
	}

	bag.Sort()

	if opts.Cache != nil && opts.Stages == StagesAll {
		// cache misses are not fatal, the next run simply rechecks
		_ = opts.Cache.Put(key, buildPayload(file, bag))
	}
	return res
}

func drain(lx *lexer.Lexer) {
	for lx.Next().Kind != token.EOF {
	}
}

// cacheKey mixes the file content hash with the configuration that affects
// diagnostics.
func cacheKey(file *source.File, opts *CheckOptions) project.Digest {
	var cfg project.Digest
	cfg[0] = byte(opts.MaxDepth)
	cfg[1] = byte(opts.MaxDepth >> 8)
	cfg[2] = byte(opts.MaxDiagnostics)
	cfg[3] = byte(opts.MaxDiagnostics >> 8)
	return project.Combine(file.Hash, cfg)
}
