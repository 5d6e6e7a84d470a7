package driver

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"prism/internal/diag"
	"prism/internal/source"
)

type atomicCounter struct {
	n atomic.Int64
}

func (c *atomicCounter) inc() int {
	return int(c.n.Add(1))
}

// ProgressFunc is invoked after each file finishes during a directory check.
// Calls may arrive from multiple goroutines.
type ProgressFunc func(path string, done, total int, result *CheckResult)

// ListFiles returns the sorted list of *.pr files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".pr") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// deterministic order regardless of walk scheduling
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.pr file under dir in parallel. Results are returned
// in sorted path order; progress, when non-nil, observes completion as it
// happens.
func CheckDir(ctx context.Context, dir string, opts CheckOptions, progress ProgressFunc) (*source.FileSet, []*CheckResult, error) {
	opts.normalize()

	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially: FileSet is not safe for concurrent mutation.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// one slot per file, so no mutex is needed for results
	results := make([]*CheckResult, len(files))
	var done atomicCounter

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				code := diag.IOReadError
				msg := "failed to load file: " + loadErr.Error()
				if errors.Is(loadErr, fs.ErrNotExist) {
					code = diag.IOFileNotFound
					msg = "file not found: " + path
				}
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     code,
					Message:  msg,
				})
				results[i] = &CheckResult{Path: path, Bag: bag}
			} else {
				results[i] = checkLoaded(fileSet, fileIDs[path], path, &opts)
			}

			if progress != nil {
				progress(path, done.inc(), len(files), results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
