package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/lexer"
	"isl/internal/parser"
	"isl/internal/source"
)

// DirResult holds the outcome for one file of a directory parse.
type DirResult struct {
	// Path is relative to the walked directory root.
	Path   string
	FileID source.FileID
	Domain *ast.Domain
	Bag    *diag.Bag
	OK     bool
	// Cached is true when the outcome was restored from the disk cache
	// instead of reparsing; Domain is nil in that case.
	Cached bool
}

// listSpecFiles returns every *.isl file under dir, sorted for
// deterministic result order.
func listSpecFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".isl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.isl file under dir, running jobs files in
// parallel (jobs <= 0 selects GOMAXPROCS). Results come back indexed in
// sorted path order regardless of completion order. When opts.Cache is
// set, files whose content hash has a stored outcome are not reparsed.
func ParseDir(ctx context.Context, dir string, jobs int, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := listSpecFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload sequentially; the FileSet is not written to after this.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one slot; no mutex needed.
	results := make([]DirResult, len(files))

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

			rel := relTo(dir, path)
			bag := diag.NewBag(opts.MaxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOReadError,
					Message:  "failed to read file: " + loadErr.Error(),
				})
				results[i] = DirResult{Path: rel, Bag: bag}
				return nil
			}

			id := fileIDs[path]
			file := fileSet.Get(id)

			if opts.Cache != nil {
				var payload DiskPayload
				if hit, _ := opts.Cache.Get(file.Hash, &payload); hit {
					results[i] = DirResult{
						Path:   rel,
						FileID: id,
						Bag:    payload.restoreBag(opts.MaxDiagnostics, id),
						OK:     payload.OK,
						Cached: true,
					}
					return nil
				}
			}

			rep := &diag.BagReporter{Bag: bag}
			toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: rep, Limits: opts.Limits})
			res := DirResult{Path: rel, FileID: id, Bag: bag}
			if lerr != nil {
				reportLimit(bag, lerr, source.Span{File: id})
				results[i] = res
				return nil
			}

			res.Domain = parser.Parse(toks, parser.Options{Reporter: rep, MaxDepth: opts.MaxDepth})
			res.OK = !bag.HasErrors()
			results[i] = res

			if opts.Cache != nil {
				// Best effort; a failed write never fails the parse.
				_ = opts.Cache.Put(file.Hash, payloadOf(&res))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func relTo(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
