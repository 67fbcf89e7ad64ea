// Package ingest provides shared front-end helpers for the constraint and
// timing enrichment passes: bounded concurrent file reads and struct
// validation of the records each parser produces. The graph mutation
// itself stays strictly sequential through the field-source Updater —
// concurrency here is confined to I/O (spec §5).
package ingest

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// FileContent pairs a source path with its bytes, in the order the caller
// originally listed it.
type FileContent struct {
	Path    string
	Content []byte
}

// ReadFiles reads every path in paths concurrently, bounded by maxWorkers,
// and returns the results in the same order paths were given (not
// completion order). A read failure for any one file aborts the whole
// batch and returns that error (spec §7: a missing input file for an
// enrichment stage is reported by the caller as a warning, not here —
// ReadFiles itself surfaces the raw I/O error so the caller can decide).
func ReadFiles(ctx context.Context, paths []string, maxWorkers int) ([]FileContent, error) {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	results := make([]FileContent, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			content, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("ingest: read %s: %w", p, err)
			}
			results[i] = FileContent{Path: p, Content: content}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadFilesBestEffort behaves like ReadFiles but never aborts the batch: a
// missing or unreadable file is simply omitted from the result, and its
// path/error pair is returned separately for the caller to log as a
// diagnostics warning (spec §7's "missing input file" case).
func ReadFilesBestEffort(ctx context.Context, paths []string, maxWorkers int) ([]FileContent, map[string]error) {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}

	type slot struct {
		content FileContent
		err     error
		ok      bool
	}
	slots := make([]slot, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			default:
			}
			content, err := os.ReadFile(p)
			if err != nil {
				slots[i] = slot{err: err}
				return nil
			}
			slots[i] = slot{content: FileContent{Path: p, Content: content}, ok: true}
			return nil
		})
	}
	g.Wait()

	var out []FileContent
	errs := map[string]error{}
	for i, s := range slots {
		if s.ok {
			out = append(out, s.content)
		} else if s.err != nil {
			errs[paths[i]] = s.err
		}
	}
	return out, errs
}
