package broker

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/Rubric/internal/store"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// FileResult is the outcome of grading one file. Err is set when the file
// could not be loaded or the report could not be archived.
type FileResult struct {
	Path   string
	Record *store.ReportRecord
	Err    error
}

// GradeFiles loads and grades each path, keeping results in input order. A
// file that fails to load does not stop the others; only cancellation of ctx
// returns an error.
func (b *Broker) GradeFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cap(b.sem))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = b.gradeFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (b *Broker) gradeFile(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	wb, err := workbook.Load(path, b.names)
	if err != nil {
		b.logger.Warn("failed to load workbook", "path", filepath.Base(path), "error", err)
		res.Err = err
		return res
	}
	res.Record, res.Err = b.Submit(ctx, SourceCLI, wb)
	return res
}
