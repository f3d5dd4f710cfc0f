package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"semcore/internal/diag"
	"semcore/internal/parser"
	"semcore/internal/source"
	"semcore/internal/syntax"
)

// ParseAll parses files concurrently. Trees and bags are returned in the
// order of files.
func ParseAll(ctx context.Context, files []*source.File, opts Options) ([]*syntax.Tree, []*diag.Bag, error) {
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, nil, fmt.Errorf("max diagnostics: %w", err)
	}
	trees := make([]*syntax.Tree, len(files))
	bags := make([]*diag.Bag, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(files)))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Observer.emit(Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
			bags[i] = diag.NewBag(opts.MaxDiagnostics)
			trees[i] = parser.ParseFile(file, parser.Options{
				Reporter:  diag.BagReporter{Bag: bags[i]},
				MaxErrors: maxErrors,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return trees, bags, nil
}
