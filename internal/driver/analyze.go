// Package driver runs the analyser over files on disk: loading, parallel
// parsing, declaration collection and per-file binding with an optional
// disk cache of results.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"semcore/internal/diag"
	"semcore/internal/observ"
	"semcore/internal/project"
	"semcore/internal/semantic"
	"semcore/internal/source"
	"semcore/internal/syntax"
	"semcore/internal/trace"
)

type Options struct {
	MaxDiagnostics int
	Jobs           int // 0 means GOMAXPROCS
	Tracer         trace.Tracer
	Cache          *DiskCache
	Timer          *observ.Timer
	Observer       Observer
}

func (o Options) jobs(n int) int {
	j := o.Jobs
	if j <= 0 {
		j = runtime.GOMAXPROCS(0)
	}
	return max(1, min(j, n))
}

type FileResult struct {
	File        *source.File
	Tree        *syntax.Tree
	Diagnostics []diag.Diagnostic // parse, declaration and binding, by position
	Cached      bool
}

type Result struct {
	Files       *source.FileSet
	Compilation *semantic.Compilation
	Results     []FileResult
	// Load holds diagnostics for files that could not be read.
	Load *diag.Bag
}

// HasErrors reports whether any file or load diagnostic is an error.
func (r *Result) HasErrors() bool {
	if r.Load.HasErrors() {
		return true
	}
	for _, fr := range r.Results {
		for _, d := range fr.Diagnostics {
			if d.Severity == diag.SevError {
				return true
			}
		}
	}
	return false
}

// AnalyzeDir analyses every source file below dir.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	paths, err := project.Walk(dir)
	if err != nil {
		return nil, err
	}
	return Analyze(ctx, paths, opts)
}

// Compile loads and parses paths and collects their declarations into one
// compilation. Results carry trees and parse diagnostics; nothing is bound.
func Compile(ctx context.Context, paths []string, opts Options) (*Result, error) {
	opts = opts.withDefaults(ctx)
	res, _, err := compile(ctx, paths, opts)
	return res, err
}

func (o Options) withDefaults(ctx context.Context) Options {
	if o.Timer == nil {
		o.Timer = observ.NewTimer()
	}
	if o.Tracer == nil {
		o.Tracer = trace.FromContext(ctx)
	}
	return o
}

func compile(ctx context.Context, paths []string, opts Options) (*Result, []*diag.Bag, error) {
	for _, p := range paths {
		opts.Observer.emit(Event{File: p, Status: StatusQueued})
	}

	res := &Result{Load: diag.NewBag(opts.MaxDiagnostics)}
	phase := opts.Timer.Begin("load")
	fs, files, err := Load(paths, res.Load, opts.Observer)
	opts.Timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, nil, err
	}
	res.Files = fs

	phase = opts.Timer.Begin("parse")
	trees, parseBags, err := ParseAll(ctx, files, opts)
	opts.Timer.End(phase, "")
	if err != nil {
		return nil, nil, err
	}

	phase = opts.Timer.Begin("collect")
	res.Compilation = semantic.New(fs, trees, semantic.Options{
		Tracer:         opts.Tracer,
		MaxDiagnostics: opts.MaxDiagnostics,
		Jobs:           1,
	})
	opts.Timer.End(phase, "")

	res.Results = make([]FileResult, len(files))
	for i, file := range files {
		res.Results[i] = FileResult{File: file, Tree: trees[i], Diagnostics: parseBags[i].Items()}
	}
	return res, parseBags, nil
}

// Analyze compiles paths and computes each file's diagnostics. Files whose
// summary is in opts.Cache are not bound.
func Analyze(ctx context.Context, paths []string, opts Options) (*Result, error) {
	opts = opts.withDefaults(ctx)
	span := trace.Begin(opts.Tracer, trace.ScopeDriver, "analyze", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)
	span.WithExtra("files", strconv.Itoa(len(paths)))

	res, parseBags, err := compile(ctx, paths, opts)
	if err != nil {
		return nil, err
	}

	phase := opts.Timer.Begin("bind")
	files := make([]*source.File, len(res.Results))
	for i, fr := range res.Results {
		files[i] = fr.File
	}
	snapshot := snapshotDigest(files)
	hitFlags := make([]bool, len(res.Results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(res.Results)))
	for i := range res.Results {
		fr := &res.Results[i]
		g.Go(func() error {
			started := time.Now()
			path := fr.File.Path
			opts.Observer.emit(Event{File: path, Stage: StageBind, Status: StatusWorking})
			ds, cached, err := analyzeFile(gctx, res.Compilation, fr.Tree, snapshot, opts)
			if err != nil {
				opts.Observer.emit(Event{File: path, Stage: StageBind, Status: StatusError})
				return fmt.Errorf("%s: %w", path, err)
			}
			bag := diag.NewBag(0)
			for _, d := range parseBags[i].Items() {
				bag.Add(d)
			}
			for _, d := range ds {
				bag.Add(d)
			}
			bag.Sort()
			fr.Diagnostics = bag.Items()
			fr.Cached = cached
			hitFlags[i] = cached

			status := StatusDone
			if cached {
				status = StatusCached
			}
			if bag.HasErrors() {
				status = StatusError
			}
			opts.Observer.emit(Event{File: path, Stage: StageBind, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}
	err = g.Wait()
	var hits int
	for _, hit := range hitFlags {
		if hit {
			hits++
		}
	}
	opts.Timer.End(phase, fmt.Sprintf("%d cached", hits))
	span.WithExtra("cached", strconv.Itoa(hits))
	if err != nil {
		return nil, err
	}
	return res, nil
}

func analyzeFile(ctx context.Context, c *semantic.Compilation, tree *syntax.Tree, snapshot project.Digest, opts Options) ([]diag.Diagnostic, bool, error) {
	var key project.Digest
	if opts.Cache != nil {
		key = fileKey(tree.File, snapshot, opts)
		s, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			log.Warnf("cache read for %s: %v", tree.File.Path, err)
		case ok:
			log.Debugf("cache hit for %s", tree.File.Path)
			trace.Point(opts.Tracer, trace.ScopeModule, "cache-hit", tree.File.Path, trace.CurrentSpan(ctx).SpanID)
			return s.restore(c.Files(), tree.File.ID), true, nil
		}
	}

	span := trace.Begin(opts.Tracer, trace.ScopeModule, "file:"+tree.File.Path, trace.CurrentSpan(ctx).SpanID)
	ds, err := c.Model(tree).Diagnostics(trace.WithSpan(ctx, span))
	span.End("")
	if err != nil {
		return nil, false, err
	}
	if opts.Cache != nil {
		roots := len(c.Table().Roots(tree))
		if err := opts.Cache.Put(key, summarize(c.Files(), tree.File.Path, roots, ds)); err != nil {
			log.Warnf("cache write for %s: %v", tree.File.Path, err)
		}
	}
	return ds, false, nil
}
