// Package semantic answers semantic questions about syntax nodes of an
// immutable compilation snapshot. Answers are computed on first request
// and memoized; a Compilation may be queried from many goroutines.
package semantic

import (
	"errors"
	"sync"

	"semcore/internal/binder"
	"semcore/internal/diag"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/trace"
)

// ErrNotExpression is returned for nodes that carry no expression facts.
var ErrNotExpression = errors.New("node is not a bound expression")

// Options configure a Compilation.
type Options struct {
	// Reporter receives each binding root's diagnostics once per snapshot,
	// when the root is first bound.
	Reporter       diag.Reporter
	Tracer         trace.Tracer
	MaxDiagnostics int
	Jobs           int // parallel roots in Model.Diagnostics; 0 means GOMAXPROCS
}

// Compilation is one snapshot: the trees, the declaration table built from
// them and the per-tree models. A new snapshot is a new Compilation.
type Compilation struct {
	files  *source.FileSet
	trees  []*syntax.Tree
	table  *symbols.Table
	binder *binder.Binder
	decls  *diag.Bag
	opts   Options
	models sync.Map // *syntax.Tree -> *Model
}

// New collects the declarations of trees and prepares an empty cache.
func New(files *source.FileSet, trees []*syntax.Tree, opts Options) *Compilation {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	decls := diag.NewBag(opts.MaxDiagnostics)
	span := trace.Begin(opts.Tracer, trace.ScopePass, "collect", 0)
	table := symbols.Collect(trees, symbols.Options{Reporter: diag.BagReporter{Bag: decls}})
	span.End("")
	return &Compilation{
		files:  files,
		trees:  trees,
		table:  table,
		binder: binder.New(table, binder.Options{Tracer: opts.Tracer}),
		decls:  decls,
		opts:   opts,
	}
}

func (c *Compilation) Files() *source.FileSet { return c.files }
func (c *Compilation) Trees() []*syntax.Tree { return c.trees }
func (c *Compilation) Table() *symbols.Table { return c.table }
func (c *Compilation) Binder() *binder.Binder { return c.binder }
func (c *Compilation) DeclarationDiagnostics() []diag.Diagnostic { return c.decls.Items() }

// Model returns the query model of tree, creating it on first use.
func (c *Compilation) Model(tree *syntax.Tree) *Model {
	if m, ok := c.models.Load(tree); ok {
		return m.(*Model)
	}
	m, _ := c.models.LoadOrStore(tree, newModel(c, tree))
	return m.(*Model)
}
