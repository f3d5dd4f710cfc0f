package semantic

import (
	"context"

	"semcore/internal/binder"
	"semcore/internal/diag"
	"semcore/internal/parser"
	"semcore/internal/source"
	"semcore/internal/syntax"
)

// Snippet is the result of binding an isolated expression as if it were
// written at a position of the model's tree. Snippets are never cached.
type Snippet struct {
	Files *source.FileSet // holds only File
	File  *source.File
	Tree  *syntax.Tree
	Expr  syntax.NodeID
	Infos map[syntax.NodeID]binder.Info
	Diags []diag.Diagnostic
}

// Info returns the facts of the snippet's outermost expression.
func (s *Snippet) Info() binder.Info { return s.Infos[s.Expr] }

// BindSnippet parses text as an expression and binds it with the names
// visible at pos. Parse errors are returned among the diagnostics.
func (m *Model) BindSnippet(ctx context.Context, pos uint32, text string) (*Snippet, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<snippet>", []byte(text)))
	bag := diag.NewBag(m.c.opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	tree := parser.ParseExpression(file, parser.Options{Reporter: rep})
	expr := tree.Child(tree.Root, 0)

	anchor := syntax.Ref{Tree: m.tree, Node: m.tree.NodeAt(pos)}
	b := m.c.binder.WithResolver(m.c.binder.Resolver().Anchored(tree, anchor))
	out, err := b.BindRoot(ctx, syntax.Ref{Tree: tree, Node: expr}, rep)
	if err != nil {
		return nil, err
	}
	return &Snippet{Files: fs, File: file, Tree: tree, Expr: expr, Infos: out.Infos, Diags: bag.Items()}, nil
}
