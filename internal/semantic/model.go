package semantic

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"semcore/internal/binder"
	"semcore/internal/constant"
	"semcore/internal/diag"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/trace"
)

// Model answers queries about the nodes of one tree.
type Model struct {
	c     *Compilation
	tree  *syntax.Tree
	infos sync.Map // syntax.NodeID -> binder.Info
	roots sync.Map // syntax.NodeID of a binding root -> []diag.Diagnostic
}

func newModel(c *Compilation, tree *syntax.Tree) *Model {
	return &Model{c: c, tree: tree}
}

func (m *Model) Tree() *syntax.Tree { return m.tree }

// TypeInfo is the type projection of an Info.
type TypeInfo struct {
	Type          symbols.SymbolID
	ConvertedType symbols.SymbolID
}

// SymbolInfo is the reference projection of an Info.
type SymbolInfo struct {
	Symbol           symbols.SymbolID
	CandidateSymbols []symbols.SymbolID
	CandidateReason  binder.CandidateReason
}

// InfoFor returns the facts of an expression node, binding its root on
// first use. Cancellation returns an error wrapping binder.ErrCancelled
// and leaves the cache untouched.
func (m *Model) InfoFor(ctx context.Context, node syntax.NodeID) (binder.Info, error) {
	if v, ok := m.infos.Load(node); ok {
		return v.(binder.Info), nil
	}
	ref := syntax.Ref{Tree: m.tree, Node: node}
	root, owner := m.c.binder.Resolver().Root(ref)
	if !owner.IsValid() {
		return binder.Info{}, fmt.Errorf("%w: %s outside any member body", ErrNotExpression, ref.Kind())
	}
	if err := m.bindRoot(ctx, root); err != nil {
		return binder.Info{}, err
	}
	if v, ok := m.infos.Load(node); ok {
		return v.(binder.Info), nil
	}
	return binder.Info{}, fmt.Errorf("%w: %s", ErrNotExpression, ref.Kind())
}

// bindRoot binds root unless an earlier bind already published it. Racing
// binds compute the same infos; the first publish of each node wins.
func (m *Model) bindRoot(ctx context.Context, root syntax.Ref) error {
	if _, done := m.roots.Load(root.Node); done {
		return nil
	}
	bag := diag.NewBag(0)
	out, err := m.c.binder.BindRoot(ctx, root, diag.BagReporter{Bag: bag})
	if err != nil {
		return err
	}
	for id, info := range out.Infos {
		m.infos.LoadOrStore(id, info)
	}
	if _, loaded := m.roots.LoadOrStore(root.Node, bag.Items()); !loaded && m.c.opts.Reporter != nil {
		for _, d := range bag.Items() {
			m.c.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	return nil
}

func (m *Model) TypeInfo(ctx context.Context, node syntax.NodeID) (TypeInfo, error) {
	info, err := m.InfoFor(ctx, node)
	if err != nil {
		return TypeInfo{}, err
	}
	return TypeInfo{Type: info.Type, ConvertedType: info.ConvertedType}, nil
}

func (m *Model) SymbolInfo(ctx context.Context, node syntax.NodeID) (SymbolInfo, error) {
	info, err := m.InfoFor(ctx, node)
	if err != nil {
		return SymbolInfo{}, err
	}
	return SymbolInfo{Symbol: info.Symbol, CandidateSymbols: info.CandidateSymbols, CandidateReason: info.CandidateReason}, nil
}

// ConstantValue returns the compile-time value of node, if it has one.
func (m *Model) ConstantValue(ctx context.Context, node syntax.NodeID) (constant.Value, bool, error) {
	info, err := m.InfoFor(ctx, node)
	if err != nil {
		return constant.Value{}, false, err
	}
	return info.ConstantValue, info.IsCompileTimeConstant, nil
}

// MethodGroup returns the overloads a method name referred to, in
// declaration order.
func (m *Model) MethodGroup(ctx context.Context, node syntax.NodeID) ([]symbols.SymbolID, error) {
	info, err := m.InfoFor(ctx, node)
	if err != nil {
		return nil, err
	}
	return info.MethodGroup, nil
}

// DeclaredSymbol returns the symbol a declaration node introduces.
func (m *Model) DeclaredSymbol(node syntax.NodeID) symbols.SymbolID {
	return m.c.table.DeclaredSymbol(syntax.Ref{Tree: m.tree, Node: node})
}

// NodeAt returns the innermost expression covering offset, or NoNode.
func (m *Model) NodeAt(offset uint32) syntax.NodeID {
	for id := m.tree.NodeAt(offset); id.IsValid(); id = m.tree.Parent(id) {
		if m.tree.Kind(id).IsExpression() {
			return id
		}
	}
	return syntax.NoNode
}

// Diagnostics binds every root of the tree and returns the declaration and
// binding diagnostics of its file, sorted by position.
func (m *Model) Diagnostics(ctx context.Context) ([]diag.Diagnostic, error) {
	span := trace.Begin(m.c.opts.Tracer, trace.ScopeModule, "diagnostics", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	roots := m.c.table.Roots(m.tree)
	span.WithExtra("roots", strconv.Itoa(len(roots)))
	g, gctx := errgroup.WithContext(trace.WithSpan(ctx, span))
	if m.c.opts.Jobs > 0 {
		g.SetLimit(m.c.opts.Jobs)
	}
	for _, r := range roots {
		g.Go(func() error { return m.bindRoot(gctx, r.Ref) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bag := diag.NewBag(m.c.opts.MaxDiagnostics)
	file := m.tree.File.ID
	for _, d := range m.c.DeclarationDiagnostics() {
		if d.Primary.File == file {
			bag.Add(d)
		}
	}
	for _, r := range roots {
		if v, ok := m.roots.Load(r.Ref.Node); ok {
			for _, d := range v.([]diag.Diagnostic) {
				bag.Add(d)
			}
		}
	}
	bag.Sort()
	bag.Dedup()
	return bag.Items(), nil
}
