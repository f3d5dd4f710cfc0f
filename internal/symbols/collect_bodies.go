package symbols

import (
	"sort"

	"semcore/internal/diag"
	"semcore/internal/syntax"
)

// declareRoot registers a binding root and declares the locals and lambdas
// inside it.
func (c *collector) declareRoot(root syntax.Ref, owner SymbolID) {
	c.t.owners[root] = owner
	roots := append(c.t.roots[root.Tree], Root{Ref: root, Owner: owner})
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Ref.Span().Start < roots[j].Ref.Span().Start
	})
	c.t.roots[root.Tree] = roots
	c.declareBody(root, owner)
}

func (c *collector) declareBody(root syntax.Ref, owner SymbolID) {
	tree := root.Tree
	tree.Walk(root.Node, func(id syntax.NodeID) bool {
		ref := syntax.Ref{Tree: tree, Node: id}
		switch ref.Kind() {
		case syntax.KindLocalDecl:
			c.declareLocals(ref, owner)
		case syntax.KindLambda:
			c.declareLambda(ref, owner)
			return false
		}
		return true
	})
}

func (c *collector) declareLocals(decl syntax.Ref, owner SymbolID) {
	block := decl.Parent()
	typ := c.t.ResolveType(decl.Child(0), c.rep)
	var flags Flags
	if decl.Child(0).Kind() == syntax.KindVarType {
		flags |= FlagImplicitlyTyped
	}
	for _, d := range decl.Tree.ChildrenFrom(decl.Node, 1) {
		dref := syntax.Ref{Tree: decl.Tree, Node: d}
		for _, prev := range c.t.locals[block] {
			if c.t.Get(prev).Name == dref.Text() {
				c.report(diag.SemaDuplicateMember, dref, "a local variable named '"+dref.Text()+"' is already defined in this scope")
				break
			}
		}
		id := c.t.add(&Symbol{
			Kind:      KindLocal,
			Name:      dref.Text(),
			Container: owner,
			Type:      typ,
			Access:    AccessPrivate,
			Flags:     flags,
			Decl:      dref,
			Span:      dref.Span(),
			Local:     &LocalInfo{Initializer: dref.Child(0)},
		})
		c.t.locals[block] = append(c.t.locals[block], id)
	}
}

func (c *collector) declareLambda(ref syntax.Ref, owner SymbolID) {
	info := &MethodInfo{Kind: MethodAnonymous, Body: ref.Child(1)}
	id := c.t.add(&Symbol{
		Kind:      KindMethod,
		Name:      "<lambda>",
		Container: owner,
		Access:    AccessPrivate,
		Flags:     FlagSynthesized,
		Decl:      ref,
		Span:      ref.Span(),
		Method:    info,
	})
	info.Params = c.declareParams(ref.Child(0), id)
	if body := ref.Child(1); body.IsValid() {
		c.declareBody(body, id)
	}
}
