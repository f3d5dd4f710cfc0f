package scope

import (
	"semcore/internal/symbols"
	"semcore/internal/syntax"
)

// Resolver looks names up in one declaration table. It never mutates the
// table and may be shared between goroutines.
type Resolver struct {
	t       *symbols.Table
	anchors map[*syntax.Tree]syntax.Ref
}

func New(t *symbols.Table) *Resolver { return &Resolver{t: t} }

// Anchored returns a resolver that continues lookups from anchor once they
// leave the root of tree. Snippet trees parsed on their own use it to see
// the declarations around the position they are bound at.
func (r *Resolver) Anchored(tree *syntax.Tree, anchor syntax.Ref) *Resolver {
	anchors := make(map[*syntax.Tree]syntax.Ref, len(r.anchors)+1)
	for k, v := range r.anchors {
		anchors[k] = v
	}
	anchors[tree] = anchor
	return &Resolver{t: r.t, anchors: anchors}
}

// Table returns the table the resolver reads.
func (r *Resolver) Table() *symbols.Table { return r.t }

// chain lists at and its ancestors, crossing from snippet roots to their
// anchors.
func (r *Resolver) chain(at syntax.Ref) []syntax.Ref {
	var out []syntax.Ref
	for at.IsValid() {
		tree := at.Tree
		anchor, anchored := r.anchors[tree]
		for cur := at.Node; cur.IsValid(); cur = tree.Parent(cur) {
			if anchored && cur == tree.Root {
				break
			}
			out = append(out, syntax.Ref{Tree: tree, Node: cur})
		}
		if !anchored {
			break
		}
		at = anchor
	}
	return out
}

// Resolve returns every declaration named name visible at at, innermost
// scope first. It does not pick a winner.
func (r *Resolver) Resolve(at syntax.Ref, name string) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, g := range r.ResolveGroups(at, name, symbols.KindMaskAny) {
		out = append(out, g.Symbols...)
	}
	return out
}

// ResolveType returns the types, type parameters and namespaces named name
// that are visible at at. Only the innermost level with a match counts.
func (r *Resolver) ResolveType(at syntax.Ref, name string) []symbols.SymbolID {
	if anchor, ok := r.anchors[at.Tree]; ok {
		return r.ResolveType(anchor, name)
	}
	return r.t.LookupType(at, name)
}

// ResolveGroups walks the scope chain at at and returns one group per level
// that declares name, restricted to mask.
func (r *Resolver) ResolveGroups(at syntax.Ref, name string, mask symbols.KindMask) []Group {
	t := r.t
	var groups []Group
	add := func(level Level, owner symbols.SymbolID, ids []symbols.SymbolID) {
		var keep []symbols.SymbolID
		for _, id := range ids {
			if s := t.Get(id); s != nil && s.Name == name && mask.Match(s.Kind) && nameable(s) {
				keep = append(keep, id)
			}
		}
		if len(keep) > 0 {
			groups = append(groups, Group{Level: level, Owner: owner, Symbols: keep})
		}
	}

	seenType := false
	chain := r.chain(at)
	for i, ref := range chain {
		switch k := ref.Kind(); {
		case k == syntax.KindBlock:
			add(LevelLocal, symbols.NoSymbolID, t.LocalsOf(ref))
		case k == syntax.KindLambda:
			if lambda := t.DeclaredSymbol(ref); lambda.IsValid() {
				add(LevelLambdaParameter, lambda, t.ParametersOf(lambda))
			}
		case k.IsTypeDecl():
			if i > 0 && chain[i-1].Kind() == syntax.KindBaseList {
				continue
			}
			typ := t.DeclaredSymbol(ref)
			level := LevelMember
			if seenType {
				level = LevelEnclosingType
			}
			seenType = true
			for _, g := range t.AllMembersNamed(typ, name) {
				add(level, typ, g)
			}
		case k == syntax.KindNamespaceDecl:
			groups = append(groups, r.namespaceGroups(ref, name, mask)...)
		case k == syntax.KindCompilationUnit:
			add(LevelGlobal, t.Global, t.LookupMember(t.Global, name))
			add(LevelUsing, symbols.NoSymbolID, r.imported(ref, name))
		}
		// A binding root brings the parameters of its owner into scope.
		if owner := t.OwnerOf(ref); owner.IsValid() {
			add(LevelParameter, owner, t.ParametersOf(owner))
			add(LevelTypeParameter, owner, t.TypeParametersOf(owner))
		}
	}
	return groups
}

// namespaceGroups covers `namespace A.B { }`: B, the usings of the
// declaration, then A. The global namespace is left to the compilation unit.
func (r *Resolver) namespaceGroups(decl syntax.Ref, name string, mask symbols.KindMask) []Group {
	t := r.t
	stop := t.Global
	if outer := decl.Tree.Enclosing(decl.Tree.Parent(decl.Node), isNamespaceDecl); outer.IsValid() {
		stop = t.DeclaredSymbol(syntax.Ref{Tree: decl.Tree, Node: outer})
	}
	var groups []Group
	first := true
	for ns := t.DeclaredSymbol(decl); ns.IsValid() && ns != stop; ns = t.Get(ns).Container {
		if g := filter(t, t.LookupMember(ns, name), mask); len(g) > 0 {
			groups = append(groups, Group{Level: LevelNamespace, Owner: ns, Symbols: g})
		}
		if first {
			if g := filter(t, r.imported(decl, name), mask); len(g) > 0 {
				groups = append(groups, Group{Level: LevelUsing, Owner: ns, Symbols: g})
			}
			first = false
		}
	}
	return groups
}

// imported returns the types named name from the namespaces imported at a
// compilation unit or namespace declaration.
func (r *Resolver) imported(at syntax.Ref, name string) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, ns := range r.t.UsingsOf(at) {
		for _, m := range r.t.LookupMember(ns, name) {
			if r.t.Get(m).Kind == symbols.KindNamedType {
				out = append(out, m)
			}
		}
	}
	return out
}

func filter(t *symbols.Table, ids []symbols.SymbolID, mask symbols.KindMask) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, id := range ids {
		if s := t.Get(id); s != nil && mask.Match(s.Kind) && nameable(s) {
			out = append(out, id)
		}
	}
	return out
}

// nameable excludes members that cannot be referenced by a simple name:
// operators, conversions, constructors and accessors.
func nameable(s *symbols.Symbol) bool {
	switch s.Kind {
	case symbols.KindAccessor:
		return false
	case symbols.KindMethod:
		switch s.Method.Kind {
		case symbols.MethodUserDefinedOperator, symbols.MethodConversion, symbols.MethodIntrinsic,
			symbols.MethodConstructor, symbols.MethodAnonymous:
			return false
		}
	}
	return true
}

func isNamespaceDecl(k syntax.Kind) bool { return k == syntax.KindNamespaceDecl }
