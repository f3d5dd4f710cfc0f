package symbols

import (
	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

// LookupType finds the types, type parameters and namespaces called name
// that are visible at ref. Only the innermost scope level that has a match
// contributes.
func (t *Table) LookupType(at syntax.Ref, name string) []SymbolID {
	tree := at.Tree
	if tree == nil {
		return nil
	}
	prev := syntax.NoNode
	for cur := at.Node; cur.IsValid(); prev, cur = cur, tree.Parent(cur) {
		ref := syntax.Ref{Tree: tree, Node: cur}
		var found []SymbolID
		switch k := tree.Kind(cur); {
		case k == syntax.KindMethodDecl:
			found = t.namedTypeParams(t.decls[ref], name)
		case k.IsTypeDecl():
			if tree.Kind(prev) == syntax.KindBaseList {
				continue
			}
			found = t.nestedTypes(t.decls[ref], name)
		case k == syntax.KindNamespaceDecl:
			found = t.namespaceLevel(ref, name)
		case k == syntax.KindCompilationUnit:
			found = t.typesIn(t.LookupMember(t.Global, name))
			if len(found) == 0 {
				found = t.viaUsings(ref, name)
			}
		}
		if len(found) > 0 {
			return found
		}
	}
	return nil
}

func (t *Table) namedTypeParams(method SymbolID, name string) []SymbolID {
	for _, tp := range t.TypeParametersOf(method) {
		if t.Get(tp).Name == name {
			return []SymbolID{tp}
		}
	}
	return nil
}

// nestedTypes searches a type and its base chain for nested types.
func (t *Table) nestedTypes(typ SymbolID, name string) []SymbolID {
	for _, group := range t.AllMembersNamed(typ, name) {
		if found := t.typesIn(group); len(found) > 0 {
			return found
		}
	}
	return nil
}

// namespaceLevel covers `namespace A.B { }`: B, then A, then the usings of
// the declaration. The global namespace is left to the compilation unit.
func (t *Table) namespaceLevel(decl syntax.Ref, name string) []SymbolID {
	stop := t.Global
	if outer := decl.Tree.Enclosing(decl.Tree.Parent(decl.Node), isNamespaceDecl); outer.IsValid() {
		stop = t.decls[syntax.Ref{Tree: decl.Tree, Node: outer}]
	}
	for ns := t.decls[decl]; ns.IsValid() && ns != stop; ns = t.containerOf(ns) {
		if found := t.typesIn(t.LookupMember(ns, name)); len(found) > 0 {
			return found
		}
	}
	return t.viaUsings(decl, name)
}

func isNamespaceDecl(k syntax.Kind) bool { return k == syntax.KindNamespaceDecl }

// viaUsings returns types imported by using directives. Namespaces are not
// imported by a using.
func (t *Table) viaUsings(at syntax.Ref, name string) []SymbolID {
	var out []SymbolID
	for _, ns := range t.usings[at] {
		for _, m := range t.LookupMember(ns, name) {
			if t.Get(m).Kind == KindNamedType {
				out = append(out, m)
			}
		}
	}
	return out
}

func (t *Table) typesIn(ids []SymbolID) []SymbolID {
	var out []SymbolID
	for _, id := range ids {
		switch t.Get(id).Kind {
		case KindNamedType, KindTypeParameter, KindNamespace:
			out = append(out, id)
		}
	}
	return out
}

// ResolveType binds a type syntax node. Failures are reported to rep and
// produce the error type; `var` yields NoSymbolID.
func (t *Table) ResolveType(ref syntax.Ref, rep diag.Reporter) SymbolID {
	id := t.resolveNamespaceOrType(ref, rep)
	if s := t.Get(id); s != nil && s.Kind == KindNamespace {
		report(rep, diag.SemaUnknownType, ref, "'"+s.Name+"' is a namespace but is used like a type")
		return t.errorType
	}
	return id
}

func (t *Table) resolveNamespaceOrType(ref syntax.Ref, rep diag.Reporter) SymbolID {
	tree := ref.Tree
	switch ref.Kind() {
	case syntax.KindPredefinedType:
		return t.special[types.FromKeyword(tree.Node(ref.Node).Op)]
	case syntax.KindVarType:
		return NoSymbolID
	case syntax.KindIdentifierName:
		found := t.LookupType(ref, ref.Text())
		if len(found) == 0 {
			report(rep, diag.SemaUnknownType, ref, "the type or namespace name '"+ref.Text()+"' could not be found")
			return t.errorType
		}
		if len(found) > 1 {
			report(rep, diag.SemaAmbiguousCall, ref, "'"+ref.Text()+"' is an ambiguous reference")
		}
		return found[0]
	case syntax.KindQualifiedName:
		left := t.resolveNamespaceOrType(ref.Child(0), rep)
		if left == t.errorType {
			return left
		}
		right := ref.Child(1)
		for _, m := range t.LookupMember(left, right.Text()) {
			if k := t.Get(m).Kind; k == KindNamedType || k == KindNamespace {
				return m
			}
		}
		report(rep, diag.SemaUnknownType, right, "the type or namespace name '"+right.Text()+"' does not exist in '"+t.Display(left)+"'")
		return t.errorType
	case syntax.KindGenericName:
		report(rep, diag.SemaGenericTypeUnsupported, ref, "generic type '"+ref.Text()+"' is not supported")
		return t.errorType
	}
	return t.errorType
}

func report(rep diag.Reporter, code diag.Code, at syntax.Ref, msg string) {
	if rep != nil {
		rep.Report(code, diag.SevError, at.Span(), msg, nil)
	}
}
