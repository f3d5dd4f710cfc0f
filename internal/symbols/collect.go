package symbols

import (
	"strings"

	"semcore/internal/diag"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

type Options struct {
	Reporter diag.Reporter
}

type collector struct {
	t     *Table
	rep   diag.Reporter
	types []syntax.Ref // type declarations in source order
}

// Collect builds the declaration table for a set of trees. Declaration
// errors go to opts.Reporter; the table is complete even when they occur.
func Collect(trees []*syntax.Tree, opts Options) *Table {
	c := &collector{t: newTable(), rep: opts.Reporter}
	c.t.seedPrelude()

	for _, tree := range trees {
		if tree == nil || !tree.Root.IsValid() {
			continue
		}
		root := syntax.Ref{Tree: tree, Node: tree.Root}
		c.declareContainer(root, c.t.Global)
	}
	for _, tree := range trees {
		if tree == nil || !tree.Root.IsValid() {
			continue
		}
		c.resolveUsings(tree)
	}
	for _, ref := range c.types {
		c.resolveBases(ref)
	}
	c.checkBaseCycles()
	for _, ref := range c.types {
		c.declareMembers(ref)
	}
	return c.t
}

func (c *collector) report(code diag.Code, at syntax.Ref, msg string) {
	report(c.rep, code, at, msg)
}

// declareContainer declares namespaces and types found among the children
// of a compilation unit or namespace declaration.
func (c *collector) declareContainer(ref syntax.Ref, ns SymbolID) {
	tree := ref.Tree
	for _, child := range tree.Children(ref.Node) {
		cref := syntax.Ref{Tree: tree, Node: child}
		switch k := cref.Kind(); {
		case k == syntax.KindNamespaceDecl:
			inner := ns
			for _, part := range strings.Split(cref.Text(), ".") {
				inner = c.namespace(inner, part, cref)
			}
			c.t.decls[cref] = inner
			c.declareContainer(cref, inner)
		case k.IsTypeDecl():
			c.declareType(cref, ns)
		}
	}
}

// namespace returns the namespace called name inside parent, creating it on
// first use. Declarations of the same namespace merge.
func (c *collector) namespace(parent SymbolID, name string, decl syntax.Ref) SymbolID {
	for _, m := range c.t.LookupMember(parent, name) {
		if c.t.Get(m).Kind == KindNamespace {
			return m
		}
	}
	return c.t.add(&Symbol{
		Kind:      KindNamespace,
		Name:      name,
		Container: parent,
		Access:    AccessPublic,
		Decl:      decl,
		Span:      decl.Span(),
		Scope:     newScope(),
	})
}

func (c *collector) declareType(ref syntax.Ref, container SymbolID) SymbolID {
	node := ref.Tree.Node(ref.Node)
	kind := TypeClass
	switch node.Kind {
	case syntax.KindStructDecl:
		kind = TypeStruct
	case syntax.KindInterfaceDecl:
		kind = TypeInterface
	}
	nested := c.t.Get(container).Kind == KindNamedType
	for _, m := range c.t.LookupMember(container, node.Text) {
		if c.t.Get(m).Kind == KindNamedType {
			c.report(diag.SemaDuplicateMember, ref, "'"+c.t.Display(container)+"' already contains a definition for '"+node.Text+"'")
			break
		}
	}
	if tps := ref.Child(0); tps.IsValid() {
		c.report(diag.SemaGenericTypeUnsupported, tps, "generic type declaration '"+node.Text+"' is not supported")
	}
	id := c.t.add(&Symbol{
		Kind:      KindNamedType,
		Name:      node.Text,
		Container: container,
		Access:    accessOf(node.Flags, defaultTypeAccess(nested)),
		Flags:     flagsOf(node.Flags),
		Decl:      ref,
		Span:      ref.Span(),
		Scope:     newScope(),
		Named:     &TypeInfo{Kind: kind},
	})
	c.types = append(c.types, ref)
	for _, member := range ref.Tree.ChildrenFrom(ref.Node, 2) {
		if mref := (syntax.Ref{Tree: ref.Tree, Node: member}); mref.Kind().IsTypeDecl() {
			c.declareType(mref, id)
		}
	}
	return id
}

func defaultTypeAccess(nested bool) Access {
	if nested {
		return AccessPrivate
	}
	return AccessInternal
}

func accessOf(f syntax.Flags, def Access) Access {
	switch {
	case f.Has(syntax.FlagPublic):
		return AccessPublic
	case f.Has(syntax.FlagProtected):
		return AccessProtected
	case f.Has(syntax.FlagInternal):
		return AccessInternal
	case f.Has(syntax.FlagPrivate):
		return AccessPrivate
	}
	return def
}

func flagsOf(f syntax.Flags) Flags {
	var out Flags
	if f.Has(syntax.FlagStatic) {
		out |= FlagStatic
	}
	if f.Has(syntax.FlagConst) {
		out |= FlagConst | FlagStatic
	}
	if f.Has(syntax.FlagExtern) {
		out |= FlagExtern
	}
	if f.Has(syntax.FlagImplicit) {
		out |= FlagImplicit
	}
	if f.Has(syntax.FlagExplicit) {
		out |= FlagExplicit
	}
	return out
}

// resolveUsings binds every using directive to a namespace.
func (c *collector) resolveUsings(tree *syntax.Tree) {
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		ref := syntax.Ref{Tree: tree, Node: id}
		switch ref.Kind() {
		case syntax.KindCompilationUnit, syntax.KindNamespaceDecl:
			return true
		case syntax.KindUsingDirective:
			name := ref.Child(0)
			if ns := c.namespaceByName(name); ns.IsValid() {
				scope := ref.Parent()
				c.t.usings[scope] = append(c.t.usings[scope], ns)
			} else {
				c.report(diag.SemaNameNotFound, name, "the namespace '"+name.Tree.SourceText(name.Node)+"' could not be found")
			}
		}
		return false
	})
}

func (c *collector) namespaceByName(name syntax.Ref) SymbolID {
	var parent SymbolID
	var last string
	switch name.Kind() {
	case syntax.KindQualifiedName:
		parent = c.namespaceByName(name.Child(0))
		if !parent.IsValid() {
			return NoSymbolID
		}
		last = name.Child(1).Text()
	default:
		parent = c.t.Global
		last = name.Text()
	}
	for _, m := range c.t.LookupMember(parent, last) {
		if c.t.Get(m).Kind == KindNamespace {
			return m
		}
	}
	return NoSymbolID
}

func (c *collector) resolveBases(ref syntax.Ref) {
	id := c.t.decls[ref]
	sym := c.t.Get(id)
	object := c.t.special[types.Object]
	if bases := ref.Child(1); bases.IsValid() {
		for i, b := range ref.Tree.Children(bases.Node) {
			bref := syntax.Ref{Tree: ref.Tree, Node: b}
			base := c.t.ResolveType(bref, c.rep)
			bs := c.t.Get(base)
			if bs == nil || bs.Kind != KindNamedType {
				continue
			}
			switch {
			case bs.Named.Kind == TypeInterface:
				sym.Named.Interfaces = append(sym.Named.Interfaces, base)
			case i == 0 && sym.Named.Kind == TypeClass && bs.Named.Kind == TypeClass && bs.Named.Special != types.String:
				sym.Named.Base = base
			default:
				c.report(diag.SemaUnknownType, bref, "'"+c.t.Display(base)+"' cannot be used as a base type here")
			}
		}
	}
	if sym.Named.Kind != TypeInterface && !sym.Named.Base.IsValid() {
		sym.Named.Base = object
	}
}

// checkBaseCycles breaks base cycles so later walks terminate.
func (c *collector) checkBaseCycles() {
	for _, ref := range c.types {
		id := c.t.decls[ref]
		seen := map[SymbolID]bool{id: true}
		for cur := c.t.Get(id).Named.Base; cur.IsValid(); cur = c.t.Get(cur).Named.Base {
			if seen[cur] {
				c.report(diag.SemaCyclicBase, ref, "circular base class dependency involving '"+c.t.Display(id)+"'")
				c.t.Get(id).Named.Base = c.t.special[types.Object]
				break
			}
			seen[cur] = true
		}
	}
}
