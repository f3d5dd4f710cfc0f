package symbols

import (
	"semcore/internal/source"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

// Root is a binding unit: an expression body, block body or initializer,
// together with the symbol that owns it.
type Root struct {
	Ref   syntax.Ref
	Owner SymbolID
}

// Table is the declaration table of one compilation. It is built once by
// Collect and is read-only afterwards, so concurrent readers need no locks.
type Table struct {
	Symbols *Symbols
	Strings *source.Interner
	Global  SymbolID
	System  SymbolID

	special   [types.Decimal + 1]SymbolID
	errorType SymbolID

	decls      map[syntax.Ref]SymbolID
	usings     map[syntax.Ref][]SymbolID
	locals     map[syntax.Ref][]SymbolID // block -> locals declared directly in it
	owners     map[syntax.Ref]SymbolID   // binding root -> owner
	roots      map[*syntax.Tree][]Root
	intrinsics map[string][]SymbolID
}

func newTable() *Table {
	names := source.NewInterner()
	return &Table{
		Symbols:    NewSymbols(256, names),
		Strings:    names,
		decls:      make(map[syntax.Ref]SymbolID),
		usings:     make(map[syntax.Ref][]SymbolID),
		locals:     make(map[syntax.Ref][]SymbolID),
		owners:     make(map[syntax.Ref]SymbolID),
		roots:      make(map[*syntax.Tree][]Root),
		intrinsics: make(map[string][]SymbolID),
	}
}

// Get returns the symbol or nil.
func (t *Table) Get(id SymbolID) *Symbol { return t.Symbols.Get(id) }

func (t *Table) Len() int { return t.Symbols.Len() }

func (t *Table) add(sym *Symbol) SymbolID {
	id := t.Symbols.New(sym)
	if sym.Container.IsValid() {
		if c := t.Get(sym.Container); c != nil && c.Scope != nil {
			c.Scope.Members = append(c.Scope.Members, id)
			c.Scope.NameIndex[sym.NameID] = append(c.Scope.NameIndex[sym.NameID], id)
		}
	}
	if sym.Decl.IsValid() {
		if _, dup := t.decls[sym.Decl]; !dup {
			t.decls[sym.Decl] = id
		}
	}
	return id
}

func newScope() *MemberScope {
	return &MemberScope{NameIndex: make(map[source.StringID][]SymbolID)}
}

// LookupMember returns the members of container named name in declaration
// order, overloads included. Base types are not searched.
func (t *Table) LookupMember(container SymbolID, name string) []SymbolID {
	c := t.Get(container)
	if c == nil || c.Scope == nil {
		return nil
	}
	id, ok := t.Strings.Find(name)
	if !ok {
		return nil
	}
	return c.Scope.NameIndex[id]
}

// MembersOf returns all members of a namespace or type in declaration order.
func (t *Table) MembersOf(container SymbolID) []SymbolID {
	c := t.Get(container)
	if c == nil || c.Scope == nil {
		return nil
	}
	return c.Scope.Members
}

// AllMembersNamed walks container and its base chain. Each level's members
// are returned as a separate group, the declaring type first.
func (t *Table) AllMembersNamed(container SymbolID, name string) [][]SymbolID {
	var groups [][]SymbolID
	seen := make(map[SymbolID]bool)
	for cur := container; cur.IsValid() && !seen[cur]; cur = t.BaseOf(cur) {
		seen[cur] = true
		if found := t.LookupMember(cur, name); len(found) > 0 {
			groups = append(groups, found)
		}
	}
	return groups
}

// ParametersOf returns the parameters of a method, indexer or accessor.
func (t *Table) ParametersOf(id SymbolID) []SymbolID {
	s := t.Get(id)
	if s == nil {
		return nil
	}
	switch s.Kind {
	case KindMethod:
		return s.Method.Params
	case KindProperty:
		return s.Property.Params
	case KindAccessor:
		return s.Accessor.Params
	}
	return nil
}

// TypeParametersOf returns the type parameters of a generic method.
func (t *Table) TypeParametersOf(id SymbolID) []SymbolID {
	s := t.Get(id)
	if s == nil || s.Kind != KindMethod {
		return nil
	}
	return s.Method.TypeParams
}

// BaseOf returns the base class of a named type, or the effective base of a
// type parameter.
func (t *Table) BaseOf(id SymbolID) SymbolID {
	s := t.Get(id)
	if s == nil {
		return NoSymbolID
	}
	switch s.Kind {
	case KindNamedType:
		return s.Named.Base
	case KindTypeParameter:
		for _, c := range s.TypeParam.Constraints {
			if cs := t.Get(c); cs != nil && cs.Kind == KindNamedType && cs.Named.Kind == TypeClass {
				return c
			}
		}
		return t.special[types.Object]
	}
	return NoSymbolID
}

// InterfacesOf returns directly declared interfaces.
func (t *Table) InterfacesOf(id SymbolID) []SymbolID {
	s := t.Get(id)
	if s == nil {
		return nil
	}
	switch s.Kind {
	case KindNamedType:
		return s.Named.Interfaces
	case KindTypeParameter:
		var out []SymbolID
		for _, c := range s.TypeParam.Constraints {
			if cs := t.Get(c); cs != nil && cs.Kind == KindNamedType && cs.Named.Kind == TypeInterface {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// SpecialType returns the special type a symbol stands for, or types.None.
func (t *Table) SpecialType(id SymbolID) types.SpecialType {
	s := t.Get(id)
	if s == nil || s.Kind != KindNamedType {
		return types.None
	}
	return s.Named.Special
}

// TypeOf returns the symbol of a special type.
func (t *Table) TypeOf(st types.SpecialType) SymbolID {
	if int(st) >= len(t.special) {
		return NoSymbolID
	}
	return t.special[st]
}

// ErrorType is the shared type substituted after binding errors.
func (t *Table) ErrorType() SymbolID { return t.errorType }

// DeclaredSymbol returns the symbol declared by a syntax node.
func (t *Table) DeclaredSymbol(ref syntax.Ref) SymbolID { return t.decls[ref] }

// UsingsOf returns the namespaces imported at a compilation unit or
// namespace declaration.
func (t *Table) UsingsOf(ref syntax.Ref) []SymbolID { return t.usings[ref] }

// LocalsOf returns the locals declared directly in a block.
func (t *Table) LocalsOf(block syntax.Ref) []SymbolID { return t.locals[block] }

// OwnerOf returns the symbol owning a binding root.
func (t *Table) OwnerOf(root syntax.Ref) SymbolID { return t.owners[root] }

// Roots lists the binding roots of a tree in source order.
func (t *Table) Roots(tree *syntax.Tree) []Root { return t.roots[tree] }

// IntrinsicOperators returns the predefined operator methods with the given
// canonical name.
func (t *Table) IntrinsicOperators(name string) []SymbolID { return t.intrinsics[name] }

// ContainingType returns the nearest named type containing id.
func (t *Table) ContainingType(id SymbolID) SymbolID {
	for cur := t.containerOf(id); cur.IsValid(); cur = t.containerOf(cur) {
		if s := t.Get(cur); s.Kind == KindNamedType {
			return cur
		}
	}
	return NoSymbolID
}

func (t *Table) containerOf(id SymbolID) SymbolID {
	if s := t.Get(id); s != nil {
		return s.Container
	}
	return NoSymbolID
}

// IsValueType reports structs, value special types and struct-constrained
// type parameters.
func (t *Table) IsValueType(id SymbolID) bool {
	s := t.Get(id)
	if s == nil {
		return false
	}
	switch s.Kind {
	case KindNamedType:
		return s.Named.Kind == TypeStruct
	case KindTypeParameter:
		return s.TypeParam.StructConstraint
	}
	return false
}

// IsReferenceType reports classes, interfaces and class-constrained type
// parameters.
func (t *Table) IsReferenceType(id SymbolID) bool {
	s := t.Get(id)
	if s == nil {
		return false
	}
	switch s.Kind {
	case KindNamedType:
		return s.Named.Kind != TypeStruct
	case KindTypeParameter:
		if s.TypeParam.ClassConstraint {
			return true
		}
		for _, c := range s.TypeParam.Constraints {
			if cs := t.Get(c); cs != nil && cs.Kind == KindNamedType && cs.Named.Kind == TypeClass {
				return true
			}
		}
	}
	return false
}

// IsDerivedFrom reports whether base is reachable through id's base chain.
func (t *Table) IsDerivedFrom(id, base SymbolID) bool {
	seen := make(map[SymbolID]bool)
	for cur := t.BaseOf(id); cur.IsValid() && !seen[cur]; cur = t.BaseOf(cur) {
		if cur == base {
			return true
		}
		seen[cur] = true
	}
	return false
}

// Implements reports whether iface is among the interfaces of id, its bases
// or their base interfaces.
func (t *Table) Implements(id, iface SymbolID) bool {
	seen := make(map[SymbolID]bool)
	var visit func(SymbolID) bool
	visit = func(cur SymbolID) bool {
		if !cur.IsValid() || seen[cur] {
			return false
		}
		seen[cur] = true
		for _, i := range t.InterfacesOf(cur) {
			if i == iface || visit(i) {
				return true
			}
		}
		return visit(t.BaseOf(cur))
	}
	return visit(id)
}

// IsAccessible reports whether member can be referenced from code inside
// the type within (NoSymbolID means outside every type).
func (t *Table) IsAccessible(member, within SymbolID) bool {
	s := t.Get(member)
	if s == nil {
		return false
	}
	if s.Kind == KindNamedType && s.Container.IsValid() {
		if c := t.Get(s.Container); c.Kind == KindNamedType && !t.IsAccessible(s.Container, within) {
			return false
		}
	}
	switch s.Access {
	case AccessPublic, AccessInternal:
		return true
	}
	declaring := s.Container
	if s.Kind != KindNamedType {
		declaring = t.ContainingType(member)
	}
	if t.Get(declaring) == nil || t.Get(declaring).Kind != KindNamedType {
		return true
	}
	for cur := within; cur.IsValid(); cur = t.ContainingType(cur) {
		if cur == declaring {
			return true
		}
		if s.Access == AccessProtected && t.IsDerivedFrom(cur, declaring) {
			return true
		}
	}
	return false
}
