package scope

import (
	"semcore/internal/symbols"
	"semcore/internal/syntax"
)

// Root returns the innermost binding root containing at together with its
// owner. Lambdas are not roots; their bodies belong to the enclosing one.
func (r *Resolver) Root(at syntax.Ref) (syntax.Ref, symbols.SymbolID) {
	for _, ref := range r.chain(at) {
		if owner := r.t.OwnerOf(ref); owner.IsValid() {
			return ref, owner
		}
	}
	return syntax.Ref{}, symbols.NoSymbolID
}

// Function returns the innermost function-like symbol around at: a lambda,
// method, accessor, operator or constructor. Field initializers have none.
func (r *Resolver) Function(at syntax.Ref) symbols.SymbolID {
	for _, ref := range r.chain(at) {
		if ref.Kind() == syntax.KindLambda {
			if id := r.t.DeclaredSymbol(ref); id.IsValid() {
				return id
			}
		}
		if owner := r.t.OwnerOf(ref); owner.IsValid() {
			if k := r.t.Get(owner).Kind; k == symbols.KindMethod || k == symbols.KindAccessor {
				return owner
			}
			return symbols.NoSymbolID
		}
	}
	return symbols.NoSymbolID
}

// EnclosingType returns the innermost type declaration around at.
func (r *Resolver) EnclosingType(at syntax.Ref) symbols.SymbolID {
	for _, ref := range r.chain(at) {
		if ref.Kind().IsTypeDecl() {
			return r.t.DeclaredSymbol(ref)
		}
	}
	return symbols.NoSymbolID
}

// IsStaticContext reports whether at has no `this`: inside a static member
// or a static field initializer.
func (r *Resolver) IsStaticContext(at syntax.Ref) bool {
	_, owner := r.Root(at)
	for cur := owner; cur.IsValid(); cur = r.t.Get(cur).Container {
		s := r.t.Get(cur)
		if s.Kind == symbols.KindNamedType {
			return false
		}
		if s.IsStatic() {
			return true
		}
	}
	return !owner.IsValid()
}
