package binder

import (
	"semcore/internal/diag"
	"semcore/internal/scope"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

func (s *Session) simpleName(id syntax.NodeID) operand {
	ref := s.ref(id)
	name := ref.Text()
	var typeArgs []symbols.SymbolID
	if ref.Kind() == syntax.KindGenericName {
		typeArgs = s.typeArguments(ref.Child(0).Node)
	}
	groups := s.b.res.ResolveGroups(ref, name, symbols.KindMaskAny)
	if len(groups) == 0 {
		s.errorf(diag.SemaNameNotFound, ref.Span(), "the name '%s' does not exist in the current context", name)
		return s.fail(id)
	}
	first := groups[0]
	if methods := s.methodsOf(first.Symbols); len(methods) > 0 && len(methods) == len(first.Symbols) {
		for _, g := range groups[1:] {
			more := s.methodsOf(g.Symbols)
			if g.Level != first.Level || g.Owner != first.Owner || len(more) != len(g.Symbols) {
				break
			}
			methods = append(methods, more...)
		}
		return s.methodGroup(id, methods, typeArgs, receiverImplicit)
	}
	syms := s.nonMethods(first.Symbols)
	if len(syms) > 1 {
		s.errorf(diag.SemaAmbiguousCall, ref.Span(), "'%s' is an ambiguous reference between '%s' and '%s'", name, s.display(syms[0]), s.display(syms[1]))
		return s.reject(id, symbols.NoSymbolID, ReasonAmbiguous, syms)
	}
	sym := syms[0]
	if first.Level == scope.LevelEnclosingType && s.isInstanceMember(sym) {
		s.errorf(diag.SemaObjectRequired, ref.Span(), "an object reference is required for the non-static member '%s'", s.display(sym))
		return s.reject(id, s.b.t.Get(sym).Type, ReasonStaticInstanceMismatch, []symbols.SymbolID{sym})
	}
	return s.symbolRef(id, sym, receiverImplicit)
}

func (s *Session) memberAccess(id syntax.NodeID) operand {
	ref := s.ref(id)
	left := s.bind(ref.Child(0).Node)
	nameRef := ref.Child(1)
	name := nameRef.Text()
	var typeArgs []symbols.SymbolID
	if nameRef.Kind() == syntax.KindGenericName {
		typeArgs = s.typeArguments(nameRef.Child(0).Node)
	}

	mirror := func(op operand) operand {
		s.infos[nameRef.Node] = s.infos[id]
		return op
	}

	var container symbols.SymbolID
	recv := left.recv
	switch left.class {
	case classError:
		s.fail(nameRef.Node)
		return s.fail(id)
	case classMethodGroup, classLambda, classVoid:
		s.asValue(left)
		s.fail(nameRef.Node)
		return s.fail(id)
	case classNamespace:
		for _, m := range s.b.t.LookupMember(left.sym, name) {
			if k := s.b.t.Get(m).Kind; k == symbols.KindNamedType || k == symbols.KindNamespace {
				return mirror(s.symbolRef(id, m, receiverType))
			}
		}
		s.errorf(diag.SemaUnknownType, nameRef.Span(), "the type or namespace name '%s' does not exist in the namespace '%s'", name, s.display(left.sym))
		return mirror(s.fail(id))
	case classType:
		container, recv = left.sym, receiverType
	default:
		if left.null {
			s.errorf(diag.SemaMemberNotFound, ref.Span(), "operator '.' cannot be applied to operand of type '<null>'")
			return mirror(s.fail(id))
		}
		container = s.lookupContainer(left.typ)
		if recv != receiverBase {
			recv = receiverInstance
		}
	}

	groups := s.memberGroups(container, name)
	if len(groups) == 0 {
		s.errorf(diag.SemaMemberNotFound, nameRef.Span(), "'%s' does not contain a definition for '%s'", s.display(container), name)
		return mirror(s.fail(id))
	}
	if methods := s.methodsOf(groups[0]); len(methods) == len(groups[0]) {
		for _, g := range groups[1:] {
			more := s.methodsOf(g)
			if len(more) != len(g) {
				break
			}
			methods = append(methods, more...)
		}
		op := s.methodGroup(id, methods, typeArgs, recv)
		return mirror(op)
	}
	sym := s.nonMethods(groups[0])[0]
	if !s.b.t.IsAccessible(sym, s.within(ref)) {
		s.errorf(diag.SemaInaccessible, nameRef.Span(), "'%s' is inaccessible due to its protection level", s.display(sym))
		return mirror(s.reject(id, s.b.t.Get(sym).Type, ReasonInaccessible, []symbols.SymbolID{sym}))
	}
	switch k := s.b.t.Get(sym).Kind; {
	case recv == receiverType && s.isInstanceMember(sym):
		s.errorf(diag.SemaObjectRequired, nameRef.Span(), "an object reference is required for the non-static member '%s'", s.display(sym))
		return mirror(s.reject(id, s.b.t.Get(sym).Type, ReasonStaticInstanceMismatch, []symbols.SymbolID{sym}))
	case recv != receiverType && s.isStaticMember(sym):
		s.errorf(diag.SemaStaticViaInstance, nameRef.Span(), "member '%s' cannot be accessed with an instance reference; qualify it with a type name instead", s.display(sym))
		return mirror(s.reject(id, s.b.t.Get(sym).Type, ReasonStaticInstanceMismatch, []symbols.SymbolID{sym}))
	case recv != receiverType && k.IsType():
		s.errorf(diag.SemaStaticViaInstance, nameRef.Span(), "cannot reference a type through an expression; try '%s' instead", s.display(sym))
		return mirror(s.reject(id, symbols.NoSymbolID, ReasonStaticInstanceMismatch, []symbols.SymbolID{sym}))
	}
	return mirror(s.symbolRef(id, sym, recv))
}

// symbolRef binds a reference to one resolved symbol.
func (s *Session) symbolRef(id syntax.NodeID, symID symbols.SymbolID, recv receiver) operand {
	t := s.b.t
	sym := t.Get(symID)
	ref := s.ref(id)
	op := operand{node: id, sym: symID, typ: sym.Type, class: classVariable, recv: recv}
	switch sym.Kind {
	case symbols.KindLocal:
		op.typ = s.localType(symID, ref)
	case symbols.KindParameter:
		if !op.typ.IsValid() {
			op.typ = s.errorType()
		}
	case symbols.KindField:
		if recv == receiverImplicit && s.isInstanceMember(symID) && s.b.res.IsStaticContext(ref) {
			return s.objectRequired(id, ref, symID)
		}
		if sym.Flags.Has(symbols.FlagConst) {
			op.class = classValue
			op.cv = s.constValue(symID, ref)
		}
	case symbols.KindProperty:
		if recv == receiverImplicit && s.isInstanceMember(symID) && s.b.res.IsStaticContext(ref) {
			return s.objectRequired(id, ref, symID)
		}
		if s.st.marks[symID] == markInProgress && !sym.Property.IsIndexer {
			s.infof(diag.SemaSelfReference, ref.Span(), "'%s' refers to itself in its own body", s.display(symID))
		}
	case symbols.KindNamedType, symbols.KindTypeParameter, symbols.KindErrorType:
		op.class, op.typ = classType, symID
	case symbols.KindNamespace:
		op.class, op.typ = classNamespace, symbols.NoSymbolID
		s.record(id, Info{Symbol: symID})
		return op
	default:
		return s.fail(id)
	}
	return s.recordOperand(op)
}

func (s *Session) objectRequired(id syntax.NodeID, ref syntax.Ref, sym symbols.SymbolID) operand {
	s.errorf(diag.SemaObjectRequired, ref.Span(), "an object reference is required for the non-static member '%s'", s.display(sym))
	return s.reject(id, s.b.t.Get(sym).Type, ReasonStaticInstanceMismatch, []symbols.SymbolID{sym})
}

// methodGroup records an unapplied method group. Invocation replaces the
// record once overload resolution has run.
func (s *Session) methodGroup(id syntax.NodeID, group, typeArgs []symbols.SymbolID, recv receiver) operand {
	s.record(id, Info{
		CandidateSymbols: group,
		CandidateReason:  ReasonOverloadResolutionFailure,
		MethodGroup:      group,
		TypeArguments:    typeArgs,
	})
	return operand{node: id, class: classMethodGroup, group: group, typeArgs: typeArgs, recv: recv}
}

// memberGroups returns the members named name of container and its bases,
// one group per level, skipping what cannot be named.
func (s *Session) memberGroups(container symbols.SymbolID, name string) [][]symbols.SymbolID {
	var out [][]symbols.SymbolID
	for _, g := range s.b.t.AllMembersNamed(container, name) {
		var keep []symbols.SymbolID
		for _, m := range g {
			if nameable(s.b.t.Get(m)) {
				keep = append(keep, m)
			}
		}
		if len(keep) > 0 {
			out = append(out, keep)
		}
	}
	return out
}

// lookupContainer maps the type of a receiver to the type whose members it
// exposes. A type parameter exposes its class constraint, or object.
func (s *Session) lookupContainer(typ symbols.SymbolID) symbols.SymbolID {
	sym := s.b.t.Get(typ)
	if sym == nil || sym.Kind != symbols.KindTypeParameter {
		return typ
	}
	for _, c := range sym.TypeParam.Constraints {
		if n := s.b.t.Get(c); n != nil && n.Kind == symbols.KindNamedType && n.Named.Kind == symbols.TypeClass {
			return c
		}
	}
	return s.special(types.Object)
}

func (s *Session) methodsOf(ids []symbols.SymbolID) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, id := range ids {
		if s.b.t.Get(id).Kind == symbols.KindMethod {
			out = append(out, id)
		}
	}
	return out
}

func (s *Session) nonMethods(ids []symbols.SymbolID) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, id := range ids {
		if s.b.t.Get(id).Kind != symbols.KindMethod {
			out = append(out, id)
		}
	}
	return out
}

// isInstanceMember reports fields, properties and methods that need a
// receiver. Constants count as static.
func (s *Session) isInstanceMember(id symbols.SymbolID) bool {
	sym := s.b.t.Get(id)
	switch sym.Kind {
	case symbols.KindField, symbols.KindProperty, symbols.KindMethod:
		return !sym.IsStatic() && !sym.Flags.Has(symbols.FlagConst)
	}
	return false
}

func (s *Session) isStaticMember(id symbols.SymbolID) bool {
	sym := s.b.t.Get(id)
	switch sym.Kind {
	case symbols.KindField, symbols.KindProperty, symbols.KindMethod:
		return sym.IsStatic() || sym.Flags.Has(symbols.FlagConst)
	}
	return false
}

// nameable excludes members no identifier can spell.
func nameable(s *symbols.Symbol) bool {
	switch s.Kind {
	case symbols.KindAccessor:
		return false
	case symbols.KindMethod:
		return s.Method.Kind == symbols.MethodOrdinary
	case symbols.KindProperty:
		return !s.Property.IsIndexer
	}
	return true
}
