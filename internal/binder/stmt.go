package binder

import (
	"semcore/internal/diag"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

func (s *Session) block(id syntax.NodeID) {
	for _, st := range s.tree.Children(id) {
		if s.cancelled() {
			return
		}
		s.statement(st)
	}
}

func (s *Session) statement(id syntax.NodeID) {
	switch s.tree.Kind(id) {
	case syntax.KindBlock:
		s.block(id)
	case syntax.KindLocalDecl:
		s.localDecl(id)
	case syntax.KindReturnStmt:
		s.returnStmt(id)
	case syntax.KindExprStmt:
		s.statementExpr(s.tree.Child(id, 0))
	case syntax.KindIfStmt:
		s.convert(s.value(s.tree.Child(id, 0)), s.special(types.Boolean))
		s.statement(s.tree.Child(id, 1))
		if els := s.tree.Child(id, 2); els.IsValid() {
			s.statement(els)
		}
	}
}

func (s *Session) localDecl(id syntax.NodeID) {
	typeNode := s.tree.Child(id, 0)
	for _, d := range s.tree.ChildrenFrom(id, 1) {
		local := s.b.t.DeclaredSymbol(s.ref(d))
		sym := s.b.t.Get(local)
		if sym == nil {
			continue
		}
		init := s.tree.Child(d, 0)
		if sym.Flags.Has(symbols.FlagImplicitlyTyped) {
			if _, done := s.st.localTypes[local]; !done {
				s.inferLocal(local)
			}
			continue
		}
		if init.IsValid() {
			s.convert(s.value(init), s.declaredType(sym))
		}
	}
	if s.tree.Kind(typeNode) != syntax.KindVarType {
		s.typeUse(typeNode)
	}
}

// typeUse records the type a declaration resolved for its type syntax.
// Declaration collection has already reported failures.
func (s *Session) typeUse(id syntax.NodeID) {
	parent := s.tree.Parent(id)
	var typ symbols.SymbolID
	for _, d := range s.tree.ChildrenFrom(parent, 1) {
		if local := s.b.t.DeclaredSymbol(s.ref(d)); local.IsValid() {
			typ = s.declaredType(s.b.t.Get(local))
			break
		}
	}
	if !typ.IsValid() {
		return
	}
	sym := typ
	if s.isError(typ) {
		sym = symbols.NoSymbolID
	}
	s.record(id, Info{Type: typ, Symbol: sym})
}

func (s *Session) declaredType(sym *symbols.Symbol) symbols.SymbolID {
	if !sym.Type.IsValid() {
		return s.errorType()
	}
	return sym.Type
}

// inferLocal binds the initializer of an implicitly typed local and fixes
// the local's type to the initializer's type.
func (s *Session) inferLocal(local symbols.SymbolID) symbols.SymbolID {
	sym := s.b.t.Get(local)
	init := sym.Local.Initializer
	typ := s.errorType()
	if !init.IsValid() {
		s.errorf(diag.SemaVarSelfReference, sym.Span, "implicitly-typed variables must be initialized")
		s.st.localTypes[local] = typ
		return typ
	}
	s.st.marks[local] = markInProgress
	op := s.bind(init.Node)
	switch {
	case op.class == classLambda:
		s.errorf(diag.SemaLambdaNoTarget, init.Span(), "cannot assign lambda expression to an implicitly-typed variable")
	case op.null:
		s.errorf(diag.SemaNoConversion, init.Span(), "cannot assign <null> to an implicitly-typed variable")
	default:
		if op = s.asValue(op); op.class != classError && op.typ.IsValid() {
			typ = op.typ
		}
	}
	s.st.marks[local] = markBound
	s.st.localTypes[local] = typ
	return typ
}

// localType is the type of a local at a reference to it.
func (s *Session) localType(local symbols.SymbolID, at syntax.Ref) symbols.SymbolID {
	sym := s.b.t.Get(local)
	if at.Tree == sym.Decl.Tree && at.Span().Start < sym.Decl.Span().Start {
		s.errorf(diag.SemaVarSelfReference, at.Span(), "cannot use local variable '%s' before it is declared", sym.Name)
		return s.errorType()
	}
	if !sym.Flags.Has(symbols.FlagImplicitlyTyped) {
		return s.declaredType(sym)
	}
	if typ, ok := s.st.localTypes[local]; ok {
		return typ
	}
	if s.st.marks[local] == markInProgress {
		s.errorf(diag.SemaVarSelfReference, at.Span(), "cannot use local variable '%s' before it is declared", sym.Name)
		return s.errorType()
	}
	return s.nested(sym.Local.Initializer).inferLocal(local)
}

func (s *Session) returnStmt(id syntax.NodeID) {
	expr := s.tree.Child(id, 0)
	if !expr.IsValid() {
		return
	}
	var ret symbols.SymbolID
	if n := len(s.returns); n > 0 {
		ret = s.returns[n-1]
	}
	op := s.value(expr)
	switch {
	case !ret.IsValid():
	case ret == s.void():
		s.errorf(diag.SemaNoConversion, s.ref(expr).Span(), "since the member returns void, a return keyword must not be followed by an object expression")
	default:
		s.convert(op, ret)
	}
}
