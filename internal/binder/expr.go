package binder

import (
	"errors"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/token"
	"semcore/internal/types"
)

// bind binds one expression node and records its Info. The result may be
// a method group, a type or a namespace; value applies the checks for
// positions that need a value.
func (s *Session) bind(id syntax.NodeID) operand {
	if !id.IsValid() {
		return operand{class: classError, typ: s.errorType()}
	}
	if s.cancelled() {
		return operand{node: id, class: classError, typ: s.errorType()}
	}
	switch s.tree.Kind(id) {
	case syntax.KindLiteral:
		return s.literal(id)
	case syntax.KindIdentifierName, syntax.KindGenericName:
		return s.simpleName(id)
	case syntax.KindPredefinedType, syntax.KindQualifiedName:
		typ := s.bindType(id)
		return operand{node: id, class: classType, typ: typ, sym: typ}
	case syntax.KindThis, syntax.KindBase:
		return s.this(id)
	case syntax.KindMemberAccess:
		return s.memberAccess(id)
	case syntax.KindInvocation:
		return s.invocation(id)
	case syntax.KindElementAccess:
		return s.elementAccess(id)
	case syntax.KindObjectCreation:
		return s.objectCreation(id)
	case syntax.KindCast:
		return s.cast(id)
	case syntax.KindParenthesized:
		return s.parenthesized(id)
	case syntax.KindPrefixUnary, syntax.KindPostfixUnary:
		return s.unary(id)
	case syntax.KindBinary:
		return s.binary(id)
	case syntax.KindConditional:
		return s.conditional(id)
	case syntax.KindAssignment:
		return s.assignment(id)
	case syntax.KindLambda:
		return s.lambda(id)
	}
	return s.fail(id)
}

// value binds id where a value is required.
func (s *Session) value(id syntax.NodeID) operand { return s.asValue(s.bind(id)) }

// asValue reports an already bound operand that does not denote a value.
func (s *Session) asValue(op operand) operand {
	id := op.node
	ref := s.ref(id)
	switch op.class {
	case classMethodGroup:
		s.errorf(diag.SemaMethodGroupNotValue, ref.Span(), "cannot use method group '%s' as a value", ref.Text())
		op.class, op.typ = classError, s.errorType()
	case classType, classNamespace:
		kind := "type"
		if op.class == classNamespace {
			kind = "namespace"
		}
		s.errorf(diag.SemaNotAValue, ref.Span(), "'%s' is a %s but is used like a variable", s.display(op.sym), kind)
		return s.reject(id, symbols.NoSymbolID, ReasonNotAValue, []symbols.SymbolID{op.sym})
	case classVoid:
		s.errorf(diag.SemaVoidValue, ref.Span(), "expression of type 'void' has no value")
		op.class, op.typ = classError, s.errorType()
	}
	return op
}

// statementExpr binds an expression whose value is discarded.
func (s *Session) statementExpr(id syntax.NodeID) {
	op := s.bind(id)
	if op.class == classMethodGroup || op.class == classType || op.class == classNamespace {
		s.asValue(op)
	}
}

func (s *Session) literal(id syntax.NodeID) operand {
	node := s.tree.Node(id)
	v, err := constant.FromLiteral(node.Op, node.Text)
	if err != nil {
		if errors.Is(err, constant.ErrLiteralTooLarge) {
			s.errorf(diag.SemaLiteralTooLarge, node.Span, "integral constant %s is too large", node.Text)
		}
		return s.fail(id)
	}
	if v.IsNull() {
		s.record(id, Info{ConstantValue: v})
		return operand{node: id, class: classValue, cv: v, null: true}
	}
	return s.recordOperand(operand{node: id, class: classValue, typ: s.special(v.Type), cv: v})
}

func (s *Session) this(id syntax.NodeID) operand {
	ref := s.ref(id)
	word := "this"
	if ref.Kind() == syntax.KindBase {
		word = "base"
	}
	if s.b.res.IsStaticContext(ref) {
		s.errorf(diag.SemaThisInStatic, ref.Span(), "keyword '%s' is not valid in a static member", word)
		return s.fail(id)
	}
	typ := s.within(ref)
	recv := receiverInstance
	if word == "base" {
		typ = s.b.t.BaseOf(typ)
		recv = receiverBase
	}
	if !typ.IsValid() {
		return s.fail(id)
	}
	op := s.recordOperand(operand{node: id, class: classValue, typ: typ})
	op.recv = recv
	return op
}

func (s *Session) parenthesized(id syntax.NodeID) operand {
	inner := s.bind(s.tree.Child(id, 0))
	info := s.infos[inner.node]
	info.ConvertedType, info.ImplicitConversion, info.ConversionMethod = symbols.NoSymbolID, conv.None, symbols.NoSymbolID
	s.record(id, info)
	inner.node = id
	return inner
}

func (s *Session) lambda(id syntax.NodeID) operand {
	body := s.tree.Child(id, 1)
	s.returns = append(s.returns, symbols.NoSymbolID)
	if s.tree.Kind(body) == syntax.KindBlock {
		s.block(body)
	} else if body.IsValid() {
		s.statementExpr(body)
	}
	s.returns = s.returns[:len(s.returns)-1]
	s.record(id, Info{})
	return operand{node: id, class: classLambda}
}

// arguments binds an argument list. Lambdas stay lambdas so overload
// resolution rejects them without a second diagnostic.
func (s *Session) arguments(list syntax.NodeID) []operand {
	children := s.tree.Children(list)
	out := make([]operand, 0, len(children))
	for _, a := range children {
		if s.tree.Kind(a) == syntax.KindLambda {
			out = append(out, s.bind(a))
			continue
		}
		out = append(out, s.value(a))
	}
	return out
}

// bindType resolves a type syntax node and records it as a type reference.
func (s *Session) bindType(id syntax.NodeID) symbols.SymbolID {
	ref := s.ref(id)
	typ := s.errorType()
	switch ref.Kind() {
	case syntax.KindPredefinedType:
		typ = s.special(types.FromKeyword(s.tree.Node(id).Op))
	case syntax.KindIdentifierName:
		typ = s.typeNamed(ref)
	case syntax.KindQualifiedName:
		left := s.namespaceOrType(ref.Child(0))
		right := ref.Child(1)
		typ = s.errorType()
		if !s.isError(left) {
			typ = s.memberType(left, right)
		}
		s.record(right.Node, Info{Type: typ, Symbol: typ})
	case syntax.KindGenericName:
		s.errorf(diag.SemaGenericTypeUnsupported, ref.Span(), "generic type '%s' is not supported", ref.Text())
	case syntax.KindMissing:
	default:
		s.errorf(diag.SynExpectType, ref.Span(), "type expected")
	}
	if k := s.b.t.Get(typ); k != nil && k.Kind == symbols.KindNamespace {
		s.errorf(diag.SemaUnknownType, ref.Span(), "'%s' is a namespace but is used like a type", s.display(typ))
		typ = s.errorType()
	}
	sym := typ
	if s.isError(typ) {
		sym = symbols.NoSymbolID
	}
	s.record(id, Info{Type: typ, Symbol: sym})
	return typ
}

func (s *Session) typeNamed(ref syntax.Ref) symbols.SymbolID {
	found := s.b.res.ResolveType(ref, ref.Text())
	if len(found) == 0 {
		s.errorf(diag.SemaUnknownType, ref.Span(), "the type or namespace name '%s' could not be found", ref.Text())
		return s.errorType()
	}
	return found[0]
}

// namespaceOrType resolves the left side of a qualified type name.
func (s *Session) namespaceOrType(ref syntax.Ref) symbols.SymbolID {
	switch ref.Kind() {
	case syntax.KindIdentifierName:
		id := s.typeNamed(ref)
		info := Info{Symbol: id}
		if k := s.b.t.Get(id).Kind; k.IsType() {
			info.Type = id
		}
		s.record(ref.Node, info)
		return id
	case syntax.KindQualifiedName:
		left := s.namespaceOrType(ref.Child(0))
		if s.isError(left) {
			return left
		}
		return s.memberType(left, ref.Child(1))
	}
	return s.bindType(ref.Node)
}

func (s *Session) memberType(container symbols.SymbolID, name syntax.Ref) symbols.SymbolID {
	for _, m := range s.b.t.LookupMember(container, name.Text()) {
		if k := s.b.t.Get(m).Kind; k == symbols.KindNamedType || k == symbols.KindNamespace {
			return m
		}
	}
	s.errorf(diag.SemaUnknownType, name.Span(), "the type or namespace name '%s' does not exist in '%s'", name.Text(), s.display(container))
	return s.errorType()
}

// typeArguments resolves the type argument list of a generic name.
func (s *Session) typeArguments(list syntax.NodeID) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, a := range s.tree.Children(list) {
		out = append(out, s.bindType(a))
	}
	return out
}

func isIncrement(op token.Kind) bool { return op == token.PlusPlus || op == token.MinusMinus }
