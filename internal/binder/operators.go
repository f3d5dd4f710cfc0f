package binder

import (
	"slices"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/overload"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/token"
	"semcore/internal/types"
)

var (
	minInt32 = constant.Uint(types.UInt32, 1<<31)
	minInt64 = constant.Uint(types.UInt64, 1<<63)
)

func (s *Session) unary(id syntax.NodeID) operand {
	node := s.tree.Node(id)
	tok := node.Op
	inner := s.tree.Child(id, 0)
	if tok == token.Minus && s.tree.Kind(inner) == syntax.KindLiteral {
		if op, ok := s.negatedMinimum(id, inner); ok {
			return op
		}
	}
	name, ok := types.UnaryOperatorName(tok)
	x := s.value(inner)
	if !ok || x.class == classError {
		return s.fail(id)
	}
	if isIncrement(tok) && !s.assignable(x) {
		s.errorf(diag.SemaNotAssignable, s.ref(inner).Span(), "the operand of an increment or decrement operator must be a variable, property or indexer")
		return s.fail(id)
	}
	res, failed, ok := s.resolveOperator(id, name, tok, []operand{x})
	if !ok {
		return failed
	}
	x = s.convert(x, res.ParamTypes[0])
	op := operand{node: id, class: classValue, typ: res.ReturnType, sym: res.Selected}
	if isIncrement(tok) {
		op.typ = s.infos[inner].Type
	} else if s.isIntrinsic(res.Selected) && x.cv.IsValid() {
		v, err := constant.Unary(name, x.cv, s.b.t.SpecialType(res.ReturnType))
		if err != nil {
			s.foldError(err, node.Span)
		}
		op.cv = v
	}
	return s.recordOperand(op)
}

// negatedMinimum binds -2147483648 and -9223372036854775808, whose
// magnitudes only fit the unsigned types.
func (s *Session) negatedMinimum(id, lit syntax.NodeID) (operand, bool) {
	n := s.tree.Node(lit)
	v, err := constant.FromLiteral(n.Op, n.Text)
	if err != nil {
		return operand{}, false
	}
	var st types.SpecialType
	var neg constant.Value
	switch {
	case v.Equal(minInt32):
		st, neg = types.Int32, constant.Int(types.Int32, -1<<31)
	case v.Equal(minInt64):
		st, neg = types.Int64, constant.Int(types.Int64, -1<<63)
	default:
		return operand{}, false
	}
	s.literal(lit)
	return s.recordOperand(operand{node: id, class: classValue, typ: s.special(st), sym: s.intrinsic(types.OpUnaryNegation, st), cv: neg}), true
}

func (s *Session) binary(id syntax.NodeID) operand {
	node := s.tree.Node(id)
	tok := node.Op
	x := s.value(s.tree.Child(id, 0))
	y := s.value(s.tree.Child(id, 1))

	if tok == token.AndAnd || tok == token.OrOr {
		boolean := s.special(types.Boolean)
		x, y = s.convert(x, boolean), s.convert(y, boolean)
		if x.class == classError || y.class == classError {
			return s.fail(id)
		}
		op := operand{node: id, class: classValue, typ: boolean}
		fold := types.OpBitwiseAnd
		if tok == token.OrOr {
			fold = types.OpBitwiseOr
		}
		if v, err := constant.Binary(fold, x.cv, y.cv, types.Boolean); err == nil {
			op.cv = v
		}
		return s.recordOperand(op)
	}

	name, ok := types.BinaryOperatorName(tok)
	if !ok || x.class == classError || y.class == classError {
		return s.fail(id)
	}
	res, failed, ok := s.resolveOperator(id, name, tok, []operand{x, y})
	if !ok {
		return failed
	}
	x, y = s.convert(x, res.ParamTypes[0]), s.convert(y, res.ParamTypes[1])
	op := operand{node: id, class: classValue, typ: res.ReturnType, sym: res.Selected}
	if s.isIntrinsic(res.Selected) && x.cv.IsValid() && y.cv.IsValid() {
		v, err := constant.Binary(name, x.cv, y.cv, s.b.t.SpecialType(res.ReturnType))
		if err != nil {
			s.foldError(err, node.Span)
		}
		op.cv = v
	}
	return s.recordOperand(op)
}

// resolveOperator picks the operator method for operands. Applicable
// user-defined operators of the operand types win over the predefined ones.
// On failure the node is already recorded and the recorded operand is
// returned: ties keep their candidates with ReasonAmbiguous, an empty
// predefined set records a plain error.
func (s *Session) resolveOperator(id syntax.NodeID, name string, tok token.Kind, operands []operand) (overload.Result, operand, bool) {
	ref := s.ref(id)
	req := overload.Request{Name: name, Args: argumentsOf(operands), Within: s.within(ref)}
	if user := s.userOperators(name, operands); len(user) > 0 {
		req.Candidates = user
		res := s.resolve(req)
		switch res.Reason {
		case ReasonNone:
			return res, operand{}, true
		case ReasonAmbiguous:
			s.errorf(diag.SemaOperatorMismatch, ref.Span(), "operator '%s' is ambiguous on operands of type %s", tok, s.operandList(operands))
			return res, s.reject(id, symbols.NoSymbolID, ReasonAmbiguous, res.Survivors), false
		}
	}
	req.Candidates = s.b.t.IntrinsicOperators(name)
	res := s.resolve(req)
	switch res.Reason {
	case ReasonNone:
		return res, operand{}, true
	case ReasonAmbiguous:
		s.errorf(diag.SemaOperatorMismatch, ref.Span(), "operator '%s' is ambiguous on operands of type %s", tok, s.operandList(operands))
		return res, s.reject(id, symbols.NoSymbolID, ReasonAmbiguous, res.Survivors), false
	}
	s.errorf(diag.SemaOperatorMismatch, ref.Span(), "operator '%s' cannot be applied to operands of type %s", tok, s.operandList(operands))
	return res, s.fail(id), false
}

func (s *Session) userOperators(name string, operands []operand) []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, o := range operands {
		if !o.typ.IsValid() || s.b.t.SpecialType(o.typ) != types.None {
			continue
		}
		for _, g := range s.b.t.AllMembersNamed(s.lookupContainer(o.typ), name) {
			for _, m := range g {
				sym := s.b.t.Get(m)
				if sym.Kind == symbols.KindMethod && sym.Method.Kind == symbols.MethodUserDefinedOperator &&
					len(sym.Method.Params) == len(operands) && !slices.Contains(out, m) {
					out = append(out, m)
				}
			}
		}
	}
	return out
}

func (s *Session) operandList(operands []operand) string {
	out := ""
	for i, o := range operands {
		if i > 0 {
			out += " and "
		}
		out += "'" + s.operandName(o) + "'"
	}
	return out
}

func (s *Session) operandName(o operand) string {
	switch {
	case o.null:
		return "<null>"
	case o.class == classLambda:
		return "lambda expression"
	}
	return s.display(o.typ)
}

func (s *Session) isIntrinsic(id symbols.SymbolID) bool {
	sym := s.b.t.Get(id)
	return sym != nil && sym.Kind == symbols.KindMethod && sym.Method.Kind == symbols.MethodIntrinsic
}

// intrinsic finds the predefined operator name whose result is st.
func (s *Session) intrinsic(name string, st types.SpecialType) symbols.SymbolID {
	for _, m := range s.b.t.IntrinsicOperators(name) {
		if s.b.t.SpecialType(s.b.t.Get(m).Type) == st {
			return m
		}
	}
	return symbols.NoSymbolID
}

// assignable reports whether op denotes storage: a local, a parameter, a
// non-constant field, or a property or indexer with a setter.
func (s *Session) assignable(op operand) bool {
	if op.class != classVariable {
		return false
	}
	sym := s.b.t.Get(op.sym)
	if sym == nil {
		return false
	}
	switch sym.Kind {
	case symbols.KindLocal, symbols.KindParameter:
		return true
	case symbols.KindField:
		return !sym.Flags.Has(symbols.FlagConst)
	case symbols.KindProperty:
		return sym.Property.Setter.IsValid()
	}
	return false
}

func (s *Session) assignment(id syntax.NodeID) operand {
	targetID, valueID := s.tree.Child(id, 0), s.tree.Child(id, 1)
	target := s.value(targetID)
	val := s.value(valueID)
	if target.class == classError {
		return s.fail(id)
	}
	if !s.assignable(target) {
		sym := s.b.t.Get(target.sym)
		if sym != nil && sym.Kind == symbols.KindProperty {
			s.errorf(diag.SemaNotAssignable, s.ref(targetID).Span(), "property or indexer '%s' cannot be assigned to because it is read only", s.display(target.sym))
		} else {
			s.errorf(diag.SemaNotAssignable, s.ref(targetID).Span(), "the left-hand side of an assignment must be a variable, property or indexer")
		}
		return s.fail(id)
	}
	s.convert(val, target.typ)
	return s.recordOperand(operand{node: id, class: classValue, typ: target.typ})
}

func (s *Session) conditional(id syntax.NodeID) operand {
	ref := s.ref(id)
	cond := s.convert(s.value(ref.Child(0).Node), s.special(types.Boolean))
	x := s.value(ref.Child(1).Node)
	y := s.value(ref.Child(2).Node)
	if x.class == classError || y.class == classError || cond.class == classError {
		return s.fail(id)
	}
	typ, ok := s.commonType(x, y)
	if !ok {
		s.errorf(diag.SemaNoConversion, ref.Span(), "type of conditional expression cannot be determined because there is no implicit conversion between %s", s.operandList([]operand{x, y}))
		return s.fail(id)
	}
	x, y = s.convert(x, typ), s.convert(y, typ)
	op := operand{node: id, class: classValue, typ: typ}
	if cond.cv.IsValid() && x.cv.IsValid() && y.cv.IsValid() {
		op.cv = y.cv
		if cond.cv.Equal(constant.Bool(true)) {
			op.cv = x.cv
		}
	}
	return s.recordOperand(op)
}

// commonType is the branch type the other branch converts to.
func (s *Session) commonType(x, y operand) (symbols.SymbolID, bool) {
	if x.class == classLambda || y.class == classLambda || (x.null && y.null) {
		return symbols.NoSymbolID, false
	}
	if x.typ == y.typ && !x.null {
		return x.typ, true
	}
	xy := !y.null && s.b.conv.ClassifyExpression(x.conv(), y.typ).IsImplicit()
	yx := !x.null && s.b.conv.ClassifyExpression(y.conv(), x.typ).IsImplicit()
	switch {
	case xy && !yx:
		return y.typ, true
	case yx && !xy:
		return x.typ, true
	}
	return symbols.NoSymbolID, false
}

func (s *Session) cast(id syntax.NodeID) operand {
	ref := s.ref(id)
	typ := s.bindType(ref.Child(0).Node)
	x := s.value(ref.Child(1).Node)
	if x.class == classError || s.isError(typ) {
		return s.fail(id)
	}
	if x.class == classLambda {
		s.errorf(diag.SemaLambdaNoTarget, ref.Span(), "cannot convert lambda expression to type '%s' because it is not a delegate type", s.display(typ))
		return s.fail(id)
	}
	kind := s.b.conv.ClassifyExplicit(x.conv(), typ)
	if kind == conv.None {
		s.errorf(diag.SemaNoExplicitConv, ref.Span(), "cannot convert type '%s' to '%s'", s.operandName(x), s.display(typ))
		return s.fail(id)
	}
	op := operand{node: id, class: classValue, typ: typ}
	switch ops := s.b.conv.CastOperators(x.conv(), typ); {
	case len(ops) == 1:
		op.sym = ops[0]
	case len(ops) > 1:
		s.errorf(diag.SemaAmbiguousConversion, ref.Span(), "ambiguous user defined conversions from '%s' to '%s'", s.display(x.typ), s.display(typ))
		return s.reject(id, typ, ReasonAmbiguous, ops)
	}
	if x.cv.IsValid() && !op.sym.IsValid() {
		switch kind {
		case conv.Identity, conv.ImplicitNumeric, conv.ImplicitConstant, conv.ImplicitReference, conv.ExplicitNumeric:
			v, err := constant.Convert(x.cv, s.b.t.SpecialType(typ))
			if err != nil {
				s.foldError(err, ref.Span())
			}
			op.cv = v
		}
	}
	return s.recordOperand(op)
}
