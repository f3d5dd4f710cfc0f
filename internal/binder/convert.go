package binder

import (
	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/symbols"
)

// convert applies the implicit conversion of op to target and records it
// on op's node. The returned operand carries the converted type and, for
// constant-preserving conversions, the converted constant.
func (s *Session) convert(op operand, target symbols.SymbolID) operand {
	if !target.IsValid() || !op.node.IsValid() {
		return op
	}
	info := s.infos[op.node]
	info.ConvertedType = target
	ref := s.ref(op.node)

	switch op.class {
	case classError, classMethodGroup:
		info.ImplicitConversion = conv.Identity
		s.infos[op.node] = info
		op.typ = target
		return op
	case classLambda:
		s.errorf(diag.SemaLambdaNoTarget, ref.Span(), "cannot convert lambda expression to type '%s' because it is not a delegate type", s.display(target))
		info.ImplicitConversion = conv.None
		s.infos[op.node] = info
		op.class, op.typ = classError, s.errorType()
		return op
	}

	kind := s.b.conv.ClassifyExpression(op.conv(), target)
	switch kind {
	case conv.None:
		s.noConversion(op, target)
		op.class = classError
	case conv.UserDefined:
		if m, ok := s.b.conv.Method(op.typ, target, false); ok {
			info.ConversionMethod = m
		} else {
			s.errorf(diag.SemaAmbiguousConversion, ref.Span(), "ambiguous user defined conversions from '%s' to '%s'", s.display(op.typ), s.display(target))
			kind = conv.None
			op.class = classError
		}
	}
	info.ImplicitConversion = kind
	s.infos[op.node] = info

	switch kind {
	case conv.Identity, conv.ImplicitNumeric, conv.ImplicitConstant, conv.ImplicitReference:
		op.cv = s.constantOf(op, target)
		if !op.cv.IsValid() {
			op.null = false
		}
	default:
		op.cv, op.null = constant.Value{}, false
	}
	op.typ = target
	return op
}

func (s *Session) noConversion(op operand, target symbols.SymbolID) {
	ref := s.ref(op.node)
	from := "<null>"
	if !op.null {
		from = s.display(op.typ)
	}
	b := diag.ReportError(s.rep, diag.SemaNoConversion, ref.Span(), "cannot implicitly convert type '"+from+"' to '"+s.display(target)+"'")
	if !op.null && s.b.conv.ClassifyExplicit(op.conv(), target) != conv.None {
		b.WithNote(ref.Span(), "an explicit conversion exists (are you missing a cast?)")
	}
	b.Emit()
}
