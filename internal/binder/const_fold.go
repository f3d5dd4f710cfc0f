package binder

import (
	"errors"
	"fmt"

	"semcore/internal/constant"
	"semcore/internal/diag"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
)

// constValue returns the value of a const field, evaluating its initializer
// on first use. A field met again while its own initializer is being
// evaluated is circular; the session that owns the field reports it.
func (s *Session) constValue(field symbols.SymbolID, at syntax.Ref) constant.Value {
	if v, ok := s.st.consts[field]; ok {
		return v
	}
	sym := s.b.t.Get(field)
	switch s.st.marks[field] {
	case markInProgress:
		if field == s.st.top {
			s.st.constError = true
			msg := fmt.Sprintf("the evaluation of the constant value for '%s' involves a circular definition", s.display(field))
			diag.ReportError(s.st.rep, diag.SemaCircularConstant, sym.Span, msg).Emit()
		}
		return constant.Value{}
	case markBound:
		return s.st.consts[field]
	}
	init := sym.Field.Initializer
	if !init.IsValid() {
		return constant.Value{}
	}
	s.st.marks[field] = markInProgress
	n := s.nested(init)
	op := n.convert(n.value(init.Node), sym.Type)
	v := n.constantOf(op, sym.Type)
	s.st.marks[field] = markBound
	s.st.consts[field] = v
	return v
}

// constantOf converts op's constant to typ, the type it was converted to.
func (s *Session) constantOf(op operand, typ symbols.SymbolID) constant.Value {
	if !op.cv.IsValid() {
		return constant.Value{}
	}
	st := s.b.t.SpecialType(typ)
	if op.cv.Type == st && !op.null {
		return op.cv
	}
	v, err := constant.Convert(op.cv, st)
	if err != nil {
		return constant.Value{}
	}
	return v
}

// foldError reports a constant folding failure that is a language error.
// Values that simply are not constant stay silent.
func (s *Session) foldError(err error, sp source.Span) {
	switch {
	case errors.Is(err, constant.ErrOverflow):
		s.st.constError = true
		s.errorf(diag.SemaConstantOverflow, sp, "the operation overflows at compile time")
	case errors.Is(err, constant.ErrDivideByZero):
		s.st.constError = true
		s.errorf(diag.SemaDivideByZero, sp, "division by constant zero")
	}
}
