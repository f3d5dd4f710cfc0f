package binder

import (
	"fmt"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/overload"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
)

// class says what an expression denotes.
type class uint8

const (
	classError class = iota
	classValue
	classVariable
	classVoid
	classMethodGroup
	classType
	classNamespace
	classLambda
)

// receiver records how a member was reached.
type receiver uint8

const (
	receiverImplicit receiver = iota // simple name
	receiverInstance
	receiverType
	receiverBase
)

// operand is the binder's working view of a bound expression. The public
// record is the Info stored for node.
type operand struct {
	node  syntax.NodeID
	class class
	typ   symbols.SymbolID
	sym   symbols.SymbolID
	cv    constant.Value
	null  bool

	group    []symbols.SymbolID
	typeArgs []symbols.SymbolID
	recv     receiver
}

func (o operand) argument() overload.Argument {
	return overload.Argument{Type: o.typ, Constant: o.cv, IsNull: o.null}
}

func (o operand) conv() conv.Operand {
	return conv.Operand{Type: o.typ, Constant: o.cv, IsNull: o.null}
}

// record stores info for id. Without a later contextual conversion the
// converted type equals the type.
func (s *Session) record(id syntax.NodeID, info Info) {
	if info.Type.IsValid() {
		info.ConvertedType = info.Type
		info.ImplicitConversion = conv.Identity
	}
	if info.ConstantValue.IsValid() {
		info.IsCompileTimeConstant = true
	}
	s.infos[id] = info
}

// recordOperand stores the plain facts of op.
func (s *Session) recordOperand(op operand) operand {
	s.record(op.node, Info{Type: op.typ, Symbol: op.sym, ConstantValue: op.cv})
	return op
}

// fail records an error placeholder for id so siblings keep binding.
func (s *Session) fail(id syntax.NodeID) operand {
	s.record(id, Info{Type: s.errorType()})
	return operand{node: id, class: classError, typ: s.errorType()}
}

// reject records a failed reference with its candidates and reason.
func (s *Session) reject(id syntax.NodeID, typ symbols.SymbolID, reason CandidateReason, candidates []symbols.SymbolID) operand {
	if !typ.IsValid() {
		typ = s.errorType()
	}
	s.record(id, Info{Type: typ, CandidateSymbols: candidates, CandidateReason: reason})
	return operand{node: id, class: classError, typ: typ}
}

func (s *Session) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(s.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
}

func (s *Session) infof(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportInfo(s.rep, code, sp, fmt.Sprintf(format, args...)).Emit()
}
