package types

import "semcore/internal/token"

// Canonical operator method names.
const (
	OpIncrement          = "op_Increment"
	OpDecrement          = "op_Decrement"
	OpUnaryPlus          = "op_UnaryPlus"
	OpUnaryNegation      = "op_UnaryNegation"
	OpLogicalNot         = "op_LogicalNot"
	OpOnesComplement     = "op_OnesComplement"
	OpAddition           = "op_Addition"
	OpSubtraction        = "op_Subtraction"
	OpMultiply           = "op_Multiply"
	OpDivision           = "op_Division"
	OpModulus            = "op_Modulus"
	OpBitwiseAnd         = "op_BitwiseAnd"
	OpBitwiseOr          = "op_BitwiseOr"
	OpExclusiveOr        = "op_ExclusiveOr"
	OpLeftShift          = "op_LeftShift"
	OpRightShift         = "op_RightShift"
	OpEquality           = "op_Equality"
	OpInequality         = "op_Inequality"
	OpLessThan           = "op_LessThan"
	OpGreaterThan        = "op_GreaterThan"
	OpLessThanOrEqual    = "op_LessThanOrEqual"
	OpGreaterThanOrEqual = "op_GreaterThanOrEqual"
	OpTrue               = "op_True"
	OpFalse              = "op_False"
	OpImplicit           = "op_Implicit"
	OpExplicit           = "op_Explicit"
)

// UnaryOperatorName maps a prefix/postfix operator token to its method name.
func UnaryOperatorName(k token.Kind) (string, bool) {
	switch k {
	case token.PlusPlus:
		return OpIncrement, true
	case token.MinusMinus:
		return OpDecrement, true
	case token.Plus:
		return OpUnaryPlus, true
	case token.Minus:
		return OpUnaryNegation, true
	case token.Bang:
		return OpLogicalNot, true
	case token.Tilde:
		return OpOnesComplement, true
	case token.KwTrue:
		return OpTrue, true
	case token.KwFalse:
		return OpFalse, true
	}
	return "", false
}

// BinaryOperatorName maps a binary operator token to its method name.
// && and || are not overloadable and have no name.
func BinaryOperatorName(k token.Kind) (string, bool) {
	switch k {
	case token.Plus:
		return OpAddition, true
	case token.Minus:
		return OpSubtraction, true
	case token.Star:
		return OpMultiply, true
	case token.Slash:
		return OpDivision, true
	case token.Percent:
		return OpModulus, true
	case token.Amp:
		return OpBitwiseAnd, true
	case token.Pipe:
		return OpBitwiseOr, true
	case token.Caret:
		return OpExclusiveOr, true
	case token.Shl:
		return OpLeftShift, true
	case token.Shr:
		return OpRightShift, true
	case token.EqEq:
		return OpEquality, true
	case token.BangEq:
		return OpInequality, true
	case token.Lt:
		return OpLessThan, true
	case token.Gt:
		return OpGreaterThan, true
	case token.LtEq:
		return OpLessThanOrEqual, true
	case token.GtEq:
		return OpGreaterThanOrEqual, true
	}
	return "", false
}

// OperatorSig is the signature of a predefined operator.
type OperatorSig struct {
	Name   string
	Params []SpecialType
	Result SpecialType
}

var (
	arithmetic = []SpecialType{Int32, UInt32, Int64, UInt64, Single, Double, Decimal}
	integral   = []SpecialType{Int32, UInt32, Int64, UInt64}
	stepTypes  = []SpecialType{SByte, Byte, Int16, UInt16, Int32, UInt32, Int64, UInt64, Char, Single, Double, Decimal}
)

// PredefinedOperators lists the built-in operator signatures in a stable
// order. The symbol table seeds intrinsic methods from it.
func PredefinedOperators() []OperatorSig {
	var out []OperatorSig
	binary := func(name string, ts []SpecialType, cmp bool) {
		for _, t := range ts {
			res := t
			if cmp {
				res = Boolean
			}
			out = append(out, OperatorSig{Name: name, Params: []SpecialType{t, t}, Result: res})
		}
	}
	unary := func(name string, ts []SpecialType) {
		for _, t := range ts {
			out = append(out, OperatorSig{Name: name, Params: []SpecialType{t}, Result: t})
		}
	}

	for _, name := range []string{OpAddition, OpSubtraction, OpMultiply, OpDivision, OpModulus} {
		binary(name, arithmetic, false)
	}
	out = append(out,
		OperatorSig{Name: OpAddition, Params: []SpecialType{String, String}, Result: String},
		OperatorSig{Name: OpAddition, Params: []SpecialType{String, Object}, Result: String},
		OperatorSig{Name: OpAddition, Params: []SpecialType{Object, String}, Result: String},
	)
	for _, name := range []string{OpLeftShift, OpRightShift} {
		for _, t := range integral {
			out = append(out, OperatorSig{Name: name, Params: []SpecialType{t, Int32}, Result: t})
		}
	}
	for _, name := range []string{OpBitwiseAnd, OpBitwiseOr, OpExclusiveOr} {
		binary(name, append(append([]SpecialType{}, integral...), Boolean), false)
	}
	for _, name := range []string{OpEquality, OpInequality} {
		binary(name, append(append([]SpecialType{}, arithmetic...), Boolean, String, Object), true)
	}
	for _, name := range []string{OpLessThan, OpGreaterThan, OpLessThanOrEqual, OpGreaterThanOrEqual} {
		binary(name, arithmetic, true)
	}

	unary(OpUnaryPlus, arithmetic)
	unary(OpUnaryNegation, []SpecialType{Int32, Int64, Single, Double, Decimal})
	unary(OpLogicalNot, []SpecialType{Boolean})
	unary(OpOnesComplement, integral)
	unary(OpIncrement, stepTypes)
	unary(OpDecrement, stepTypes)
	return out
}
