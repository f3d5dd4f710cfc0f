package constant

import (
	gc "go/constant"
	gotoken "go/token"
	"math"

	"semcore/internal/types"
)

var arith = map[string]gotoken.Token{
	types.OpAddition:    gotoken.ADD,
	types.OpSubtraction: gotoken.SUB,
	types.OpMultiply:    gotoken.MUL,
	types.OpBitwiseAnd:  gotoken.AND,
	types.OpBitwiseOr:   gotoken.OR,
	types.OpExclusiveOr: gotoken.XOR,
}

var compare = map[string]gotoken.Token{
	types.OpEquality:           gotoken.EQL,
	types.OpInequality:         gotoken.NEQ,
	types.OpLessThan:           gotoken.LSS,
	types.OpGreaterThan:        gotoken.GTR,
	types.OpLessThanOrEqual:    gotoken.LEQ,
	types.OpGreaterThanOrEqual: gotoken.GEQ,
}

// Binary folds a predefined binary operator. Operands must already be
// converted to the operator's parameter types; result is the operator's
// result type.
func Binary(op string, x, y Value, result types.SpecialType) (Value, error) {
	if !x.IsValid() || !y.IsValid() {
		return Value{}, ErrNotConstant
	}
	if result == types.String {
		return concat(x, y)
	}
	if tok, ok := compare[op]; ok {
		return compareValues(tok, x, y)
	}
	if x.null || y.null {
		return Value{}, ErrNotConstant
	}
	if x.Type == types.Boolean {
		return boolOp(op, gc.BoolVal(x.val), gc.BoolVal(y.val))
	}
	switch op {
	case types.OpDivision:
		if y.IsZero() {
			if result.IsFloating() {
				return Value{}, ErrNotConstant
			}
			return Value{}, ErrDivideByZero
		}
		tok := gotoken.QUO
		if result.IsIntegral() {
			tok = gotoken.QUO_ASSIGN
		}
		return normalize(result, gc.BinaryOp(x.val, tok, y.val))
	case types.OpModulus:
		return modulus(x, y, result)
	case types.OpLeftShift, types.OpRightShift:
		return shift(op, x, y, result)
	}
	tok, ok := arith[op]
	if !ok {
		return Value{}, ErrNotConstant
	}
	if tok != gotoken.ADD && tok != gotoken.SUB && tok != gotoken.MUL && !result.IsIntegral() {
		return Value{}, ErrNotConstant
	}
	return normalize(result, gc.BinaryOp(x.val, tok, y.val))
}

func concat(x, y Value) (Value, error) {
	s := func(v Value) (string, bool) {
		switch {
		case v.null:
			return "", true
		case v.Type == types.String:
			return gc.StringVal(v.val), true
		}
		return "", false
	}
	a, ok1 := s(x)
	b, ok2 := s(y)
	if !ok1 || !ok2 {
		return Value{}, ErrNotConstant
	}
	return String(a + b), nil
}

func compareValues(tok gotoken.Token, x, y Value) (Value, error) {
	if x.null || y.null {
		if tok != gotoken.EQL && tok != gotoken.NEQ {
			return Value{}, ErrNotConstant
		}
		same := x.null == y.null
		return Bool(same == (tok == gotoken.EQL)), nil
	}
	if x.Type == types.Boolean && tok != gotoken.EQL && tok != gotoken.NEQ {
		return Value{}, ErrNotConstant
	}
	if x.val.Kind() != y.val.Kind() && !(isNumber(x.val) && isNumber(y.val)) {
		return Value{}, ErrNotConstant
	}
	return Bool(gc.Compare(x.val, tok, y.val)), nil
}

func boolOp(op string, a, b bool) (Value, error) {
	switch op {
	case types.OpBitwiseAnd:
		return Bool(a && b), nil
	case types.OpBitwiseOr:
		return Bool(a || b), nil
	case types.OpExclusiveOr:
		return Bool(a != b), nil
	}
	return Value{}, ErrNotConstant
}

func modulus(x, y Value, result types.SpecialType) (Value, error) {
	if y.IsZero() {
		if result.IsFloating() {
			return Value{}, ErrNotConstant
		}
		return Value{}, ErrDivideByZero
	}
	switch {
	case result.IsIntegral():
		return normalize(result, gc.BinaryOp(x.val, gotoken.REM, y.val))
	case result.IsFloating():
		a, _ := gc.Float64Val(gc.ToFloat(x.val))
		b, _ := gc.Float64Val(gc.ToFloat(y.val))
		return normalize(result, gc.MakeFloat64(math.Mod(a, b)))
	}
	q := truncate(gc.BinaryOp(x.val, gotoken.QUO, y.val))
	return normalize(result, gc.BinaryOp(x.val, gotoken.SUB, gc.BinaryOp(q, gotoken.MUL, y.val)))
}

// shift masks the count to the operand width and wraps the result.
func shift(op string, x, y Value, result types.SpecialType) (Value, error) {
	mask := int64(31)
	if result.Width() == 64 {
		mask = 63
	}
	n, ok := gc.Int64Val(gc.ToInt(y.val))
	if !ok {
		return Value{}, ErrNotConstant
	}
	count := uint(n & mask)
	tok := gotoken.SHL
	if op == types.OpRightShift {
		tok = gotoken.SHR
	}
	r := gc.Shift(x.val, tok, count)
	if tok == gotoken.SHL {
		r = wrap(r, result)
	}
	return normalize(result, r)
}

// Unary folds a predefined unary operator. Increment and decrement need a
// variable and never fold.
func Unary(op string, x Value, result types.SpecialType) (Value, error) {
	if !x.IsValid() || x.null {
		return Value{}, ErrNotConstant
	}
	switch op {
	case types.OpUnaryPlus:
		return normalize(result, x.val)
	case types.OpUnaryNegation:
		return normalize(result, gc.UnaryOp(gotoken.SUB, x.val, 0))
	case types.OpLogicalNot:
		if x.Type != types.Boolean {
			return Value{}, ErrNotConstant
		}
		return Bool(!gc.BoolVal(x.val)), nil
	case types.OpOnesComplement:
		if x.Type == types.Boolean || !result.IsIntegral() {
			return Value{}, ErrNotConstant
		}
		prec := uint(0)
		if !result.IsSigned() {
			prec = uint(result.Width())
		}
		return normalize(result, gc.UnaryOp(gotoken.XOR, x.val, prec))
	}
	return Value{}, ErrNotConstant
}
