package constant

import (
	gc "go/constant"
	gotoken "go/token"

	"semcore/internal/types"
)

// Convert performs an identity, numeric or null conversion of v to dst.
// Integral targets truncate toward zero and report ErrOverflow when the
// result does not fit. Conversions that never yield a constant, such as
// boxing to object, report ErrNotConstant.
func Convert(v Value, dst types.SpecialType) (Value, error) {
	switch {
	case !v.IsValid():
		return Value{}, ErrNotConstant
	case v.Type == dst:
		return v, nil
	case v.null:
		if dst == types.Object || dst == types.String {
			return Value{Type: dst, null: true}, nil
		}
		return Value{}, ErrNotConstant
	case !v.Type.IsNumeric() || !dst.IsNumeric():
		return Value{}, ErrNotConstant
	}
	x := v.val
	if dst.IsIntegral() && x.Kind() == gc.Float {
		x = truncate(x)
	}
	return normalize(dst, x)
}

// truncate rounds a real value toward zero.
func truncate(x gc.Value) gc.Value {
	if i := gc.ToInt(x); i.Kind() == gc.Int {
		return i
	}
	return gc.BinaryOp(gc.Num(x), gotoken.QUO_ASSIGN, gc.Denom(x))
}

// wrap reduces an integral value modulo the width of st, the way shifts
// behave at run time.
func wrap(x gc.Value, st types.SpecialType) gc.Value {
	bits := uint(st.Width())
	mod := gc.Shift(gc.MakeInt64(1), gotoken.SHL, bits)
	r := gc.BinaryOp(x, gotoken.REM, mod)
	if gc.Sign(r) < 0 {
		r = gc.BinaryOp(r, gotoken.ADD, mod)
	}
	if st.IsSigned() {
		half := gc.Shift(gc.MakeInt64(1), gotoken.SHL, bits-1)
		if !gc.Compare(r, gotoken.LSS, half) {
			r = gc.BinaryOp(r, gotoken.SUB, mod)
		}
	}
	return r
}
