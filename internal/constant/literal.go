package constant

import (
	"errors"
	"fmt"
	gc "go/constant"
	gotoken "go/token"
	"math"
	"strconv"
	"strings"

	"semcore/internal/lexer"
	"semcore/internal/token"
	"semcore/internal/types"
)

var (
	ErrNotConstant     = errors.New("not a constant")
	ErrOverflow        = errors.New("constant value overflows its type")
	ErrDivideByZero    = errors.New("division by constant zero")
	ErrLiteralTooLarge = errors.New("integral constant is too large")
)

// FromLiteral evaluates a literal token. The literal's type follows the
// usual suffix rules: an unsuffixed integer takes the first of int, uint,
// long and ulong that holds it.
func FromLiteral(kind token.Kind, text string) (Value, error) {
	switch kind {
	case token.KwTrue:
		return Bool(true), nil
	case token.KwFalse:
		return Bool(false), nil
	case token.KwNull:
		return Null(), nil
	case token.StringLit:
		s, err := lexer.Unquote(text)
		if err != nil {
			return Value{}, fmt.Errorf("string literal %s: %w", text, err)
		}
		return String(s), nil
	case token.CharLit:
		r, err := lexer.UnquoteChar(text)
		if err != nil {
			return Value{}, fmt.Errorf("character literal %s: %w", text, err)
		}
		return Char(r), nil
	case token.IntLit:
		return intLiteral(text)
	case token.RealLit:
		return realLiteral(text)
	}
	return Value{}, ErrNotConstant
}

func intLiteral(text string) (Value, error) {
	text = strings.ReplaceAll(text, "_", "")
	digits := strings.TrimRight(text, "uUlL")
	suffix := strings.ToLower(text[len(digits):])
	base := 10
	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits, base = digits[2:], 16
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return Value{}, ErrLiteralTooLarge
	}
	var candidates []types.SpecialType
	switch suffix {
	case "":
		candidates = []types.SpecialType{types.Int32, types.UInt32, types.Int64, types.UInt64}
	case "u":
		candidates = []types.SpecialType{types.UInt32, types.UInt64}
	case "l":
		candidates = []types.SpecialType{types.Int64, types.UInt64}
	default:
		candidates = []types.SpecialType{types.UInt64}
	}
	for _, st := range candidates {
		if _, hi, _ := types.IntBounds(st); n <= hi {
			return Uint(st, n), nil
		}
	}
	return Value{}, ErrLiteralTooLarge
}

func realLiteral(text string) (Value, error) {
	text = strings.ReplaceAll(text, "_", "")
	st := types.Double
	switch text[len(text)-1] {
	case 'f', 'F':
		st, text = types.Single, text[:len(text)-1]
	case 'd', 'D':
		text = text[:len(text)-1]
	case 'm', 'M':
		st, text = types.Decimal, text[:len(text)-1]
	}
	x := gc.MakeFromLiteral(text, gotoken.FLOAT, 0)
	if x.Kind() == gc.Unknown {
		x = gc.ToFloat(gc.MakeFromLiteral(text, gotoken.INT, 0))
	}
	if x.Kind() == gc.Unknown {
		return Value{}, fmt.Errorf("real literal %s: %w", text, ErrNotConstant)
	}
	v, err := normalize(st, x)
	if err != nil {
		return Value{}, ErrLiteralTooLarge
	}
	return v, nil
}

// normalize rounds x into st and checks its range.
func normalize(st types.SpecialType, x gc.Value) (Value, error) {
	switch {
	case st.IsIntegral():
		x = gc.ToInt(x)
		if x.Kind() != gc.Int || !inRange(x, st) {
			return Value{}, ErrOverflow
		}
	case st == types.Single:
		f, _ := gc.Float64Val(gc.ToFloat(x))
		f32 := float32(f)
		if math.IsInf(float64(f32), 0) {
			return Value{}, ErrOverflow
		}
		x = gc.MakeFloat64(float64(f32))
	case st == types.Double:
		f, _ := gc.Float64Val(gc.ToFloat(x))
		if math.IsInf(f, 0) {
			return Value{}, ErrOverflow
		}
		x = gc.MakeFloat64(f)
	case st == types.Decimal:
		x = gc.ToFloat(x)
		if gc.Compare(absValue(x), gotoken.GTR, decimalMax) {
			return Value{}, ErrOverflow
		}
	}
	return Value{Type: st, val: x}, nil
}

var decimalMax = gc.MakeFromLiteral("79228162514264337593543950335", gotoken.INT, 0)

func absValue(x gc.Value) gc.Value {
	if gc.Sign(x) < 0 {
		return gc.UnaryOp(gotoken.SUB, x, 0)
	}
	return x
}

func inRange(x gc.Value, st types.SpecialType) bool {
	lo, hi, ok := types.IntBounds(st)
	if !ok {
		return false
	}
	return !gc.Compare(x, gotoken.LSS, gc.MakeInt64(lo)) && !gc.Compare(x, gotoken.GTR, gc.MakeUint64(hi))
}

// Fits reports whether an integral constant is representable in st.
func Fits(v Value, st types.SpecialType) bool {
	if v.val == nil || v.val.Kind() != gc.Int || !st.IsIntegral() {
		return false
	}
	return inRange(v.val, st)
}
