package constant

import (
	"errors"
	"testing"

	"semcore/internal/token"
	"semcore/internal/types"
)

func TestIntLiteralTypes(t *testing.T) {
	cases := []struct {
		text string
		want types.SpecialType
		val  any
	}{
		{"10", types.Int32, int32(10)},
		{"2147483648", types.UInt32, uint32(2147483648)},
		{"4294967296", types.Int64, int64(4294967296)},
		{"9223372036854775808", types.UInt64, uint64(9223372036854775808)},
		{"10L", types.Int64, int64(10)},
		{"10u", types.UInt32, uint32(10)},
		{"10UL", types.UInt64, uint64(10)},
		{"10lu", types.UInt64, uint64(10)},
		{"0xFF", types.Int32, int32(255)},
		{"1_000", types.Int32, int32(1000)},
	}
	for _, tc := range cases {
		v, err := FromLiteral(token.IntLit, tc.text)
		if err != nil {
			t.Fatalf("%s: %v", tc.text, err)
		}
		if v.Type != tc.want || v.Interface() != tc.val {
			t.Errorf("%s = %#v (%T %v), want %s %v", tc.text, v, v.Interface(), v.Interface(), tc.want, tc.val)
		}
	}
	if _, err := FromLiteral(token.IntLit, "18446744073709551616"); !errors.Is(err, ErrLiteralTooLarge) {
		t.Fatalf("oversized literal err = %v", err)
	}
}

func TestRealAndOtherLiterals(t *testing.T) {
	cases := []struct {
		kind token.Kind
		text string
		want types.SpecialType
		val  any
	}{
		{token.RealLit, "1.5", types.Double, 1.5},
		{token.RealLit, "2.5f", types.Single, float32(2.5)},
		{token.RealLit, "3d", types.Double, 3.0},
		{token.RealLit, "1e3", types.Double, 1000.0},
		{token.RealLit, "0.25m", types.Decimal, 0.25},
		{token.StringLit, `"a\tb"`, types.String, "a\tb"},
		{token.CharLit, `'x'`, types.Char, 'x'},
		{token.KwTrue, "true", types.Boolean, true},
	}
	for _, tc := range cases {
		v, err := FromLiteral(tc.kind, tc.text)
		if err != nil {
			t.Fatalf("%s: %v", tc.text, err)
		}
		if v.Type != tc.want || v.Interface() != tc.val {
			t.Errorf("%s = %T %v, want %s %v", tc.text, v.Interface(), v.Interface(), tc.want, tc.val)
		}
	}
	null, err := FromLiteral(token.KwNull, "null")
	if err != nil || !null.IsNull() || null.Interface() != nil {
		t.Fatalf("null literal = %v, %v", null, err)
	}
}

func TestConvert(t *testing.T) {
	v, err := Convert(Int(types.Int32, 300), types.Int64)
	if err != nil || v.Interface() != int64(300) {
		t.Fatalf("widen = %v, %v", v, err)
	}
	if _, err := Convert(Int(types.Int32, 300), types.Byte); !errors.Is(err, ErrOverflow) {
		t.Fatalf("narrowing overflow err = %v", err)
	}
	v, err = Convert(Float(types.Double, -2.9), types.Int32)
	if err != nil || v.Interface() != int32(-2) {
		t.Fatalf("truncate = %v, %v", v, err)
	}
	v, err = Convert(Null(), types.String)
	if err != nil || !v.IsNull() || v.Type != types.String {
		t.Fatalf("null to string = %v, %v", v, err)
	}
	if _, err := Convert(Int(types.Int32, 1), types.Object); !errors.Is(err, ErrNotConstant) {
		t.Fatalf("boxing folded: %v", err)
	}
	v, err = Convert(Char('A'), types.Int32)
	if err != nil || v.Interface() != int32(65) {
		t.Fatalf("char to int = %v, %v", v, err)
	}
}

func TestFits(t *testing.T) {
	if !Fits(Int(types.Int32, 255), types.Byte) || Fits(Int(types.Int32, 256), types.Byte) {
		t.Fatal("byte range")
	}
	if Fits(Int(types.Int32, -1), types.UInt32) || !Fits(Int(types.Int32, -128), types.SByte) {
		t.Fatal("sign handling")
	}
	if Fits(Float(types.Double, 1), types.Int32) {
		t.Fatal("real constants never fit integral targets")
	}
}

func TestBinary(t *testing.T) {
	i := func(x int64) Value { return Int(types.Int32, x) }
	cases := []struct {
		op     string
		x, y   Value
		result types.SpecialType
		want   any
	}{
		{types.OpAddition, i(2), i(3), types.Int32, int32(5)},
		{types.OpDivision, i(7), i(2), types.Int32, int32(3)},
		{types.OpDivision, i(-7), i(2), types.Int32, int32(-3)},
		{types.OpModulus, i(-7), i(2), types.Int32, int32(-1)},
		{types.OpDivision, Float(types.Double, 7), Float(types.Double, 2), types.Double, 3.5},
		{types.OpLeftShift, i(1), i(31), types.Int32, int32(-2147483648)},
		{types.OpLeftShift, i(1), i(33), types.Int32, int32(2)},
		{types.OpRightShift, i(-8), i(1), types.Int32, int32(-4)},
		{types.OpBitwiseAnd, i(6), i(3), types.Int32, int32(2)},
		{types.OpExclusiveOr, Bool(true), Bool(false), types.Boolean, true},
		{types.OpLessThan, i(1), i(2), types.Boolean, true},
		{types.OpEquality, String("a"), String("a"), types.Boolean, true},
		{types.OpEquality, Null(), String("a"), types.Boolean, false},
		{types.OpAddition, String("a"), String("b"), types.String, "ab"},
		{types.OpAddition, String("a"), Null(), types.String, "a"},
	}
	for _, tc := range cases {
		v, err := Binary(tc.op, tc.x, tc.y, tc.result)
		if err != nil {
			t.Fatalf("%s(%v, %v): %v", tc.op, tc.x, tc.y, err)
		}
		if v.Interface() != tc.want {
			t.Errorf("%s(%v, %v) = %T %v, want %v", tc.op, tc.x, tc.y, v.Interface(), v.Interface(), tc.want)
		}
	}
}

func TestBinaryErrors(t *testing.T) {
	maxInt := Int(types.Int32, 2147483647)
	if _, err := Binary(types.OpAddition, maxInt, Int(types.Int32, 1), types.Int32); !errors.Is(err, ErrOverflow) {
		t.Fatalf("overflow err = %v", err)
	}
	if _, err := Binary(types.OpDivision, maxInt, Int(types.Int32, 0), types.Int32); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("divide err = %v", err)
	}
	if _, err := Binary(types.OpDivision, Float(types.Double, 1), Float(types.Double, 0), types.Double); !errors.Is(err, ErrNotConstant) {
		t.Fatalf("real divide err = %v", err)
	}
	if _, err := Binary(types.OpAddition, String("a"), Int(types.Object, 1), types.String); !errors.Is(err, ErrNotConstant) {
		t.Fatalf("mixed concat err = %v", err)
	}
}

func TestUnary(t *testing.T) {
	v, err := Unary(types.OpUnaryNegation, Int(types.Int32, 5), types.Int32)
	if err != nil || v.Interface() != int32(-5) {
		t.Fatalf("negate = %v, %v", v, err)
	}
	v, err = Unary(types.OpOnesComplement, Uint(types.UInt32, 0), types.UInt32)
	if err != nil || v.Interface() != uint32(0xFFFFFFFF) {
		t.Fatalf("complement = %v, %v", v, err)
	}
	v, err = Unary(types.OpOnesComplement, Int(types.Int32, 0), types.Int32)
	if err != nil || v.Interface() != int32(-1) {
		t.Fatalf("signed complement = %v, %v", v, err)
	}
	v, err = Unary(types.OpLogicalNot, Bool(true), types.Boolean)
	if err != nil || v.Interface() != false {
		t.Fatalf("not = %v, %v", v, err)
	}
	if _, err := Unary(types.OpUnaryNegation, Int(types.Int32, -2147483648), types.Int32); !errors.Is(err, ErrOverflow) {
		t.Fatalf("negate min err = %v", err)
	}
	if _, err := Unary(types.OpIncrement, Int(types.Int32, 1), types.Int32); !errors.Is(err, ErrNotConstant) {
		t.Fatalf("increment folded")
	}
}

func TestEqualAndString(t *testing.T) {
	a, _ := FromLiteral(token.IntLit, "10")
	if !a.Equal(Int(types.Int32, 10)) || a.Equal(Int(types.Int64, 10)) {
		t.Fatal("equality ignores type or value")
	}
	if a.String() != "10" || String("x").String() != `"x"` || Null().String() != "null" {
		t.Fatalf("strings: %s %s %s", a, String("x"), Null())
	}
	if (Value{}).IsValid() {
		t.Fatal("zero value is valid")
	}
}
