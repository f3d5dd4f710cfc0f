package types

import (
	"testing"

	"semcore/internal/token"
)

func TestWideningIsAcyclic(t *testing.T) {
	for _, a := range All() {
		for _, b := range All() {
			if a != b && ImplicitNumeric(a, b) && ImplicitNumeric(b, a) {
				t.Fatalf("%v and %v widen to each other", a, b)
			}
		}
	}
}

func TestNumericConversions(t *testing.T) {
	cases := []struct {
		src, dst           SpecialType
		implicit, explicit bool
	}{
		{Int32, Int64, true, false},
		{Int64, Int32, false, true},
		{Char, Int32, true, false},
		{Int32, Char, false, true},
		{UInt64, Decimal, true, false},
		{Double, Single, false, true},
		{Int32, Int32, false, false},
		{Boolean, Int32, false, false},
	}
	for _, tc := range cases {
		if got := ImplicitNumeric(tc.src, tc.dst); got != tc.implicit {
			t.Errorf("ImplicitNumeric(%v, %v) = %v", tc.src, tc.dst, got)
		}
		if got := ExplicitNumeric(tc.src, tc.dst); got != tc.explicit {
			t.Errorf("ExplicitNumeric(%v, %v) = %v", tc.src, tc.dst, got)
		}
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	if FromKeyword(token.KwInt) != Int32 || Int32.Keyword() != "int" {
		t.Fatalf("int keyword mapping broken")
	}
	if Int32.String() != "System.Int32" {
		t.Fatalf("String() = %q", Int32.String())
	}
	if String.IsValueType() || !Decimal.IsValueType() {
		t.Fatalf("value type classification broken")
	}
}

func TestPredefinedOperatorsShape(t *testing.T) {
	var concat, inc int
	for _, op := range PredefinedOperators() {
		switch op.Name {
		case OpAddition:
			if op.Result == String {
				concat++
			}
		case OpIncrement:
			inc++
			if len(op.Params) != 1 || op.Params[0] != op.Result {
				t.Fatalf("increment signature %+v", op)
			}
		case OpEquality:
			if op.Result != Boolean {
				t.Fatalf("equality must yield bool: %+v", op)
			}
		}
	}
	if concat != 3 || inc != 12 {
		t.Fatalf("concat=%d inc=%d", concat, inc)
	}
}

func TestOperatorNames(t *testing.T) {
	if n, ok := UnaryOperatorName(token.PlusPlus); !ok || n != OpIncrement {
		t.Fatalf("++ -> %q", n)
	}
	if _, ok := BinaryOperatorName(token.AndAnd); ok {
		t.Fatalf("&& must not be overloadable")
	}
}
