package types

import "math"

// implicitNumeric lists the targets each numeric type widens to implicitly.
var implicitNumeric = map[SpecialType][]SpecialType{
	SByte:  {Int16, Int32, Int64, Single, Double, Decimal},
	Byte:   {Int16, UInt16, Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Int16:  {Int32, Int64, Single, Double, Decimal},
	UInt16: {Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Int32:  {Int64, Single, Double, Decimal},
	UInt32: {Int64, UInt64, Single, Double, Decimal},
	Int64:  {Single, Double, Decimal},
	UInt64: {Single, Double, Decimal},
	Char:   {UInt16, Int32, UInt32, Int64, UInt64, Single, Double, Decimal},
	Single: {Double},
}

// ImplicitNumeric reports a widening numeric conversion from src to dst.
// Identity is not a numeric conversion.
func ImplicitNumeric(src, dst SpecialType) bool {
	for _, t := range implicitNumeric[src] {
		if t == dst {
			return true
		}
	}
	return false
}

// ExplicitNumeric reports a numeric conversion that needs a cast.
func ExplicitNumeric(src, dst SpecialType) bool {
	if src == dst || !src.IsNumeric() || !dst.IsNumeric() {
		return false
	}
	return !ImplicitNumeric(src, dst)
}

// SignedBetter implements the tie-break between numeric targets that do not
// convert to each other: a signed integral target beats a wider or equal
// unsigned one.
func SignedBetter(t1, t2 SpecialType) bool {
	switch t1 {
	case SByte:
		return t2 == Byte || t2 == UInt16 || t2 == UInt32 || t2 == UInt64
	case Int16:
		return t2 == UInt16 || t2 == UInt32 || t2 == UInt64
	case Int32:
		return t2 == UInt32 || t2 == UInt64
	case Int64:
		return t2 == UInt64
	}
	return false
}

// IntBounds returns the inclusive value range of an integral type. ok is
// false for non-integral types.
func IntBounds(st SpecialType) (lo int64, hi uint64, ok bool) {
	switch st {
	case SByte:
		return math.MinInt8, math.MaxInt8, true
	case Byte:
		return 0, math.MaxUint8, true
	case Int16:
		return math.MinInt16, math.MaxInt16, true
	case UInt16, Char:
		return 0, math.MaxUint16, true
	case Int32:
		return math.MinInt32, math.MaxInt32, true
	case UInt32:
		return 0, math.MaxUint32, true
	case Int64:
		return math.MinInt64, math.MaxInt64, true
	case UInt64:
		return 0, math.MaxUint64, true
	}
	return 0, 0, false
}
