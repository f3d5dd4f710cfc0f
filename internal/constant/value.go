// Package constant holds compile-time constant values. Values are exact
// go/constant values tagged with the special type they were computed in.
package constant

import (
	"fmt"
	gc "go/constant"
	gotoken "go/token"
	"strconv"

	"semcore/internal/types"
)

// Value is a compile-time constant. The zero Value means "not a constant".
type Value struct {
	Type types.SpecialType
	val  gc.Value
	null bool
}

// Null is the null literal. It has no type of its own; Object stands in
// until a conversion gives it one.
func Null() Value { return Value{Type: types.Object, null: true} }

func Bool(b bool) Value { return Value{Type: types.Boolean, val: gc.MakeBool(b)} }

func String(s string) Value { return Value{Type: types.String, val: gc.MakeString(s)} }

func Char(r rune) Value { return Value{Type: types.Char, val: gc.MakeInt64(int64(r))} }

func Int(st types.SpecialType, x int64) Value { return Value{Type: st, val: gc.MakeInt64(x)} }

func Uint(st types.SpecialType, x uint64) Value { return Value{Type: st, val: gc.MakeUint64(x)} }

func Float(st types.SpecialType, f float64) Value {
	return Value{Type: st, val: gc.MakeFloat64(f)}
}

func (v Value) IsValid() bool { return v.Type != types.None }
func (v Value) IsNull() bool  { return v.null }

// Raw exposes the underlying exact value; nil for null.
func (v Value) Raw() gc.Value { return v.val }

// IsZero reports numeric zero.
func (v Value) IsZero() bool {
	if v.val == nil {
		return false
	}
	switch v.val.Kind() {
	case gc.Int, gc.Float:
		return gc.Sign(v.val) == 0
	}
	return false
}

// Interface returns the value as the Go type matching its special type:
// int32 for Int32, rune for Char, float32 for Single and so on. Decimal
// values come back as float64. Null yields nil.
func (v Value) Interface() any {
	if v.null || v.val == nil {
		return nil
	}
	switch v.Type {
	case types.Boolean:
		return gc.BoolVal(v.val)
	case types.String:
		return gc.StringVal(v.val)
	case types.Char:
		return rune(int64Val(v.val))
	case types.SByte:
		return int8(int64Val(v.val))
	case types.Byte:
		return uint8(uint64Val(v.val))
	case types.Int16:
		return int16(int64Val(v.val))
	case types.UInt16:
		return uint16(uint64Val(v.val))
	case types.Int32:
		return int32(int64Val(v.val))
	case types.UInt32:
		return uint32(uint64Val(v.val))
	case types.Int64:
		return int64Val(v.val)
	case types.UInt64:
		return uint64Val(v.val)
	case types.Single:
		f, _ := gc.Float32Val(gc.ToFloat(v.val))
		return f
	case types.Double, types.Decimal:
		f, _ := gc.Float64Val(gc.ToFloat(v.val))
		return f
	}
	return nil
}

func int64Val(x gc.Value) int64 {
	n, _ := gc.Int64Val(gc.ToInt(x))
	return n
}

func uint64Val(x gc.Value) uint64 {
	n, _ := gc.Uint64Val(gc.ToInt(x))
	return n
}

// String renders the value the way it would be written in source.
func (v Value) String() string {
	switch {
	case !v.IsValid():
		return "<none>"
	case v.null:
		return "null"
	}
	switch v.Type {
	case types.String:
		return strconv.Quote(gc.StringVal(v.val))
	case types.Char:
		return strconv.QuoteRune(rune(int64Val(v.val)))
	case types.Single, types.Double:
		f, _ := gc.Float64Val(gc.ToFloat(v.val))
		return strconv.FormatFloat(f, 'g', -1, 64)
	case types.Decimal:
		return gc.ToFloat(v.val).String()
	}
	return v.val.ExactString()
}

func (v Value) GoString() string { return fmt.Sprintf("%s(%s)", v.Type.Keyword(), v) }

// Equal reports whether both values have the same type and exact value.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type || v.null != o.null {
		return false
	}
	if v.val == nil || o.val == nil {
		return v.val == nil && o.val == nil
	}
	if v.val.Kind() != o.val.Kind() && !(isNumber(v.val) && isNumber(o.val)) {
		return false
	}
	return gc.Compare(v.val, gotoken.EQL, o.val)
}

func isNumber(x gc.Value) bool {
	k := x.Kind()
	return k == gc.Int || k == gc.Float
}
