package types

import (
	"fmt"

	"semcore/internal/token"
)

// SpecialType identifies the predefined types every compilation carries.
type SpecialType uint8

const (
	None SpecialType = iota
	Object
	Void
	String
	Boolean
	Char
	SByte
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Single
	Double
	Decimal

	specialCount
)

type specialInfo struct {
	name    string // metadata name inside System
	keyword string
	family  FamilyMask
	width   Width
}

var specials = [specialCount]specialInfo{
	None:    {"", "", FamilyNone, WidthAny},
	Object:  {"Object", "object", FamilyReference, WidthAny},
	Void:    {"Void", "void", FamilyNone, WidthAny},
	String:  {"String", "string", FamilyReference | FamilyString, WidthAny},
	Boolean: {"Boolean", "bool", FamilyBool, WidthAny},
	Char:    {"Char", "char", FamilyChar, Width16},
	SByte:   {"SByte", "sbyte", FamilySignedInt, Width8},
	Byte:    {"Byte", "byte", FamilyUnsignedInt, Width8},
	Int16:   {"Int16", "short", FamilySignedInt, Width16},
	UInt16:  {"UInt16", "ushort", FamilyUnsignedInt, Width16},
	Int32:   {"Int32", "int", FamilySignedInt, Width32},
	UInt32:  {"UInt32", "uint", FamilyUnsignedInt, Width32},
	Int64:   {"Int64", "long", FamilySignedInt, Width64},
	UInt64:  {"UInt64", "ulong", FamilyUnsignedInt, Width64},
	Single:  {"Single", "float", FamilyFloat, Width32},
	Double:  {"Double", "double", FamilyFloat, Width64},
	Decimal: {"Decimal", "decimal", FamilyDecimal, Width128},
}

// All returns every special type except None, in declaration order.
func All() []SpecialType {
	out := make([]SpecialType, 0, specialCount-1)
	for st := Object; st < specialCount; st++ {
		out = append(out, st)
	}
	return out
}

func (st SpecialType) valid() bool { return st > None && st < specialCount }

// MetadataName returns the simple name inside the System namespace.
func (st SpecialType) MetadataName() string {
	if !st.valid() {
		return ""
	}
	return specials[st].name
}

// Keyword returns the language keyword aliasing st.
func (st SpecialType) Keyword() string {
	if !st.valid() {
		return ""
	}
	return specials[st].keyword
}

func (st SpecialType) Family() FamilyMask {
	if !st.valid() {
		return FamilyNone
	}
	return specials[st].family
}

func (st SpecialType) Width() Width {
	if !st.valid() {
		return WidthAny
	}
	return specials[st].width
}

func (st SpecialType) String() string {
	if !st.valid() {
		return fmt.Sprintf("SpecialType(%d)", st)
	}
	return "System." + specials[st].name
}

func (st SpecialType) IsNumeric() bool  { return st.Family()&FamilyNumeric != 0 }
func (st SpecialType) IsIntegral() bool { return st.Family()&FamilyIntegral != 0 }
func (st SpecialType) IsSigned() bool   { return st.Family()&FamilySignedInt != 0 }
func (st SpecialType) IsFloating() bool { return st.Family()&FamilyFloat != 0 }

// IsValueType reports the special types with value semantics.
func (st SpecialType) IsValueType() bool {
	return st.valid() && st != Object && st != String && st != Void
}

// FromKeyword maps a predefined-type keyword token to its special type.
func FromKeyword(k token.Kind) SpecialType {
	switch k {
	case token.KwObject:
		return Object
	case token.KwVoid:
		return Void
	case token.KwString:
		return String
	case token.KwBool:
		return Boolean
	case token.KwChar:
		return Char
	case token.KwSByte:
		return SByte
	case token.KwByte:
		return Byte
	case token.KwShort:
		return Int16
	case token.KwUShort:
		return UInt16
	case token.KwInt:
		return Int32
	case token.KwUInt:
		return UInt32
	case token.KwLong:
		return Int64
	case token.KwULong:
		return UInt64
	case token.KwFloat:
		return Single
	case token.KwDouble:
		return Double
	case token.KwDecimal:
		return Decimal
	}
	return None
}
