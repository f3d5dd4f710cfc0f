package types

// FamilyMask groups special types into broad categories.
type FamilyMask uint16

const (
	FamilyNone FamilyMask = 0
	FamilyBool FamilyMask = 1 << iota
	FamilyChar
	FamilySignedInt
	FamilyUnsignedInt
	FamilyFloat
	FamilyDecimal
	FamilyString
	FamilyReference
)

const (
	FamilyIntegral = FamilySignedInt | FamilyUnsignedInt | FamilyChar
	FamilyNumeric  = FamilyIntegral | FamilyFloat | FamilyDecimal
)

// Width captures the storage size of numeric types in bits.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)
