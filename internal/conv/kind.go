// Package conv classifies conversions between types of a symbol table.
package conv

// Kind is the category of a conversion.
type Kind uint8

const (
	None Kind = iota
	Identity
	ImplicitNumeric
	ImplicitConstant
	ImplicitReference
	Boxing
	Unboxing
	UserDefined
	ExplicitNumeric
	ExplicitReference
)

var kindNames = [...]string{
	None:              "None",
	Identity:          "Identity",
	ImplicitNumeric:   "ImplicitNumeric",
	ImplicitConstant:  "ImplicitConstant",
	ImplicitReference: "ImplicitReference",
	Boxing:            "Boxing",
	Unboxing:          "Unboxing",
	UserDefined:       "UserDefined",
	ExplicitNumeric:   "ExplicitNumeric",
	ExplicitReference: "ExplicitReference",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

func (k Kind) Exists() bool { return k != None }

// IsImplicit reports conversions allowed without a cast.
func (k Kind) IsImplicit() bool {
	switch k {
	case Identity, ImplicitNumeric, ImplicitConstant, ImplicitReference, Boxing, UserDefined:
		return true
	}
	return false
}

// Rank orders conversions for overload resolution; lower is better.
func (k Kind) Rank() int {
	switch k {
	case Identity:
		return 0
	case ImplicitNumeric, ImplicitConstant, ImplicitReference:
		return 1
	case Boxing, Unboxing:
		return 2
	case UserDefined:
		return 3
	case ExplicitNumeric, ExplicitReference:
		return 4
	}
	return 5
}
