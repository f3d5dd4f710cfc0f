package symbols

import (
	"semcore/internal/source"
	"semcore/internal/syntax"
	"semcore/internal/types"
)

// Kind classifies the semantic meaning of a symbol.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNamespace
	KindNamedType
	KindField
	KindProperty
	KindAccessor
	KindParameter
	KindMethod
	KindTypeParameter
	KindLocal
	KindErrorType
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindNamedType:
		return "type"
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindAccessor:
		return "accessor"
	case KindParameter:
		return "parameter"
	case KindMethod:
		return "method"
	case KindTypeParameter:
		return "type parameter"
	case KindLocal:
		return "local"
	case KindErrorType:
		return "error type"
	default:
		return "invalid"
	}
}

// IsType reports kinds that can stand for a type.
func (k Kind) IsType() bool {
	return k == KindNamedType || k == KindTypeParameter || k == KindErrorType
}

type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
)

type MethodKind uint8

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodUserDefinedOperator
	MethodConversion
	MethodIntrinsic
	MethodAnonymous
)

func (k MethodKind) String() string {
	switch k {
	case MethodConstructor:
		return "constructor"
	case MethodUserDefinedOperator:
		return "operator"
	case MethodConversion:
		return "conversion"
	case MethodIntrinsic:
		return "intrinsic"
	case MethodAnonymous:
		return "lambda"
	default:
		return "ordinary"
	}
}

// Access is declared accessibility, ordered from most to least visible.
type Access uint8

const (
	AccessPublic Access = iota
	AccessInternal
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessInternal:
		return "internal"
	case AccessProtected:
		return "protected"
	default:
		return "private"
	}
}

// Flags encode misc attributes for quick checks.
type Flags uint16

const (
	FlagStatic Flags = 1 << iota
	FlagConst
	FlagExtern
	FlagImplicit // implicit conversion operator
	FlagExplicit // explicit conversion operator
	FlagImplicitlyTyped
	FlagSynthesized
	FlagExpressionBodied
)

func (f Flags) Has(x Flags) bool { return f&x != 0 }

// MemberScope indexes the members of a namespace or named type.
type MemberScope struct {
	Members   []SymbolID
	NameIndex map[source.StringID][]SymbolID
}

type TypeInfo struct {
	Kind       TypeKind
	Special    types.SpecialType
	Base       SymbolID
	Interfaces []SymbolID
}

type MethodInfo struct {
	Kind       MethodKind
	Params     []SymbolID
	TypeParams []SymbolID
	Body       syntax.Ref // block or arrow body, invalid when absent
}

type PropertyInfo struct {
	Params    []SymbolID // indexer parameters
	Getter    SymbolID
	Setter    SymbolID
	IsIndexer bool
	Body      syntax.Ref // expression body
}

type AccessorInfo struct {
	Property SymbolID
	IsSetter bool
	Params   []SymbolID
	Body     syntax.Ref
}

type FieldInfo struct {
	Initializer syntax.Ref
}

type TypeParamInfo struct {
	ClassConstraint  bool
	StructConstraint bool
	Constraints      []SymbolID
}

type LocalInfo struct {
	Initializer syntax.Ref
}

// Symbol is a tagged variant: Kind selects which payload pointer is set.
type Symbol struct {
	Kind      Kind
	Name      string
	NameID    source.StringID
	Container SymbolID
	Type      SymbolID // declared type; return type for methods and accessors
	Access    Access
	Flags     Flags
	Decl      syntax.Ref
	Span      source.Span
	Ordinal   int

	Scope     *MemberScope
	Named     *TypeInfo
	Method    *MethodInfo
	Property  *PropertyInfo
	Accessor  *AccessorInfo
	Field     *FieldInfo
	TypeParam *TypeParamInfo
	Local     *LocalInfo
}

func (s *Symbol) IsStatic() bool { return s.Flags.Has(FlagStatic) }

// KindMask restricts lookup to specific symbol kinds.
type KindMask uint32

const (
	KindMaskNone KindMask = 0
	KindMaskAny  KindMask = ^KindMask(0)
	KindMaskType          = KindMask(1<<KindNamedType | 1<<KindTypeParameter | 1<<KindErrorType | 1<<KindNamespace)
)

// Mask converts a symbol kind into a KindMask bit.
func (k Kind) Mask() KindMask { return KindMask(1 << uint(k)) }

// Match reports whether kind k passes the mask.
func (m KindMask) Match(k Kind) bool { return m == KindMaskAny || m&k.Mask() != 0 }
