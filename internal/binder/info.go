// Package binder computes the semantic facts of expressions: their types,
// the declarations they refer to, contextual conversions and constant
// values. One Session binds one binding root.
package binder

import (
	"errors"
	"slices"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/overload"
	"semcore/internal/symbols"
)

// ErrCancelled wraps the context error of a binding that was abandoned.
var ErrCancelled = errors.New("binding cancelled")

// CandidateReason explains why an expression did not bind to exactly one
// symbol.
type CandidateReason = overload.Reason

const (
	ReasonNone                      = overload.ReasonNone
	ReasonOverloadResolutionFailure = overload.ReasonOverloadResolutionFailure
	ReasonAmbiguous                 = overload.ReasonAmbiguous
	ReasonInaccessible              = overload.ReasonInaccessible
	ReasonWrongArity                = overload.ReasonWrongArity
	ReasonStaticInstanceMismatch    = overload.ReasonStaticInstanceMismatch
	ReasonNotAValue                 = overload.ReasonNotAValue
	ReasonNotInvocable              = overload.ReasonNotInvocable
)

// Info is the semantic record of one expression node. Infos are values;
// once published they are never changed.
type Info struct {
	Type               symbols.SymbolID
	ConvertedType      symbols.SymbolID
	ImplicitConversion conv.Kind
	ConversionMethod   symbols.SymbolID // operator behind a user-defined contextual conversion

	Symbol           symbols.SymbolID
	CandidateSymbols []symbols.SymbolID
	CandidateReason  CandidateReason
	MethodGroup      []symbols.SymbolID
	TypeArguments    []symbols.SymbolID

	IsCompileTimeConstant bool
	ConstantValue         constant.Value
}

// Equal compares two infos field by field.
func (i Info) Equal(o Info) bool {
	return i.Type == o.Type &&
		i.ConvertedType == o.ConvertedType &&
		i.ImplicitConversion == o.ImplicitConversion &&
		i.ConversionMethod == o.ConversionMethod &&
		i.Symbol == o.Symbol &&
		slices.Equal(i.CandidateSymbols, o.CandidateSymbols) &&
		i.CandidateReason == o.CandidateReason &&
		slices.Equal(i.MethodGroup, o.MethodGroup) &&
		slices.Equal(i.TypeArguments, o.TypeArguments) &&
		i.IsCompileTimeConstant == o.IsCompileTimeConstant &&
		i.ConstantValue.Equal(o.ConstantValue)
}
