package conv

import (
	"semcore/internal/constant"
	"semcore/internal/symbols"
	"semcore/internal/types"
)

// Operand describes the source of a conversion when it is an expression
// rather than a bare type.
type Operand struct {
	Type     symbols.SymbolID
	Constant constant.Value
	IsNull   bool
}

// Classifier answers conversion questions over one table. It has no state
// beyond the table and is safe for concurrent use.
type Classifier struct {
	t *symbols.Table
}

func New(t *symbols.Table) *Classifier { return &Classifier{t: t} }

// Classify returns the implicit conversion from src to dst, or None.
func (c *Classifier) Classify(src, dst symbols.SymbolID) Kind {
	if k := c.standard(src, dst); k != None {
		return k
	}
	if len(c.UserDefinedOperators(src, dst, false)) > 0 {
		return UserDefined
	}
	return None
}

// standard covers the implicit conversions that involve no user code.
func (c *Classifier) standard(src, dst symbols.SymbolID) Kind {
	switch {
	case !src.IsValid() || !dst.IsValid():
		return None
	case src == dst:
		return Identity
	case c.isError(src) || c.isError(dst):
		// Errors were reported where the error type was produced.
		return Identity
	}
	ss, ds := c.t.SpecialType(src), c.t.SpecialType(dst)
	if ss == types.Void || ds == types.Void {
		return None
	}
	if types.ImplicitNumeric(ss, ds) {
		return ImplicitNumeric
	}
	if c.t.IsReferenceType(src) && c.referenceReachable(src, dst) {
		return ImplicitReference
	}
	if !c.t.IsReferenceType(src) && c.boxingTarget(src, dst) {
		return Boxing
	}
	return None
}

// referenceReachable walks src's base and interface chains.
func (c *Classifier) referenceReachable(src, dst symbols.SymbolID) bool {
	if c.t.SpecialType(dst) == types.Object {
		return true
	}
	return c.t.IsDerivedFrom(src, dst) || c.t.Implements(src, dst)
}

// boxingTarget covers value types and type parameters not known to be
// references, converting to object or an implemented interface.
func (c *Classifier) boxingTarget(src, dst symbols.SymbolID) bool {
	s := c.t.Get(src)
	if s == nil || (s.Kind != symbols.KindNamedType && s.Kind != symbols.KindTypeParameter) {
		return false
	}
	if c.t.SpecialType(dst) == types.Object {
		return true
	}
	if d := c.t.Get(dst); d != nil && d.Kind == symbols.KindNamedType && d.Named.Kind == symbols.TypeInterface {
		return c.t.Implements(src, dst)
	}
	return s.Kind == symbols.KindTypeParameter && c.t.IsDerivedFrom(src, dst)
}

func (c *Classifier) isError(id symbols.SymbolID) bool { return id == c.t.ErrorType() }

// isNullable reports types the null literal converts to.
func (c *Classifier) isNullable(id symbols.SymbolID) bool {
	return c.t.IsReferenceType(id) || c.isError(id)
}

// ClassifyExpression adds the expression-only conversions: the null
// literal to any reference type and integral constants that fit a narrower
// integral type.
func (c *Classifier) ClassifyExpression(src Operand, dst symbols.SymbolID) Kind {
	if src.IsNull {
		if c.isNullable(dst) {
			return ImplicitReference
		}
		return None
	}
	k := c.Classify(src.Type, dst)
	if k != None || !src.Constant.IsValid() {
		return k
	}
	st, ds := c.t.SpecialType(src.Type), c.t.SpecialType(dst)
	switch {
	case st == types.Int32 && ds.IsIntegral() && ds != types.Char && constant.Fits(src.Constant, ds):
		return ImplicitConstant
	case st == types.Int64 && ds == types.UInt64 && constant.Fits(src.Constant, ds):
		return ImplicitConstant
	}
	return None
}

// ClassifyExplicit returns the conversion a cast performs. Implicit
// conversions come first; user-defined explicit operators report the
// numeric or reference flavour of their operand.
func (c *Classifier) ClassifyExplicit(src Operand, dst symbols.SymbolID) Kind {
	if k := c.ClassifyExpression(src, dst); k != None {
		return k
	}
	if src.IsNull {
		return None
	}
	if k := c.explicitStandard(src.Type, dst); k != None {
		return k
	}
	if len(c.UserDefinedOperators(src.Type, dst, true)) > 0 {
		if c.t.SpecialType(src.Type).IsNumeric() {
			return ExplicitNumeric
		}
		return ExplicitReference
	}
	return None
}

func (c *Classifier) explicitStandard(src, dst symbols.SymbolID) Kind {
	ss, ds := c.t.SpecialType(src), c.t.SpecialType(dst)
	if types.ExplicitNumeric(ss, ds) {
		return ExplicitNumeric
	}
	srcRef, dstRef := c.t.IsReferenceType(src), c.t.IsReferenceType(dst)
	switch {
	case srcRef && !c.t.IsValueType(dst) && c.explicitReference(src, dst):
		return ExplicitReference
	case c.t.IsValueType(dst) && c.unboxingSource(src, dst):
		return Unboxing
	case !srcRef && !dstRef && c.isTypeParam(dst) && c.t.SpecialType(src) == types.Object:
		return Unboxing
	case dstRef && c.isTypeParam(src):
		return ExplicitReference
	}
	return None
}

// explicitReference covers downcasts and conversions that involve an
// interface on either side.
func (c *Classifier) explicitReference(src, dst symbols.SymbolID) bool {
	if c.t.SpecialType(src) == types.Object {
		return true
	}
	if c.t.IsDerivedFrom(dst, src) || c.isInterface(dst) || c.isTypeParam(dst) {
		return true
	}
	return c.isInterface(src) && !c.isTypeParam(dst)
}

// unboxingSource reports object, or an interface the value type implements.
func (c *Classifier) unboxingSource(src, dst symbols.SymbolID) bool {
	if c.t.SpecialType(src) == types.Object {
		return true
	}
	return c.isInterface(src) && c.t.Implements(dst, src)
}

func (c *Classifier) isInterface(id symbols.SymbolID) bool {
	s := c.t.Get(id)
	return s != nil && s.Kind == symbols.KindNamedType && s.Named.Kind == symbols.TypeInterface
}

func (c *Classifier) isTypeParam(id symbols.SymbolID) bool {
	s := c.t.Get(id)
	return s != nil && s.Kind == symbols.KindTypeParameter
}
