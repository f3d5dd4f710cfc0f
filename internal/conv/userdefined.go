package conv

import (
	"slices"

	"semcore/internal/symbols"
	"semcore/internal/types"
)

// UserDefinedOperators returns the conversion operators that convert src to
// dst, declared in src, dst or their base classes. Operators whose operand
// or result matches exactly are preferred over those that need a standard
// conversion on either side. More than one result means the conversion is
// ambiguous; choosing among them is left to the caller.
func (c *Classifier) UserDefinedOperators(src, dst symbols.SymbolID, explicit bool) []symbols.SymbolID {
	if !src.IsValid() || !dst.IsValid() || c.isError(src) || c.isError(dst) {
		return nil
	}
	if c.isInterface(src) || c.isInterface(dst) {
		return nil
	}
	var applicable []symbols.SymbolID
	for _, op := range c.conversionOperators(src, dst, explicit) {
		m := c.t.Get(op)
		params := c.t.ParametersOf(op)
		if len(params) != 1 {
			continue
		}
		from, to := c.t.Get(params[0]).Type, m.Type
		if c.encompassed(src, from, explicit) && c.encompassed(to, dst, explicit) {
			applicable = append(applicable, op)
		}
	}
	applicable = c.mostSpecific(applicable, func(op symbols.SymbolID) bool {
		return c.t.Get(c.t.ParametersOf(op)[0]).Type == src
	})
	return c.mostSpecific(applicable, func(op symbols.SymbolID) bool {
		return c.t.Get(op).Type == dst
	})
}

// conversionOperators collects candidate operators in declaration order,
// source type first, without duplicates.
func (c *Classifier) conversionOperators(src, dst symbols.SymbolID, explicit bool) []symbols.SymbolID {
	names := []string{types.OpImplicit}
	if explicit {
		names = append(names, types.OpExplicit)
	}
	var out []symbols.SymbolID
	for _, owner := range []symbols.SymbolID{src, dst} {
		for cur := owner; cur.IsValid() && c.t.SpecialType(cur) == types.None; cur = c.t.BaseOf(cur) {
			if s := c.t.Get(cur); s.Kind != symbols.KindNamedType {
				break
			}
			for _, name := range names {
				for _, op := range c.t.LookupMember(cur, name) {
					if m := c.t.Get(op); m.Kind == symbols.KindMethod && m.Method.Kind == symbols.MethodConversion && !slices.Contains(out, op) {
						out = append(out, op)
					}
				}
			}
		}
	}
	return out
}

// encompassed reports a standard conversion from a to b: implicit for
// implicit lookups, implicit or explicit for casts.
func (c *Classifier) encompassed(a, b symbols.SymbolID, explicit bool) bool {
	if c.standard(a, b) != None {
		return true
	}
	return explicit && c.explicitStandard(a, b) != None
}

func (c *Classifier) mostSpecific(ops []symbols.SymbolID, exact func(symbols.SymbolID) bool) []symbols.SymbolID {
	var hits []symbols.SymbolID
	for _, op := range ops {
		if exact(op) {
			hits = append(hits, op)
		}
	}
	if len(hits) > 0 {
		return hits
	}
	return ops
}

// Method returns the operator implementing a user-defined conversion when
// exactly one applies.
func (c *Classifier) Method(src, dst symbols.SymbolID, explicit bool) (symbols.SymbolID, bool) {
	ops := c.UserDefinedOperators(src, dst, explicit)
	if len(ops) != 1 {
		return symbols.NoSymbolID, false
	}
	return ops[0], true
}

// CastOperators returns the user-defined operators a cast from src to dst
// goes through. It is empty when a standard conversion applies or none
// exists; more than one element means the cast is ambiguous.
func (c *Classifier) CastOperators(src Operand, dst symbols.SymbolID) []symbols.SymbolID {
	if src.IsNull || c.standard(src.Type, dst) != None || c.explicitStandard(src.Type, dst) != None {
		return nil
	}
	if ops := c.UserDefinedOperators(src.Type, dst, false); len(ops) > 0 {
		return ops
	}
	return c.UserDefinedOperators(src.Type, dst, true)
}
