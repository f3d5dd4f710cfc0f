package conv

import (
	"semcore/internal/symbols"
	"semcore/internal/types"
)

// Better compares converting an expression of type src to t1 and to t2.
// It returns 1 when t1 is better, -1 when t2 is better and 0 otherwise.
func (c *Classifier) Better(src, t1, t2 symbols.SymbolID) int {
	switch {
	case t1 == t2:
		return 0
	case src == t1:
		return 1
	case src == t2:
		return -1
	case c.BetterTarget(t1, t2):
		return 1
	case c.BetterTarget(t2, t1):
		return -1
	}
	return 0
}

// BetterTarget reports whether t1 is a better conversion target than t2:
// t1 converts implicitly to t2 but not back, or t1 is a signed integral
// type where t2 is the unsigned counterpart or wider.
func (c *Classifier) BetterTarget(t1, t2 symbols.SymbolID) bool {
	if t1 == t2 || c.isError(t1) || c.isError(t2) {
		return false
	}
	to, from := c.standard(t1, t2) != None, c.standard(t2, t1) != None
	if to && !from {
		return true
	}
	return types.SignedBetter(c.t.SpecialType(t1), c.t.SpecialType(t2))
}
