package overload

import (
	"semcore/internal/conv"
	"semcore/internal/symbols"
)

// best returns the applicable candidates no other candidate beats. A
// single result is the winner; several are an ambiguity.
func (e *Engine) best(cands []*candidate, args []Argument) []*candidate {
	for _, c := range cands {
		wins := true
		for _, o := range cands {
			if o != c && e.compare(c, o, args) <= 0 {
				wins = false
				break
			}
		}
		if wins {
			return []*candidate{c}
		}
	}
	var tied []*candidate
	for _, c := range cands {
		dominated := false
		for _, o := range cands {
			if o != c && e.compare(o, c, args) > 0 {
				dominated = true
				break
			}
		}
		if !dominated {
			tied = append(tied, c)
		}
	}
	return tied
}

// compare returns 1 when a is better than b, -1 when b is better and 0
// when neither is.
func (e *Engine) compare(a, b *candidate, args []Argument) int {
	aBetter, bBetter := false, false
	for i := range args {
		switch e.betterConversion(args[i], a.convs[i], b.convs[i], a.params[i], b.params[i]) {
		case 1:
			aBetter = true
		case -1:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return 1
	case bBetter && !aBetter:
		return -1
	case aBetter && bBetter:
		return 0
	}
	// Identical in every position: a non-generic method beats a generic one.
	if !a.generic && b.generic {
		return 1
	}
	if a.generic && !b.generic {
		return -1
	}
	return 0
}

func (e *Engine) betterConversion(arg Argument, ka, kb conv.Kind, ta, tb symbols.SymbolID) int {
	if ta == tb {
		return 0
	}
	if ra, rb := ka.Rank(), kb.Rank(); ra != rb {
		if ra < rb {
			return 1
		}
		return -1
	}
	src := arg.Type
	if arg.IsNull {
		src = symbols.NoSymbolID
	}
	return e.c.Better(src, ta, tb)
}
