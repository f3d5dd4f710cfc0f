package syntax

import "strings"

// Flags carries modifiers and small per-node bits.
type Flags uint16

const (
	FlagPublic Flags = 1 << iota
	FlagPrivate
	FlagProtected
	FlagInternal
	FlagStatic
	FlagConst
	FlagExtern
	FlagImplicit // conversion operator
	FlagExplicit // conversion operator
	FlagParenLambda
	FlagVerbatim
)

const accessMask = FlagPublic | FlagPrivate | FlagProtected | FlagInternal

func (f Flags) Has(x Flags) bool { return f&x != 0 }

// Access returns only the accessibility bits.
func (f Flags) Access() Flags { return f & accessMask }

func (f Flags) String() string {
	var parts []string
	names := []struct {
		f Flags
		s string
	}{
		{FlagPublic, "public"}, {FlagPrivate, "private"}, {FlagProtected, "protected"},
		{FlagInternal, "internal"}, {FlagStatic, "static"}, {FlagConst, "const"},
		{FlagExtern, "extern"}, {FlagImplicit, "implicit"}, {FlagExplicit, "explicit"},
	}
	for _, n := range names {
		if f.Has(n.f) {
			parts = append(parts, n.s)
		}
	}
	return strings.Join(parts, " ")
}
