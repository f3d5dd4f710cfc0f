// Package scope resolves simple names at a syntax position by walking the
// lexical scope chain innermost-first.
package scope

import "semcore/internal/symbols"

// Level names the kind of scope a group of declarations came from.
type Level uint8

const (
	LevelLocal Level = iota
	LevelLambdaParameter
	LevelParameter
	LevelTypeParameter
	LevelMember // declaring type or one of its bases
	LevelEnclosingType
	LevelNamespace
	LevelUsing
	LevelGlobal
)

func (l Level) String() string {
	switch l {
	case LevelLocal:
		return "local"
	case LevelLambdaParameter:
		return "lambda parameter"
	case LevelParameter:
		return "parameter"
	case LevelTypeParameter:
		return "type parameter"
	case LevelMember:
		return "member"
	case LevelEnclosingType:
		return "enclosing type"
	case LevelNamespace:
		return "namespace"
	case LevelUsing:
		return "using"
	default:
		return "global"
	}
}

// Group is the set of same-named declarations found at one scope level.
// Owner is the block, method, type or namespace symbol the level belongs
// to, when there is one.
type Group struct {
	Level   Level
	Owner   symbols.SymbolID
	Symbols []symbols.SymbolID
}
