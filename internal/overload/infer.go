package overload

import (
	"semcore/internal/conv"
	"semcore/internal/symbols"
)

// infer binds each method type parameter from the arguments passed to
// parameters of exactly that type. When several arguments bind the same
// parameter, the bound every other bound converts to wins.
func (e *Engine) infer(typeParams, declared []symbols.SymbolID, args []Argument) ([]symbols.SymbolID, bool) {
	bounds := make([][]symbols.SymbolID, len(typeParams))
	for i, pt := range declared {
		for j, tp := range typeParams {
			if pt != tp || args[i].IsNull || !args[i].Type.IsValid() {
				continue
			}
			bounds[j] = appendUnique(bounds[j], args[i].Type)
		}
	}
	out := make([]symbols.SymbolID, len(typeParams))
	for j, bs := range bounds {
		fixed, ok := e.fix(bs)
		if !ok {
			return nil, false
		}
		out[j] = fixed
	}
	return out, true
}

func (e *Engine) fix(bounds []symbols.SymbolID) (symbols.SymbolID, bool) {
	var winner symbols.SymbolID
	for _, b := range bounds {
		all := true
		for _, o := range bounds {
			if k := e.c.Classify(o, b); k != conv.Identity && k != conv.ImplicitNumeric && k != conv.ImplicitReference && k != conv.Boxing {
				all = false
				break
			}
		}
		if all {
			if winner.IsValid() {
				return symbols.NoSymbolID, false
			}
			winner = b
		}
	}
	return winner, winner.IsValid()
}

// satisfiesConstraints checks class, struct and type constraints.
func (e *Engine) satisfiesConstraints(typeParams, typeArgs []symbols.SymbolID) bool {
	for i, tp := range typeParams {
		arg := typeArgs[i]
		if arg == e.t.ErrorType() {
			continue
		}
		info := e.t.Get(tp).TypeParam
		if info.ClassConstraint && !e.t.IsReferenceType(arg) {
			return false
		}
		if info.StructConstraint && !e.t.IsValueType(arg) {
			return false
		}
		for _, c := range info.Constraints {
			switch e.c.Classify(arg, c) {
			case conv.Identity, conv.ImplicitReference, conv.Boxing:
			default:
				return false
			}
		}
	}
	return true
}

func appendUnique(list []symbols.SymbolID, id symbols.SymbolID) []symbols.SymbolID {
	for _, x := range list {
		if x == id {
			return list
		}
	}
	return append(list, id)
}
