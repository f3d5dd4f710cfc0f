package overload

import (
	"slices"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/symbols"
)

// Argument is one actual argument of a call or operator.
type Argument struct {
	Type     symbols.SymbolID
	Constant constant.Value
	IsNull   bool
}

func (a Argument) operand() conv.Operand {
	return conv.Operand{Type: a.Type, Constant: a.Constant, IsNull: a.IsNull}
}

// Request describes one overload resolution problem. Candidates must be in
// declaration order.
type Request struct {
	Name            string
	Candidates      []symbols.SymbolID
	Args            []Argument
	TypeArgs        []symbols.SymbolID
	Within          symbols.SymbolID // type the reference appears in
	RequireStatic   bool
	RequireInstance bool
}

// Result is the outcome of Resolve. When Reason is ReasonNone, Selected is
// set and Survivors is empty; otherwise Selected is unset and Survivors
// lists the candidates to report, in declaration order.
type Result struct {
	Selected    symbols.SymbolID
	Reason      Reason
	Survivors   []symbols.SymbolID
	Conversions []conv.Kind        // per argument, for Selected
	ParamTypes  []symbols.SymbolID // Selected's parameter types after substitution
	TypeArgs    []symbols.SymbolID // inferred or explicit method type arguments
	ReturnType  symbols.SymbolID
	Detail      Detail // set on failure
}

// Engine runs overload resolution over one table.
type Engine struct {
	t *symbols.Table
	c *conv.Classifier
}

func New(t *symbols.Table, c *conv.Classifier) *Engine { return &Engine{t: t, c: c} }

// candidate is the per-candidate working state.
type candidate struct {
	id       symbols.SymbolID
	stage    stage
	typeArgs []symbols.SymbolID
	params   []symbols.SymbolID // substituted parameter types
	convs    []conv.Kind
	generic  bool
}

// Resolve picks the best applicable candidate.
func (e *Engine) Resolve(req Request) Result {
	cands := make([]*candidate, 0, len(req.Candidates))
	for _, id := range dedup(req.Candidates) {
		cands = append(cands, e.evaluate(id, req))
	}

	var applicable []*candidate
	for _, c := range cands {
		if c.stage == stageApplicable {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) == 0 {
		return Result{Reason: failureReason(cands), Survivors: ids(cands), Detail: furthest(cands)}
	}

	best := e.best(applicable, req.Args)
	if len(best) != 1 {
		return Result{Reason: ReasonAmbiguous, Survivors: ids(best)}
	}
	w := best[0]
	return Result{
		Selected:    w.id,
		Reason:      ReasonNone,
		Conversions: w.convs,
		ParamTypes:  w.params,
		TypeArgs:    w.typeArgs,
		ReturnType:  e.substitute(e.t.Get(w.id).Type, w.id, w.typeArgs),
	}
}

func (e *Engine) evaluate(id symbols.SymbolID, req Request) *candidate {
	c := &candidate{id: id}
	sym := e.t.Get(id)
	if sym == nil {
		return c
	}
	if !e.t.IsAccessible(id, req.Within) {
		c.stage = stageInaccessible
		return c
	}
	if (req.RequireStatic && !sym.IsStatic()) || (req.RequireInstance && sym.IsStatic()) {
		c.stage = stageStaticMismatch
		return c
	}
	typeParams := e.t.TypeParametersOf(id)
	c.generic = len(typeParams) > 0
	if len(req.TypeArgs) > 0 && len(req.TypeArgs) != len(typeParams) {
		c.stage = stageTypeArity
		return c
	}
	params := e.t.ParametersOf(id)
	if len(params) != len(req.Args) {
		c.stage = stageArity
		return c
	}
	declared := make([]symbols.SymbolID, len(params))
	for i, p := range params {
		declared[i] = e.t.Get(p).Type
	}

	switch {
	case len(req.TypeArgs) > 0:
		c.typeArgs = req.TypeArgs
	case c.generic:
		inferred, ok := e.infer(typeParams, declared, req.Args)
		if !ok {
			c.stage = stageInference
			return c
		}
		c.typeArgs = inferred
	}
	if c.generic && !e.satisfiesConstraints(typeParams, c.typeArgs) {
		c.stage = stageConstraint
		return c
	}

	c.params = make([]symbols.SymbolID, len(declared))
	c.convs = make([]conv.Kind, len(declared))
	for i, pt := range declared {
		c.params[i] = e.substitute(pt, id, c.typeArgs)
		k := e.c.ClassifyExpression(req.Args[i].operand(), c.params[i])
		if !k.IsImplicit() {
			c.stage = stageConversion
			return c
		}
		c.convs[i] = k
	}
	c.stage = stageApplicable
	return c
}

// substitute replaces a type parameter of method with its type argument.
func (e *Engine) substitute(typ, method symbols.SymbolID, typeArgs []symbols.SymbolID) symbols.SymbolID {
	s := e.t.Get(typ)
	if s == nil || s.Kind != symbols.KindTypeParameter || s.Container != method || s.Ordinal >= len(typeArgs) {
		return typ
	}
	return typeArgs[s.Ordinal]
}

// failureReason reports the shared early stage when every candidate
// stopped there, and OverloadResolutionFailure otherwise.
func failureReason(cands []*candidate) Reason {
	if len(cands) == 0 {
		return ReasonOverloadResolutionFailure
	}
	first := cands[0].stage
	for _, c := range cands[1:] {
		if c.stage != first {
			return ReasonOverloadResolutionFailure
		}
	}
	switch first {
	case stageInaccessible:
		return ReasonInaccessible
	case stageStaticMismatch:
		return ReasonStaticInstanceMismatch
	case stageTypeArity:
		return ReasonWrongArity
	}
	return ReasonOverloadResolutionFailure
}

func dedup(in []symbols.SymbolID) []symbols.SymbolID {
	out := make([]symbols.SymbolID, 0, len(in))
	for _, id := range in {
		if id.IsValid() && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func ids(cands []*candidate) []symbols.SymbolID {
	out := make([]symbols.SymbolID, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.id)
	}
	return out
}
