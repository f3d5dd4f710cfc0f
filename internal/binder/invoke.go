package binder

import (
	"strings"

	"semcore/internal/diag"
	"semcore/internal/overload"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/trace"
)

func (s *Session) invocation(id syntax.NodeID) operand {
	ref := s.ref(id)
	calleeRef := ref.Child(0)
	callee := s.bind(calleeRef.Node)
	args := s.arguments(ref.Child(1).Node)

	switch callee.class {
	case classError:
		return s.fail(id)
	case classMethodGroup:
		return s.invokeGroup(id, callee, args)
	case classLambda, classVoid:
		s.asValue(callee)
		return s.fail(id)
	}
	name := calleeRef.Text()
	if calleeRef.Kind() == syntax.KindMemberAccess {
		name = calleeRef.Child(1).Text()
	}
	s.errorf(diag.SemaNotInvocable, calleeRef.Span(), "non-invocable member '%s' cannot be used like a method", name)
	var candidates []symbols.SymbolID
	if callee.sym.IsValid() {
		candidates = []symbols.SymbolID{callee.sym}
	}
	if len(candidates) == 0 {
		return s.fail(id)
	}
	return s.reject(id, symbols.NoSymbolID, ReasonNotInvocable, candidates)
}

// invokeGroup applies a method group to its arguments.
func (s *Session) invokeGroup(id syntax.NodeID, callee operand, args []operand) operand {
	ref := s.ref(id)
	req := overload.Request{
		Name:       s.b.t.Get(callee.group[0]).Name,
		Candidates: callee.group,
		Args:       argumentsOf(args),
		TypeArgs:   callee.typeArgs,
		Within:     s.within(ref),
	}
	switch callee.recv {
	case receiverType:
		req.RequireStatic = true
	case receiverInstance, receiverBase:
		req.RequireInstance = true
	default:
		req.RequireStatic = s.b.res.IsStaticContext(ref)
	}
	res := s.resolve(req)

	calleeInfo := Info{MethodGroup: callee.group, TypeArguments: callee.typeArgs}
	if res.Reason == ReasonNone {
		calleeInfo.Symbol = res.Selected
		if len(res.TypeArgs) > 0 {
			calleeInfo.TypeArguments = res.TypeArgs
		}
	} else {
		calleeInfo.CandidateSymbols, calleeInfo.CandidateReason = res.Survivors, res.Reason
	}
	s.infos[callee.node] = calleeInfo
	if callRef := s.ref(callee.node); callRef.Kind() == syntax.KindMemberAccess {
		s.infos[callRef.Child(1).Node] = calleeInfo
	}

	if res.Reason != ReasonNone {
		s.reportOverload(s.ref(callee.node), req, res, args)
		return s.reject(id, s.commonReturn(res.Survivors), res.Reason, res.Survivors)
	}
	return s.applied(id, res, args)
}

// applied records a successful resolution and converts its arguments.
func (s *Session) applied(id syntax.NodeID, res overload.Result, args []operand) operand {
	for i, a := range args {
		s.convert(a, res.ParamTypes[i])
	}
	ret := res.ReturnType
	if !ret.IsValid() {
		ret = s.errorType()
	}
	s.record(id, Info{Type: ret, Symbol: res.Selected})
	op := operand{node: id, class: classValue, typ: ret, sym: res.Selected}
	switch sym := s.b.t.Get(res.Selected); {
	case ret == s.void():
		op.class = classVoid
	case sym.Kind == symbols.KindProperty:
		op.class = classVariable
	}
	return op
}

func (s *Session) resolve(req overload.Request) overload.Result {
	span := trace.Begin(s.b.tracer, trace.ScopeNode, "overload", s.spanID)
	span.WithExtra("name", req.Name)
	res := s.b.engine.Resolve(req)
	span.WithExtra("reason", res.Reason.String()).End("")
	return res
}

func argumentsOf(args []operand) []overload.Argument {
	out := make([]overload.Argument, len(args))
	for i, a := range args {
		out[i] = a.argument()
	}
	return out
}

// commonReturn is the return type every survivor shares, or the error type.
func (s *Session) commonReturn(survivors []symbols.SymbolID) symbols.SymbolID {
	var typ symbols.SymbolID
	for i, c := range survivors {
		t := s.b.t.Get(c).Type
		if ts := s.b.t.Get(t); ts != nil && ts.Kind == symbols.KindTypeParameter {
			return s.errorType()
		}
		if i > 0 && t != typ {
			return s.errorType()
		}
		typ = t
	}
	if !typ.IsValid() {
		return s.errorType()
	}
	return typ
}

// reportOverload turns a failed resolution into one diagnostic. Arguments
// that already failed suppress it.
func (s *Session) reportOverload(at syntax.Ref, req overload.Request, res overload.Result, args []operand) {
	for _, a := range args {
		if a.class == classError {
			return
		}
	}
	sp := at.Span()
	name := req.Name
	switch res.Reason {
	case ReasonAmbiguous:
		s.errorf(diag.SemaAmbiguousCall, sp, "the call is ambiguous between the following methods or properties: '%s' and '%s'",
			s.display(res.Survivors[0]), s.display(res.Survivors[1]))
	case ReasonWrongArity:
		s.errorf(diag.SemaWrongArity, sp, "no overload of '%s' takes %d type arguments", name, len(req.TypeArgs))
	case ReasonInaccessible:
		s.errorf(diag.SemaInaccessible, sp, "'%s' is inaccessible due to its protection level", s.display(res.Survivors[0]))
	case ReasonStaticInstanceMismatch:
		if req.RequireStatic {
			s.errorf(diag.SemaObjectRequired, sp, "an object reference is required for the non-static member '%s'", s.display(res.Survivors[0]))
		} else {
			s.errorf(diag.SemaStaticViaInstance, sp, "member '%s' cannot be accessed with an instance reference; qualify it with a type name instead", s.display(res.Survivors[0]))
		}
	default:
		switch res.Detail {
		case overload.DetailArity:
			s.errorf(diag.SemaNoOverload, sp, "no overload for '%s' takes %d arguments", name, len(args))
		case overload.DetailInference:
			s.errorf(diag.SemaCannotInfer, sp, "the type arguments for method '%s' cannot be inferred from the usage", name)
		case overload.DetailConstraint:
			s.errorf(diag.SemaConstraintViolated, sp, "the type arguments for '%s' do not satisfy its constraints", name)
		default:
			s.argumentMismatch(sp, name, res.Survivors, args)
		}
	}
}

func (s *Session) argumentMismatch(sp source.Span, name string, survivors []symbols.SymbolID, args []operand) {
	names := make([]string, len(args))
	for i, a := range args {
		switch {
		case a.null:
			names[i] = "<null>"
		case a.class == classLambda:
			names[i] = "lambda expression"
		default:
			names[i] = s.display(a.typ)
		}
	}
	b := diag.ReportError(s.rep, diag.SemaArgumentMismatch, sp, "no overload of '"+name+"' accepts arguments ("+strings.Join(names, ", ")+")")
	for _, c := range survivors {
		if len(s.b.t.ParametersOf(c)) == len(args) {
			b.WithNote(s.b.t.Get(c).Span, "candidate: "+s.display(c))
		}
	}
	b.Emit()
}

func (s *Session) elementAccess(id syntax.NodeID) operand {
	ref := s.ref(id)
	recv := s.value(ref.Child(0).Node)
	args := s.arguments(ref.Child(1).Node)
	if recv.class == classError {
		return s.fail(id)
	}
	if recv.null {
		s.errorf(diag.SemaNoIndexer, ref.Span(), "cannot apply indexing with [] to an expression of type '<null>'")
		return s.fail(id)
	}
	indexers := s.indexersOf(s.lookupContainer(recv.typ))
	if len(indexers) == 0 {
		s.errorf(diag.SemaNoIndexer, ref.Span(), "cannot apply indexing with [] to an expression of type '%s'", s.display(recv.typ))
		return s.fail(id)
	}
	req := overload.Request{
		Name:            "this[]",
		Candidates:      indexers,
		Args:            argumentsOf(args),
		Within:          s.within(ref),
		RequireInstance: true,
	}
	res := s.resolve(req)
	if res.Reason != ReasonNone {
		s.reportOverload(ref, req, res, args)
		return s.reject(id, s.commonReturn(res.Survivors), res.Reason, res.Survivors)
	}
	return s.applied(id, res, args)
}

// indexersOf returns the indexers of the most derived level that has any.
func (s *Session) indexersOf(typ symbols.SymbolID) []symbols.SymbolID {
	for _, g := range s.b.t.AllMembersNamed(typ, "this[]") {
		var out []symbols.SymbolID
		for _, m := range g {
			if sym := s.b.t.Get(m); sym.Kind == symbols.KindProperty && sym.Property.IsIndexer {
				out = append(out, m)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func (s *Session) objectCreation(id syntax.NodeID) operand {
	ref := s.ref(id)
	typ := s.bindType(ref.Child(0).Node)
	args := s.arguments(ref.Child(1).Node)
	if s.isError(typ) {
		return s.fail(id)
	}
	sym := s.b.t.Get(typ)
	switch {
	case sym.Kind == symbols.KindTypeParameter:
		s.errorf(diag.SemaAbstractCreation, ref.Span(), "cannot create an instance of the type parameter '%s'", s.display(typ))
		return s.fail(id)
	case sym.Kind == symbols.KindNamedType && sym.Named.Kind == symbols.TypeInterface:
		s.errorf(diag.SemaAbstractCreation, ref.Span(), "cannot create an instance of the interface '%s'", s.display(typ))
		return s.fail(id)
	}

	var ctors []symbols.SymbolID
	for _, m := range s.b.t.LookupMember(typ, ".ctor") {
		if c := s.b.t.Get(m); c.Kind == symbols.KindMethod && c.Method.Kind == symbols.MethodConstructor && !c.IsStatic() {
			ctors = append(ctors, m)
		}
	}
	if len(ctors) == 0 {
		if len(args) > 0 {
			s.errorf(diag.SemaNoOverload, ref.Span(), "'%s' does not contain a constructor that takes %d arguments", s.display(typ), len(args))
			return s.reject(id, typ, ReasonNone, nil)
		}
		return s.recordOperand(operand{node: id, class: classValue, typ: typ})
	}
	req := overload.Request{
		Name:       ".ctor",
		Candidates: ctors,
		Args:       argumentsOf(args),
		Within:     s.within(ref),
	}
	res := s.resolve(req)
	if res.Reason != ReasonNone {
		s.reportOverload(ref, req, res, args)
		return s.reject(id, typ, res.Reason, res.Survivors)
	}
	for i, a := range args {
		s.convert(a, res.ParamTypes[i])
	}
	s.record(id, Info{Type: typ, Symbol: res.Selected})
	return operand{node: id, class: classValue, typ: typ, sym: res.Selected}
}
