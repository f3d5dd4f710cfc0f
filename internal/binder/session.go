package binder

import (
	"context"
	"fmt"
	"strconv"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/overload"
	"semcore/internal/scope"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/trace"
	"semcore/internal/types"
)

// Options configure a Binder.
type Options struct {
	Resolver *scope.Resolver // nil resolves against the table alone
	Tracer   trace.Tracer
}

// Binder holds everything binding reads: the declaration table and the
// services derived from it. It is immutable and safe for concurrent use.
type Binder struct {
	t      *symbols.Table
	res    *scope.Resolver
	conv   *conv.Classifier
	engine *overload.Engine
	tracer trace.Tracer
}

func New(t *symbols.Table, opts Options) *Binder {
	res := opts.Resolver
	if res == nil {
		res = scope.New(t)
	}
	c := conv.New(t)
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Binder{t: t, res: res, conv: c, engine: overload.New(t, c), tracer: tracer}
}

// WithResolver returns a binder that looks names up through r.
func (b *Binder) WithResolver(r *scope.Resolver) *Binder {
	cp := *b
	cp.res = r
	return &cp
}

func (b *Binder) Table() *symbols.Table { return b.t }
func (b *Binder) Resolver() *scope.Resolver { return b.res }
func (b *Binder) Classifier() *conv.Classifier { return b.conv }

// Bound is the outcome of binding one root: an Info for every expression
// node under it.
type Bound struct {
	Root  syntax.Ref
	Owner symbols.SymbolID
	Infos map[syntax.NodeID]Info
}

// BindRoot binds a registered binding root, or a snippet expression whose
// tree the binder's resolver anchors.
func (b *Binder) BindRoot(ctx context.Context, root syntax.Ref, rep diag.Reporter) (*Bound, error) {
	return b.NewSession(root, rep).Bind(ctx)
}

type mark uint8

const (
	markNotStarted mark = iota
	markInProgress
	markBound
)

// state is shared between a session and the nested sessions it opens to
// evaluate constants declared elsewhere.
type state struct {
	top        symbols.SymbolID
	marks      map[symbols.SymbolID]mark
	consts     map[symbols.SymbolID]constant.Value
	localTypes map[symbols.SymbolID]symbols.SymbolID
	rep        diag.Reporter // the top session's sink
	constError bool          // a constant diagnostic was already issued
	err        error
}

// Session binds one root. It is single-use and not safe for concurrent use.
type Session struct {
	b       *Binder
	ctx     context.Context
	rep     diag.Reporter
	root    syntax.Ref
	tree    *syntax.Tree
	owner   symbols.SymbolID
	snippet bool
	infos   map[syntax.NodeID]Info
	st      *state
	returns []symbols.SymbolID
	spanID  uint64
}

// NewSession prepares a session for root. Diagnostics go to rep.
func (b *Binder) NewSession(root syntax.Ref, rep diag.Reporter) *Session {
	owner := b.t.OwnerOf(root)
	snippet := !owner.IsValid()
	if snippet {
		_, owner = b.res.Root(root)
	}
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Session{
		b:       b,
		rep:     rep,
		root:    root,
		tree:    root.Tree,
		owner:   owner,
		snippet: snippet,
		infos:   make(map[syntax.NodeID]Info),
		st: &state{
			top:        owner,
			rep:        rep,
			marks:      make(map[symbols.SymbolID]mark),
			consts:     make(map[symbols.SymbolID]constant.Value),
			localTypes: make(map[symbols.SymbolID]symbols.SymbolID),
		},
	}
}

// Bind binds every expression under the session's root. A cancelled
// context yields an error wrapping ErrCancelled and no result.
func (s *Session) Bind(ctx context.Context) (*Bound, error) {
	s.ctx = ctx
	span := trace.Begin(s.b.tracer, trace.ScopePass, "bind", trace.CurrentSpan(ctx).SpanID)
	s.spanID = span.ID()
	span.WithExtra("owner", s.b.t.Display(s.owner))

	if !s.snippet {
		s.enter(s.owner)
	}
	s.bindRoot()
	if !s.snippet {
		s.leave(s.owner)
	}

	span.WithExtra("nodes", strconv.Itoa(len(s.infos))).End("")
	if s.st.err != nil {
		return nil, s.st.err
	}
	return &Bound{Root: s.root, Owner: s.owner, Infos: s.infos}, nil
}

// enter marks a member body in progress. An accessor also marks its
// property so a getter that names its own property is recognised.
func (s *Session) enter(owner symbols.SymbolID) {
	sym := s.b.t.Get(owner)
	if sym == nil {
		return
	}
	s.st.marks[owner] = markInProgress
	if sym.Kind == symbols.KindAccessor {
		s.st.marks[sym.Accessor.Property] = markInProgress
	}
}

func (s *Session) leave(owner symbols.SymbolID) {
	sym := s.b.t.Get(owner)
	if sym == nil {
		return
	}
	s.st.marks[owner] = markBound
	if sym.Kind == symbols.KindAccessor {
		s.st.marks[sym.Accessor.Property] = markBound
	}
}

// nested opens a quiet session over another root that shares this
// session's markers. Constant evaluation uses it.
func (s *Session) nested(root syntax.Ref) *Session {
	return &Session{
		b:      s.b,
		ctx:    s.ctx,
		rep:    diag.NopReporter{},
		root:   root,
		tree:   root.Tree,
		owner:  s.b.t.OwnerOf(root),
		infos:  make(map[syntax.NodeID]Info),
		st:     s.st,
		spanID: s.spanID,
	}
}

func (s *Session) bindRoot() {
	root := s.root.Node
	switch s.root.Kind() {
	case syntax.KindBlock:
		s.returns = append(s.returns, s.returnType())
		s.block(root)
	case syntax.KindArrowBody:
		ret := s.returnType()
		s.returns = append(s.returns, ret)
		body := s.tree.Child(root, 0)
		if ret == s.void() || !ret.IsValid() {
			s.statementExpr(body)
			return
		}
		s.convert(s.value(body), ret)
	default:
		if s.snippet {
			s.returns = append(s.returns, symbols.NoSymbolID)
			s.bind(root)
			return
		}
		s.initializer(root)
	}
}

// returnType is the type the root's value converts to: the return type of
// a method or accessor, or the type of a field.
func (s *Session) returnType() symbols.SymbolID {
	sym := s.b.t.Get(s.owner)
	if sym == nil {
		return symbols.NoSymbolID
	}
	return sym.Type
}

// initializer binds a field initializer and records a const field's value.
func (s *Session) initializer(expr syntax.NodeID) {
	field := s.b.t.Get(s.owner)
	if field == nil || field.Kind != symbols.KindField {
		s.bind(expr)
		return
	}
	op := s.convert(s.value(expr), field.Type)
	if !field.Flags.Has(symbols.FlagConst) {
		return
	}
	v := s.constantOf(op, field.Type)
	if !v.IsValid() && op.class != classError && !s.st.constError {
		s.errorf(diag.SemaConstNotConstant, s.ref(expr).Span(), "the expression being assigned to '%s' must be constant", s.display(s.owner))
	}
	s.st.consts[s.owner] = v
}

// cancelled checks the context once per sub-expression.
func (s *Session) cancelled() bool {
	if s.st.err != nil {
		return true
	}
	if s.ctx == nil {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.st.err = fmt.Errorf("%w: %w", ErrCancelled, err)
		return true
	}
	return false
}

func (s *Session) ref(id syntax.NodeID) syntax.Ref { return syntax.Ref{Tree: s.tree, Node: id} }

func (s *Session) errorType() symbols.SymbolID { return s.b.t.ErrorType() }

func (s *Session) special(st types.SpecialType) symbols.SymbolID { return s.b.t.TypeOf(st) }

func (s *Session) void() symbols.SymbolID { return s.special(types.Void) }

func (s *Session) display(id symbols.SymbolID) string { return s.b.t.Display(id) }

func (s *Session) isError(typ symbols.SymbolID) bool { return typ == s.errorType() }

// within is the type accessibility is checked from.
func (s *Session) within(at syntax.Ref) symbols.SymbolID { return s.b.res.EnclosingType(at) }
