package overload_test

import (
	"slices"
	"testing"

	"semcore/internal/constant"
	"semcore/internal/conv"
	"semcore/internal/diag"
	"semcore/internal/overload"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/testkit"
	"semcore/internal/types"
)

const src = `
class C
{
    void M(int x) { }
    void M(long x) { }
    void N(long x) { }
    void N(double x) { }
    void A(long x, int y) { }
    void A(int x, long y) { }
    T G<T>(T t) => t;
    int G(int t) => t;
    T Pair<T>(T a, T b) => a;
    T Cls<T>(T t) where T : class => t;
    void O(object o) { }
    void O(string s) { }
    static void S() { }
    void I() { }
    private void P() { }
    void B(byte b) { }
}
class D { }
`

type fixture struct {
	tab *symbols.Table
	eng *overload.Engine
	c   symbols.SymbolID
	d   symbols.SymbolID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	p := testkit.Parse(t, src)
	tab := symbols.Collect([]*syntax.Tree{p.Tree}, symbols.Options{Reporter: diag.BagReporter{Bag: p.Diags}})
	testkit.RequireNoErrors(t, p.Diags)
	return fixture{
		tab: tab,
		eng: overload.New(tab, conv.New(tab)),
		c:   tab.LookupMember(tab.Global, "C")[0],
		d:   tab.LookupMember(tab.Global, "D")[0],
	}
}

func (f fixture) st(s types.SpecialType) symbols.SymbolID { return f.tab.TypeOf(s) }

func (f fixture) arg(s types.SpecialType) overload.Argument {
	return overload.Argument{Type: f.st(s)}
}

func (f fixture) group(name string) []symbols.SymbolID { return f.tab.LookupMember(f.c, name) }

// overloadOf finds the member of C named name whose first parameter has type first.
func (f fixture) overloadOf(t *testing.T, name string, first symbols.SymbolID) symbols.SymbolID {
	t.Helper()
	for _, id := range f.group(name) {
		ps := f.tab.ParametersOf(id)
		if len(ps) > 0 && f.tab.Get(ps[0]).Type == first {
			return id
		}
	}
	t.Fatalf("no %s(%s, ...)", name, f.tab.Display(first))
	return symbols.NoSymbolID
}

func (f fixture) resolve(name string, args ...overload.Argument) overload.Result {
	return f.eng.Resolve(overload.Request{Name: name, Candidates: f.group(name), Args: args, Within: f.c})
}

func TestFailureKeepsDeclarationOrder(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("M", f.arg(types.String))
	if res.Reason != overload.ReasonOverloadResolutionFailure || res.Detail != overload.DetailConversion {
		t.Fatalf("reason = %v detail = %v", res.Reason, res.Detail)
	}
	if res.Selected.IsValid() {
		t.Fatalf("selected %s on failure", f.tab.Display(res.Selected))
	}
	want := []symbols.SymbolID{
		f.overloadOf(t, "M", f.st(types.Int32)),
		f.overloadOf(t, "M", f.st(types.Int64)),
	}
	if !slices.Equal(res.Survivors, want) {
		t.Fatalf("survivors = %v, want %v", res.Survivors, want)
	}
}

func TestIdentityBeatsWidening(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		arg   types.SpecialType
		want  types.SpecialType
		convs conv.Kind
	}{
		{types.Int32, types.Int32, conv.Identity},
		{types.Int64, types.Int64, conv.Identity},
		{types.Int16, types.Int32, conv.ImplicitNumeric},
		{types.Byte, types.Int32, conv.ImplicitNumeric},
	}
	for _, tt := range tests {
		res := f.resolve("M", f.arg(tt.arg))
		if res.Reason != overload.ReasonNone {
			t.Fatalf("M(%v): reason %v", tt.arg, res.Reason)
		}
		if want := f.overloadOf(t, "M", f.st(tt.want)); res.Selected != want {
			t.Errorf("M(%v) selected %s", tt.arg, f.tab.Display(res.Selected))
		}
		if len(res.Conversions) != 1 || res.Conversions[0] != tt.convs {
			t.Errorf("M(%v) conversions = %v, want %v", tt.arg, res.Conversions, tt.convs)
		}
	}
}

func TestBetterTargetBreaksRankTie(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("N", f.arg(types.Int32))
	if want := f.overloadOf(t, "N", f.st(types.Int64)); res.Selected != want {
		t.Fatalf("N(int) selected %s (%v)", f.tab.Display(res.Selected), res.Reason)
	}
}

func TestAmbiguityListsTiedCandidates(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("A", f.arg(types.Int32), f.arg(types.Int32))
	if res.Reason != overload.ReasonAmbiguous {
		t.Fatalf("reason = %v", res.Reason)
	}
	if len(res.Survivors) != 2 {
		t.Fatalf("survivors = %v", res.Survivors)
	}
	if res.Survivors[0] != f.overloadOf(t, "A", f.st(types.Int64)) {
		t.Fatalf("survivors not in declaration order")
	}
}

func TestNonGenericPreferredOnTie(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("G", f.arg(types.Int32))
	if res.Reason != overload.ReasonNone || len(f.tab.TypeParametersOf(res.Selected)) != 0 {
		t.Fatalf("G(int) selected %s (%v)", f.tab.Display(res.Selected), res.Reason)
	}
	if res.ReturnType != f.st(types.Int32) {
		t.Fatalf("return type %s", f.tab.Display(res.ReturnType))
	}
}

func TestInferenceSubstitutes(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("G", f.arg(types.String))
	if res.Reason != overload.ReasonNone {
		t.Fatalf("G(string): %v", res.Reason)
	}
	if !slices.Equal(res.TypeArgs, []symbols.SymbolID{f.st(types.String)}) {
		t.Fatalf("type args = %v", res.TypeArgs)
	}
	if res.ReturnType != f.st(types.String) || res.ParamTypes[0] != f.st(types.String) {
		t.Fatalf("substitution: return %s param %s", f.tab.Display(res.ReturnType), f.tab.Display(res.ParamTypes[0]))
	}

	res = f.resolve("Pair", f.arg(types.Int32), f.arg(types.Int64))
	if res.Reason != overload.ReasonNone || res.ReturnType != f.st(types.Int64) {
		t.Fatalf("Pair(int, long): %v %s", res.Reason, f.tab.Display(res.ReturnType))
	}
	if res.Conversions[0] != conv.ImplicitNumeric || res.Conversions[1] != conv.Identity {
		t.Fatalf("conversions = %v", res.Conversions)
	}

	if res := f.resolve("Pair", f.arg(types.Int32), f.arg(types.String)); res.Detail != overload.DetailInference {
		t.Fatalf("Pair(int, string): %v %v", res.Reason, res.Detail)
	}
}

func TestConstraintsFilterCandidates(t *testing.T) {
	f := newFixture(t)
	if res := f.resolve("Cls", f.arg(types.Int32)); res.Reason != overload.ReasonOverloadResolutionFailure || res.Detail != overload.DetailConstraint {
		t.Fatalf("Cls(int): %v %v", res.Reason, res.Detail)
	}
	if res := f.resolve("Cls", f.arg(types.String)); res.Reason != overload.ReasonNone {
		t.Fatalf("Cls(string): %v", res.Reason)
	}
}

func TestExplicitTypeArguments(t *testing.T) {
	f := newFixture(t)
	long := f.st(types.Int64)
	res := f.eng.Resolve(overload.Request{
		Name: "G", Candidates: f.group("G"), Within: f.c,
		Args:     []overload.Argument{f.arg(types.Int32)},
		TypeArgs: []symbols.SymbolID{long},
	})
	if res.Reason != overload.ReasonNone || res.ReturnType != long {
		t.Fatalf("G<long>(int): %v %s", res.Reason, f.tab.Display(res.ReturnType))
	}
	res = f.eng.Resolve(overload.Request{
		Name: "G", Candidates: f.group("G"), Within: f.c,
		Args:     []overload.Argument{f.arg(types.Int32)},
		TypeArgs: []symbols.SymbolID{long, long},
	})
	if res.Reason != overload.ReasonWrongArity {
		t.Fatalf("G<long, long>: %v", res.Reason)
	}
}

func TestNullPrefersMoreSpecificReference(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("O", overload.Argument{IsNull: true, Type: f.st(types.Object), Constant: constant.Null()})
	if want := f.overloadOf(t, "O", f.st(types.String)); res.Selected != want {
		t.Fatalf("O(null) selected %s (%v)", f.tab.Display(res.Selected), res.Reason)
	}
}

func TestConstantArgumentNarrows(t *testing.T) {
	f := newFixture(t)
	res := f.resolve("B", overload.Argument{Type: f.st(types.Int32), Constant: constant.Int(types.Int32, 7)})
	if res.Reason != overload.ReasonNone || res.Conversions[0] != conv.ImplicitConstant {
		t.Fatalf("B(7): %v %v", res.Reason, res.Conversions)
	}
	res = f.resolve("B", overload.Argument{Type: f.st(types.Int32), Constant: constant.Int(types.Int32, 700)})
	if res.Reason != overload.ReasonOverloadResolutionFailure {
		t.Fatalf("B(700): %v", res.Reason)
	}
}

func TestEarlyStageReasons(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name string
		req  overload.Request
		want overload.Reason
	}{
		{"static", overload.Request{Candidates: f.group("S"), Within: f.c, RequireInstance: true}, overload.ReasonStaticInstanceMismatch},
		{"instance", overload.Request{Candidates: f.group("I"), Within: f.c, RequireStatic: true}, overload.ReasonStaticInstanceMismatch},
		{"private", overload.Request{Candidates: f.group("P"), Within: f.d}, overload.ReasonInaccessible},
		{"arity", overload.Request{Candidates: f.group("S"), Within: f.c, Args: []overload.Argument{f.arg(types.Int32)}}, overload.ReasonOverloadResolutionFailure},
		{"empty", overload.Request{Within: f.c}, overload.ReasonOverloadResolutionFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.eng.Resolve(tt.req)
			if res.Reason != tt.want {
				t.Fatalf("reason = %v, want %v", res.Reason, tt.want)
			}
			if !slices.Equal(res.Survivors, tt.req.Candidates) && len(tt.req.Candidates) > 0 {
				t.Fatalf("survivors = %v", res.Survivors)
			}
		})
	}
}
