package symbols_test

import (
	"slices"
	"testing"

	"semcore/internal/diag"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/testkit"
	"semcore/internal/types"
)

func collect(t *testing.T, src string) (*symbols.Table, testkit.Parsed) {
	t.Helper()
	p := testkit.Parse(t, src)
	testkit.RequireNoErrors(t, p.Diags)
	tab := symbols.Collect([]*syntax.Tree{p.Tree}, symbols.Options{Reporter: diag.BagReporter{Bag: p.Diags}})
	return tab, p
}

func typeNamed(t *testing.T, tab *symbols.Table, name string) symbols.SymbolID {
	t.Helper()
	for _, m := range tab.LookupMember(tab.Global, name) {
		if tab.Get(m).Kind == symbols.KindNamedType {
			return m
		}
	}
	t.Fatalf("type %s not declared", name)
	return symbols.NoSymbolID
}

func member(t *testing.T, tab *symbols.Table, container symbols.SymbolID, name string) symbols.SymbolID {
	t.Helper()
	found := tab.LookupMember(container, name)
	if len(found) == 0 {
		t.Fatalf("%s has no member %s", tab.Display(container), name)
	}
	return found[0]
}

func TestDisplayStrings(t *testing.T) {
	tab, p := collect(t, `
namespace N.M {
class C
{
    public int F = 1;
    int M(int i) => i;
    long M(long l) => l;
    public T G<T>(T t) where T : class => t;
    object this[string s] { get => s; set { } }
    int P { get; }
    C() { }
    public static C operator ++(C c) => c;
    public static explicit operator C(int i) => null;
    void V() { }
}
}`)
	testkit.RequireNoErrors(t, p.Diags)
	n := member(t, tab, tab.Global, "N")
	m := member(t, tab, n, "M")
	c := member(t, tab, m, "C")

	ms := tab.LookupMember(c, "M")
	cases := []struct {
		id   symbols.SymbolID
		want string
	}{
		{c, "N.M.C"},
		{member(t, tab, c, "F"), "System.Int32 N.M.C.F"},
		{ms[0], "System.Int32 N.M.C.M(System.Int32 i)"},
		{ms[1], "System.Int64 N.M.C.M(System.Int64 l)"},
		{member(t, tab, c, "G"), "T N.M.C.G<T>(T t)"},
		{member(t, tab, c, "P"), "System.Int32 N.M.C.P { get; }"},
		{member(t, tab, c, ".ctor"), "N.M.C..ctor()"},
		{member(t, tab, c, types.OpIncrement), "N.M.C N.M.C.op_Increment(N.M.C c)"},
		{member(t, tab, c, types.OpExplicit), "N.M.C N.M.C.op_Explicit(System.Int32 i)"},
		{member(t, tab, c, "V"), "void N.M.C.V()"},
		{tab.Global, "<global namespace>"},
		{tab.ErrorType(), "?"},
	}
	for _, tc := range cases {
		if got := tab.Display(tc.id); got != tc.want {
			t.Errorf("display = %q, want %q", got, tc.want)
		}
	}

	indexer := member(t, tab, c, "this[]")
	if got := tab.Display(indexer); got != "System.Object N.M.C.this[System.String s] { get; set; }" {
		t.Errorf("indexer display = %q", got)
	}
	setter := tab.Get(indexer).Property.Setter
	if got := tab.Display(setter); got != "void N.M.C.this[System.String s].set" {
		t.Errorf("setter display = %q", got)
	}
}

func TestLookupMemberKeepsDeclarationOrder(t *testing.T) {
	tab, _ := collect(t, "class C { int M(int i) => i; long M(long l) => l; string M(string s) => s; }")
	c := typeNamed(t, tab, "C")
	ms := tab.LookupMember(c, "M")
	if len(ms) != 3 {
		t.Fatalf("overloads = %d, want 3", len(ms))
	}
	for i, want := range []types.SpecialType{types.Int32, types.Int64, types.String} {
		params := tab.ParametersOf(ms[i])
		if len(params) != 1 || tab.SpecialType(tab.Get(params[0]).Type) != want {
			t.Fatalf("overload %d: params %v", i, params)
		}
	}
	if got := tab.LookupMember(c, "Missing"); got != nil {
		t.Fatalf("unexpected members %v", got)
	}
}

func TestGenericTypeParameterOwnedByMethod(t *testing.T) {
	tab, _ := collect(t, "class C { public T M<T>(T t) where T : class => t; }")
	m := member(t, tab, typeNamed(t, tab, "C"), "M")
	tps := tab.TypeParametersOf(m)
	if len(tps) != 1 {
		t.Fatalf("type params = %v", tps)
	}
	tp := tab.Get(tps[0])
	if tp.Kind != symbols.KindTypeParameter || tp.Container != m {
		t.Fatalf("type parameter kind %v container %v", tp.Kind, tp.Container)
	}
	if !tp.TypeParam.ClassConstraint || !tab.IsReferenceType(tps[0]) {
		t.Fatalf("class constraint not recorded")
	}
	if tab.Get(m).Type != tps[0] {
		t.Fatalf("return type = %s", tab.Display(tab.Get(m).Type))
	}
	param := tab.Get(tab.ParametersOf(m)[0])
	if param.Type != tps[0] || param.Container != m {
		t.Fatalf("parameter type %s container %v", tab.Display(param.Type), param.Container)
	}
}

func TestIndexerAccessorOwnsParameters(t *testing.T) {
	tab, _ := collect(t, "class C { public int this[int i] => i; }")
	indexer := member(t, tab, typeNamed(t, tab, "C"), "this[]")
	prop := tab.Get(indexer)
	if !prop.Property.IsIndexer || !prop.Property.Getter.IsValid() || prop.Property.Setter.IsValid() {
		t.Fatalf("indexer accessors: %+v", prop.Property)
	}
	getter := prop.Property.Getter
	acc := tab.Get(getter)
	if acc.Kind != symbols.KindAccessor || acc.Accessor.Property != indexer || acc.Name != "get_Item" {
		t.Fatalf("getter = %+v", acc)
	}
	params := tab.ParametersOf(getter)
	if len(params) != 1 || tab.Get(params[0]).Container != getter || tab.Get(params[0]).Name != "i" {
		t.Fatalf("getter params = %v", params)
	}
	if !acc.Flags.Has(symbols.FlagExpressionBodied) {
		t.Fatalf("synthesized getter is not marked expression bodied")
	}
	if owner := tab.OwnerOf(acc.Accessor.Body); owner != getter {
		t.Fatalf("body owner = %v, want getter %v", owner, getter)
	}
}

func TestSetterGetsValueParameter(t *testing.T) {
	tab, _ := collect(t, "class C { int F; int P { get => F; set { F = value; } } }")
	prop := tab.Get(member(t, tab, typeNamed(t, tab, "C"), "P"))
	params := tab.ParametersOf(prop.Property.Setter)
	if len(params) != 1 || tab.Get(params[0]).Name != "value" {
		t.Fatalf("setter params = %v", params)
	}
	if tab.SpecialType(tab.Get(params[0]).Type) != types.Int32 {
		t.Fatalf("value type = %s", tab.Display(tab.Get(params[0]).Type))
	}
}

func TestOperatorsGetCanonicalNames(t *testing.T) {
	tab, _ := collect(t, `
class Program
{
    public static Program operator ++(Program p) => p;
    public static Program operator +(Program a, Program b) => a;
    public static implicit operator int(Program p) => 0;
    public static explicit operator Program(int i) => null;
}`)
	prog := typeNamed(t, tab, "Program")
	cases := []struct {
		name string
		kind symbols.MethodKind
	}{
		{types.OpIncrement, symbols.MethodUserDefinedOperator},
		{types.OpAddition, symbols.MethodUserDefinedOperator},
		{types.OpImplicit, symbols.MethodConversion},
		{types.OpExplicit, symbols.MethodConversion},
	}
	for _, tc := range cases {
		m := tab.Get(member(t, tab, prog, tc.name))
		if m.Method.Kind != tc.kind || !m.IsStatic() {
			t.Errorf("%s: kind %v static %v", tc.name, m.Method.Kind, m.IsStatic())
		}
	}
}

func TestDeclarationDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"duplicate field", "class C { int F; int F; }", diag.SemaDuplicateMember},
		{"duplicate method", "class C { void M(int a) { } void M(int b) { } }", diag.SemaDuplicateMember},
		{"duplicate type", "class C { } class C { }", diag.SemaDuplicateMember},
		{"duplicate parameter", "class C { void M(int a, int a) { } }", diag.SemaDuplicateMember},
		{"duplicate local", "class C { void M() { int x = 1; int x = 2; } }", diag.SemaDuplicateMember},
		{"unknown type", "class C { Missing F; }", diag.SemaUnknownType},
		{"cyclic base", "class A : B { } class B : A { }", diag.SemaCyclicBase},
		{"generic type", "class G<T> { }", diag.SemaGenericTypeUnsupported},
		{"generic type reference", "class C { List<int> F; }", diag.SemaGenericTypeUnsupported},
		{"unknown using", "using Nowhere; class C { }", diag.SemaNameNotFound},
		{"missing body", "class C { void M(); }", diag.SynExpectBody},
		{"const without value", "class C { const int K; }", diag.SemaConstNotConstant},
		{"instance operator", "class C { public C operator ++(C c) => c; }", diag.SynModifierNotValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testkit.Parse(t, tc.src)
			symbols.Collect([]*syntax.Tree{p.Tree}, symbols.Options{Reporter: diag.BagReporter{Bag: p.Diags}})
			if !slices.Contains(testkit.Codes(p.Diags), tc.want.ID()) {
				t.Fatalf("codes %v do not contain %s", testkit.Codes(p.Diags), tc.want.ID())
			}
		})
	}
}

func TestOverloadsAreNotDuplicates(t *testing.T) {
	tab, p := collect(t, "class C { int M(int i) => i; long M(long l) => l; int this[int i] => i; int this[string s] => 0; }")
	testkit.RequireNoErrors(t, p.Diags)
	if n := len(tab.LookupMember(typeNamed(t, tab, "C"), "this[]")); n != 2 {
		t.Fatalf("indexers = %d", n)
	}
}

func TestBasesAndInterfaces(t *testing.T) {
	tab, _ := collect(t, "interface I { } interface J : I { } class A : J { } class B : A, I { } struct S : I { }")
	a, b, s := typeNamed(t, tab, "A"), typeNamed(t, tab, "B"), typeNamed(t, tab, "S")
	i, j := typeNamed(t, tab, "I"), typeNamed(t, tab, "J")
	object := tab.TypeOf(types.Object)
	if tab.BaseOf(a) != object || tab.BaseOf(b) != a {
		t.Fatalf("bases: A=%v B=%v", tab.BaseOf(a), tab.BaseOf(b))
	}
	if !tab.IsDerivedFrom(b, object) || tab.IsDerivedFrom(a, b) {
		t.Fatalf("derivation wrong")
	}
	if !tab.Implements(a, i) || !tab.Implements(b, j) || !tab.Implements(s, i) || tab.Implements(s, j) {
		t.Fatalf("interface implementation wrong")
	}
	if !tab.IsValueType(s) || tab.IsReferenceType(s) || !tab.IsReferenceType(i) {
		t.Fatalf("value/reference classification wrong")
	}
}

func TestNamespacesMergeAndUsingsImport(t *testing.T) {
	ps := testkit.ParseFiles(t,
		"namespace Lib { class A { } }",
		"namespace Lib { class B : A { } } namespace App { using Lib; class C : B { } }")
	bag := ps[0].Diags
	tab := symbols.Collect([]*syntax.Tree{ps[0].Tree, ps[1].Tree}, symbols.Options{Reporter: diag.BagReporter{Bag: bag}})
	testkit.RequireNoErrors(t, bag)
	lib := tab.LookupMember(tab.Global, "Lib")
	if len(lib) != 1 {
		t.Fatalf("Lib declared %d times", len(lib))
	}
	if n := len(tab.MembersOf(lib[0])); n != 2 {
		t.Fatalf("Lib members = %d", n)
	}
	app := member(t, tab, tab.Global, "App")
	c := member(t, tab, app, "C")
	if got := tab.Display(tab.BaseOf(c)); got != "Lib.B" {
		t.Fatalf("base of C = %s", got)
	}
}

func TestLocalsAndLambdaParameters(t *testing.T) {
	tab, p := collect(t, "class C { int M(int a) { var x = a; int y = 2; return x; } object L => (int q) => q; }")
	block := testkit.FindKind(p.Tree, syntax.KindBlock)
	locals := tab.LocalsOf(syntax.Ref{Tree: p.Tree, Node: block})
	if len(locals) != 2 {
		t.Fatalf("locals = %v", locals)
	}
	x := tab.Get(locals[0])
	if x.Name != "x" || !x.Flags.Has(symbols.FlagImplicitlyTyped) || x.Type.IsValid() {
		t.Fatalf("x = %+v", x)
	}
	if y := tab.Get(locals[1]); tab.SpecialType(y.Type) != types.Int32 {
		t.Fatalf("y type = %s", tab.Display(y.Type))
	}

	lambdaNode := testkit.FindKind(p.Tree, syntax.KindLambda)
	lambda := tab.DeclaredSymbol(syntax.Ref{Tree: p.Tree, Node: lambdaNode})
	ls := tab.Get(lambda)
	if ls == nil || ls.Method.Kind != symbols.MethodAnonymous {
		t.Fatalf("lambda symbol = %+v", ls)
	}
	if owner := tab.Get(ls.Container); owner.Kind != symbols.KindAccessor {
		t.Fatalf("lambda owner kind = %v", owner.Kind)
	}
	if params := tab.ParametersOf(lambda); len(params) != 1 || tab.Get(params[0]).Container != lambda {
		t.Fatalf("lambda params = %v", params)
	}
}

func TestRootsInSourceOrder(t *testing.T) {
	tab, p := collect(t, "class C { int F = 1; int P => 2; int M() { return 3; } }")
	roots := tab.Roots(p.Tree)
	if len(roots) != 3 {
		t.Fatalf("roots = %d", len(roots))
	}
	for i := 1; i < len(roots); i++ {
		if roots[i-1].Ref.Span().Start > roots[i].Ref.Span().Start {
			t.Fatalf("roots out of order at %d", i)
		}
	}
	if got := tab.Get(roots[0].Owner).Kind; got != symbols.KindField {
		t.Fatalf("first root owner = %v", got)
	}
}

func TestIntrinsicOperatorsSeeded(t *testing.T) {
	tab, _ := collect(t, "class C { }")
	adds := tab.IntrinsicOperators(types.OpAddition)
	if len(adds) == 0 {
		t.Fatal("no intrinsic additions")
	}
	var concat bool
	for _, m := range adds {
		s := tab.Get(m)
		if s.Method.Kind != symbols.MethodIntrinsic || !s.IsStatic() {
			t.Fatalf("%s is not a static intrinsic", tab.Display(m))
		}
		if tab.SpecialType(s.Container) == types.String && tab.SpecialType(s.Type) == types.String {
			concat = true
		}
	}
	if !concat {
		t.Fatal("string concatenation missing")
	}
	if got := tab.Display(tab.TypeOf(types.Int32)); got != "System.Int32" {
		t.Fatalf("int display = %q", got)
	}
}

func TestAccessibility(t *testing.T) {
	tab, _ := collect(t, `
class A { private int priv; protected int prot; public int pub; class Nested { int Use() => 0; } }
class B : A { }
class D { }`)
	a, b, d := typeNamed(t, tab, "A"), typeNamed(t, tab, "B"), typeNamed(t, tab, "D")
	priv, prot, pub := member(t, tab, a, "priv"), member(t, tab, a, "prot"), member(t, tab, a, "pub")
	nested := member(t, tab, a, "Nested")
	cases := []struct {
		member, within symbols.SymbolID
		want           bool
	}{
		{priv, a, true},
		{priv, nested, true},
		{priv, b, false},
		{prot, b, true},
		{prot, d, false},
		{pub, d, true},
		{nested, d, false},
	}
	for i, tc := range cases {
		if got := tab.IsAccessible(tc.member, tc.within); got != tc.want {
			t.Errorf("case %d: %s within %s = %v", i, tab.Display(tc.member), tab.Display(tc.within), got)
		}
	}
}
