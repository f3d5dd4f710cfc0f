package scope_test

import (
	"strings"
	"testing"

	"semcore/internal/diag"
	"semcore/internal/parser"
	"semcore/internal/scope"
	"semcore/internal/source"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/testkit"
)

type env struct {
	p   testkit.Parsed
	tab *symbols.Table
	r   *scope.Resolver
}

func setup(t *testing.T, src string) env {
	t.Helper()
	p := testkit.Parse(t, src)
	tab := symbols.Collect([]*syntax.Tree{p.Tree}, symbols.Options{Reporter: diag.BagReporter{Bag: p.Diags}})
	testkit.RequireNoErrors(t, p.Diags)
	return env{p: p, tab: tab, r: scope.New(tab)}
}

// at returns the deepest node starting at the n-th (zero-based) occurrence
// of marker in the source.
func (e env) at(t *testing.T, marker string, n int) syntax.Ref {
	t.Helper()
	text := string(e.p.File.Content)
	off := -1
	for i := 0; i <= n; i++ {
		next := strings.Index(text[off+1:], marker)
		if next < 0 {
			t.Fatalf("marker %q #%d not found", marker, n)
		}
		off += next + 1
	}
	id := e.p.Tree.NodeAt(uint32(off))
	return syntax.Ref{Tree: e.p.Tree, Node: id}
}

func (e env) display(ids []symbols.SymbolID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.tab.Display(id))
	}
	return out
}

func TestInnermostFirst(t *testing.T) {
	e := setup(t, `
class Base { public int x; public void M(long l) { } }
class C : Base
{
    int x;
    void M(int i) { }
    int Use(int x)
    {
        int y = x;
        return y;
    }
}`)
	got := e.display(e.r.Resolve(e.at(t, "x;", 2), "x"))
	want := []string{"System.Int32 x", "System.Int32 C.x", "System.Int32 Base.x"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("x resolves to %q, want %q", got, want)
	}

	groups := e.r.ResolveGroups(e.at(t, "x;", 2), "x", symbols.KindMaskAny)
	if len(groups) != 3 || groups[0].Level != scope.LevelParameter || groups[1].Level != scope.LevelMember || groups[2].Level != scope.LevelMember {
		t.Fatalf("groups = %+v", groups)
	}
	if y := e.r.Resolve(e.at(t, "y;", 0), "y"); len(y) != 1 || e.tab.Get(y[0]).Kind != symbols.KindLocal {
		t.Fatalf("y = %v", e.display(y))
	}
}

func TestOverloadsAcrossBaseChain(t *testing.T) {
	e := setup(t, `
class Base { public void M(long l) { } }
class C : Base
{
    void M(int i) { }
    void M(string s) { }
    void Call() { M(1); }
}`)
	got := e.display(e.r.Resolve(e.at(t, "M(1)", 0), "M"))
	want := "void C.M(System.Int32 i)|void C.M(System.String s)|void Base.M(System.Int64 l)"
	if strings.Join(got, "|") != want {
		t.Fatalf("M = %q", got)
	}
}

func TestIndexerParameterBelongsToAccessor(t *testing.T) {
	e := setup(t, "class C { public int this[int i] => i; }")
	ids := e.r.Resolve(e.at(t, "i;", 0), "i")
	if len(ids) != 1 {
		t.Fatalf("i = %v", e.display(ids))
	}
	param := e.tab.Get(ids[0])
	acc := e.tab.Get(param.Container)
	if param.Kind != symbols.KindParameter || acc.Kind != symbols.KindAccessor {
		t.Fatalf("param kind %v container kind %v", param.Kind, acc.Kind)
	}
	if e.tab.Get(acc.Accessor.Property).Property.IsIndexer != true {
		t.Fatal("accessor is not associated with the indexer")
	}
}

func TestGenericMethodTypeParameter(t *testing.T) {
	e := setup(t, "class C { public T M<T>(T t) where T : class => t; }")
	at := e.at(t, "t;", 0)
	ids := e.r.Resolve(at, "T")
	if len(ids) != 1 || e.tab.Get(ids[0]).Kind != symbols.KindTypeParameter {
		t.Fatalf("T = %v", e.display(ids))
	}
	if types := e.r.ResolveType(at, "T"); len(types) != 1 || types[0] != ids[0] {
		t.Fatalf("ResolveType(T) = %v", types)
	}
}

func TestLambdaParametersShadow(t *testing.T) {
	e := setup(t, "class C { int a; object P => (int a) => a; }")
	ids := e.r.ResolveGroups(e.at(t, "a;", 1), "a", symbols.KindMaskAny)
	if len(ids) != 2 || ids[0].Level != scope.LevelLambdaParameter || ids[1].Level != scope.LevelMember {
		t.Fatalf("groups = %+v", ids)
	}
	fn := e.r.Function(e.at(t, "a;", 1))
	if e.tab.Get(fn).Method.Kind != symbols.MethodAnonymous {
		t.Fatalf("function = %s", e.tab.Display(fn))
	}
}

func TestNamespacesAndUsings(t *testing.T) {
	e := setup(t, `
namespace Lib { class Helper { } }
namespace App.Core
{
    using Lib;
    class Helper2 { }
    class C { object M() => Helper2; object N() => Helper; }
}`)
	at := e.at(t, "Helper2;", 0)
	if ids := e.r.ResolveGroups(at, "Helper2", symbols.KindMaskAny); len(ids) != 1 || ids[0].Level != scope.LevelNamespace {
		t.Fatalf("Helper2 groups = %+v", ids)
	}
	at = e.at(t, "Helper;", 0)
	groups := e.r.ResolveGroups(at, "Helper", symbols.KindMaskAny)
	if len(groups) != 1 || groups[0].Level != scope.LevelUsing {
		t.Fatalf("Helper groups = %+v", groups)
	}
	if ids := e.r.Resolve(at, "App"); len(ids) != 1 || e.tab.Get(ids[0]).Kind != symbols.KindNamespace {
		t.Fatalf("App = %v", e.display(ids))
	}
	if ids := e.r.Resolve(at, "Missing"); len(ids) != 0 {
		t.Fatalf("Missing = %v", e.display(ids))
	}
}

func TestOperatorsAndConstructorsAreNotNames(t *testing.T) {
	e := setup(t, `
class C
{
    C() { }
    public static C operator ++(C c) => c;
    int M() => 0;
}`)
	at := e.at(t, "0;", 0)
	for _, name := range []string{".ctor", "op_Increment", "op_Equality", "get_P"} {
		if ids := e.r.Resolve(at, name); len(ids) != 0 {
			t.Errorf("%s resolves to %v", name, e.display(ids))
		}
	}
}

func TestContextQueries(t *testing.T) {
	e := setup(t, `
class Outer
{
    static int S => 1;
    int I => 2;
    class Inner { int F = 3; }
}`)
	if !e.r.IsStaticContext(e.at(t, "1;", 0)) {
		t.Error("static property body is not static")
	}
	if e.r.IsStaticContext(e.at(t, "2;", 0)) {
		t.Error("instance property body is static")
	}
	at := e.at(t, "3;", 0)
	if got := e.tab.Display(e.r.EnclosingType(at)); got != "Outer.Inner" {
		t.Errorf("enclosing type = %s", got)
	}
	root, owner := e.r.Root(at)
	if !root.IsValid() || e.tab.Get(owner).Kind != symbols.KindField {
		t.Errorf("root owner = %v", owner)
	}
	if e.r.Function(at).IsValid() {
		t.Error("field initializer has a function")
	}
}

func TestAnchoredSnippet(t *testing.T) {
	e := setup(t, "class C { int F; int M(int p) { return p; } }")
	anchor := e.at(t, "p;", 0)

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("snippet", []byte("p + F")))
	snippet := parser.ParseExpression(file, parser.Options{})
	r := e.r.Anchored(snippet, anchor)

	ref := syntax.Ref{Tree: snippet, Node: snippet.NodeAt(0)}
	if ids := r.Resolve(ref, "p"); len(ids) != 1 || e.tab.Get(ids[0]).Kind != symbols.KindParameter {
		t.Fatalf("p = %v", e.display(ids))
	}
	if ids := r.Resolve(ref, "F"); len(ids) != 1 || e.tab.Get(ids[0]).Kind != symbols.KindField {
		t.Fatalf("F = %v", e.display(ids))
	}
	if ids := r.ResolveType(ref, "C"); len(ids) != 1 {
		t.Fatalf("C = %v", ids)
	}
	if e.r.Resolve(ref, "p") != nil {
		t.Fatal("unanchored resolver sees through the snippet")
	}
}
