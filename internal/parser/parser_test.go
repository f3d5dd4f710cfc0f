package parser_test

import (
	"testing"

	"semcore/internal/diag"
	"semcore/internal/parser"
	"semcore/internal/source"
	"semcore/internal/syntax"
	"semcore/internal/token"
)

func parse(t *testing.T, src string) (*syntax.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cs", []byte(src)))
	bag := diag.NewBag(0)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
}

func parseClean(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	tree, bag := parse(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Errorf("%s %s at %s", d.Code.ID(), d.Message, d.Primary)
		}
		t.FailNow()
	}
	return tree
}

// find returns the first node of kind k in source order.
func find(tree *syntax.Tree, k syntax.Kind) syntax.NodeID {
	found := syntax.NoNode
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if found.IsValid() {
			return false
		}
		if tree.Kind(id) == k {
			found = id
			return false
		}
		return true
	})
	return found
}

func count(tree *syntax.Tree, k syntax.Kind) int {
	n := 0
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if tree.Kind(id) == k {
			n++
		}
		return true
	})
	return n
}

func TestExpressionBodiedProperty(t *testing.T) {
	tree := parseClean(t, "class C { int P => 10; }")
	prop := find(tree, syntax.KindPropertyDecl)
	if tree.Text(prop) != "P" {
		t.Fatalf("property name = %q", tree.Text(prop))
	}
	body := tree.Child(prop, 2)
	if tree.Kind(body) != syntax.KindArrowBody {
		t.Fatalf("body kind = %v", tree.Kind(body))
	}
	lit := tree.Child(body, 0)
	if tree.Kind(lit) != syntax.KindLiteral || tree.Node(lit).Op != token.IntLit {
		t.Fatalf("literal = %v", tree.Kind(lit))
	}
}

func TestMembers(t *testing.T) {
	src := `
namespace N.M {
  using System;
  public class C : B, I {
    const int K = 1, L = 2;
    static int F;
    public C(int x) { }
    int this[int i] { get { return i; } set { } }
    T Id<T>(T t) where T : class, I => t;
    extern void X();
    public static C operator ++(C c) => c;
    public static explicit operator int(C c) { return 1; }
    string S { get; set; }
    struct Inner { }
  }
  interface I { }
  class B { }
}`
	tree := parseClean(t, src)
	ns := find(tree, syntax.KindNamespaceDecl)
	if tree.Text(ns) != "N.M" {
		t.Fatalf("namespace = %q", tree.Text(ns))
	}
	for _, k := range []syntax.Kind{
		syntax.KindUsingDirective, syntax.KindConstructorDecl, syntax.KindIndexerDecl,
		syntax.KindConstraintClause, syntax.KindClassConstraint, syntax.KindOperatorDecl,
		syntax.KindConversionDecl, syntax.KindStructDecl, syntax.KindInterfaceDecl,
	} {
		if count(tree, k) != 1 {
			t.Errorf("want one %v, got %d", k, count(tree, k))
		}
	}
	if n := count(tree, syntax.KindVariableDeclarator); n != 3 {
		t.Fatalf("declarators = %d", n)
	}
	if n := count(tree, syntax.KindAccessorDecl); n != 4 {
		t.Fatalf("accessors = %d", n)
	}
	op := find(tree, syntax.KindOperatorDecl)
	if tree.Node(op).Op != token.PlusPlus || !tree.Node(op).Flags.Has(syntax.FlagStatic) {
		t.Fatalf("operator = %+v", tree.Node(op))
	}
	conv := find(tree, syntax.KindConversionDecl)
	if !tree.Node(conv).Flags.Has(syntax.FlagExplicit) {
		t.Fatalf("conversion flags = %v", tree.Node(conv).Flags)
	}
	m := find(tree, syntax.KindMethodDecl)
	if tree.Text(m) != "Id" || !tree.Child(m, 1).IsValid() || !tree.Child(m, 3).IsValid() {
		t.Fatalf("generic method slots wrong")
	}
}

func TestPrecedence(t *testing.T) {
	tree := parseClean(t, "class C { int P => 1 + 2 * 3 == 7 && true; }")
	body := tree.Child(find(tree, syntax.KindArrowBody), 0)
	if tree.Node(body).Op != token.AndAnd {
		t.Fatalf("top = %v", tree.Node(body).Op)
	}
	eq := tree.Child(body, 0)
	if tree.Node(eq).Op != token.EqEq {
		t.Fatalf("eq = %v", tree.Node(eq).Op)
	}
	add := tree.Child(eq, 0)
	if tree.Node(add).Op != token.Plus || tree.Node(tree.Child(add, 1)).Op != token.Star {
		t.Fatalf("additive shape wrong")
	}
}

func TestCastVersusParenthesized(t *testing.T) {
	tree := parseClean(t, "class C { object A => (int)x; object B => (x) + y; object D => (C)this; }")
	if n := count(tree, syntax.KindCast); n != 2 {
		t.Fatalf("casts = %d", n)
	}
	if n := count(tree, syntax.KindParenthesized); n != 1 {
		t.Fatalf("parenthesized = %d", n)
	}
}

func TestGenericInvocationVersusComparison(t *testing.T) {
	tree := parseClean(t, "class C { object A => M<int>(1); bool B => a < b; bool D => a < b > (c); }")
	if n := count(tree, syntax.KindGenericName); n != 2 {
		t.Fatalf("generic names = %d", n)
	}
}

func TestLambdas(t *testing.T) {
	tree := parseClean(t, "class C { void M() { F(x => x + 1); F(() => 1); F((int a, int b) => a); } }")
	if n := count(tree, syntax.KindLambda); n != 3 {
		t.Fatalf("lambdas = %d", n)
	}
	if n := count(tree, syntax.KindParameter); n != 3 {
		t.Fatalf("lambda params = %d", n)
	}
}

func TestStatements(t *testing.T) {
	tree := parseClean(t, "class C { int M(int a) { var x = a; int y = x, z; if (x > 0) return x; else { y++; } return -y; } }")
	if n := count(tree, syntax.KindLocalDecl); n != 2 {
		t.Fatalf("locals = %d", n)
	}
	if count(tree, syntax.KindVarType) != 1 || count(tree, syntax.KindIfStmt) != 1 {
		t.Fatalf("statement kinds wrong")
	}
	if count(tree, syntax.KindPostfixUnary) != 1 || count(tree, syntax.KindPrefixUnary) != 1 {
		t.Fatalf("unary kinds wrong")
	}
}

func TestMemberAccessAndIndexing(t *testing.T) {
	tree := parseClean(t, `class C { object P => this.F.G(1, "a")[2]; object Q => new C(); }`)
	for _, k := range []syntax.Kind{syntax.KindElementAccess, syntax.KindInvocation, syntax.KindObjectCreation, syntax.KindThis} {
		if count(tree, k) != 1 {
			t.Errorf("want one %v, got %d", k, count(tree, k))
		}
	}
	if count(tree, syntax.KindMemberAccess) != 2 {
		t.Fatalf("member accesses = %d", count(tree, syntax.KindMemberAccess))
	}
}

func TestRecovery(t *testing.T) {
	tree, bag := parse(t, "class C { int P => ; int Q => 2; }")
	if !bag.HasErrors() {
		t.Fatalf("expected errors")
	}
	if bag.Items()[0].Code != diag.SynExpectExpression {
		t.Fatalf("first code = %s", bag.Items()[0].Code.ID())
	}
	if count(tree, syntax.KindPropertyDecl) != 2 {
		t.Fatalf("recovery lost the second property")
	}
	if count(tree, syntax.KindMissing) != 1 {
		t.Fatalf("missing nodes = %d", count(tree, syntax.KindMissing))
	}
}

func TestMissingSemicolon(t *testing.T) {
	_, bag := parse(t, "class C { int F }")
	if bag.Len() == 0 || bag.Items()[0].Code != diag.SynExpectSemicolon {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
}

func TestParseExpression(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("snippet", []byte("a.M(1) + 2")))
	tree := parser.ParseExpression(file, parser.Options{})
	top := tree.Child(tree.Root, 0)
	if tree.Kind(top) != syntax.KindBinary {
		t.Fatalf("top = %v", tree.Kind(top))
	}
}

func TestSpansCoverSource(t *testing.T) {
	src := "class C { int P => a + b; }"
	tree := parseClean(t, src)
	bin := find(tree, syntax.KindBinary)
	if got := tree.SourceText(bin); got != "a + b" {
		t.Fatalf("binary text = %q", got)
	}
	if id := tree.NodeAt(uint32(len("class C { int P => a + "))); tree.Text(id) != "b" {
		t.Fatalf("NodeAt found %v %q", tree.Kind(id), tree.Text(id))
	}
}
