package testkit

import (
	"testing"

	"semcore/internal/syntax"
)

func TestBindNodeFindsMarkedExpression(t *testing.T) {
	p := Parse(t, "class C { int F; int P => /*<bind>*/this.F/*</bind>*/; }")
	id := BindNode(t, p)
	if p.Tree.Kind(id) != syntax.KindMemberAccess {
		t.Fatalf("kind = %v", p.Tree.Kind(id))
	}
	RequireNoErrors(t, p.Diags)
}

func TestFindKind(t *testing.T) {
	p := Parse(t, "class C { int M() => 1; }")
	if !FindKind(p.Tree, syntax.KindMethodDecl).IsValid() {
		t.Fatalf("method not found")
	}
	if FindKind(p.Tree, syntax.KindLambda).IsValid() {
		t.Fatalf("unexpected lambda")
	}
}
