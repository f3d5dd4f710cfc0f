package semantic_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"semcore/internal/binder"
	"semcore/internal/constant"
	"semcore/internal/diag"
	"semcore/internal/semantic"
	"semcore/internal/symbols"
	"semcore/internal/syntax"
	"semcore/internal/testkit"
	"semcore/internal/types"
)

const program = `
class C
{
    int F;
    const int K = 4 * 10;
    int P => /*<bind>*/K + F/*</bind>*/;
    void M(int x) { }
    void M(long x) { }
    int Use(int p) { M("s"); return p; }
    int Missing => Nope;
}`

type fixture struct {
	p     testkit.Parsed
	comp  *semantic.Compilation
	model *semantic.Model
	bag   *diag.Bag
}

func newFixture(t *testing.T, src string) fixture {
	t.Helper()
	p := testkit.Parse(t, src)
	testkit.RequireNoErrors(t, p.Diags)
	bag := diag.NewBag(0)
	comp := semantic.New(p.Files, []*syntax.Tree{p.Tree}, semantic.Options{Reporter: diag.BagReporter{Bag: bag}})
	return fixture{p: p, comp: comp, model: comp.Model(p.Tree), bag: bag}
}

func (f fixture) offset(t *testing.T, marker string) uint32 {
	t.Helper()
	i := strings.Index(string(f.p.File.Content), marker)
	if i < 0 {
		t.Fatalf("marker %q not found", marker)
	}
	return uint32(i)
}

func TestQueryProjections(t *testing.T) {
	f := newFixture(t, program)
	node := testkit.BindNode(t, f.p)
	ctx := context.Background()

	ti, err := f.model.TypeInfo(ctx, node)
	if err != nil {
		t.Fatal(err)
	}
	integer := f.comp.Table().TypeOf(types.Int32)
	if ti.Type != integer || ti.ConvertedType != integer {
		t.Fatalf("type info %+v", ti)
	}
	si, err := f.model.SymbolInfo(ctx, node)
	if err != nil {
		t.Fatal(err)
	}
	if op := f.comp.Table().Get(si.Symbol); op == nil || op.Name != types.OpAddition {
		t.Fatalf("K + F binds to %v", si.Symbol)
	}
	if _, isConst, _ := f.model.ConstantValue(ctx, node); isConst {
		t.Fatal("K + F is constant")
	}

	k := f.p.Tree.Child(node, 0)
	v, isConst, err := f.model.ConstantValue(ctx, k)
	if err != nil || !isConst || !v.Equal(constant.Int(types.Int32, 40)) {
		t.Fatalf("K = %v (%v, %v)", v, isConst, err)
	}
}

func TestMethodGroupQuery(t *testing.T) {
	f := newFixture(t, program)
	callee := f.model.NodeAt(f.offset(t, `M("s")`))
	group, err := f.model.MethodGroup(context.Background(), callee)
	if err != nil {
		t.Fatal(err)
	}
	c := f.comp.Table().LookupMember(f.comp.Table().Global, "C")[0]
	if want := f.comp.Table().LookupMember(c, "M"); !slices.Equal(group, want) {
		t.Fatalf("group = %v, want %v", group, want)
	}
	si, _ := f.model.SymbolInfo(context.Background(), callee)
	if si.CandidateReason != binder.ReasonOverloadResolutionFailure || si.Symbol.IsValid() {
		t.Fatalf("M: %+v", si)
	}
}

func TestNonExpressionNodes(t *testing.T) {
	f := newFixture(t, program)
	block := testkit.FindKind(f.p.Tree, syntax.KindBlock)
	if _, err := f.model.InfoFor(context.Background(), block); !errors.Is(err, semantic.ErrNotExpression) {
		t.Fatalf("block: err = %v", err)
	}
	class := testkit.FindKind(f.p.Tree, syntax.KindClassDecl)
	if _, err := f.model.InfoFor(context.Background(), class); !errors.Is(err, semantic.ErrNotExpression) {
		t.Fatalf("class: err = %v", err)
	}
	if sym := f.model.DeclaredSymbol(class); f.comp.Table().Get(sym).Kind != symbols.KindNamedType {
		t.Fatalf("class declares %v", sym)
	}
}

func TestConcurrentFirstAccessConverges(t *testing.T) {
	f := newFixture(t, program)
	node := testkit.BindNode(t, f.p)

	const workers = 16
	results := make([]binder.Info, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, err := f.model.InfoFor(context.Background(), node)
			if err != nil {
				t.Error(err)
			}
			results[i] = info
		}()
	}
	wg.Wait()
	for i := 1; i < workers; i++ {
		if !results[0].Equal(results[i]) {
			t.Fatalf("worker %d saw %+v, worker 0 saw %+v", i, results[i], results[0])
		}
	}
	again, _ := f.model.InfoFor(context.Background(), node)
	if !again.Equal(results[0]) {
		t.Fatal("second query differs from the first")
	}
}

func TestCancelledQueryPublishesNothing(t *testing.T) {
	f := newFixture(t, program)
	node := testkit.BindNode(t, f.p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.model.InfoFor(ctx, node); !errors.Is(err, binder.ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if f.bag.Len() != 0 {
		t.Fatalf("cancelled bind reported %v", testkit.Codes(f.bag))
	}
	if _, err := f.model.Diagnostics(ctx); !errors.Is(err, binder.ErrCancelled) {
		t.Fatalf("diagnostics err = %v", err)
	}
	info, err := f.model.InfoFor(context.Background(), node)
	if err != nil || !info.Type.IsValid() {
		t.Fatalf("retry: %+v %v", info, err)
	}
}

func TestDiagnosticsForwardedOnce(t *testing.T) {
	f := newFixture(t, program)
	ctx := context.Background()
	first, err := f.model.Diagnostics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var codes []string
	for _, d := range first {
		codes = append(codes, d.Code.ID())
	}
	want := []string{diag.SemaArgumentMismatch.ID(), diag.SemaNameNotFound.ID()}
	if !slices.Equal(codes, want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	if _, err := f.model.Diagnostics(ctx); err != nil {
		t.Fatal(err)
	}
	if got := testkit.Codes(f.bag); len(got) != len(want) {
		t.Fatalf("reporter saw %v", got)
	}
}

func TestBindSnippet(t *testing.T) {
	f := newFixture(t, program)
	sn, err := f.model.BindSnippet(context.Background(), f.offset(t, "p; }"), "p + F")
	if err != nil {
		t.Fatal(err)
	}
	if len(sn.Diags) != 0 {
		t.Fatalf("snippet diagnostics: %v", sn.Diags)
	}
	if info := sn.Info(); info.Type != f.comp.Table().TypeOf(types.Int32) {
		t.Fatalf("p + F : %v", info.Type)
	}
	left := sn.Tree.Child(sn.Expr, 0)
	if p := f.comp.Table().Get(sn.Infos[left].Symbol); p == nil || p.Kind != symbols.KindParameter {
		t.Fatalf("p binds to %v", sn.Infos[left].Symbol)
	}
	if f.bag.Len() != 0 {
		t.Fatal("snippet diagnostics reached the compilation reporter")
	}
}
