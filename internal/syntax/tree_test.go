package syntax

import (
	"strings"
	"testing"

	"semcore/internal/source"
)

// builds: a + b
func smallTree() (*Tree, NodeID, NodeID, NodeID) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.cs", []byte("a + b")))
	t := NewTree(file, 0)
	a := t.New(KindIdentifierName, source.Span{File: file.ID, Start: 0, End: 1})
	t.Node(a).Text = "a"
	b := t.New(KindIdentifierName, source.Span{File: file.ID, Start: 4, End: 5})
	t.Node(b).Text = "b"
	bin := t.New(KindBinary, source.Span{File: file.ID, Start: 0, End: 5}, a, b)
	t.Root = t.New(KindCompilationUnit, source.Span{File: file.ID, Start: 0, End: 5}, bin)
	return t, a, b, bin
}

func TestParentsAreLinked(t *testing.T) {
	tr, a, b, bin := smallTree()
	if tr.Parent(a) != bin || tr.Parent(b) != bin {
		t.Fatalf("children not linked to parent")
	}
	anc := tr.Ancestors(a)
	if len(anc) != 2 || anc[0] != bin || anc[1] != tr.Root {
		t.Fatalf("ancestors = %v", anc)
	}
}

func TestNodeAtPicksDeepest(t *testing.T) {
	tr, a, b, bin := smallTree()
	if got := tr.NodeAt(0); got != a {
		t.Fatalf("NodeAt(0) = %d, want %d", got, a)
	}
	if got := tr.NodeAt(4); got != b {
		t.Fatalf("NodeAt(4) = %d, want %d", got, b)
	}
	if got := tr.NodeAt(3); got != bin {
		t.Fatalf("NodeAt(3) = %d, want %d", got, bin)
	}
}

func TestFindSpanIsOutermost(t *testing.T) {
	tr, _, _, bin := smallTree()
	sp := tr.Span(bin)
	if got := tr.FindSpan(sp, nil); got != tr.Root {
		t.Fatalf("FindSpan = %d, want root", got)
	}
	if got := tr.FindSpan(sp, Kind.IsExpression); got != bin {
		t.Fatalf("FindSpan(expr) = %d, want %d", got, bin)
	}
}

func TestChildSlots(t *testing.T) {
	tr, a, _, bin := smallTree()
	if tr.Child(bin, 0) != a || tr.Child(bin, 5) != NoNode {
		t.Fatalf("child slots wrong")
	}
	if tr.Kind(NoNode) != KindInvalid || tr.Node(NoNode) != nil {
		t.Fatalf("NoNode must be inert")
	}
}

func TestDump(t *testing.T) {
	tr, _, _, _ := smallTree()
	var sb strings.Builder
	if err := tr.Dump(&sb, tr.Root); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), `    IdentifierName "b" @4..5`) {
		t.Fatalf("dump:\n%s", sb.String())
	}
}
