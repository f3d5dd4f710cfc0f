package testkit

import (
	"fmt"
	"strings"
	"testing"

	"fortio.org/safecast"

	"semcore/internal/diag"
	"semcore/internal/parser"
	"semcore/internal/source"
	"semcore/internal/syntax"
)

// Bind markers delimit the expression a test asks about. They are ordinary
// block comments, so the source still parses unchanged.
const (
	BindOpen  = "/*<bind>*/"
	BindClose = "/*</bind>*/"
)

// Parsed bundles a tree with its file and parse diagnostics.
type Parsed struct {
	Files *source.FileSet
	File  *source.File
	Tree  *syntax.Tree
	Diags *diag.Bag
}

// Parse parses src as test.cs.
func Parse(t testing.TB, src string) Parsed {
	t.Helper()
	return ParseNamed(t, "test.cs", src)
}

// ParseNamed parses src under the given virtual file name.
func ParseNamed(t testing.TB, name, src string) Parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(src)))
	bag := diag.NewBag(0)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err := CheckSpanInvariants(tree, file); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	return Parsed{Files: fs, File: file, Tree: tree, Diags: bag}
}

// ParseFiles parses each source as file<i>.cs in one file set. All
// results share a single diagnostics bag.
func ParseFiles(t testing.TB, srcs ...string) []Parsed {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	out := make([]Parsed, 0, len(srcs))
	for i, src := range srcs {
		file := fs.Get(fs.AddVirtual(fmt.Sprintf("file%d.cs", i), []byte(src)))
		tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := CheckSpanInvariants(tree, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
		out = append(out, Parsed{Files: fs, File: file, Tree: tree, Diags: bag})
	}
	return out
}

// BindSpan returns the span between the bind markers.
func BindSpan(t testing.TB, file *source.File) source.Span {
	t.Helper()
	text := string(file.Content)
	open := strings.Index(text, BindOpen)
	closeAt := strings.Index(text, BindClose)
	if open < 0 || closeAt < open {
		t.Fatalf("source has no %s...%s markers", BindOpen, BindClose)
	}
	start, err := safecast.Conv[uint32](open + len(BindOpen))
	if err != nil {
		t.Fatal(err)
	}
	end, err := safecast.Conv[uint32](closeAt)
	if err != nil {
		t.Fatal(err)
	}
	return source.Span{File: file.ID, Start: start, End: end}
}

// BindNode returns the outermost expression exactly covering the marked span.
func BindNode(t testing.TB, p Parsed) syntax.NodeID {
	t.Helper()
	sp := BindSpan(t, p.File)
	id := p.Tree.FindSpan(sp, syntax.Kind.IsExpression)
	if !id.IsValid() {
		t.Fatalf("no expression node covers %q", p.File.Content[sp.Start:sp.End])
	}
	return id
}

// FindKind returns the first node of kind k in source order.
func FindKind(tree *syntax.Tree, k syntax.Kind) syntax.NodeID {
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

// RequireNoErrors fails the test when bag holds any error.
func RequireNoErrors(t testing.TB, bag *diag.Bag) {
	t.Helper()
	if !bag.HasErrors() {
		return
	}
	for _, d := range bag.Items() {
		t.Errorf("%s %s: %s at %s", d.Code.ID(), d.Severity, d.Message, d.Primary)
	}
	t.FailNow()
}

// Codes lists the diagnostic IDs in a bag, in report order.
func Codes(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}
