package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"semcore/internal/source"
	"semcore/internal/syntax"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) the root span lies within the file content
// 2) every child span is inside its parent span and in the same file
// 3) every child points back at its parent
func CheckSpanInvariants(tree *syntax.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := tree.Span(tree.Root)
	if root.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.End, lenContent)
	}

	var walkErr error
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if walkErr != nil {
			return false
		}
		sp := tree.Span(id)
		if sp.File != sf.ID {
			walkErr = fmt.Errorf("node %d span file mismatch: got=%d want=%d", id, sp.File, sf.ID)
			return false
		}
		for _, c := range tree.Children(id) {
			if !c.IsValid() {
				continue
			}
			if tree.Parent(c) != id {
				walkErr = fmt.Errorf("node %d has parent %d, want %d", c, tree.Parent(c), id)
				return false
			}
			if cs := tree.Span(c); !sp.Encloses(cs) {
				walkErr = fmt.Errorf("%v span %v is outside parent %v span %v", tree.Kind(c), cs, tree.Kind(id), sp)
				return false
			}
		}
		return true
	})
	return walkErr
}
