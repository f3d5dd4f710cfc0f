package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented outline of the subtree rooted at id.
func (t *Tree) Dump(w io.Writer, id NodeID) error {
	return t.dump(w, id, 0)
}

func (t *Tree) dump(w io.Writer, id NodeID, depth int) error {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	if n.Text != "" {
		fmt.Fprintf(&sb, " %q", n.Text)
	}
	if n.Flags != 0 {
		if s := n.Flags.String(); s != "" {
			fmt.Fprintf(&sb, " [%s]", s)
		}
	}
	fmt.Fprintf(&sb, " @%d..%d\n", n.Span.Start, n.Span.End)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := t.dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
