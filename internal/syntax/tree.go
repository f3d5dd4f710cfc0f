package syntax

import (
	"semcore/internal/source"
	"semcore/internal/token"
)

// NodeID addresses a node inside one Tree. NoNode is the zero value.
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

type Node struct {
	Kind     Kind
	Span     source.Span
	Parent   NodeID
	Children []NodeID
	Text     string
	Op       token.Kind
	Flags    Flags
}

// Tree is an immutable syntax tree for one file once the parser returns it.
type Tree struct {
	File  *source.File
	Root  NodeID
	nodes *Arena[Node]
}

func NewTree(file *source.File, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{File: file, nodes: NewArena[Node](capHint)}
}

// New allocates a node and adopts its non-empty children.
func (t *Tree) New(kind Kind, sp source.Span, children ...NodeID) NodeID {
	id := NodeID(t.nodes.Allocate(Node{Kind: kind, Span: sp, Children: children}))
	for _, c := range children {
		if n := t.nodes.Get(uint32(c)); n != nil {
			n.Parent = id
		}
	}
	return id
}

// Node returns the node or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node { return t.nodes.Get(uint32(id)) }

func (t *Tree) Len() uint32 { return t.nodes.Len() }

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Span(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

func (t *Tree) Text(id NodeID) string {
	if n := t.Node(id); n != nil {
		return n.Text
	}
	return ""
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Child returns the i-th child slot, NoNode when the slot is absent.
func (t *Tree) Child(id NodeID, i int) NodeID {
	ch := t.Children(id)
	if i < 0 || i >= len(ch) {
		return NoNode
	}
	return ch[i]
}

// ChildrenFrom returns the children starting at slot i, skipping empty slots.
func (t *Tree) ChildrenFrom(id NodeID, i int) []NodeID {
	ch := t.Children(id)
	if i >= len(ch) {
		return nil
	}
	out := make([]NodeID, 0, len(ch)-i)
	for _, c := range ch[i:] {
		if c.IsValid() {
			out = append(out, c)
		}
	}
	return out
}

// Ancestors returns the parents of id from the nearest outwards.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for p := t.Parent(id); p.IsValid(); p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Enclosing returns the nearest ancestor (or id itself) accepted by pred.
func (t *Tree) Enclosing(id NodeID, pred func(Kind) bool) NodeID {
	for cur := id; cur.IsValid(); cur = t.Parent(cur) {
		if pred(t.Kind(cur)) {
			return cur
		}
	}
	return NoNode
}

// Walk visits id and its descendants in source order. Returning false from
// fn skips the subtree.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !id.IsValid() {
		return
	}
	if !fn(id) {
		return
	}
	for _, c := range t.Children(id) {
		t.Walk(c, fn)
	}
}

// NodeAt returns the deepest node whose span contains off.
func (t *Tree) NodeAt(off uint32) NodeID {
	cur := t.Root
	if !t.Span(cur).Contains(off) {
		return NoNode
	}
	for {
		next := NoNode
		for _, c := range t.Children(cur) {
			if c.IsValid() && t.Span(c).Contains(off) {
				next = c
				break
			}
		}
		if !next.IsValid() {
			return cur
		}
		cur = next
	}
}

// FindSpan returns the outermost node whose span equals sp and whose kind
// is accepted by pred (nil accepts all).
func (t *Tree) FindSpan(sp source.Span, pred func(Kind) bool) NodeID {
	found := NoNode
	t.Walk(t.Root, func(id NodeID) bool {
		if found.IsValid() {
			return false
		}
		s := t.Span(id)
		if !s.Encloses(sp) {
			return false
		}
		if s.Start == sp.Start && s.End == sp.End && (pred == nil || pred(t.Kind(id))) {
			found = id
			return false
		}
		return true
	})
	return found
}

// SourceText returns the text covered by the node's span.
func (t *Tree) SourceText(id NodeID) string {
	sp := t.Span(id)
	if t.File == nil || int(sp.End) > len(t.File.Content) || sp.Start > sp.End {
		return ""
	}
	return string(t.File.Content[sp.Start:sp.End])
}

// Ref names a node in a specific tree. Symbols and scope positions use it
// because one compilation holds many trees.
type Ref struct {
	Tree *Tree
	Node NodeID
}

func (r Ref) IsValid() bool { return r.Tree != nil && r.Node.IsValid() }

func (r Ref) Kind() Kind {
	if r.Tree == nil {
		return KindInvalid
	}
	return r.Tree.Kind(r.Node)
}

func (r Ref) Span() source.Span {
	if r.Tree == nil {
		return source.Span{}
	}
	return r.Tree.Span(r.Node)
}

func (r Ref) Text() string {
	if r.Tree == nil {
		return ""
	}
	return r.Tree.Text(r.Node)
}

func (r Ref) Parent() Ref {
	if r.Tree == nil {
		return Ref{}
	}
	return Ref{Tree: r.Tree, Node: r.Tree.Parent(r.Node)}
}

func (r Ref) Child(i int) Ref {
	if r.Tree == nil {
		return Ref{}
	}
	return Ref{Tree: r.Tree, Node: r.Tree.Child(r.Node, i)}
}
