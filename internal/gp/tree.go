package gp

import (
	"strconv"
	"strings"
)

// Node is one vertex of an expression tree. A node with Op set is a
// function application whose child count equals the primitive's arity;
// otherwise it is a terminal, bound either to a named input or to a
// constant fixed at construction time.
type Node struct {
	Op       string
	Input    string
	Const    float64
	Children []*Node
}

// IsTerminal reports whether the node is a leaf.
func (n *Node) IsTerminal() bool { return n.Op == "" }

// Size counts the nodes of the subtree rooted here.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Depth is the longest root-to-leaf edge count of the subtree rooted here.
// A lone terminal has depth 0.
func (n *Node) Depth() int {
	depth := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Clone deep-copies the subtree rooted here.
func (n *Node) Clone() *Node {
	out := &Node{Op: n.Op, Input: n.Input, Const: n.Const}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Label is the display name of the node: the primitive name, the input
// name, or the formatted constant.
func (n *Node) Label() string {
	switch {
	case n.Op != "":
		return n.Op
	case n.Input != "":
		return n.Input
	default:
		return strconv.FormatFloat(n.Const, 'g', -1, 64)
	}
}

// Tree is an expression tree: a single root node. Size and depth are
// derived, never stored.
type Tree struct {
	Root *Node
}

func (t *Tree) Size() int  { return t.Root.Size() }
func (t *Tree) Depth() int { return t.Root.Depth() }

// Clone deep-copies the tree.
func (t *Tree) Clone() *Tree { return &Tree{Root: t.Root.Clone()} }

// String renders the tree in prefix notation, e.g. add(health, 3).
func (t *Tree) String() string {
	var b strings.Builder
	writeNode(&b, t.Root)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteString(n.Label())
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		writeNode(b, c)
	}
	b.WriteByte(')')
}
