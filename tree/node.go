// Package tree provides arena-backed syntax tree nodes. Nodes carry a type,
// an optional token payload and children; the factory reclaims every node at
// once on release.
package tree

import (
	"github.com/dhamidi/toki/arena"
	"github.com/dhamidi/toki/token"
)

// Node is one syntax tree node. Type identifies the production or token kind
// it represents; Tok is the token payload for leaves and nil for interior
// nodes.
//
// Nodes are manufactured by a Factory and live in its arena; they must not
// be retained past the factory's Release.
type Node struct {
	Type     int32
	Tok      *token.Token
	Children []*Node
}

// AddChild appends c to the node's children and returns c.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Child returns the i-th child, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Len reports the number of children.
func (n *Node) Len() int { return len(n.Children) }

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in depth-first preorder.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Flatten returns n and its descendants in depth-first preorder, the shape
// a node stream replays a tree in.
func Flatten(n *Node) []*Node {
	var out []*Node
	Walk(n, func(nd *Node) { out = append(out, nd) })
	return out
}

// Factory manufactures tree nodes inside a slab arena.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	nodes *arena.Pool[Node]
}

// NewFactory returns a node factory whose slabs hold slabCap nodes each
// (non-positive selects the default).
func NewFactory(slabCap int) *Factory {
	return &Factory{nodes: arena.NewPool[Node](slabCap)}
}

// New allocates an interior node of the given type.
func (f *Factory) New(typ int32) *Node {
	_, n := f.nodes.Alloc()
	n.Type = typ
	return n
}

// FromToken allocates a leaf node carrying tok. The node type mirrors the
// token type.
func (f *Factory) FromToken(tok *token.Token) *Node {
	_, n := f.nodes.Alloc()
	n.Type = int32(tok.Type)
	n.Tok = tok
	return n
}

// Count reports how many nodes the factory has allocated.
func (f *Factory) Count() int { return f.nodes.Len() }

// Release frees all nodes at once.
func (f *Factory) Release() { f.nodes.Release() }
