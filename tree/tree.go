/*
Package tree implements an ordered tree, used for parse trees and abstract
syntax trees alike.

Nodes live in an arena and are addressed by stable indices of type NodeID.
Every node holds a value, an ordered list of child indices and the index of
its parent. The parent link is for upward navigation only; ownership is
expressed solely by child lists, therefore no node appears in two child
lists.

Clients navigate and mutate a tree with a Cursor:

    t := tree.New("S", func(a, b string) bool { return a == b })
    c := t.Cursor()
    c.AppendChildren("a", "S", "b")  // S -> a S b
    c.ToChildValue("S")
    …

Larger restructurings are done with Rewrite, a post-order visitor which
builds a fresh child list for every node.

The package knows nothing about grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sfaa.tree'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.tree")
}

// NodeID addresses a node within a tree's arena.
type NodeID int

// NoNode is the parent of a root node.
const NoNode NodeID = -1

type node[T any] struct {
	value    T
	parent   NodeID
	children []NodeID
}

// arena is shared between a tree and the sub-tree views derived from it.
type arena[T any] struct {
	nodes []node[T]
	equal func(T, T) bool
}

// Tree is an ordered tree of values of type T. The zero value is not usable,
// create trees with New.
type Tree[T any] struct {
	a    *arena[T]
	root NodeID
}

// New creates a tree with a single root node carrying value root.
// equal is used whenever nodes are searched by value; it may not be nil.
func New[T any](root T, equal func(T, T) bool) *Tree[T] {
	if equal == nil {
		panic("tree.New needs an equality function")
	}
	a := &arena[T]{equal: equal}
	t := &Tree[T]{a: a}
	t.root = t.NewNode(root)
	return t
}

// NewNode creates a detached node. Detached nodes are attached to the tree
// with SpliceChildren or by returning them from a Rewrite visitor.
func (t *Tree[T]) NewNode(value T) NodeID {
	t.a.nodes = append(t.a.nodes, node[T]{value: value, parent: NoNode})
	return NodeID(len(t.a.nodes) - 1)
}

func (t *Tree[T]) node(n NodeID) *node[T] {
	if n < 0 || int(n) >= len(t.a.nodes) {
		panic(fmt.Sprintf("tree: node %d does not exist", n))
	}
	return &t.a.nodes[n]
}

// Root returns the root node of the tree (or of a sub-tree view).
func (t *Tree[T]) Root() NodeID {
	return t.root
}

// Value returns the value of node n.
func (t *Tree[T]) Value(n NodeID) T {
	return t.node(n).value
}

// SetValue replaces the value of node n.
func (t *Tree[T]) SetValue(n NodeID, value T) {
	t.node(n).value = value
}

// Parent returns the parent of n, or NoNode for the root of the arena.
func (t *Tree[T]) Parent(n NodeID) NodeID {
	return t.node(n).parent
}

// ChildCount returns the number of children of n.
func (t *Tree[T]) ChildCount(n NodeID) int {
	return len(t.node(n).children)
}

// Child returns the i-th child of n.
func (t *Tree[T]) Child(n NodeID, i int) NodeID {
	ch := t.node(n).children
	if i < 0 || i >= len(ch) {
		panic(fmt.Sprintf("tree: node %d has no child #%d", n, i))
	}
	return ch[i]
}

// Children returns a copy of the child list of n.
func (t *Tree[T]) Children(n NodeID) []NodeID {
	ch := t.node(n).children
	return append(make([]NodeID, 0, len(ch)), ch...)
}

// IsLeaf is true if n has no children.
func (t *Tree[T]) IsLeaf(n NodeID) bool {
	return len(t.node(n).children) == 0
}

// AppendChild creates a node with value v as the rightmost child of parent.
func (t *Tree[T]) AppendChild(parent NodeID, v T) NodeID {
	ch := t.NewNode(v)
	t.attach(parent, len(t.node(parent).children), ch)
	return ch
}

// attach inserts the detached node ch into the child list of parent at
// position pos.
func (t *Tree[T]) attach(parent NodeID, pos int, ch ...NodeID) {
	p := t.node(parent)
	if pos < 0 || pos > len(p.children) {
		panic(fmt.Sprintf("tree: cannot insert at position %d of node %d", pos, parent))
	}
	for _, c := range ch {
		if c == parent {
			panic("tree: node cannot become its own child")
		}
		if t.node(c).parent != NoNode {
			panic(fmt.Sprintf("tree: node %d already owned by node %d", c, t.node(c).parent))
		}
		t.node(c).parent = parent
	}
	tail := append([]NodeID{}, p.children[pos:]...)
	p.children = append(append(p.children[:pos], ch...), tail...)
}

// detach removes the child at position pos from parent and returns it.
func (t *Tree[T]) detach(parent NodeID, pos int) NodeID {
	p := t.node(parent)
	ch := p.children[pos]
	p.children = append(p.children[:pos], p.children[pos+1:]...)
	t.node(ch).parent = NoNode
	return ch
}

// position returns the index of n in its parent's child list, or -1.
func (t *Tree[T]) position(n NodeID) int {
	parent := t.node(n).parent
	if parent == NoNode {
		return -1
	}
	for i, ch := range t.node(parent).children {
		if ch == n {
			return i
		}
	}
	return -1
}

// SubTree returns a view of the tree rooted at the i-th child of n. The view
// shares nodes with t; nothing is copied and mutations through the view are
// visible in t.
func (t *Tree[T]) SubTree(n NodeID, i int) *Tree[T] {
	return &Tree[T]{a: t.a, root: t.Child(n, i)}
}

// View returns a view of the tree rooted at n.
func (t *Tree[T]) View(n NodeID) *Tree[T] {
	t.node(n)
	return &Tree[T]{a: t.a, root: n}
}

// Walk visits the nodes of the tree in pre-order, starting at the root.
// If f returns false, the children of the current node are skipped.
func (t *Tree[T]) Walk(f func(n NodeID, depth int) bool) {
	t.walk(t.root, 0, f)
}

func (t *Tree[T]) walk(n NodeID, depth int, f func(NodeID, int) bool) {
	if !f(n, depth) {
		return
	}
	for _, ch := range t.node(n).children {
		t.walk(ch, depth+1, f)
	}
}

// Leaves returns the leaves of the tree from left to right.
func (t *Tree[T]) Leaves() []NodeID {
	var leaves []NodeID
	t.Walk(func(n NodeID, _ int) bool {
		if t.IsLeaf(n) {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Size counts the nodes reachable from the root.
func (t *Tree[T]) Size() int {
	cnt := 0
	t.Walk(func(NodeID, int) bool {
		cnt++
		return true
	})
	return cnt
}

// Equal is the equality function of the tree's values.
func (t *Tree[T]) Equal(a, b T) bool {
	return t.a.equal(a, b)
}
