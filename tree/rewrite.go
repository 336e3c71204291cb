package tree

// Visitor is called by Rewrite for every node, after the node's children have
// been rewritten. It returns the list of nodes which replace n in its
// parent's child list:
//
//    []NodeID{n}           keeps n
//    nil                   deletes n
//    t.Children(n)         splices n's children in place of n
//    []NodeID{x}           replaces n by another node x
//
// A visitor must not mutate child lists itself. It may change node values and
// create detached nodes with NewNode.
type Visitor[T any] func(t *Tree[T], n NodeID) []NodeID

// Rewrite walks the tree in post-order. For every node it collects the
// replacement lists of its children into a fresh child list, swaps that list
// in, and then asks the visitor for the node's own replacement. A node
// which is not part of its own replacement list drops its children and its
// parent link; it is no longer part of the tree.
//
// The root survives a rewrite unless the visitor replaces it by exactly one
// other node, which then becomes the new root.
func (t *Tree[T]) Rewrite(visit Visitor[T]) {
	old := t.root
	p, pos := t.node(old).parent, t.position(old) // sub-tree view
	repl := t.rewrite(old, visit)
	if len(repl) == 1 && repl[0] != old {
		t.node(old).children = nil
		t.node(old).parent = NoNode
		if p != NoNode {
			t.node(p).children[pos] = repl[0]
		}
		t.node(repl[0]).parent = p
		tracer().Debugf("rewrite replaced root %d by %d", old, repl[0])
		t.root = repl[0]
	}
}

func (t *Tree[T]) rewrite(n NodeID, visit Visitor[T]) []NodeID {
	old := t.node(n).children
	fresh := make([]NodeID, 0, len(old))
	for _, ch := range old {
		fresh = append(fresh, t.rewrite(ch, visit)...)
	}
	for _, ch := range old {
		t.node(ch).parent = NoNode
	}
	for _, ch := range fresh {
		t.node(ch).parent = n
	}
	t.node(n).children = fresh
	repl := visit(t, n)
	if n != t.root && !contains(repl, n) {
		t.node(n).children = nil
		t.node(n).parent = NoNode
	}
	return repl
}

func contains(ids []NodeID, n NodeID) bool {
	for _, id := range ids {
		if id == n {
			return true
		}
	}
	return false
}
