package tree

// Cursor points to a node of a tree. Navigation and structural mutation
// happen relative to this current node.
type Cursor[T any] struct {
	t   *Tree[T]
	cur NodeID
}

// Cursor creates a cursor positioned at the root of t.
func (t *Tree[T]) Cursor() *Cursor[T] {
	return &Cursor[T]{t: t, cur: t.root}
}

// Tree returns the tree the cursor operates on.
func (c *Cursor[T]) Tree() *Tree[T] {
	return c.t
}

// Current returns the node under the cursor.
func (c *Cursor[T]) Current() NodeID {
	return c.cur
}

// Value returns the value of the node under the cursor.
func (c *Cursor[T]) Value() T {
	return c.t.Value(c.cur)
}

// IsOnRoot is true if the cursor is at the root of its (sub-)tree.
func (c *Cursor[T]) IsOnRoot() bool {
	return c.cur == c.t.root
}

// ToRoot moves the cursor to the root.
func (c *Cursor[T]) ToRoot() {
	c.cur = c.t.root
}

// MoveTo positions the cursor at node n.
func (c *Cursor[T]) MoveTo(n NodeID) {
	c.t.node(n)
	c.cur = n
}

// ToParent moves the cursor one level up. At the root the cursor does not
// move and ToParent returns false.
func (c *Cursor[T]) ToParent() bool {
	if c.IsOnRoot() {
		return false
	}
	p := c.t.Parent(c.cur)
	if p == NoNode {
		return false
	}
	c.cur = p
	return true
}

// ToChild moves the cursor to the i-th child of the current node. If there is
// no such child, the cursor does not move and ToChild returns false.
func (c *Cursor[T]) ToChild(i int) bool {
	ch := c.t.node(c.cur).children
	if i < 0 || i >= len(ch) {
		return false
	}
	c.cur = ch[i]
	return true
}

// ToChildValue moves the cursor to the leftmost child carrying a value equal
// to v. If there is no such child, the cursor does not move.
func (c *Cursor[T]) ToChildValue(v T) bool {
	for _, ch := range c.t.node(c.cur).children {
		if c.t.a.equal(c.t.Value(ch), v) {
			c.cur = ch
			return true
		}
	}
	return false
}

// ChildCount returns the number of children of the current node.
func (c *Cursor[T]) ChildCount() int {
	return c.t.ChildCount(c.cur)
}

// ChildValue returns the value of the i-th child of the current node.
func (c *Cursor[T]) ChildValue(i int) T {
	return c.t.Value(c.t.Child(c.cur, i))
}

// SubTree returns a view rooted at the i-th child of the current node.
func (c *Cursor[T]) SubTree(i int) *Tree[T] {
	return c.t.SubTree(c.cur, i)
}

// AppendChild appends a new rightmost child to the current node. The cursor
// does not move.
func (c *Cursor[T]) AppendChild(v T) NodeID {
	return c.t.AppendChild(c.cur, v)
}

// AppendChildren converts values to nodes and appends them, in order, as
// children of the current node.
func (c *Cursor[T]) AppendChildren(values ...T) []NodeID {
	ids := make([]NodeID, len(values))
	for i, v := range values {
		ids[i] = c.t.AppendChild(c.cur, v)
	}
	return ids
}

// SpliceChildren inserts detached nodes as children of the current node,
// starting at position pos.
func (c *Cursor[T]) SpliceChildren(pos int, ids ...NodeID) {
	c.t.attach(c.cur, pos, ids...)
}

// DeleteCurrent removes the current node (with its sub-tree) from the tree
// and moves the cursor to the former parent. Deleting the root panics.
func (c *Cursor[T]) DeleteCurrent() {
	if c.IsOnRoot() {
		panic("tree: cannot delete root node")
	}
	parent := c.t.Parent(c.cur)
	c.t.detach(parent, c.t.position(c.cur))
	tracer().Debugf("deleted node %d", c.cur)
	c.cur = parent
}

// DeleteChildValue removes the leftmost child of the current node which
// carries a value equal to v. It returns false if there is no such child.
func (c *Cursor[T]) DeleteChildValue(v T) bool {
	for i, ch := range c.t.node(c.cur).children {
		if c.t.a.equal(c.t.Value(ch), v) {
			c.t.detach(c.cur, i)
			return true
		}
	}
	return false
}

// ReplaceCurrentWithChildren removes the current node and splices its
// children into the parent's child list, at the position the current node
// occupied. The cursor moves to the parent.
func (c *Cursor[T]) ReplaceCurrentWithChildren() {
	if c.IsOnRoot() {
		panic("tree: cannot replace root node with its children")
	}
	n := c.cur
	parent := c.t.Parent(n)
	pos := c.t.position(n)
	children := c.t.node(n).children
	c.t.node(n).children = nil
	for _, ch := range children {
		c.t.node(ch).parent = NoNode
	}
	c.t.detach(parent, pos)
	c.t.attach(parent, pos, children...)
	c.cur = parent
}

// ReplaceCurrentWithChild lets the current node take over the value of its
// i-th child. The child is removed and its own children are spliced into
// the current node's child list at position i. The cursor does not move.
//
// The return value is the index a client iterating over the children of the
// current node should continue with, minus one: it points to the last of the
// spliced grandchildren, or to the child left of position i if there were
// none.
func (c *Cursor[T]) ReplaceCurrentWithChild(i int) int {
	ch := c.t.Child(c.cur, i)
	grand := c.t.node(ch).children
	c.t.node(ch).children = nil
	for _, g := range grand {
		c.t.node(g).parent = NoNode
	}
	c.t.detach(c.cur, i)
	c.t.attach(c.cur, i, grand...)
	c.t.SetValue(c.cur, c.t.Value(ch))
	if len(grand) > 0 {
		return i + len(grand) - 1
	}
	return i - 1
}
