package tree

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func eqString(a, b string) bool { return a == b }

// serialize prints a tree in Lisp-like notation.
func serialize(t *Tree[string]) string {
	var b strings.Builder
	var f func(n NodeID)
	f = func(n NodeID) {
		if t.IsLeaf(n) {
			b.WriteString(t.Value(n))
			return
		}
		b.WriteString("(")
		b.WriteString(t.Value(n))
		for _, ch := range t.Children(n) {
			b.WriteString(" ")
			f(ch)
		}
		b.WriteString(")")
	}
	f(t.Root())
	return b.String()
}

func buildABC(t *testing.T) *Tree[string] {
	tr := New("S", eqString)
	c := tr.Cursor()
	c.AppendChildren("a", "X", "b")
	if !c.ToChildValue("X") {
		t.Fatalf("cannot move to child X")
	}
	c.AppendChildren("c", "d")
	return tr
}

func TestCursorNavigation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	if s := serialize(tr); s != "(S a (X c d) b)" {
		t.Errorf("unexpected tree %s", s)
	}
	c := tr.Cursor()
	if c.ChildCount() != 3 {
		t.Errorf("expected root to have 3 children, has %d", c.ChildCount())
	}
	if c.ChildValue(2) != "b" {
		t.Errorf("expected 3rd child to be b, is %s", c.ChildValue(2))
	}
	if c.ToChild(3) {
		t.Errorf("cursor moved to non-existing child")
	}
	if !c.ToChild(1) || c.Value() != "X" {
		t.Fatalf("expected cursor at X")
	}
	if !c.ToChildValue("d") || c.Value() != "d" {
		t.Fatalf("expected cursor at d")
	}
	c.ToParent()
	c.ToParent()
	if !c.IsOnRoot() {
		t.Errorf("expected cursor to be back at root")
	}
	if c.ToParent() {
		t.Errorf("cursor moved above root")
	}
}

func TestParentLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	tr.Walk(func(n NodeID, depth int) bool {
		for _, ch := range tr.Children(n) {
			if tr.Parent(ch) != n {
				t.Errorf("child %d of %d has parent %d", ch, n, tr.Parent(ch))
			}
		}
		return true
	})
	if tr.Size() != 6 {
		t.Errorf("expected 6 nodes, have %d", tr.Size())
	}
}

func TestDeleteCurrent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	c := tr.Cursor()
	c.ToChild(1)
	c.DeleteCurrent()
	if !c.IsOnRoot() {
		t.Errorf("expected cursor to move to parent of deleted node")
	}
	if s := serialize(tr); s != "(S a b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if !c.DeleteChildValue("b") || serialize(tr) != "(S a)" {
		t.Errorf("expected child b to be deleted, tree is %s", serialize(tr))
	}
}

func TestReplaceCurrentWithChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	c := tr.Cursor()
	c.ToChild(1)
	c.ReplaceCurrentWithChildren()
	if s := serialize(tr); s != "(S a c d b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if !c.IsOnRoot() {
		t.Errorf("expected cursor at parent")
	}
	for _, ch := range tr.Children(tr.Root()) {
		if tr.Parent(ch) != tr.Root() {
			t.Errorf("spliced child %q has wrong parent", tr.Value(ch))
		}
	}
}

func TestReplaceCurrentWithChild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	c := tr.Cursor()
	i := c.ReplaceCurrentWithChild(1) // S takes value X, c d spliced
	if s := serialize(tr); s != "(X a c d b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if i != 2 {
		t.Errorf("expected continuation index 2, got %d", i)
	}
	i = c.ReplaceCurrentWithChild(0) // leaf a
	if s := serialize(tr); s != "(a c d b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if i != -1 {
		t.Errorf("expected continuation index -1, got %d", i)
	}
}

func TestSubTreeView(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	sub := tr.SubTree(tr.Root(), 1)
	if s := serialize(sub); s != "(X c d)" {
		t.Errorf("unexpected sub-tree %s", s)
	}
	sc := sub.Cursor()
	if sc.ToParent() {
		t.Errorf("sub-tree cursor escaped its root")
	}
	sc.AppendChild("e")
	if s := serialize(tr); s != "(S a (X c d e) b)" {
		t.Errorf("expected mutation through view to be visible, tree is %s", s)
	}
}

func TestSpliceChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	x, y := tr.NewNode("x"), tr.NewNode("y")
	c := tr.Cursor()
	c.SpliceChildren(1, x, y)
	if s := serialize(tr); s != "(S a x y (X c d) b)" {
		t.Errorf("unexpected tree %s", s)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected splicing of an owned node to panic")
		}
	}()
	c.SpliceChildren(0, x)
}

func TestRewrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	tr.Rewrite(func(t *Tree[string], n NodeID) []NodeID {
		switch t.Value(n) {
		case "X":
			return t.Children(n) // flatten
		case "a":
			return nil // delete
		case "d":
			return []NodeID{t.NewNode("D")}
		}
		return []NodeID{n}
	})
	if s := serialize(tr); s != "(S c D b)" {
		t.Errorf("unexpected tree %s", s)
	}
	for _, ch := range tr.Children(tr.Root()) {
		if tr.Parent(ch) != tr.Root() {
			t.Errorf("rewritten child %q has wrong parent", tr.Value(ch))
		}
	}
}

func TestRewriteReleasesDroppedNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	x := tr.Child(tr.Root(), 1)
	tr.Rewrite(func(t *Tree[string], n NodeID) []NodeID {
		if t.Value(n) == "X" {
			return t.Children(n)
		}
		return []NodeID{n}
	})
	if s := serialize(tr); s != "(S a c d b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if tr.ChildCount(x) != 0 || tr.Parent(x) != NoNode {
		t.Errorf("expected spliced node X to be released, has %d children and parent %d",
			tr.ChildCount(x), tr.Parent(x))
	}
	tr.Walk(func(n NodeID, depth int) bool {
		for _, ch := range tr.Children(n) {
			if tr.Parent(ch) != n {
				t.Errorf("child %d of %d has parent %d", ch, n, tr.Parent(ch))
			}
		}
		return true
	})
}

func TestRewriteSubTreeRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	sub := tr.SubTree(tr.Root(), 1)
	sub.Rewrite(func(t *Tree[string], n NodeID) []NodeID {
		if t.Value(n) == "X" {
			return []NodeID{t.Child(n, 0)}
		}
		return []NodeID{n}
	})
	if s := serialize(tr); s != "(S a c b)" {
		t.Errorf("unexpected tree %s", s)
	}
	if tr.Parent(sub.Root()) != tr.Root() {
		t.Errorf("expected new sub-tree root to be owned by S")
	}
}

func TestRewriteRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := New("S", eqString)
	tr.Cursor().AppendChild("x")
	tr.Rewrite(func(t *Tree[string], n NodeID) []NodeID {
		if t.ChildCount(n) == 1 {
			return t.Children(n)
		}
		return []NodeID{n}
	})
	if s := serialize(tr); s != "x" {
		t.Errorf("expected root to be replaced by x, tree is %s", s)
	}
	if tr.Parent(tr.Root()) != NoNode {
		t.Errorf("new root has a parent")
	}
}

func TestLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.tree")
	defer teardown()
	//
	tr := buildABC(t)
	var leaves []string
	for _, l := range tr.Leaves() {
		leaves = append(leaves, tr.Value(l))
	}
	if strings.Join(leaves, " ") != "a c d b" {
		t.Errorf("unexpected leaves %v", leaves)
	}
}
