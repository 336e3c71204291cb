/*
Package ast turns concrete parse trees into abstract syntax trees.

Parse trees produced by package ll/parser mirror the grammar closely: every
helper non-terminal used to express repetition, every non-terminal which
derived ε and every pair of grouping parentheses is present as a node.
A Normalizer removes these nodes in three passes:

    Preprocess                    splice wrapper non-terminals into their parents
    GenerateAbstractSyntaxTree    drop vacuous non-terminals, collapse single-child chains
    Postprocess                   replace ( X ) by X

The passes rewrite the tree in place, using tree.Rewrite. The resulting
AST still consists of parse nodes: inner nodes carry the grammar symbol of
their production, leaves carry the input tokens.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ll/parser"
	"github.com/npillmayer/sfaa/tree"
)

// tracer traces with key 'sfaa.ast'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.ast")
}

// Tree is the type of abstract syntax trees.
type Tree = parser.ParseTree

// Normalizer holds the language-specific parameters of AST construction.
type Normalizer struct {
	Wrappers []string     // non-terminals which encode sequencing only
	Open     sfaa.TokType // opening grouping terminal, e.g. '('
	Close    sfaa.TokType // closing grouping terminal, e.g. ')'
}

// Normalize runs all passes: Preprocess, GenerateAbstractSyntaxTree and
// Postprocess. It returns the tree for convenience.
func (nz *Normalizer) Normalize(pt *Tree) *Tree {
	nz.Preprocess(pt)
	GenerateAbstractSyntaxTree(pt)
	nz.Postprocess(pt)
	tracer().Debugf("AST = %s", Sexpr(pt))
	return pt
}

func (nz *Normalizer) isWrapper(n parser.ParseNode) bool {
	if n.Symbol.IsTerminal() {
		return false
	}
	for _, w := range nz.Wrappers {
		if n.Symbol.Name == w {
			return true
		}
	}
	return false
}

// Preprocess replaces every wrapper node by its children. Nested wrappers
// are flattened; the order of leaves does not change.
func (nz *Normalizer) Preprocess(pt *Tree) {
	pt.Rewrite(func(t *Tree, n tree.NodeID) []tree.NodeID {
		if nz.isWrapper(t.Value(n)) {
			return t.Children(n)
		}
		return []tree.NodeID{n}
	})
}

// GenerateAbstractSyntaxTree removes non-terminal nodes without children
// and replaces non-terminal nodes having a single child by that child.
func GenerateAbstractSyntaxTree(pt *Tree) {
	pt.Rewrite(func(t *Tree, n tree.NodeID) []tree.NodeID {
		if t.Value(n).Symbol.IsTerminal() {
			return []tree.NodeID{n}
		}
		switch t.ChildCount(n) {
		case 0:
			tracer().Debugf("removing vacuous %s", t.Value(n).Symbol)
			return nil
		case 1:
			return t.Children(n)
		}
		return []tree.NodeID{n}
	})
}

// Postprocess replaces a node with children ( X ) by X. Nested groupings are
// removed bottom up.
func (nz *Normalizer) Postprocess(pt *Tree) {
	pt.Rewrite(func(t *Tree, n tree.NodeID) []tree.NodeID {
		if t.ChildCount(n) != 3 {
			return []tree.NodeID{n}
		}
		lp, x, rp := t.Child(n, 0), t.Child(n, 1), t.Child(n, 2)
		if isTerminal(t, lp, nz.Open) && isTerminal(t, rp, nz.Close) {
			return []tree.NodeID{x}
		}
		return []tree.NodeID{n}
	})
}

func isTerminal(t *Tree, n tree.NodeID, cat sfaa.TokType) bool {
	A := t.Value(n).Symbol
	return A.IsTerminal() && A.Category == cat
}

// Sexpr prints a tree in Lisp-like notation. Leaves print as their lexeme,
// inner nodes as (NAME child…).
func Sexpr(t *Tree) string {
	var b strings.Builder
	var f func(n tree.NodeID)
	f = func(n tree.NodeID) {
		v := t.Value(n)
		if t.IsLeaf(n) {
			if v.Token != nil {
				b.WriteString(v.Token.Lexeme())
			} else {
				b.WriteString(v.Symbol.Name)
			}
			return
		}
		b.WriteString("(")
		b.WriteString(v.Symbol.Name)
		for _, ch := range t.Children(n) {
			b.WriteString(" ")
			f(ch)
		}
		b.WriteString(")")
	}
	f(t.Root())
	return b.String()
}
