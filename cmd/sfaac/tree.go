package main

import (
	"fmt"

	"github.com/npillmayer/sfaa/ast"
	"github.com/npillmayer/sfaa/compiler"
	"github.com/npillmayer/sfaa/ll/parser"
	"github.com/npillmayer/sfaa/tree"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var treeFlags = struct {
	ast   *bool
	sexpr *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tree",
		Short:   "Print the parse tree of an SFAA program",
		Example: `  sfaac tree --ast square.sfaa`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTree,
	}
	treeFlags.ast = cmd.Flags().BoolP("ast", "a", false, "normalize the parse tree to an AST")
	treeFlags.sexpr = cmd.Flags().BoolP("sexpr", "s", false, "print in Lisp-like notation")
	rootCmd.AddCommand(cmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	unit, err := compiler.New()
	if err != nil {
		return err
	}
	pt, _, err := unit.Parse(src)
	if err != nil {
		return err
	}
	if *treeFlags.ast {
		pt = unit.Normalize(pt)
	}
	if *treeFlags.sexpr {
		fmt.Println(ast.Sexpr(pt))
		return nil
	}
	printTree(pt)
	return nil
}

func printTree(pt *parser.ParseTree) {
	root := pterm.NewTreeFromLeveledList(leveled(pt))
	pterm.DefaultTree.WithRoot(root).Render()
}

// leveled flattens a parse tree into a pre-order list of nodes, tagged with
// their depth.
func leveled(pt *parser.ParseTree) pterm.LeveledList {
	var items pterm.LeveledList
	var visit func(c *tree.Cursor[parser.ParseNode], depth int)
	visit = func(c *tree.Cursor[parser.ParseNode], depth int) {
		items = append(items, pterm.LeveledListItem{
			Level: depth,
			Text:  label(pt, c.Current()),
		})
		for i := 0; i < c.ChildCount(); i++ {
			c.ToChild(i)
			visit(c, depth+1)
			c.ToParent()
		}
	}
	visit(pt.Cursor(), 0)
	return items
}

// label prints a node together with the input positions it covers.
func label(pt *parser.ParseTree, n tree.NodeID) string {
	if span := parser.Span(pt, n); span.Len() > 0 {
		return pt.Value(n).String() + " " + span.String()
	}
	return pt.Value(n).String()
}
