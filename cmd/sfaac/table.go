package main

import (
	"os"
	"strings"

	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/compiler"
	"github.com/npillmayer/sfaa/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print FIRST and FOLLOW sets and the LL(1) parsing table",
		Args:  cobra.NoArgs,
		RunE:  runTable,
	}
	tableFlags.html = cmd.Flags().Bool("html", false, "print the parsing table as an HTML document")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	unit, err := compiler.New()
	if err != nil {
		return err
	}
	if *tableFlags.html {
		ll.TableAsHTML(unit.Table(), os.Stdout)
		return nil
	}
	a, name := unit.Analysis(), unit.Table().Stringer()
	sets := pterm.TableData{{"Non-Terminal", "FIRST", "FOLLOW"}}
	for _, A := range unit.Grammar().NonTerminals() {
		sets = append(sets, []string{A, names(a.First(A), name), names(a.Follow(A), name)})
	}
	pterm.DefaultSection.Println("FIRST and FOLLOW")
	pterm.DefaultTable.WithHasHeader().WithData(sets).Render()
	//
	entries := pterm.TableData{{"Non-Terminal", "Lookahead", "Production"}}
	unit.Table().Each(func(A string, la sfaa.TokType, p *ll.Production) {
		entries = append(entries, []string{A, name(la), p.String()})
	})
	pterm.DefaultSection.Println("Parsing Table")
	pterm.DefaultTable.WithHasHeader().WithData(entries).Render()
	for _, c := range unit.Table().Conflicts() {
		pterm.Error.Println(c.String())
	}
	return nil
}

func names(ts []sfaa.TokType, name sfaa.TokTypeStringer) string {
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = name(t)
	}
	return strings.Join(s, " ")
}
