package ast

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfaa/lang"
	"github.com/npillmayer/sfaa/ll"
	"github.com/npillmayer/sfaa/ll/parser"
	"github.com/npillmayer/sfaa/runtime"
)

func parse(t *testing.T, src string) *Tree {
	cats := lang.Categories()
	g, err := lang.Grammar(cats)
	if err != nil {
		t.Fatal(err)
	}
	lx, err := lang.NewLexer(runtime.NewEnvironment(), src)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := parser.New(ll.BuildTable(ll.Analyze(g), cats)).Parse(lx)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", src, err)
	}
	return pt
}

func sfaaNormalizer() *Normalizer {
	return &Normalizer{Wrappers: lang.Wrappers, Open: lang.LParen, Close: lang.RParen}
}

func TestPreprocessFlattensStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ast")
	defer teardown()
	//
	pt := parse(t, "start var int #a ; var int #b ; end")
	sfaaNormalizer().Preprocess(pt)
	if s := Sexpr(pt); s != "(SFAA start (DECL var (TYPE int) #a ;) (DECL var (TYPE int) #b ;) end)" {
		t.Errorf("unexpected tree after pre-processing: %s", s)
	}
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ast")
	defer teardown()
	//
	cases := []struct {
		src, ast string
	}{
		{"start var int #x = 7 ; #x = #x + 1 ; end",
			"(SFAA start (DECL var int #x = 7 ;) (ASSIGN #x = (SUM #x + 1) ;) end)"},
		{"start var int #x ; #x = ( #x + 1 ) * 2 ; end",
			"(SFAA start (DECL var int #x ;) (ASSIGN #x = (TERM (SUM #x + 1) * 2) ;) end)"},
		{"start var int #x ; #x = ( ( #x ) ) ; end",
			"(SFAA start (DECL var int #x ;) (ASSIGN #x = #x ;) end)"},
		{"start var int #x ; #x = #x - 1 - 2 ; end",
			"(SFAA start (DECL var int #x ;) (ASSIGN #x = (SUM #x - 1 - 2) ;) end)"},
		{"start end", "(SFAA start end)"},
	}
	for _, c := range cases {
		pt := sfaaNormalizer().Normalize(parse(t, c.src))
		if s := Sexpr(pt); s != c.ast {
			t.Errorf("for %q expected\n   %s\ngot %s", c.src, c.ast, s)
		}
	}
}

func TestNormalizeKeepsLeafOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ast")
	defer teardown()
	//
	src := "start var boolean #b ; if ( #b ) { #b = false ; } else { #b = true ; } fi end"
	pt := parse(t, src)
	before := parser.Tokens(pt)
	sfaaNormalizer().Preprocess(pt)
	GenerateAbstractSyntaxTree(pt)
	after := parser.Tokens(pt)
	if len(before) != len(after) {
		t.Fatalf("expected %d tokens, have %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("token #%d changed from %v to %v", i, before[i], after[i])
		}
	}
}
