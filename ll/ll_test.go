package ll

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfaa"
)

const (
	tokPlus sfaa.TokType = iota + 1
	tokTimes
	tokLParen
	tokRParen
	tokID
)

func exprCategories(t *testing.T) *CategoryTable {
	cats := NewCategoryTable()
	for _, c := range []struct {
		t    sfaa.TokType
		name string
	}{{tokPlus, "+"}, {tokTimes, "*"}, {tokLParen, "("}, {tokRParen, ")"}, {tokID, "id"}} {
		if err := cats.Add(c.t, c.name); err != nil {
			t.Fatal(err)
		}
	}
	return cats
}

// E  -> T E'        E' -> + T E' | ε
// T  -> F T'        T' -> * F T' | ε
// F  -> ( E ) | id
func exprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expr")
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+", tokPlus).N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").N("F").N("T'").End()
	b.LHS("T'").T("*", tokTimes).N("F").N("T'").End()
	b.LHS("T'").Epsilon()
	b.LHS("F").T("(", tokLParen).N("E").T(")", tokRParen).End()
	b.LHS("F").T("id", tokID).End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// S -> a S b | ε
func aSbGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("aSb")
	b.LHS("S").T("a", 1).N("S").T("b", 2).End()
	b.LHS("S").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func aSbCategories() *CategoryTable {
	cats := NewCategoryTable()
	cats.Add(1, "a")
	cats.Add(2, "b")
	return cats
}

func tt(types ...sfaa.TokType) []sfaa.TokType {
	return types
}

func TestBuilderRejectsUndefined(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected undefined non-terminal A to be reported")
	}
	b = NewGrammarBuilder("G").StartSymbol("X")
	b.LHS("S").T("a", 1).End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("expected undefined start symbol to be reported")
	}
}

func TestSymbolEquality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	if !Terminal("a", 1).Equals(Terminal("x", 1)) {
		t.Errorf("terminals with equal categories should be equal")
	}
	if NonTerminal("A").Equals(Terminal("A", 1)) {
		t.Errorf("terminal and non-terminal must never be equal")
	}
	if !NonTerminal("A").Equals(NonTerminal("A")) {
		t.Errorf("non-terminals with equal names should be equal")
	}
	if !EpsilonSymbol.IsEpsilon() || !EpsilonSymbol.IsTerminal() {
		t.Errorf("epsilon is a terminal")
	}
}

func TestFirstFollowASB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	a := Analyze(aSbGrammar(t))
	if f := a.First("S"); !reflect.DeepEqual(f, tt(sfaa.Epsilon, 1)) {
		t.Errorf("FIRST(S) = %v", f)
	}
	if f := a.Follow("S"); !reflect.DeepEqual(f, tt(sfaa.EndOfInput, 2)) {
		t.Errorf("FOLLOW(S) = %v", f)
	}
	if !a.DerivesEpsilon("S") {
		t.Errorf("S should derive ε")
	}
	if p := a.FirstProduction("S", 1); p == nil || p.Serial != 0 {
		t.Errorf("expected production 0 to yield a, got %v", p)
	}
	if p := a.EpsilonProduction("S"); p == nil || !p.IsEpsilon() {
		t.Errorf("expected S -> ε to be the epsilon production, got %v", p)
	}
}

func TestFirstFollowExpr(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	a := Analyze(exprGrammar(t))
	first := map[string][]sfaa.TokType{
		"E":  tt(tokLParen, tokID),
		"T":  tt(tokLParen, tokID),
		"F":  tt(tokLParen, tokID),
		"E'": tt(sfaa.Epsilon, tokPlus),
		"T'": tt(sfaa.Epsilon, tokTimes),
	}
	follow := map[string][]sfaa.TokType{
		"E":  tt(sfaa.EndOfInput, tokRParen),
		"E'": tt(sfaa.EndOfInput, tokRParen),
		"T":  tt(sfaa.EndOfInput, tokPlus, tokRParen),
		"T'": tt(sfaa.EndOfInput, tokPlus, tokRParen),
		"F":  tt(sfaa.EndOfInput, tokPlus, tokTimes, tokRParen),
	}
	for A, want := range first {
		if got := a.First(A); !reflect.DeepEqual(got, want) {
			t.Errorf("FIRST(%s) = %v, expected %v", A, got, want)
		}
	}
	for A, want := range follow {
		if got := a.Follow(A); !reflect.DeepEqual(got, want) {
			t.Errorf("FOLLOW(%s) = %v, expected %v", A, got, want)
		}
	}
}

func TestFirstThroughRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	// A -> B a        B -> A b | ε
	b := NewGrammarBuilder("Rec")
	b.LHS("A").N("B").T("a", 1).End()
	b.LHS("B").N("A").T("b", 2).End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	a := Analyze(g)
	if f := a.First("A"); !reflect.DeepEqual(f, tt(1)) {
		t.Errorf("FIRST(A) = %v", f)
	}
	if f := a.First("B"); !reflect.DeepEqual(f, tt(sfaa.Epsilon, 1)) {
		t.Errorf("FIRST(B) = %v, expected {ε, a}", f)
	}
	if f := a.Follow("A"); !reflect.DeepEqual(f, tt(sfaa.EndOfInput, 2)) {
		t.Errorf("FOLLOW(A) = %v", f)
	}
}

func TestFollowScansVanishingSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	// S -> A B c      A -> a | ε      B -> b | ε
	b := NewGrammarBuilder("Vanish")
	b.LHS("S").N("A").N("B").T("c", 3).End()
	b.LHS("A").T("a", 1).End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	g, _ := b.Grammar()
	a := Analyze(g)
	if f := a.First("S"); !reflect.DeepEqual(f, tt(1, 2, 3)) {
		t.Errorf("FIRST(S) = %v", f)
	}
	if f := a.Follow("A"); !reflect.DeepEqual(f, tt(2, 3)) {
		t.Errorf("FOLLOW(A) = %v", f)
	}
	if f := a.Follow("B"); !reflect.DeepEqual(f, tt(3)) {
		t.Errorf("FOLLOW(B) = %v", f)
	}
	if f := a.FirstOfSequence([]Symbol{NonTerminal("A"), NonTerminal("B")}); !reflect.DeepEqual(f, tt(sfaa.Epsilon, 1, 2)) {
		t.Errorf("FIRST(A B) = %v", f)
	}
}

func TestTableASB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	table := BuildTable(Analyze(aSbGrammar(t)), aSbCategories())
	if p, ok := table.Production("S", 1); !ok || p.Serial != 0 {
		t.Errorf("M[S,a] should be S -> a S b, is %v", p)
	}
	for _, la := range tt(2, sfaa.EndOfInput) {
		if p, ok := table.Production("S", la); !ok || !p.IsEpsilon() {
			t.Errorf("M[S,%d] should be S -> ε, is %v", la, p)
		}
	}
	if _, ok := table.Production("S", 17); ok {
		t.Errorf("expected no entry for unknown category")
	}
	if len(table.Conflicts()) != 0 {
		t.Errorf("expected no conflicts, have %v", table.Conflicts())
	}
}

func TestTableIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	t1 := BuildTable(Analyze(exprGrammar(t)), exprCategories(t))
	t2 := BuildTable(Analyze(exprGrammar(t)), exprCategories(t))
	if t1.Fingerprint() != t2.Fingerprint() {
		t.Errorf("tables built from the same grammar differ")
	}
	if t1.Size() != 13 {
		t.Errorf("expected 13 table entries, have %d", t1.Size())
	}
	t3 := BuildTable(Analyze(aSbGrammar(t)), aSbCategories())
	if t1.Fingerprint() == t3.Fingerprint() {
		t.Errorf("different tables should have different fingerprints")
	}
}

func TestTableConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Ambiguous")
	b.LHS("S").T("a", 1).End()
	b.LHS("S").T("a", 1).T("b", 2).End()
	g, _ := b.Grammar()
	table := BuildTable(Analyze(g), aSbCategories())
	// the index keeps one production per terminal
	if p, _ := table.Production("S", 1); p.Serial != 1 {
		t.Errorf("expected most recent production to win, have %v", p)
	}
	b = NewGrammarBuilder("FirstFollow")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").T("a", 1).End()
	b.LHS("A").Epsilon()
	g, _ = b.Grammar()
	table = BuildTable(Analyze(g), aSbCategories())
	if len(table.Conflicts()) != 1 {
		t.Errorf("expected 1 FIRST/FOLLOW conflict, have %v", table.Conflicts())
	}
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	table := BuildTable(Analyze(aSbGrammar(t)), aSbCategories())
	var buf bytes.Buffer
	TableAsHTML(table, &buf)
	if !strings.Contains(buf.String(), "<td>S</td>") {
		t.Errorf("expected row for S in HTML output")
	}
}

const aSbJSON = `[
  { "Id": "S", "production": [
      [ {"Id": "a", "isTerminal": true}, {"Id": "S", "isTerminal": false}, {"Id": "b", "isTerminal": true} ],
      [ {"Id": "e", "isTerminal": true} ] ] }
]`

func TestLoadJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	g, err := LoadJSON(strings.NewReader(aSbJSON), "S", aSbCategories())
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 2 || !g.Production(1).IsEpsilon() {
		t.Errorf("unexpected grammar")
		g.Dump()
	}
	g2 := aSbGrammar(t)
	t1 := BuildTable(Analyze(g), aSbCategories())
	t2 := BuildTable(Analyze(g2), aSbCategories())
	if t1.Fingerprint() != t2.Fingerprint() {
		t.Errorf("table from JSON differs from table from builder")
	}
}

func TestLoadJSONUndefinedToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	src := strings.Replace(aSbJSON, `"Id": "b"`, `"Id": "c"`, 1)
	_, err := LoadJSON(strings.NewReader(src), "S", aSbCategories())
	var undef *sfaa.UndefinedTokenError
	if !errors.As(err, &undef) || undef.Name != "c" {
		t.Errorf("expected undefined token c, got %v", err)
	}
}

func TestLoadEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.ll")
	defer teardown()
	//
	src := `
E = T { "+" T } .
T = "id" | "(" E ")" .
`
	g, err := LoadEBNF("expr.ebnf", strings.NewReader(src), "E", exprCategories(t))
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	if !g.IsNonTerminal("E~1") {
		t.Fatalf("expected helper non-terminal E~1 for repetition")
	}
	a := Analyze(g)
	if f := a.First("E~1"); !reflect.DeepEqual(f, tt(sfaa.Epsilon, tokPlus)) {
		t.Errorf("FIRST(E~1) = %v", f)
	}
	if f := a.Follow("T"); !reflect.DeepEqual(f, tt(sfaa.EndOfInput, tokPlus, tokRParen)) {
		t.Errorf("FOLLOW(T) = %v", f)
	}
	table := BuildTable(a, exprCategories(t))
	if len(table.Conflicts()) != 0 {
		t.Errorf("expected lowered grammar to be LL(1), conflicts: %v", table.Conflicts())
	}
}
