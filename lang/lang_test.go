package lang

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ll"
	"github.com/npillmayer/sfaa/ll/parser"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/scanner"
)

const square = `
func int #square ( int #n ) {
    return #n * #n ;
}
start
    var int #x = 7 ;   // initialized
    #x = call #square ( #x ) ;
    if ( #x > 40 ) { #x = 40 ; } fi
end
`

func TestCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.lang")
	defer teardown()
	//
	cats := Categories()
	if cats.Size() != len(keywords)+len(literals)+2 {
		t.Errorf("unexpected number of categories: %d", cats.Size())
	}
	for name, want := range map[string]sfaa.TokType{"elseif": ElseIf, "boolean": BooleanType,
		"(": LParen, "<=": LessEq, "||": Or, "id": ID} {
		if c, ok := cats.Category(name); !ok || c != want {
			t.Errorf("expected category of %q to be %d, is %d", name, want, c)
		}
	}
}

func TestGrammarIsLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.lang")
	defer teardown()
	//
	cats := Categories()
	g, err := Grammar(cats)
	if err != nil {
		t.Fatal(err)
	}
	if g.Start().Name != StartSymbol {
		t.Errorf("expected start symbol %s, is %s", StartSymbol, g.Start())
	}
	table := ll.BuildTable(ll.Analyze(g), cats)
	for _, c := range table.Conflicts() {
		t.Errorf("conflict: %s", c)
	}
	for _, w := range Wrappers {
		if !g.IsNonTerminal(w) {
			t.Errorf("wrapper %s is not a non-terminal of the grammar", w)
		}
	}
}

func TestLexerRegistersSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.lang")
	defer teardown()
	//
	env := runtime.NewEnvironment()
	lx, err := NewLexer(env, square)
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	lx.SetErrorHandler(func(e error) { errs = append(errs, e) })
	tokens := scanner.Drain(lx)
	if len(errs) > 0 {
		t.Fatalf("unexpected scanner errors: %v", errs)
	}
	var x, n sfaa.Handle = sfaa.NoHandle, sfaa.NoHandle
	for _, tok := range tokens {
		switch tok.TokType() {
		case ID, Const, True, False:
			if !tok.Handle().Valid() {
				t.Errorf("token %v carries no handle", tok)
			}
		}
		if tok.Lexeme() == "#x" {
			if x == sfaa.NoHandle {
				x = tok.Handle()
			} else if x != tok.Handle() {
				t.Errorf("#x resolved to different handles %d and %d", x, tok.Handle())
			}
		}
		if tok.Lexeme() == "#n" {
			n = tok.Handle()
		}
	}
	f, err := env.Symbols.Resolve("#square")
	if err != nil {
		t.Fatal(err)
	}
	fn, ok := f.(*runtime.Function)
	if !ok || len(fn.Params) != 1 || fn.Params[0] != n || fn.Returns != runtime.Int {
		t.Errorf("unexpected function symbol %v", f)
	}
	if v, ok := env.Symbols.Lookup(x).(*runtime.Variable); !ok || v.Scope.Name != MainScopeName {
		t.Errorf("expected #x to be a variable in scope main")
	}
	if env.Constants.Size() != 2 { // 7 and 40
		t.Errorf("expected 2 constants, have %d", env.Constants.Size())
	}
	if env.Symbols.Scopes().Current() != env.Symbols.Scopes().Globals() {
		t.Errorf("expected all scopes to be closed after scanning")
	}
}

func TestLexerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.lang")
	defer teardown()
	//
	inputs := []struct {
		src   string
		check func(error) bool
	}{
		{"start var int #x ; var char #x ; end", func(e error) bool {
			var d *sfaa.DuplicateDeclarationError
			return errors.As(e, &d)
		}},
		{"start #y = 1 ; end", func(e error) bool {
			var u *sfaa.UndeclaredSymbolError
			return errors.As(e, &u)
		}},
		{"start var char #c = 'ab' ; end", func(e error) bool {
			var m *sfaa.MalformedConstantError
			return errors.As(e, &m)
		}},
		{"start var float #f = 1.2.3 ; end", func(e error) bool {
			var m *sfaa.MalformedConstantError
			return errors.As(e, &m)
		}},
	}
	for i, input := range inputs {
		lx, err := NewLexer(runtime.NewEnvironment(), input.src)
		if err != nil {
			t.Fatal(err)
		}
		var errs []error
		lx.SetErrorHandler(func(e error) { errs = append(errs, e) })
		scanner.Drain(lx)
		if len(errs) != 1 || !input.check(errs[0]) {
			t.Errorf("input #%d: unexpected errors %v", i, errs)
		}
	}
}

func TestParseProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sfaa.lang")
	defer teardown()
	//
	cats := Categories()
	g, err := Grammar(cats)
	if err != nil {
		t.Fatal(err)
	}
	env := runtime.NewEnvironment()
	lx, err := NewLexer(env, square)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := parser.New(ll.BuildTable(ll.Analyze(g), cats)).Parse(lx)
	if err != nil {
		t.Fatal(err)
	}
	drained, err := NewLexer(runtime.NewEnvironment(), square)
	if err != nil {
		t.Fatal(err)
	}
	input, leaves := scanner.Drain(drained), parser.Tokens(pt)
	if len(leaves) != len(input) {
		t.Fatalf("expected parse tree to hold %d tokens, has %d", len(input), len(leaves))
	}
	for i, tok := range input {
		if leaves[i].TokType() != tok.TokType() || leaves[i].Lexeme() != tok.Lexeme() {
			t.Errorf("token #%d: expected %q, parse tree has %q", i, tok.Lexeme(), leaves[i].Lexeme())
		}
		if leaves[i].Span() != tok.Span() {
			t.Errorf("token #%d: expected span %v, parse tree has %v", i, tok.Span(), leaves[i].Span())
		}
	}
}
