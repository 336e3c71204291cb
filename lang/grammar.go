package lang

import (
	"bytes"
	_ "embed"

	"github.com/npillmayer/sfaa/ll"
)

//go:embed sfaa.json
var grammarSource []byte

// StartSymbol is the start symbol of the SFAA grammar.
const StartSymbol = "SFAA"

// Non-terminals the code generator and the normalizer dispatch on.
const (
	NtProgram  = "SFAA"
	NtFunc     = "FUNC"
	NtParam    = "PARAM"
	NtDecl     = "DECL"
	NtAssign   = "ASSIGN"
	NtCall     = "CALL"
	NtCallStmt = "CALLSTMT"
	NtIf       = "IF"
	NtElse     = "ELSE"
	NtLoop     = "LOOP"
	NtReturn   = "RETURN"
)

// Wrappers lists the non-terminals which encode repetition and
// sequencing only. The normalizer replaces them by their children.
var Wrappers = []string{
	"FUNCS", "PARAMS", "PARAMS_T", "STMTS", "STMT", "INIT", "ARGS", "ARGS_T",
	"EXPR_T", "REL_T", "SUM_T", "TERM_T",
}

// GrammarSource returns the declarative source of the SFAA grammar.
func GrammarSource() []byte {
	return append([]byte{}, grammarSource...)
}

// Grammar loads the SFAA grammar, resolving terminals against cats.
func Grammar(cats ll.Categories) (*ll.Grammar, error) {
	g, err := ll.LoadJSON(bytes.NewReader(grammarSource), StartSymbol, cats)
	if err != nil {
		tracer().Errorf("cannot load SFAA grammar: %v", err)
		return nil, err
	}
	g.Name = "SFAA"
	return g, nil
}
