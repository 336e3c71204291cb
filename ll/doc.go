/*
Package ll implements prerequisites for LL(1) parsing: a grammar model,
FIRST/FOLLOW analysis and the predictive parsing table.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token category of type sfaa.TokType. Grammars may contain
epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("S").T("a", 1).N("S").T("b", 2).End()  // S  ->  a S b
    b.LHS("S").Epsilon()                         // S  ->
    g, err := b.Grammar()

Alternatively, grammars are loaded from a declarative source. LoadJSON reads
a list of rules

    [ { "id": "S", "production": [ [ {"id": "a", "isTerminal": true},
                                     {"id": "S", "isTerminal": false},
                                     {"id": "b", "isTerminal": true} ],
                                   [ {"id": "e", "isTerminal": true} ] ] } ]

and LoadEBNF reads EBNF in the notation of golang.org/x/exp/ebnf:

    S = "a" S "b" | .

Terminal names are resolved against a Categories registry; unknown names
result in an sfaa.UndefinedTokenError.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. Analyze computes
FIRST and FOLLOW sets and an index telling which production contributes a
terminal to a FIRST set.

    a := ll.Analyze(g)
    a.First("S")     // {ε, a}
    a.Follow("S")    // {b, $}

Parser Construction

BuildTable creates the LL(1) parsing table from an analysis. The table is
consumed by the parser in package ll/parser.

    table := ll.BuildTable(a, categories)
    p, ok := table.Production("S", 1)   // S -> a S b

The grammar has to be LL(1). Conflicting table entries are resolved by
letting the last write win; they are not reported as errors, but may be
inspected with Table.Conflicts.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sfaa.ll'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.ll")
}
