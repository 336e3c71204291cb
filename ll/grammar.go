package ll

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/npillmayer/sfaa"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a grammar symbol: either a terminal, referencing a token category
// (or epsilon), or a non-terminal, referencing a set of rules. Symbols are
// values and immutable.
type Symbol struct {
	Name     string       // non-terminal name, or a printable terminal name
	Category sfaa.TokType // token category for terminals
	terminal bool
}

// NonTerminal creates a non-terminal symbol.
func NonTerminal(name string) Symbol {
	return Symbol{Name: name}
}

// Terminal creates a terminal symbol for a token category.
func Terminal(name string, cat sfaa.TokType) Symbol {
	return Symbol{Name: name, Category: cat, terminal: true}
}

// EpsilonSymbol is the terminal for the empty string.
var EpsilonSymbol = Symbol{Name: "ε", Category: sfaa.Epsilon, terminal: true}

// IsTerminal is true for terminals, including epsilon.
func (A Symbol) IsTerminal() bool {
	return A.terminal
}

// IsEpsilon is true for the empty-string terminal.
func (A Symbol) IsEpsilon() bool {
	return A.terminal && A.Category == sfaa.Epsilon
}

// Equals compares symbols. Terminals are equal if their categories match,
// non-terminals if their names match.
func (A Symbol) Equals(B Symbol) bool {
	if A.terminal != B.terminal {
		return false
	}
	if A.terminal {
		return A.Category == B.Category
	}
	return A.Name == B.Name
}

func (A Symbol) String() string {
	if A.terminal {
		return A.Name
	}
	return "[" + A.Name + "]"
}

// --- Productions -----------------------------------------------------------

// Production is an ordered sequence of symbols, owned by a non-terminal.
// An epsilon production consists of the single symbol EpsilonSymbol.
type Production struct {
	Serial int    // unique number within the grammar
	LHS    string // the owning non-terminal
	rhs    []Symbol
}

// RHS returns the right hand side of the production.
func (p *Production) RHS() []Symbol {
	return p.rhs
}

// IsEpsilon is true for the production A -> ε.
func (p *Production) IsEpsilon() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

func (p *Production) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("%d: [%s] ::= [", p.Serial, p.LHS))
	for i, A := range p.rhs {
		if i > 0 {
			b.WriteString(" ")
		}
		if A.IsEpsilon() {
			continue
		}
		b.WriteString(A.Name)
	}
	b.WriteString("]")
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar maps non-terminals to their ordered set of productions. A grammar
// is read-only after it has been built.
type Grammar struct {
	Name        string
	start       string
	order       []string // non-terminals in order of definition
	rules       map[string][]*Production
	productions []*Production // indexed by serial
	terminals   map[sfaa.TokType]Symbol
}

func newGrammar(name string) *Grammar {
	return &Grammar{
		Name:      name,
		rules:     make(map[string][]*Production),
		terminals: make(map[sfaa.TokType]Symbol),
	}
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return NonTerminal(g.start)
}

// Productions returns the alternatives of non-terminal A, in order of
// definition.
func (g *Grammar) Productions(A string) []*Production {
	return g.rules[A]
}

// Production returns the production with a given serial number.
func (g *Grammar) Production(serial int) *Production {
	if serial < 0 || serial >= len(g.productions) {
		return nil
	}
	return g.productions[serial]
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.productions)
}

// NonTerminals returns the names of all non-terminals, in order of
// definition. The start symbol is always first.
func (g *Grammar) NonTerminals() []string {
	return append([]string{}, g.order...)
}

// IsNonTerminal checks whether a rule set for A exists.
func (g *Grammar) IsNonTerminal(A string) bool {
	_, ok := g.rules[A]
	return ok
}

// Terminals returns all terminals used in the grammar, ordered by category.
func (g *Grammar) Terminals() []Symbol {
	terms := make([]Symbol, 0, len(g.terminals))
	for _, T := range g.terminals {
		terms = append(terms, T)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Category < terms[j].Category })
	return terms
}

// EachProduction calls f for every production, in serial order.
func (g *Grammar) EachProduction(f func(p *Production)) {
	for _, p := range g.productions {
		f(p)
	}
}

// Dump traces all productions of a grammar (at debug level).
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	g.EachProduction(func(p *Production) {
		tracer().Debugf("%s", p)
	})
	tracer().Debugf("-------------------------------------------------------")
}

// --- Builder ---------------------------------------------------------------

// GrammarBuilder is used to construct a grammar. Use it like this:
//
//    b := ll.NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a", 1).End()
//    b.LHS("A").Epsilon()
//    g, err := b.Grammar()
//
// The first LHS defines the start symbol, unless set explicitly with
// StartSymbol.
type GrammarBuilder struct {
	g     *Grammar
	start string
}

// NewGrammarBuilder creates a builder for a grammar with the given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: newGrammar(name)}
}

// StartSymbol sets the start symbol of the grammar.
func (b *GrammarBuilder) StartSymbol(A string) *GrammarBuilder {
	b.start = A
	return b
}

// RuleBuilder collects the right hand side of a single production.
type RuleBuilder struct {
	b   *GrammarBuilder
	lhs string
	rhs []Symbol
}

// LHS starts a new production for non-terminal A.
func (b *GrammarBuilder) LHS(A string) *RuleBuilder {
	if A == "" {
		panic("ll: empty name for non-terminal")
	}
	if b.start == "" {
		b.start = A
	}
	return &RuleBuilder{b: b, lhs: A}
}

// N appends a non-terminal to the right hand side.
func (r *RuleBuilder) N(A string) *RuleBuilder {
	r.rhs = append(r.rhs, NonTerminal(A))
	return r
}

// T appends a terminal with a token category to the right hand side.
func (r *RuleBuilder) T(name string, cat sfaa.TokType) *RuleBuilder {
	if cat < 0 {
		panic(fmt.Sprintf("ll: terminal %q with reserved category %d", name, cat))
	}
	r.rhs = append(r.rhs, Terminal(name, cat))
	return r
}

// End completes the production.
func (r *RuleBuilder) End() *Production {
	if len(r.rhs) == 0 {
		return r.Epsilon()
	}
	return r.b.add(r.lhs, r.rhs)
}

// Epsilon completes the production as A -> ε. Any symbols collected so far
// are dropped.
func (r *RuleBuilder) Epsilon() *Production {
	return r.b.add(r.lhs, []Symbol{EpsilonSymbol})
}

func (b *GrammarBuilder) add(lhs string, rhs []Symbol) *Production {
	g := b.g
	if _, ok := g.rules[lhs]; !ok {
		g.order = append(g.order, lhs)
	}
	p := &Production{Serial: len(g.productions), LHS: lhs, rhs: rhs}
	g.productions = append(g.productions, p)
	g.rules[lhs] = append(g.rules[lhs], p)
	for _, A := range rhs {
		if A.IsTerminal() && !A.IsEpsilon() {
			g.terminals[A.Category] = A
		}
	}
	return p
}

// Grammar returns the grammar built so far, after checking that every
// referenced non-terminal is defined and that the start symbol exists.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	g := b.g
	if b.start == "" {
		return nil, fmt.Errorf("grammar %s is empty", g.Name)
	}
	if !g.IsNonTerminal(b.start) {
		return nil, fmt.Errorf("grammar %s: start symbol %s has no rules", g.Name, b.start)
	}
	g.start = b.start
	for _, p := range g.productions {
		for i, A := range p.rhs {
			if A.IsEpsilon() && len(p.rhs) > 1 {
				return nil, fmt.Errorf("grammar %s: epsilon within production %s (position %d)",
					g.Name, p, i)
			}
			if !A.IsTerminal() && !g.IsNonTerminal(A.Name) {
				return nil, fmt.Errorf("grammar %s: non-terminal %s referenced in %s is undefined",
					g.Name, A.Name, p)
			}
		}
	}
	g.order = startFirst(g.order, g.start)
	tracer().Debugf("grammar %s has %d productions", g.Name, len(g.productions))
	return g, nil
}

func startFirst(order []string, start string) []string {
	r := []string{start}
	for _, A := range order {
		if A != start {
			r = append(r, A)
		}
	}
	return r
}
