package ll

import (
	"fmt"
	"io"
	"sort"

	"github.com/npillmayer/sfaa"
	"golang.org/x/exp/ebnf"
)

// LoadEBNF reads a grammar in EBNF notation, as understood by package
// golang.org/x/exp/ebnf:
//
//    Expr   = Term ExprT .
//    ExprT  = [ "+" Term ExprT ] .
//    Term   = "id" | "(" Expr ")" .
//
// Names with a production of their own are non-terminals. Tokens and names
// without a production are terminals and have to be known to cats.
// Groups, options and repetitions are lowered to helper non-terminals named
// after the enclosing rule ("ExprT~1", …); repetitions become right
// recursive. An empty expression is epsilon.
//
// The resulting grammar has to be LL(1); nothing in the lowering will
// remove left recursion or common prefixes.
func LoadEBNF(name string, r io.Reader, start string, cats Categories) (*Grammar, error) {
	src, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, err
	}
	if _, ok := src[start]; !ok {
		return nil, fmt.Errorf("EBNF grammar %s has no production for start symbol %s", name, start)
	}
	names := make([]string, 0, len(src))
	for n := range src {
		if n != start {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	names = append([]string{start}, names...)
	//
	l := &ebnfLowering{src: src, cats: cats, b: NewGrammarBuilder(name)}
	l.b.StartSymbol(start)
	for _, A := range names {
		l.lhs, l.helpers = A, 0
		alts, err := l.alternatives(src[A].Expr)
		if err != nil {
			return nil, err
		}
		l.emit(A, alts)
		for len(l.pending) > 0 {
			h := l.pending[0]
			l.pending = l.pending[1:]
			l.emit(h.name, h.alts)
		}
	}
	return l.b.Grammar()
}

type ebnfLowering struct {
	src     ebnf.Grammar
	cats    Categories
	b       *GrammarBuilder
	lhs     string // rule currently lowered
	helpers int    // helper counter for lhs
	pending []helperRule
}

type helperRule struct {
	name string
	alts [][]Symbol
}

func (l *ebnfLowering) emit(A string, alts [][]Symbol) {
	for _, rhs := range alts {
		rb := l.b.LHS(A)
		rb.rhs = append(rb.rhs, rhs...)
		rb.End()
	}
}

func (l *ebnfLowering) alternatives(e ebnf.Expression) ([][]Symbol, error) {
	switch x := e.(type) {
	case nil:
		return [][]Symbol{{}}, nil
	case ebnf.Alternative:
		var alts [][]Symbol
		for _, branch := range x {
			a, err := l.alternatives(branch)
			if err != nil {
				return nil, err
			}
			alts = append(alts, a...)
		}
		return alts, nil
	}
	seq, err := l.sequence(e)
	if err != nil {
		return nil, err
	}
	return [][]Symbol{seq}, nil
}

func (l *ebnfLowering) sequence(e ebnf.Expression) ([]Symbol, error) {
	switch x := e.(type) {
	case ebnf.Sequence:
		var seq []Symbol
		for _, item := range x {
			syms, err := l.sequence(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, syms...)
		}
		return seq, nil
	case *ebnf.Name:
		if _, isNT := l.src[x.String]; isNT {
			return []Symbol{NonTerminal(x.String)}, nil
		}
		return l.terminal(x.String)
	case *ebnf.Token:
		return l.terminal(x.String)
	case *ebnf.Group:
		alts, err := l.alternatives(x.Body)
		if err != nil {
			return nil, err
		}
		return []Symbol{l.helper(alts)}, nil
	case *ebnf.Option:
		alts, err := l.alternatives(x.Body)
		if err != nil {
			return nil, err
		}
		return []Symbol{l.helper(append(alts, []Symbol{}))}, nil
	case *ebnf.Repetition:
		alts, err := l.alternatives(x.Body)
		if err != nil {
			return nil, err
		}
		H := l.helper(nil)
		rec := make([][]Symbol, 0, len(alts)+1)
		for _, rhs := range alts {
			rec = append(rec, append(append([]Symbol{}, rhs...), H))
		}
		l.pending[len(l.pending)-1].alts = append(rec, []Symbol{}) // H -> ε
		return []Symbol{H}, nil
	case ebnf.Alternative:
		alts, err := l.alternatives(x)
		if err != nil {
			return nil, err
		}
		return []Symbol{l.helper(alts)}, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("EBNF rule %s: unsupported expression %T", l.lhs, e)
}

func (l *ebnfLowering) terminal(name string) ([]Symbol, error) {
	cat, ok := l.cats.Category(name)
	if !ok {
		return nil, &sfaa.UndefinedTokenError{Name: name, Where: "rule " + l.lhs}
	}
	return []Symbol{Terminal(name, cat)}, nil
}

// helper registers a synthesized non-terminal. Its productions are emitted
// after those of the enclosing rule.
func (l *ebnfLowering) helper(alts [][]Symbol) Symbol {
	l.helpers++
	name := fmt.Sprintf("%s~%d", l.lhs, l.helpers)
	l.pending = append(l.pending, helperRule{name: name, alts: alts})
	tracer().Debugf("EBNF: synthesized non-terminal %s", name)
	return NonTerminal(name)
}
