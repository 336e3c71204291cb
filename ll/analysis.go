package ll

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/sfaa"
)

// Analysis holds the results of a static analysis of a grammar: FIRST and
// FOLLOW sets, and the FirstProductionIndex. Create with Analyze.
type Analysis struct {
	g         *Grammar
	first     map[string]*treeset.Set  // FIRST sets, may contain sfaa.Epsilon
	follow    map[string]*treeset.Set  // FOLLOW sets, may contain sfaa.EndOfInput
	firstProd map[string]*treemap.Map  // A -> (terminal -> *Production)
	epsProd   map[string]*Production   // first production of A deriving ε
	state     map[string]analysisState // for the recursive set computations
}

type analysisState int8

const (
	unvisited analysisState = iota
	inProgress
	finished
)

// Analyze computes FIRST and FOLLOW sets for a grammar.
func Analyze(g *Grammar) *Analysis {
	if g == nil {
		panic("ll.Analyze: grammar is nil")
	}
	a := &Analysis{
		g:         g,
		first:     make(map[string]*treeset.Set),
		follow:    make(map[string]*treeset.Set),
		firstProd: make(map[string]*treemap.Map),
		epsProd:   make(map[string]*Production),
	}
	for _, A := range g.order {
		a.first[A] = treeset.NewWith(tokTypeComparator)
		a.follow[A] = treeset.NewWith(tokTypeComparator)
		a.firstProd[A] = treemap.NewWith(tokTypeComparator)
	}
	a.computeFirst()
	a.computeFollow()
	a.state = nil
	return a
}

// Grammar returns the analysed grammar.
func (a *Analysis) Grammar() *Grammar {
	return a.g
}

// First returns FIRST(A), ordered by category. If A derives the empty string,
// the result contains sfaa.Epsilon.
func (a *Analysis) First(A string) []sfaa.TokType {
	return tokTypes(a.first[A])
}

// Follow returns FOLLOW(A), ordered by category. FOLLOW of the start symbol
// contains sfaa.EndOfInput.
func (a *Analysis) Follow(A string) []sfaa.TokType {
	return tokTypes(a.follow[A])
}

// DerivesEpsilon is true if A can derive the empty string.
func (a *Analysis) DerivesEpsilon(A string) bool {
	F, ok := a.first[A]
	return ok && F.Contains(sfaa.Epsilon)
}

// FirstProduction returns the production of A which yields terminal t as its
// first symbol.
func (a *Analysis) FirstProduction(A string, t sfaa.TokType) *Production {
	m, ok := a.firstProd[A]
	if !ok {
		return nil
	}
	if p, found := m.Get(t); found {
		return p.(*Production)
	}
	return nil
}

// EpsilonProduction returns the first-listed production of A able to derive
// the empty string, or nil.
func (a *Analysis) EpsilonProduction(A string) *Production {
	return a.epsProd[A]
}

// FirstOfSequence returns FIRST of a sequence of symbols. The result contains
// sfaa.Epsilon if every symbol of the sequence may vanish (or the sequence is
// empty).
func (a *Analysis) FirstOfSequence(syms []Symbol) []sfaa.TokType {
	return tokTypes(a.firstOfSequence(syms))
}

func (a *Analysis) firstOfSequence(syms []Symbol) *treeset.Set {
	F := treeset.NewWith(tokTypeComparator)
	for _, A := range syms {
		if A.IsEpsilon() {
			continue
		}
		if A.IsTerminal() {
			F.Add(A.Category)
			return F
		}
		FA := a.first[A.Name]
		addWithout(F, FA, sfaa.Epsilon)
		if !FA.Contains(sfaa.Epsilon) {
			return F
		}
	}
	F.Add(sfaa.Epsilon)
	return F
}

// --- FIRST -----------------------------------------------------------------

func (a *Analysis) computeFirst() {
	a.state = make(map[string]analysisState)
	for _, A := range a.g.order {
		if a.state[A] == unvisited {
			a.firstOf(A)
		}
	}
	// The recursive pass ignores non-terminals still in progress; a sweep
	// until nothing changes completes the sets.
	for changed := true; changed; {
		changed = false
		a.g.EachProduction(func(p *Production) {
			if addAllNew(a.first[p.LHS], a.firstOfSequence(p.rhs)) {
				changed = true
			}
		})
	}
	// The index is derived from the final sets, later productions
	// overwriting earlier ones.
	for _, A := range a.g.order {
		for _, p := range a.g.rules[A] {
			for _, x := range a.firstOfSequence(p.rhs).Values() {
				t := x.(sfaa.TokType)
				if t == sfaa.Epsilon {
					if a.epsProd[A] == nil {
						a.epsProd[A] = p
					}
					continue
				}
				a.firstProd[A].Put(t, p)
			}
		}
		tracer().Debugf("FIRST(%s) = %s", A, a.setString(a.first[A]))
	}
}

// firstOf walks every production of A left to right, adding terminals and
// the FIRST sets of leading non-terminals, as long as the symbols visited so
// far may vanish.
func (a *Analysis) firstOf(A string) *treeset.Set {
	a.state[A] = inProgress
	F := a.first[A]
	for _, p := range a.g.rules[A] {
		vanishes := true
		for _, B := range p.rhs {
			if B.IsEpsilon() {
				continue
			}
			if B.IsTerminal() {
				F.Add(B.Category)
				a.firstProd[A].Put(B.Category, p)
				vanishes = false
				break
			}
			var FB *treeset.Set
			switch a.state[B.Name] {
			case unvisited:
				FB = a.firstOf(B.Name)
			case finished:
				FB = a.first[B.Name]
			case inProgress:
				FB = nil // partial set, do not use
			}
			if FB == nil {
				vanishes = false
				break
			}
			for _, x := range FB.Values() {
				if t := x.(sfaa.TokType); t != sfaa.Epsilon {
					F.Add(t)
					a.firstProd[A].Put(t, p)
				}
			}
			if !FB.Contains(sfaa.Epsilon) {
				vanishes = false
				break
			}
		}
		if vanishes {
			F.Add(sfaa.Epsilon)
		}
	}
	a.state[A] = finished
	return F
}

// --- FOLLOW ----------------------------------------------------------------

func (a *Analysis) computeFollow() {
	a.state = make(map[string]analysisState)
	a.follow[a.g.start].Add(sfaa.EndOfInput)
	for _, N := range a.g.order {
		if a.state[N] == unvisited {
			a.followOf(N)
		}
	}
	for changed := true; changed; {
		changed = false
		a.g.EachProduction(func(p *Production) {
			for i, N := range p.rhs {
				if N.IsTerminal() {
					continue
				}
				F := a.firstOfSequence(p.rhs[i+1:])
				if addAllNew(a.follow[N.Name], without(F, sfaa.Epsilon)) {
					changed = true
				}
				if F.Contains(sfaa.Epsilon) && addAllNew(a.follow[N.Name], a.follow[p.LHS]) {
					changed = true
				}
			}
		})
	}
	for _, N := range a.g.order {
		tracer().Debugf("FOLLOW(%s) = %s", N, a.setString(a.follow[N]))
	}
}

// followOf scans all productions for occurrences of N. The FIRST sets of the
// symbols following N are added, and if they may all vanish, FOLLOW of the
// production's owner is added as well.
func (a *Analysis) followOf(N string) *treeset.Set {
	a.state[N] = inProgress
	FN := a.follow[N]
	for _, K := range a.g.order {
		for _, p := range a.g.rules[K] {
			for i, X := range p.rhs {
				if X.IsTerminal() || X.Name != N {
					continue
				}
				F := a.firstOfSequence(p.rhs[i+1:])
				addWithout(FN, F, sfaa.Epsilon)
				if !F.Contains(sfaa.Epsilon) || K == N {
					continue
				}
				if a.state[K] == unvisited {
					a.followOf(K)
				}
				addWithout(FN, a.follow[K], sfaa.Epsilon)
			}
		}
	}
	a.state[N] = finished
	return FN
}

// --- Helpers ---------------------------------------------------------------

func tokTypes(S *treeset.Set) []sfaa.TokType {
	if S == nil {
		return nil
	}
	r := make([]sfaa.TokType, 0, S.Size())
	for _, x := range S.Values() {
		r = append(r, x.(sfaa.TokType))
	}
	return r
}

func addWithout(dest, src *treeset.Set, skip sfaa.TokType) {
	for _, x := range src.Values() {
		if x.(sfaa.TokType) != skip {
			dest.Add(x)
		}
	}
}

func without(S *treeset.Set, skip sfaa.TokType) *treeset.Set {
	R := treeset.NewWith(tokTypeComparator)
	addWithout(R, S, skip)
	return R
}

// addAllNew adds the members of src to dest and reports whether dest grew.
func addAllNew(dest, src *treeset.Set) bool {
	n := dest.Size()
	dest.Add(src.Values()...)
	return dest.Size() > n
}

func (a *Analysis) setString(S *treeset.Set) string {
	names := make([]string, 0, S.Size())
	for _, x := range S.Values() {
		t := x.(sfaa.TokType)
		switch t {
		case sfaa.Epsilon:
			names = append(names, "ε")
		case sfaa.EndOfInput:
			names = append(names, "$")
		default:
			if T, ok := a.g.terminals[t]; ok {
				names = append(names, T.Name)
			} else {
				names = append(names, fmt.Sprintf("%d", t))
			}
		}
	}
	return fmt.Sprintf("%v", names)
}
