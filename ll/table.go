package ll

import (
	"fmt"
	"html"
	"io"

	"github.com/cnf/structhash"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ll/sparse"
)

// Table is an LL(1) parsing table. Rows are non-terminals, columns are token
// categories including sfaa.EndOfInput; every non-empty cell references a
// production. Tables are read-only after construction.
type Table struct {
	g         *Grammar
	cats      Categories
	rows      map[string]int // non-terminal -> row
	mincol    sfaa.TokType   // lowest category => offset for column access
	matrix    *sparse.IntMatrix
	conflicts []Conflict
}

// Conflict describes a table cell written more than once with different
// productions during construction. The later production has won.
type Conflict struct {
	NonTerminal string
	Lookahead   sfaa.TokType
	Discarded   *Production
	Kept        *Production
}

func (c Conflict) String() string {
	return fmt.Sprintf("M[%s,%d]: %v overwritten by %v", c.NonTerminal, c.Lookahead, c.Discarded, c.Kept)
}

// BuildTable creates the parsing table for an analysed grammar.
//
// If a non-terminal N may vanish, its epsilon production is entered for
// every terminal in FOLLOW(N). Afterwards, for every terminal t in FIRST(N),
// the production found in the FirstProductionIndex is entered, overwriting
// an epsilon entry. The grammar has to be LL(1) for the table to be useful;
// this is not checked, but collisions are recorded (see Conflicts).
func BuildTable(a *Analysis, cats Categories) *Table {
	g := a.Grammar()
	mincol, maxcol := sfaa.EndOfInput, sfaa.TokType(0)
	cats.EachCategory(func(t sfaa.TokType, _ string) {
		if t > maxcol {
			maxcol = t
		}
	})
	for _, T := range g.Terminals() {
		if T.Category > maxcol {
			maxcol = T.Category
		}
	}
	extent := int(maxcol - mincol + 1)
	tracer().Infof("LL(1) table of size %d x %d", len(g.order), extent)
	t := &Table{
		g:      g,
		cats:   cats,
		rows:   make(map[string]int, len(g.order)),
		mincol: mincol,
		matrix: sparse.NewIntMatrix(len(g.order), extent, sparse.DefaultNullValue),
	}
	for i, N := range g.order {
		t.rows[N] = i
	}
	for _, N := range g.order {
		if p := a.EpsilonProduction(N); p != nil {
			for _, la := range a.Follow(N) {
				t.set(N, la, p)
			}
		}
		for _, la := range a.First(N) {
			if la == sfaa.Epsilon {
				continue
			}
			if p := a.FirstProduction(N, la); p != nil {
				t.set(N, la, p)
			}
		}
	}
	if len(t.conflicts) > 0 {
		tracer().Infof("grammar %s is not LL(1): %d conflicts", g.Name, len(t.conflicts))
	}
	return t
}

func (t *Table) set(N string, la sfaa.TokType, p *Production) {
	i, j := t.rows[N], t.column(la)
	old := t.matrix.Set(i, j, int32(p.Serial))
	tracer().Debugf("M[%s,%s] = %v", N, t.cats.CategoryName(la), p)
	if old != t.matrix.NullValue() && int(old) != p.Serial {
		t.conflicts = append(t.conflicts, Conflict{
			NonTerminal: N,
			Lookahead:   la,
			Discarded:   t.g.Production(int(old)),
			Kept:        p,
		})
	}
}

func (t *Table) column(la sfaa.TokType) int {
	j := la - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		panic(fmt.Sprintf("ll.Table: lookahead category %d out of range", la))
	}
	return int(j)
}

// Grammar returns the grammar the table has been built for.
func (t *Table) Grammar() *Grammar {
	return t.g
}

// Categories returns the token category registry the table has been built
// with.
func (t *Table) Categories() Categories {
	return t.cats
}

// Production returns the production in cell (A, la). If the cell is empty,
// or A is not a non-terminal, or la is outside the range of known
// categories, the second return value is false.
func (t *Table) Production(A string, la sfaa.TokType) (*Production, bool) {
	i, ok := t.rows[A]
	if !ok {
		return nil, false
	}
	j := la - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		return nil, false
	}
	v := t.matrix.Value(i, int(j))
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.Production(int(v)), true
}

// Each calls f for every non-empty cell, row by row.
func (t *Table) Each(f func(A string, la sfaa.TokType, p *Production)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(t.g.order[i], sfaa.TokType(j)+t.mincol, t.g.Production(int(v)))
	})
}

// Size returns the number of non-empty cells.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Conflicts returns the cells which have been written more than once with
// different productions. For an LL(1) grammar the list is empty.
func (t *Table) Conflicts() []Conflict {
	return t.conflicts
}

type tableCell struct {
	NonTerminal string
	Lookahead   int
	Production  string
}

type tableSnapshot struct {
	Start string
	Cells []tableCell
}

// Fingerprint returns a hash over the cells of the table. Tables built from
// the same grammar have identical fingerprints.
func (t *Table) Fingerprint() string {
	snap := tableSnapshot{Start: t.g.start}
	t.Each(func(A string, la sfaa.TokType, p *Production) {
		snap.Cells = append(snap.Cells, tableCell{A, int(la), p.String()})
	})
	h, err := structhash.Hash(snap, 1)
	if err != nil {
		panic(err) // snapshot contains no untaggable fields
	}
	return h
}

// Stringer returns a function printing the category names of the table's
// columns.
func (t *Table) Stringer() sfaa.TokTypeStringer {
	return t.cats.CategoryName
}

// TableAsHTML exports a parsing table in HTML format.
func TableAsHTML(t *Table, w io.Writer) {
	var cols []sfaa.TokType
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, %d entries<p>", html.EscapeString(t.g.Name), t.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	t.cats.EachCategory(func(la sfaa.TokType, name string) {
		cols = append(cols, la)
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(name)))
	})
	cols = append(cols, sfaa.EndOfInput)
	io.WriteString(w, "<td>$</td></tr>\n")
	for _, A := range t.g.order {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(A)))
		for _, la := range cols {
			td := "&nbsp;"
			if p, ok := t.Production(A, la); ok {
				td = fmt.Sprintf("%d", p.Serial)
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
