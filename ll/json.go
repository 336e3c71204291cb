package ll

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/npillmayer/sfaa"
)

// EpsilonName is the terminal name denoting the empty string in declarative
// grammar sources.
const EpsilonName = "e"

type jsonRule struct {
	ID          string         `json:"id"`
	Productions [][]jsonSymbol `json:"production"`
}

type jsonSymbol struct {
	ID         string `json:"id"`
	IsTerminal bool   `json:"isTerminal"`
}

// LoadJSON reads a grammar from a JSON source: a list of rules, each having
// an id and a list of alternative right hand sides. Terminal names are looked
// up in cats. The terminal named "e" denotes epsilon.
//
// Key names are matched case-insensitively, so "Id" is accepted as well.
func LoadJSON(r io.Reader, start string, cats Categories) (*Grammar, error) {
	var rules []jsonRule
	if err := json.NewDecoder(r).Decode(&rules); err != nil {
		return nil, fmt.Errorf("cannot decode grammar: %w", err)
	}
	b := NewGrammarBuilder("G")
	if start != "" {
		b.StartSymbol(start)
	}
	for _, rule := range rules {
		if rule.ID == "" {
			return nil, fmt.Errorf("grammar rule without id")
		}
		if len(rule.Productions) == 0 {
			return nil, fmt.Errorf("grammar rule %s has no productions", rule.ID)
		}
		for _, rhs := range rule.Productions {
			rb := b.LHS(rule.ID)
			for _, sym := range rhs {
				if !sym.IsTerminal {
					rb.N(sym.ID)
					continue
				}
				if sym.ID == EpsilonName {
					if len(rhs) > 1 {
						return nil, fmt.Errorf("grammar rule %s: epsilon must stand alone", rule.ID)
					}
					continue
				}
				cat, ok := cats.Category(sym.ID)
				if !ok {
					return nil, &sfaa.UndefinedTokenError{Name: sym.ID, Where: "rule " + rule.ID}
				}
				rb.T(sym.ID, cat)
			}
			rb.End() // empty RHS becomes ε
		}
	}
	return b.Grammar()
}
