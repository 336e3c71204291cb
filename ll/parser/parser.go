/*
Package parser provides a table-driven LL(1) parser. Clients use the tools
of package ll to prepare a parsing table; the parser drives this table over
a token stream and creates a concrete parse tree.

Usage

	g, err := b.Grammar()                     // see package ll
	table := ll.BuildTable(ll.Analyze(g), categories)
	p := parser.New(table)
	pt, err := p.Parse(tokenizer)             // a scanner.Tokenizer

The parse tree mirrors the leftmost derivation of the input. Every terminal
leaf carries the input token it has been matched against, including the
token's symbol or constant table handle. Non-terminals which derived the
empty string are leaves without a token.

Parse errors are of type *sfaa.GrammarMismatchError. If configuration key
"panic-on-grammar-mismatch" is set, the parser panics instead; this is
useful for debugging grammars.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ll"
	"github.com/npillmayer/sfaa/scanner"
	"github.com/npillmayer/sfaa/tree"
)

// tracer traces with key 'sfaa.parser'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.parser")
}

// ParseNode is the value type of parse tree nodes.
type ParseNode struct {
	Symbol ll.Symbol
	Token  sfaa.Token // matched input token, terminals only
}

// Handle returns the registry handle of the matched token, or sfaa.NoHandle.
func (n ParseNode) Handle() sfaa.Handle {
	if n.Token == nil {
		return sfaa.NoHandle
	}
	return n.Token.Handle()
}

func (n ParseNode) String() string {
	if n.Token != nil && n.Token.Handle().Valid() {
		return fmt.Sprintf("%s:%s", n.Symbol.Name, n.Token.Lexeme())
	}
	return n.Symbol.String()
}

// EqualNodes compares parse nodes by grammar symbol.
func EqualNodes(a, b ParseNode) bool {
	return a.Symbol.Equals(b.Symbol)
}

// ParseTree is a concrete parse tree.
type ParseTree = tree.Tree[ParseNode]

// Parser is an LL(1) parser. Create one with New. A parser may be re-used for
// multiple inputs, but not concurrently.
type Parser struct {
	table *ll.Table
	stack *arraystack.Stack // of stackEntry
	err   error             // first error reported by the tokenizer
}

// Grammar symbols on the stack carry the tree node they will be stored in.
type stackEntry struct {
	sym  ll.Symbol
	node tree.NodeID
}

// New creates a parser for a parsing table.
func New(table *ll.Table) *Parser {
	if table == nil {
		panic("parser.New: table is nil")
	}
	return &Parser{table: table}
}

// Parse reads tokens from a tokenizer and creates a parse tree.
// Parsing succeeds if the input is fully consumed and the stack is empty.
// Errors reported by the tokenizer abort the parse and are returned
// unchanged.
func (p *Parser) Parse(scan scanner.Tokenizer) (*ParseTree, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	p.err = nil
	scan.SetErrorHandler(func(e error) {
		tracer().Errorf("tokenizer: %v", e)
		if p.err == nil {
			p.err = e
		}
	})
	start := p.table.Grammar().Start()
	pt := tree.New(ParseNode{Symbol: start}, EqualNodes)
	p.stack = arraystack.New()
	p.stack.Push(stackEntry{sym: start, node: pt.Root()})
	token := scan.NextToken()
	if p.err != nil {
		return nil, p.err
	}
	for !p.stack.Empty() {
		x, _ := p.stack.Peek()
		top := x.(stackEntry)
		tracer().Debugf("top = %v, input = %q/%d", top.sym, token.Lexeme(), token.TokType())
		if top.sym.IsTerminal() {
			if token.TokType() == sfaa.EndOfInput {
				return nil, p.mismatch(sfaa.LeftoverStack, top.sym, token)
			}
			if token.TokType() != top.sym.Category {
				return nil, p.mismatch(sfaa.UnexpectedToken, top.sym, token)
			}
			pt.SetValue(top.node, ParseNode{Symbol: top.sym, Token: token})
			p.stack.Pop()
			if token = scan.NextToken(); p.err != nil {
				return nil, p.err
			}
			continue
		}
		prod, ok := p.table.Production(top.sym.Name, token.TokType())
		if !ok {
			if token.TokType() == sfaa.EndOfInput {
				return nil, p.mismatch(sfaa.LeftoverStack, top.sym, token)
			}
			return nil, p.mismatch(sfaa.NoProduction, top.sym, token)
		}
		p.stack.Pop()
		if prod.IsEpsilon() {
			tracer().Debugf("%v derives ε", top.sym)
			continue
		}
		tracer().Debugf("predict %v", prod)
		rhs := prod.RHS()
		children := make([]tree.NodeID, len(rhs))
		for i, A := range rhs {
			children[i] = pt.AppendChild(top.node, ParseNode{Symbol: A})
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			p.stack.Push(stackEntry{sym: rhs[i], node: children[i]})
		}
	}
	if token.TokType() != sfaa.EndOfInput {
		return nil, p.mismatch(sfaa.LeftoverInput, sfaa.EndOfInput, token)
	}
	tracer().Infof("input accepted")
	return pt, nil
}

// mismatch creates a grammar mismatch error. expected is either a grammar
// symbol or a token category.
func (p *Parser) mismatch(kind sfaa.MismatchKind, expected interface{}, token sfaa.Token) error {
	name := p.table.Stringer()
	var exp string
	switch e := expected.(type) {
	case ll.Symbol:
		exp = e.Name
	case sfaa.TokType:
		exp = name(e)
	}
	found := "end of input"
	if token.TokType() != sfaa.EndOfInput {
		found = fmt.Sprintf("%q (%s)", token.Lexeme(), name(token.TokType()))
	}
	err := &sfaa.GrammarMismatchError{Kind: kind, Expected: exp, Found: found, Span: token.Span()}
	tracer().Errorf("%v", err)
	if gconf.GetBool("panic-on-grammar-mismatch") {
		panic(err)
	}
	return err
}

// Span returns the input positions covered by node n of a parse tree: the
// span of the matched token for terminals, the extent of all matched tokens
// below n for non-terminals. Nodes which derived ε have a null span.
func Span(pt *ParseTree, n tree.NodeID) sfaa.Span {
	if tok := pt.Value(n).Token; tok != nil {
		return tok.Span()
	}
	var span sfaa.Span
	for _, ch := range pt.Children(n) {
		span = span.Extend(Span(pt, ch))
	}
	return span
}

// Tokens returns the input tokens stored in the leaves of a parse tree, from
// left to right.
func Tokens(pt *ParseTree) []sfaa.Token {
	var tokens []sfaa.Token
	for _, leaf := range pt.Leaves() {
		if tok := pt.Value(leaf).Token; tok != nil {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
