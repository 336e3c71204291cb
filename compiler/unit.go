/*
Package compiler runs the SFAA pipeline: lexical analysis, LL(1) parsing,
AST construction and generation of three-address code.

A Unit holds everything a compilation needs: the parsing table, built once
when the unit is created, and the registries of the most recent
compilation. Units share nothing mutable, so independent units may compile
in parallel.

    unit, err := compiler.New()
    result, err := unit.Compile(src)
    fmt.Print(result.Listing())

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compiler

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa/ast"
	"github.com/npillmayer/sfaa/lang"
	"github.com/npillmayer/sfaa/ll"
	"github.com/npillmayer/sfaa/ll/parser"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/tac"
)

// tracer traces with key 'sfaa.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.compiler")
}

// Unit is a compilation context.
type Unit struct {
	cats       ll.Categories
	grammar    *ll.Grammar
	analysis   *ll.Analysis
	table      *ll.Table
	normalizer *ast.Normalizer
}

// Option configures a Unit.
type Option func(*Unit) error

// WithGrammar lets a unit use a grammar other than the built-in SFAA
// grammar. The grammar has to use the SFAA token categories and the
// non-terminal names the code generator expects.
func WithGrammar(g *ll.Grammar) Option {
	return func(u *Unit) error {
		u.grammar = g
		return nil
	}
}

// New creates a compilation unit and builds its parsing table.
func New(opts ...Option) (*Unit, error) {
	cats := lang.Categories()
	u := &Unit{
		cats:       cats,
		normalizer: &ast.Normalizer{Wrappers: lang.Wrappers, Open: lang.LParen, Close: lang.RParen},
	}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}
	if u.grammar == nil {
		g, err := lang.Grammar(cats)
		if err != nil {
			return nil, err
		}
		u.grammar = g
	}
	u.analysis = ll.Analyze(u.grammar)
	u.table = ll.BuildTable(u.analysis, cats)
	for _, c := range u.table.Conflicts() {
		tracer().Infof("grammar is not LL(1): %s", c)
	}
	return u, nil
}

// Grammar returns the grammar of the unit.
func (u *Unit) Grammar() *ll.Grammar {
	return u.grammar
}

// Analysis returns the FIRST and FOLLOW sets of the unit's grammar.
func (u *Unit) Analysis() *ll.Analysis {
	return u.analysis
}

// Table returns the parsing table of the unit.
func (u *Unit) Table() *ll.Table {
	return u.table
}

// Result holds the artifacts of a successful compilation.
type Result struct {
	Env  *runtime.Environment
	AST  *ast.Tree
	Code []tac.Instruction
}

// Listing renders the generated code.
func (r *Result) Listing() string {
	return tac.Listing(r.Code, r.Env)
}

// Parse runs the front end only and returns the concrete parse tree. Every
// call starts with fresh registries.
func (u *Unit) Parse(src string) (*parser.ParseTree, *runtime.Environment, error) {
	env := runtime.NewEnvironment()
	lx, err := lang.NewLexer(env, src)
	if err != nil {
		return nil, nil, err
	}
	pt, err := parser.New(u.table).Parse(lx)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, nil, err
	}
	return pt, env, nil
}

// Normalize turns a parse tree into an AST, in place.
func (u *Unit) Normalize(pt *parser.ParseTree) *ast.Tree {
	return u.normalizer.Normalize(pt)
}

// Compile compiles a program. Every call starts with fresh registries and
// a fresh label counter. A failing compilation produces no code.
func (u *Unit) Compile(src string) (*Result, error) {
	pt, env, err := u.Parse(src)
	if err != nil {
		return nil, err
	}
	t := u.normalizer.Normalize(pt)
	code, err := tac.NewGenerator(env).Generate(t)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	tracer().Infof("compiled %d instructions, %d symbols, %d constants",
		len(code), env.Symbols.Size(), env.Constants.Size())
	return &Result{Env: env, AST: t, Code: code}, nil
}
