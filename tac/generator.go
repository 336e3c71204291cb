/*
Package tac generates three-address code from SFAA abstract syntax trees.

The generator walks a normalized AST (see package ast) once and emits a
linear sequence of instructions. Control flow is expressed with numbered
block labels:

    goto L0          jump over the function bodies
    L1:              entry label of the first function
    …
    L0:              main entry label
    …                main body

Labels are drawn from a counter owned by the generator, temporaries and the
shared return slot from the symbol table of the generator's context.
Semantic errors (type mismatches, invalid calls) abort generation and are
returned as typed errors of package sfaa.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tac

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfaa"
	"github.com/npillmayer/sfaa/ast"
	"github.com/npillmayer/sfaa/lang"
	"github.com/npillmayer/sfaa/runtime"
	"github.com/npillmayer/sfaa/tree"
)

// tracer traces with key 'sfaa.tac'.
func tracer() tracing.Trace {
	return tracing.Select("sfaa.tac")
}

// Context is the registry a generator works with. *runtime.Environment
// implements it.
type Context interface {
	Names
	NewTemporary(typ runtime.Type) *runtime.Variable
	ReturnSlot() *runtime.Variable
	CheckCall(fn *runtime.Function, args []runtime.Argument) error
}

var _ Context = (*runtime.Environment)(nil)

// Generator creates TAC for a compilation unit. A generator must not be
// reused for another unit.
type Generator struct {
	ctx    Context
	ast    *ast.Tree
	code   []Instruction
	labels int
	entry  map[sfaa.Handle]int // entry labels of functions
	fn     *runtime.Function   // function being generated, nil for main
}

// NewGenerator creates a generator operating on a context.
func NewGenerator(ctx Context) *Generator {
	return &Generator{
		ctx:   ctx,
		entry: make(map[sfaa.Handle]int),
	}
}

// Generate creates the code for a program.
func (g *Generator) Generate(t *ast.Tree) ([]Instruction, error) {
	g.ast = t
	root := t.Root()
	if A := t.Value(root).Symbol; A.IsTerminal() || A.Name != lang.NtProgram {
		return nil, fmt.Errorf("cannot generate code for %s: not a program", A)
	}
	var funcs, main []tree.NodeID
	inMain := false
	for _, ch := range t.Children(root) {
		switch A := t.Value(ch).Symbol; {
		case A.IsTerminal() && A.Category == lang.Start:
			inMain = true
		case A.IsTerminal():
		case A.Name == lang.NtFunc:
			funcs = append(funcs, ch)
		case inMain:
			main = append(main, ch)
		}
	}
	if len(funcs) > 0 {
		mainLabel := g.newLabel()
		for _, f := range funcs { // reserve entries before bodies, for recursive calls
			g.entry[g.handle(t.Child(f, 2))] = g.newLabel()
		}
		g.emit(Instruction{Op: Goto, Result: LabelOperand(mainLabel)})
		for _, f := range funcs {
			if err := g.function(f); err != nil {
				return nil, err
			}
		}
		g.emit(Instruction{Op: Label, Result: LabelOperand(mainLabel)})
	}
	if err := g.statements(main); err != nil {
		return nil, err
	}
	tracer().Debugf("generated %d instructions", len(g.code))
	return g.code, nil
}

func (g *Generator) newLabel() int {
	l := g.labels
	g.labels++
	return l
}

func (g *Generator) emit(ins Instruction) {
	tracer().Debugf("%s", ins.Format(g.ctx))
	g.code = append(g.code, ins)
}

func (g *Generator) handle(n tree.NodeID) sfaa.Handle {
	return g.ast.Value(n).Handle()
}

// function generates the entry label and the body of a function.
//
//    FUNC: func type #f ( PARAM , … ) { statements }
func (g *Generator) function(n tree.NodeID) error {
	h := g.handle(g.ast.Child(n, 2))
	fn, ok := g.ctx.Lookup(h).(*runtime.Function)
	if !ok {
		return fmt.Errorf("%s is not a function", g.ast.Value(g.ast.Child(n, 2)))
	}
	g.fn = fn
	defer func() { g.fn = nil }()
	g.emit(Instruction{Op: Label, Result: LabelOperand(g.entry[h])})
	return g.statements(g.block(n))
}

// block returns the statements enclosed in the first pair of braces among
// the children of n.
func (g *Generator) block(n tree.NodeID) []tree.NodeID {
	var stmts []tree.NodeID
	inside := false
	for _, ch := range g.ast.Children(n) {
		A := g.ast.Value(ch).Symbol
		switch {
		case A.IsTerminal() && A.Category == lang.LBrace && !inside:
			inside = true
		case A.IsTerminal() && A.Category == lang.RBrace && inside:
			return stmts
		case inside:
			stmts = append(stmts, ch)
		}
	}
	return stmts
}

func (g *Generator) statements(stmts []tree.NodeID) error {
	for _, s := range stmts {
		if err := g.statement(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) statement(n tree.NodeID) error {
	A := g.ast.Value(n).Symbol
	if A.IsTerminal() {
		return fmt.Errorf("unexpected %s in statement position", g.ast.Value(n))
	}
	switch A.Name {
	case lang.NtDecl: // var type #x ;  |  var type #x = expr ;
		if g.ast.ChildCount(n) == 6 {
			return g.assign(g.ast.Child(n, 2), g.ast.Child(n, 4))
		}
		return nil
	case lang.NtAssign: // #x = rhs ;
		target, rhs := g.ast.Child(n, 0), g.ast.Child(n, 2)
		if B := g.ast.Value(rhs).Symbol; !B.IsTerminal() && B.Name == lang.NtCall {
			return g.assignCall(target, rhs)
		}
		return g.assign(target, rhs)
	case lang.NtCallStmt: // call … ;
		_, err := g.call(g.ast.Child(n, 0))
		return err
	case lang.NtIf:
		return g.conditional(n)
	case lang.NtLoop:
		return g.loop(n)
	case lang.NtReturn: // return expr ;
		return g.ret(g.ast.Child(n, 1))
	}
	return fmt.Errorf("unexpected %s in statement position", A)
}

// variable resolves the target of an assignment.
func (g *Generator) variable(n tree.NodeID) (*runtime.Variable, error) {
	switch s := g.ctx.Lookup(g.handle(n)).(type) {
	case *runtime.Variable:
		return s, nil
	case *runtime.Function:
		return nil, &sfaa.SemanticTypeError{
			Context: "assignment to " + s.Name(),
			Want:    "variable",
			Got:     "function",
		}
	}
	return nil, fmt.Errorf("unresolved assignment target %s", g.ast.Value(n))
}

// assign generates code for an expression and moves its value into the
// target.
func (g *Generator) assign(target, expr tree.NodeID) error {
	v, err := g.variable(target)
	if err != nil {
		return err
	}
	val, typ, err := g.expression(expr)
	if err != nil {
		return err
	}
	if typ != v.Typ {
		return &sfaa.SemanticTypeError{
			Context: "assignment to " + v.Name(),
			Want:    v.Typ.String(),
			Got:     typ.String(),
		}
	}
	g.emit(Instruction{Op: Move, Result: SymbolOperand(v.Handle()), Operand1: val})
	return nil
}

// assignCall generates a call and moves the return slot into the target.
func (g *Generator) assignCall(target, call tree.NodeID) error {
	v, err := g.variable(target)
	if err != nil {
		return err
	}
	fn, err := g.call(call)
	if err != nil {
		return err
	}
	if fn.Returns != v.Typ {
		return &sfaa.SemanticTypeError{
			Context: "assignment of " + fn.Name() + " to " + v.Name(),
			Want:    v.Typ.String(),
			Got:     fn.Returns.String(),
		}
	}
	slot := g.ctx.ReturnSlot()
	g.emit(Instruction{Op: Move, Result: SymbolOperand(v.Handle()), Operand1: SymbolOperand(slot.Handle())})
	return nil
}
